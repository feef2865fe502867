package http

import (
	"net/http"
	"strconv"

	poolDomain "investorhub/internal/domain/pool"
	"investorhub/internal/usecase/pool"

	"github.com/labstack/echo/v4"
)

type PoolHandler struct{ uc *pool.Usecase }

func NewPoolHandler(uc *pool.Usecase) *PoolHandler { return &PoolHandler{uc: uc} }

func poolID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

type createPoolReq struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
}

func (h *PoolHandler) Create(c echo.Context) error {
	var req createPoolReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	dto, err := h.uc.Create(c.Request().Context(), pool.CreateInput(req))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PoolHandler) List(c echo.Context) error {
	rows, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PoolHandler) Get(c echo.Context) error {
	id, ok := poolID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid pool id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type transitionReq struct {
	Status string `json:"status"`
}

func (h *PoolHandler) Transition(c echo.Context) error {
	id, ok := poolID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid pool id"})
	}
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	dto, err := h.uc.Transition(c.Request().Context(), id, poolDomain.Status(req.Status))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PoolHandler) Delete(c echo.Context) error {
	id, ok := poolID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid pool id"})
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type poolLoanReq struct {
	MifosLoanID int64 `json:"mifos_loan_id"`
}

func (h *PoolHandler) AddLoan(c echo.Context) error {
	id, ok := poolID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid pool id"})
	}
	var req poolLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	edge, err := h.uc.AddLoan(c.Request().Context(), id, req.MifosLoanID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, edge)
}

func (h *PoolHandler) RemoveLoan(c echo.Context) error {
	id, ok := poolID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid pool id"})
	}
	loanID, err := strconv.ParseInt(c.Param("loan_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid loan id"})
	}
	if err := h.uc.RemoveLoan(c.Request().Context(), id, loanID); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PoolHandler) AvailableLoans(c echo.Context) error {
	id, ok := poolID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid pool id"})
	}
	rows, err := h.uc.AvailableLoans(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
