package http

import (
	"net/http"

	waterfallDomain "investorhub/internal/domain/waterfall"
	"investorhub/internal/usecase/waterfall"

	"github.com/labstack/echo/v4"
)

type WaterfallHandler struct{ uc *waterfall.Usecase }

func NewWaterfallHandler(uc *waterfall.Usecase) *WaterfallHandler {
	return &WaterfallHandler{uc: uc}
}

func (h *WaterfallHandler) GetConfig(c echo.Context) error {
	dto, err := h.uc.GetConfig(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type setConfigReq struct {
	ServicingFee    float64 `json:"servicing_fee_percent" validate:"finite"`
	InvestorReturns float64 `json:"investor_returns_percent" validate:"finite"`
	ReserveFund     float64 `json:"reserve_fund_percent" validate:"finite"`
	SponsorProfit   float64 `json:"sponsor_profit_percent" validate:"finite"`
}

func (h *WaterfallHandler) SetConfig(c echo.Context) error {
	var req setConfigReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.SetConfig(c.Request().Context(), waterfallDomain.Percentages(req))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type distributeReq struct {
	Month            string  `json:"month"`
	TotalCollections float64 `json:"total_collections"`
}

func (h *WaterfallHandler) Distribute(c echo.Context) error {
	var req distributeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	dto, err := h.uc.Distribute(c.Request().Context(), req.Month, req.TotalCollections)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *WaterfallHandler) ListDistributions(c echo.Context) error {
	rows, err := h.uc.ListDistributions(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
