package http

import (
	"net/http"
	"path/filepath"
	"strconv"

	"investorhub/internal/adapter/middleware"
	"investorhub/internal/usecase/portfolio"

	"github.com/labstack/echo/v4"
)

type PortfolioHandler struct{ uc *portfolio.Usecase }

func NewPortfolioHandler(uc *portfolio.Usecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) Dashboard(c echo.Context) error {
	dto, err := h.uc.Dashboard(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PortfolioHandler) DownloadDocument(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid document id"})
	}
	path, err := h.uc.DocumentPath(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Attachment(path, filepath.Base(path))
}

// Statement streams the rendered monthly PDF.
func (h *PortfolioHandler) Statement(c echo.Context) error {
	month := c.QueryParam("month")
	pdf, err := h.uc.Statement(c.Request().Context(), middleware.UserID(c), month)
	if err != nil {
		return writeErr(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="statement.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
