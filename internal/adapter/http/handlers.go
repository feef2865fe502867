package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Version is stamped by the build (-ldflags "-X ...http.Version=v1.2.3").
var Version = "dev"

type Handler struct{ started time.Time }

func NewHandler() *Handler { return &Handler{started: time.Now().UTC()} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"app":     "investorhub",
		"version": Version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
