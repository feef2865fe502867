package http

import (
	"errors"
	"net/http"

	"investorhub/internal/domain/fault"

	"github.com/labstack/echo/v4"
)

// writeErr maps error kinds to status codes. The wrapped message is safe
// to show to the user.
func writeErr(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, fault.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, fault.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, fault.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, fault.ErrInvalidState), errors.Is(err, fault.ErrInvalidTransition):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		// never leak internals on a 500
		return c.JSON(status, map[string]string{"error": "internal error"})
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
