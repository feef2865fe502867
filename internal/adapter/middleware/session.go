package middleware

import (
	"net/http"
	"strings"

	"investorhub/internal/domain/user"
	"investorhub/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

// Context keys the handlers read back.
const (
	CtxUserID = "session_user_id"
	CtxRole   = "session_role"
)

// Session resolves the Bearer token against the session store and
// injects user id and role into the echo context. Requests without a
// valid session are rejected.
func Session(uc *auth.Usecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(h, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			sess, err := uc.Resolve(c.Request().Context(), tok)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session expired or unknown"})
			}
			c.Set(CtxUserID, sess.UserID)
			c.Set(CtxRole, sess.Role)
			return next(c)
		}
	}
}

// RequireAdmin gates the admin surface; must run after Session.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get(CtxRole).(user.Role)
		if role != user.RoleAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
		}
		return next(c)
	}
}

// UserID returns the authenticated user's id, zero when unauthenticated.
func UserID(c echo.Context) uint64 {
	id, _ := c.Get(CtxUserID).(uint64)
	return id
}
