package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"investorhub/internal/domain/user"
	"investorhub/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type fakeStore struct{ sessions map[string]auth.Session }

func (s *fakeStore) Put(ctx context.Context, tok string, sess auth.Session, ttl time.Duration) error {
	s.sessions[tok] = sess
	return nil
}

func (s *fakeStore) Get(ctx context.Context, tok string) (*auth.Session, error) {
	sess, ok := s.sessions[tok]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *fakeStore) Delete(ctx context.Context, tok string) error {
	delete(s.sessions, tok)
	return nil
}

func setup() (*echo.Echo, *fakeStore, echo.MiddlewareFunc) {
	store := &fakeStore{sessions: map[string]auth.Session{
		"tok-investor": {UserID: 7, Role: user.RoleInvestor},
		"tok-admin":    {UserID: 1, Role: user.RoleAdmin},
	}}
	uc := auth.NewUsecase(nil, store, time.Hour)
	return echo.New(), store, Session(uc)
}

func do(e *echo.Echo, mw echo.MiddlewareFunc, handler echo.HandlerFunc, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = mw(handler)(c)
	return rec
}

func TestSession_InjectsUserAndRole(t *testing.T) {
	e, _, mw := setup()

	var gotID uint64
	var gotRole user.Role
	rec := do(e, mw, func(c echo.Context) error {
		gotID = UserID(c)
		gotRole, _ = c.Get(CtxRole).(user.Role)
		return c.NoContent(http.StatusOK)
	}, "Bearer tok-investor")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotID != 7 || gotRole != user.RoleInvestor {
		t.Fatalf("context = %d/%q", gotID, gotRole)
	}
}

func TestSession_RejectsMissingAndUnknownTokens(t *testing.T) {
	e, _, mw := setup()
	next := func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	}

	for _, authz := range []string{"", "Basic abc", "Bearer nope"} {
		rec := do(e, mw, next, authz)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("authz %q: status = %d", authz, rec.Code)
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	e, _, mw := setup()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	rec := do(e, mw, RequireAdmin(ok), "Bearer tok-admin")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d", rec.Code)
	}

	rec = do(e, mw, RequireAdmin(ok), "Bearer tok-investor")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("investor status = %d", rec.Code)
	}
}
