package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medisys/hospital-api/internal/core/domain"
)

type stubAuthenticator struct {
	user *domain.User
	err  error

	gotToken string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.User, error) {
	s.gotToken = token
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func runAuth(t *testing.T, auth *stubAuthenticator, header string) (echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(auth)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestAuth_ValidToken(t *testing.T) {
	user := &domain.User{ID: "user-1", Email: "alice@example.com", Role: domain.RoleDoctor}
	auth := &stubAuthenticator{user: user}

	c, err := runAuth(t, auth, "Bearer token-123")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if auth.gotToken != "token-123" {
		t.Fatalf("expected token passed through, got %q", auth.gotToken)
	}
	if got := c.Get("user").(*domain.User); got.ID != "user-1" {
		t.Fatalf("expected user in context, got %+v", got)
	}
	if c.Get("user_id") != "user-1" || c.Get("role") != "doctor" {
		t.Fatalf("expected context keys set, got id=%v role=%v", c.Get("user_id"), c.Get("role"))
	}
}

func TestAuth_LowercaseBearer(t *testing.T) {
	auth := &stubAuthenticator{user: &domain.User{ID: "user-1"}}
	if _, err := runAuth(t, auth, "bearer token-123"); err != nil {
		t.Fatalf("scheme should be case insensitive, got %v", err)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := runAuth(t, &stubAuthenticator{}, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"token-123", "Basic dXNlcjpwYXNz"} {
		_, err := runAuth(t, &stubAuthenticator{}, header)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuth_AuthenticatorError(t *testing.T) {
	auth := &stubAuthenticator{err: domain.ErrAccountDeactivated}

	_, err := runAuth(t, auth, "Bearer token-123")
	if err != domain.ErrAccountDeactivated {
		t.Fatalf("expected authenticator error to propagate, got %v", err)
	}
}
