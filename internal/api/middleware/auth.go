package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medisys/hospital-api/internal/core/domain"
)

// Authenticator resolves a bearer token to the user it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth validates the bearer token and injects the authenticated user into
// context. Token verification includes an account lookup, so sessions issued
// before a deactivation stop working immediately.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := auth.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			c.Set("user", user)
			c.Set("user_id", user.ID)
			c.Set("user_email", user.Email)
			c.Set("role", string(user.Role))

			return next(c)
		}
	}
}
