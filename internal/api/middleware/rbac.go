package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medisys/hospital-api/internal/core/domain"
)

// RBAC enforces role-based access control. Must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	names := make([]string, 0, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[string(r)] = struct{}{}
		names = append(names, string(r))
	}
	required := strings.Join(names, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("role %q is not permitted to access this resource, requires: %s", role, required))
			}
			return next(c)
		}
	}
}
