package handler

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"github.com/medisys/hospital-api/internal/core/domain"
)

var objectIDRx = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ctxUser extracts the authenticated user injected by the Auth middleware.
// Its presence proves the middleware ran; handlers behind Auth fast-fail
// with 401 if it is missing.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}

// pathID reads a path parameter expected to be a 24-hex document identifier
// and rejects malformed values before any lookup happens.
func pathID(c echo.Context, name string) (string, error) {
	id := c.Param(name)
	if !objectIDRx.MatchString(id) {
		return "", domain.Validation(name + " must be a valid 24-character identifier")
	}
	return id, nil
}
