package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medisys/hospital-api/internal/core/domain"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// pageParams reads page and limit query parameters, applying the default
// page size and the upper bound on oversized requests.
func pageParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// dateParam reads an optional YYYY-MM-DD query parameter.
func dateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, domain.Validation(name + " must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}
