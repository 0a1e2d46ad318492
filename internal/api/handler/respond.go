package handler

import (
	"github.com/labstack/echo/v4"
)

// paginationMeta is the pagination block attached to list responses.
type paginationMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// envelope is the canonical response shape for every endpoint.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       any             `json:"data,omitempty"`
	Pagination *paginationMeta `json:"pagination,omitempty"`
	Errors     []string        `json:"errors,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondPage(c echo.Context, status int, data any, total int64, page, pages int) error {
	return c.JSON(status, envelope{
		Success:    true,
		Data:       data,
		Pagination: &paginationMeta{Total: total, Page: page, Pages: pages},
	})
}
