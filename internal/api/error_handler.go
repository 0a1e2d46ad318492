package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medisys/hospital-api/internal/core/domain"
)

// errorEnvelope is the canonical error shape for all API errors.
type errorEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders field-level validation failures as the errors array.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, fieldErrors := resolveError(err, log, c)
		_ = c.JSON(code, errorEnvelope{Message: msg, Errors: fieldErrors})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, []string) {
	// Field-level validation failures carry their own messages.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "validation failed", ve.Messages
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password", nil
	case errors.Is(err, domain.ErrAccountDeactivated):
		return http.StatusUnauthorized, "account has been deactivated, please contact support", nil
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "token has expired", nil
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "invalid token", nil
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", nil
	case errors.Is(err, domain.ErrSelfAction):
		return http.StatusForbidden, "cannot perform this action on your own account", nil
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found", nil
	case errors.Is(err, domain.ErrAppointmentNotFound):
		return http.StatusNotFound, "appointment not found", nil
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "an account with this email already exists", nil
	case errors.Is(err, domain.ErrAppointmentConflict):
		return http.StatusConflict, "the doctor already has an appointment at this time", nil
	case errors.Is(err, domain.ErrPastAppointment):
		return http.StatusBadRequest, "appointment date cannot be in the past", nil
	case errors.Is(err, domain.ErrAppointmentClosed):
		return http.StatusBadRequest, "appointment is already completed or cancelled", nil
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "invalid appointment status", nil
	case errors.Is(err, domain.ErrEmptyPrescription):
		return http.StatusBadRequest, "prescription must contain at least one medicine", nil
	case errors.Is(err, domain.ErrFollowUpBeforeIssue):
		return http.StatusBadRequest, "follow-up date cannot be before the issue date", nil
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", nil
}
