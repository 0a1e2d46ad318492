package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDeactivated  = errors.New("account has been deactivated")
	ErrTokenExpired        = errors.New("token has expired")
	ErrTokenInvalid        = errors.New("invalid token")
	ErrForbidden           = errors.New("access forbidden")
	ErrSelfAction          = errors.New("cannot perform this action on your own account")
	ErrEmailTaken          = errors.New("user with this email already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentConflict = errors.New("doctor already has an appointment at this time")
	ErrPastAppointment     = errors.New("appointment date cannot be in the past")
	ErrAppointmentClosed   = errors.New("appointment is already completed or cancelled")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrEmptyPrescription   = errors.New("prescription must contain at least one medicine")
	ErrFollowUpBeforeIssue = errors.New("follow-up date cannot be before the issued date")
)

// ValidationError carries one or more field-level validation messages. It maps
// to a 400 response with the messages surfaced in the errors array.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Validation builds a ValidationError from the given messages.
func Validation(messages ...string) error {
	return &ValidationError{Messages: messages}
}
