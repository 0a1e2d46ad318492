package ports

import (
	"context"
	"time"

	"github.com/medisys/hospital-api/internal/core/domain"
)

// BookAppointmentInput carries all data needed to book an appointment.
type BookAppointmentInput struct {
	PatientID string
	DoctorID  string
	Date      time.Time // date-only; time of day is ignored
	Time      string    // slot, "HH:MM"
	Reason    string
	Type      string // empty defaults to general
	Duration  int    // minutes; 0 defaults to domain.DefaultDurationMinutes
	BookedBy  string // staff member creating the booking
}

// UpdateStatusInput is the doctor-side status transition.
type UpdateStatusInput struct {
	AppointmentID string
	DoctorID      string // caller; must be the assigned doctor
	Status        string // optional; one of the six enumerated values
	Notes         string // optional
}

// CancelAppointmentInput is the receptionist-side cancellation.
type CancelAppointmentInput struct {
	AppointmentID string
	CancelledBy   string
	Reason        string
}

// ListAppointmentsInput carries the parameters for appointment listings.
type ListAppointmentsInput struct {
	DoctorID    string
	PatientID   string
	Status      string
	Date        *time.Time
	Page        int
	Limit       int
	NewestFirst bool
}

// AppointmentView is an appointment with its patient and doctor resolved.
type AppointmentView struct {
	Appointment *domain.Appointment `json:"appointment"`
	Patient     UserRef             `json:"patient"`
	Doctor      UserRef             `json:"doctor"`
	BookedBy    *UserRef            `json:"booked_by,omitempty"`
}

// AppointmentPage is a page of appointment views plus pagination totals.
type AppointmentPage struct {
	Items []AppointmentView
	Total int64
	Page  int
	Pages int
}

// AppointmentService implements the appointment lifecycle component.
type AppointmentService interface {
	Book(ctx context.Context, in BookAppointmentInput) (*AppointmentView, error)
	UpdateStatus(ctx context.Context, in UpdateStatusInput) (*AppointmentView, error)
	Cancel(ctx context.Context, in CancelAppointmentInput) (*AppointmentView, error)
	List(ctx context.Context, in ListAppointmentsInput) (*AppointmentPage, error)
}
