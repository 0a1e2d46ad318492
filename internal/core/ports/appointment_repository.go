package ports

import (
	"context"
	"time"

	"github.com/medisys/hospital-api/internal/core/domain"
)

// ListAppointmentsFilter carries all query parameters for listing appointments.
type ListAppointmentsFilter struct {
	DoctorID  string                   // optional
	PatientID string                   // optional
	Status    domain.AppointmentStatus // optional
	Date      *time.Time               // optional: day-bucketed match
	Page      int                      // 1-based
	Limit     int
	// NewestFirst sorts by (date desc, time desc); default is (date asc, time asc).
	NewestFirst bool
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	// Create inserts a new appointment. A slot-index collision maps to
	// domain.ErrAppointmentConflict.
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
	// FindActiveSlot looks for an appointment with the given doctor, day
	// bucket, and time whose status still occupies the slot.
	FindActiveSlot(ctx context.Context, doctorID string, date time.Time, slot string) (*domain.Appointment, error)
	List(ctx context.Context, filter ListAppointmentsFilter) ([]*domain.Appointment, int64, error)
	CountByStatus(ctx context.Context) (map[domain.AppointmentStatus]int64, error)
	// CountInWindow counts appointments whose date falls in [from, to).
	CountInWindow(ctx context.Context, from, to time.Time) (int64, error)
	// FindRecent returns the most recently created appointments, newest first.
	FindRecent(ctx context.Context, limit int) ([]*domain.Appointment, error)
}
