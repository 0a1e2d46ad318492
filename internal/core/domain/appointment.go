package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in-progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no-show"
)

// ValidStatus reports whether s is one of the six known statuses.
func ValidStatus(s string) bool {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s AppointmentStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ActiveStatuses are the states that occupy a doctor's slot. A booking for the
// same doctor, date, and time is rejected while any of these exists.
var ActiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed, StatusInProgress}

// AppointmentType classifies the nature of the visit.
type AppointmentType string

const (
	TypeGeneral      AppointmentType = "general"
	TypeFollowUp     AppointmentType = "follow-up"
	TypeEmergency    AppointmentType = "emergency"
	TypeConsultation AppointmentType = "consultation"
	TypeCheckup      AppointmentType = "checkup"
)

const (
	MinDurationMinutes     = 15
	MaxDurationMinutes     = 120
	DefaultDurationMinutes = 30
)

// Appointment is a scheduled encounter between exactly one patient and one
// doctor. Date carries date-only granularity (UTC midnight); Time is the
// slot in "HH:MM" form.
type Appointment struct {
	ID                 string            `json:"id"`
	PatientID          string            `json:"patient_id"`
	DoctorID           string            `json:"doctor_id"`
	Date               time.Time         `json:"appointment_date"`
	Time               string            `json:"time"`
	Status             AppointmentStatus `json:"status"`
	Reason             string            `json:"reason"`
	Notes              string            `json:"notes,omitempty"`
	Type               AppointmentType   `json:"appointment_type"`
	Duration           int               `json:"duration"`
	BookedBy           string            `json:"booked_by,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	CancelledBy        string            `json:"cancelled_by,omitempty"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time        `json:"completed_at,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// DayBucket returns the [00:00, next-day 00:00) window containing t, in UTC.
// It is the conflict window used for slot clashes and date filters.
func DayBucket(t time.Time) (from, to time.Time) {
	from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}
