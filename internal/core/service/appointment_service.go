package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/medisys/hospital-api/internal/api/metrics"
	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

// AppointmentService implements the appointment lifecycle: booking with slot
// conflict detection, doctor-driven status transitions, receptionist
// cancellation, and filtered listings.
type AppointmentService struct {
	appts ports.AppointmentRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewAppointmentService(appts ports.AppointmentRepository, users ports.UserRepository, log zerolog.Logger) *AppointmentService {
	return &AppointmentService{appts: appts, users: users, log: log}
}

// Book creates a pending appointment. The conflict check is performed twice:
// a read here for a friendly 409, and a partial unique index at the store so
// two racing bookings cannot both land.
func (s *AppointmentService) Book(ctx context.Context, in ports.BookAppointmentInput) (*ports.AppointmentView, error) {
	if in.PatientID == "" || in.DoctorID == "" || in.Date.IsZero() || in.Time == "" {
		return nil, domain.Validation("patient id, doctor id, appointment date, and time are required")
	}
	if in.Reason == "" {
		return nil, domain.Validation("reason for appointment is required")
	}

	day, _ := domain.DayBucket(in.Date)
	today, _ := domain.DayBucket(time.Now().UTC())
	if day.Before(today) {
		return nil, domain.ErrPastAppointment
	}

	patient, err := s.users.FindByID(ctx, in.PatientID)
	if err != nil || patient.Role != domain.RolePatient {
		return nil, domain.ErrUserNotFound
	}
	doctor, err := s.users.FindByID(ctx, in.DoctorID)
	if err != nil || doctor.Role != domain.RoleDoctor {
		return nil, domain.ErrUserNotFound
	}

	if _, err := s.appts.FindActiveSlot(ctx, in.DoctorID, day, in.Time); err == nil {
		metrics.BookingConflictsTotal.Inc()
		return nil, domain.ErrAppointmentConflict
	} else if !errors.Is(err, domain.ErrAppointmentNotFound) {
		return nil, err
	}

	apptType := domain.AppointmentType(in.Type)
	if in.Type == "" {
		apptType = domain.TypeGeneral
	}
	duration := in.Duration
	if duration == 0 {
		duration = domain.DefaultDurationMinutes
	}
	if duration < domain.MinDurationMinutes || duration > domain.MaxDurationMinutes {
		return nil, domain.Validation("duration must be between 15 and 120 minutes")
	}

	now := time.Now().UTC()
	appt := &domain.Appointment{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Date:      day,
		Time:      in.Time,
		Status:    domain.StatusPending,
		Reason:    in.Reason,
		Type:      apptType,
		Duration:  duration,
		BookedBy:  in.BookedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.appts.Create(ctx, appt)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentConflict) {
			metrics.BookingConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.AppointmentsBookedTotal.WithLabelValues(string(apptType)).Inc()
	s.log.Info().
		Str("appointment_id", created.ID).
		Str("doctor_id", created.DoctorID).
		Str("patient_id", created.PatientID).
		Str("slot", created.Time).
		Msg("appointment booked")

	return s.view(ctx, created)
}

// UpdateStatus applies a direct status write by the assigned doctor. The only
// constraints are the enumerated value set and ownership; completing stamps
// the completion time.
func (s *AppointmentService) UpdateStatus(ctx context.Context, in ports.UpdateStatusInput) (*ports.AppointmentView, error) {
	if in.Status != "" && !domain.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
	}

	appt, err := s.appts.FindByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != in.DoctorID {
		return nil, domain.ErrForbidden
	}

	if in.Status != "" {
		appt.Status = domain.AppointmentStatus(in.Status)
		if appt.Status == domain.StatusCompleted {
			now := time.Now().UTC()
			appt.CompletedAt = &now
		}
		metrics.AppointmentTransitionsTotal.WithLabelValues(in.Status).Inc()
	}
	if in.Notes != "" {
		appt.Notes = in.Notes
	}
	appt.UpdatedAt = time.Now().UTC()

	if err := s.appts.Update(ctx, appt); err != nil {
		return nil, err
	}
	return s.view(ctx, appt)
}

// Cancel marks an appointment cancelled with audit metadata. Appointments
// already completed or cancelled cannot be cancelled again.
func (s *AppointmentService) Cancel(ctx context.Context, in ports.CancelAppointmentInput) (*ports.AppointmentView, error) {
	appt, err := s.appts.FindByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status == domain.StatusCompleted || appt.Status == domain.StatusCancelled {
		return nil, domain.ErrAppointmentClosed
	}

	now := time.Now().UTC()
	appt.Status = domain.StatusCancelled
	appt.CancelledAt = &now
	appt.CancelledBy = in.CancelledBy
	appt.CancellationReason = in.Reason
	appt.UpdatedAt = now

	if err := s.appts.Update(ctx, appt); err != nil {
		return nil, err
	}

	metrics.AppointmentTransitionsTotal.WithLabelValues(string(domain.StatusCancelled)).Inc()
	s.log.Info().Str("appointment_id", appt.ID).Str("cancelled_by", in.CancelledBy).Msg("appointment cancelled")

	return s.view(ctx, appt)
}

// List returns a page of appointments with patient and doctor resolved.
func (s *AppointmentService) List(ctx context.Context, in ports.ListAppointmentsInput) (*ports.AppointmentPage, error) {
	if in.Status != "" && !domain.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
	}
	page, limit := normalizePage(in.Page, in.Limit)

	items, total, err := s.appts.List(ctx, ports.ListAppointmentsFilter{
		DoctorID:    in.DoctorID,
		PatientID:   in.PatientID,
		Status:      domain.AppointmentStatus(in.Status),
		Date:        in.Date,
		Page:        page,
		Limit:       limit,
		NewestFirst: in.NewestFirst,
	})
	if err != nil {
		return nil, err
	}

	views, err := appointmentViews(ctx, s.users, items)
	if err != nil {
		return nil, err
	}
	return &ports.AppointmentPage{
		Items: views,
		Total: total,
		Page:  page,
		Pages: totalPages(total, limit),
	}, nil
}

func (s *AppointmentService) view(ctx context.Context, appt *domain.Appointment) (*ports.AppointmentView, error) {
	views, err := appointmentViews(ctx, s.users, []*domain.Appointment{appt})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// appointmentViews resolves patient, doctor, and booking staff references for
// a batch of appointments in a single repository round trip.
func appointmentViews(ctx context.Context, users ports.UserRepository, appts []*domain.Appointment) ([]ports.AppointmentView, error) {
	ids := make([]string, 0, len(appts)*3)
	for _, a := range appts {
		ids = append(ids, a.PatientID, a.DoctorID)
		if a.BookedBy != "" {
			ids = append(ids, a.BookedBy)
		}
	}

	refs, err := users.FindRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ports.AppointmentView, 0, len(appts))
	for _, a := range appts {
		v := ports.AppointmentView{
			Appointment: a,
			Patient:     refs[a.PatientID],
			Doctor:      refs[a.DoctorID],
		}
		if a.BookedBy != "" {
			if ref, ok := refs[a.BookedBy]; ok {
				v.BookedBy = &ref
			}
		}
		views = append(views, v)
	}
	return views, nil
}
