package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/medisys/hospital-api/internal/api/metrics"
	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

// PrescriptionService implements prescription issuance and read paths.
type PrescriptionService struct {
	prescriptions ports.PrescriptionRepository
	appts         ports.AppointmentRepository
	users         ports.UserRepository
	log           zerolog.Logger
}

func NewPrescriptionService(
	prescriptions ports.PrescriptionRepository,
	appts ports.AppointmentRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *PrescriptionService {
	return &PrescriptionService{prescriptions: prescriptions, appts: appts, users: users, log: log}
}

// Create issues a prescription against an appointment owned by the calling
// doctor. Issuing forces the appointment into the completed state when it is
// not there already; this is a side effect of issuance, not an independent
// transition.
func (s *PrescriptionService) Create(ctx context.Context, in ports.CreatePrescriptionInput) (*ports.PrescriptionView, error) {
	if in.AppointmentID == "" {
		return nil, domain.Validation("appointment id is required")
	}
	if len(in.Medicines) == 0 {
		return nil, domain.ErrEmptyPrescription
	}
	for _, m := range in.Medicines {
		if m.Name == "" || m.Dosage == "" || m.Frequency == "" {
			return nil, domain.Validation("each medicine must have name, dosage, and frequency")
		}
	}

	appt, err := s.appts.FindByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != in.DoctorID {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	if in.FollowUpDate != nil && in.FollowUpDate.Before(now) {
		return nil, domain.ErrFollowUpBeforeIssue
	}
	if in.Refills < 0 {
		return nil, domain.Validation("refills cannot be negative")
	}

	prescription := &domain.Prescription{
		AppointmentID: appt.ID,
		DoctorID:      appt.DoctorID,
		PatientID:     appt.PatientID,
		Medicines:     in.Medicines,
		Diagnosis:     in.Diagnosis,
		Instructions:  in.Instructions,
		FollowUpDate:  in.FollowUpDate,
		IssuedDate:    now,
		Refills:       in.Refills,
		IsRefillable:  in.IsRefillable,
		CreatedAt:     now,
	}

	created, err := s.prescriptions.Create(ctx, prescription)
	if err != nil {
		return nil, err
	}

	if appt.Status != domain.StatusCompleted {
		appt.Status = domain.StatusCompleted
		appt.CompletedAt = &now
		appt.UpdatedAt = now
		if err := s.appts.Update(ctx, appt); err != nil {
			return nil, err
		}
		metrics.AppointmentTransitionsTotal.WithLabelValues(string(domain.StatusCompleted)).Inc()
	}

	metrics.PrescriptionsIssuedTotal.Inc()
	s.log.Info().
		Str("prescription_id", created.ID).
		Str("appointment_id", appt.ID).
		Str("doctor_id", appt.DoctorID).
		Int("medicines", len(created.Medicines)).
		Msg("prescription issued")

	return s.view(ctx, created)
}

func (s *PrescriptionService) ListByPatient(ctx context.Context, patientID string, page, limit int) (*ports.PrescriptionPage, error) {
	return s.list(ctx, ports.ListPrescriptionsFilter{PatientID: patientID, Page: page, Limit: limit})
}

func (s *PrescriptionService) ListByDoctor(ctx context.Context, doctorID string, page, limit int) (*ports.PrescriptionPage, error) {
	return s.list(ctx, ports.ListPrescriptionsFilter{DoctorID: doctorID, Page: page, Limit: limit})
}

func (s *PrescriptionService) list(ctx context.Context, filter ports.ListPrescriptionsFilter) (*ports.PrescriptionPage, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.prescriptions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items)*2)
	for _, p := range items {
		ids = append(ids, p.PatientID, p.DoctorID)
	}
	refs, err := s.users.FindRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ports.PrescriptionView, 0, len(items))
	for _, p := range items {
		views = append(views, ports.PrescriptionView{
			Prescription: p,
			Patient:      refs[p.PatientID],
			Doctor:       refs[p.DoctorID],
		})
	}
	return &ports.PrescriptionPage{
		Items: views,
		Total: total,
		Page:  filter.Page,
		Pages: totalPages(total, filter.Limit),
	}, nil
}

func (s *PrescriptionService) view(ctx context.Context, p *domain.Prescription) (*ports.PrescriptionView, error) {
	refs, err := s.users.FindRefs(ctx, []string{p.PatientID, p.DoctorID})
	if err != nil {
		return nil, err
	}
	return &ports.PrescriptionView{
		Prescription: p,
		Patient:      refs[p.PatientID],
		Doctor:       refs[p.DoctorID],
	}, nil
}
