package ports

import (
	"context"
	"time"

	"github.com/medisys/hospital-api/internal/core/domain"
)

// CreatePrescriptionInput carries all data for issuing a prescription.
type CreatePrescriptionInput struct {
	AppointmentID string
	DoctorID      string // caller; must be the assigned doctor
	Medicines     []domain.Medicine
	Diagnosis     string
	Instructions  string
	FollowUpDate  *time.Time
	Refills       int
	IsRefillable  bool
}

// PrescriptionView is a prescription with patient and doctor resolved.
type PrescriptionView struct {
	Prescription *domain.Prescription `json:"prescription"`
	Patient      UserRef              `json:"patient"`
	Doctor       UserRef              `json:"doctor"`
}

// PrescriptionPage is a page of prescription views plus pagination totals.
type PrescriptionPage struct {
	Items []PrescriptionView
	Total int64
	Page  int
	Pages int
}

// PrescriptionService implements the prescription component.
type PrescriptionService interface {
	// Create issues a prescription. As a side effect the referenced
	// appointment is moved to completed if it is not there already.
	Create(ctx context.Context, in CreatePrescriptionInput) (*PrescriptionView, error)
	ListByPatient(ctx context.Context, patientID string, page, limit int) (*PrescriptionPage, error)
	ListByDoctor(ctx context.Context, doctorID string, page, limit int) (*PrescriptionPage, error)
}
