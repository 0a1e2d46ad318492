package ports

import (
	"context"

	"github.com/medisys/hospital-api/internal/core/domain"
)

// ListPrescriptionsFilter carries query parameters for listing prescriptions.
type ListPrescriptionsFilter struct {
	PatientID string // optional
	DoctorID  string // optional
	Page      int    // 1-based
	Limit     int
}

// PrescriptionRepository defines persistence operations for prescriptions.
type PrescriptionRepository interface {
	Create(ctx context.Context, p *domain.Prescription) (*domain.Prescription, error)
	// List returns a page of prescriptions, newest first, and the total count.
	List(ctx context.Context, filter ListPrescriptionsFilter) ([]*domain.Prescription, int64, error)
}
