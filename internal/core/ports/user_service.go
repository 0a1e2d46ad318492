package ports

import (
	"context"
	"time"

	"github.com/medisys/hospital-api/internal/core/domain"
)

// CreateDoctorInput carries the fields for admin doctor creation.
type CreateDoctorInput struct {
	Name           string
	Email          string
	Password       string
	Phone          string
	Specialization string
	Qualifications string
	Experience     int
}

// CreateReceptionistInput carries the fields for admin receptionist creation.
type CreateReceptionistInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// RegisterPatientInput carries the fields for receptionist patient intake.
type RegisterPatientInput struct {
	Name             string
	Email            string
	Password         string
	Phone            string
	DateOfBirth      *time.Time
	Gender           string
	Address          string
	EmergencyContact string
	BloodGroup       string
}

// UpdateUserInput is the admin user-update operation. Nil/empty fields are
// left untouched. ActorID is the admin performing the change; changing one's
// own role or active flag is rejected.
type UpdateUserInput struct {
	ActorID  string
	UserID   string
	Name     string
	Phone    string
	IsActive *bool
	Role     string
}

// UpdateDoctorProfileInput carries the self-service doctor profile fields.
type UpdateDoctorProfileInput struct {
	Name           string
	Phone          string
	Specialization string
	Qualifications string
	Experience     *int
	Availability   map[string]string
}

// UpdatePatientProfileInput carries the self-service patient profile fields.
// Email is intentionally absent: identity is immutable by the subject.
type UpdatePatientProfileInput struct {
	Name             string
	Phone            string
	DateOfBirth      *time.Time
	Gender           string
	Address          string
	EmergencyContact string
	BloodGroup       string
}

// UserService implements identity-store operations beyond authentication.
type UserService interface {
	CreateDoctor(ctx context.Context, in CreateDoctorInput) (*domain.User, error)
	CreateReceptionist(ctx context.Context, in CreateReceptionistInput) (*domain.User, error)
	RegisterPatient(ctx context.Context, in RegisterPatientInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// GetByRole fetches a user and verifies the expected role, returning
	// domain.ErrUserNotFound on mismatch.
	GetByRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	ListUsers(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	UpdateUser(ctx context.Context, in UpdateUserInput) (*domain.User, error)
	// DeactivateUser soft-deletes a user. When role is non-empty the target
	// must hold that role. Self-deactivation is rejected.
	DeactivateUser(ctx context.Context, actorID, userID string, role domain.Role) error
	UpdateDoctorProfile(ctx context.Context, userID string, in UpdateDoctorProfileInput) (*domain.User, error)
	UpdatePatientProfile(ctx context.Context, userID string, in UpdatePatientProfileInput) (*domain.User, error)
}
