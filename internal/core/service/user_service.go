package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medisys/hospital-api/internal/api/metrics"
	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// UserService implements identity-store operations: staff creation by admins,
// patient intake by receptionists, listings, admin updates, soft deletes, and
// self-service profile edits.
type UserService struct {
	users      ports.UserRepository
	bcryptCost int
	log        zerolog.Logger
}

func NewUserService(users ports.UserRepository, bcryptCost int, log zerolog.Logger) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, log: log}
}

func (s *UserService) CreateDoctor(ctx context.Context, in ports.CreateDoctorInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Specialization == "" {
		return nil, domain.Validation("name, email, password, and specialization are required")
	}
	user, err := s.createUser(ctx, in.Name, in.Email, in.Password, in.Phone, domain.RoleDoctor)
	if err != nil {
		return nil, err
	}
	user.Doctor = &domain.DoctorProfile{
		Specialization: strings.TrimSpace(in.Specialization),
		Qualifications: strings.TrimSpace(in.Qualifications),
		Experience:     in.Experience,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	metrics.RegistrationsTotal.WithLabelValues(string(domain.RoleDoctor)).Inc()
	return created, nil
}

func (s *UserService) CreateReceptionist(ctx context.Context, in ports.CreateReceptionistInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.Validation("name, email, and password are required")
	}
	user, err := s.createUser(ctx, in.Name, in.Email, in.Password, in.Phone, domain.RoleReceptionist)
	if err != nil {
		return nil, err
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	metrics.RegistrationsTotal.WithLabelValues(string(domain.RoleReceptionist)).Inc()
	return created, nil
}

func (s *UserService) RegisterPatient(ctx context.Context, in ports.RegisterPatientInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Phone == "" {
		return nil, domain.Validation("name, email, password, and phone are required")
	}
	user, err := s.createUser(ctx, in.Name, in.Email, in.Password, in.Phone, domain.RolePatient)
	if err != nil {
		return nil, err
	}
	user.Patient = &domain.PatientProfile{
		DateOfBirth:      in.DateOfBirth,
		Gender:           in.Gender,
		Address:          strings.TrimSpace(in.Address),
		EmergencyContact: strings.TrimSpace(in.EmergencyContact),
		BloodGroup:       strings.TrimSpace(in.BloodGroup),
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	metrics.RegistrationsTotal.WithLabelValues(string(domain.RolePatient)).Inc()
	return created, nil
}

// createUser builds the common user core shared by all creation paths.
// The caller attaches the role-specific profile before persisting.
func (s *UserService) createUser(ctx context.Context, name, email, password, phone string, role domain.Role) (*domain.User, error) {
	normalized := normalizeEmail(email)
	if !emailRx.MatchString(normalized) {
		return nil, domain.Validation("invalid email format")
	}
	if len(password) < minPasswordLength {
		return nil, domain.Validation("password must be at least 6 characters long")
	}
	hash, err := hashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        normalized,
		PasswordHash: hash,
		Role:         role,
		Phone:        strings.TrimSpace(phone),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) GetByRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	if filter.Role != "" && !domain.ValidRole(string(filter.Role)) {
		return nil, 0, domain.Validation("invalid role filter")
	}
	return s.users.List(ctx, filter)
}

func (s *UserService) UpdateUser(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	// An admin may never change their own role or active flag.
	if user.ID == in.ActorID && (in.Role != "" || in.IsActive != nil) {
		return nil, domain.ErrSelfAction
	}

	if in.Name != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Phone != "" {
		user.Phone = strings.TrimSpace(in.Phone)
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Role != "" {
		if !domain.ValidRole(in.Role) {
			return nil, domain.Validation("role must be patient, doctor, admin, or receptionist")
		}
		s.applyRole(user, domain.Role(in.Role))
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// applyRole switches the role tag and swaps the variant payload so that a
// user never carries the profile of a role they no longer hold.
func (s *UserService) applyRole(user *domain.User, role domain.Role) {
	if user.Role == role {
		return
	}
	user.Role = role
	user.Doctor = nil
	user.Patient = nil
	switch role {
	case domain.RoleDoctor:
		user.Doctor = &domain.DoctorProfile{}
	case domain.RolePatient:
		user.Patient = &domain.PatientProfile{}
	}
}

func (s *UserService) DeactivateUser(ctx context.Context, actorID, userID string, role domain.Role) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if role != "" && user.Role != role {
		return domain.ErrUserNotFound
	}
	if user.ID == actorID {
		return domain.ErrSelfAction
	}

	user.IsActive = false
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Str("actor_id", actorID).Msg("user deactivated")
	return nil
}

func (s *UserService) UpdateDoctorProfile(ctx context.Context, userID string, in ports.UpdateDoctorProfileInput) (*domain.User, error) {
	user, err := s.GetByRole(ctx, userID, domain.RoleDoctor)
	if err != nil {
		return nil, err
	}
	if user.Doctor == nil {
		user.Doctor = &domain.DoctorProfile{}
	}

	if in.Name != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Phone != "" {
		user.Phone = strings.TrimSpace(in.Phone)
	}
	if in.Specialization != "" {
		user.Doctor.Specialization = strings.TrimSpace(in.Specialization)
	}
	if in.Qualifications != "" {
		user.Doctor.Qualifications = strings.TrimSpace(in.Qualifications)
	}
	if in.Experience != nil {
		if *in.Experience < 0 {
			return nil, domain.Validation("experience cannot be negative")
		}
		user.Doctor.Experience = *in.Experience
	}
	if in.Availability != nil {
		user.Doctor.Availability = in.Availability
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdatePatientProfile(ctx context.Context, userID string, in ports.UpdatePatientProfileInput) (*domain.User, error) {
	user, err := s.GetByRole(ctx, userID, domain.RolePatient)
	if err != nil {
		return nil, err
	}
	if user.Patient == nil {
		user.Patient = &domain.PatientProfile{}
	}

	if in.Name != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Phone != "" {
		user.Phone = strings.TrimSpace(in.Phone)
	}
	if in.DateOfBirth != nil {
		user.Patient.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != "" {
		user.Patient.Gender = in.Gender
	}
	if in.Address != "" {
		user.Patient.Address = strings.TrimSpace(in.Address)
	}
	if in.EmergencyContact != "" {
		user.Patient.EmergencyContact = strings.TrimSpace(in.EmergencyContact)
	}
	if in.BloodGroup != "" {
		user.Patient.BloodGroup = strings.TrimSpace(in.BloodGroup)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// normalizePage clamps pagination to sane bounds: 1-based page, default and
// maximum limits shared by every listing endpoint.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// totalPages computes the page count for a listing response.
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
