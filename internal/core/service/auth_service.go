package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/medisys/hospital-api/internal/api/metrics"
	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

const minPasswordLength = 6

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService implements registration, login, and the two token flows.
type AuthService struct {
	users      ports.UserRepository
	tokens     *TokenIssuer
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *TokenIssuer, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost, log: log}
}

// Register creates a patient account via public self-registration. Any
// requested role other than patient is rejected outright.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.Validation("name, email, and password are required")
	}
	if in.Role != "" && in.Role != string(domain.RolePatient) {
		return nil, domain.ErrForbidden
	}
	email := normalizeEmail(in.Email)
	if !emailRx.MatchString(email) {
		return nil, domain.Validation("invalid email format")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.Validation("password must be at least 6 characters long")
	}

	hash, err := hashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RolePatient,
		Phone:        strings.TrimSpace(in.Phone),
		IsActive:     true,
		Patient:      &domain.PatientProfile{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueSession(created.ID)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(created.Role)).Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")

	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login verifies credentials and issues a session token. Every lookup or
// verification failure collapses into the same generic error so callers
// cannot tell registered emails from unknown ones.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.Validation("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrAccountDeactivated
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSession(user.ID)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Authenticate resolves a session token to its live user record.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.VerifySession(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}
	return user, nil
}

// UpdatePassword replaces the caller's password after verifying the current one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.Validation("current password and new password are required")
	}
	if len(newPassword) < minPasswordLength {
		return domain.Validation("new password must be at least 6 characters long")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := hashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// ForgotPassword issues a reset token. Unknown emails return an empty token
// and no error; the transport layer answers with the same success shape
// either way.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", domain.Validation("email is required")
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}

	token, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("user_id", user.ID).Msg("password reset token issued")
	return token, nil
}

// ResetPassword consumes a reset token and overwrites the password hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return domain.Validation("new password is required")
	}
	if len(newPassword) < minPasswordLength {
		return domain.Validation("password must be at least 6 characters long")
	}

	userID, err := s.tokens.VerifyReset(token)
	if err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := hashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
