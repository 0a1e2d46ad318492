package ports

import (
	"context"

	"github.com/medisys/hospital-api/internal/core/domain"
)

// RegisterInput carries the fields accepted by public self-registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // empty defaults to patient; anything else is rejected
	Phone    string
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService implements the credential and session component.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Authenticate verifies a session token and resolves the live user record.
	// Tokens referencing deleted or deactivated users are rejected.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// ForgotPassword issues a short-lived reset token. Unknown emails return
	// an empty token and no error so callers cannot probe for accounts.
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}
