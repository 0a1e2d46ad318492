package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

func newAuthService(repo *stubUserRepo) *AuthService {
	tokens := NewTokenIssuer("secret", time.Hour, time.Minute)
	return NewAuthService(repo, tokens, bcrypt.MinCost, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected session token")
	}
	if result.User.Role != domain.RolePatient {
		t.Fatalf("expected patient role, got %s", result.User.Role)
	}
	if result.User.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %s", result.User.Email)
	}
	if result.User.Patient == nil {
		t.Fatalf("expected patient profile to be attached")
	}
	if result.User.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "12345",
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Register_NonPatientRole(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	for _, role := range []string{"doctor", "admin", "receptionist"} {
		_, err := svc.Register(context.Background(), ports.RegisterInput{
			Name:     "Mallory",
			Email:    "mallory@example.com",
			Password: "secret1",
			Role:     role,
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	in := ports.RegisterInput{Name: "Carol", Email: "carol@example.com", Password: "secret1"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Dave", Email: "dave@example.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "dave@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected session token")
	}

	// The issued token authenticates back to the same user.
	user, err := svc.Authenticate(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.ID != result.User.ID {
		t.Fatalf("expected user %s, got %s", result.User.ID, user.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Erin", Email: "erin@example.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "erin@example.com", "wrong1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "ghost@example.com", "secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Deactivated(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Frank", Email: "frank@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	stored := repo.users[result.User.ID]
	stored.IsActive = false

	if _, err := svc.Login(context.Background(), "frank@example.com", "secret1"); !errors.Is(err, domain.ErrAccountDeactivated) {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}
}

func TestAuthService_Authenticate_DeactivatedAfterIssue(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Grace", Email: "grace@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	repo.users[result.User.ID].IsActive = false

	if _, err := svc.Authenticate(context.Background(), result.Token); !errors.Is(err, domain.ErrAccountDeactivated) {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}
}

func TestAuthService_Authenticate_ResetTokenRejected(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Heidi", Email: "heidi@example.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	reset, err := svc.ForgotPassword(context.Background(), "heidi@example.com")
	if err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	if reset == "" {
		t.Fatalf("expected reset token for known email")
	}

	if _, err := svc.Authenticate(context.Background(), reset); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for reset token, got %v", err)
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	token, err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("expected no error for unknown email, got %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token for unknown email")
	}
}

func TestAuthService_ResetPassword_Flow(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Ivan", Email: "ivan@example.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	reset, err := svc.ForgotPassword(context.Background(), "ivan@example.com")
	if err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	if err := svc.ResetPassword(context.Background(), reset, "newpass1"); err != nil {
		t.Fatalf("reset password failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "ivan@example.com", "secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ivan@example.com", "newpass1"); err != nil {
		t.Fatalf("new password should work, got %v", err)
	}
}

func TestAuthService_ResetPassword_SessionTokenRejected(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Judy", Email: "judy@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), result.Token, "newpass1"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for session token, got %v", err)
	}
}

func TestAuthService_UpdatePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Kim", Email: "kim@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.UpdatePassword(context.Background(), result.User.ID, "wrong1", "newpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}
	if err := svc.UpdatePassword(context.Background(), result.User.ID, "secret1", "newpass1"); err != nil {
		t.Fatalf("update password failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "kim@example.com", "newpass1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
