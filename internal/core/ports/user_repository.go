package ports

import (
	"context"

	"github.com/medisys/hospital-api/internal/core/domain"
)

// ListUsersFilter carries all query parameters for listing users.
type ListUsersFilter struct {
	Role           domain.Role // empty = all roles
	Search         string      // optional: partial match on name or email
	Specialization string      // optional: partial match, doctors only
	Page           int         // 1-based
	Limit          int
}

// UserRef is the lightweight identity view embedded in appointment and
// prescription responses in place of a full user document.
type UserRef struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. A duplicate email maps to domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail retrieves a user by normalized email. This is the only read
	// path that includes the password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)
	// FindRefs resolves a set of user ids into lightweight refs in one query.
	FindRefs(ctx context.Context, ids []string) (map[string]UserRef, error)
}
