package ports

import (
	"context"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
)

// UserRepository defines persistence for admin accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create inserts the user as given; ID must be set by the caller.
	// Returns domain.ErrUserExists when the id or email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// SessionStore keeps server-side sessions. Entries expire on their own once
// the TTL passed to Save has elapsed.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session) error
	// Get returns domain.ErrUnauthorized when the session is absent or expired.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
}
