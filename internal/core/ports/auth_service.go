package ports

import (
	"context"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
)

// LoginResult carries the signed session token handed to the client.
type LoginResult struct {
	Token   string
	Session *domain.Session
	User    *domain.User
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a signed token to a live session or returns
	// domain.ErrUnauthorized.
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
	CurrentUser(ctx context.Context, session *domain.Session) (*domain.User, error)
	EnsureDefaultAdmin(ctx context.Context) error
}
