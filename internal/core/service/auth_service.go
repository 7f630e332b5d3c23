package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// AuthConfig holds the settings the auth service needs at construction.
type AuthConfig struct {
	Secret        string
	SessionTTL    time.Duration
	AdminEmail    string
	AdminPassword string
}

// AuthService implements local email/password login backed by server-side
// sessions. The token handed to clients is an HS256 JWT whose jti is the
// session id; the session record is the source of truth.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	secret   []byte
	ttl      time.Duration
	admin    AuthConfig
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, cfg AuthConfig, log zerolog.Logger) *AuthService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		secret:   []byte(cfg.Secret),
		ttl:      ttl,
		admin:    cfg,
		log:      log,
		now:      time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.HasPassword() {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.signToken(session)
	if err != nil {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{Token: token, Session: session, User: user}, nil
}

// Logout removes the session named by token. Unknown, expired or malformed
// tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token, jwt.WithoutClaimsValidation())
	if err != nil || claims.ID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.log.Info().Str("user_id", claims.Subject).Msg("user logged out")
	return nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := s.parseToken(token)
	if err != nil || claims.ID == "" {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if session.UserID != claims.Subject || session.Expired(s.now()) {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, session *domain.Session) (*domain.User, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// EnsureDefaultAdmin creates the bootstrap account when no user holds the
// configured admin email.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	email := normalizeEmail(s.admin.AdminEmail)
	if email == "" || s.admin.AdminPassword == "" {
		return errors.New("default admin email and password must be set")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("look up default admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.admin.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	_, err = s.users.Create(ctx, &domain.User{
		ID:           domain.AdminUserID,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "User",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		// The admin id is held by an account with another email.
		s.log.Warn().Str("email", email).Msg("bootstrap admin id already taken, skipping default admin")
		return nil
	}
	if err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	s.log.Info().Str("email", email).Msg("default admin user created")
	return nil
}

func (s *AuthService) signToken(session *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   session.UserID,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *AuthService) parseToken(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
