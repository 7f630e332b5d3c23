package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/spandanmajumder/portfolio/internal/api/middleware"
	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

type stubAuthService struct {
	loginFn       func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn      func(ctx context.Context, token string) error
	currentUserFn func(ctx context.Context, s *domain.Session) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrUnauthorized
}

func (s *stubAuthService) CurrentUser(ctx context.Context, sess *domain.Session) (*domain.User, error) {
	return s.currentUserFn(ctx, sess)
}

func (s *stubAuthService) EnsureDefaultAdmin(context.Context) error { return nil }

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	e := echo.New()
	expires := time.Now().Add(time.Hour)
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "admin@portfolio.com" || password != "admin123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				Token:   "signed-token",
				Session: &domain.Session{ID: "s1", UserID: "admin", ExpiresAt: expires},
				User:    &domain.User{ID: "admin", Email: email, PasswordHash: "secret-hash"},
			}, nil
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: "sid", Secure: true})

	body := strings.NewReader(`{"email":"admin@portfolio.com","password":"admin123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != "sid" || ck.Value != "signed-token" || !ck.HttpOnly || !ck.Secure {
		t.Fatalf("unexpected cookie: %+v", ck)
	}

	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked in response: %s", rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "admin@portfolio.com" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: "sid"})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"x@y.z","password":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie should be set on failure")
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := echo.New()
	var loggedOut string
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			loggedOut = token
			return nil
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: "sid"})

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "tok"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loggedOut != "tok" {
		t.Fatalf("expected session token to be revoked, got %q", loggedOut)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		logoutFn: func(context.Context, string) error {
			t.Fatalf("logout should not be called without a token")
			return nil
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: "sid"})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/logout", nil), rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		currentUserFn: func(_ context.Context, s *domain.Session) (*domain.User, error) {
			return &domain.User{ID: s.UserID, Email: "admin@portfolio.com"}, nil
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: "sid"})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/user", nil), rec)
	c.Set(middleware.SessionContextKey, &domain.Session{ID: "s1", UserID: "admin"})

	if err := h.CurrentUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"id":"admin"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_CurrentUser_NoSession(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAuthService{}, CookieConfig{Name: "sid"})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/user", nil), httptest.NewRecorder())

	err := h.CurrentUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
