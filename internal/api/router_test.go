package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spandanmajumder/portfolio/internal/api/handler"
	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/service"
	"github.com/spandanmajumder/portfolio/internal/testutil/memstore"
)

const (
	cookieName = "portfolio_session"
	maxUpload  = 10 << 20
)

type testApp struct {
	e         *echo.Echo
	portfolio *memstore.PortfolioRepository
	messages  *memstore.MessageRepository
	settings  *memstore.SettingRepository
	files     *memstore.FileStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := zerolog.Nop()
	app := &testApp{
		portfolio: memstore.NewPortfolioRepository(),
		messages:  memstore.NewMessageRepository(),
		settings:  memstore.NewSettingRepository(),
		files:     memstore.NewFileStore(),
	}

	auth := service.NewAuthService(memstore.NewUserRepository(), memstore.NewSessionStore(), service.AuthConfig{
		Secret:        "test-secret",
		SessionTTL:    time.Hour,
		AdminEmail:    "admin@portfolio.com",
		AdminPassword: "admin123",
	}, log)
	require.NoError(t, auth.EnsureDefaultAdmin(context.Background()))

	e, err := NewRouter(Deps{
		Log:       log,
		Auth:      auth,
		Portfolio: service.NewPortfolioService(app.portfolio, log),
		CaseStudy: service.NewCaseStudyService(memstore.NewCaseStudyRepository(), log),
		Messages:  service.NewMessageService(app.messages, log),
		Settings:  service.NewSettingService(app.settings, log),
		Uploads:   service.NewUploadService(app.files, maxUpload, log),
		Health: map[string]handler.HealthCheck{
			"mongodb": func(context.Context) error { return nil },
		},
		Cookie:           handler.CookieConfig{Name: cookieName},
		ContactRateLimit: 100,
		LoginRateLimit:   100,
		RequestTimeout:   5 * time.Second,
	})
	require.NoError(t, err)
	app.e = e
	return app
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) login(t *testing.T) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"admin@portfolio.com","password":"admin123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := a.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("no session cookie in login response")
	return nil
}

type part struct {
	field, filename string
	content         []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...part) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = fw.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRouter_AdminRoutesRequireSession(t *testing.T) {
	app := newTestApp(t)

	body, ct := multipartBody(t, map[string]string{"title": "Shop", "description": "desc"})
	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil),
		httptest.NewRequest(http.MethodDelete, "/api/admin/portfolio/1", nil),
		httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(`{"key":"k","value":"v"}`)),
		httptest.NewRequest(http.MethodGet, "/api/auth/user", nil),
	}
	post := httptest.NewRequest(http.MethodPost, "/api/admin/portfolio", body)
	post.Header.Set(echo.HeaderContentType, ct)
	requests = append(requests, post)

	for _, req := range requests {
		rec := app.do(req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", req.Method, req.URL.Path)
	}
	assert.Zero(t, app.portfolio.Writes())
	assert.Zero(t, app.messages.Writes())

	settings, _ := app.settings.List(context.Background())
	assert.Empty(t, settings)
}

func TestRouter_ForgedCookieIsRejected(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "forged"})

	assert.Equal(t, http.StatusUnauthorized, app.do(req).Code)
}

func TestRouter_LoginLogout(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"admin@portfolio.com","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := app.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decode[map[string]any](t, rec)["message"])

	cookie := app.login(t)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.AddCookie(cookie)
	rec = app.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode[map[string]any](t, rec)
	assert.Equal(t, "admin@portfolio.com", user["email"])
	assert.NotContains(t, rec.Body.String(), "password")

	req = httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(cookie)
	require.Equal(t, http.StatusOK, app.do(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.AddCookie(cookie)
	assert.Equal(t, http.StatusUnauthorized, app.do(req).Code)
}

func TestRouter_BearerToken(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+cookie.Value)
	rec := app.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_ContactWithoutAttachment(t *testing.T) {
	app := newTestApp(t)

	body, ct := multipartBody(t, map[string]string{
		"name": "Ada", "email": "ada@example.com", "message": "Hello",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/contact", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := app.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[map[string]any](t, rec)
	assert.Equal(t, "Message sent successfully", resp["message"])

	msgs, err := app.messages.List(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Nil(t, msgs[0].AttachmentURL)
	assert.False(t, msgs[0].Read)
	assert.Equal(t, float64(msgs[0].ID), resp["id"])
}

func TestRouter_ContactValidation(t *testing.T) {
	app := newTestApp(t)

	body, ct := multipartBody(t, map[string]string{"name": "Ada", "email": "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/contact", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := app.do(req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[struct {
		Message string              `json:"message"`
		Errors  []domain.FieldIssue `json:"errors"`
	}](t, rec)
	assert.Equal(t, "Invalid data", resp.Message)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "email", resp.Errors[0].Field)
	assert.Equal(t, "message", resp.Errors[1].Field)
	assert.Zero(t, app.messages.Writes())
}

func TestRouter_ContactOversizedAttachmentRejected(t *testing.T) {
	app := newTestApp(t)

	body, ct := multipartBody(t, map[string]string{
		"name": "Ada", "email": "ada@example.com", "message": "Hello",
	}, part{field: "attachment", filename: "big.bin", content: bytes.Repeat([]byte{0}, 15<<20)})
	req := httptest.NewRequest(http.MethodPost, "/api/contact", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := app.do(req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, app.messages.Writes())
	assert.Empty(t, app.files.Names())
}

func TestRouter_ContactWithAttachment(t *testing.T) {
	app := newTestApp(t)

	body, ct := multipartBody(t, map[string]string{
		"name": "Ada", "email": "ada@example.com", "message": "CV attached",
	}, part{field: "attachment", filename: "cv.txt", content: []byte("experience")})
	req := httptest.NewRequest(http.MethodPost, "/api/contact", body)
	req.Header.Set(echo.HeaderContentType, ct)
	require.Equal(t, http.StatusOK, app.do(req).Code)

	msgs, _ := app.messages.List(context.Background())
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].AttachmentURL)
	assert.True(t, strings.HasPrefix(*msgs[0].AttachmentURL, "/uploads/attachment-"))
	assert.Equal(t, "cv.txt", *msgs[0].AttachmentName)

	content, ok := app.files.Content(*msgs[0].AttachmentURL)
	require.True(t, ok)
	assert.Equal(t, "experience", string(content))
}

func TestRouter_PortfolioLifecycle(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	body, ct := multipartBody(t, map[string]string{
		"title": "Shop", "description": "An online shop", "technologies": `["Vue"]`,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/portfolio", body)
	req.Header.Set(echo.HeaderContentType, ct)
	req.AddCookie(cookie)
	rec := app.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[domain.PortfolioItem](t, rec)
	assert.False(t, created.Featured)

	body, ct = multipartBody(t, map[string]string{"technologies": `["Go","React"]`})
	req = httptest.NewRequest(http.MethodPut, "/api/admin/portfolio/1", body)
	req.Header.Set(echo.HeaderContentType, ct)
	req.AddCookie(cookie)
	rec = app.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored, err := app.portfolio.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "React"}, stored.Technologies)
	assert.Equal(t, "Shop", stored.Title)

	rec = app.do(httptest.NewRequest(http.MethodGet, "/api/portfolio/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Shop", decode[domain.PortfolioItem](t, rec).Title)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/portfolio/1", nil)
	req.AddCookie(cookie)
	require.Equal(t, http.StatusOK, app.do(req).Code)

	assert.Equal(t, http.StatusNotFound, app.do(httptest.NewRequest(http.MethodGet, "/api/portfolio/1", nil)).Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/portfolio/1", nil)
	req.AddCookie(cookie)
	assert.Equal(t, http.StatusNotFound, app.do(req).Code)
}

func TestRouter_PortfolioImageMustBeImage(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	body, ct := multipartBody(t, map[string]string{"title": "Shop", "description": "desc"},
		part{field: "image", filename: "cover.png", content: []byte("definitely not a png")})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/portfolio", body)
	req.Header.Set(echo.HeaderContentType, ct)
	req.AddCookie(cookie)

	assert.Equal(t, http.StatusBadRequest, app.do(req).Code)
	assert.Zero(t, app.portfolio.Writes())
	assert.Empty(t, app.files.Names())
}

func TestRouter_InvalidPathID(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, http.StatusBadRequest, app.do(httptest.NewRequest(http.MethodGet, "/api/portfolio/abc", nil)).Code)
}

func TestRouter_MessagesInbox(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	body, ct := multipartBody(t, map[string]string{"name": "Ada", "email": "ada@example.com", "message": "Hi"})
	req := httptest.NewRequest(http.MethodPost, "/api/contact", body)
	req.Header.Set(echo.HeaderContentType, ct)
	require.Equal(t, http.StatusOK, app.do(req).Code)

	for i := 0; i < 2; i++ {
		req = httptest.NewRequest(http.MethodPut, "/api/admin/messages/1/read", nil)
		req.AddCookie(cookie)
		rec := app.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[domain.ContactMessage](t, rec).Read)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/messages/1", nil)
	req.AddCookie(cookie)
	require.Equal(t, http.StatusOK, app.do(req).Code)

	req = httptest.NewRequest(http.MethodPut, "/api/admin/messages/1/read", nil)
	req.AddCookie(cookie)
	assert.Equal(t, http.StatusNotFound, app.do(req).Code)
}

func TestRouter_Settings(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	put := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.AddCookie(cookie)
		return app.do(req)
	}

	require.Equal(t, http.StatusOK, put(`{"key":"site_title","value":"Portfolio"}`).Code)
	require.Equal(t, http.StatusOK, put(`{"key":"github","value":null}`).Code)
	assert.Equal(t, http.StatusBadRequest, put(`{"value":"x"}`).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	req.AddCookie(cookie)
	rec := app.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	settings := decode[[]domain.AdminSetting](t, rec)
	require.Len(t, settings, 2)
	assert.Equal(t, "github", settings[0].Key)
	assert.Nil(t, settings[0].Value)
	assert.Equal(t, "Portfolio", *settings[1].Value)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusOK, app.do(httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
	assert.Equal(t, http.StatusOK, app.do(httptest.NewRequest(http.MethodGet, "/health/ready", nil)).Code)

	app.do(httptest.NewRequest(http.MethodGet, "/api/portfolio", nil))
	rec := app.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "portfolio_http_requests_total")
}

func TestRouter_UnknownRoute(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message"`)
}
