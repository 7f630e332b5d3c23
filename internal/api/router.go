package api

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/spandanmajumder/portfolio/internal/api/handler"
	"github.com/spandanmajumder/portfolio/internal/api/metrics"
	"github.com/spandanmajumder/portfolio/internal/api/middleware"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

// multipartOverhead is the allowance for form fields and part headers on top
// of the largest accepted file.
const multipartOverhead = 1 << 20

// Deps carries everything the router needs. Services are ports so tests can
// pass in-memory implementations.
type Deps struct {
	Log zerolog.Logger

	Auth      ports.AuthService
	Portfolio ports.PortfolioService
	CaseStudy ports.CaseStudyService
	Messages  ports.MessageService
	Settings  ports.SettingService
	Uploads   ports.UploadService

	Health map[string]handler.HealthCheck
	Cookie handler.CookieConfig

	// UploadDir is served at UploadURLPrefix when set (local storage driver).
	UploadDir       string
	UploadURLPrefix string

	CORSOrigins      []string
	ContactRateLimit int
	LoginRateLimit   int
	RequestTimeout   time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	metricsMW, metricsHandler, err := metrics.HTTP()
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(metricsMW)
	if len(d.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     d.CORSOrigins,
			AllowCredentials: true,
		}))
	}
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dB", d.Uploads.MaxBytes()+multipartOverhead)))
	if d.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeout(d.RequestTimeout))
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie)
	portfolioHandler := handler.NewPortfolioHandler(d.Portfolio, d.Uploads)
	caseStudyHandler := handler.NewCaseStudyHandler(d.CaseStudy, d.Uploads)
	contactHandler := handler.NewContactHandler(d.Messages, d.Uploads)
	messageHandler := handler.NewMessageHandler(d.Messages)
	settingHandler := handler.NewSettingHandler(d.Settings)
	healthHandler := handler.NewHealthHandler(d.Health)

	requireSession := middleware.Session(d.Auth, d.Cookie.Name)
	loginLimit := middleware.RateLimit(d.LoginRateLimit)

	// --- Health, metrics, docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", metricsHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.UploadDir != "" {
		e.Static(d.UploadURLPrefix, d.UploadDir)
	}

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/login", authHandler.Login, loginLimit)
	api.POST("/logout", authHandler.Logout)
	api.POST("/auth/login", authHandler.Login, loginLimit)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/user", authHandler.CurrentUser, requireSession)

	// --- Public content ---
	api.GET("/portfolio", portfolioHandler.List)
	api.GET("/portfolio/featured", portfolioHandler.Featured)
	api.GET("/portfolio/:id", portfolioHandler.Get)
	api.GET("/case-studies", caseStudyHandler.List)
	api.GET("/case-studies/featured", caseStudyHandler.Featured)
	api.GET("/case-studies/:id", caseStudyHandler.Get)
	api.POST("/contact", contactHandler.Submit, middleware.RateLimit(d.ContactRateLimit))

	// --- Admin ---
	admin := api.Group("/admin", requireSession)

	admin.GET("/portfolio", portfolioHandler.List)
	admin.GET("/portfolio/:id", portfolioHandler.Get)
	admin.POST("/portfolio", portfolioHandler.Create)
	admin.PUT("/portfolio/:id", portfolioHandler.Update)
	admin.DELETE("/portfolio/:id", portfolioHandler.Delete)

	admin.GET("/case-studies", caseStudyHandler.List)
	admin.GET("/case-studies/:id", caseStudyHandler.Get)
	admin.POST("/case-studies", caseStudyHandler.Create)
	admin.PUT("/case-studies/:id", caseStudyHandler.Update)
	admin.DELETE("/case-studies/:id", caseStudyHandler.Delete)

	admin.GET("/messages", messageHandler.List)
	admin.PUT("/messages/:id/read", messageHandler.MarkAsRead)
	admin.DELETE("/messages/:id", messageHandler.Delete)

	admin.GET("/settings", settingHandler.List)
	admin.PUT("/settings", settingHandler.Upsert)

	return e, nil
}
