// @title           Portfolio API
// @version         1.0
// @description     Public portfolio, case studies and contact form, plus the session-gated admin panel.
// @BasePath        /
// @securityDefinitions.apikey  SessionCookie
// @in                          cookie
// @name                        portfolio_session
// @securityDefinitions.apikey  BearerToken
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	_ "github.com/spandanmajumder/portfolio/docs"
	"github.com/spandanmajumder/portfolio/internal/api"
	"github.com/spandanmajumder/portfolio/internal/api/handler"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
	"github.com/spandanmajumder/portfolio/internal/core/service"
	"github.com/spandanmajumder/portfolio/internal/infrastructure/config"
	mongodb "github.com/spandanmajumder/portfolio/internal/infrastructure/db/mongo"
	redisdb "github.com/spandanmajumder/portfolio/internal/infrastructure/db/redis"
	"github.com/spandanmajumder/portfolio/internal/infrastructure/queue"
	"github.com/spandanmajumder/portfolio/internal/infrastructure/storage"
	"github.com/spandanmajumder/portfolio/pkg/logger"
)

const serviceName = "portfolio-api"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}()

	store, uploadDir, err := fileStore(cfg)
	if err != nil {
		return err
	}
	janitor := queue.NewJanitor(0, store, log)
	janitor.Start(ctx)
	defer func() {
		stop()
		janitor.Wait()
	}()

	// --- Services ---
	authService := service.NewAuthService(
		mongodb.NewUserRepository(db),
		redisdb.NewSessionStore(rdb),
		service.AuthConfig{
			Secret:        cfg.Auth.SessionSecret,
			SessionTTL:    cfg.Auth.SessionTTL,
			AdminEmail:    cfg.Auth.AdminEmail,
			AdminPassword: cfg.Auth.AdminPassword,
		},
		log,
	)
	if err := authService.EnsureDefaultAdmin(ctx); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	router, err := api.NewRouter(api.Deps{
		Log:       log,
		Auth:      authService,
		Portfolio: service.NewPortfolioService(mongodb.NewPortfolioRepository(db), log),
		CaseStudy: service.NewCaseStudyService(mongodb.NewCaseStudyRepository(db), log),
		Messages:  service.NewMessageService(mongodb.NewMessageRepository(db), log),
		Settings:  service.NewSettingService(mongodb.NewSettingRepository(db), log),
		Uploads:   service.NewUploadService(store, cfg.Upload.MaxBytes, log).WithRemovalQueue(janitor),
		Health: map[string]handler.HealthCheck{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Cookie: handler.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.IsProduction(),
		},
		UploadDir:        uploadDir,
		UploadURLPrefix:  cfg.Upload.URLPrefix,
		CORSOrigins:      cfg.CORSOrigins,
		ContactRateLimit: cfg.Limits.Contact,
		LoginRateLimit:   cfg.Limits.Login,
		RequestTimeout:   cfg.RequestTimeout,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server exited")
	return nil
}

// fileStore picks the upload backend. The returned directory is non-empty
// only when files are served by this process.
func fileStore(cfg *config.Config) (ports.FileStore, string, error) {
	switch cfg.Upload.Driver {
	case config.StorageS3:
		s3cfg := storage.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PublicBaseURL:   cfg.S3.PublicBaseURL,
		}
		store, err := storage.NewS3Store(storage.NewS3Client(s3cfg), s3cfg)
		return store, "", err
	default:
		store, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.URLPrefix)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	}
}
