package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT,  default=15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS"`

	Auth   AuthConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Upload UploadConfig
	S3     S3Config
	Limits RateLimitConfig
}

type AuthConfig struct {
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=168h"`
	CookieName    string        `env:"SESSION_COOKIE, default=portfolio_session"`
	AdminEmail    string        `env:"ADMIN_EMAIL,    default=admin@portfolio.com"`
	AdminPassword string        `env:"ADMIN_PASSWORD, default=admin123"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=portfolio"`
}

type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type UploadConfig struct {
	Driver    string `env:"STORAGE_DRIVER,    default=local"`
	Dir       string `env:"UPLOAD_DIR,        default=uploads"`
	URLPrefix string `env:"UPLOAD_URL_PREFIX, default=/uploads"`
	MaxBytes  int64  `env:"UPLOAD_MAX_BYTES,  default=10485760"`
}

type S3Config struct {
	Bucket          string `env:"S3_BUCKET"`
	Region          string `env:"S3_REGION, default=auto"`
	Endpoint        string `env:"S3_ENDPOINT"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
}

// RateLimitConfig is expressed in requests per minute per client IP.
type RateLimitConfig struct {
	Contact int `env:"CONTACT_RATE_LIMIT, default=10"`
	Login   int `env:"LOGIN_RATE_LIMIT,   default=20"`
}

// devSessionSecret is only accepted when ENV=development.
const devSessionSecret = "dev-only-session-secret"

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper; tests pass a
// envconfig.MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.SessionSecret == "" && cfg.IsDevelopment() {
		cfg.Auth.SessionSecret = devSessionSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Env == EnvDevelopment }

func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required outside development"))
	}
	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}
	switch c.Upload.Driver {
	case StorageLocal:
	case StorageS3:
		if c.S3.Bucket == "" || c.S3.PublicBaseURL == "" {
			errs = append(errs, errors.New("S3_BUCKET and S3_PUBLIC_BASE_URL are required for the s3 storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Upload.Driver))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
