package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret     string `env:"JWT_SECRET, required"`
	SessionSecret string `env:"SESSION_SECRET, required"`
	BcryptCost    int    `env:"BCRYPT_COST, default=10"`

	CORSAllowOrigins    []string      `env:"CORS_ALLOW_ORIGINS, default=*"`
	CarouselRequireAuth bool          `env:"CAROUSEL_REQUIRE_AUTH, default=false"`
	MessageDedupWindow  time.Duration `env:"MESSAGE_DEDUP_WINDOW, default=10m"`
	AuditWorkers        int           `env:"AUDIT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
	S3    S3Config
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=portfolio"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// S3Config points at an S3-compatible bucket for carousel uploads. Uploads
// are disabled when Bucket is empty.
type S3Config struct {
	Bucket        string        `env:"S3_BUCKET"`
	Region        string        `env:"S3_REGION, default=us-east-1"`
	Endpoint      string        `env:"S3_ENDPOINT"`
	AccessKey     string        `env:"S3_ACCESS_KEY"`
	SecretKey     string        `env:"S3_SECRET_KEY"`
	PublicBaseURL string        `env:"S3_PUBLIC_BASE_URL"`
	PresignTTL    time.Duration `env:"S3_PRESIGN_TTL, default=15m"`
}

// Enabled reports whether carousel uploads are configured.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// IsDevelopment reports whether the service runs in a local development setup.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l. Missing or blank signing secrets and
// a missing Mongo URI are errors: the process must not start without them.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be blank"))
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		errs = append(errs, errors.New("SESSION_SECRET must not be blank"))
	}
	if strings.TrimSpace(c.Mongo.URI) == "" {
		errs = append(errs, errors.New("MONGO_URI must not be blank"))
	}
	if c.AuditWorkers < 0 {
		errs = append(errs, errors.New("AUDIT_WORKERS must not be negative"))
	}
	if c.MessageDedupWindow < 0 {
		errs = append(errs, errors.New("MESSAGE_DEDUP_WINDOW must not be negative"))
	}
	return errors.Join(errs...)
}
