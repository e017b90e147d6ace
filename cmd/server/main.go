// Command server runs the portfolio API.
//
// @title                       Portfolio API
// @version                     1.0
// @description                 Authentication, contact inbox, projects and carousel for the portfolio site.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        authorization
package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/folio-labs/portfolio-api/internal/api"
	"github.com/folio-labs/portfolio-api/internal/api/handler"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
	"github.com/folio-labs/portfolio-api/internal/core/service"
	"github.com/folio-labs/portfolio-api/internal/infrastructure/config"
	"github.com/folio-labs/portfolio-api/internal/infrastructure/db/mongo"
	"github.com/folio-labs/portfolio-api/internal/infrastructure/db/redis"
	"github.com/folio-labs/portfolio-api/internal/infrastructure/queue"
	"github.com/folio-labs/portfolio-api/internal/infrastructure/security"
	"github.com/folio-labs/portfolio-api/internal/infrastructure/storage"
	"github.com/folio-labs/portfolio-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		bootLog := newBootLogger(os.Stderr)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "portfolio-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Document store ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	healthChecks := []handler.HealthCheck{handler.MongoCheck(db)}

	// --- Dedup store (optional) ---
	var dedup ports.MessageDeduplicator
	if cfg.MessageDedupWindow > 0 {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, message dedup disabled")
		} else {
			defer closeRedis(rdb, log)
			dedup = redis.NewMessageDedup(rdb, cfg.MessageDedupWindow)
			healthChecks = append(healthChecks, handler.RedisCheck(rdb))
			log.Info().Dur("window", cfg.MessageDedupWindow).Msg("message dedup enabled")
		}
	}

	// --- Object storage (optional) ---
	var presigner ports.UploadPresigner
	if cfg.S3.Enabled() {
		p, err := storage.NewS3Presigner(ctx, storage.S3Config{
			Bucket:        cfg.S3.Bucket,
			Region:        cfg.S3.Region,
			Endpoint:      cfg.S3.Endpoint,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return err
		}
		presigner = p
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("carousel uploads enabled")
	}

	// --- Security ---
	hasher, err := security.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := security.NewJWTManager(cfg.JWTSecret)
	if err != nil {
		return err
	}

	// --- Audit trail ---
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, mongo.NewAuditRepository(db), logger.Component("audit"))
	dispatcher.Start()
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := dispatcher.Close(dctx); err != nil {
			log.Warn().Err(err).Msg("audit queue not fully drained")
		}
	}()

	// --- Services ---
	users := mongo.NewUserRepository(db)
	services := api.Services{
		Auth:     service.NewAuthService(users, hasher, tokens, dispatcher, logger.Component("auth")),
		Users:    service.NewUserService(users, logger.Component("users")),
		Messages: service.NewMessageService(mongo.NewMessageRepository(db), dedup, logger.Component("messages")),
		Projects: service.NewProjectService(mongo.NewProjectRepository(db), logger.Component("projects")),
		Carousel: service.NewCarouselService(mongo.NewCarouselRepository(db), presigner, cfg.S3.PresignTTL, logger.Component("carousel")),
	}

	e := api.NewRouter(api.RouterConfig{
		Services:            services,
		Verifier:            tokens,
		Log:                 log,
		SessionSecret:       cfg.SessionSecret,
		SecureCookies:       !cfg.IsDevelopment(),
		CORSAllowOrigins:    cfg.CORSAllowOrigins,
		CarouselRequireAuth: cfg.CarouselRequireAuth,
		HealthChecks:        healthChecks,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

// newBootLogger writes JSON to w before the configured logger exists.
func newBootLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("service", "portfolio-api").Logger()
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close")
	}
}
