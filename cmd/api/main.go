// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"github.com/carterperez-dev/labsamples/internal/admin"
	"github.com/carterperez-dev/labsamples/internal/auth"
	"github.com/carterperez-dev/labsamples/internal/config"
	"github.com/carterperez-dev/labsamples/internal/core"
	"github.com/carterperez-dev/labsamples/internal/health"
	"github.com/carterperez-dev/labsamples/internal/middleware"
	"github.com/carterperez-dev/labsamples/internal/sample"
	"github.com/carterperez-dev/labsamples/internal/server"
	"github.com/carterperez-dev/labsamples/internal/user"
)

const (
	drainDelay = 5 * time.Second
	tracerName = "github.com/carterperez-dev/labsamples"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	envFile := flag.String("env-file", ".env", "optional dotenv file")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("load env file", "path", *envFile, "error", err)
		os.Exit(1)
	}

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	tracer := otel.Tracer(tracerName)
	if telemetry != nil {
		tracer = telemetry.Tracer
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if err := db.Migrate(ctx); err != nil {
		return err
	}
	logger.Info("database migrations applied")

	redis, err := core.NewRedis(ctx, cfg.Redis, cfg.Otel.ServiceName)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(
		jwtManager,
		userSvc,
		auth.NewRedisRevocationList(redis.Client),
	)
	authHandler := auth.NewHandler(authSvc)

	sampleOpts := []sample.ServiceOption{sample.WithTracer(tracer)}
	if cfg.Sample.DefaultOwnerID != "" {
		sampleOpts = append(
			sampleOpts,
			sample.WithDefaultOwner(cfg.Sample.DefaultOwnerID),
		)
		if _, err := userSvc.GetByID(ctx, cfg.Sample.DefaultOwnerID); err != nil {
			if !errors.Is(err, core.ErrNotFound) {
				return fmt.Errorf("look up default sample owner: %w", err)
			}
			logger.Warn("default sample owner does not exist yet",
				"default_owner_id", cfg.Sample.DefaultOwnerID,
			)
		}
		logger.Info("anonymous submissions enabled",
			"default_owner_id", cfg.Sample.DefaultOwnerID,
		)
	}
	sampleSvc := sample.NewService(sample.NewRepository(db.DB), sampleOpts...)
	sampleHandler := sample.NewHandler(sampleSvc)

	adminSvc := admin.NewService(userSvc, sampleSvc, admin.PostgresTx(db.DB))
	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Service:    adminSvc,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	healthHandler := health.NewHandler(map[string]health.Checker{
		"database": db,
		"redis":    redis,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing(tracer))
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc)
	optionalAuth := middleware.OptionalAuth(authSvc)
	loginLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.LoginRequests,
				cfg.RateLimit.LoginBurst,
			),
			KeyFunc:  middleware.KeyByUserAndEndpoint,
			FailOpen: true,
		},
	).Handler

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator, loginLimiter)
		userHandler.RegisterRoutes(r, authenticator)
		sampleHandler.RegisterRoutes(r, authenticator, optionalAuth)
		adminHandler.RegisterRoutes(r, authenticator)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
