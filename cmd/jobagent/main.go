package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/jobagent/jobagent/config"
	"github.com/jobagent/jobagent/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting jobagent",
		"auth_mode", cfg.Auth.Mode,
		"origin", cfg.Auth.Origin,
		"addr", cfg.HTTP.Addr,
	)

	db, redisClient, err := initInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close database failed", "error", cerr)
			}
		}()
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	if db != nil && cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	}

	auth, err := bootstrap.BuildAuthStack(bootstrap.AuthDeps{
		Auth:        cfg.Auth,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("build auth stack: %w", err)
	}

	server, err := bootstrap.BuildHTTPServer(bootstrap.HTTPServerConfig{
		Config: &cfg,
		Auth:   auth,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("build http server: %w", err)
	}

	return bootstrap.RunHTTPServer(ctx, server, cfg.HTTP.ShutdownTimeout, logger)
}

// initInfrastructure connects the backing stores the configured auth mode
// needs. Mock mode keeps everything in process and needs neither.
//
//nolint:ireturn // redis.UniversalClient keeps the client type flexible for callers.
func initInfrastructure(
	ctx context.Context,
	cfg *appconfig.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	if cfg.Auth.Mode == appconfig.AuthModeMock {
		return nil, nil, nil
	}

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cfg.Postgres,
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}

	redisClient, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cfg.Redis,
		Logger:      logger,
	})
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database after redis connect failure", "error", cerr)
		}
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	return db, redisClient, nil
}
