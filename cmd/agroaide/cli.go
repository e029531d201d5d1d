package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/agroaide/agroaide-client/internal/apiclient"
	"github.com/agroaide/agroaide-client/internal/app"
	"github.com/agroaide/agroaide-client/internal/config"
	"github.com/agroaide/agroaide-client/internal/query"
	"github.com/agroaide/agroaide-client/internal/services"
	"github.com/agroaide/agroaide-client/internal/session"
	"github.com/agroaide/agroaide-client/internal/store"
)

const shutdownTimeout = 5 * time.Second

// cli holds everything a command needs. It is populated by open and
// released by close.
type cli struct {
	out io.Writer

	apiURL    string
	dbPath    string
	ephemeral bool

	cfg       *config.Config
	repo      store.Repository
	session   *session.Store
	persister *session.Persister
	app       *app.App
}

// open builds the dependency graph: logger, config, repository, session
// store, API client, services, cache and app.
func (rt *cli) open(ctx context.Context) error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	// Flags override the environment.
	if rt.apiURL != "" {
		_ = os.Setenv("AGROAIDE_API_URL", rt.apiURL)
	}
	if rt.dbPath != "" {
		_ = os.Setenv("AGROAIDE_DB_PATH", rt.dbPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if rt.ephemeral {
		cfg.Ephemeral = true
	}
	rt.cfg = cfg

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.Ephemeral {
		rt.repo = store.NewMemory()
	} else {
		repo, err := store.NewSQLite(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		rt.repo = repo
	}
	if err := rt.repo.Ping(ctx); err != nil {
		return fmt.Errorf("database health check: %w", err)
	}

	rt.session = session.New(logger)
	if err := rt.session.Hydrate(ctx, rt.repo); err != nil {
		logger.Warn("Failed to restore session, starting fresh", "error", err)
	}
	rt.persister = session.NewPersister(rt.session, rt.repo, logger)

	client, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("create api client: %w", err)
	}

	cache := query.New(query.Config{StaleTime: cfg.CacheStaleTime, Logger: logger})
	rt.app = app.New(rt.session, services.New(client), cache, logger)

	logger.Debug("Client ready",
		"api_url", cfg.APIURL,
		"db_path", cfg.DBPath,
		"ephemeral", cfg.Ephemeral)

	return rt.app.Bootstrap(ctx)
}

// close flushes the session and releases the repository.
func (rt *cli) close() {
	if rt.persister != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := rt.persister.Close(ctx); err != nil {
			slog.Error("Failed to flush session", "error", err)
		}
	}
	if rt.repo != nil {
		if err := rt.repo.Close(); err != nil {
			slog.Error("Failed to close repository", "error", err)
		}
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// print writes v to stdout as indented JSON.
func (rt *cli) print(v any) error {
	enc := json.NewEncoder(rt.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printMessage writes a {message} object.
func (rt *cli) printMessage(msg string) error {
	return rt.print(map[string]string{"message": msg})
}

// result prints v unless err is set.
func result[T any](rt *cli, v *T, err error) error {
	if err != nil {
		return err
	}
	return rt.print(v)
}

var errUsage = errors.New("invalid arguments")
