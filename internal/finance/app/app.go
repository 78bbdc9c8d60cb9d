// Package app assembles the finance service: configuration, store, session
// backend, services and the HTTP server, plus its shutdown ordering.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "github.com/pfennigfuchs/pfennig/internal/finance/http"
	"github.com/pfennigfuchs/pfennig/internal/finance/service"
	"github.com/pfennigfuchs/pfennig/internal/finance/session"
	"github.com/pfennigfuchs/pfennig/internal/finance/store"
	"github.com/pfennigfuchs/pfennig/internal/finance/store/drivers/postgres"
	"github.com/pfennigfuchs/pfennig/pkg/cryptox"
	"github.com/pfennigfuchs/pfennig/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the finance service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	redis    *redis.Client
	sessions session.Store
	hasher   *cryptox.Pool

	coordinator *service.SessionCoordinator
	categories  *service.LookupService
	shops       *service.LookupService
	oneoff      *service.OneoffTransactionService
	monthly     *service.MonthlyTransactionService
	analysis    *service.AnalysisService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "finance-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	cryptox.SetPepperPath(cfg.PepperFile)
	app.hasher = cryptox.NewPool(cfg.HashWorkers)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	app.initSessions()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("finance service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops the server, then closes the session backend and database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down finance service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.redis.Close(); err != nil {
		app.logger.Error("error closing session backend", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("finance service stopped")
	return nil
}

// initDatabase connects the pool and applies migrations.
func (app *Application) initDatabase() error {
	ctx := context.Background()

	db, err := postgres.NewStore(ctx, app.cfg.DatabaseURL, int32(app.cfg.DBMaxConns))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initSessions() {
	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	})
	app.sessions = session.NewRedisStore(app.redis, app.cfg.SessionTTL)
}

func (app *Application) initServices() {
	auth := &service.AuthService{Store: app.db, Hasher: app.hasher}

	app.coordinator = &service.SessionCoordinator{
		Auth:     auth,
		Sessions: app.sessions,
		TTL:      app.cfg.SessionTTL,
	}
	app.categories = service.NewCategoryService(app.db)
	app.shops = service.NewShopService(app.db)
	app.oneoff = &service.OneoffTransactionService{Store: app.db}
	app.monthly = &service.MonthlyTransactionService{Store: app.db}
	app.analysis = &service.AnalysisService{Store: app.db}
}

func (app *Application) initHTTP() {
	sessionProbe := func(ctx context.Context) error {
		return app.redis.Ping(ctx).Err()
	}

	router := httpapi.NewRouter(BuildVersion, app.db, sessionProbe, app.logger)
	router.Sessions = app.coordinator
	router.Categories = app.categories
	router.Shops = app.shops
	router.Oneoff = app.oneoff
	router.Monthly = app.monthly
	router.AnalysisService = app.analysis
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
