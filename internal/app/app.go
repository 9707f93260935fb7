// Package app assembles the storage, cache, alerting and triage components
// shared by the server binaries and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/alerts"
	"github.com/symptom-triage-server/internal/api"
	"github.com/symptom-triage-server/internal/cache"
	"github.com/symptom-triage-server/internal/config"
	"github.com/symptom-triage-server/internal/database"
	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/feedback"
	"github.com/symptom-triage-server/internal/knowledge"
	"github.com/symptom-triage-server/internal/repository"
	"github.com/symptom-triage-server/internal/service"
)

// FeedbackFile is the SQLite feedback database kept next to the symptom-check file
const FeedbackFile = "feedback.db"

// App holds the wired components. Close releases everything it opened.
type App struct {
	Config     *domain.Config
	Logger     *logrus.Logger
	Knowledge  *knowledge.KnowledgeBase
	Repository domain.SymptomCheckRepository
	Feedback   feedback.Store
	Checks     *service.SymptomCheckService
	Alerts     *alerts.Hub
	Health     []api.HealthCheck

	closers []func() error
}

// New builds an App from configuration. Postgres migrations run before the
// repository is opened. An unreachable Redis leaves the memory cache in place.
func New(ctx context.Context, cfg *domain.Config, logger *logrus.Logger) (*App, error) {
	a := &App{
		Config:    cfg,
		Logger:    logger,
		Knowledge: knowledge.Default(),
	}

	warnMissingConditions(a.Knowledge, logger)

	if err := a.openStorage(ctx); err != nil {
		a.Close()
		return nil, err
	}

	opts, err := a.openCache(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Alerts.Enabled {
		a.Alerts = alerts.NewHub(cfg.Alerts.BufferSize, logger)
		opts = append(opts, service.WithAlertPublisher(a.Alerts, cfg.Alerts.MinUrgency))
	}

	engine := service.NewTriageEngine(a.Knowledge, logger)
	a.Checks = service.NewSymptomCheckService(engine, a.Repository, logger, opts...)

	logger.WithFields(logrus.Fields{
		"storage": cfg.Storage.Driver,
		"cache":   cfg.Cache.Enabled,
		"alerts":  cfg.Alerts.Enabled,
	}).Info("Application components initialized")

	return a, nil
}

func warnMissingConditions(kb *knowledge.KnowledgeBase, logger *logrus.Logger) {
	if missing := kb.MissingConditions(); len(missing) > 0 {
		logger.WithField("conditions", missing).Warn("Conditions without detail entries will use a generic description")
	}
}

func (a *App) openStorage(ctx context.Context) error {
	cfg := a.Config

	switch cfg.Storage.Driver {
	case domain.StoragePostgres:
		dbConfig := database.ConfigFromDomain(cfg.Database)

		runner, err := database.NewMigrationRunner(dbConfig.URL(), cfg.Storage.MigrationsPath, a.Logger)
		if err != nil {
			return fmt.Errorf("failed to prepare migrations: %w", err)
		}
		err = runner.Up()
		runner.Close()
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		db, err := database.NewConnection(ctx, dbConfig, a.Logger)
		if err != nil {
			return err
		}
		a.onClose(func() error { db.Close(); return nil })
		a.Repository = repository.NewSymptomCheckRepository(db.Pool, a.Logger)
		a.Health = append(a.Health, api.HealthCheck{Name: "database", Check: db.Health})

	case domain.StorageSQLite:
		if err := config.EnsureDataDir(cfg.Storage.SQLitePath); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		repo, err := repository.NewSQLiteSymptomCheckRepository(cfg.Storage.SQLitePath, a.Logger)
		if err != nil {
			return err
		}
		a.onClose(repo.Close)
		a.Repository = repo
		a.Health = append(a.Health, api.HealthCheck{Name: "database", Check: repo.Ping})

	default:
		return fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}

	store, err := OpenFeedbackStore(cfg)
	if err != nil {
		return err
	}
	a.onClose(store.Close)
	a.Feedback = store
	return nil
}

// OpenFeedbackStore opens the clinician feedback store for the configured driver.
// Postgres expects the schema to be migrated already.
func OpenFeedbackStore(cfg *domain.Config) (feedback.Store, error) {
	var (
		store feedback.Store
		err   error
	)
	switch cfg.Storage.Driver {
	case domain.StoragePostgres:
		store, err = feedback.NewPostgresStoreFromURL(database.ConfigFromDomain(cfg.Database).URL(),
			cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime)
	case domain.StorageSQLite:
		store, err = feedback.NewSQLiteStore(filepath.Join(filepath.Dir(cfg.Storage.SQLitePath), FeedbackFile))
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback store: %w", err)
	}
	return store, nil
}

func (a *App) openCache(ctx context.Context) ([]service.ServiceOption, error) {
	cfg := a.Config.Cache
	if !cfg.Enabled {
		return nil, nil
	}

	memory, err := cache.NewMemoryCache(cfg.MemoryMaxItems, cfg.MemoryTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}

	var remote domain.ResultCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg)
		if err != nil {
			a.Logger.WithError(err).Warn("Redis unavailable, using in-memory cache only")
		} else {
			a.onClose(redisCache.Close)
			a.Health = append(a.Health, api.HealthCheck{Name: "cache", Check: redisCache.Health})
			remote = redisCache
		}
	}

	tiered := cache.NewTieredCache(memory, remote, cache.BreakerSettings{
		ConsecutiveFailures: cfg.BreakerFailures,
		OpenTimeout:         cfg.BreakerOpenDelay,
	}, a.Logger)

	return []service.ServiceOption{service.WithResultCache(tiered, cfg.DefaultTTL)}, nil
}

func (a *App) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close releases resources in reverse order of acquisition
func (a *App) Close() error {
	var errs []error
	if a.Alerts != nil {
		a.Alerts.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
