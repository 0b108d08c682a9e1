package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/phrazzld/category-api/internal/config"
	"github.com/phrazzld/category-api/internal/events"
	"github.com/phrazzld/category-api/internal/platform/metrics"
	"github.com/phrazzld/category-api/internal/platform/postgres"
	"github.com/phrazzld/category-api/internal/platform/postgres/migrations"
	"github.com/phrazzld/category-api/internal/service"
	"github.com/phrazzld/category-api/internal/store"
	"github.com/phrazzld/category-api/internal/store/memory"
	"github.com/phrazzld/category-api/internal/validation"
)

// countTimeout bounds the category count query run on each metrics scrape.
const countTimeout = 2 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	categoryStore   store.CategoryStore
	categoryService service.CategoryService
	metrics         *metrics.Collector

	eventEmitter events.EventEmitter
	asyncEmitter *events.AsyncEventEmitter
}

// newApplication creates a new application instance with all dependencies initialized.
// A nil db selects the in-memory category store.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize store
	var count metrics.CountFunc
	if db != nil {
		if cfg.Database.AutoMigrate {
			if err := migrations.Up(ctx, db, logger); err != nil {
				return nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		pgStore := postgres.NewPostgresCategoryStore(db, logger)
		app.categoryStore = pgStore
		count = func() float64 {
			countCtx, cancel := context.WithTimeout(context.Background(), countTimeout)
			defer cancel()
			n, err := pgStore.Count(countCtx)
			if err != nil {
				logger.Warn("failed to count categories for metrics", "error", err)
				return math.NaN()
			}
			return float64(n)
		}
		logger.Info("PostgreSQL category store initialized")
	} else {
		memStore := memory.NewCategoryStore(logger)
		app.categoryStore = memStore
		count = func() float64 { return float64(memStore.Count()) }
		logger.Info("In-memory category store initialized")
	}

	app.metrics = metrics.NewCollector(metrics.DefaultNamespace, count)

	// Initialize event system
	dispatcher := events.NewInMemoryEventEmitter(logger)
	dispatcher.RegisterHandler(events.NewLoggingHandler(logger))
	dispatcher.RegisterHandler(app.metrics.EventHandler())
	app.eventEmitter = dispatcher

	if cfg.Events.Workers > 0 {
		app.asyncEmitter = events.NewAsyncEventEmitter(dispatcher, events.AsyncEmitterConfig{
			WorkerCount: cfg.Events.Workers,
			QueueSize:   cfg.Events.QueueSize,
		}, logger)
		app.asyncEmitter.Start()
		app.eventEmitter = app.asyncEmitter
	}

	// Initialize category service
	validator, err := validation.New(validation.RulesFromConfig(cfg.Validation))
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create request validator: %w", err)
	}

	app.categoryService, err = service.NewCategoryService(
		app.categoryStore,
		validator,
		service.NewCategoryFactory(nil),
		service.NewCategoryModifier(),
		app.eventEmitter,
		logger,
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create category service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Deliver queued events before the store goes away
	if app.asyncEmitter != nil {
		app.asyncEmitter.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
