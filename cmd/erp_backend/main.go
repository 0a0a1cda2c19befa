package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/erp_core_backend/internal/core/events"
	"github.com/SscSPs/erp_core_backend/internal/core/services"
	"github.com/SscSPs/erp_core_backend/internal/platform/config"
	"github.com/SscSPs/erp_core_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/erp_core_backend/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg); err != nil {
		os.Exit(1)
	}

	// Wire repositories, the event registry, and the service layer.
	repos := pgsql.NewRepositories(dbPool)
	registry := events.NewRegistry(logger)
	registerDefaultSubscribers(registry, logger)
	svc := services.NewContainer(repos, registry, logger)
	_ = svc

	logger.Info("Core services initialized. Waiting for shutdown signal.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutdown signal received, closing.")
}

// runMigrations applies all pending schema migrations before the service
// layer starts.
func runMigrations(logger *slog.Logger, cfg *config.Config) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations, using the
	// pgx stdlib driver to stay compatible with the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// registerDefaultSubscribers attaches the built-in event handlers. Handlers
// run after commit; failures are logged by the registry and never affect the
// committed unit of work.
func registerDefaultSubscribers(registry *events.Registry, logger *slog.Logger) {
	registry.Subscribe(events.TypeStockLevelChanged, events.HandlerFunc(func(_ context.Context, ev events.DomainEvent) error {
		change, ok := ev.(events.StockLevelChanged)
		if !ok {
			return nil
		}
		logger.Warn("stock at or below minimum",
			slog.String("product_id", change.ProductID),
			slog.Int64("quantity", change.NewQuantity),
			slog.Int64("minimum_quantity", change.MinimumQuantity),
		)
		return nil
	}))

	registry.Subscribe(events.TypeAuditCompleted, events.HandlerFunc(func(_ context.Context, ev events.DomainEvent) error {
		completed, ok := ev.(events.AuditCompleted)
		if !ok {
			return nil
		}
		logger.Info("stock audit completed",
			slog.String("audit_id", completed.AuditID),
			slog.Int("variance_items", completed.VarianceItems),
			slog.Int64("total_variance", completed.TotalVariance),
		)
		return nil
	}))
}
