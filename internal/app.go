// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	router "finflow-dashboard/internal/api"
	"finflow-dashboard/internal/api/handler"
	"finflow-dashboard/internal/config"
	"finflow-dashboard/internal/repository"
	"finflow-dashboard/internal/repository/postgres"
	"finflow-dashboard/internal/service"
	"finflow-dashboard/internal/util"
	"finflow-dashboard/migrations"
	"finflow-dashboard/pkg/db"
)

// Application holds all the initialized components of the record-store server.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	ContactRepository     repository.ContactRepository
	TransactionRepository repository.TransactionRepository

	// Services
	TransactionService service.TransactionService

	// HTTP API
	Registry    *prometheus.Registry
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database and migrate the schema
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if err := db.RunMigrations(app.DB, migrations.FS); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	app.Logger.Info("Database schema is up to date.")

	// 4. Initialize Repositories
	app.ContactRepository = postgres.NewContactRepository()
	app.TransactionRepository = postgres.NewTransactionRepository()
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	app.TransactionService = service.NewTransactionService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.ContactRepository,
		app.TransactionRepository,
		app.Config.DefaultCurrency,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewDBStatsCollector(app.DB.DB, app.Config.DB.DBName),
	)
	transactionHandler := handler.NewTransactionHandler(app.TransactionService, app.Logger)
	app.HTTPHandler = router.NewRouter(transactionHandler, app.Registry, app.Config.RequestTimeout, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
