// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "github.com/shriddemon/value-os-platform/internal/api"
	"github.com/shriddemon/value-os-platform/internal/api/handler"
	"github.com/shriddemon/value-os-platform/internal/config"
	"github.com/shriddemon/value-os-platform/internal/repository"
	"github.com/shriddemon/value-os-platform/internal/repository/postgres"
	"github.com/shriddemon/value-os-platform/internal/service"
	"github.com/shriddemon/value-os-platform/internal/util"
	"github.com/shriddemon/value-os-platform/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	IssuerRepository        repository.IssuerRepository
	UserRepository          repository.UserRepository
	WalletRepository        repository.WalletRepository
	DefinitionRepository    repository.CreditDefinitionRepository
	BalanceRepository       repository.BalanceRepository
	LedgerRepository        repository.LedgerRepository
	PoolRepository          repository.LiquidityPoolRepository
	MerchantRepository      repository.MerchantRepository
	PolicyRepository        repository.PolicyRepository
	EvaluationLogRepository repository.PolicyEvaluationLogRepository

	// Services
	LedgerService service.LedgerService
	PolicyService service.PolicyService
	CreditService service.CreditService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()

	// 2. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database and run migrations
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if err := db.Migrate(ctx, app.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database schema up to date.")

	// 4. Initialize Repositories
	app.IssuerRepository = postgres.NewIssuerRepository()
	app.UserRepository = postgres.NewUserRepository()
	app.WalletRepository = postgres.NewWalletRepository()
	app.DefinitionRepository = postgres.NewCreditDefinitionRepository()
	app.BalanceRepository = postgres.NewBalanceRepository()
	app.LedgerRepository = postgres.NewLedgerRepository()
	app.PoolRepository = postgres.NewLiquidityPoolRepository()
	app.MerchantRepository = postgres.NewMerchantRepository()
	app.PolicyRepository = postgres.NewPolicyRepository()
	app.EvaluationLogRepository = postgres.NewPolicyEvaluationLogRepository()
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.LedgerService = service.NewLedgerService(
		app.DB, // This is the DBTxBeginner
		app.BalanceRepository,
		app.LedgerRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.PolicyService = service.NewPolicyService(
		app.DB, // This is the DBExecutor
		app.PolicyRepository,
		app.EvaluationLogRepository,
		app.Config.PolicyStrictMode,
		app.Logger,
	)
	app.CreditService = service.NewCreditService(
		app.DB,
		app.DB,
		app.IssuerRepository,
		app.DefinitionRepository,
		app.BalanceRepository,
		app.PoolRepository,
		app.MerchantRepository,
		app.LedgerRepository,
		app.EvaluationLogRepository,
		app.LedgerService,
		app.PolicyService,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	creditHandler := handler.NewCreditHandler(app.CreditService, app.Logger)
	policyHandler := handler.NewPolicyHandler(app.PolicyService, app.Logger)
	app.HTTPHandler = router.NewRouter(creditHandler, policyHandler, app.Logger)
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
