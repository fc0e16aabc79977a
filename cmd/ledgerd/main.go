package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/chriscouch/ledgercore/internal/adapters/rates"
	"github.com/chriscouch/ledgercore/internal/apperrors"
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
	"github.com/chriscouch/ledgercore/internal/core/services"
	"github.com/chriscouch/ledgercore/internal/dto"
	"github.com/chriscouch/ledgercore/internal/handlers"
	"github.com/chriscouch/ledgercore/internal/middleware"
	"github.com/chriscouch/ledgercore/internal/platform/config"
	"github.com/chriscouch/ledgercore/internal/repositories/database/pgsql"
	"github.com/chriscouch/ledgercore/pkg/database"
)

const bootstrapActor = "system"

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := dto.RegisterValidations(); err != nil {
		logger.Error("Failed to register binding validations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	ledger, err := bootstrapLedger(context.Background(), repos, cfg)
	if err != nil {
		logger.Error("Failed to bootstrap ledger", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Ledger ready",
		slog.String("ledger_id", ledger.LedgerID),
		slog.String("ledger_name", ledger.Name),
		slog.String("base_currency", ledger.BaseCurrencyCode))

	var ledgerOptions []services.LedgerServiceOption
	if len(cfg.RoundingAccounts) > 0 {
		ledgerOptions = append(ledgerOptions, services.WithRoundingPolicy(services.MapRoundingPolicy(cfg.RoundingAccounts)))
	}
	serviceContainer := services.NewServiceContainer(repos, *ledger, ledgerOptions...)

	rateProvider := rates.NewHTTPProvider(cfg.RateProviderName, cfg.RateProviderURL, nil)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	handlers.RegisterRoutes(r, serviceContainer, rateProvider)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// bootstrapLedger ensures the configured base currency and ledger exist.
// Every step is an idempotent find-or-create, so restarting is safe.
func bootstrapLedger(ctx context.Context, repos portsrepo.RepositoryProvider, cfg *config.Config) (*domain.Ledger, error) {
	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     bootstrapActor,
		LastUpdatedAt: now,
		LastUpdatedBy: bootstrapActor,
	}

	// Only seed the base currency if nobody registered it yet; the upsert
	// would otherwise overwrite a real catalog entry with defaults.
	if _, err := repos.CurrencyRepo.FindCurrencyByCode(ctx, cfg.BaseCurrencyCode); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if _, err := repos.CurrencyRepo.UpsertCurrency(ctx, domain.Currency{
			CurrencyID:  uuid.NewString(),
			Code:        cfg.BaseCurrencyCode,
			MinorUnit:   2,
			AuditFields: audit,
		}); err != nil {
			return nil, err
		}
	}

	ledger, err := repos.LedgerRepo.FindOrCreateLedger(ctx, domain.Ledger{
		LedgerID:         uuid.NewString(),
		Name:             cfg.LedgerName,
		BaseCurrencyCode: cfg.BaseCurrencyCode,
		AuditFields:      audit,
	})
	if err != nil {
		return nil, err
	}

	// The void type must exist before the first VoidDocument call.
	if _, err := repos.DocumentTypeRepo.UpsertDocumentType(ctx, domain.DocumentType{
		DocumentTypeID: uuid.NewString(),
		Name:           domain.VoidDocumentType,
		AuditFields:    audit,
	}); err != nil {
		return nil, err
	}

	return ledger, nil
}
