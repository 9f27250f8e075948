package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/handlers"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/bizledger/bizledger_app/internal/platform/analytics"
	"github.com/bizledger/bizledger_app/internal/platform/config"
	"github.com/bizledger/bizledger_app/internal/platform/events"
	"github.com/bizledger/bizledger_app/internal/platform/remote"
	"github.com/bizledger/bizledger_app/internal/repositories/database/pgsql"
	"github.com/bizledger/bizledger_app/internal/repositories/database/sqlite"
	"github.com/bizledger/bizledger_app/pkg/database"
	"github.com/bizledger/bizledger_app/pkg/logging"
)

// @title BizLedger Backend API
// @version 1.0
// @description Financial records backend with a runtime-switchable local/shared store.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.New(cfg.IsProduction)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local backend: always available.
	localStore, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		logger.Error("Failed to open local store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer localStore.Close()
	localRepos := sqlite.NewBackendRepositories(localStore)
	settingsRepo := sqlite.NewSettingsRepository(localStore)
	logger.Info("Local store opened", slog.String("path", cfg.SQLitePath))

	// Shared backend: optional, enabled by PGSQL_URL.
	var (
		dbPool      *pgxpool.Pool
		sharedRepos portsrepo.BackendRepositories
		sharedData  portsrepo.SharedRepositories
		sharedOK    bool
	)
	if cfg.DatabaseURL != "" {
		dbPool, err = database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize shared database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)

		if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		sharedRepos = pgsql.NewBackendRepositories(dbPool)
		sharedData = pgsql.NewSharedRepositories(dbPool)
		sharedOK = true
	} else {
		logger.Warn("Shared backend is not configured, running local-only")
	}

	bus := events.NewBus()
	analyticsClient := analytics.NewClient(cfg.PosthogAPIKey, logger)
	defer analyticsClient.Close()

	container, err := services.NewServiceContainer(ctx, services.ContainerDeps{
		Cfg:          cfg,
		LocalRepos:   localRepos,
		SharedRepos:  sharedRepos,
		SharedOK:     sharedOK,
		SharedData:   sharedData,
		SettingsRepo: settingsRepo,
		Bus:          bus,
		Analytics:    analyticsClient,
	})
	if err != nil {
		logger.Error("Failed to initialize services", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer container.Sync.Close()

	container.Sync.RegisterRefresh(func() {
		logger.Debug("Data refresh triggered by remote change")
	})

	if sharedOK {
		listener := remote.NewListener(dbPool, bus, logger)
		go listener.Run(ctx)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	registerCustomValidations()

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, bus)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies the shared-store migrations from the migrations
// directory, using a temporary database/sql connection over the pgx stdlib
// driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer migrationDB.Close()

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

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// registerCustomValidations adds domain validations to the binding validator.
func registerCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return domain.IsValidCategory(fl.Field().String())
		})
	}
}
