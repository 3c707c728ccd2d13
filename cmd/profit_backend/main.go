package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"github.com/xbordertools/profit_calc_app/internal/core/services"
	"github.com/xbordertools/profit_calc_app/internal/handlers"
	"github.com/xbordertools/profit_calc_app/internal/middleware"
	"github.com/xbordertools/profit_calc_app/internal/platform/config"
	"github.com/xbordertools/profit_calc_app/internal/providers/exchange"
	"github.com/xbordertools/profit_calc_app/internal/repositories/database/pgsql"
	"github.com/xbordertools/profit_calc_app/internal/scheduler"
	"github.com/xbordertools/profit_calc_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Profit Calc Backend API
// @version 1.0
// @description Cross-border e-commerce profit calculator with exchange rate management.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Assemble rate providers in fallback order
	client := &http.Client{}
	providers := []exchange.Provider{
		exchange.NewExchangeRateAPIProvider(cfg.ExchangeRateAPIURL, client),
		exchange.NewFixerProvider(cfg.FixerAPIKey, "", client),
		exchange.NewCurrencyAPIProvider(cfg.CurrencyAPIKey, "", client),
	}
	fetcher := exchange.NewFallbackFetcher(providers, cfg.ProviderTimeout, logger)

	repos := pgsql.NewRepositoryProvider(dbPool)
	svcContainer := services.NewServiceContainer(repos, fetcher, exchange.DefaultRates(), logger)

	// Seed the default table on an empty store so rate resolution works
	// before the first provider refresh lands.
	if err := svcContainer.Refresher.SeedDefaults(ctx); err != nil {
		logger.Error("Failed to seed default rates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Background jobs: hourly refresh, daily retention purge, weekly storage upkeep.
	sched := scheduler.New(logger)
	sched.Register(scheduler.Job{
		Name:     "rate_refresh",
		Interval: cfg.RateRefreshInterval,
		Run:      svcContainer.Refresher.RefreshRates,
	})
	sched.Register(scheduler.Job{
		Name:     "calculation_purge",
		Interval: 24 * time.Hour,
		Run: func(ctx context.Context) error {
			_, err := svcContainer.History.PurgeExpired(ctx)
			return err
		},
	})
	sched.Register(scheduler.Job{
		Name:     "storage_maintenance",
		Interval: 7 * 24 * time.Hour,
		Run:      svcContainer.History.RunStorageMaintenance,
	})
	sched.Start(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	r.Use(middleware.RateLimit(ipLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svcContainer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", slog.String("error", err.Error()))
	}
	sched.Wait()
	logger.Info("Shutdown complete.")
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
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
