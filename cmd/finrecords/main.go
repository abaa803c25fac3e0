package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmanzanog/finrecords/internal/application"
	"github.com/jmanzanog/finrecords/internal/domain"
	"github.com/jmanzanog/finrecords/internal/infrastructure/config"
	"github.com/jmanzanog/finrecords/internal/infrastructure/metrics"
	"github.com/jmanzanog/finrecords/internal/infrastructure/persistence/memory"
	"github.com/jmanzanog/finrecords/internal/infrastructure/persistence/sqldb"
	httpHandler "github.com/jmanzanog/finrecords/internal/interfaces/http"
	"github.com/joho/godotenv"
	_ "github.com/sijms/go-ora/v2"
)

// setupLogger configures and returns a structured logger with source information
func setupLogger(level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLogLevel(level),
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(logger)
	return logger
}

func parseLogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// stores groups the repositories backing the services.
type stores struct {
	transactions  domain.TransactionRepository
	portfolios    domain.PortfolioRepository
	notifications domain.NotificationRepository
	profiles      domain.ProfileRepository
	users         domain.UserRepository
	close         func() error
}

// initializeStores opens the configured backend and runs migrations
func initializeStores(cfg *config.Config) (*stores, error) {
	var db *sql.DB
	var dialect sqldb.Dialect
	var err error

	switch cfg.DBDriver {
	case config.DBDriverMemory:
		return &stores{
			transactions:  memory.NewTransactionRepository(),
			portfolios:    memory.NewPortfolioRepository(),
			notifications: memory.NewNotificationRepository(),
			profiles:      memory.NewProfileRepository(),
			users:         memory.NewUserRepository(),
			close:         func() error { return nil },
		}, nil
	case config.DBDriverPostgres:
		db, err = sql.Open("pgx", cfg.DBDSN)
		dialect = &sqldb.PostgresDialect{}
	case config.DBDriverOracle:
		db, err = sql.Open("oracle", cfg.DBDSN)
		dialect = &sqldb.OracleDialect{}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := dialect.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	wrapper := sqldb.New(db, dialect)
	return &stores{
		transactions:  sqldb.NewTransactionRepository(wrapper),
		portfolios:    sqldb.NewPortfolioRepository(wrapper),
		notifications: sqldb.NewNotificationRepository(wrapper),
		profiles:      sqldb.NewProfileRepository(wrapper),
		users:         sqldb.NewUserRepository(wrapper),
		close:         db.Close,
	}, nil
}

func buildServices(cfg *config.Config, s *stores) httpHandler.Services {
	var guard application.TransactionCounter
	if cfg.PortfolioDeleteGuard {
		guard = s.transactions
	}

	return httpHandler.Services{
		Transactions:  application.NewTransactionService(s.transactions, s.portfolios),
		Notifications: application.NewNotificationService(s.notifications, s.users),
		Profiles:      application.NewProfileService(s.profiles, s.users),
		Portfolios:    application.NewPortfolioService(s.portfolios, s.users, guard),
		Users:         application.NewUserService(s.users),
	}
}

// buildServer creates and configures the HTTP server with all routes and handlers
func buildServer(cfg *config.Config, services httpHandler.Services, m *metrics.Metrics) *http.Server {
	router := gin.New()
	router.Use(gin.Logger())

	handler := httpHandler.NewHandler(services, httpHandler.PageLimits{
		DefaultSize: cfg.DefaultPageSize,
		MaxSize:     cfg.MaxPageSize,
	})
	opts := httpHandler.RouterOptions{APIKey: cfg.APIKey}
	if m != nil {
		opts.Metrics = m
	}
	httpHandler.SetupRoutes(router, handler, opts)

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// App wraps the application components for easier testing
type App struct {
	Server         *http.Server
	StatsRefresher *application.StatsRefresher
	CancelContext  context.CancelFunc
	closeStores    func() error
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	a.StatsRefresher.Stop()
	a.CancelContext()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.closeStores != nil {
		if err := a.closeStores(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}

	return nil
}

// run contains the main application logic without os.Exit calls
func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogger(cfg.LogLevel)
	slog.Info("Using record store", "driver", cfg.DBDriver)

	s, err := initializeStores(cfg)
	if err != nil {
		return fmt.Errorf("database initialization failed: %w", err)
	}

	services := buildServices(cfg, s)
	m := metrics.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inventory := application.NewInventory(s.transactions, s.portfolios, s.notifications, s.profiles, s.users)
	refresher := application.NewStatsRefresher(inventory, m, cfg.StatsRefreshInterval)
	go refresher.Start(ctx)

	server := buildServer(cfg, services, m)

	app := &App{
		Server:         server,
		StatsRefresher: refresher,
		CancelContext:  cancel,
		closeStores:    s.close,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "host", cfg.ServerHost, "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
		slog.Info("Received shutdown signal")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	slog.Info("Server exited gracefully")
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("Application error", "error", err)
		os.Exit(1)
	}
}
