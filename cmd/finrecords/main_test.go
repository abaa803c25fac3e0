package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmanzanog/finrecords/internal/application"
	"github.com/jmanzanog/finrecords/internal/domain"
	"github.com/jmanzanog/finrecords/internal/infrastructure/config"
	"github.com/jmanzanog/finrecords/internal/infrastructure/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestSetupLogger(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	logger := setupLogger("warn")
	require.NotNil(t, logger)
	assert.Equal(t, logger, slog.Default())

	ctx := context.Background()
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("loud"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel(""))
}

func memoryConfig() *config.Config {
	return &config.Config{
		ServerHost:           "localhost",
		ServerPort:           "8080",
		DBDriver:             config.DBDriverMemory,
		DefaultPageSize:      20,
		MaxPageSize:          100,
		StatsRefreshInterval: time.Minute,
		PortfolioDeleteGuard: true,
	}
}

func TestInitializeStores_Memory(t *testing.T) {
	s, err := initializeStores(memoryConfig())
	require.NoError(t, err)
	require.NotNil(t, s.transactions)
	require.NotNil(t, s.users)
	assert.NoError(t, s.close())
}

func TestInitializeStores_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "mysql", DBDSN: "some-connection-string"}

	s, err := initializeStores(cfg)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Equal(t, "unsupported database driver: mysql", err.Error())
}

func TestInitializeStores_InvalidDSN(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DBDriverPostgres, DBDSN: "invalid-connection-string"}

	s, err := initializeStores(cfg)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestBuildServer(t *testing.T) {
	testCases := []struct {
		name string
		host string
		port string
		want string
	}{
		{name: "default localhost", host: "localhost", port: "8080", want: "localhost:8080"},
		{name: "all interfaces", host: "0.0.0.0", port: "3000", want: "0.0.0.0:3000"},
		{name: "custom port", host: "127.0.0.1", port: "9090", want: "127.0.0.1:9090"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := memoryConfig()
			cfg.ServerHost = tc.host
			cfg.ServerPort = tc.port

			s, err := initializeStores(cfg)
			require.NoError(t, err)

			server := buildServer(cfg, buildServices(cfg, s), nil)
			assert.Equal(t, tc.want, server.Addr)
			require.NotNil(t, server.Handler)
		})
	}
}

func TestBuildServer_HealthAndMetrics(t *testing.T) {
	cfg := memoryConfig()
	s, err := initializeStores(cfg)
	require.NoError(t, err)

	server := buildServer(cfg, buildServices(cfg, s), metrics.New())

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "finrecords_http_requests_total")
}

func TestBuildServer_APIKey(t *testing.T) {
	cfg := memoryConfig()
	cfg.APIKey = "secret"
	s, err := initializeStores(cfg)
	require.NoError(t, err)

	server := buildServer(cfg, buildServices(cfg, s), nil)

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("X-API-Key", "secret")
	w = httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBuildServices_DeleteGuard(t *testing.T) {
	ctx := context.Background()

	for _, guarded := range []bool{true, false} {
		cfg := memoryConfig()
		cfg.PortfolioDeleteGuard = guarded
		s, err := initializeStores(cfg)
		require.NoError(t, err)
		services := buildServices(cfg, s)

		user, err := services.Users.Create(ctx, application.CreateUserRequest{Name: "Ana", Email: "ana@example.com"})
		require.NoError(t, err)
		portfolio, err := services.Portfolios.Create(ctx, application.CreatePortfolioRequest{Name: "Main", UserID: user.ID})
		require.NoError(t, err)

		amount := domain.MustDecimal("10.50")
		date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
		_, err = services.Transactions.Create(ctx, application.CreateTransactionRequest{
			PortfolioID: portfolio.ID,
			Type:        "BUY",
			Amount:      &amount,
			Date:        &date,
		})
		require.NoError(t, err)

		err = services.Portfolios.Delete(ctx, portfolio.ID)
		if guarded {
			var blocked *domain.DependentsExistError
			assert.ErrorAs(t, err, &blocked)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestInitializeStores_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := memoryConfig()
	cfg.DBDriver = config.DBDriverPostgres
	cfg.DBDSN = connStr

	s, err := initializeStores(cfg)
	require.NoError(t, err)
	defer func() { _ = s.close() }()

	server := buildServer(cfg, buildServices(cfg, s), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(`{"name":"Ana","email":"ana@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.com")
}
