package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	dashboardserver "github.com/Apurer/contractor-dashboard/go"
	dashboardmapper "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/adapters/http/mapper"
	dashboardmemory "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/adapters/memory"
	dashboardobs "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/adapters/observability"
	dashboardpostgres "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/adapters/persistence/postgres"
	dashboardapp "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/application"
	dashboardports "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/ports"
	"github.com/Apurer/contractor-dashboard/internal/platform/auth"
	"github.com/Apurer/contractor-dashboard/internal/platform/httpmw"
	"github.com/Apurer/contractor-dashboard/internal/platform/migrations"
	platformobservability "github.com/Apurer/contractor-dashboard/internal/platform/observability"
	platformpostgres "github.com/Apurer/contractor-dashboard/internal/platform/postgres"
)

const serviceName = "contractor-dashboard-api"

// Run boots the dashboard HTTP API and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, ping, cleanupStore := buildStore(ctx, cfg, logger)
	defer cleanupStore()

	coreService := dashboardapp.NewService(
		store,
		dashboardapp.WithLogger(logger),
		dashboardapp.WithTimeout(cfg.AggregateTimeout),
	)
	service := dashboardobs.New(
		coreService,
		dashboardobs.WithLogger(logger),
		dashboardobs.WithTracer(instruments.Tracer("internal.dashboard.application")),
		dashboardobs.WithMeter(instruments.Meter("internal.dashboard.application")),
	)

	handlers := dashboardserver.ApiHandleFunctions{
		DashboardAPI: dashboardserver.NewDashboardAPI(
			dashboardapp.NewCoordinator(service),
			dashboardmapper.NewFormatter(cfg.DisplayLocale),
		),
		HealthAPI:    dashboardserver.NewHealthAPI(serviceName, ping),
		Authenticate: buildAuthenticator(cfg, logger),
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		httpmw.RequestID(logger),
		httpmw.CORS(cfg.CORSAllowedOrigins),
	)
	router = dashboardserver.NewRouterWithGinEngine(router, handlers)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Dashboard API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Dashboard API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		logger.Info("shutting down Dashboard API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// buildStore prefers PostgreSQL and falls back to an in-memory store. The
// returned ping is nil for the in-memory store.
func buildStore(ctx context.Context, cfg Config, logger *slog.Logger) (dashboardports.Store, func(context.Context) error, func()) {
	db, cleanup := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Warn("failed to migrate dashboard tables, falling back to memory", slog.String("error", err.Error()))
			cleanup()
		} else {
			logger.Info("dashboard store configured with postgres")
			ping := func(ctx context.Context) error { return platformpostgres.Ping(ctx, db) }
			return dashboardpostgres.NewRepository(db), ping, cleanup
		}
	}
	store := dashboardmemory.NewStore()
	if cfg.SeedDemoData {
		dashboardmemory.SeedDemo(store, time.Now())
		logger.Info("seeded in-memory dashboard store", slog.String("viewer.id", string(dashboardmemory.DemoContractor)))
	}
	return store, nil, func() {}
}

func buildAuthenticator(cfg Config, logger *slog.Logger) gin.HandlerFunc {
	if cfg.AuthDisabled {
		logger.Warn("authentication disabled, trusting the " + auth.ViewerHeader + " header")
		return auth.HeaderMiddleware()
	}
	return auth.Middleware(auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer))
}
