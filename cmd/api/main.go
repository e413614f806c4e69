package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/ghuser/equipstore/docs/swagger"
	"github.com/ghuser/equipstore/pkg/app"
	"github.com/ghuser/equipstore/pkg/cache"
	"github.com/ghuser/equipstore/pkg/config"
	"github.com/ghuser/equipstore/pkg/events"
	"github.com/ghuser/equipstore/pkg/httpx"
	"github.com/ghuser/equipstore/pkg/logger"
	"github.com/ghuser/equipstore/pkg/telemetry"
	equipmentApi "github.com/ghuser/equipstore/services/equipment/application/api"
	appsvcs "github.com/ghuser/equipstore/services/equipment/application/services"
	"github.com/ghuser/equipstore/services/equipment/application/subscribers"
	equipmentevents "github.com/ghuser/equipstore/services/equipment/domain/events"
)

// @title					Equipstore API
// @version				1.0
// @description			Equipment inventory registry: registration, stock changes and reorder reports.
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry: OTel tracing + metrics
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	eventBus := events.NewEventBus(cfg, log)
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	switch {
	case errors.Is(err, cache.ErrRedisDisabled):
		log.Info("redis disabled, equipment read model not projected")
	case err != nil:
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	default:
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")
	}

	appConfig := &app.Application{
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}
	svcs := appsvcs.New(appConfig)

	if err := startSubscribers(ctx, cfg, appConfig, svcs); err != nil {
		log.Error("failed to start event subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RequestsPerMinute:  cfg.RateLimitPerMinute,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Tracing:  telemetry.HTTPMiddleware(cfg.ServiceName),
			Logging:  logger.Middleware(log),
		},
	)

	checks := httpx.HealthChecks{EventBus: eventBus}
	if redisClient != nil {
		checks.Redis = redisClient
	}
	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, svcs)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped", "equipment_count", svcs.Registry.Len(shutdownCtx))
}

// startSubscribers attaches the equipment event handlers to the bus. The Redis
// projection runs only when Redis is configured; its keys are cleared first
// because the registry always starts empty.
func startSubscribers(ctx context.Context, cfg *config.Config, a *app.Application, svcs *appsvcs.Services) error {
	alerter := subscribers.NewReorderAlerter(a.Logger, cfg.ReorderAlertCooldown)
	if err := subscribers.Subscribe(ctx, a.EventBus, a.Logger, "reorder_alerts", alerter.Handle, equipmentevents.Topics...); err != nil {
		return err
	}

	if a.Redis == nil {
		return nil
	}
	store := cache.NewEquipmentCache(a.Redis)
	removed, err := store.Reset(ctx)
	if err != nil {
		return err
	}
	a.Logger.Info("equipment read model reset", "removed_keys", removed)

	projection := subscribers.NewProjection(svcs.Registry, store, a.Logger)
	return subscribers.Subscribe(ctx, a.EventBus, a.Logger, "redis_projection", projection.Handle, equipmentevents.Topics...)
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, svcs *appsvcs.Services) {
	equipmentApi.EquipmentRoutes(r, svcs)
}
