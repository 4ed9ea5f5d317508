// Package app wires configuration, the sqlite registry, services and the
// HTTP transport into a runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"surveyetl/internal/config"
	"surveyetl/internal/metrics"
	customMiddleware "surveyetl/internal/middleware"
	"surveyetl/internal/services"
	"surveyetl/internal/stores"
	transport "surveyetl/internal/transport/http"
)

const (
	// AppName is the application name used in logs.
	AppName = "surveyetl"
	// VERSION is the application version, overridable at build time.
	VERSION = "1.0.0"
	// BuildTime is set at build time via ldflags.
	BuildTime = "dev"
)

// Application holds the wired components and the HTTP server.
type Application struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *stores.Registry
	Router   chi.Router
	Server   *http.Server

	IngestService *services.IngestService
	HealthService *services.HealthService
	Metrics       *metrics.Set
	PromRegistry  *prometheus.Registry
}

// New builds the application from loaded configuration. The sqlite
// registry is opened here; Stop closes it.
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	registry, err := stores.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store registry: %w", err)
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())
	promReg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	meter := metrics.New(promReg)

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		Registry:      registry,
		IngestService: services.NewIngestService(registry, meter, logger),
		HealthService: services.NewHealthService(VERSION, BuildTime, registry, logger),
		Metrics:       meter,
		PromRegistry:  promReg,
	}
	app.setupRouter()

	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// setupRouter builds the chi router with the middleware chain and routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Ordering: RequestID -> RealIP -> Logger -> Recoverer -> the rest.
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.Compress(5))

	r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		Logger:         a.Logger,
	}))

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := transport.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		reportHandler := transport.NewReportHandler(
			a.IngestService, a.Registry, a.Config.Ingest.MaxBodyBytes, a.Logger)
		r.Post("/reports", reportHandler.Ingest)
		r.Post("/reports/preview", reportHandler.Preview)
		r.Get("/records", reportHandler.Records)
	})

	debugHandler := transport.NewDebugHandler(a.IngestService)
	r.Get("/debug", debugHandler.Page)

	r.Handle("/metrics", promhttp.HandlerFor(a.PromRegistry, promhttp.HandlerOpts{}))

	a.Router = r
}

// Start runs the HTTP server in the background. A listen failure cancels
// the supplied context via cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) {
	a.Logger.InfoContext(ctx, "starting application",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()
}

// Stop gracefully shuts the server down and closes the registry.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := a.Registry.Close(); err != nil {
		a.Logger.ErrorContext(ctx, "failed to close store registry",
			slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application stopped")
	return nil
}
