package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"homepulse/internal/config"
	"homepulse/internal/errors"
	"homepulse/internal/infrastructure"
	custommw "homepulse/internal/middleware"
	"homepulse/internal/services"
	handlers "homepulse/internal/transport/http"
	ws "homepulse/internal/websocket"
)

const (
	// Version identifies the build in health responses and logs.
	Version = "1.0.0"
	// AppName is the human-readable application name.
	AppName = "HomePulse - US Housing Market Dashboard"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	DataService   *services.DataService
	HealthService *services.HealthService
	WebSocketHub  *ws.Hub
	OTelProviders *infrastructure.OTelProviders
}

// NewApplication creates a new application instance from the environment
// configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewApplicationWithConfig(cfg, logger)
}

// NewApplicationWithConfig creates an application from an explicit config
// and logger. Tests use this to avoid environment coupling.
func NewApplicationWithConfig(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution()

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// Load the dataset if the fetcher already ran; the server still
	// starts without it and reports not-ready until a refresh succeeds.
	if config.FileExists(paths.ZHVIFile) {
		if err := app.DataService.Reload(context.Background()); err != nil {
			logger.Warn("initial dataset load failed",
				slog.String("path", paths.ZHVIFile),
				slog.String("error", err.Error()))
		}
	} else {
		logger.Warn("dataset file not found, dashboard will be empty until refreshed",
			slog.String("path", paths.ZHVIFile))
	}

	app.setupRouter(paths)
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	dataService, err := services.NewDataServiceWithLogger(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize data service: %w", err)
	}
	a.DataService = dataService

	a.HealthService = services.NewHealthService(dataService, Version, a.Logger)

	hub := ws.NewHub(a.Logger)
	hub.Start()
	a.WebSocketHub = hub

	return nil
}

// setupRouter configures the chi router with middleware and routes
func (a *Application) setupRouter(paths *config.Paths) {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	if a.OTelProviders.Meter != nil {
		r.Use(custommw.Metrics(a.OTelProviders.Meter))
	}
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.CORS(a.Config.Security))
	r.Use(custommw.RateLimit(a.Config.Security.RateLimit))
	r.Use(chimw.Timeout(60 * time.Second))

	errorHandler := errors.NewErrorHandler(a.Logger, a.Config.Logging.Development)

	dataHandler := handlers.NewDataHandler(a.DataService, a.Logger, errorHandler)
	operationsHandler := handlers.NewOperationsHandler(a.DataService, a.WebSocketHub, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/data", dataHandler.Routes())
		r.Mount("/operations", operationsHandler.Routes())
		r.Mount("/health", healthHandler.Routes())
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWS(a.WebSocketHub, w, req)
	})

	// Static dashboard assets.
	r.Handle("/*", http.FileServer(http.Dir(paths.WebDir)))

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run starts the HTTP server and blocks until the context is cancelled or
// a termination signal arrives, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("HTTP server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("url", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.Shutdown()
	})

	return g.Wait()
}

// Shutdown stops the server and supporting services gracefully
func (a *Application) Shutdown() error {
	a.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.WebSocketHub.Stop()

	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warn("otel shutdown failed", slog.String("error", err.Error()))
	}

	infrastructure.CloseLogFile()
	return nil
}
