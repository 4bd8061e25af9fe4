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

	httpweb "github.com/custdesk/custdesk/internal/web/http"
	"github.com/custdesk/custdesk/internal/web/service"
	"github.com/custdesk/custdesk/pkg/authsdk"
	"github.com/custdesk/custdesk/pkg/cachex"
	"github.com/custdesk/custdesk/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the web tier with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	cache  cachex.Cache
	client *authsdk.Client

	sessionService *service.SessionService

	server *http.Server
	router *httpweb.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "customer-web",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("WEB_API_BASE_URL must be set")
	}

	if err := app.initCache(); err != nil {
		return nil, err
	}

	app.client = authsdk.NewClient(
		cfg.APIBaseURL,
		authsdk.WithChannel(cfg.Channel),
		authsdk.WithCache(app.cache, cfg.CacheTTL),
		authsdk.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)
	app.sessionService = &service.SessionService{Gate: app.client}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("web tier starting",
		"port", app.cfg.Port,
		"api", app.cfg.APIBaseURL,
		"cache", app.cfg.CacheBackend,
		"version", BuildVersion,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down web tier...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.cache.Close(); err != nil {
		app.logger.Error("error closing cache", "error", err)
	}

	app.logger.Info("web tier stopped")
	return nil
}

// initCache selects the cache backend for tokens and gate decisions
func (app *Application) initCache() error {
	switch app.cfg.CacheBackend {
	case "redis":
		cache, err := cachex.NewRedis(context.Background(), cachex.RedisConfig{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.cache = cache
	case "memory", "":
		app.cache = cachex.NewMemory()
	default:
		return fmt.Errorf("unknown cache backend %q", app.cfg.CacheBackend)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpweb.NewRouter(app.logger)
	router.SessionService = app.sessionService
	router.API = app.client
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
