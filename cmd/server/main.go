// Package main provides the entry point for the consulting marketplace backend.
// It sets up the HTTP server, database connection, middleware, and API routes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kingsadvice/internal/config"
	"kingsadvice/internal/di"
	"kingsadvice/internal/handlers"
	"kingsadvice/internal/observability"
	contextutils "kingsadvice/internal/utils"

	"github.com/gin-gonic/gin"
)

// Application encapsulates the running server and its service container
type Application struct {
	container *di.ServiceContainer
	router    *gin.Engine
}

// NewApplication creates a new application instance
func NewApplication(container *di.ServiceContainer) (*Application, error) {
	requestService, err := container.GetRequestService()
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get request service")
	}

	lifecycleService, err := container.GetLifecycleService()
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get lifecycle service")
	}

	paymentService, err := container.GetPaymentService()
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get payment service")
	}

	adminService, err := container.GetAdminService()
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get admin service")
	}

	router := handlers.NewRouter(
		container.GetConfig(),
		requestService,
		lifecycleService,
		paymentService,
		adminService,
		container.GetLogger(),
	)

	return &Application{
		container: container,
		router:    router,
	}, nil
}

// Run starts the application and returns an error if it fails to start
func (a *Application) Run(ctx context.Context, port string) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := a.router.Run(":" + port); err != nil {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-serverErr:
		return contextutils.WrapError(err, "server failed")
	}
}

// Shutdown gracefully shuts down the application
func (a *Application) Shutdown(ctx context.Context) error {
	return a.container.Shutdown(ctx)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	tp, mp, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, "advice-backend")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if stp, ok := tp.(interface{ Shutdown(context.Context) error }); ok && tp != nil {
			if err := stp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "Error shutting down tracer provider", map[string]interface{}{"error": err.Error()})
			}
		}
		if mp != nil {
			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "Error shutting down meter provider", map[string]interface{}{"error": err.Error()})
			}
		}
	}()

	logger.Info(ctx, "Starting advice backend service", map[string]interface{}{
		"port":     cfg.Server.Port,
		"logLevel": cfg.Server.LogLevel,
	})

	container := di.NewServiceContainer(cfg, logger)

	if err := container.Initialize(ctx); err != nil {
		logger.Error(ctx, "Failed to initialize services", err, nil)
		os.Exit(1)
	}

	if err := container.EnsureAdminUser(ctx); err != nil {
		logger.Error(ctx, "Failed to ensure admin account exists", err, map[string]interface{}{"admin_username": cfg.Server.AdminUsername})
		os.Exit(1)
	}

	app, err := NewApplication(container)
	if err != nil {
		logger.Error(ctx, "Failed to create application", err, nil)
		os.Exit(1)
	}

	appErr := make(chan error, 1)
	go func() {
		if err := app.Run(ctx, cfg.Server.Port); err != nil {
			appErr <- err
		}
	}()

	select {
	case <-shutdownCh:
		logger.Info(ctx, "Received shutdown signal, shutting down gracefully", nil)
	case err := <-appErr:
		logger.Error(ctx, "Application failed", err, nil)
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Error during application shutdown", err, nil)
		os.Exit(1)
	}

	logger.Info(ctx, "Shutdown completed successfully", nil)
}
