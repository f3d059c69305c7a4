// Package di provides dependency injection container for managing service lifecycle and dependencies.
package di

import (
	"context"
	"database/sql"
	"sync"

	"kingsadvice/internal/config"
	"kingsadvice/internal/database"
	"kingsadvice/internal/observability"
	"kingsadvice/internal/services"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	contextutils "kingsadvice/internal/utils"
)

// ServiceContainer manages all service dependencies and lifecycle
type ServiceContainer struct {
	cfg           *config.Config
	logger        *observability.Logger
	dbManager     *database.Manager
	db            *sql.DB
	services      map[string]interface{}
	mu            sync.RWMutex
	shutdownFuncs []func(context.Context) error
}

// NewServiceContainer creates a new dependency injection container
func NewServiceContainer(cfg *config.Config, logger *observability.Logger) *ServiceContainer {
	return &ServiceContainer{
		cfg:      cfg,
		logger:   logger,
		services: make(map[string]interface{}),
	}
}

// Initialize sets up all services and their dependencies
func (sc *ServiceContainer) Initialize(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.dbManager = database.NewManager(sc.logger)
	db, err := sc.dbManager.InitDBWithConfig(sc.cfg.Database)
	if err != nil {
		return contextutils.WrapErrorf(err, "failed to initialize database")
	}
	sc.db = db
	sc.shutdownFuncs = append(sc.shutdownFuncs, func(_ context.Context) error {
		return db.Close()
	})

	sc.initializeServices(ctx)

	if err := sc.startupServices(ctx); err != nil {
		_ = sc.cleanup(ctx)
		return contextutils.WrapErrorf(err, "failed to startup services")
	}

	return nil
}

// GetService retrieves a service by name with type assertion
func (sc *ServiceContainer) GetService(name string) (interface{}, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	service, exists := sc.services[name]
	if !exists {
		return nil, contextutils.ErrorWithContextf("service %s not found", name)
	}
	return service, nil
}

// GetServiceAs performs type-safe service retrieval
func GetServiceAs[T any](sc *ServiceContainer, name string) (T, error) {
	var zero T
	service, err := sc.GetService(name)
	if err != nil {
		return zero, err
	}

	typed, ok := service.(T)
	if !ok {
		return zero, contextutils.ErrorWithContextf("service %s is not of expected type %T", name, zero)
	}
	return typed, nil
}

// GetRequestService returns the request store service
func (sc *ServiceContainer) GetRequestService() (serviceinterfaces.RequestService, error) {
	return GetServiceAs[serviceinterfaces.RequestService](sc, "request")
}

// GetLifecycleService returns the request lifecycle orchestrator
func (sc *ServiceContainer) GetLifecycleService() (serviceinterfaces.LifecycleService, error) {
	return GetServiceAs[serviceinterfaces.LifecycleService](sc, "lifecycle")
}

// GetPaymentService returns the checkout payment service
func (sc *ServiceContainer) GetPaymentService() (serviceinterfaces.PaymentService, error) {
	return GetServiceAs[serviceinterfaces.PaymentService](sc, "payment")
}

// GetAdminService returns the admin account service
func (sc *ServiceContainer) GetAdminService() (serviceinterfaces.AdminService, error) {
	return GetServiceAs[serviceinterfaces.AdminService](sc, "admin")
}

// GetEmailService returns the email service
func (sc *ServiceContainer) GetEmailService() (serviceinterfaces.EmailService, error) {
	return GetServiceAs[serviceinterfaces.EmailService](sc, "email")
}

// GetAIService returns the AI analysis service
func (sc *ServiceContainer) GetAIService() (serviceinterfaces.AIService, error) {
	return GetServiceAs[serviceinterfaces.AIService](sc, "ai")
}

// GetDatabase returns the database instance
func (sc *ServiceContainer) GetDatabase() *sql.DB {
	return sc.db
}

// GetConfig returns the configuration
func (sc *ServiceContainer) GetConfig() *config.Config {
	return sc.cfg
}

// GetLogger returns the logger
func (sc *ServiceContainer) GetLogger() *observability.Logger {
	return sc.logger
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.cleanup(ctx)
}

// startupServices starts all services that implement the Lifecycle interface
func (sc *ServiceContainer) startupServices(ctx context.Context) error {
	for name, service := range sc.services {
		if lifecycleService, ok := service.(interface{ Startup(context.Context) error }); ok {
			sc.logger.Info(ctx, "Starting service", map[string]interface{}{"service": name})
			if err := lifecycleService.Startup(ctx); err != nil {
				return contextutils.WrapErrorf(err, "failed to startup service %s", name)
			}
		}
	}
	return nil
}

// cleanup handles shutdown of all services
func (sc *ServiceContainer) cleanup(ctx context.Context) error {
	var errors []error

	for name := range sc.services {
		if lifecycleService, ok := sc.services[name].(interface{ Shutdown(context.Context) error }); ok {
			sc.logger.Info(ctx, "Shutting down service", map[string]interface{}{"service": name})
			if err := lifecycleService.Shutdown(ctx); err != nil {
				sc.logger.Error(ctx, "Failed to shutdown service", err, map[string]interface{}{"service": name})
				errors = append(errors, contextutils.WrapErrorf(err, "service %s shutdown failed", name))
			}
		}
	}

	// Shutdown in reverse order of initialization
	for i := len(sc.shutdownFuncs) - 1; i >= 0; i-- {
		if err := sc.shutdownFuncs[i](ctx); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return contextutils.ErrorWithContextf("shutdown errors: %v", errors)
	}
	return nil
}

// initializeServices sets up all service dependencies
func (sc *ServiceContainer) initializeServices(_ context.Context) {
	requestService := services.NewRequestServiceWithLogger(sc.db, sc.logger)
	sc.services["request"] = requestService

	adminService := services.NewAdminServiceWithLogger(sc.db, sc.logger)
	sc.services["admin"] = adminService

	aiService := services.NewAIService(sc.cfg, sc.logger)
	sc.services["ai"] = aiService

	emailService := services.NewEmailService(sc.cfg, sc.logger)
	sc.services["email"] = emailService

	paymentService := services.NewPaymentService(sc.cfg, sc.logger)
	sc.services["payment"] = paymentService

	// Lifecycle orchestrator sits on top of storage, email and AI
	lifecycleService := services.NewLifecycleService(requestService, emailService, aiService, sc.logger)
	sc.services["lifecycle"] = lifecycleService

	sc.shutdownFuncs = append(sc.shutdownFuncs,
		func(_ context.Context) error {
			lifecycleService.WaitForNotifications()
			return nil
		},
	)
}

// EnsureAdminUser creates the bootstrap admin account if it doesn't exist
func (sc *ServiceContainer) EnsureAdminUser(ctx context.Context) error {
	adminService, err := sc.GetAdminService()
	if err != nil {
		return contextutils.WrapErrorf(err, "failed to get admin service")
	}

	username := sc.cfg.Server.AdminUsername
	if username == "" {
		username = "admin"
	}
	if sc.cfg.Server.AdminPassword == "" {
		sc.logger.Warn(ctx, "Admin password not configured, skipping admin bootstrap", nil)
		return nil
	}

	return adminService.EnsureAdminExists(ctx, username, sc.cfg.Server.AdminPassword)
}
