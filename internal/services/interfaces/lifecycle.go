package serviceinterfaces

import (
	"context"

	"kingsadvice/internal/models"
)

// LifecycleService orchestrates what happens to a request after payment and
// after admin updates: tier resolution, notification emails, AI drafting.
type LifecycleService interface {
	// ResolvePayment runs the tier-specific pipeline for a paid, still-pending
	// request and returns the request in its post-resolution state.
	ResolvePayment(ctx context.Context, requestID string) (*models.Request, error)

	// HandleAdminUpdate applies an admin's change to a request and triggers
	// the customer notification when an expert response is delivered.
	HandleAdminUpdate(ctx context.Context, id string, input *models.UpdateRequestInput) (*models.Request, error)

	// ResolveBasicDirect resolves a basic-tier request created without payment
	ResolveBasicDirect(ctx context.Context, requestID string) (*models.Request, error)
}

// Lifecycle defines the interface for services that need lifecycle management
type Lifecycle interface {
	// Startup is called when the service should initialize
	Startup(ctx context.Context) error

	// Shutdown is called when the service should cleanup
	Shutdown(ctx context.Context) error

	// IsReady returns whether the service is ready to handle requests
	IsReady() bool
}
