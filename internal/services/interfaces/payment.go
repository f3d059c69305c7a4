package serviceinterfaces

import (
	"context"

	"kingsadvice/internal/models"
)

// PaymentService defines the interface for hosted embedded checkout.
type PaymentService interface {
	// CreateCheckoutSession opens an embedded checkout session priced by the
	// request's tier and returns the client secret the frontend mounts.
	// returnBase overrides the configured return URL when non-empty, so the
	// redirect lands on whatever host the customer actually browsed to.
	CreateCheckoutSession(ctx context.Context, req *models.Request, returnBase string) (*models.CheckoutSession, error)

	// GetSessionStatus looks up a checkout session's payment state. Lookup
	// failures are normalized into an error status rather than returned.
	GetSessionStatus(ctx context.Context, sessionID string) *models.CheckoutStatus

	// PublishableKey returns the public key the frontend uses to mount checkout
	PublishableKey() string

	// IsEnabled returns whether payment processing is configured
	IsEnabled() bool
}
