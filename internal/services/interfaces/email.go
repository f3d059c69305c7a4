package serviceinterfaces

import (
	"context"

	"kingsadvice/internal/models"
)

// EmailService defines the interface for customer and admin notification emails.
type EmailService interface {
	// SendBasicThankYou delivers the canned answer to a basic-tier customer
	SendBasicThankYou(ctx context.Context, req *models.Request, answer string) error

	// SendAIAnalystThankYou delivers the AI-drafted analysis to a middle-tier customer
	SendAIAnalystThankYou(ctx context.Context, req *models.Request, analysis string) error

	// SendExpertRequestConfirmation acknowledges receipt of a custom-tier request
	SendExpertRequestConfirmation(ctx context.Context, req *models.Request) error

	// SendExpertResponseReady delivers a human expert's response
	SendExpertResponseReady(ctx context.Context, req *models.Request, response string) error

	// SendAdminNotification alerts the portal operator about a new paid request
	SendAdminNotification(ctx context.Context, req *models.Request) error

	// IsEnabled returns whether email functionality is enabled
	IsEnabled() bool
}
