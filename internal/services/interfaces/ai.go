package serviceinterfaces

import "context"

// AIService defines the interface for generative business analysis.
type AIService interface {
	// GenerateAnalysis drafts a consultant-style answer for a customer's
	// description. It never fails: when the provider is unreachable or disabled
	// a deterministic fallback analysis is returned.
	GenerateAnalysis(ctx context.Context, customerName, description string) string

	// IsEnabled returns whether a generative provider is configured
	IsEnabled() bool
}
