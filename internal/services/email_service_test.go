package services

import (
	"context"
	"testing"

	"kingsadvice/internal/config"
	"kingsadvice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emailConfig(enabled bool) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{AppBaseURL: "https://advice.example.com"},
		Email: config.EmailConfig{
			Enabled:      enabled,
			AdminAddress: "owner@example.com",
			SMTP: config.SMTPConfig{
				Host:        "smtp.example.com",
				Port:        587,
				FromAddress: "noreply@example.com",
				FromName:    "Advice",
			},
		},
	}
}

func TestEmailService_IsEnabled(t *testing.T) {
	assert.True(t, NewEmailService(emailConfig(true), newTestLogger()).IsEnabled())
	assert.False(t, NewEmailService(emailConfig(false), newTestLogger()).IsEnabled())

	cfg := emailConfig(true)
	cfg.Email.SMTP.Host = ""
	assert.False(t, NewEmailService(cfg, newTestLogger()).IsEnabled())
}

func TestEmailService_DisabledSendIsNoOp(t *testing.T) {
	svc := NewEmailService(emailConfig(false), newTestLogger())
	req := pendingRequest(models.TierBasic)

	assert.NoError(t, svc.SendBasicThankYou(context.Background(), req, "answer"))
	assert.NoError(t, svc.SendAdminNotification(context.Background(), req))
}

func TestEmailService_NoAdminAddressSkipsNotification(t *testing.T) {
	cfg := emailConfig(true)
	cfg.Email.AdminAddress = ""
	svc := NewEmailService(cfg, newTestLogger())

	assert.NoError(t, svc.SendAdminNotification(context.Background(), pendingRequest(models.TierCustom)))
}

func TestGenerateEmailContent_Scenarios(t *testing.T) {
	svc := NewEmailService(emailConfig(true), newTestLogger())

	t.Run("basic thank you", func(t *testing.T) {
		content, err := svc.generateEmailContent("basic_thank_you", map[string]interface{}{
			"CustomerName": "Alice",
			"Topic":        "Market Entry",
			"Response":     "Start with a niche.",
			"SiteURL":      "https://advice.example.com",
		})
		require.NoError(t, err)
		assert.Contains(t, content, "Dear Alice")
		assert.Contains(t, content, "Market Entry")
		assert.Contains(t, content, "Start with a niche.")
		assert.Contains(t, content, "Expert Consulting On Demand")
	})

	t.Run("expert confirmation includes request id", func(t *testing.T) {
		content, err := svc.generateEmailContent("expert_confirmation", map[string]interface{}{
			"CustomerName": "Bob",
			"RequestID":    "req-42",
		})
		require.NoError(t, err)
		assert.Contains(t, content, "req-42")
		assert.Contains(t, content, "2-3 business days")
	})

	t.Run("admin notification includes tier", func(t *testing.T) {
		content, err := svc.generateEmailContent("admin_notification", map[string]interface{}{
			"RequestID":    "req-42",
			"CustomerName": "Bob",
			"TierDisplay":  "Human Expert Consultation ($499)",
			"Description":  "Help with fundraising",
		})
		require.NoError(t, err)
		assert.Contains(t, content, "Human Expert Consultation ($499)")
		assert.Contains(t, content, "Help with fundraising")
	})

	t.Run("description content is escaped", func(t *testing.T) {
		content, err := svc.generateEmailContent("admin_notification", map[string]interface{}{
			"RequestID":    "req-43",
			"CustomerName": "Mallory",
			"TierDisplay":  "Instant Advice ($29)",
			"Description":  "<script>alert(1)</script>",
		})
		require.NoError(t, err)
		assert.NotContains(t, content, "<script>")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := svc.generateEmailContent("nope", nil)
		assert.Error(t, err)
	})
}
