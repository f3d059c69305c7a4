package services

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"kingsadvice/internal/config"
	"kingsadvice/internal/models"
	"kingsadvice/internal/observability"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	contextutils "kingsadvice/internal/utils"

	"gopkg.in/mail.v2"
)

// EmailService implements the serviceinterfaces.EmailService interface using gomail
type EmailService struct {
	cfg    *config.Config
	logger *observability.Logger
	dialer *mail.Dialer
}

// Ensure EmailService implements the EmailService interface
var _ serviceinterfaces.EmailService = (*EmailService)(nil)

// NewEmailService creates a new EmailService instance
func NewEmailService(cfg *config.Config, logger *observability.Logger) *EmailService {
	var dialer *mail.Dialer
	if cfg.Email.Enabled && cfg.Email.SMTP.Host != "" {
		dialer = mail.NewDialer(
			cfg.Email.SMTP.Host,
			cfg.Email.SMTP.Port,
			cfg.Email.SMTP.Username,
			cfg.Email.SMTP.Password,
		)
	}

	return &EmailService{
		cfg:    cfg,
		logger: logger,
		dialer: dialer,
	}
}

// IsEnabled returns whether email functionality is enabled
func (e *EmailService) IsEnabled() bool {
	return e.cfg.Email.Enabled && e.cfg.Email.SMTP.Host != ""
}

// SendBasicThankYou delivers the canned answer to a basic-tier customer
func (e *EmailService) SendBasicThankYou(ctx context.Context, req *models.Request, answer string) (err error) {
	ctx, span := observability.TraceEmailFunction(ctx, "SendBasicThankYou",
		observability.AttributeRequestID(req.ID),
		observability.AttributeEmailScenario("basic_thank_you"),
	)
	defer observability.FinishSpan(span, &err)

	data := map[string]interface{}{
		"CustomerName": req.CustomerName,
		"Topic":        req.SelectedTopic(),
		"Response":     answer,
		"SiteURL":      e.cfg.Server.AppBaseURL,
	}

	return e.sendScenario(ctx, req.CustomerEmail,
		"Your Instant Advice Response", "basic_thank_you", data)
}

// SendAIAnalystThankYou delivers the AI-drafted analysis to a middle-tier customer
func (e *EmailService) SendAIAnalystThankYou(ctx context.Context, req *models.Request, analysis string) (err error) {
	ctx, span := observability.TraceEmailFunction(ctx, "SendAIAnalystThankYou",
		observability.AttributeRequestID(req.ID),
		observability.AttributeEmailScenario("ai_analyst_thank_you"),
	)
	defer observability.FinishSpan(span, &err)

	data := map[string]interface{}{
		"CustomerName": req.CustomerName,
		"Response":     analysis,
		"SiteURL":      e.cfg.Server.AppBaseURL,
	}

	return e.sendScenario(ctx, req.CustomerEmail,
		"Your AI-Assisted Analysis", "ai_analyst_thank_you", data)
}

// SendExpertRequestConfirmation acknowledges receipt of a custom-tier request
func (e *EmailService) SendExpertRequestConfirmation(ctx context.Context, req *models.Request) (err error) {
	ctx, span := observability.TraceEmailFunction(ctx, "SendExpertRequestConfirmation",
		observability.AttributeRequestID(req.ID),
		observability.AttributeEmailScenario("expert_confirmation"),
	)
	defer observability.FinishSpan(span, &err)

	data := map[string]interface{}{
		"CustomerName": req.CustomerName,
		"RequestID":    req.ID,
	}

	return e.sendScenario(ctx, req.CustomerEmail,
		"Your Expert Consultation Request Has Been Received", "expert_confirmation", data)
}

// SendExpertResponseReady delivers a human expert's response
func (e *EmailService) SendExpertResponseReady(ctx context.Context, req *models.Request, response string) (err error) {
	ctx, span := observability.TraceEmailFunction(ctx, "SendExpertResponseReady",
		observability.AttributeRequestID(req.ID),
		observability.AttributeEmailScenario("expert_response_ready"),
	)
	defer observability.FinishSpan(span, &err)

	data := map[string]interface{}{
		"CustomerName": req.CustomerName,
		"Response":     response,
	}

	return e.sendScenario(ctx, req.CustomerEmail,
		"Your Expert Consultation Response is Ready", "expert_response_ready", data)
}

// SendAdminNotification alerts the portal operator about a new paid request
func (e *EmailService) SendAdminNotification(ctx context.Context, req *models.Request) (err error) {
	ctx, span := observability.TraceEmailFunction(ctx, "SendAdminNotification",
		observability.AttributeRequestID(req.ID),
		observability.AttributeEmailScenario("admin_notification"),
	)
	defer observability.FinishSpan(span, &err)

	if e.cfg.Email.AdminAddress == "" {
		e.logger.Info(ctx, "No admin address configured, skipping admin notification", map[string]interface{}{
			"request_id": req.ID,
		})
		return nil
	}

	data := map[string]interface{}{
		"RequestID":    req.ID,
		"CustomerName": req.CustomerName,
		"TierDisplay":  fmt.Sprintf("%s ($%d)", req.Tier.DisplayName(), req.Tier.PriceDollars()),
		"Description":  req.Description,
	}

	return e.sendScenario(ctx, e.cfg.Email.AdminAddress,
		"New Consulting Request Received", "admin_notification", data)
}

// sendScenario renders a named template and sends it over SMTP
func (e *EmailService) sendScenario(ctx context.Context, to, subject, templateName string, data map[string]interface{}) (err error) {
	if !e.IsEnabled() {
		e.logger.Info(ctx, "Email disabled, skipping email send", map[string]interface{}{
			"to":       to,
			"template": templateName,
		})
		return nil
	}

	if e.dialer == nil {
		return contextutils.WrapError(contextutils.ErrEmailSendFailed, "email service not properly configured")
	}

	content, err := e.generateEmailContent(templateName, data)
	if err != nil {
		return contextutils.WrapError(err, "failed to generate email content")
	}

	m := mail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", e.cfg.Email.SMTP.FromName, e.cfg.Email.SMTP.FromAddress))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", content)

	if err = e.dialer.DialAndSend(m); err != nil {
		e.logger.Error(ctx, "Failed to send email", err, map[string]interface{}{
			"to":       to,
			"template": templateName,
			"subject":  subject,
		})
		return contextutils.WrapErrorf(contextutils.ErrEmailSendFailed, "failed to send %s email: %w", templateName, err)
	}

	e.logger.Info(ctx, "Email sent successfully", map[string]interface{}{
		"to":       to,
		"template": templateName,
		"subject":  subject,
	})

	return nil
}

// layoutTemplate wraps scenario content in the shared branded frame
const layoutTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0; }
        .container { max-width: 600px; margin: 0 auto; }
        .header { background-color: #0f172a; color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 28px; }
        .content { padding: 30px; background: #f8fafc; }
        .badge { display: inline-block; background: #e2e8f0; color: #475569; padding: 6px 12px; border-radius: 4px; font-size: 14px; font-weight: bold; }
        .response-box { background: #ecfdf5; border-left: 4px solid #10b981; padding: 20px; margin: 20px 0; }
        .response-box p { margin: 0; white-space: pre-wrap; }
        .info-box { background: #fff; border: 1px solid #e2e8f0; padding: 15px; border-radius: 8px; margin: 15px 0; }
        .cta-button { display: inline-block; background: #0f172a; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: bold; margin: 15px 0; }
        .footer { padding: 20px; text-align: center; font-size: 12px; color: #94a3b8; background: #f1f5f9; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Expert Consulting On Demand</h1>
        </div>
        <div class="content">
        {{.Content}}
        </div>
        <div class="footer">
            <p>This is an automated message. Please do not reply directly to this email.</p>
        </div>
    </div>
</body>
</html>`

var scenarioTemplates = map[string]string{
	"basic_thank_you": `
<p>Dear {{.CustomerName}},</p>
<p>Thank you for choosing <span class="badge">Instant Advice</span>!</p>
<p>Here is your expert guidance on <strong>"{{.Topic}}"</strong>:</p>
<div class="response-box"><p>{{.Response}}</p></div>
<div class="info-box">
    <p><strong>Need more personalized advice?</strong></p>
    <p>Our Expert Consultation service provides a custom, in-depth analysis from a senior consultant.</p>
    <a href="{{.SiteURL}}" class="cta-button">Get Expert Consultation</a>
</div>
<p>Best regards,<br><strong>The Consulting Team</strong></p>`,

	"ai_analyst_thank_you": `
<p>Dear {{.CustomerName}},</p>
<p>Thank you for choosing <span class="badge">AI-Assisted Analysis</span>!</p>
<p>Here is your analysis:</p>
<div class="response-box"><p>{{.Response}}</p></div>
<div class="info-box">
    <p><strong>Want even deeper insights?</strong></p>
    <p>Our Expert Consultation service connects you with a senior consultant for a thorough, personalized review.</p>
    <a href="{{.SiteURL}}" class="cta-button">Get Expert Consultation</a>
</div>
<p>Best regards,<br><strong>The Consulting Team</strong></p>`,

	"expert_confirmation": `
<p>Dear {{.CustomerName}},</p>
<p>Thank you for choosing our <span class="badge">Expert Consultation</span> service!</p>
<p>We have received your request and our senior team is now reviewing it. You can expect a detailed,
personalized response within <strong>2-3 business days</strong>.</p>
<div class="info-box">
    <p><strong>Request ID:</strong> {{.RequestID}}</p>
    <p><strong>What happens next:</strong></p>
    <ul>
        <li>A senior consultant will be assigned to your case</li>
        <li>They will conduct a thorough analysis of your situation</li>
        <li>You will receive your response via email</li>
    </ul>
</div>
<p>Best regards,<br><strong>The Consulting Team</strong></p>`,

	"expert_response_ready": `
<p>Dear {{.CustomerName}},</p>
<p>Great news! Your <span class="badge">Expert Consultation</span> response is ready.</p>
<p>Our senior consultant has completed their in-depth analysis. Here are your personalized
insights and recommendations:</p>
<div class="response-box"><p>{{.Response}}</p></div>
<p>If you have any follow-up questions or need additional consulting, we are always here to help.</p>
<p>Best regards,<br><strong>The Consulting Team</strong></p>`,

	"admin_notification": `
<p><strong>New Consulting Request Received</strong></p>
<div class="info-box">
    <p><strong>Request ID:</strong> {{.RequestID}}</p>
    <p><strong>Customer:</strong> {{.CustomerName}}</p>
    <p><strong>Service Tier:</strong> <span class="badge">{{.TierDisplay}}</span></p>
</div>
<p><strong>Request Details:</strong></p>
<div class="response-box"><p>{{.Description}}</p></div>
<p>Log in to the admin dashboard to review and respond to this request.</p>`,
}

// generateEmailContent renders a scenario template inside the shared layout
func (e *EmailService) generateEmailContent(templateName string, data map[string]interface{}) (string, error) {
	scenario, ok := scenarioTemplates[templateName]
	if !ok {
		return "", contextutils.ErrorWithContextf("unknown template: %s", templateName)
	}

	tmpl, err := template.New(templateName).Parse(scenario)
	if err != nil {
		return "", contextutils.WrapError(err, "failed to parse scenario template")
	}

	var body strings.Builder
	if err := tmpl.Execute(&body, data); err != nil {
		return "", contextutils.WrapError(err, "failed to execute scenario template")
	}

	layout, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return "", contextutils.WrapError(err, "failed to parse layout template")
	}

	var buf strings.Builder
	if err := layout.Execute(&buf, map[string]interface{}{
		"Content": template.HTML(body.String()),
	}); err != nil {
		return "", contextutils.WrapError(err, "failed to execute layout template")
	}

	return buf.String(), nil
}
