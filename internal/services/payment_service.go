package services

import (
	"context"
	"fmt"

	"kingsadvice/internal/config"
	"kingsadvice/internal/models"
	"kingsadvice/internal/observability"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	contextutils "kingsadvice/internal/utils"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.opentelemetry.io/otel/attribute"
)

// PaymentService opens and inspects hosted embedded checkout sessions.
// The Stripe client is injected per instance rather than configured through
// the package-global key, so tests and multi-tenant setups stay isolated.
type PaymentService struct {
	cfg    *config.Config
	logger *observability.Logger
	sc     *client.API
}

// Ensure PaymentService implements the PaymentService interface
var _ serviceinterfaces.PaymentService = (*PaymentService)(nil)

// NewPaymentService creates a new PaymentService instance
func NewPaymentService(cfg *config.Config, logger *observability.Logger) *PaymentService {
	var sc *client.API
	if cfg.Stripe.SecretKey != "" {
		sc = &client.API{}
		sc.Init(cfg.Stripe.SecretKey, nil)
	}

	return &PaymentService{
		cfg:    cfg,
		logger: logger,
		sc:     sc,
	}
}

// NewPaymentServiceWithClient creates a PaymentService with a pre-built Stripe client
func NewPaymentServiceWithClient(cfg *config.Config, logger *observability.Logger, sc *client.API) *PaymentService {
	return &PaymentService{
		cfg:    cfg,
		logger: logger,
		sc:     sc,
	}
}

// IsEnabled returns whether payment processing is configured
func (p *PaymentService) IsEnabled() bool {
	return p.sc != nil && p.cfg.Stripe.IsConfigured()
}

// PublishableKey returns the public key the frontend uses to mount checkout
func (p *PaymentService) PublishableKey() string {
	return p.cfg.Stripe.PublishableKey
}

// CreateCheckoutSession opens an embedded checkout session priced by the
// request's tier and returns the client secret the frontend mounts.
func (p *PaymentService) CreateCheckoutSession(ctx context.Context, req *models.Request, returnBase string) (result0 *models.CheckoutSession, err error) {
	ctx, span := observability.TracePaymentFunction(ctx, "CreateCheckoutSession",
		observability.AttributeRequestID(req.ID),
		observability.AttributeTier(req.Tier.String()),
	)
	defer observability.FinishSpan(span, &err)

	if !p.IsEnabled() {
		return nil, contextutils.WrapError(contextutils.ErrPaymentNotConfigured, "stripe keys are missing")
	}

	price := req.Tier.PriceCents()
	if price <= 0 {
		return nil, contextutils.WrapErrorf(contextutils.ErrInvalidTier, "tier %q has no price", req.Tier)
	}

	params := &stripe.CheckoutSessionParams{
		Params:    stripe.Params{Context: ctx},
		UIMode:    stripe.String(string(stripe.CheckoutSessionUIModeEmbedded)),
		Mode:      stripe.String(string(stripe.CheckoutSessionModePayment)),
		ReturnURL: stripe.String(p.returnURL(returnBase)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Tier.DisplayName()),
					},
					UnitAmount: stripe.Int64(price),
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(req.CustomerEmail),
	}
	params.AddMetadata("requestId", req.ID)
	params.AddMetadata("tier", req.Tier.String())
	params.AddMetadata("customerName", req.CustomerName)

	sess, err := p.sc.CheckoutSessions.New(params)
	if err != nil {
		p.logger.Error(ctx, "Failed to create checkout session", err, map[string]interface{}{
			"request_id": req.ID,
			"tier":       req.Tier,
		})
		return nil, contextutils.WrapErrorf(contextutils.ErrPaymentSessionFailed, "stripe session create: %w", err)
	}

	span.SetAttributes(
		observability.AttributeCheckoutSessionID(sess.ID),
		attribute.Int64("checkout.amount_cents", price),
	)
	p.logger.Info(ctx, "Created checkout session", map[string]interface{}{
		"request_id": req.ID,
		"session_id": sess.ID,
		"tier":       req.Tier,
	})

	return &models.CheckoutSession{
		ID:           sess.ID,
		ClientSecret: sess.ClientSecret,
	}, nil
}

// GetSessionStatus looks up a checkout session's payment state. Lookup
// failures are normalized into an error status so the frontend poller can
// treat every outcome uniformly.
func (p *PaymentService) GetSessionStatus(ctx context.Context, sessionID string) *models.CheckoutStatus {
	ctx, span := observability.TracePaymentFunction(ctx, "GetSessionStatus",
		observability.AttributeCheckoutSessionID(sessionID),
	)
	defer span.End()

	if !p.IsEnabled() {
		span.SetAttributes(attribute.String("checkout.status", models.CheckoutStatusError))
		return &models.CheckoutStatus{Status: models.CheckoutStatusError}
	}

	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}
	sess, err := p.sc.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		p.logger.Warn(ctx, "Failed to look up checkout session", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		span.SetAttributes(attribute.String("checkout.status", models.CheckoutStatusError))
		return &models.CheckoutStatus{Status: models.CheckoutStatusError}
	}

	status := &models.CheckoutStatus{
		Status:    string(sess.Status),
		RequestID: sess.Metadata["requestId"],
		Tier:      models.Tier(sess.Metadata["tier"]),
	}
	if sess.CustomerDetails != nil {
		status.CustomerEmail = sess.CustomerDetails.Email
	}

	span.SetAttributes(attribute.String("checkout.status", status.Status))
	return status
}

// returnURL appends the session id placeholder hosted checkout substitutes
func (p *PaymentService) returnURL(base string) string {
	if base == "" {
		base = p.cfg.Stripe.ReturnURL
	}
	if base == "" {
		base = p.cfg.Server.AppBaseURL + "/payment-result"
	}
	return fmt.Sprintf("%s?session_id={CHECKOUT_SESSION_ID}", base)
}
