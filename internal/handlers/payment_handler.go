package handlers

import (
	"fmt"
	"net/http"

	"kingsadvice/internal/config"
	"kingsadvice/internal/models"
	"kingsadvice/internal/observability"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	contextutils "kingsadvice/internal/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// PaymentHandler handles checkout session creation and status polling
type PaymentHandler struct {
	paymentService serviceinterfaces.PaymentService
	requestService serviceinterfaces.RequestService
	lifecycle      serviceinterfaces.LifecycleService
	config         *config.Config
	logger         *observability.Logger
}

// NewPaymentHandler creates a new PaymentHandler instance
func NewPaymentHandler(
	paymentService serviceinterfaces.PaymentService,
	requestService serviceinterfaces.RequestService,
	lifecycle serviceinterfaces.LifecycleService,
	cfg *config.Config,
	logger *observability.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		requestService: requestService,
		lifecycle:      lifecycle,
		config:         cfg,
		logger:         logger,
	}
}

// CreateCheckoutSession accepts the customer's request details, records a
// pending request, and opens an embedded checkout session priced by tier.
// The request stays pending until the session-status poll confirms payment.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "create_checkout_session")
	defer observability.FinishSpan(span, nil)

	var input models.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleAppError(c, contextutils.NewAppErrorWithCause(
			contextutils.ErrorCodeInvalidInput,
			contextutils.SeverityWarn,
			"Invalid request body",
			"",
			err,
		))
		return
	}

	if !input.Tier.Valid() {
		HandleValidationError(c, "tier", input.Tier, "must be one of basic, middle, custom")
		return
	}

	req, err := h.requestService.CreateRequest(c.Request.Context(), &input)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	span.SetAttributes(
		observability.AttributeRequestID(req.ID),
		observability.AttributeTier(req.Tier.String()),
	)

	session, err := h.paymentService.CreateCheckoutSession(c.Request.Context(), req, h.returnBase(c))
	if err != nil {
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": session.ClientSecret,
		"requestId":    req.ID,
	})
}

// GetSessionStatus polls a checkout session. A completed payment triggers the
// tier pipeline for the request the session was opened for; repeated polls are
// harmless because only a still-pending request transitions.
func (h *PaymentHandler) GetSessionStatus(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_session_status")
	defer observability.FinishSpan(span, nil)

	sessionID := c.Param("sessionId")
	span.SetAttributes(observability.AttributeCheckoutSessionID(sessionID))

	status := h.paymentService.GetSessionStatus(c.Request.Context(), sessionID)
	span.SetAttributes(attribute.String("checkout.status", status.Status))

	response := gin.H{"status": status.Status}
	if status.CustomerEmail != "" {
		response["customerEmail"] = status.CustomerEmail
	}
	if status.Tier != "" {
		response["tier"] = status.Tier
	}

	if status.Status == models.CheckoutStatusComplete && status.RequestID != "" {
		resolved, err := h.lifecycle.ResolvePayment(c.Request.Context(), status.RequestID)
		if err != nil {
			h.logger.Error(c.Request.Context(), "Failed to resolve paid request", err, map[string]interface{}{
				"request_id": status.RequestID,
				"session_id": sessionID,
			})
		} else if resolved.Tier == models.TierBasic && resolved.Status == models.StatusCompleted {
			// Basic-tier customers get their canned answer right on the
			// payment result page
			response["topic"] = resolved.SelectedTopic()
			response["response"] = resolved.ResponseText()
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetStripeConfig returns the publishable key the frontend needs to mount checkout
func (h *PaymentHandler) GetStripeConfig(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_stripe_config")
	defer observability.FinishSpan(span, nil)

	if h.paymentService.PublishableKey() == "" {
		StandardizeHTTPError(c, http.StatusInternalServerError, "Payment processing is not configured", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"publishableKey": h.paymentService.PublishableKey()})
}

// returnBase reconstructs the externally visible base URL from forwarded
// headers so the checkout redirect lands on the host the customer browsed to.
// Falls back to configuration when the proxy headers are absent.
func (h *PaymentHandler) returnBase(c *gin.Context) string {
	host := c.GetHeader("X-Forwarded-Host")
	if host == "" {
		return ""
	}
	proto := c.GetHeader("X-Forwarded-Proto")
	if proto == "" {
		proto = "https"
	}
	return fmt.Sprintf("%s://%s/payment-result", proto, host)
}
