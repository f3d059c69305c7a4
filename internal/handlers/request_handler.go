package handlers

import (
	"net/http"

	"kingsadvice/internal/config"
	"kingsadvice/internal/models"
	"kingsadvice/internal/observability"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	contextutils "kingsadvice/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestHandler handles consultation request and canned catalog HTTP requests
type RequestHandler struct {
	requestService serviceinterfaces.RequestService
	lifecycle      serviceinterfaces.LifecycleService
	config         *config.Config
	logger         *observability.Logger
}

// NewRequestHandler creates a new RequestHandler instance
func NewRequestHandler(
	requestService serviceinterfaces.RequestService,
	lifecycle serviceinterfaces.LifecycleService,
	cfg *config.Config,
	logger *observability.Logger,
) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		lifecycle:      lifecycle,
		config:         cfg,
		logger:         logger,
	}
}

// CreateRequest handles a customer submitting a new consultation request.
// Submission runs the tier pipeline directly: basic requests come back
// completed with their canned answer, middle and custom requests move to
// processing with their notifications and AI drafting dispatched detached.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "create_request")
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

	created, err := h.requestService.CreateRequest(c.Request.Context(), &input)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	span.SetAttributes(
		observability.AttributeRequestID(created.ID),
		observability.AttributeTier(created.Tier.String()),
	)

	var resolved *models.Request
	if created.Tier == models.TierBasic {
		resolved, err = h.lifecycle.ResolveBasicDirect(c.Request.Context(), created.ID)
	} else {
		resolved, err = h.lifecycle.ResolvePayment(c.Request.Context(), created.ID)
	}
	if err != nil {
		h.logger.Error(c.Request.Context(), "Failed to resolve new request", err, map[string]interface{}{
			"request_id": created.ID,
			"tier":       created.Tier,
		})
		// The request exists even when resolution failed
		c.JSON(http.StatusCreated, created)
		return
	}

	c.JSON(http.StatusCreated, resolved)
}

// GetRequest returns a single request by ID
func (h *RequestHandler) GetRequest(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_request")
	defer observability.FinishSpan(span, nil)

	id := c.Param("id")
	span.SetAttributes(observability.AttributeRequestID(id))

	req, err := h.requestService.GetRequestByID(c.Request.Context(), id)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

// GetAllRequests returns every request, newest first (admin only)
func (h *RequestHandler) GetAllRequests(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_all_requests")
	defer observability.FinishSpan(span, nil)

	reqs, err := h.requestService.GetAllRequests(c.Request.Context())
	if err != nil {
		HandleAppError(c, err)
		return
	}

	if reqs == nil {
		reqs = []models.Request{}
	}
	c.JSON(http.StatusOK, reqs)
}

// UpdateRequest applies an admin's status/response change (admin only)
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "update_request")
	defer observability.FinishSpan(span, nil)

	id := c.Param("id")
	span.SetAttributes(observability.AttributeRequestID(id))

	var input models.UpdateRequestInput
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

	if input.Status == nil && input.Response == nil {
		HandleValidationError(c, "body", input, "at least one of status or response is required")
		return
	}
	if input.Status != nil && !input.Status.Valid() {
		HandleValidationError(c, "status", *input.Status, "must be one of pending, processing, completed, rejected")
		return
	}

	updated, err := h.lifecycle.HandleAdminUpdate(c.Request.Context(), id, &input)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteRequest removes a request (admin only)
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "delete_request")
	defer observability.FinishSpan(span, nil)

	id := c.Param("id")
	span.SetAttributes(observability.AttributeRequestID(id))

	if err := h.requestService.DeleteRequest(c.Request.Context(), id); err != nil {
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetBasicQuestions returns the public canned question catalog
func (h *RequestHandler) GetBasicQuestions(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_basic_questions")
	defer observability.FinishSpan(span, nil)

	questions, err := h.requestService.GetAllBasicQuestions(c.Request.Context())
	if err != nil {
		HandleAppError(c, err)
		return
	}

	if questions == nil {
		questions = []models.BasicQuestion{}
	}
	c.JSON(http.StatusOK, questions)
}

// CreateBasicQuestion adds a canned catalog entry (admin only)
func (h *RequestHandler) CreateBasicQuestion(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "create_basic_question")
	defer observability.FinishSpan(span, nil)

	var input models.BasicQuestionInput
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

	question, err := h.requestService.CreateBasicQuestion(c.Request.Context(), &input)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateBasicQuestion edits a canned catalog entry (admin only)
func (h *RequestHandler) UpdateBasicQuestion(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "update_basic_question")
	defer observability.FinishSpan(span, nil)

	id := c.Param("id")

	var input models.UpdateBasicQuestionInput
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

	if input.Topic == nil && input.Answer == nil {
		HandleValidationError(c, "body", input, "at least one of topic or answer is required")
		return
	}

	question, err := h.requestService.UpdateBasicQuestion(c.Request.Context(), id, &input)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeleteBasicQuestion removes a canned catalog entry (admin only)
func (h *RequestHandler) DeleteBasicQuestion(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "delete_basic_question")
	defer observability.FinishSpan(span, nil)

	id := c.Param("id")

	if err := h.requestService.DeleteBasicQuestion(c.Request.Context(), id); err != nil {
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
