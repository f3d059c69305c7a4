package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kingsadvice/internal/models"
	contextutils "kingsadvice/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleRequest(tier models.Tier, status models.Status) *models.Request {
	return &models.Request{
		ID:            "req-1",
		Tier:          tier,
		Status:        status,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Description:   "Selected Topic: Market entry strategy",
		Amount:        tier.PriceDollars(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func newRequestRouter(requestService *MockRequestService, lifecycle *MockLifecycleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewRequestHandler(requestService, lifecycle, newTestConfig(), newTestLogger())
	router.POST("/api/requests", handler.CreateRequest)
	router.GET("/api/requests/:id", handler.GetRequest)
	router.GET("/api/requests", handler.GetAllRequests)
	router.PATCH("/api/requests/:id", handler.UpdateRequest)
	router.DELETE("/api/requests/:id", handler.DeleteRequest)
	router.GET("/api/basic-questions", handler.GetBasicQuestions)
	router.POST("/api/basic-questions", handler.CreateBasicQuestion)
	router.PATCH("/api/basic-questions/:id", handler.UpdateBasicQuestion)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		reader = &bytes.Buffer{}
		require.NoError(t, json.NewEncoder(reader).Encode(body))
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateRequest_BasicResolvedInline(t *testing.T) {
	requestService := &MockRequestService{}
	lifecycle := &MockLifecycleService{}

	created := sampleRequest(models.TierBasic, models.StatusPending)
	resolved := sampleRequest(models.TierBasic, models.StatusCompleted)
	resolved.Response = sql.NullString{String: "Focus on partnerships first.", Valid: true}

	requestService.On("CreateRequest", mock.Anything, mock.Anything).Return(created, nil)
	lifecycle.On("ResolveBasicDirect", mock.Anything, "req-1").Return(resolved, nil)

	router := newRequestRouter(requestService, lifecycle)
	w := doJSON(t, router, "POST", "/api/requests", gin.H{
		"tier":          "basic",
		"customerName":  "Ada Lovelace",
		"customerEmail": "ada@example.com",
		"description":   "Selected Topic: Market entry strategy",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"completed"`)
	assert.Contains(t, w.Body.String(), `"customerName":"Ada Lovelace"`)
	assert.Contains(t, w.Body.String(), `"description":"Selected Topic: Market entry strategy"`)
	assert.Contains(t, w.Body.String(), "Focus on partnerships first.")
	lifecycle.AssertExpectations(t)
}

func TestCreateRequest_CustomGoesToProcessing(t *testing.T) {
	requestService := &MockRequestService{}
	lifecycle := &MockLifecycleService{}

	created := sampleRequest(models.TierCustom, models.StatusPending)
	processing := sampleRequest(models.TierCustom, models.StatusProcessing)

	requestService.On("CreateRequest", mock.Anything, mock.Anything).Return(created, nil)
	lifecycle.On("ResolvePayment", mock.Anything, "req-1").Return(processing, nil)

	router := newRequestRouter(requestService, lifecycle)
	w := doJSON(t, router, "POST", "/api/requests", gin.H{
		"tier":          "custom",
		"customerName":  "Ada Lovelace",
		"customerEmail": "ada@example.com",
		"description":   "We need a go-to-market plan for the Nordics.",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"processing"`)
	lifecycle.AssertExpectations(t)
}

func TestCreateRequest_InvalidTier(t *testing.T) {
	requestService := &MockRequestService{}
	lifecycle := &MockLifecycleService{}

	router := newRequestRouter(requestService, lifecycle)
	w := doJSON(t, router, "POST", "/api/requests", gin.H{
		"tier":          "platinum",
		"customerName":  "Ada Lovelace",
		"customerEmail": "ada@example.com",
		"description":   "What should we charge?",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	requestService.AssertNotCalled(t, "CreateRequest")
}

func TestCreateRequest_MissingFields(t *testing.T) {
	requestService := &MockRequestService{}
	lifecycle := &MockLifecycleService{}

	router := newRequestRouter(requestService, lifecycle)
	w := doJSON(t, router, "POST", "/api/requests", gin.H{"customerName": "Ada Lovelace"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestCreateRequest_ResolutionFailureStillReturnsCreated(t *testing.T) {
	requestService := &MockRequestService{}
	lifecycle := &MockLifecycleService{}

	created := sampleRequest(models.TierMiddle, models.StatusPending)
	requestService.On("CreateRequest", mock.Anything, mock.Anything).Return(created, nil)
	lifecycle.On("ResolvePayment", mock.Anything, "req-1").
		Return(nil, contextutils.ErrInternalError)

	router := newRequestRouter(requestService, lifecycle)
	w := doJSON(t, router, "POST", "/api/requests", gin.H{
		"tier":          "middle",
		"customerName":  "Ada Lovelace",
		"customerEmail": "ada@example.com",
		"description":   "How do we scale the team?",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func TestGetRequest_NotFound(t *testing.T) {
	requestService := &MockRequestService{}
	requestService.On("GetRequestByID", mock.Anything, "missing").
		Return(nil, contextutils.ErrRecordNotFound)

	router := newRequestRouter(requestService, &MockLifecycleService{})
	w := doJSON(t, router, "GET", "/api/requests/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "RECORD_NOT_FOUND")
}

func TestGetAllRequests_EmptyListNotNull(t *testing.T) {
	requestService := &MockRequestService{}
	requestService.On("GetAllRequests", mock.Anything).Return([]models.Request(nil), nil)

	router := newRequestRouter(requestService, &MockLifecycleService{})
	w := doJSON(t, router, "GET", "/api/requests", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestUpdateRequest_DelegatesToLifecycle(t *testing.T) {
	lifecycle := &MockLifecycleService{}
	completed := sampleRequest(models.TierCustom, models.StatusCompleted)
	completed.Response = sql.NullString{String: "Expert advice here.", Valid: true}

	lifecycle.On("HandleAdminUpdate", mock.Anything, "req-1", mock.MatchedBy(func(input *models.UpdateRequestInput) bool {
		return input.Status != nil && *input.Status == models.StatusCompleted &&
			input.Response != nil && *input.Response == "Expert advice here."
	})).Return(completed, nil)

	router := newRequestRouter(&MockRequestService{}, lifecycle)
	w := doJSON(t, router, "PATCH", "/api/requests/req-1", gin.H{
		"status":   "completed",
		"response": "Expert advice here.",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Expert advice here.")
	lifecycle.AssertExpectations(t)
}

func TestUpdateRequest_EmptyBodyRejected(t *testing.T) {
	lifecycle := &MockLifecycleService{}

	router := newRequestRouter(&MockRequestService{}, lifecycle)
	w := doJSON(t, router, "PATCH", "/api/requests/req-1", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	lifecycle.AssertNotCalled(t, "HandleAdminUpdate")
}

func TestUpdateRequest_InvalidStatusValue(t *testing.T) {
	router := newRequestRouter(&MockRequestService{}, &MockLifecycleService{})
	w := doJSON(t, router, "PATCH", "/api/requests/req-1", gin.H{"status": "archived"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRequest_InvalidTransitionConflict(t *testing.T) {
	lifecycle := &MockLifecycleService{}
	lifecycle.On("HandleAdminUpdate", mock.Anything, "req-1", mock.Anything).
		Return(nil, contextutils.ErrInvalidTransition)

	router := newRequestRouter(&MockRequestService{}, lifecycle)
	w := doJSON(t, router, "PATCH", "/api/requests/req-1", gin.H{"status": "pending"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATUS_TRANSITION")
}

func TestDeleteRequest(t *testing.T) {
	requestService := &MockRequestService{}
	requestService.On("DeleteRequest", mock.Anything, "req-1").Return(nil)

	router := newRequestRouter(requestService, &MockLifecycleService{})
	w := doJSON(t, router, "DELETE", "/api/requests/req-1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestBasicQuestions_PublicListing(t *testing.T) {
	requestService := &MockRequestService{}
	requestService.On("GetAllBasicQuestions", mock.Anything).Return([]models.BasicQuestion{
		{ID: "q-1", Topic: "Pricing", Answer: "Value-based pricing."},
	}, nil)

	router := newRequestRouter(requestService, &MockLifecycleService{})
	w := doJSON(t, router, "GET", "/api/basic-questions", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Value-based pricing.")
}

func TestUpdateBasicQuestion_AnswerOnly(t *testing.T) {
	requestService := &MockRequestService{}
	updated := &models.BasicQuestion{ID: "q-1", Topic: "Pricing", Answer: "Charge for outcomes."}
	requestService.On("UpdateBasicQuestion", mock.Anything, "q-1", mock.MatchedBy(func(input *models.UpdateBasicQuestionInput) bool {
		return input.Topic == nil && input.Answer != nil && *input.Answer == "Charge for outcomes."
	})).Return(updated, nil)

	router := newRequestRouter(requestService, &MockLifecycleService{})
	w := doJSON(t, router, "PATCH", "/api/basic-questions/q-1", gin.H{
		"answer": "Charge for outcomes.",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Charge for outcomes.")
	requestService.AssertExpectations(t)
}

func TestUpdateBasicQuestion_EmptyBodyRejected(t *testing.T) {
	requestService := &MockRequestService{}

	router := newRequestRouter(requestService, &MockLifecycleService{})
	w := doJSON(t, router, "PATCH", "/api/basic-questions/q-1", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	requestService.AssertNotCalled(t, "UpdateBasicQuestion")
}

func TestCreateBasicQuestion_DuplicateTopicConflict(t *testing.T) {
	requestService := &MockRequestService{}
	requestService.On("CreateBasicQuestion", mock.Anything, mock.Anything).
		Return(nil, contextutils.ErrRecordExists)

	router := newRequestRouter(requestService, &MockLifecycleService{})
	w := doJSON(t, router, "POST", "/api/basic-questions", gin.H{
		"topic":  "Pricing",
		"answer": "Value-based pricing.",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}
