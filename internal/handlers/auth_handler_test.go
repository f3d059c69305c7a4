package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kingsadvice/internal/config"
	"kingsadvice/internal/middleware"
	"kingsadvice/internal/models"
	"kingsadvice/internal/observability"
	contextutils "kingsadvice/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *observability.Logger {
	return observability.NewLogger(&config.OpenTelemetryConfig{EnableLogging: false})
}

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			AdminUsername: "admin",
			SessionSecret: "test-secret",
		},
	}
}

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("advice-session", store))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	adminService := &MockAdminService{}
	adminService.On("Authenticate", mock.Anything, "admin", "hunter2").
		Return(&models.Admin{ID: "adm-1", Username: "admin"}, nil)

	router := newSessionRouter()
	handler := NewAuthHandler(adminService, newTestConfig(), newTestLogger())
	router.POST("/api/admin/login", handler.Login)

	w := postJSON(t, router, "/api/admin/login", gin.H{"password": "hunter2"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.NotEmpty(t, w.Result().Cookies())
	adminService.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	adminService := &MockAdminService{}
	adminService.On("Authenticate", mock.Anything, "admin", "wrong").
		Return(nil, contextutils.ErrInvalidCredentials)

	router := newSessionRouter()
	handler := NewAuthHandler(adminService, newTestConfig(), newTestLogger())
	router.POST("/api/admin/login", handler.Login)

	w := postJSON(t, router, "/api/admin/login", gin.H{"password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}

func TestLogin_MissingPassword(t *testing.T) {
	adminService := &MockAdminService{}

	router := newSessionRouter()
	handler := NewAuthHandler(adminService, newTestConfig(), newTestLogger())
	router.POST("/api/admin/login", handler.Login)

	w := postJSON(t, router, "/api/admin/login", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	adminService.AssertNotCalled(t, "Authenticate")
}

func TestLogin_ExplicitUsername(t *testing.T) {
	adminService := &MockAdminService{}
	adminService.On("Authenticate", mock.Anything, "ops", "hunter2").
		Return(&models.Admin{ID: "adm-2", Username: "ops"}, nil)

	router := newSessionRouter()
	handler := NewAuthHandler(adminService, newTestConfig(), newTestLogger())
	router.POST("/api/admin/login", handler.Login)

	w := postJSON(t, router, "/api/admin/login", gin.H{"username": "ops", "password": "hunter2"})

	assert.Equal(t, http.StatusOK, w.Code)
	adminService.AssertExpectations(t)
}

func TestLogoutAndCheck(t *testing.T) {
	adminService := &MockAdminService{}
	adminService.On("Authenticate", mock.Anything, "admin", "hunter2").
		Return(&models.Admin{ID: "adm-1", Username: "admin"}, nil)

	router := newSessionRouter()
	handler := NewAuthHandler(adminService, newTestConfig(), newTestLogger())
	router.POST("/api/admin/login", handler.Login)
	router.POST("/api/admin/logout", handler.Logout)
	router.GET("/api/admin/check", handler.Check)

	// Unauthenticated check
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/check", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isAdmin":false`)

	// Login, then check with the session cookie
	loginResp := postJSON(t, router, "/api/admin/login", gin.H{"password": "hunter2"})
	require.Equal(t, http.StatusOK, loginResp.Code)
	sessionCookie := loginResp.Result().Cookies()[0]

	req := httptest.NewRequest("GET", "/api/admin/check", nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"isAdmin":true`)

	// Logout clears the session
	logoutResp := postJSON(t, router, "/api/admin/logout", gin.H{}, sessionCookie)
	assert.Equal(t, http.StatusOK, logoutResp.Code)

	clearedCookie := logoutResp.Result().Cookies()[0]
	req = httptest.NewRequest("GET", "/api/admin/check", nil)
	req.AddCookie(clearedCookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"isAdmin":false`)
}

func TestRequireAdminGuardsAdminRoutes(t *testing.T) {
	requestService := &MockRequestService{}

	router := newSessionRouter()
	handler := NewRequestHandler(requestService, &MockLifecycleService{}, newTestConfig(), newTestLogger())
	router.GET("/api/requests", middleware.RequireAdmin(), handler.GetAllRequests)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/requests", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	requestService.AssertNotCalled(t, "GetAllRequests")
}
