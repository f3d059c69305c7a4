package handlers

import (
	"net/http"

	"kingsadvice/internal/config"
	"kingsadvice/internal/middleware"
	"kingsadvice/internal/observability"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	contextutils "kingsadvice/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// AuthHandler handles admin portal authentication requests
type AuthHandler struct {
	adminService serviceinterfaces.AdminService
	config       *config.Config
	logger       *observability.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(adminService serviceinterfaces.AdminService, cfg *config.Config, logger *observability.Logger) *AuthHandler {
	return &AuthHandler{
		adminService: adminService,
		config:       cfg,
		logger:       logger,
	}
}

// LoginRequest is the admin login payload. Username is optional and defaults
// to the configured bootstrap admin account.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin and establishes a cookie session
func (h *AuthHandler) Login(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "login")
	defer observability.FinishSpan(span, nil)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleAppError(c, contextutils.NewAppErrorWithCause(
			contextutils.ErrorCodeInvalidInput,
			contextutils.SeverityWarn,
			"Invalid request body",
			"",
			err,
		))
		return
	}

	username := req.Username
	if username == "" {
		username = h.config.Server.AdminUsername
	}
	if username == "" {
		username = "admin"
	}

	span.SetAttributes(
		observability.AttributeAdminUsername(username),
		attribute.Bool("auth.password_provided", req.Password != ""),
	)

	admin, err := h.adminService.Authenticate(c.Request.Context(), username, req.Password)
	if err != nil {
		h.logger.Warn(c.Request.Context(), "Admin authentication failed", map[string]interface{}{"username": username})
		HandleAppError(c, contextutils.ErrInvalidCredentials)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.AdminIDKey, admin.ID)
	session.Set(middleware.UsernameKey, admin.Username)

	if err := session.Save(); err != nil {
		h.logger.Error(c.Request.Context(), "Failed to save session", err, map[string]interface{}{"username": username})
		HandleAppError(c, contextutils.WrapError(err, "failed to create session"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout clears the admin session
func (h *AuthHandler) Logout(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "logout")
	defer observability.FinishSpan(span, nil)

	session := sessions.Default(c)
	if username, ok := session.Get(middleware.UsernameKey).(string); ok {
		span.SetAttributes(observability.AttributeAdminUsername(username))
	}

	session.Clear()

	if err := session.Save(); err != nil {
		HandleAppError(c, contextutils.WrapError(err, "failed to clear session"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Check reports whether the caller holds a valid admin session
func (h *AuthHandler) Check(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "check")
	defer observability.FinishSpan(span, nil)

	_, isAdmin := GetAdminIDFromSession(c)
	c.JSON(http.StatusOK, gin.H{"isAdmin": isAdmin})
}
