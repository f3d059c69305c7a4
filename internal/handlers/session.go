package handlers

import (
	"kingsadvice/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// GetAdminIDFromSession retrieves the current admin ID from the session.
// Returns ("", false) if not authenticated or if the stored value is invalid.
func GetAdminIDFromSession(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	adminID := session.Get(middleware.AdminIDKey)
	if adminID == nil {
		return "", false
	}
	id, ok := adminID.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
