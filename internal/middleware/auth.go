// Package middleware provides authentication and error handling middleware for the HTTP API.
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys for admin authentication
const (
	AdminIDKey  = "admin_id"
	UsernameKey = "username"
)

// RequireAdmin returns middleware that requires a valid admin session.
// Every authenticated admin account has full portal access.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		adminID, ok := session.Get(AdminIDKey).(string)
		if !ok || adminID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "UNAUTHORIZED",
			})
			c.Abort()
			return
		}

		username, ok := session.Get(UsernameKey).(string)
		if !ok || username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "UNAUTHORIZED",
			})
			c.Abort()
			return
		}

		c.Set(AdminIDKey, adminID)
		c.Set(UsernameKey, username)

		c.Next()
	}
}
