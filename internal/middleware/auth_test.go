package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("test-session", store))
	return router
}

func setSessionCookie(t *testing.T, router *gin.Engine, values map[string]interface{}) *http.Cookie {
	setupPath := "/setup-session-" + t.Name()
	router.GET(setupPath, func(c *gin.Context) {
		session := sessions.Default(c)
		for k, v := range values {
			session.Set(k, v)
		}
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", setupPath, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestRequireAdmin_ValidSession(t *testing.T) {
	router := newTestRouter()

	cookie := setSessionCookie(t, router, map[string]interface{}{
		AdminIDKey:  "adm-123",
		UsernameKey: "portal-admin",
	})

	router.GET("/admin/resource", RequireAdmin(), func(c *gin.Context) {
		assert.Equal(t, "adm-123", c.GetString(AdminIDKey))
		assert.Equal(t, "portal-admin", c.GetString(UsernameKey))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest("GET", "/admin/resource", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_NoSession(t *testing.T) {
	router := newTestRouter()

	router.GET("/admin/resource", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"should": "not happen"})
	})

	req := httptest.NewRequest("GET", "/admin/resource", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestRequireAdmin_MissingUsername(t *testing.T) {
	router := newTestRouter()

	cookie := setSessionCookie(t, router, map[string]interface{}{
		AdminIDKey: "adm-123",
	})

	router.GET("/admin/resource", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"should": "not happen"})
	})

	req := httptest.NewRequest("GET", "/admin/resource", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_WrongIDType(t *testing.T) {
	router := newTestRouter()

	cookie := setSessionCookie(t, router, map[string]interface{}{
		AdminIDKey:  42,
		UsernameKey: "portal-admin",
	})

	router.GET("/admin/resource", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"should": "not happen"})
	})

	req := httptest.NewRequest("GET", "/admin/resource", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
