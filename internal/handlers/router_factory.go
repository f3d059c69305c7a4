package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"kingsadvice/internal/config"
	"kingsadvice/internal/middleware"
	"kingsadvice/internal/observability"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	"kingsadvice/internal/version"
)

// NewRouter creates the HTTP router with all middleware and routes wired
func NewRouter(
	cfg *config.Config,
	requestService serviceinterfaces.RequestService,
	lifecycle serviceinterfaces.LifecycleService,
	paymentService serviceinterfaces.PaymentService,
	adminService serviceinterfaces.AdminService,
	logger *observability.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorRecoveryMiddleware(middleware.DefaultErrorRecoveryConfig()))

	// HTTP request logging through the observability logger
	router.Use(func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		fields := map[string]interface{}{
			"http.method":      c.Request.Method,
			"http.path":        c.Request.URL.Path,
			"http.status_code": statusCode,
			"http.latency_ms":  latency.Milliseconds(),
			"http.client_ip":   c.ClientIP(),
			"http.user_agent":  c.Request.UserAgent(),
		}
		if len(c.Errors) > 0 {
			fields["http.error"] = c.Errors.String()
		}

		switch {
		case statusCode >= 500:
			logger.Error(c.Request.Context(), "HTTP request failed", nil, fields)
		case statusCode >= 400:
			logger.Warn(c.Request.Context(), "HTTP request warning", fields)
		default:
			logger.Info(c.Request.Context(), "HTTP request", fields)
		}
	})

	// Health check endpoint (defined before any middleware)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "advice-backend"})
	})

	// OpenTelemetry middleware for HTTP tracing with automatic error attributes
	router.Use(observability.GinMiddlewareWithErrorHandling("advice-backend"))

	// Disable automatic redirection for trailing slashes, which is better for APIs
	router.RedirectTrailingSlash = false

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	store := cookie.NewStore([]byte(cfg.Server.SessionSecret))
	sessionOpts := sessions.Options{
		Path:     config.SessionPath,
		MaxAge:   int(config.SessionMaxAge.Seconds()),
		HttpOnly: config.SessionHTTPOnly,
		Secure:   config.SessionSecure,
	}
	if cfg.Server.Debug {
		sessionOpts.SameSite = http.SameSiteDefaultMode
	} else {
		sessionOpts.SameSite = http.SameSiteLaxMode
		sessionOpts.Secure = true
	}
	store.Options(sessionOpts)
	router.Use(sessions.Sessions(config.SessionName, store))

	gin.SetMode(gin.ReleaseMode)
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	}

	secureConfig := secure.DefaultConfig()
	secureConfig.SSLRedirect = false
	secureConfig.ContentSecurityPolicy = config.DefaultCSP
	router.Use(secure.New(secureConfig))

	authHandler := NewAuthHandler(adminService, cfg, logger)
	requestHandler := NewRequestHandler(requestService, lifecycle, cfg, logger)
	paymentHandler := NewPaymentHandler(paymentService, requestService, lifecycle, cfg, logger)

	api := router.Group("/api")
	{
		api.GET("/version", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"service":   "advice-backend",
				"version":   version.Version,
				"commit":    version.Commit,
				"buildTime": version.BuildTime,
			})
		})

		admin := api.Group("/admin")
		{
			admin.POST("/login", authHandler.Login)
			admin.POST("/logout", authHandler.Logout)
			admin.GET("/check", authHandler.Check)
		}

		// Public request endpoints
		api.POST("/requests", requestHandler.CreateRequest)
		api.GET("/requests/:id", requestHandler.GetRequest)

		// Admin request management
		api.GET("/requests", middleware.RequireAdmin(), requestHandler.GetAllRequests)
		api.PATCH("/requests/:id", middleware.RequireAdmin(), requestHandler.UpdateRequest)
		api.DELETE("/requests/:id", middleware.RequireAdmin(), requestHandler.DeleteRequest)

		// Canned question catalog: public listing, admin curation
		api.GET("/basic-questions", requestHandler.GetBasicQuestions)
		api.POST("/basic-questions", middleware.RequireAdmin(), requestHandler.CreateBasicQuestion)
		api.PATCH("/basic-questions/:id", middleware.RequireAdmin(), requestHandler.UpdateBasicQuestion)
		api.DELETE("/basic-questions/:id", middleware.RequireAdmin(), requestHandler.DeleteBasicQuestion)

		// Checkout
		api.POST("/create-checkout-session", paymentHandler.CreateCheckoutSession)
		api.GET("/session-status/:sessionId", paymentHandler.GetSessionStatus)
		api.GET("/stripe-config", paymentHandler.GetStripeConfig)
	}

	// Config dump endpoint with secrets redacted
	router.GET("/configz", func(c *gin.Context) {
		c.JSON(http.StatusOK, redactedConfig(cfg))
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

// redactedConfig copies the config with every secret field masked
func redactedConfig(cfg *config.Config) *config.Config {
	redacted := *cfg
	if redacted.Server.AdminPassword != "" {
		redacted.Server.AdminPassword = "[REDACTED]"
	}
	if redacted.Server.SessionSecret != "" {
		redacted.Server.SessionSecret = "[REDACTED]"
	}
	if redacted.Database.URL != "" {
		redacted.Database.URL = "[REDACTED]"
	}
	if redacted.Stripe.SecretKey != "" {
		redacted.Stripe.SecretKey = "[REDACTED]"
	}
	if redacted.Email.SMTP.Password != "" {
		redacted.Email.SMTP.Password = "[REDACTED]"
	}
	if redacted.AI.APIKey != "" {
		redacted.AI.APIKey = "[REDACTED]"
	}
	return &redacted
}
