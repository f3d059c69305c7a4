package config

import "time"

// Timeout constants
const (
	// HTTP timeouts
	DefaultHTTPTimeout = 60 * time.Second
	AIRequestTimeout   = 2 * time.Minute
	ServerReadTimeout  = 15 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ShutdownTimeout    = 30 * time.Second

	// Detached lifecycle tasks (emails, AI drafting) get their own deadline
	// because they outlive the originating HTTP request.
	BackgroundTaskTimeout = 3 * time.Minute

	// Database timeouts
	DatabaseConnMaxLifetime = 5 * time.Minute

	// Session timeouts
	SessionMaxAge = 24 * time.Hour
)

// Session configuration constants
const (
	// Session settings
	SessionPath     = "/"
	SessionHTTPOnly = true
	SessionSecure   = false // Set to true in production with HTTPS

	// Session name
	SessionName = "advice-session"
)

// Security configuration constants
const (
	// Content Security Policy
	DefaultCSP = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline' https://js.stripe.com; frame-src https://js.stripe.com; img-src 'self' data:;"
)
