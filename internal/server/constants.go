package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "Security alert: repeated failed authentication"
	SecurityAlertHighRate   = "Security alert: request rate limit exceeded"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAPIKey          = "X-API-Key"
	HeaderAuthorization   = "Authorization"
	HeaderForwardedFor    = "X-Forwarded-For"
	HeaderRetryAfter      = "Retry-After"
	HeaderContentType     = "X-Content-Type-Options"
	HeaderFrameOptions    = "X-Frame-Options"
	HeaderContentSecurity = "Content-Security-Policy"
	HeaderReferrerPolicy  = "Referrer-Policy"
	HeaderCacheControl    = "Cache-Control"
)

// Security header values
const (
	HeaderValueNoSniff    = "nosniff"
	HeaderValueDeny       = "DENY"
	HeaderValueCSPNone    = "default-src 'none'; frame-ancestors 'none'"
	HeaderValueCSPSwagger = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'"
	HeaderValueNoReferrer = "no-referrer"
	HeaderValueNoStore    = "no-store"
)

// BearerPrefix introduces an API key in the Authorization header
const BearerPrefix = "Bearer "

// APIPrefix is the versioned game API mount point
const APIPrefix = "/api/v1"

// SwaggerPrefix serves the API documentation UI and doc.json
const SwaggerPrefix = "/swagger/"

// Public path prefixes that bypass authentication
var PublicPaths = []string{
	"/healthz",
	"/version",
	"/readyz",
	"/metrics",
	SwaggerPrefix,
}

// Limits
const (
	MaxRequestBodyBytes = 1 << 20
	ReadHeaderTimeout   = 5 * time.Second
)

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
