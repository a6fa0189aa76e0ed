package constants

// Context Keys identify values stored on the request context.
const (
	SubjectContextKey   = "subject"
	RequestIDContextKey = "request_id"
)

// Token Types
const (
	TokenTypeAdmin = "admin"
)

// Authentication transport
const (
	BearerTokenPrefix = "Bearer "
	AuthTokenCookie   = "auth_token"
)

// Rate Limit Categories group routes that share a per-client limit.
const (
	RateCategoryPublic = "public"
)
