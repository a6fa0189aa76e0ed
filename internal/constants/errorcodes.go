// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines constants related to error handling, categorization,
// and messaging. User-facing error messages are informative without revealing
// implementation details.
package constants

// User-Facing Error Messages define standardized messages that can be safely presented to users.
const (
	// MsgAuthRequired indicates that the caller must authenticate to access the resource.
	MsgAuthRequired = "Authentication required"

	// MsgInternalServerError provides a generic server error message.
	MsgInternalServerError = "An internal server error occurred"

	// MsgTokenExpired indicates that the admin token has expired.
	MsgTokenExpired = "Authentication token has expired"

	// MsgInvalidToken indicates that the provided token is invalid.
	MsgInvalidToken = "Invalid token"

	// MsgRequestBodyTooLarge indicates that the request payload exceeds size limits.
	MsgRequestBodyTooLarge = "Request body too large"

	// MsgEmptyRequestBody indicates that a request body was expected but not provided.
	MsgEmptyRequestBody = "Request body must not be empty"

	// MsgMalformedJSON indicates that the request body contains invalid JSON.
	MsgMalformedJSON = "Request body contains malformed JSON"

	// MsgResourceNotFound indicates that the requested resource does not exist.
	MsgResourceNotFound = "The requested resource could not be found"

	// MsgResourceAlreadyExists indicates a duplicate resource conflict.
	MsgResourceAlreadyExists = "A resource with the same unique identifier already exists"

	// MsgInvalidItemID is returned when a path item id is not a positive integer.
	MsgInvalidItemID = "Item ID must be a positive integer"

	// MsgRateLimited is returned when a client exceeds the public route rate limit.
	MsgRateLimited = "Rate limit exceeded. Please try again later."

	// MsgServiceUnhealthy is returned by the health check when the database is unreachable.
	MsgServiceUnhealthy = "Service is not healthy"

	// MsgSettingsReset confirms the persisted settings were removed.
	MsgSettingsReset = "Settings reset to defaults"
)

// Database Error Codes identify driver-specific constraint violations.
const (
	// PGErrorDuplicateConstraint is the PostgreSQL error code for unique constraint violations.
	PGErrorDuplicateConstraint = "23505"

	// PGErrorForeignKeyConstraint is the PostgreSQL error code for foreign key violations.
	PGErrorForeignKeyConstraint = "23503"

	// PGErrorNotNullConstraint is the PostgreSQL error code for not-null constraint violations.
	PGErrorNotNullConstraint = "23502"

	// MySQLErrorDuplicateEntry is the MySQL error number for duplicate key entries.
	MySQLErrorDuplicateEntry = 1062
)

// Logger Constants define values used for structured logging.
const (
	// LogCategoryNotice is the log category for notice decisions.
	LogCategoryNotice = "notice"

	// LogCategorySettings is the log category for settings changes.
	LogCategorySettings = "settings"

	// LogRedactedValue is used to replace sensitive values in logs.
	LogRedactedValue = "[REDACTED]"

	// LogMaxUserAgentLength caps the user agent recorded per request.
	LogMaxUserAgentLength = 256
)

// Log Events name the administrative changes recorded by LogSettingsChange.
const (
	LogEventSettingsUpdate = "settings_update"
	LogEventSettingsReset  = "settings_reset"
	LogEventItemDisable    = "item_disable"
	LogEventItemEnable     = "item_enable"
	LogEventUninstall      = "uninstall"
)
