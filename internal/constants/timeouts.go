package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database Timeouts
const (
	DBConnectionTimeout  = 10 * time.Second
	DBHealthCheckTimeout = 5 * time.Second
	DBConnMaxLifetime    = 1 * time.Hour
	DBConnMaxIdleTime    = 30 * time.Minute
)

// Authentication Timeouts
const (
	DefaultJWTExpiry = 12 * time.Hour
)

// Rate limiter housekeeping
const (
	RateLimiterIdleTTL         = 10 * time.Minute
	RateLimiterCleanupInterval = 1 * time.Minute
)

// Cache lifetimes
const (
	StylesheetMaxAge = 300 // in seconds
)
