// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the application.
// These constants provide sensible defaults for configuration settings and establish
// boundaries for resource usage. Changes to these values may significantly impact
// application behavior.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
// These constants provide sensible defaults for core application settings.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultDBDriver is the database driver used when none is configured.
	DefaultDBDriver = DriverMySQL

	// DefaultMySQLPort is the port used for MySQL when none is configured.
	DefaultMySQLPort = 3306

	// DefaultPostgresPort is the port used for PostgreSQL when none is configured.
	DefaultPostgresPort = 5432

	// DefaultPostgresSSLMode is the sslmode passed to lib/pq.
	DefaultPostgresSSLMode = "disable"

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default minimum number of database connections.
	DefaultDBMinConnections = 5

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultAppName is the application name reported in logs and /version.
	DefaultAppName = "oldnotice"

	// DefaultJWTIssuer is the issuer claim expected on admin tokens.
	DefaultJWTIssuer = "oldnotice-api"
)

// Database Drivers name the supported database/sql drivers.
const (
	// DriverMySQL selects github.com/go-sql-driver/mysql.
	DriverMySQL = "mysql"

	// DriverPostgres selects github.com/lib/pq.
	DriverPostgres = "postgres"
)

// Environment Types define the recognized application running environments.
// These constants are used to adjust behavior based on the deployment environment.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// Request Limits
const (
	// DefaultRateLimitRPS is the sustained per-client request rate of the public routes.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the per-client burst allowance of the public routes.
	DefaultRateLimitBurst = 40

	// MaxRequestBodySize is the maximum size in bytes for HTTP request bodies.
	MaxRequestBodySize = 1048576 // 1MB in bytes
)

// Notice Environment Defaults apply to the notice section of the configuration.
const (
	// DefaultDateLayout renders dates like "March 15, 2024".
	DefaultDateLayout = "January 2, 2006"

	// DefaultTimezone is used for {date} and {updated_date} when none is configured.
	DefaultTimezone = "UTC"
)

// DefaultPublicPostTypes are the post types accepted when the configuration lists none.
var DefaultPublicPostTypes = []string{"post", "page"}

// DefaultTaxonomies are the taxonomies accepted when the configuration lists none.
var DefaultTaxonomies = []string{"category", "post_tag"}
