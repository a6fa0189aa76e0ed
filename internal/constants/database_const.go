// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines table and column names so that repository
// queries and migrations refer to the same schema.
package constants

// Table Names define the names of database tables used in the application.
const (
	// TableOptions stores named settings records as JSON blobs.
	TableOptions = "notice_options"

	// TableItemFlags stores named per-item flags.
	TableItemFlags = "notice_item_flags"

	// TableMigrations records executed schema migrations.
	TableMigrations = "schema_migrations"
)

// Column Names
const (
	ColumnOptionName  = "option_name"
	ColumnOptionValue = "option_value"
	ColumnItemID      = "item_id"
	ColumnFlagName    = "flag_name"
	ColumnFlagValue   = "flag_value"
	ColumnUpdatedAt   = "updated_at"
	ColumnCreatedAt   = "created_at"
)
