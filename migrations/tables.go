package migrations

import (
	"fmt"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
)

// createOptionsTable creates the table holding the persisted settings record
func createOptionsTable() Migration {
	return Migration{
		Name:        "create_notice_options_table",
		Description: "Creates the notice_options table",
		TableName:   constants.TableOptions,
		MySQL: fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				option_name VARCHAR(191) NOT NULL PRIMARY KEY,
				option_value LONGTEXT NOT NULL,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`, constants.TableOptions),
		Postgres: fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				option_name VARCHAR(191) NOT NULL PRIMARY KEY,
				option_value TEXT NOT NULL,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`, constants.TableOptions),
	}
}

// createItemFlagsTable creates the per-item flag table
func createItemFlagsTable() Migration {
	return Migration{
		Name:        "create_notice_item_flags_table",
		Description: "Creates the notice_item_flags table",
		TableName:   constants.TableItemFlags,
		MySQL: fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				item_id BIGINT NOT NULL,
				flag_name VARCHAR(191) NOT NULL,
				flag_value VARCHAR(255) NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (item_id, flag_name),
				INDEX idx_flag_name (flag_name)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`, constants.TableItemFlags),
		Postgres: fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				item_id BIGINT NOT NULL,
				flag_name VARCHAR(191) NOT NULL,
				flag_value VARCHAR(255) NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (item_id, flag_name)
			)`, constants.TableItemFlags),
	}
}

// GetMigrations returns all migrations in the order they need to be executed
func GetMigrations() []Migration {
	return []Migration{
		createOptionsTable(),
		createItemFlagsTable(),
	}
}
