package models

import (
	"encoding/json"
	"time"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
)

// StoredOption is a named settings record persisted as a JSON blob.
type StoredOption struct {
	// Name identifies the record, e.g. "opn_settings"
	Name string `json:"name" db:"option_name"`

	// Value is the raw JSON document as persisted
	Value json.RawMessage `json:"value" db:"option_value"`

	// UpdatedAt records when the option was last written
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the database table name for the StoredOption model.
func (o *StoredOption) TableName() string {
	return constants.TableOptions
}

// Decode unmarshals the stored JSON document into a loosely typed mapping.
// A document that is not a JSON object yields an empty mapping, so resolution
// falls back to defaults instead of failing.
func (o *StoredOption) Decode() map[string]any {
	out := map[string]any{}
	if len(o.Value) == 0 {
		return out
	}
	if err := json.Unmarshal(o.Value, &out); err != nil {
		return map[string]any{}
	}
	return out
}

// ItemFlag is a named per-item flag, such as the notice opt-out.
type ItemFlag struct {
	ItemID    int64     `json:"item_id" db:"item_id"`
	Name      string    `json:"name" db:"flag_name"`
	Value     string    `json:"value" db:"flag_value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the database table name for the ItemFlag model.
func (f *ItemFlag) TableName() string {
	return constants.TableItemFlags
}
