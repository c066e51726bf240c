package models

import (
	"encoding/json"
	"time"
)

type ItemType struct {
	ID               int             `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Description      string          `json:"description,omitempty" db:"description"`
	SchemaDefinition json.RawMessage `json:"schema_definition,omitempty" db:"schema_definition"`
	ParentID         *int            `json:"parent_id,omitempty" db:"parent_id"`
	Status           string          `json:"status" db:"status"`
	Version          int             `json:"version" db:"version"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}
