package models

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID         int            `json:"id" db:"id"`
	EntityType string         `json:"entity_type" db:"entity_type"`
	EntityID   int            `json:"entity_id" db:"entity_id"`
	Action     string         `json:"action" db:"action"`
	ChangesRaw string         `json:"-" db:"changes"` // JSON as string
	Changes    map[string]any `json:"changes" db:"-"`
	UserID     *int           `json:"user_id,omitempty" db:"user_id"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

func (a *AuditLog) LoadFromDB() {
	if a.ChangesRaw != "" {
		_ = json.Unmarshal([]byte(a.ChangesRaw), &a.Changes)
	}
}
