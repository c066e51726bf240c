package models

import "time"

// Location is a versioned reference entity. Version starts at 1 and is
// incremented by exactly 1 on every committed update; a caller-supplied
// stale version is rejected with a conflict, never silently merged.
type Location struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Address     *string   `json:"address,omitempty" db:"address"`
	Latitude    *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64  `json:"longitude,omitempty" db:"longitude"`
	Status      string    `json:"status" db:"status"`
	Version     int       `json:"version" db:"version"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
