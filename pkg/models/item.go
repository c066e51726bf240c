package models

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

const (
	ItemKindIngredient   = "ingredient"
	ItemKindFinishedGood = "finished_good"
)

type Item struct {
	ID            int       `json:"id" db:"id"`
	SKU           string    `json:"sku" db:"sku"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description,omitempty" db:"description"`
	Category      string    `json:"category" db:"category"`
	UnitOfMeasure string    `json:"unit_of_measure" db:"unit_of_measure"`
	Type          string    `json:"type" db:"type"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func (i *Item) IsActive() bool {
	return i.Status == StatusActive
}
