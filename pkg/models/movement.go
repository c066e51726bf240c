package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementReceipt     MovementType = "receipt"
	MovementConsumption MovementType = "consumption"
	MovementTransfer    MovementType = "transfer"
	MovementAdjustment  MovementType = "adjustment"
)

// Movement is one immutable ledger entry. A nil FromLocationID means the
// stock entered from outside (a receipt), a nil ToLocationID means it left
// the system (a consumption). A transfer carries both. Corrections are made
// by appending a compensating movement, never by editing a row.
type Movement struct {
	ID              int             `json:"id" db:"id"`
	ItemID          int             `json:"item_id" db:"item_id"`
	FromLocationID  *int            `json:"from_location_id" db:"from_location_id"`
	ToLocationID    *int            `json:"to_location_id" db:"to_location_id"`
	Quantity        decimal.Decimal `json:"quantity" db:"quantity"`
	Type            MovementType    `json:"movement_type" db:"movement_type"`
	UserID          *int            `json:"user_id,omitempty" db:"user_id"`
	ReferenceNumber string          `json:"reference_number,omitempty" db:"reference_number"`
	Notes           string          `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}
