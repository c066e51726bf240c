package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ReservationActive    = "active"
	ReservationReleased  = "released"
	ReservationFulfilled = "fulfilled"
	ReservationExpired   = "expired"
)

// Reservation holds quantity against an item/location pending fulfillment.
// While active it reduces available stock, never on-hand stock, and it never
// appears in the movement ledger. Transitions are one-way: active to
// fulfilled, released or expired.
type Reservation struct {
	ID             int             `json:"id" db:"id"`
	ItemID         int             `json:"item_id" db:"item_id"`
	LocationID     int             `json:"location_id" db:"location_id"`
	Quantity       decimal.Decimal `json:"quantity" db:"quantity"`
	OrderReference string          `json:"order_reference,omitempty" db:"order_reference"`
	ExpiresAt      time.Time       `json:"expires_at" db:"expires_at"`
	Status         string          `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}
