// Package reservations tracks quantity held against future orders. A hold
// reduces available stock at its location while active; it never touches the
// movement ledger.
package reservations

import (
	"context"
	"time"

	"commissary/pkg/models"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, r *models.Reservation) (*models.Reservation, error)
	Get(ctx context.Context, id int) (*models.Reservation, error)

	// Transition moves a reservation from the active status to a terminal
	// one. It reports false when the row was not active, which callers use
	// for idempotent release.
	Transition(ctx context.Context, id int, to string) (bool, error)

	// ExpireDue flips every active reservation whose expiry has passed to
	// expired and returns how many rows changed.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)

	// SumActive totals active, unexpired holds for an item/location pair.
	SumActive(ctx context.Context, itemID, locationID int, now time.Time) (decimal.Decimal, error)
}
