// Package stock derives stock levels from the movement ledger. It keeps no
// state of its own: a balance is always the fold of every movement touching
// the (item, location) pair, so it can be re-derived at any time.
package stock

import (
	"context"
	"fmt"
	"time"

	"commissary/internal/ledger"

	"github.com/shopspring/decimal"
)

// ActiveReservationSummer reports the total quantity currently held by
// active, unexpired reservations at an item/location pair.
type ActiveReservationSummer interface {
	SumActive(ctx context.Context, itemID, locationID int, now time.Time) (decimal.Decimal, error)
}

type Projector struct {
	ledger       ledger.Store
	reservations ActiveReservationSummer
	now          func() time.Time
}

func NewProjector(store ledger.Store, reservations ActiveReservationSummer) *Projector {
	return &Projector{
		ledger:       store,
		reservations: reservations,
		now:          time.Now,
	}
}

// Balance returns the on-hand quantity: the sum of credits into the location
// minus the sum of debits out of it, over every movement for the item.
func (p *Projector) Balance(ctx context.Context, itemID, locationID int) (decimal.Decimal, error) {
	movements, err := p.ledger.QueryByItem(ctx, itemID, &locationID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("query movements: %w", err)
	}

	balance := decimal.Zero
	for _, m := range movements {
		if m.ToLocationID != nil && *m.ToLocationID == locationID {
			balance = balance.Add(m.Quantity)
		}
		if m.FromLocationID != nil && *m.FromLocationID == locationID {
			balance = balance.Sub(m.Quantity)
		}
	}

	return balance, nil
}

// Available returns on-hand minus active reservation holds. A reservation
// past its expiry never counts, even before the expiry sweep has run.
func (p *Projector) Available(ctx context.Context, itemID, locationID int) (decimal.Decimal, error) {
	balance, err := p.Balance(ctx, itemID, locationID)
	if err != nil {
		return decimal.Zero, err
	}

	held, err := p.reservations.SumActive(ctx, itemID, locationID, p.now())
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum reservations: %w", err)
	}

	return balance.Sub(held), nil
}
