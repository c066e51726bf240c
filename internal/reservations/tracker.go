package reservations

import (
	"context"
	"time"

	"commissary/internal/ledger"
	"commissary/internal/stock"
	"commissary/pkg/apperrors"
	"commissary/pkg/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type HoldRequest struct {
	ItemID         int             `json:"item_id"`
	LocationID     int             `json:"location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	OrderReference string          `json:"order_reference"`
	TTLSeconds     int             `json:"ttl_seconds"`
}

func (r HoldRequest) validate() error {
	if r.ItemID == 0 || r.LocationID == 0 || r.Quantity.IsZero() {
		return apperrors.NewValidation("Missing required fields")
	}
	if !r.Quantity.IsPositive() {
		return apperrors.NewValidation("Quantity must be positive")
	}
	if r.TTLSeconds <= 0 {
		return apperrors.NewValidation("ttl_seconds must be positive")
	}
	return nil
}

// Tracker manages reservation lifecycle. Hold runs its availability check
// under the same per-pair lock the ledger debits use, so a hold and a
// concurrent consumption cannot both claim the last of the stock.
type Tracker struct {
	repo  Repository
	stock *stock.Projector
	locks *ledger.KeyMutex
	log   *zap.Logger
	now   func() time.Time
}

func NewTracker(repo Repository, projector *stock.Projector, locks *ledger.KeyMutex, log *zap.Logger) *Tracker {
	return &Tracker{
		repo:  repo,
		stock: projector,
		locks: locks,
		log:   log,
		now:   time.Now,
	}
}

func (t *Tracker) Hold(ctx context.Context, req HoldRequest) (*models.Reservation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	t.locks.Lock(req.ItemID, req.LocationID)
	defer t.locks.Unlock(req.ItemID, req.LocationID)

	available, err := t.stock.Available(ctx, req.ItemID, req.LocationID)
	if err != nil {
		return nil, err
	}
	if available.LessThan(req.Quantity) {
		return nil, &apperrors.InsufficientStockError{Available: available, Requested: req.Quantity}
	}

	reservation := &models.Reservation{
		ItemID:         req.ItemID,
		LocationID:     req.LocationID,
		Quantity:       req.Quantity,
		OrderReference: req.OrderReference,
		ExpiresAt:      t.now().Add(time.Duration(req.TTLSeconds) * time.Second),
		Status:         models.ReservationActive,
	}

	return t.repo.Create(ctx, reservation)
}

// Release returns a hold's quantity to the available pool. Releasing a
// reservation that is no longer active is a no-op, not an error.
func (t *Tracker) Release(ctx context.Context, id int) (*models.Reservation, error) {
	if _, err := t.repo.Transition(ctx, id, models.ReservationReleased); err != nil {
		return nil, err
	}
	return t.repo.Get(ctx, id)
}

// Fulfill marks a hold consumed by its order. The physical stock change is a
// normal consumption movement recorded separately.
func (t *Tracker) Fulfill(ctx context.Context, id int) (*models.Reservation, error) {
	if _, err := t.repo.Transition(ctx, id, models.ReservationFulfilled); err != nil {
		return nil, err
	}
	return t.repo.Get(ctx, id)
}

func (t *Tracker) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	return t.repo.ExpireDue(ctx, now)
}

// StartSweeper expires due reservations on a fixed interval until ctx is
// cancelled. Availability checks already exclude past-expiry holds, so the
// sweep only settles row status.
func (t *Tracker) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				expired, err := t.ExpireDue(ctx, t.now())
				if err != nil {
					t.log.Warn("reservation expiry sweep failed", zap.Error(err))
					continue
				}
				if expired > 0 {
					t.log.Info("expired reservations", zap.Int64("count", expired))
				}
			}
		}
	}()
}
