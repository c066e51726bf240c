package reservations

import (
	"context"
	"sync"
	"time"

	"commissary/pkg/apperrors"
	"commissary/pkg/models"

	"github.com/shopspring/decimal"
)

type MemoryRepository struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]*models.Reservation
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, rows: make(map[int]*models.Reservation)}
}

func (r *MemoryRepository) Create(_ context.Context, res *models.Reservation) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := *res
	row.ID = r.nextID
	r.nextID++
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	r.rows[row.ID] = &row

	result := row
	return &result, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NewNotFound("reservation")
	}

	result := *row
	return &result, nil
}

func (r *MemoryRepository) Transition(_ context.Context, id int, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return false, apperrors.NewNotFound("reservation")
	}
	if row.Status != models.ReservationActive {
		return false, nil
	}

	row.Status = to
	return true, nil
}

func (r *MemoryRepository) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired int64
	for _, row := range r.rows {
		if row.Status == models.ReservationActive && row.ExpiresAt.Before(now) {
			row.Status = models.ReservationExpired
			expired++
		}
	}
	return expired, nil
}

func (r *MemoryRepository) SumActive(_ context.Context, itemID, locationID int, now time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := decimal.Zero
	for _, row := range r.rows {
		if row.ItemID != itemID || row.LocationID != locationID {
			continue
		}
		if row.Status != models.ReservationActive || !row.ExpiresAt.After(now) {
			continue
		}
		total = total.Add(row.Quantity)
	}
	return total, nil
}
