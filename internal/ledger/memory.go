package ledger

import (
	"context"
	"sync"
	"time"

	"commissary/pkg/apperrors"
	"commissary/pkg/models"
)

// MemoryStore keeps the ledger in process memory. It backs tests and holds
// to the same contract as the Postgres store: monotonic ids, immutable rows,
// oldest-first queries.
type MemoryStore struct {
	mu        sync.RWMutex
	nextID    int
	movements []models.Movement
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Append(_ context.Context, m *models.Movement) (*models.Movement, error) {
	if !m.Quantity.IsPositive() {
		return nil, apperrors.NewValidation("quantity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	committed := *m
	committed.ID = s.nextID
	s.nextID++
	if committed.CreatedAt.IsZero() {
		committed.CreatedAt = time.Now().UTC()
	}

	s.movements = append(s.movements, committed)

	result := committed
	return &result, nil
}

func (s *MemoryStore) QueryByItem(_ context.Context, itemID int, locationID *int) ([]models.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Movement
	for _, m := range s.movements {
		if m.ItemID != itemID {
			continue
		}
		if locationID != nil && !touchesLocation(m, *locationID) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *MemoryStore) QueryByDateRange(_ context.Context, start, end time.Time) ([]models.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Movement
	for _, m := range s.movements {
		if m.CreatedAt.Before(start) || m.CreatedAt.After(end) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func touchesLocation(m models.Movement, locationID int) bool {
	if m.FromLocationID != nil && *m.FromLocationID == locationID {
		return true
	}
	if m.ToLocationID != nil && *m.ToLocationID == locationID {
		return true
	}
	return false
}
