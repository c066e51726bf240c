// Package ledger is the append-only log of stock movements. Every change to
// physical stock is one committed Movement row; on-hand quantities are
// always derived from the log, never stored as the source of truth.
package ledger

import (
	"context"
	"time"

	"commissary/pkg/models"
)

// Store persists movements. Implementations never expose update or delete:
// corrections are compensating movements. Append assigns the id and
// timestamp when absent and returns the committed row. Query results are
// ordered oldest first.
type Store interface {
	Append(ctx context.Context, m *models.Movement) (*models.Movement, error)
	QueryByItem(ctx context.Context, itemID int, locationID *int) ([]models.Movement, error)
	QueryByDateRange(ctx context.Context, start, end time.Time) ([]models.Movement, error)
}
