package ledger

import (
	"context"
	"fmt"
	"time"

	"commissary/internal/repository"
	"commissary/pkg/apperrors"
	"commissary/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// PostgresStore writes movements to the inventory_movements table. Each
// append is a single insert, so a transfer row (debit and credit in one row)
// commits as a unit and a reader sees both sides or neither.
type PostgresStore struct {
	repo *repository.Repository
}

func NewPostgresStore(r *repository.Repository) *PostgresStore {
	return &PostgresStore{repo: r}
}

func (s *PostgresStore) Append(ctx context.Context, m *models.Movement) (*models.Movement, error) {
	if !m.Quantity.IsPositive() {
		return nil, apperrors.NewValidation("quantity must be positive")
	}

	query := s.repo.GoquDBWrapper.Insert("inventory_movements").
		Rows(goqu.Record{
			"item_id":          m.ItemID,
			"from_location_id": m.FromLocationID,
			"to_location_id":   m.ToLocationID,
			"quantity":         m.Quantity,
			"movement_type":    m.Type,
			"user_id":          m.UserID,
			"reference_number": m.ReferenceNumber,
			"notes":            m.Notes,
		}).
		Returning("id", "created_at")

	committed := *m
	found, err := query.Executor().ScanStructContext(ctx, &committed)
	if err != nil {
		return nil, apperrors.WrapDB(err, "movement")
	}
	if !found {
		return nil, fmt.Errorf("insert movement returned no row")
	}

	return &committed, nil
}

func (s *PostgresStore) QueryByItem(ctx context.Context, itemID int, locationID *int) ([]models.Movement, error) {
	query := s.repo.GoquDBWrapper.
		From("inventory_movements").
		Select(&models.Movement{}).
		Where(goqu.C("item_id").Eq(itemID))

	if locationID != nil {
		query = query.Where(goqu.Or(
			goqu.C("from_location_id").Eq(*locationID),
			goqu.C("to_location_id").Eq(*locationID),
		))
	}

	query = query.Order(goqu.C("created_at").Asc(), goqu.C("id").Asc())

	var movements []models.Movement
	if err := query.Executor().ScanStructsContext(ctx, &movements); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return movements, nil
}

func (s *PostgresStore) QueryByDateRange(ctx context.Context, start, end time.Time) ([]models.Movement, error) {
	query := s.repo.GoquDBWrapper.
		From("inventory_movements").
		Select(&models.Movement{}).
		Where(goqu.C("created_at").Between(goqu.Range(start, end))).
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc())

	var movements []models.Movement
	if err := query.Executor().ScanStructsContext(ctx, &movements); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return movements, nil
}
