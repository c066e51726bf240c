package reservations

import (
	"context"
	"fmt"
	"time"

	"commissary/internal/repository"
	"commissary/pkg/apperrors"
	"commissary/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	repo *repository.Repository
}

func NewPostgresRepository(r *repository.Repository) *PostgresRepository {
	return &PostgresRepository{repo: r}
}

func (r *PostgresRepository) Create(ctx context.Context, res *models.Reservation) (*models.Reservation, error) {
	query := r.repo.GoquDBWrapper.Insert("inventory_reservations").
		Rows(goqu.Record{
			"item_id":         res.ItemID,
			"location_id":     res.LocationID,
			"quantity":        res.Quantity,
			"order_reference": res.OrderReference,
			"expires_at":      res.ExpiresAt,
			"status":          res.Status,
		}).
		Returning("id", "created_at")

	created := *res
	found, err := query.Executor().ScanStructContext(ctx, &created)
	if err != nil {
		return nil, apperrors.WrapDB(err, "reservation")
	}
	if !found {
		return nil, fmt.Errorf("insert reservation returned no row")
	}

	return &created, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int) (*models.Reservation, error) {
	var res models.Reservation
	query := r.repo.GoquDBWrapper.
		From("inventory_reservations").
		Select(&models.Reservation{}).
		Where(goqu.C("id").Eq(id))

	found, err := query.Executor().ScanStructContext(ctx, &res)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFound("reservation")
	}

	return &res, nil
}

func (r *PostgresRepository) Transition(ctx context.Context, id int, to string) (bool, error) {
	result, err := r.repo.GoquDBWrapper.Update("inventory_reservations").
		Set(goqu.Record{"status": to}).
		Where(goqu.Ex{"id": id, "status": models.ReservationActive}).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to transition reservation %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		// either missing or already terminal; callers that care re-read
		if _, err := r.Get(ctx, id); err != nil {
			return false, err
		}
		return false, nil
	}

	return true, nil
}

func (r *PostgresRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.repo.GoquDBWrapper.Update("inventory_reservations").
		Set(goqu.Record{"status": models.ReservationExpired}).
		Where(
			goqu.C("status").Eq(models.ReservationActive),
			goqu.C("expires_at").Lt(now),
		).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to expire reservations: %w", err)
	}

	return result.RowsAffected()
}

func (r *PostgresRepository) SumActive(ctx context.Context, itemID, locationID int, now time.Time) (decimal.Decimal, error) {
	query := r.repo.GoquDBWrapper.
		From("inventory_reservations").
		Select(goqu.COALESCE(goqu.SUM("quantity"), 0)).
		Where(goqu.Ex{
			"item_id":     itemID,
			"location_id": locationID,
			"status":      models.ReservationActive,
		}).
		Where(goqu.C("expires_at").Gt(now))

	var total decimal.Decimal
	if _, err := query.Executor().ScanValContext(ctx, &total); err != nil {
		return decimal.Zero, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return total, nil
}
