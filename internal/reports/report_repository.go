package reports

import (
	"fmt"
	"time"

	"commissary/internal/repository"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
)

type ReportRepository struct {
	Repository *repository.Repository
}

func NewReportRepository(r *repository.Repository) *ReportRepository {
	return &ReportRepository{Repository: r}
}

// OnHandRow is one (item, location) line of the stock snapshot. OnHand is the
// signed fold over the movement ledger and never goes negative for rows the
// operations layer produced.
type OnHandRow struct {
	ItemID       int             `json:"item_id" db:"item_id"`
	ItemName     string          `json:"item_name" db:"item_name"`
	SKU          string          `json:"sku" db:"sku"`
	Unit         string          `json:"unit" db:"unit"`
	LocationID   int             `json:"location_id" db:"location_id"`
	LocationName string          `json:"location_name" db:"location_name"`
	OnHand       decimal.Decimal `json:"on_hand" db:"on_hand"`
}

// GetOnHand aggregates the ledger into current balances per item and
// location. A transfer row joins both of its locations, credited on one side
// and debited on the other. Zero balances are filtered out so the snapshot
// only lists stock that exists.
func (r *ReportRepository) GetOnHand(locationID *int) ([]OnHandRow, error) {
	onHand := goqu.L("SUM(CASE WHEN m.to_location_id = l.id THEN m.quantity ELSE -m.quantity END)")

	query := r.Repository.GoquDBWrapper.
		From(goqu.T("inventory_movements").As("m")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.Ex{"i.id": goqu.I("m.item_id")})).
		Join(goqu.T("locations").As("l"), goqu.On(
			goqu.Or(
				goqu.Ex{"l.id": goqu.I("m.to_location_id")},
				goqu.Ex{"l.id": goqu.I("m.from_location_id")},
			),
		)).
		Select(
			goqu.I("i.id").As("item_id"),
			goqu.I("i.name").As("item_name"),
			goqu.I("i.sku").As("sku"),
			goqu.I("i.unit_of_measure").As("unit"),
			goqu.I("l.id").As("location_id"),
			goqu.I("l.name").As("location_name"),
			onHand.As("on_hand"),
		).
		GroupBy(
			goqu.I("i.id"), goqu.I("i.name"), goqu.I("i.sku"), goqu.I("i.unit_of_measure"),
			goqu.I("l.id"), goqu.I("l.name"),
		).
		Having(goqu.L("SUM(CASE WHEN m.to_location_id = l.id THEN m.quantity ELSE -m.quantity END) <> 0")).
		Order(goqu.I("i.name").Asc(), goqu.I("l.name").Asc())

	if locationID != nil {
		query = query.Where(goqu.Ex{"l.id": *locationID})
	}

	var rows []OnHandRow
	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return rows, nil
}

// MovementRow is one ledger entry joined with the names a report reader
// needs. Location names are nullable because receipts have no source and
// consumptions have no destination.
type MovementRow struct {
	ID               int64           `json:"id" db:"id"`
	ItemID           int             `json:"item_id" db:"item_id"`
	ItemName         string          `json:"item_name" db:"item_name"`
	SKU              string          `json:"sku" db:"sku"`
	MovementType     string          `json:"movement_type" db:"movement_type"`
	Quantity         decimal.Decimal `json:"quantity" db:"quantity"`
	FromLocationName *string         `json:"from_location_name" db:"from_location_name"`
	ToLocationName   *string         `json:"to_location_name" db:"to_location_name"`
	ReferenceNumber  string          `json:"reference_number,omitempty" db:"reference_number"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

// GetMovements lists ledger entries inside [start, end], oldest first, with
// item and location names joined in.
func (r *ReportRepository) GetMovements(start, end time.Time, itemID *int) ([]MovementRow, error) {
	query := r.Repository.GoquDBWrapper.
		From(goqu.T("inventory_movements").As("m")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.Ex{"i.id": goqu.I("m.item_id")})).
		LeftJoin(goqu.T("locations").As("lf"), goqu.On(goqu.Ex{"lf.id": goqu.I("m.from_location_id")})).
		LeftJoin(goqu.T("locations").As("lt"), goqu.On(goqu.Ex{"lt.id": goqu.I("m.to_location_id")})).
		Select(
			goqu.I("m.id").As("id"),
			goqu.I("m.item_id").As("item_id"),
			goqu.I("i.name").As("item_name"),
			goqu.I("i.sku").As("sku"),
			goqu.I("m.movement_type").As("movement_type"),
			goqu.I("m.quantity").As("quantity"),
			goqu.I("lf.name").As("from_location_name"),
			goqu.I("lt.name").As("to_location_name"),
			goqu.I("m.reference_number").As("reference_number"),
			goqu.I("m.created_at").As("created_at"),
		).
		Where(goqu.I("m.created_at").Between(goqu.Range(start, end))).
		Order(goqu.I("m.created_at").Asc(), goqu.I("m.id").Asc())

	if itemID != nil {
		query = query.Where(goqu.Ex{"m.item_id": *itemID})
	}

	var rows []MovementRow
	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return rows, nil
}
