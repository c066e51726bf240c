package items

import (
	"fmt"
	"strings"

	"commissary/internal/repository"
	"commissary/pkg/apperrors"
	"commissary/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type ItemRepository struct {
	repository *repository.Repository
}

func NewItemRepository(r *repository.Repository) *ItemRepository {
	return &ItemRepository{repository: r}
}

type ItemFilter struct {
	Name     string
	Category string
	Type     string
	Status   string
}

func (r *ItemRepository) GetItem(id int) (*models.Item, error) {
	var item models.Item
	query := r.repository.GoquDBWrapper.
		From("items").
		Select(&models.Item{}).
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFound("Item")
	}

	return &item, nil
}

func (r *ItemRepository) GetItems(filter ItemFilter, limit, offset int, sortField, sortOrder string) ([]models.Item, int64, error) {
	base := r.repository.GoquDBWrapper.From("items")

	if filter.Name != "" {
		base = base.Where(goqu.C("name").ILike("%" + filter.Name + "%"))
	}
	if filter.Category != "" {
		base = base.Where(goqu.C("category").Eq(filter.Category))
	}
	if filter.Type != "" {
		base = base.Where(goqu.C("type").Eq(filter.Type))
	}
	if filter.Status != "" {
		base = base.Where(goqu.C("status").Eq(filter.Status))
	}

	var total int64
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting items: %w", err)
	}

	order := goqu.C(sortColumn(sortField)).Asc()
	if strings.EqualFold(sortOrder, "desc") {
		order = goqu.C(sortColumn(sortField)).Desc()
	}

	var items []models.Item
	query := base.Select(&models.Item{}).Order(order).Limit(uint(limit)).Offset(uint(offset))
	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, 0, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return items, total, nil
}

// sortColumn whitelists sortable fields; anything else falls back to name.
func sortColumn(field string) string {
	switch field {
	case "name", "created_at":
		return field
	default:
		return "name"
	}
}

func (r *ItemRepository) PersistItem(req ItemRequest) (*models.Item, error) {
	sku := req.SKU
	if sku == "" {
		sku = generateSKU()
	}

	query := r.repository.GoquDBWrapper.Insert("items").
		Rows(goqu.Record{
			"sku":             sku,
			"name":            req.Name,
			"description":     req.Description,
			"category":        req.Category,
			"unit_of_measure": req.UnitOfMeasure,
			"type":            req.Type,
			"status":          models.StatusActive,
		}).
		Returning(&models.Item{})

	var item models.Item
	if _, err := query.Executor().ScanStruct(&item); err != nil {
		return nil, apperrors.WrapDB(err, "item")
	}

	return &item, nil
}

func (r *ItemRepository) UpdateItem(id int, req ItemRequest) (*models.Item, error) {
	current, err := r.GetItem(id)
	if err != nil {
		return nil, err
	}
	if !current.IsActive() {
		return nil, apperrors.NewValidation("Item is archived")
	}

	updates := goqu.Record{"updated_at": goqu.L("NOW()")}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.UnitOfMeasure != "" {
		updates["unit_of_measure"] = req.UnitOfMeasure
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}

	query := r.repository.GoquDBWrapper.
		Update("items").
		Set(updates).
		Where(goqu.Ex{"id": id}).
		Returning(&models.Item{})

	var item models.Item
	if _, err := query.Executor().ScanStruct(&item); err != nil {
		return nil, apperrors.WrapDB(err, "item")
	}

	return &item, nil
}

// ArchiveItem soft deletes: the row persists because past movements
// reference it.
func (r *ItemRepository) ArchiveItem(id int) error {
	result, err := r.repository.GoquDBWrapper.Update("items").
		Set(goqu.Record{"status": models.StatusInactive, "updated_at": goqu.L("NOW()")}).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to archive item %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFound("Item")
	}

	return nil
}

func generateSKU() string {
	return "ITM-" + strings.ToUpper(uuid.NewString()[:8])
}
