package itemtypes

import (
	"encoding/json"
	"fmt"

	"commissary/internal/cache"
	"commissary/internal/repository"
	"commissary/internal/versioned"
	"commissary/pkg/apperrors"
	"commissary/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

const itemTypesTable = "item_types"

type ItemTypeRepository struct {
	Repository *repository.Repository
	lookup     *cache.Cache[int, models.ItemType]
}

func NewItemTypeRepository(r *repository.Repository) *ItemTypeRepository {
	return &ItemTypeRepository{
		Repository: r,
		lookup:     cache.New[int, models.ItemType](),
	}
}

func (r *ItemTypeRepository) GetItemTypes(limit, offset int) ([]models.ItemType, int64, error) {
	base := r.Repository.GoquDBWrapper.
		From(itemTypesTable).
		Where(goqu.C("status").Eq(models.StatusActive))

	var total int64
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting item types: %w", err)
	}

	var types []models.ItemType
	query := base.Select(&models.ItemType{}).
		Order(goqu.C("name").Asc()).
		Limit(uint(limit)).
		Offset(uint(offset))
	if err := query.Executor().ScanStructs(&types); err != nil {
		return nil, 0, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return types, total, nil
}

// GetItemType reads through the lookup cache.
func (r *ItemTypeRepository) GetItemType(id int) (*models.ItemType, error) {
	itemType, err := r.lookup.GetOrCompute(id, func() (models.ItemType, error) {
		var row models.ItemType
		query := r.Repository.GoquDBWrapper.
			From(itemTypesTable).
			Select(&models.ItemType{}).
			Where(goqu.Ex{"id": id})

		found, err := query.Executor().ScanStruct(&row)
		if err != nil {
			return models.ItemType{}, fmt.Errorf("error executing SQL statement: %w", err)
		}
		if !found {
			return models.ItemType{}, apperrors.NewNotFound("Item type")
		}
		return row, nil
	})
	if err != nil {
		return nil, err
	}

	return &itemType, nil
}

type ItemTypeRequest struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	SchemaDefinition json.RawMessage `json:"schema_definition"`
	ParentID         *int            `json:"parent_id"`
	Version          *int            `json:"version"`
}

func (r *ItemTypeRepository) PersistItemType(req ItemTypeRequest) (*models.ItemType, error) {
	schema := req.SchemaDefinition
	if len(schema) == 0 {
		schema = json.RawMessage("{}")
	}

	query := r.Repository.GoquDBWrapper.Insert(itemTypesTable).
		Rows(goqu.Record{
			"name":              req.Name,
			"description":       req.Description,
			"schema_definition": []byte(schema),
			"parent_id":         req.ParentID,
			"status":            models.StatusActive,
			"version":           1,
		}).
		Returning(&models.ItemType{})

	var itemType models.ItemType
	if _, err := query.Executor().ScanStruct(&itemType); err != nil {
		return nil, apperrors.WrapDB(err, "item type")
	}

	return &itemType, nil
}

// UpdateItemType runs the versioned update and invalidates the lookup cache
// in the same path, before any reader can fetch the stale row again.
func (r *ItemTypeRepository) UpdateItemType(id int, req ItemTypeRequest) (*models.ItemType, error) {
	changes := goqu.Record{}
	if req.Name != "" {
		changes["name"] = req.Name
	}
	if req.Description != "" {
		changes["description"] = req.Description
	}
	if len(req.SchemaDefinition) > 0 {
		changes["schema_definition"] = []byte(req.SchemaDefinition)
	}
	if len(changes) == 0 {
		return nil, apperrors.NewValidation("No fields to update")
	}

	if _, err := versioned.Update(r.Repository.GoquDBWrapper, itemTypesTable, "Item type", id, changes, req.Version); err != nil {
		return nil, err
	}
	r.lookup.Invalidate(id)

	return r.GetItemType(id)
}

func (r *ItemTypeRepository) ArchiveItemType(id int) error {
	if _, err := versioned.Archive(r.Repository.GoquDBWrapper, itemTypesTable, "Item type", id); err != nil {
		return err
	}
	r.lookup.Invalidate(id)
	return nil
}
