package locations

import (
	"fmt"

	"commissary/internal/repository"
	"commissary/internal/versioned"
	"commissary/pkg/apperrors"
	"commissary/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

const locationsTable = "locations"

type LocationRepository struct {
	Repository *repository.Repository
}

func NewLocationRepository(r *repository.Repository) *LocationRepository {
	return &LocationRepository{Repository: r}
}

func (r *LocationRepository) GetLocations(nameFilter string, limit, offset int) ([]models.Location, int64, error) {
	base := r.Repository.GoquDBWrapper.
		From(locationsTable).
		Where(goqu.C("status").Neq(models.StatusInactive))

	if nameFilter != "" {
		base = base.Where(goqu.C("name").ILike("%" + nameFilter + "%"))
	}

	var total int64
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting locations: %w", err)
	}

	var locations []models.Location
	query := base.Select(&models.Location{}).
		Order(goqu.C("name").Asc()).
		Limit(uint(limit)).
		Offset(uint(offset))
	if err := query.Executor().ScanStructs(&locations); err != nil {
		return nil, 0, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return locations, total, nil
}

func (r *LocationRepository) GetLocation(id int) (*models.Location, error) {
	var location models.Location
	query := r.Repository.GoquDBWrapper.
		From(locationsTable).
		Select(&models.Location{}).
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&location)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFound("Location")
	}

	return &location, nil
}

func (r *LocationRepository) PersistLocation(location *models.Location) error {
	query := r.Repository.GoquDBWrapper.Insert(locationsTable).
		Rows(goqu.Record{
			"name":        location.Name,
			"description": location.Description,
			"address":     location.Address,
			"latitude":    location.Latitude,
			"longitude":   location.Longitude,
			"status":      models.StatusActive,
			"version":     1,
		}).
		Returning("id", "status", "version", "created_at", "updated_at")

	if _, err := query.Executor().ScanStruct(location); err != nil {
		return apperrors.WrapDB(err, "location")
	}

	return nil
}

type UpdateLocationRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Version     *int     `json:"version"`
}

// UpdateLocation applies the change set through the shared versioned-update
// primitive: the version check and the increment are one atomic statement.
func (r *LocationRepository) UpdateLocation(id int, req UpdateLocationRequest) (*models.Location, error) {
	changes := goqu.Record{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Address != nil {
		changes["address"] = *req.Address
	}
	if req.Latitude != nil {
		changes["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		changes["longitude"] = *req.Longitude
	}
	// An empty change set must not slip past the version check.
	if len(changes) == 0 {
		return nil, apperrors.NewValidation("No fields to update")
	}

	if _, err := versioned.Update(r.Repository.GoquDBWrapper, locationsTable, "Location", id, changes, req.Version); err != nil {
		return nil, err
	}

	return r.GetLocation(id)
}

func (r *LocationRepository) ArchiveLocation(id int) error {
	_, err := versioned.Archive(r.Repository.GoquDBWrapper, locationsTable, "Location", id)
	return err
}
