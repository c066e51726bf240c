package items

import (
	"fmt"
	"sort"
	"strings"

	"commissary/pkg/apperrors"
	"commissary/pkg/models"
)

var validCategories = map[string]bool{
	"Baking":    true,
	"Produce":   true,
	"Meat":      true,
	"Dairy":     true,
	"Packaging": true,
	"Beverage":  true,
}

var validUnits = map[string]bool{
	"kg": true, "g": true, "l": true, "ml": true, "pcs": true,
	"bag": true, "case": true, "box": true, "lb": true, "oz": true,
}

var validTypes = map[string]bool{
	models.ItemKindIngredient:   true,
	models.ItemKindFinishedGood: true,
}

type ItemRequest struct {
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	UnitOfMeasure string `json:"unit_of_measure"`
	Type          string `json:"type"`
}

// Validate checks the catalog whitelists. With partial set, absent fields
// are allowed (PATCH-style updates); present fields are still checked.
func (r ItemRequest) Validate(partial bool) error {
	if !partial && r.Name == "" {
		return apperrors.NewValidation("Name is required")
	}
	if r.Name != "" && (len(r.Name) < 2 || len(r.Name) > 100) {
		return apperrors.NewValidation("Name must be between 2 and 100 chars")
	}

	if !partial && r.Category == "" {
		return apperrors.NewValidation("Category is required")
	}
	if r.Category != "" && !validCategories[r.Category] {
		return apperrors.NewValidation("Invalid category. Allowed: " + allowed(validCategories))
	}

	if !partial && r.UnitOfMeasure == "" {
		return apperrors.NewValidation("Unit of measure is required")
	}
	if r.UnitOfMeasure != "" && !validUnits[r.UnitOfMeasure] {
		return apperrors.NewValidation("Invalid unit of measure. Allowed: " + allowed(validUnits))
	}

	if !partial && r.Type == "" {
		return apperrors.NewValidation("Type is required")
	}
	if r.Type != "" && !validTypes[r.Type] {
		return apperrors.NewValidation(fmt.Sprintf("Invalid type. Allowed: %s", allowed(validTypes)))
	}

	return nil
}

func allowed(set map[string]bool) string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, ", ")
}
