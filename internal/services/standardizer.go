package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bensuskins/grocery-engine/internal/models"
)

// ErrMissingName marks a malformed raw entry. It is a caller contract
// violation, not something the engine coerces around.
var ErrMissingName = errors.New("raw ingredient entry has no name")

// Standardizer turns one raw ingredient entry into a fully annotated
// standardized entry. Unresolved lookups are never errors; they surface as
// review flags. Each call is pure with respect to shared state.
type Standardizer struct {
	unitCatalog       *UnitCatalog
	ingredientCatalog *IngredientCatalog
}

func NewStandardizer(unitCatalog *UnitCatalog, ingredientCatalog *IngredientCatalog) *Standardizer {
	return &Standardizer{
		unitCatalog:       unitCatalog,
		ingredientCatalog: ingredientCatalog,
	}
}

type StandardizationResult struct {
	Standardized []models.StandardizedIngredient
	NeedsReview  []models.StandardizedIngredient
	ReviewCount  int
}

func (standardizer *Standardizer) Standardize(ctx context.Context, entry models.RawIngredientEntry) (models.StandardizedIngredient, error) {
	if strings.TrimSpace(entry.Name) == "" {
		return models.StandardizedIngredient{}, ErrMissingName
	}

	var unitData *models.MeasurementUnit
	resolvedUnit := entry.Unit
	isNewUnit := false

	if entry.Unit != "" {
		unit, found, err := standardizer.unitCatalog.Resolve(ctx, entry.Unit)
		if err != nil {
			return models.StandardizedIngredient{}, err
		}
		if found {
			unitData = &unit
			resolvedUnit = unit.Name
		} else {
			isNewUnit = true
		}
	}

	suggestion, err := standardizer.ingredientCatalog.Resolve(ctx, entry.Name)
	if err != nil {
		return models.StandardizedIngredient{}, err
	}
	isNewIngredient := suggestion.NeedsReview || suggestion.Confidence == models.ConfidenceLow

	// Quantity passes through untouched; conversion happens only during
	// aggregation.
	return models.StandardizedIngredient{
		Quantity:         entry.Quantity,
		Unit:             resolvedUnit,
		UnitData:         unitData,
		Name:             suggestion.Name,
		OriginalName:     entry.Name,
		OriginalUnit:     entry.Unit,
		Category:         suggestion.Category,
		NeedsReview:      isNewIngredient || isNewUnit,
		Confidence:       suggestion.Confidence,
		IsNewIngredient:  isNewIngredient,
		IsNewUnit:        isNewUnit,
		IngredientExists: !isNewIngredient,
		UnitExists:       !isNewUnit,
	}, nil
}

// StandardizeMany is a pure fan-out; output order matches input order and
// entries never interact.
func (standardizer *Standardizer) StandardizeMany(ctx context.Context, entries []models.RawIngredientEntry) (StandardizationResult, error) {
	result := StandardizationResult{
		Standardized: make([]models.StandardizedIngredient, 0, len(entries)),
	}
	for _, entry := range entries {
		standardized, err := standardizer.Standardize(ctx, entry)
		if err != nil {
			return StandardizationResult{}, fmt.Errorf("standardizing %q: %w", entry.Name, err)
		}
		result.Standardized = append(result.Standardized, standardized)
		if standardized.NeedsReview {
			result.NeedsReview = append(result.NeedsReview, standardized)
		}
	}
	result.ReviewCount = len(result.NeedsReview)
	return result, nil
}

// ScaleRecipe multiplies every ingredient quantity by the factor. Entries
// without a quantity are left alone.
func (standardizer *Standardizer) ScaleRecipe(recipe models.Recipe, scaleFactor float64) models.ScaledRecipe {
	scaled := make([]models.RawIngredientEntry, len(recipe.Ingredients))
	for index, entry := range recipe.Ingredients {
		if entry.Quantity != nil {
			quantity := *entry.Quantity * scaleFactor
			entry.Quantity = &quantity
		}
		scaled[index] = entry
	}

	servings := recipe.Servings
	if servings == 0 {
		servings = 4
	}

	result := recipe
	result.Ingredients = scaled
	return models.ScaledRecipe{
		Recipe:           result,
		ScaleFactor:      scaleFactor,
		OriginalServings: servings,
		ScaledServings:   int(float64(servings) * scaleFactor),
	}
}

// ConvertUnit re-expresses a standardized entry in the target unit. The
// second return is false when the entry has no unit data, the target is not
// in the catalog, or the categories are incompatible.
func (standardizer *Standardizer) ConvertUnit(ctx context.Context, ingredient models.StandardizedIngredient, targetUnitName string) (models.StandardizedIngredient, bool, error) {
	if ingredient.UnitData == nil || ingredient.Quantity == nil {
		return ingredient, false, nil
	}

	targetUnit, found, err := standardizer.unitCatalog.Resolve(ctx, targetUnitName)
	if err != nil {
		return ingredient, false, err
	}
	if !found {
		return ingredient, false, nil
	}

	converted, ok := standardizer.unitCatalog.Convert(*ingredient.Quantity, *ingredient.UnitData, targetUnit)
	if !ok {
		return ingredient, false, nil
	}

	ingredient.Quantity = &converted
	ingredient.Unit = targetUnit.Name
	ingredient.UnitData = &targetUnit
	return ingredient, true, nil
}
