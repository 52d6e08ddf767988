package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bensuskins/grocery-engine/internal/models"
	"github.com/bensuskins/grocery-engine/internal/repository"
)

// unitAliases maps common plural and long-form spellings to canonical short
// names. Lookup is against the lowercased input; the single capital "T"
// (tablespoon) is the one case-sensitive exception, handled before lowering.
var unitAliases = map[string]string{
	"teaspoon": "tsp", "teaspoons": "tsp", "t": "tsp",
	"tablespoon": "tbsp", "tablespoons": "tbsp", "tb": "tbsp",
	"cups": "cup", "c": "cup",
	"ounce": "oz", "ounces": "oz",
	"pound": "lb", "pounds": "lb", "lbs": "lb",
	"gram": "g", "grams": "g",
	"kilogram": "kg", "kilograms": "kg", "kgs": "kg",
	"liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"fluid ounce": "fl oz", "fluid ounces": "fl oz", "floz": "fl oz",
	"pints": "pint", "pt": "pint",
	"quarts": "quart", "qt": "quart",
	"gallons": "gallon", "gal": "gallon",
	"pieces": "piece", "pcs": "piece", "pc": "piece", "ct": "piece", "count": "piece",
	"dozens": "dozen", "dz": "dozen",
	"cloves": "clove",
	"slices": "slice",
	"cans":   "can",
	"jars":   "jar",
	"packages": "package", "pkg": "package", "pkgs": "package",
	"ea": "each",
}

// UnitCatalog resolves raw measurement text against the catalog and performs
// category-gated unit conversion. It deliberately does no fuzzy matching:
// unit resolution drives arithmetic, so a miss is better than a wrong hit.
type UnitCatalog struct {
	measurementRepo repository.MeasurementRepository
}

func NewUnitCatalog(measurementRepo repository.MeasurementRepository) *UnitCatalog {
	return &UnitCatalog{measurementRepo: measurementRepo}
}

// Resolve returns the canonical unit for raw unit text. The second return is
// false when nothing matches; callers treat that as "needs review".
func (catalog *UnitCatalog) Resolve(ctx context.Context, rawUnit string) (models.MeasurementUnit, bool, error) {
	trimmed := strings.TrimSpace(rawUnit)
	if trimmed == "" {
		return models.MeasurementUnit{}, false, nil
	}

	var searchName string
	if trimmed == "T" {
		searchName = "tbsp"
	} else {
		normalized := strings.ToLower(trimmed)
		searchName = normalized
		if canonical, ok := unitAliases[normalized]; ok {
			searchName = canonical
		}
	}

	unit, err := catalog.measurementRepo.FindByName(ctx, searchName)
	if errors.Is(err, repository.ErrNotFound) {
		return models.MeasurementUnit{}, false, nil
	}
	if err != nil {
		return models.MeasurementUnit{}, false, fmt.Errorf("resolving unit %q: %w", rawUnit, err)
	}
	return unit, true, nil
}

// Convert translates an amount between two units of the same category,
// rounding half away from zero to 3 decimal places. It returns false across
// categories and for negative amounts (negative quantities are invalid input).
func (catalog *UnitCatalog) Convert(amount float64, from, to models.MeasurementUnit) (float64, bool) {
	if from.Category != to.Category {
		return 0, false
	}
	if amount < 0 {
		return 0, false
	}
	baseAmount := amount * from.BaseConversion
	converted := baseAmount / to.BaseConversion
	return round3(converted), true
}

func round3(value float64) float64 {
	return math.Round(value*1000) / 1000
}

// SuggestBetterUnit upgrades a quantity to a larger unit for display once a
// threshold is crossed. Pure cosmetic function; the catalog is untouched.
func (catalog *UnitCatalog) SuggestBetterUnit(quantity float64, unit string, unitData *models.MeasurementUnit) (float64, string) {
	if unitData == nil || quantity == 0 {
		return quantity, unit
	}

	switch unitData.Category {
	case models.UnitVolume:
		switch {
		case unit == "ml" && quantity >= 1000:
			return quantity / 1000, "l"
		case unit == "tsp" && quantity >= 3:
			return quantity / 3, "tbsp"
		case unit == "tbsp" && quantity >= 16:
			return quantity / 16, "cup"
		}
	case models.UnitWeight:
		switch {
		case unit == "g" && quantity >= 1000:
			return quantity / 1000, "kg"
		case unit == "oz" && quantity >= 16:
			return quantity / 16, "lb"
		}
	}

	return quantity, unit
}
