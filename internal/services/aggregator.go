package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bensuskins/grocery-engine/internal/models"
	"github.com/bensuskins/grocery-engine/internal/repository"
	"github.com/google/uuid"
)

// Aggregator builds grocery lists from recipe sets. Two merge policies exist
// and serve different call sites; they are deliberately separate algorithms:
//
//   - Aggregate merges entries only on an identical (name, unit) key. Same
//     ingredient in different units stays split, even when the units would
//     convert. Callers depend on that exact output.
//   - AggregateForGrocery merges entries of the same ingredient whenever the
//     unit categories match, converting into the first-seen unit.
type Aggregator struct {
	recipeRepo       repository.RecipeRepository
	matcher          IngredientMatcher
	categoryResolver *CategoryResolver
	standardizer     *Standardizer
	unitCatalog      *UnitCatalog
}

func NewAggregator(
	recipeRepo repository.RecipeRepository,
	matcher IngredientMatcher,
	categoryResolver *CategoryResolver,
	standardizer *Standardizer,
	unitCatalog *UnitCatalog,
) *Aggregator {
	return &Aggregator{
		recipeRepo:       recipeRepo,
		matcher:          matcher,
		categoryResolver: categoryResolver,
		standardizer:     standardizer,
		unitCatalog:      unitCatalog,
	}
}

// mergeKey is the strict-policy identity of a grocery line.
func mergeKey(name, unit string) string {
	return strings.ToLower(name) + "|" + unit
}

// Aggregate scales and merges the ingredients of the given recipes into a
// grocery list. Unknown recipe IDs are skipped with a warning. The result
// preserves first-seen merge-key order; the caller decides any further
// sorting or grouping. The scale factor bound (0, 10] is the caller's
// contract and is not re-checked here.
func (aggregator *Aggregator) Aggregate(ctx context.Context, recipeIDs []string, scaleFactor float64, profileID *string) ([]models.GroceryItem, error) {
	items := make(map[string]*models.GroceryItem)
	var order []string

	for _, recipeID := range recipeIDs {
		recipe, err := aggregator.recipeRepo.FindByID(ctx, recipeID)
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("skipping unknown recipe", "recipe_id", recipeID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetching recipe %s: %w", recipeID, err)
		}

		for _, entry := range recipe.Ingredients {
			key := mergeKey(entry.Name, entry.Unit)

			var scaledQuantity float64
			if entry.Quantity != nil {
				scaledQuantity = *entry.Quantity * scaleFactor
			}

			category, needsReview, err := aggregator.resolveEntryCategory(ctx, entry.Name, profileID)
			if err != nil {
				return nil, err
			}

			detail := models.SourceDetail{RecipeTitle: recipe.Title, Modifier: entry.Modifier}

			item, exists := items[key]
			if !exists {
				items[key] = &models.GroceryItem{
					Name:            entry.Name,
					Unit:            entry.Unit,
					Quantity:        scaledQuantity,
					Category:        category,
					Sources:         []string{recipe.Title},
					DetailsBySource: []models.SourceDetail{detail},
					NeedsReview:     needsReview,
				}
				order = append(order, key)
				continue
			}

			item.Quantity += scaledQuantity
			if !containsString(item.Sources, recipe.Title) {
				item.Sources = append(item.Sources, recipe.Title)
			}
			item.DetailsBySource = append(item.DetailsBySource, detail)
			item.NeedsReview = item.NeedsReview || needsReview
		}
	}

	result := make([]models.GroceryItem, 0, len(order))
	for _, key := range order {
		result = append(result, *items[key])
	}
	return result, nil
}

// resolveEntryCategory looks the name up in the catalog and resolves its
// profile-aware category. A name the catalog does not know falls back to
// "other" and flags the line for review.
func (aggregator *Aggregator) resolveEntryCategory(ctx context.Context, name string, profileID *string) (models.IngredientCategory, bool, error) {
	ingredient, found, err := aggregator.matcher.Match(ctx, name)
	if err != nil {
		return models.CategoryOther, false, fmt.Errorf("matching ingredient %q: %w", name, err)
	}
	if !found {
		return models.CategoryOther, true, nil
	}

	category, err := aggregator.categoryResolver.ResolveCategory(ctx, ingredient.ID, profileID)
	if err != nil {
		return models.CategoryOther, false, fmt.Errorf("resolving category for %q: %w", name, err)
	}
	return category, false, nil
}

// AggregateForGrocery is the unit-conversion-aware policy. Entries are
// standardized, then merged per resolved name whenever their unit categories
// match, converting quantities into the first-seen unit. Incompatible units
// keep separate entries under a disambiguating suffix key. Output is sorted
// by category, then name.
func (aggregator *Aggregator) AggregateForGrocery(ctx context.Context, entries []models.RawIngredientEntry) ([]models.StandardizedIngredient, error) {
	aggregated := make(map[string]*models.StandardizedIngredient)
	var order []string

	set := func(key string, value models.StandardizedIngredient) {
		if _, exists := aggregated[key]; !exists {
			order = append(order, key)
		}
		aggregated[key] = &value
	}

	for _, entry := range entries {
		standardized, err := aggregator.standardizer.Standardize(ctx, entry)
		if err != nil {
			return nil, fmt.Errorf("standardizing %q: %w", entry.Name, err)
		}
		key := strings.ToLower(standardized.Name)

		existing, exists := aggregated[key]
		if !exists {
			set(key, standardized)
			continue
		}

		if existing.UnitData != nil && standardized.UnitData != nil &&
			existing.UnitData.Category == standardized.UnitData.Category {
			converted, ok := aggregator.unitCatalog.Convert(
				quantityOrZero(standardized.Quantity), *standardized.UnitData, *existing.UnitData,
			)
			if ok {
				sum := quantityOrZero(existing.Quantity) + converted
				existing.Quantity = &sum
				continue
			}
			set(key+"_"+standardized.Unit, standardized)
			continue
		}

		if standardized.Unit != "" {
			set(key+"_"+standardized.Unit, standardized)
		} else {
			set(key+"_"+uuid.NewString()[:8], standardized)
		}
	}

	result := make([]models.StandardizedIngredient, 0, len(order))
	for _, key := range order {
		result = append(result, *aggregated[key])
	}
	sort.SliceStable(result, func(left, right int) bool {
		if result[left].Category != result[right].Category {
			return result[left].Category < result[right].Category
		}
		return result[left].Name < result[right].Name
	})
	return result, nil
}

func quantityOrZero(quantity *float64) float64 {
	if quantity == nil {
		return 0
	}
	return *quantity
}

type CategoryGroup struct {
	Category models.IngredientCategory
	Items    []models.GroceryItem
}

// GroupByCategory arranges grocery items into the aisle ordering defined by
// models.CategoryOrder. Categories outside that list are appended after it
// in first-seen order. Items keep their relative order within a group.
func GroupByCategory(items []models.GroceryItem) []CategoryGroup {
	grouped := make(map[models.IngredientCategory][]models.GroceryItem)
	var extras []models.IngredientCategory

	known := make(map[models.IngredientCategory]bool, len(models.CategoryOrder))
	for _, category := range models.CategoryOrder {
		known[category] = true
	}

	for _, item := range items {
		if _, seen := grouped[item.Category]; !seen && !known[item.Category] {
			extras = append(extras, item.Category)
		}
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	var groups []CategoryGroup
	for _, category := range models.CategoryOrder {
		if categoryItems, ok := grouped[category]; ok {
			groups = append(groups, CategoryGroup{Category: category, Items: categoryItems})
		}
	}
	for _, category := range extras {
		groups = append(groups, CategoryGroup{Category: category, Items: grouped[category]})
	}
	return groups
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
