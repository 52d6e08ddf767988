package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/bensuskins/grocery-engine/internal/models"
	"github.com/bensuskins/grocery-engine/internal/repository"
)

// Suggestion is the per-call resolution result for a raw ingredient name.
// Unresolved names come back verbatim with low confidence; they are never
// written into the catalog.
type Suggestion struct {
	Name        string
	Category    models.IngredientCategory
	Confidence  models.Confidence
	Original    string
	NeedsReview bool
}

// IngredientMatcher is the pluggable name-matching policy. Match returns
// false (not an error) when the catalog holds no acceptable candidate.
type IngredientMatcher interface {
	Match(ctx context.Context, name string) (models.Ingredient, bool, error)
}

// SubstringMatcher is the default policy: exact canonical-name match, then a
// substring scan of the alias lists (first row in storage order wins), then a
// partial canonical-name match preferring the shortest name. The unranked
// scan order is load-bearing for compatibility; swap in a ranked matcher at
// the call site rather than changing it here.
type SubstringMatcher struct {
	ingredientRepo repository.IngredientRepository
}

func NewSubstringMatcher(ingredientRepo repository.IngredientRepository) *SubstringMatcher {
	return &SubstringMatcher{ingredientRepo: ingredientRepo}
}

func (matcher *SubstringMatcher) Match(ctx context.Context, name string) (models.Ingredient, bool, error) {
	lookups := []func(context.Context, string) (models.Ingredient, error){
		matcher.ingredientRepo.FindByExactName,
		matcher.ingredientRepo.FindByAlias,
		matcher.ingredientRepo.FindByPartialName,
	}
	for _, lookup := range lookups {
		ingredient, err := lookup(ctx, name)
		if err == nil {
			return ingredient, true, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return models.Ingredient{}, false, err
		}
	}
	return models.Ingredient{}, false, nil
}

// LevenshteinMatcher ranks every canonical name and alias by edit distance
// and accepts the closest candidate within MaxDistance.
type LevenshteinMatcher struct {
	ingredientRepo repository.IngredientRepository
	MaxDistance    int
}

func NewLevenshteinMatcher(ingredientRepo repository.IngredientRepository, maxDistance int) *LevenshteinMatcher {
	return &LevenshteinMatcher{ingredientRepo: ingredientRepo, MaxDistance: maxDistance}
}

func (matcher *LevenshteinMatcher) Match(ctx context.Context, name string) (models.Ingredient, bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	ingredients, err := matcher.ingredientRepo.FindAll(ctx)
	if err != nil {
		return models.Ingredient{}, false, fmt.Errorf("loading ingredients for matching: %w", err)
	}

	best := matcher.MaxDistance + 1
	var found models.Ingredient
	for _, ingredient := range ingredients {
		candidates := []string{strings.ToLower(ingredient.Name)}
		for _, alias := range strings.Split(ingredient.Aliases, ",") {
			if alias = strings.ToLower(strings.TrimSpace(alias)); alias != "" {
				candidates = append(candidates, alias)
			}
		}
		for _, candidate := range candidates {
			if distance := levenshtein.ComputeDistance(normalized, candidate); distance < best {
				best = distance
				found = ingredient
			}
		}
	}

	if best > matcher.MaxDistance {
		return models.Ingredient{}, false, nil
	}
	return found, true, nil
}

// IngredientCatalog resolves raw ingredient names to canonical catalog
// entries through an injected matcher.
type IngredientCatalog struct {
	matcher IngredientMatcher
}

func NewIngredientCatalog(matcher IngredientMatcher) *IngredientCatalog {
	return &IngredientCatalog{matcher: matcher}
}

func (catalog *IngredientCatalog) Resolve(ctx context.Context, rawName string) (Suggestion, error) {
	ingredient, found, err := catalog.matcher.Match(ctx, rawName)
	if err != nil {
		return Suggestion{}, fmt.Errorf("resolving ingredient %q: %w", rawName, err)
	}
	if found {
		return Suggestion{
			Name:       ingredient.Name,
			Category:   ingredient.Category,
			Confidence: models.ConfidenceHigh,
			Original:   rawName,
		}, nil
	}
	return Suggestion{
		Name:        rawName,
		Category:    models.CategoryUnknown,
		Confidence:  models.ConfidenceLow,
		Original:    rawName,
		NeedsReview: true,
	}, nil
}
