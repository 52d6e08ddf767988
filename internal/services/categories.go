package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bensuskins/grocery-engine/internal/models"
	"github.com/bensuskins/grocery-engine/internal/repository"
)

// CategoryResolver answers "which aisle does this ingredient belong to" for a
// given profile. Resolution order: profile-specific assignment, global
// assignment, the ingredient's own category, then "other".
type CategoryResolver struct {
	assignmentRepo repository.AssignmentRepository
	ingredientRepo repository.IngredientRepository
}

func NewCategoryResolver(
	assignmentRepo repository.AssignmentRepository,
	ingredientRepo repository.IngredientRepository,
) *CategoryResolver {
	return &CategoryResolver{
		assignmentRepo: assignmentRepo,
		ingredientRepo: ingredientRepo,
	}
}

func (resolver *CategoryResolver) ResolveCategory(ctx context.Context, ingredientID string, profileID *string) (models.IngredientCategory, error) {
	scopes := []*string{profileID}
	if profileID != nil {
		scopes = append(scopes, nil)
	}
	for _, scope := range scopes {
		assignment, err := resolver.assignmentRepo.FindAssignment(ctx, ingredientID, scope)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return models.CategoryOther, fmt.Errorf("finding assignment: %w", err)
		}
		category, err := resolver.assignmentRepo.FindCategoryByID(ctx, assignment.CategoryID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return models.CategoryOther, fmt.Errorf("finding assigned category: %w", err)
		}
		return models.IngredientCategory(category.Name), nil
	}

	ingredient, err := resolver.ingredientRepo.FindByID(ctx, ingredientID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.CategoryOther, nil
	}
	if err != nil {
		return models.CategoryOther, fmt.Errorf("finding ingredient: %w", err)
	}
	if ingredient.Category == "" {
		return models.CategoryOther, nil
	}
	return ingredient.Category, nil
}

// UpsertAssignment records a category override for the (ingredient, profile)
// pair. Calling it again for the same pair updates the row in place.
func (resolver *CategoryResolver) UpsertAssignment(ctx context.Context, assignment models.CategoryAssignment) (models.CategoryAssignment, error) {
	upserted, err := resolver.assignmentRepo.UpsertAssignment(ctx, assignment)
	if err != nil {
		return models.CategoryAssignment{}, fmt.Errorf("upserting assignment: %w", err)
	}
	return upserted, nil
}
