package repository_test

import (
	"context"
	"testing"

	"github.com/bensuskins/grocery-engine/internal/models"
	"github.com/bensuskins/grocery-engine/internal/repository"
)

func TestMemoryIngredientRepository_MatchesSQLiteSemantics(t *testing.T) {
	repo := repository.NewMemoryIngredientRepository()
	ctx := context.Background()

	for _, ingredient := range []models.Ingredient{
		{Name: "bell pepper sauce", Category: models.CategoryCondiment, Aliases: "hot pepper sauce"},
		{Name: "bell pepper", Category: models.CategoryVegetable, Aliases: "bell peppers,red bell pepper"},
	} {
		if _, err := repo.Create(ctx, ingredient); err != nil {
			t.Fatalf("creating ingredient: %v", err)
		}
	}

	// Alias scan goes in storage order, so the sauce wins despite being less
	// specific.
	byAlias, err := repo.FindByAlias(ctx, "pepper sauce")
	if err != nil {
		t.Fatalf("finding by alias: %v", err)
	}
	if byAlias.Name != "bell pepper sauce" {
		t.Errorf("expected first storage-order alias hit, got '%s'", byAlias.Name)
	}

	// Partial match prefers the shortest canonical name.
	byPartial, err := repo.FindByPartialName(ctx, "pepper")
	if err != nil {
		t.Fatalf("finding by partial name: %v", err)
	}
	if byPartial.Name != "bell pepper" {
		t.Errorf("expected shortest match 'bell pepper', got '%s'", byPartial.Name)
	}

	if _, err := repo.Create(ctx, models.Ingredient{Name: "Bell Pepper"}); err == nil {
		t.Error("expected case-insensitive duplicate name to be rejected")
	}
}

func TestMemoryMeasurementRepository_FindByName(t *testing.T) {
	repo := repository.NewMemoryMeasurementRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, models.MeasurementUnit{
		Name: "tbsp", Category: models.UnitVolume, BaseConversion: 14.7868, DisplayName: "tablespoon",
	}); err != nil {
		t.Fatalf("creating measurement: %v", err)
	}

	found, err := repo.FindByName(ctx, "Tablespoon")
	if err != nil {
		t.Fatalf("finding by display name: %v", err)
	}
	if found.Name != "tbsp" {
		t.Errorf("expected 'tbsp', got '%s'", found.Name)
	}

	if _, err := repo.FindByName(ctx, "smidgen"); err != repository.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryAssignmentRepository_UpsertIdempotent(t *testing.T) {
	repo := repository.NewMemoryAssignmentRepository()
	ctx := context.Background()

	vegetable, _ := repo.CreateCategory(ctx, models.Category{Name: "vegetable", SortOrder: 20})
	seasoning, _ := repo.CreateCategory(ctx, models.Category{Name: "seasoning", SortOrder: 80})
	profile, _ := repo.CreateProfile(ctx, "My Store")

	first, err := repo.UpsertAssignment(ctx, models.CategoryAssignment{
		IngredientID: "ing-1", ProfileID: &profile.ID, CategoryID: vegetable.ID,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := repo.UpsertAssignment(ctx, models.CategoryAssignment{
		IngredientID: "ing-1", ProfileID: &profile.ID, CategoryID: seasoning.ID,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected the same row, got %s and %s", first.ID, second.ID)
	}

	assignment, err := repo.FindAssignment(ctx, "ing-1", &profile.ID)
	if err != nil {
		t.Fatalf("finding assignment: %v", err)
	}
	if assignment.CategoryID != seasoning.ID {
		t.Errorf("expected latest category %s, got %s", seasoning.ID, assignment.CategoryID)
	}
}

func TestMemoryRecipeRepository_RoundTrip(t *testing.T) {
	repo := repository.NewMemoryRecipeRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, models.Recipe{
		Title:       "Stir Fry",
		Ingredients: []models.RawIngredientEntry{{Quantity: floatPointer(2), Unit: "tbsp", Name: "soy sauce"}},
	})
	if err != nil {
		t.Fatalf("creating recipe: %v", err)
	}

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("finding recipe: %v", err)
	}
	if len(found.Ingredients) != 1 || found.Ingredients[0].Name != "soy sauce" {
		t.Errorf("unexpected ingredients: %+v", found.Ingredients)
	}

	if _, err := repo.FindByID(ctx, "missing"); err != repository.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
