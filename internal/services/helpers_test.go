package services

import (
	"context"
	"testing"

	"github.com/bensuskins/grocery-engine/internal/repository"
	"github.com/bensuskins/grocery-engine/internal/seed"
)

type fixture struct {
	measurementRepo *repository.MemoryMeasurementRepository
	ingredientRepo  *repository.MemoryIngredientRepository
	assignmentRepo  *repository.MemoryAssignmentRepository
	recipeRepo      *repository.MemoryRecipeRepository

	unitCatalog       *UnitCatalog
	ingredientCatalog *IngredientCatalog
	categoryResolver  *CategoryResolver
	standardizer      *Standardizer
	aggregator        *Aggregator
}

// newFixture wires the engine against seeded in-memory repositories.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		measurementRepo: repository.NewMemoryMeasurementRepository(),
		ingredientRepo:  repository.NewMemoryIngredientRepository(),
		assignmentRepo:  repository.NewMemoryAssignmentRepository(),
		recipeRepo:      repository.NewMemoryRecipeRepository(),
	}

	if err := seed.Run(context.Background(), f.measurementRepo, f.ingredientRepo, f.assignmentRepo); err != nil {
		t.Fatalf("seeding catalogs: %v", err)
	}

	matcher := NewSubstringMatcher(f.ingredientRepo)
	f.unitCatalog = NewUnitCatalog(f.measurementRepo)
	f.ingredientCatalog = NewIngredientCatalog(matcher)
	f.categoryResolver = NewCategoryResolver(f.assignmentRepo, f.ingredientRepo)
	f.standardizer = NewStandardizer(f.unitCatalog, f.ingredientCatalog)
	f.aggregator = NewAggregator(f.recipeRepo, matcher, f.categoryResolver, f.standardizer, f.unitCatalog)
	return f
}

func floatPointer(value float64) *float64 {
	return &value
}
