package repository_test

import (
	"context"
	"testing"

	"github.com/bensuskins/grocery-engine/internal/models"
	"github.com/bensuskins/grocery-engine/internal/repository"
	"github.com/bensuskins/grocery-engine/internal/testutil"
)

func TestMeasurementRepository_CreateAndFindByName(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewMeasurementRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.MeasurementUnit{
		Name:           "tsp",
		Category:       models.UnitVolume,
		BaseConversion: 4.92892,
		DisplayName:    "teaspoon",
	})
	if err != nil {
		t.Fatalf("creating measurement: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected non-empty ID")
	}

	found, err := repo.FindByName(ctx, "TSP")
	if err != nil {
		t.Fatalf("finding by canonical name: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("expected id %s, got %s", created.ID, found.ID)
	}

	found, err = repo.FindByName(ctx, "Teaspoon")
	if err != nil {
		t.Fatalf("finding by display name: %v", err)
	}
	if found.Name != "tsp" {
		t.Errorf("expected 'tsp', got '%s'", found.Name)
	}
}

func TestMeasurementRepository_FindByName_NotFound(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewMeasurementRepository(db)

	_, err := repo.FindByName(context.Background(), "parsec")
	if err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMeasurementRepository_Create_RejectsDuplicateName(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewMeasurementRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, models.MeasurementUnit{
		Name: "cup", Category: models.UnitVolume, BaseConversion: 236.588, DisplayName: "cup",
	})
	if err != nil {
		t.Fatalf("creating measurement: %v", err)
	}

	_, err = repo.Create(ctx, models.MeasurementUnit{
		Name: "Cup", Category: models.UnitVolume, BaseConversion: 236.588, DisplayName: "cup",
	})
	if err == nil {
		t.Fatal("expected duplicate name to be rejected")
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("counting measurements: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 measurement, got %d", count)
	}
}

func TestMeasurementRepository_Create_RejectsNonPositiveFactor(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewMeasurementRepository(db)

	_, err := repo.Create(context.Background(), models.MeasurementUnit{
		Name: "void", Category: models.UnitSpecial, BaseConversion: 0, DisplayName: "void",
	})
	if err == nil {
		t.Fatal("expected zero conversion factor to be rejected")
	}
}

func TestMeasurementRepository_Update(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewMeasurementRepository(db)
	ctx := context.Background()

	created, _ := repo.Create(ctx, models.MeasurementUnit{
		Name: "pinch", Category: models.UnitSpecial, BaseConversion: 0.5, DisplayName: "pinch",
	})

	created.BaseConversion = 0.6
	if err := repo.Update(ctx, created); err != nil {
		t.Fatalf("updating measurement: %v", err)
	}

	found, _ := repo.FindByID(ctx, created.ID)
	if found.BaseConversion != 0.6 {
		t.Errorf("expected 0.6, got %v", found.BaseConversion)
	}
}

func TestMeasurementRepository_Delete(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewMeasurementRepository(db)
	ctx := context.Background()

	created, _ := repo.Create(ctx, models.MeasurementUnit{
		Name: "dash", Category: models.UnitSpecial, BaseConversion: 0.625, DisplayName: "dash",
	})

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("deleting measurement: %v", err)
	}

	count, _ := repo.Count(ctx)
	if count != 0 {
		t.Errorf("expected 0 measurements after delete, got %d", count)
	}
}
