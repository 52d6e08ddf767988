package services

import (
	"context"
	"math"
	"testing"

	"github.com/bensuskins/grocery-engine/internal/models"
)

func TestUnitCatalog_Resolve_Aliases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		raw  string
		want string
	}{
		{"teaspoons", "tsp"},
		{"Teaspoon", "tsp"},
		{"t", "tsp"},
		{"T", "tbsp"},
		{"tablespoons", "tbsp"},
		{"cups", "cup"},
		{"c", "cup"},
		{"lbs", "lb"},
		{"pounds", "lb"},
		{"fluid ounces", "fl oz"},
		{"grams", "g"},
		{"litres", "l"},
		{"pcs", "piece"},
		{" CUP ", "cup"},
		{"milliliter", "ml"},
	}

	for _, test := range tests {
		unit, found, err := f.unitCatalog.Resolve(ctx, test.raw)
		if err != nil {
			t.Fatalf("resolving %q: %v", test.raw, err)
		}
		if !found {
			t.Errorf("expected %q to resolve", test.raw)
			continue
		}
		if unit.Name != test.want {
			t.Errorf("resolving %q: expected %q, got %q", test.raw, test.want, unit.Name)
		}
	}
}

func TestUnitCatalog_Resolve_UnknownUnit(t *testing.T) {
	f := newFixture(t)

	_, found, err := f.unitCatalog.Resolve(context.Background(), "smidgen")
	if err != nil {
		t.Fatalf("resolving: %v", err)
	}
	if found {
		t.Error("expected 'smidgen' to be unresolved")
	}
}

func TestUnitCatalog_Resolve_EmptyInput(t *testing.T) {
	f := newFixture(t)

	_, found, err := f.unitCatalog.Resolve(context.Background(), "   ")
	if err != nil {
		t.Fatalf("resolving: %v", err)
	}
	if found {
		t.Error("expected blank input to be unresolved")
	}
}

func TestUnitCatalog_Convert_TbspToTsp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tbsp, _, _ := f.unitCatalog.Resolve(ctx, "tbsp")
	tsp, _, _ := f.unitCatalog.Resolve(ctx, "tsp")

	converted, ok := f.unitCatalog.Convert(1, tbsp, tsp)
	if !ok {
		t.Fatal("expected conversion to succeed")
	}
	if converted != 3 {
		t.Errorf("expected 1 tbsp = 3 tsp, got %v", converted)
	}
}

func TestUnitCatalog_Convert_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	units, err := f.measurementRepo.FindAll(ctx)
	if err != nil {
		t.Fatalf("listing units: %v", err)
	}

	const amount = 2.5
	for _, from := range units {
		for _, to := range units {
			if from.Category != to.Category {
				continue
			}
			forward, ok := f.unitCatalog.Convert(amount, from, to)
			if !ok {
				t.Fatalf("converting %s to %s failed", from.Name, to.Name)
			}
			back, ok := f.unitCatalog.Convert(forward, to, from)
			if !ok {
				t.Fatalf("converting %s back to %s failed", to.Name, from.Name)
			}
			// Rounding to 3 decimals in the target unit costs up to
			// 0.0005 target units, which scales back by the factor ratio.
			tolerance := 0.0005*to.BaseConversion/from.BaseConversion + 0.0005 + 1e-9
			if math.Abs(back-amount) > tolerance {
				t.Errorf("%s -> %s -> %s: expected ~%v, got %v", from.Name, to.Name, from.Name, amount, back)
			}
		}
	}
}

func TestUnitCatalog_Convert_RefusesCrossCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	units, err := f.measurementRepo.FindAll(ctx)
	if err != nil {
		t.Fatalf("listing units: %v", err)
	}

	for _, from := range units {
		for _, to := range units {
			if from.Category == to.Category {
				continue
			}
			if _, ok := f.unitCatalog.Convert(1, from, to); ok {
				t.Errorf("expected %s (%s) -> %s (%s) to be refused",
					from.Name, from.Category, to.Name, to.Category)
			}
		}
	}
}

func TestUnitCatalog_Convert_RefusesNegativeAmount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g, _, _ := f.unitCatalog.Resolve(ctx, "g")
	kg, _, _ := f.unitCatalog.Resolve(ctx, "kg")

	if _, ok := f.unitCatalog.Convert(-100, g, kg); ok {
		t.Error("expected negative amounts to be refused")
	}
}

func TestUnitCatalog_SuggestBetterUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ml, _, _ := f.unitCatalog.Resolve(ctx, "ml")
	tsp, _, _ := f.unitCatalog.Resolve(ctx, "tsp")
	tbsp, _, _ := f.unitCatalog.Resolve(ctx, "tbsp")
	g, _, _ := f.unitCatalog.Resolve(ctx, "g")
	oz, _, _ := f.unitCatalog.Resolve(ctx, "oz")

	tests := []struct {
		name         string
		quantity     float64
		unit         string
		unitData     *models.MeasurementUnit
		wantQuantity float64
		wantUnit     string
	}{
		{"ml upgrades to l", 1500, "ml", &ml, 1.5, "l"},
		{"ml below threshold", 999, "ml", &ml, 999, "ml"},
		{"tsp upgrades to tbsp", 6, "tsp", &tsp, 2, "tbsp"},
		{"tbsp upgrades to cup", 32, "tbsp", &tbsp, 2, "cup"},
		{"g upgrades to kg", 2000, "g", &g, 2, "kg"},
		{"oz upgrades to lb", 24, "oz", &oz, 1.5, "lb"},
		{"no unit data", 1500, "ml", nil, 1500, "ml"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			quantity, unit := f.unitCatalog.SuggestBetterUnit(test.quantity, test.unit, test.unitData)
			if quantity != test.wantQuantity || unit != test.wantUnit {
				t.Errorf("expected %v %s, got %v %s", test.wantQuantity, test.wantUnit, quantity, unit)
			}
		})
	}
}
