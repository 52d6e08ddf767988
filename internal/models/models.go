package models

import "time"

type UnitCategory string

const (
	UnitVolume    UnitCategory = "volume"
	UnitWeight    UnitCategory = "weight"
	UnitCount     UnitCategory = "count"
	UnitSpecial   UnitCategory = "special"
	UnitContainer UnitCategory = "container"
)

type IngredientCategory string

const (
	CategoryProtein   IngredientCategory = "protein"
	CategoryVegetable IngredientCategory = "vegetable"
	CategoryFruit     IngredientCategory = "fruit"
	CategoryDairy     IngredientCategory = "dairy"
	CategoryGrain     IngredientCategory = "grain"
	CategoryHerb      IngredientCategory = "herb"
	CategorySpice     IngredientCategory = "spice"
	CategorySeasoning IngredientCategory = "seasoning"
	CategoryOil       IngredientCategory = "oil"
	CategoryCondiment IngredientCategory = "condiment"
	CategorySweetener IngredientCategory = "sweetener"
	CategoryOther     IngredientCategory = "other"
	CategoryUnknown   IngredientCategory = "unknown"
)

// CategoryOrder is the grocery-aisle ordering used by grouped views.
// Categories not listed here sort after these, in first-seen order.
var CategoryOrder = []IngredientCategory{
	CategoryProtein,
	CategoryVegetable,
	CategoryFruit,
	CategoryDairy,
	CategoryGrain,
	CategoryHerb,
	CategorySpice,
	CategorySeasoning,
	CategoryOil,
	CategoryCondiment,
	CategorySweetener,
	CategoryOther,
}

type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

type MeasurementUnit struct {
	ID             string
	Name           string
	Category       UnitCategory
	BaseConversion float64
	DisplayName    string
	Aliases        string
	CreatedAt      time.Time
}

type Ingredient struct {
	ID              string
	Name            string
	Category        IngredientCategory
	Aliases         string
	NutritionalInfo string
	StorageTips     string
	CreatedAt       time.Time
}

type Category struct {
	ID        string
	Name      string
	SortOrder int
}

type CategoryProfile struct {
	ID   string
	Name string
}

// CategoryAssignment maps an ingredient to a category, either globally
// (ProfileID nil) or within a named profile. At most one assignment exists
// per (ingredient, profile) pair.
type CategoryAssignment struct {
	ID           string
	IngredientID string
	ProfileID    *string
	CategoryID   string
	SortHint     *int
}

// RawIngredientEntry is what upstream parsing hands the engine. Quantity is
// nil when the source text carried none ("salt to taste").
type RawIngredientEntry struct {
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	Name     string   `json:"name"`
	Modifier string   `json:"modifier,omitempty"`
}

// StandardizedIngredient is derived output, recomputed on every
// standardization call and never independently mutated.
type StandardizedIngredient struct {
	Quantity     *float64
	Unit         string
	UnitData     *MeasurementUnit
	Name         string
	OriginalName string
	OriginalUnit string
	Category     IngredientCategory
	NeedsReview  bool
	Confidence   Confidence

	IsNewIngredient bool
	IsNewUnit       bool

	// Metadata for the review surface.
	IngredientExists bool
	UnitExists       bool
}

type SourceDetail struct {
	RecipeTitle string
	Modifier    string
}

// GroceryItem is built fresh per aggregation request and not persisted.
type GroceryItem struct {
	Name            string
	Unit            string
	Quantity        float64
	Category        IngredientCategory
	Sources         []string
	DetailsBySource []SourceDetail
	NeedsReview     bool
}

type Recipe struct {
	ID           string
	Title        string
	Ingredients  []RawIngredientEntry
	Instructions []string
	Tags         []string
	Servings     int
	SourceURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ScaledRecipe struct {
	Recipe
	ScaleFactor      float64
	OriginalServings int
	ScaledServings   int
}
