package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bensuskins/grocery-engine/internal/models"
	"github.com/google/uuid"
)

// In-memory implementations of the repository interfaces. They reproduce the
// SQLite semantics the catalog services depend on: storage-order alias scans,
// shortest-name-first partial matches, case-insensitive unique names, and a
// single assignment row per (ingredient, profile) pair.

type MemoryMeasurementRepository struct {
	mu    sync.RWMutex
	units []models.MeasurementUnit
}

func NewMemoryMeasurementRepository() *MemoryMeasurementRepository {
	return &MemoryMeasurementRepository{}
}

func (repository *MemoryMeasurementRepository) FindByID(ctx context.Context, id string) (models.MeasurementUnit, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	for _, unit := range repository.units {
		if unit.ID == id {
			return unit, nil
		}
	}
	return models.MeasurementUnit{}, ErrNotFound
}

func (repository *MemoryMeasurementRepository) FindByName(ctx context.Context, name string) (models.MeasurementUnit, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	for _, unit := range repository.units {
		if strings.ToLower(unit.Name) == normalized || strings.ToLower(unit.DisplayName) == normalized {
			return unit, nil
		}
	}
	return models.MeasurementUnit{}, ErrNotFound
}

func (repository *MemoryMeasurementRepository) FindAll(ctx context.Context) ([]models.MeasurementUnit, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	units := make([]models.MeasurementUnit, len(repository.units))
	copy(units, repository.units)
	sort.Slice(units, func(left, right int) bool {
		if units[left].Category != units[right].Category {
			return units[left].Category < units[right].Category
		}
		return units[left].Name < units[right].Name
	})
	return units, nil
}

func (repository *MemoryMeasurementRepository) Create(ctx context.Context, unit models.MeasurementUnit) (models.MeasurementUnit, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for _, existing := range repository.units {
		if strings.EqualFold(existing.Name, unit.Name) {
			return models.MeasurementUnit{}, fmt.Errorf("creating measurement: duplicate name %q", unit.Name)
		}
	}
	if unit.ID == "" {
		unit.ID = uuid.New().String()
	}
	unit.CreatedAt = time.Now()
	repository.units = append(repository.units, unit)
	return unit, nil
}

func (repository *MemoryMeasurementRepository) Update(ctx context.Context, unit models.MeasurementUnit) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for index, existing := range repository.units {
		if existing.ID == unit.ID {
			unit.CreatedAt = existing.CreatedAt
			repository.units[index] = unit
			return nil
		}
	}
	return ErrNotFound
}

func (repository *MemoryMeasurementRepository) Delete(ctx context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for index, existing := range repository.units {
		if existing.ID == id {
			repository.units = append(repository.units[:index], repository.units[index+1:]...)
			return nil
		}
	}
	return nil
}

func (repository *MemoryMeasurementRepository) Count(ctx context.Context) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	return len(repository.units), nil
}

type MemoryIngredientRepository struct {
	mu          sync.RWMutex
	ingredients []models.Ingredient
}

func NewMemoryIngredientRepository() *MemoryIngredientRepository {
	return &MemoryIngredientRepository{}
}

func (repository *MemoryIngredientRepository) FindByID(ctx context.Context, id string) (models.Ingredient, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	for _, ingredient := range repository.ingredients {
		if ingredient.ID == id {
			return ingredient, nil
		}
	}
	return models.Ingredient{}, ErrNotFound
}

func (repository *MemoryIngredientRepository) FindByExactName(ctx context.Context, name string) (models.Ingredient, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	for _, ingredient := range repository.ingredients {
		if strings.ToLower(ingredient.Name) == normalized {
			return ingredient, nil
		}
	}
	return models.Ingredient{}, ErrNotFound
}

func (repository *MemoryIngredientRepository) FindByAlias(ctx context.Context, needle string) (models.Ingredient, error) {
	normalized := strings.ToLower(strings.TrimSpace(needle))
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	// Storage order, first hit wins.
	for _, ingredient := range repository.ingredients {
		if strings.Contains(strings.ToLower(ingredient.Aliases), normalized) {
			return ingredient, nil
		}
	}
	return models.Ingredient{}, ErrNotFound
}

func (repository *MemoryIngredientRepository) FindByPartialName(ctx context.Context, needle string) (models.Ingredient, error) {
	normalized := strings.ToLower(strings.TrimSpace(needle))
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	found := false
	var best models.Ingredient
	for _, ingredient := range repository.ingredients {
		if !strings.Contains(strings.ToLower(ingredient.Name), normalized) {
			continue
		}
		if !found || len(ingredient.Name) < len(best.Name) {
			best = ingredient
			found = true
		}
	}
	if !found {
		return models.Ingredient{}, ErrNotFound
	}
	return best, nil
}

func (repository *MemoryIngredientRepository) FindAll(ctx context.Context) ([]models.Ingredient, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	ingredients := make([]models.Ingredient, len(repository.ingredients))
	copy(ingredients, repository.ingredients)
	sort.Slice(ingredients, func(left, right int) bool {
		if ingredients[left].Category != ingredients[right].Category {
			return ingredients[left].Category < ingredients[right].Category
		}
		return ingredients[left].Name < ingredients[right].Name
	})
	return ingredients, nil
}

func (repository *MemoryIngredientRepository) FindByCategory(ctx context.Context, category models.IngredientCategory) ([]models.Ingredient, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	var ingredients []models.Ingredient
	for _, ingredient := range repository.ingredients {
		if ingredient.Category == category {
			ingredients = append(ingredients, ingredient)
		}
	}
	sort.Slice(ingredients, func(left, right int) bool {
		return ingredients[left].Name < ingredients[right].Name
	})
	return ingredients, nil
}

func (repository *MemoryIngredientRepository) Create(ctx context.Context, ingredient models.Ingredient) (models.Ingredient, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for _, existing := range repository.ingredients {
		if strings.EqualFold(existing.Name, ingredient.Name) {
			return models.Ingredient{}, fmt.Errorf("creating ingredient: duplicate name %q", ingredient.Name)
		}
	}
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	ingredient.CreatedAt = time.Now()
	repository.ingredients = append(repository.ingredients, ingredient)
	return ingredient, nil
}

func (repository *MemoryIngredientRepository) Update(ctx context.Context, ingredient models.Ingredient) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for index, existing := range repository.ingredients {
		if existing.ID == ingredient.ID {
			ingredient.CreatedAt = existing.CreatedAt
			repository.ingredients[index] = ingredient
			return nil
		}
	}
	return ErrNotFound
}

func (repository *MemoryIngredientRepository) Delete(ctx context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for index, existing := range repository.ingredients {
		if existing.ID == id {
			repository.ingredients = append(repository.ingredients[:index], repository.ingredients[index+1:]...)
			return nil
		}
	}
	return nil
}

func (repository *MemoryIngredientRepository) Count(ctx context.Context) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	return len(repository.ingredients), nil
}

type MemoryAssignmentRepository struct {
	mu          sync.Mutex
	categories  []models.Category
	profiles    []models.CategoryProfile
	assignments map[string]models.CategoryAssignment
}

func NewMemoryAssignmentRepository() *MemoryAssignmentRepository {
	return &MemoryAssignmentRepository{assignments: make(map[string]models.CategoryAssignment)}
}

func assignmentKey(ingredientID string, profileID *string) string {
	return ingredientID + "|" + profileKey(profileID)
}

func (repository *MemoryAssignmentRepository) FindCategoryByID(ctx context.Context, id string) (models.Category, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for _, category := range repository.categories {
		if category.ID == id {
			return category, nil
		}
	}
	return models.Category{}, ErrNotFound
}

func (repository *MemoryAssignmentRepository) FindCategoryByName(ctx context.Context, name string) (models.Category, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.findCategoryByNameLocked(name)
}

func (repository *MemoryAssignmentRepository) findCategoryByNameLocked(name string) (models.Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, category := range repository.categories {
		if strings.ToLower(category.Name) == normalized {
			return category, nil
		}
	}
	return models.Category{}, ErrNotFound
}

func (repository *MemoryAssignmentRepository) FindAllCategories(ctx context.Context) ([]models.Category, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	categories := make([]models.Category, len(repository.categories))
	copy(categories, repository.categories)
	sort.Slice(categories, func(left, right int) bool {
		if categories[left].SortOrder != categories[right].SortOrder {
			return categories[left].SortOrder < categories[right].SortOrder
		}
		return categories[left].Name < categories[right].Name
	})
	return categories, nil
}

func (repository *MemoryAssignmentRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if _, err := repository.findCategoryByNameLocked(category.Name); err == nil {
		return models.Category{}, fmt.Errorf("creating category: duplicate name %q", category.Name)
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	repository.categories = append(repository.categories, category)
	return category, nil
}

func (repository *MemoryAssignmentRepository) GetOrCreateCategory(ctx context.Context, name string) (models.Category, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if category, err := repository.findCategoryByNameLocked(name); err == nil {
		return category, nil
	}
	category := models.Category{ID: uuid.New().String(), Name: name}
	repository.categories = append(repository.categories, category)
	return category, nil
}

func (repository *MemoryAssignmentRepository) CreateProfile(ctx context.Context, name string) (models.CategoryProfile, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for _, existing := range repository.profiles {
		if strings.EqualFold(existing.Name, name) {
			return models.CategoryProfile{}, fmt.Errorf("creating profile: duplicate name %q", name)
		}
	}
	profile := models.CategoryProfile{ID: uuid.New().String(), Name: name}
	repository.profiles = append(repository.profiles, profile)
	return profile, nil
}

func (repository *MemoryAssignmentRepository) FindProfileByName(ctx context.Context, name string) (models.CategoryProfile, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for _, profile := range repository.profiles {
		if strings.ToLower(profile.Name) == normalized {
			return profile, nil
		}
	}
	return models.CategoryProfile{}, ErrNotFound
}

func (repository *MemoryAssignmentRepository) FindAllProfiles(ctx context.Context) ([]models.CategoryProfile, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	profiles := make([]models.CategoryProfile, len(repository.profiles))
	copy(profiles, repository.profiles)
	sort.Slice(profiles, func(left, right int) bool {
		return profiles[left].Name < profiles[right].Name
	})
	return profiles, nil
}

func (repository *MemoryAssignmentRepository) UpsertAssignment(ctx context.Context, assignment models.CategoryAssignment) (models.CategoryAssignment, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	key := assignmentKey(assignment.IngredientID, assignment.ProfileID)
	if existing, ok := repository.assignments[key]; ok {
		existing.CategoryID = assignment.CategoryID
		existing.SortHint = assignment.SortHint
		repository.assignments[key] = existing
		return existing, nil
	}
	if assignment.ID == "" {
		assignment.ID = uuid.New().String()
	}
	repository.assignments[key] = assignment
	return assignment, nil
}

func (repository *MemoryAssignmentRepository) FindAssignment(ctx context.Context, ingredientID string, profileID *string) (models.CategoryAssignment, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	assignment, ok := repository.assignments[assignmentKey(ingredientID, profileID)]
	if !ok {
		return models.CategoryAssignment{}, ErrNotFound
	}
	return assignment, nil
}

func (repository *MemoryAssignmentRepository) CountCategories(ctx context.Context) (int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.categories), nil
}

type MemoryRecipeRepository struct {
	mu      sync.RWMutex
	recipes []models.Recipe
}

func NewMemoryRecipeRepository() *MemoryRecipeRepository {
	return &MemoryRecipeRepository{}
}

func (repository *MemoryRecipeRepository) FindByID(ctx context.Context, id string) (models.Recipe, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	for _, recipe := range repository.recipes {
		if recipe.ID == id {
			return recipe, nil
		}
	}
	return models.Recipe{}, ErrNotFound
}

func (repository *MemoryRecipeRepository) FindAll(ctx context.Context) ([]models.Recipe, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	recipes := make([]models.Recipe, len(repository.recipes))
	copy(recipes, repository.recipes)
	sort.Slice(recipes, func(left, right int) bool {
		return recipes[left].Title < recipes[right].Title
	})
	return recipes, nil
}

func (repository *MemoryRecipeRepository) Create(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if recipe.Servings == 0 {
		recipe.Servings = 4
	}
	now := time.Now()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	repository.recipes = append(repository.recipes, recipe)
	return recipe, nil
}

func (repository *MemoryRecipeRepository) Update(ctx context.Context, recipe models.Recipe) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for index, existing := range repository.recipes {
		if existing.ID == recipe.ID {
			recipe.CreatedAt = existing.CreatedAt
			recipe.UpdatedAt = time.Now()
			repository.recipes[index] = recipe
			return nil
		}
	}
	return ErrNotFound
}

func (repository *MemoryRecipeRepository) Delete(ctx context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for index, existing := range repository.recipes {
		if existing.ID == id {
			repository.recipes = append(repository.recipes[:index], repository.recipes[index+1:]...)
			return nil
		}
	}
	return nil
}
