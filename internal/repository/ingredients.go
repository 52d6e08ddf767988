package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bensuskins/grocery-engine/internal/models"
	"github.com/google/uuid"
)

type IngredientRepository interface {
	FindByID(ctx context.Context, id string) (models.Ingredient, error)
	// FindByExactName matches the canonical name case-insensitively.
	FindByExactName(ctx context.Context, name string) (models.Ingredient, error)
	// FindByAlias returns the first ingredient, in storage order, whose
	// comma-joined alias list contains the needle as a substring.
	FindByAlias(ctx context.Context, needle string) (models.Ingredient, error)
	// FindByPartialName returns the ingredient whose canonical name contains
	// the needle, preferring the shortest name as a proxy for specificity.
	FindByPartialName(ctx context.Context, needle string) (models.Ingredient, error)
	FindAll(ctx context.Context) ([]models.Ingredient, error)
	FindByCategory(ctx context.Context, category models.IngredientCategory) ([]models.Ingredient, error)
	Create(ctx context.Context, ingredient models.Ingredient) (models.Ingredient, error)
	Update(ctx context.Context, ingredient models.Ingredient) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type SQLiteIngredientRepository struct {
	database *sql.DB
}

func NewIngredientRepository(database *sql.DB) *SQLiteIngredientRepository {
	return &SQLiteIngredientRepository{database: database}
}

const ingredientColumns = "id, name, category, aliases, nutritional_info, storage_tips, created_at"

func (repository *SQLiteIngredientRepository) queryOne(ctx context.Context, query string, args ...any) (models.Ingredient, error) {
	var ingredient models.Ingredient
	err := repository.database.QueryRowContext(ctx, query, args...).Scan(
		&ingredient.ID, &ingredient.Name, &ingredient.Category, &ingredient.Aliases,
		&ingredient.NutritionalInfo, &ingredient.StorageTips, &ingredient.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ingredient{}, ErrNotFound
	}
	return ingredient, err
}

func (repository *SQLiteIngredientRepository) FindByID(ctx context.Context, id string) (models.Ingredient, error) {
	ingredient, err := repository.queryOne(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients WHERE id = ?", id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.Ingredient{}, fmt.Errorf("finding ingredient by id: %w", err)
	}
	return ingredient, err
}

func (repository *SQLiteIngredientRepository) FindByExactName(ctx context.Context, name string) (models.Ingredient, error) {
	ingredient, err := repository.queryOne(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients WHERE LOWER(name) = ?",
		strings.ToLower(strings.TrimSpace(name)))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.Ingredient{}, fmt.Errorf("finding ingredient by name: %w", err)
	}
	return ingredient, err
}

func (repository *SQLiteIngredientRepository) FindByAlias(ctx context.Context, needle string) (models.Ingredient, error) {
	ingredient, err := repository.queryOne(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients WHERE LOWER(aliases) LIKE ? LIMIT 1",
		"%"+strings.ToLower(strings.TrimSpace(needle))+"%")
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.Ingredient{}, fmt.Errorf("finding ingredient by alias: %w", err)
	}
	return ingredient, err
}

func (repository *SQLiteIngredientRepository) FindByPartialName(ctx context.Context, needle string) (models.Ingredient, error) {
	ingredient, err := repository.queryOne(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients WHERE LOWER(name) LIKE ? ORDER BY LENGTH(name) LIMIT 1",
		"%"+strings.ToLower(strings.TrimSpace(needle))+"%")
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.Ingredient{}, fmt.Errorf("finding ingredient by partial name: %w", err)
	}
	return ingredient, err
}

func (repository *SQLiteIngredientRepository) findMany(ctx context.Context, query string, args ...any) ([]models.Ingredient, error) {
	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []models.Ingredient
	for rows.Next() {
		var ingredient models.Ingredient
		if err := rows.Scan(
			&ingredient.ID, &ingredient.Name, &ingredient.Category, &ingredient.Aliases,
			&ingredient.NutritionalInfo, &ingredient.StorageTips, &ingredient.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, rows.Err()
}

func (repository *SQLiteIngredientRepository) FindAll(ctx context.Context) ([]models.Ingredient, error) {
	ingredients, err := repository.findMany(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients ORDER BY category, name")
	if err != nil {
		return nil, fmt.Errorf("finding all ingredients: %w", err)
	}
	return ingredients, nil
}

func (repository *SQLiteIngredientRepository) FindByCategory(ctx context.Context, category models.IngredientCategory) ([]models.Ingredient, error) {
	ingredients, err := repository.findMany(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients WHERE category = ? ORDER BY name", category)
	if err != nil {
		return nil, fmt.Errorf("finding ingredients by category: %w", err)
	}
	return ingredients, nil
}

func (repository *SQLiteIngredientRepository) Create(ctx context.Context, ingredient models.Ingredient) (models.Ingredient, error) {
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	ingredient.CreatedAt = time.Now()

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO ingredients (id, name, category, aliases, nutritional_info, storage_tips, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ingredient.ID, ingredient.Name, ingredient.Category, ingredient.Aliases,
		ingredient.NutritionalInfo, ingredient.StorageTips, ingredient.CreatedAt,
	)
	if err != nil {
		return models.Ingredient{}, fmt.Errorf("creating ingredient: %w", err)
	}
	return ingredient, nil
}

func (repository *SQLiteIngredientRepository) Update(ctx context.Context, ingredient models.Ingredient) error {
	_, err := repository.database.ExecContext(ctx,
		`UPDATE ingredients SET name = ?, category = ?, aliases = ?, nutritional_info = ?, storage_tips = ?
		WHERE id = ?`,
		ingredient.Name, ingredient.Category, ingredient.Aliases,
		ingredient.NutritionalInfo, ingredient.StorageTips, ingredient.ID,
	)
	if err != nil {
		return fmt.Errorf("updating ingredient: %w", err)
	}
	return nil
}

func (repository *SQLiteIngredientRepository) Delete(ctx context.Context, id string) error {
	_, err := repository.database.ExecContext(ctx, "DELETE FROM ingredients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting ingredient: %w", err)
	}
	return nil
}

func (repository *SQLiteIngredientRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := repository.database.QueryRowContext(ctx, "SELECT COUNT(*) FROM ingredients").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting ingredients: %w", err)
	}
	return count, nil
}
