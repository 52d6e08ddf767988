package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bensuskins/grocery-engine/internal/models"
	"github.com/google/uuid"
)

type RecipeRepository interface {
	FindByID(ctx context.Context, id string) (models.Recipe, error)
	FindAll(ctx context.Context) ([]models.Recipe, error)
	Create(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	Update(ctx context.Context, recipe models.Recipe) error
	Delete(ctx context.Context, id string) error
}

type SQLiteRecipeRepository struct {
	database *sql.DB
}

func NewRecipeRepository(database *sql.DB) *SQLiteRecipeRepository {
	return &SQLiteRecipeRepository{database: database}
}

func (repository *SQLiteRecipeRepository) FindByID(ctx context.Context, id string) (models.Recipe, error) {
	var recipe models.Recipe
	var ingredientsJSON, instructionsJSON, tagsJSON string
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, title, ingredients, instructions, tags, servings, source_url, created_at, updated_at
		FROM recipes WHERE id = ?`, id,
	).Scan(
		&recipe.ID, &recipe.Title, &ingredientsJSON, &instructionsJSON, &tagsJSON,
		&recipe.Servings, &recipe.SourceURL, &recipe.CreatedAt, &recipe.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Recipe{}, ErrNotFound
	}
	if err != nil {
		return models.Recipe{}, fmt.Errorf("finding recipe by id: %w", err)
	}
	if err := unmarshalRecipeFields(&recipe, ingredientsJSON, instructionsJSON, tagsJSON); err != nil {
		return models.Recipe{}, err
	}
	return recipe, nil
}

func (repository *SQLiteRecipeRepository) FindAll(ctx context.Context) ([]models.Recipe, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, title, ingredients, instructions, tags, servings, source_url, created_at, updated_at
		FROM recipes ORDER BY title ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("finding recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var recipe models.Recipe
		var ingredientsJSON, instructionsJSON, tagsJSON string
		if err := rows.Scan(
			&recipe.ID, &recipe.Title, &ingredientsJSON, &instructionsJSON, &tagsJSON,
			&recipe.Servings, &recipe.SourceURL, &recipe.CreatedAt, &recipe.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		if err := unmarshalRecipeFields(&recipe, ingredientsJSON, instructionsJSON, tagsJSON); err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

func (repository *SQLiteRecipeRepository) Create(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if recipe.Servings == 0 {
		recipe.Servings = 4
	}
	now := time.Now()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	ingredientsJSON, instructionsJSON, tagsJSON, err := marshalRecipeFields(&recipe)
	if err != nil {
		return models.Recipe{}, err
	}

	_, err = repository.database.ExecContext(ctx,
		`INSERT INTO recipes (id, title, ingredients, instructions, tags, servings, source_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.ID, recipe.Title, ingredientsJSON, instructionsJSON, tagsJSON,
		recipe.Servings, recipe.SourceURL, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("creating recipe: %w", err)
	}
	return recipe, nil
}

func (repository *SQLiteRecipeRepository) Update(ctx context.Context, recipe models.Recipe) error {
	recipe.UpdatedAt = time.Now()

	ingredientsJSON, instructionsJSON, tagsJSON, err := marshalRecipeFields(&recipe)
	if err != nil {
		return err
	}

	_, err = repository.database.ExecContext(ctx,
		`UPDATE recipes SET title = ?, ingredients = ?, instructions = ?, tags = ?, servings = ?,
			source_url = ?, updated_at = ?
		WHERE id = ?`,
		recipe.Title, ingredientsJSON, instructionsJSON, tagsJSON,
		recipe.Servings, recipe.SourceURL, recipe.UpdatedAt, recipe.ID,
	)
	if err != nil {
		return fmt.Errorf("updating recipe: %w", err)
	}
	return nil
}

func (repository *SQLiteRecipeRepository) Delete(ctx context.Context, id string) error {
	_, err := repository.database.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}
	return nil
}

func marshalRecipeFields(recipe *models.Recipe) (string, string, string, error) {
	if recipe.Ingredients == nil {
		recipe.Ingredients = []models.RawIngredientEntry{}
	}
	if recipe.Instructions == nil {
		recipe.Instructions = []string{}
	}
	if recipe.Tags == nil {
		recipe.Tags = []string{}
	}

	ingredientsJSON, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return "", "", "", fmt.Errorf("marshalling ingredients: %w", err)
	}
	instructionsJSON, err := json.Marshal(recipe.Instructions)
	if err != nil {
		return "", "", "", fmt.Errorf("marshalling instructions: %w", err)
	}
	tagsJSON, err := json.Marshal(recipe.Tags)
	if err != nil {
		return "", "", "", fmt.Errorf("marshalling tags: %w", err)
	}
	return string(ingredientsJSON), string(instructionsJSON), string(tagsJSON), nil
}

func unmarshalRecipeFields(recipe *models.Recipe, ingredientsJSON, instructionsJSON, tagsJSON string) error {
	if err := json.Unmarshal([]byte(ingredientsJSON), &recipe.Ingredients); err != nil {
		return fmt.Errorf("unmarshalling ingredients: %w", err)
	}
	if err := json.Unmarshal([]byte(instructionsJSON), &recipe.Instructions); err != nil {
		return fmt.Errorf("unmarshalling instructions: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &recipe.Tags); err != nil {
		return fmt.Errorf("unmarshalling tags: %w", err)
	}
	return nil
}
