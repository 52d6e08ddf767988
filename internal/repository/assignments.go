package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bensuskins/grocery-engine/internal/models"
	"github.com/google/uuid"
)

type AssignmentRepository interface {
	FindCategoryByID(ctx context.Context, id string) (models.Category, error)
	FindCategoryByName(ctx context.Context, name string) (models.Category, error)
	FindAllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	GetOrCreateCategory(ctx context.Context, name string) (models.Category, error)

	CreateProfile(ctx context.Context, name string) (models.CategoryProfile, error)
	FindProfileByName(ctx context.Context, name string) (models.CategoryProfile, error)
	FindAllProfiles(ctx context.Context) ([]models.CategoryProfile, error)

	// UpsertAssignment creates or replaces the single assignment row for the
	// (ingredient, profile) pair. A nil profile targets the global default.
	UpsertAssignment(ctx context.Context, assignment models.CategoryAssignment) (models.CategoryAssignment, error)
	FindAssignment(ctx context.Context, ingredientID string, profileID *string) (models.CategoryAssignment, error)
	CountCategories(ctx context.Context) (int, error)
}

type SQLiteAssignmentRepository struct {
	database *sql.DB
}

func NewAssignmentRepository(database *sql.DB) *SQLiteAssignmentRepository {
	return &SQLiteAssignmentRepository{database: database}
}

// profileKey flattens the nullable profile reference into the stored form.
// The empty string is the global scope.
func profileKey(profileID *string) string {
	if profileID == nil {
		return ""
	}
	return *profileID
}

func (repository *SQLiteAssignmentRepository) FindCategoryByID(ctx context.Context, id string) (models.Category, error) {
	var category models.Category
	err := repository.database.QueryRowContext(ctx,
		"SELECT id, name, sort_order FROM categories WHERE id = ?", id,
	).Scan(&category.ID, &category.Name, &category.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrNotFound
	}
	if err != nil {
		return models.Category{}, fmt.Errorf("finding category by id: %w", err)
	}
	return category, nil
}

func (repository *SQLiteAssignmentRepository) FindCategoryByName(ctx context.Context, name string) (models.Category, error) {
	var category models.Category
	err := repository.database.QueryRowContext(ctx,
		"SELECT id, name, sort_order FROM categories WHERE LOWER(name) = ?",
		strings.ToLower(strings.TrimSpace(name)),
	).Scan(&category.ID, &category.Name, &category.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrNotFound
	}
	if err != nil {
		return models.Category{}, fmt.Errorf("finding category by name: %w", err)
	}
	return category, nil
}

func (repository *SQLiteAssignmentRepository) FindAllCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT id, name, sort_order FROM categories ORDER BY sort_order, name",
	)
	if err != nil {
		return nil, fmt.Errorf("finding all categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (repository *SQLiteAssignmentRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO categories (id, name, sort_order) VALUES (?, ?, ?)",
		category.ID, category.Name, category.SortOrder,
	)
	if err != nil {
		return models.Category{}, fmt.Errorf("creating category: %w", err)
	}
	return category, nil
}

func (repository *SQLiteAssignmentRepository) GetOrCreateCategory(ctx context.Context, name string) (models.Category, error) {
	category, err := repository.FindCategoryByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Category{}, err
	}

	category = models.Category{ID: uuid.New().String(), Name: name}
	_, err = repository.database.ExecContext(ctx,
		"INSERT INTO categories (id, name, sort_order) VALUES (?, ?, ?) ON CONFLICT(name) DO NOTHING",
		category.ID, category.Name, category.SortOrder,
	)
	if err != nil {
		return models.Category{}, fmt.Errorf("creating category: %w", err)
	}
	// Re-read so a concurrent insert of the same name resolves to one row.
	return repository.FindCategoryByName(ctx, name)
}

func (repository *SQLiteAssignmentRepository) CreateProfile(ctx context.Context, name string) (models.CategoryProfile, error) {
	profile := models.CategoryProfile{ID: uuid.New().String(), Name: name}
	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO category_profiles (id, name) VALUES (?, ?)", profile.ID, profile.Name,
	)
	if err != nil {
		return models.CategoryProfile{}, fmt.Errorf("creating profile: %w", err)
	}
	return profile, nil
}

func (repository *SQLiteAssignmentRepository) FindProfileByName(ctx context.Context, name string) (models.CategoryProfile, error) {
	var profile models.CategoryProfile
	err := repository.database.QueryRowContext(ctx,
		"SELECT id, name FROM category_profiles WHERE LOWER(name) = ?",
		strings.ToLower(strings.TrimSpace(name)),
	).Scan(&profile.ID, &profile.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CategoryProfile{}, ErrNotFound
	}
	if err != nil {
		return models.CategoryProfile{}, fmt.Errorf("finding profile by name: %w", err)
	}
	return profile, nil
}

func (repository *SQLiteAssignmentRepository) FindAllProfiles(ctx context.Context) ([]models.CategoryProfile, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT id, name FROM category_profiles ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("finding all profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.CategoryProfile
	for rows.Next() {
		var profile models.CategoryProfile
		if err := rows.Scan(&profile.ID, &profile.Name); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (repository *SQLiteAssignmentRepository) UpsertAssignment(ctx context.Context, assignment models.CategoryAssignment) (models.CategoryAssignment, error) {
	if assignment.ID == "" {
		assignment.ID = uuid.New().String()
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO category_assignments (id, ingredient_id, profile_id, category_id, sort_hint)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (ingredient_id, profile_id) DO UPDATE SET category_id = ?, sort_hint = ?`,
		assignment.ID, assignment.IngredientID, profileKey(assignment.ProfileID),
		assignment.CategoryID, assignment.SortHint,
		assignment.CategoryID, assignment.SortHint,
	)
	if err != nil {
		return models.CategoryAssignment{}, fmt.Errorf("upserting assignment: %w", err)
	}
	return repository.FindAssignment(ctx, assignment.IngredientID, assignment.ProfileID)
}

func (repository *SQLiteAssignmentRepository) FindAssignment(ctx context.Context, ingredientID string, profileID *string) (models.CategoryAssignment, error) {
	var assignment models.CategoryAssignment
	var storedProfile string
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, ingredient_id, profile_id, category_id, sort_hint
		FROM category_assignments WHERE ingredient_id = ? AND profile_id = ?`,
		ingredientID, profileKey(profileID),
	).Scan(&assignment.ID, &assignment.IngredientID, &storedProfile, &assignment.CategoryID, &assignment.SortHint)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CategoryAssignment{}, ErrNotFound
	}
	if err != nil {
		return models.CategoryAssignment{}, fmt.Errorf("finding assignment: %w", err)
	}
	if storedProfile != "" {
		assignment.ProfileID = &storedProfile
	}
	return assignment, nil
}

func (repository *SQLiteAssignmentRepository) CountCategories(ctx context.Context) (int, error) {
	var count int
	err := repository.database.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}
	return count, nil
}
