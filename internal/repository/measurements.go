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

// ErrNotFound is returned by lookups that matched no row. Catalog callers
// translate it into "needs review" rather than surfacing it.
var ErrNotFound = errors.New("not found")

type MeasurementRepository interface {
	FindByID(ctx context.Context, id string) (models.MeasurementUnit, error)
	// FindByName matches the canonical name or the display name,
	// case-insensitively. Returns ErrNotFound when nothing matches.
	FindByName(ctx context.Context, name string) (models.MeasurementUnit, error)
	FindAll(ctx context.Context) ([]models.MeasurementUnit, error)
	Create(ctx context.Context, unit models.MeasurementUnit) (models.MeasurementUnit, error)
	Update(ctx context.Context, unit models.MeasurementUnit) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type SQLiteMeasurementRepository struct {
	database *sql.DB
}

func NewMeasurementRepository(database *sql.DB) *SQLiteMeasurementRepository {
	return &SQLiteMeasurementRepository{database: database}
}

const measurementColumns = "id, name, category, base_conversion, display_name, aliases, created_at"

func scanMeasurement(row *sql.Row) (models.MeasurementUnit, error) {
	var unit models.MeasurementUnit
	err := row.Scan(&unit.ID, &unit.Name, &unit.Category, &unit.BaseConversion,
		&unit.DisplayName, &unit.Aliases, &unit.CreatedAt)
	return unit, err
}

func (repository *SQLiteMeasurementRepository) FindByID(ctx context.Context, id string) (models.MeasurementUnit, error) {
	unit, err := scanMeasurement(repository.database.QueryRowContext(ctx,
		"SELECT "+measurementColumns+" FROM measurements WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.MeasurementUnit{}, ErrNotFound
	}
	if err != nil {
		return models.MeasurementUnit{}, fmt.Errorf("finding measurement by id: %w", err)
	}
	return unit, nil
}

func (repository *SQLiteMeasurementRepository) FindByName(ctx context.Context, name string) (models.MeasurementUnit, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	unit, err := scanMeasurement(repository.database.QueryRowContext(ctx,
		"SELECT "+measurementColumns+" FROM measurements WHERE LOWER(name) = ? OR LOWER(display_name) = ?",
		normalized, normalized,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.MeasurementUnit{}, ErrNotFound
	}
	if err != nil {
		return models.MeasurementUnit{}, fmt.Errorf("finding measurement by name: %w", err)
	}
	return unit, nil
}

func (repository *SQLiteMeasurementRepository) FindAll(ctx context.Context) ([]models.MeasurementUnit, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+measurementColumns+" FROM measurements ORDER BY category, name",
	)
	if err != nil {
		return nil, fmt.Errorf("finding all measurements: %w", err)
	}
	defer rows.Close()

	var units []models.MeasurementUnit
	for rows.Next() {
		var unit models.MeasurementUnit
		if err := rows.Scan(&unit.ID, &unit.Name, &unit.Category, &unit.BaseConversion,
			&unit.DisplayName, &unit.Aliases, &unit.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning measurement: %w", err)
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

func (repository *SQLiteMeasurementRepository) Create(ctx context.Context, unit models.MeasurementUnit) (models.MeasurementUnit, error) {
	if unit.ID == "" {
		unit.ID = uuid.New().String()
	}
	unit.CreatedAt = time.Now()

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO measurements (id, name, category, base_conversion, display_name, aliases, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		unit.ID, unit.Name, unit.Category, unit.BaseConversion,
		unit.DisplayName, unit.Aliases, unit.CreatedAt,
	)
	if err != nil {
		return models.MeasurementUnit{}, fmt.Errorf("creating measurement: %w", err)
	}
	return unit, nil
}

func (repository *SQLiteMeasurementRepository) Update(ctx context.Context, unit models.MeasurementUnit) error {
	_, err := repository.database.ExecContext(ctx,
		`UPDATE measurements SET name = ?, category = ?, base_conversion = ?, display_name = ?, aliases = ?
		WHERE id = ?`,
		unit.Name, unit.Category, unit.BaseConversion, unit.DisplayName, unit.Aliases, unit.ID,
	)
	if err != nil {
		return fmt.Errorf("updating measurement: %w", err)
	}
	return nil
}

func (repository *SQLiteMeasurementRepository) Delete(ctx context.Context, id string) error {
	_, err := repository.database.ExecContext(ctx, "DELETE FROM measurements WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting measurement: %w", err)
	}
	return nil
}

func (repository *SQLiteMeasurementRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := repository.database.QueryRowContext(ctx, "SELECT COUNT(*) FROM measurements").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting measurements: %w", err)
	}
	return count, nil
}
