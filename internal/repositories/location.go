package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/shared"
)

// LocationRepository implements [models.Repository] for [models.Location] persistence.
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new [LocationRepository] with the given database connection
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

const locationColumns = `id, sequence, name, address, cost, rating, capacity, created_at, updated_at, deleted_at`

// Create inserts a new location with generated ID and sequence
func (r *LocationRepository) Create(ctx context.Context, location *models.Location) error {
	if err := location.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(ctx, r.db, "locations")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	location.ID = shared.GenerateID()
	location.Sequence = sequence
	location.Touch(time.Now())

	query := `
		INSERT INTO locations (id, sequence, name, address, cost, rating, capacity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		location.ID,
		sequence,
		location.Name,
		location.Address,
		location.Cost,
		location.Rating,
		location.Capacity,
		location.CreatedAt,
		location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert location: %w", err)
	}

	return nil
}

// Get retrieves a location by ID, excluding soft-deleted locations
func (r *LocationRepository) Get(ctx context.Context, id string) (*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = ? AND deleted_at IS NULL`

	location, err := scanLocation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrLocationNotFound, id)
	}
	return location, err
}

// Update modifies an existing location
func (r *LocationRepository) Update(ctx context.Context, location *models.Location) error {
	if err := location.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	location.Touch(time.Now())

	query := `
		UPDATE locations
		SET name = ?, address = ?, cost = ?, rating = ?, capacity = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		location.Name,
		location.Address,
		location.Cost,
		location.Rating,
		location.Capacity,
		location.UpdatedAt,
		location.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	return affectedOne(result, shared.ErrLocationNotFound, location.ID)
}

// Delete soft-deletes a location by ID
func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE locations SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	return affectedOne(result, shared.ErrLocationNotFound, id)
}

// List retrieves all locations matching the given criteria, excluding soft-deleted locations.
//
// Supported criteria: "min_rating" (float64), "max_cost" (float64), "min_capacity" (int).
// Absent keys apply no bound.
func (r *LocationRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE deleted_at IS NULL`

	args := []any{}

	if minRating, ok := criteria["min_rating"].(float64); ok {
		query += " AND rating >= ?"
		args = append(args, minRating)
	}

	if maxCost, ok := criteria["max_cost"].(float64); ok {
		query += " AND cost <= ?"
		args = append(args, maxCost)
	}

	if minCapacity, ok := criteria["min_capacity"].(int); ok {
		query += " AND capacity >= ?"
		args = append(args, minCapacity)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locations := []*models.Location{}
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return locations, nil
}

func scanLocation(row scanner) (*models.Location, error) {
	var (
		location  models.Location
		deletedAt sql.NullTime
	)

	err := row.Scan(
		&location.ID,
		&location.Sequence,
		&location.Name,
		&location.Address,
		&location.Cost,
		&location.Rating,
		&location.Capacity,
		&location.CreatedAt,
		&location.UpdatedAt,
		&deletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan location: %w", err)
	}
	if deletedAt.Valid {
		location.DeletedAt = &deletedAt.Time
	}

	return &location, nil
}
