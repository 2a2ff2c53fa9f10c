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

// FoodRepository implements [models.Repository] for [models.Food] persistence.
type FoodRepository struct {
	db *sql.DB
}

// NewFoodRepository creates a new [FoodRepository] with the given database connection
func NewFoodRepository(db *sql.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

const foodColumns = `id, sequence, name, price, rating, prep_minutes, created_at, updated_at, deleted_at`

// Create inserts a new food option with generated ID and sequence
func (r *FoodRepository) Create(ctx context.Context, food *models.Food) error {
	if err := food.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(ctx, r.db, "foods")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	food.ID = shared.GenerateID()
	food.Sequence = sequence
	food.Touch(time.Now())

	query := `
		INSERT INTO foods (id, sequence, name, price, rating, prep_minutes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query, food.ID, sequence, food.Name, food.Price, food.Rating, food.PrepMinutes, food.CreatedAt, food.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert food: %w", err)
	}

	return nil
}

// Get retrieves a food option by ID, excluding soft-deleted rows
func (r *FoodRepository) Get(ctx context.Context, id string) (*models.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM foods WHERE id = ? AND deleted_at IS NULL`

	food, err := scanFood(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrFoodNotFound, id)
	}
	return food, err
}

// Update modifies an existing food option
func (r *FoodRepository) Update(ctx context.Context, food *models.Food) error {
	if err := food.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	food.Touch(time.Now())

	query := `
		UPDATE foods
		SET name = ?, price = ?, rating = ?, prep_minutes = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, food.Name, food.Price, food.Rating, food.PrepMinutes, food.UpdatedAt, food.ID)
	if err != nil {
		return fmt.Errorf("failed to update food: %w", err)
	}

	return affectedOne(result, shared.ErrFoodNotFound, food.ID)
}

// Delete soft-deletes a food option by ID
func (r *FoodRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE foods SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete food: %w", err)
	}

	return affectedOne(result, shared.ErrFoodNotFound, id)
}

// List retrieves all food options, optionally filtered by "max_price" (float64) and "min_rating" (float64)
func (r *FoodRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM foods WHERE deleted_at IS NULL`

	args := []any{}

	if maxPrice, ok := criteria["max_price"].(float64); ok {
		query += " AND price <= ?"
		args = append(args, maxPrice)
	}

	if minRating, ok := criteria["min_rating"].(float64); ok {
		query += " AND rating >= ?"
		args = append(args, minRating)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	foods := []*models.Food{}
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, food)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return foods, nil
}

func scanFood(row scanner) (*models.Food, error) {
	var (
		food      models.Food
		deletedAt sql.NullTime
	)

	err := row.Scan(&food.ID, &food.Sequence, &food.Name, &food.Price, &food.Rating, &food.PrepMinutes, &food.CreatedAt, &food.UpdatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan food: %w", err)
	}
	if deletedAt.Valid {
		food.DeletedAt = &deletedAt.Time
	}

	return &food, nil
}
