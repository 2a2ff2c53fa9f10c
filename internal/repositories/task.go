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

// TaskRepository implements [models.Repository] for [models.Task] persistence.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new [TaskRepository] with the given database connection
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, sequence, name, description, points, party_id, assigned_user_id, completed, created_at, updated_at, deleted_at`

// Create inserts a new task with generated ID and sequence
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(ctx, r.db, "tasks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	task.ID = shared.GenerateID()
	task.Sequence = sequence
	task.Touch(time.Now())

	query := `
		INSERT INTO tasks (id, sequence, name, description, points, party_id, assigned_user_id, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		task.ID,
		sequence,
		task.Name,
		task.Description,
		task.Points,
		task.PartyID,
		task.AssignedUserID,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// Get retrieves a task by ID, excluding soft-deleted tasks
func (r *TaskRepository) Get(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND deleted_at IS NULL`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrTaskNotFound, id)
	}
	return task, err
}

// Update overwrites every mutable field of an existing task
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	task.Touch(time.Now())

	query := `
		UPDATE tasks
		SET name = ?, description = ?, points = ?, party_id = ?, assigned_user_id = ?, completed = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		task.Name,
		task.Description,
		task.Points,
		task.PartyID,
		task.AssignedUserID,
		task.Completed,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return affectedOne(result, shared.ErrTaskNotFound, task.ID)
}

// Delete soft-deletes a task by ID
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tasks SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return affectedOne(result, shared.ErrTaskNotFound, id)
}

// DeleteByParty soft-deletes every task owned by partyID and returns the number removed.
func (r *TaskRepository) DeleteByParty(ctx context.Context, partyID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE tasks SET deleted_at = ? WHERE party_id = ? AND deleted_at IS NULL`, time.Now(), partyID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tasks for party: %w", err)
	}
	return result.RowsAffected()
}

// List retrieves tasks, optionally filtered by "party_id" (string), "assigned_user_id" (string)
// and "completed" (bool).
func (r *TaskRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE deleted_at IS NULL`

	args := []any{}

	if partyID, ok := criteria["party_id"].(string); ok {
		query += " AND party_id = ?"
		args = append(args, partyID)
	}

	if userID, ok := criteria["assigned_user_id"].(string); ok {
		query += " AND assigned_user_id = ?"
		args = append(args, userID)
	}

	if completed, ok := criteria["completed"].(bool); ok {
		query += " AND completed = ?"
		args = append(args, completed)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tasks, nil
}

func scanTask(row scanner) (*models.Task, error) {
	var (
		task      models.Task
		deletedAt sql.NullTime
	)

	err := row.Scan(
		&task.ID,
		&task.Sequence,
		&task.Name,
		&task.Description,
		&task.Points,
		&task.PartyID,
		&task.AssignedUserID,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
		&deletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	if deletedAt.Valid {
		task.DeletedAt = &deletedAt.Time
	}

	return &task, nil
}
