package party

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/shared"
)

// TaskSpec carries every caller-writable task field.
type TaskSpec struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Points         int    `json:"points"`
	PartyID        string `json:"partyId"`
	AssignedUserID string `json:"assignedUserId"`
	Completed      bool   `json:"completed"`
}

// PointTotal sums the points of completed tasks.
func PointTotal(tasks []*models.Task) int {
	total := 0
	for _, t := range tasks {
		if t.Completed {
			total += t.Points
		}
	}
	return total
}

// TaskEngine manages tasks and keeps party point totals in step with them.
type TaskEngine struct {
	tasks   TaskStore
	parties PartyStore
	users   UserStore
	logger  *log.Logger
}

// NewTaskEngine creates a [TaskEngine].
func NewTaskEngine(tasks TaskStore, parties PartyStore, users UserStore, logger *log.Logger) *TaskEngine {
	return &TaskEngine{tasks: tasks, parties: parties, users: users, logger: orDiscard(logger)}
}

// checkRefs resolves the party and, when set, the assigned user.
func (e *TaskEngine) checkRefs(ctx context.Context, partyID, userID string) error {
	if _, err := e.parties.Get(ctx, partyID); err != nil {
		return err
	}
	if userID == "" {
		return nil
	}
	_, err := e.users.Get(ctx, userID)
	return err
}

// CreateTask stores a task for an existing party. The party total is recomputed when the task
// is created already completed.
func (e *TaskEngine) CreateTask(ctx context.Context, spec TaskSpec) (*models.Task, error) {
	if err := e.checkRefs(ctx, spec.PartyID, spec.AssignedUserID); err != nil {
		return nil, err
	}

	task := models.NewTask(spec.Name, spec.Description, spec.Points, spec.PartyID, spec.AssignedUserID)
	task.Completed = spec.Completed

	if err := e.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	if task.Completed {
		if _, err := e.Recompute(ctx, task.PartyID); err != nil {
			return nil, err
		}
	}

	return task, nil
}

// GetTask returns a task by id.
func (e *TaskEngine) GetTask(ctx context.Context, id string) (*models.Task, error) {
	return e.tasks.Get(ctx, id)
}

// ListTasks returns every task.
func (e *TaskEngine) ListTasks(ctx context.Context) ([]*models.Task, error) {
	return e.tasks.List(ctx, nil)
}

// TasksForParty returns the tasks of a party. Unknown ids yield an empty list.
func (e *TaskEngine) TasksForParty(ctx context.Context, partyID string) ([]*models.Task, error) {
	return e.tasks.List(ctx, map[string]any{"party_id": partyID})
}

// TasksForUser returns the tasks assigned to a user. Unknown ids yield an empty list.
func (e *TaskEngine) TasksForUser(ctx context.Context, userID string) ([]*models.Task, error) {
	return e.tasks.List(ctx, map[string]any{"assigned_user_id": userID})
}

// UpdateTask overwrites every field of the task from spec.
//
// When the points or completion flag change the owning party is recomputed; when the task moves
// both the old and the new party are.
func (e *TaskEngine) UpdateTask(ctx context.Context, id string, spec TaskSpec) (*models.Task, error) {
	task, err := e.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	moved := spec.PartyID != task.PartyID
	if moved || (spec.AssignedUserID != task.AssignedUserID) {
		if err := e.checkRefs(ctx, spec.PartyID, spec.AssignedUserID); err != nil {
			return nil, err
		}
	}

	scored := spec.Points != task.Points || spec.Completed != task.Completed
	oldParty := task.PartyID

	task.Name = spec.Name
	task.Description = spec.Description
	task.Points = spec.Points
	task.PartyID = spec.PartyID
	task.AssignedUserID = spec.AssignedUserID
	task.Completed = spec.Completed

	if err := e.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if moved {
		if _, err := e.Recompute(ctx, oldParty); err != nil {
			return nil, err
		}
	}
	if moved || scored {
		if _, err := e.Recompute(ctx, task.PartyID); err != nil {
			return nil, err
		}
	}

	return task, nil
}

// DeleteTask removes a task and recomputes its party.
func (e *TaskEngine) DeleteTask(ctx context.Context, id string) error {
	task, err := e.tasks.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := e.tasks.Delete(ctx, id); err != nil {
		return err
	}

	_, err = e.Recompute(ctx, task.PartyID)
	return err
}

// Recompute rescans the party's tasks and stores the new total when it differs.
//
// A party that no longer exists is skipped with a warning and reports 0.
func (e *TaskEngine) Recompute(ctx context.Context, partyID string) (int, error) {
	party, err := e.parties.Get(ctx, partyID)
	if errors.Is(err, shared.ErrNotFound) {
		e.logger.Warn("skipping recompute for missing party", "party", partyID)
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	tasks, err := e.tasks.List(ctx, map[string]any{"party_id": partyID})
	if err != nil {
		return 0, err
	}

	total := PointTotal(tasks)
	if total == party.Points {
		return total, nil
	}

	if err := e.parties.UpdatePoints(ctx, partyID, total); err != nil {
		return 0, err
	}

	e.logger.Debug("party points recomputed", "party", partyID, "from", party.Points, "to", total)
	return total, nil
}
