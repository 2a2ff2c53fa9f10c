package main

import (
	"context"

	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/party"
	"github.com/desertthunder/partyx/internal/ui"
	"github.com/urfave/cli/v3"
)

func (r *Runner) TaskList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	engine := r.coord.Tasks()

	var (
		tasks []*models.Task
		err   error
	)
	switch {
	case cmd.String("party") != "":
		tasks, err = engine.TasksForParty(ctx, cmd.String("party"))
	case cmd.String("user") != "":
		tasks, err = engine.TasksForUser(ctx, cmd.String("user"))
	default:
		tasks, err = engine.ListTasks(ctx)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tasks, true)
	}

	for _, t := range tasks {
		r.writePlain("%s %s  %-24s %4d pts  party %s\n", ui.Check(t.Completed), t.ID, t.Name, t.Points, t.PartyID)
	}
	return nil
}

func (r *Runner) TaskCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	task, err := r.coord.Tasks().CreateTask(ctx, party.TaskSpec{
		Name:           cmd.String("name"),
		Description:    cmd.String("description"),
		Points:         cmd.Int("points"),
		PartyID:        cmd.String("party"),
		AssignedUserID: cmd.String("user"),
		Completed:      cmd.Bool("completed"),
	})
	if err != nil {
		return err
	}
	return r.writePlain("%s Created task %s (%s)\n", ui.OK("✓"), task.Name, task.ID)
}

// TaskComplete flips the completion flag, recomputing the party's points.
func (r *Runner) TaskComplete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "task")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	engine := r.coord.Tasks()
	task, err := engine.GetTask(ctx, id)
	if err != nil {
		return err
	}

	task, err = engine.UpdateTask(ctx, id, party.TaskSpec{
		Name:           task.Name,
		Description:    task.Description,
		Points:         task.Points,
		PartyID:        task.PartyID,
		AssignedUserID: task.AssignedUserID,
		Completed:      !cmd.Bool("undo"),
	})
	if err != nil {
		return err
	}

	p, err := r.coord.GetParty(ctx, task.PartyID)
	if err != nil {
		return err
	}
	return r.writePlain("%s %s  %s now has %d points\n", ui.Check(task.Completed), task.Name, p.Name, p.Points)
}

func (r *Runner) TaskDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "task")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	if err := r.coord.Tasks().DeleteTask(ctx, id); err != nil {
		return err
	}
	return r.writePlain("%s Deleted task %s\n", ui.OK("✓"), id)
}
