package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/partyx/internal/catalog"
	"github.com/desertthunder/partyx/internal/party"
	"github.com/desertthunder/partyx/internal/repositories"
	"github.com/desertthunder/partyx/internal/ui"
	"github.com/urfave/cli/v3"
)

// Seed wipes every table and loads the sample data set.
//
// Point totals are never written directly: the completed tasks recompute them.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	if err := repositories.Reset(ctx, r.db); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}

	userIDs := make([]string, 0, 3)
	for _, spec := range []catalog.UserSpec{
		{Name: "John Doe", Email: "john@example.com", Password: "securepassword"},
		{Name: "Paul Rudd", Email: "paul@example.com", Password: "securepassword1"},
		{Name: "Tony Stark", Email: "tony@example.com", Password: "securepassword2"},
	} {
		user, err := r.catalog.CreateUser(ctx, spec)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", spec.Email, err)
		}
		userIDs = append(userIDs, user.ID)
	}

	for _, spec := range []catalog.LocationSpec{
		{Name: "Club X", Address: "123 Party Street", Cost: 700, Rating: 5, Capacity: 200},
		{Name: "Club Z", Address: "456 Party Street", Cost: 500, Rating: 3.2, Capacity: 150},
	} {
		if _, err := r.catalog.CreateLocation(ctx, spec); err != nil {
			return fmt.Errorf("failed to seed location %s: %w", spec.Name, err)
		}
	}

	for _, spec := range []catalog.FoodSpec{
		{Name: "Pizza", Price: 20, Rating: 4.5, PrepMinutes: 30},
		{Name: "Pasta", Price: 30, Rating: 5, PrepMinutes: 50},
		{Name: "Taco", Price: 50, Rating: 3.8, PrepMinutes: 90},
		{Name: "KFC", Price: 40, Rating: 4.9, PrepMinutes: 70},
	} {
		if _, err := r.catalog.CreateFood(ctx, spec); err != nil {
			return fmt.Errorf("failed to seed food %s: %w", spec.Name, err)
		}
	}

	party1, err := r.coord.CreateParty(ctx, party.PartySpec{Name: "Party1", Date: "12.05.2025", UserIDs: userIDs[:2]})
	if err != nil {
		return fmt.Errorf("failed to seed party: %w", err)
	}
	party2, err := r.coord.CreateParty(ctx, party.PartySpec{Name: "Party2", Date: "10.08.2025", UserIDs: userIDs[2:]})
	if err != nil {
		return fmt.Errorf("failed to seed party: %w", err)
	}

	for _, spec := range []party.TaskSpec{
		{Name: "Task 100 Points", Description: "An important task", Points: 100, PartyID: party1.ID, AssignedUserID: userIDs[0], Completed: true},
		{Name: "Task 200 Points", Description: "An even more important task", Points: 200, PartyID: party1.ID, AssignedUserID: userIDs[1], Completed: true},
		{Name: "Task 300 Points", Description: "Task for the second party", Points: 300, PartyID: party2.ID, AssignedUserID: userIDs[2], Completed: true},
	} {
		if _, err := r.coord.Tasks().CreateTask(ctx, spec); err != nil {
			return fmt.Errorf("failed to seed task %s: %w", spec.Name, err)
		}
	}

	r.logger.Info("database seeded", "users", 3, "locations", 2, "foods", 4, "parties", 2, "tasks", 3)
	r.writePlain("%s Seeded 3 users, 2 locations, 4 foods, 2 parties and 3 tasks\n", ui.OK("✓"))
	for _, id := range []string{party1.ID, party2.ID} {
		p, err := r.coord.GetParty(ctx, id)
		if err != nil {
			return err
		}
		r.writePlain("  %s  %s  %d points\n", p.ID, p.Name, p.Points)
	}
	return nil
}
