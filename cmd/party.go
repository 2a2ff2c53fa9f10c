package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/partyx/internal/party"
	"github.com/desertthunder/partyx/internal/shared"
	"github.com/desertthunder/partyx/internal/ui"
	"github.com/urfave/cli/v3"
)

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: <%s> is required", shared.ErrMissingArgument, name)
	}
	return v, nil
}

// PartyList prints every party, optionally restricted to one member.
func (r *Runner) PartyList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	parties, err := r.coord.ListParties(ctx, cmd.String("user"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(parties, true)
	}

	if len(parties) == 0 {
		return r.writePlain("%s\n", ui.Muted("No parties"))
	}
	for _, p := range parties {
		r.writePlain("%s  %-20s %-12s %3d guests  %5d points\n", p.ID, p.Name, p.Date, len(p.UserIDs), p.Points)
	}
	return nil
}

// PartyShow prints the full plan of a party.
func (r *Runner) PartyShow(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "party")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	plan, err := r.coord.Plan(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(plan, true)
	}

	p := plan.Party
	r.writePlain("%s", ui.Header(p.Name))
	r.writePlain("Date:     %s\n", p.Date)
	if plan.Location != nil {
		r.writePlain("Location: %s, %s\n", plan.Location.Name, plan.Location.Address)
	} else {
		r.writePlain("Location: %s\n", ui.Muted("not assigned"))
	}
	r.writePlain("Points:   %d\n\n", p.Points)

	r.writePlain("%s\n", ui.Title(fmt.Sprintf("Guests (%d)", len(plan.Members))))
	for _, u := range plan.Members {
		r.writePlain("  %s <%s>\n", u.Name, u.Email)
	}

	r.writePlain("\n%s\n", ui.Title(fmt.Sprintf("Playlist (%d)", len(plan.Songs))))
	for i, s := range plan.Songs {
		link := s.Link
		if link == "" {
			link = ui.Muted("no link")
		}
		r.writePlain("  %d. %s - %s  %s\n", i+1, s.Artist, s.Title, link)
	}

	r.writePlain("\n%s\n", ui.Title(fmt.Sprintf("Tasks (%d)", len(plan.Tasks))))
	for _, t := range plan.Tasks {
		r.writePlain("  %s %s (%d pts)\n", ui.Check(t.Completed), t.Name, t.Points)
	}
	return nil
}

// PartyCreate creates a party from flags.
func (r *Runner) PartyCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	p, err := r.coord.CreateParty(ctx, party.PartySpec{
		Name:       cmd.String("name"),
		Date:       cmd.String("date"),
		UserIDs:    cmd.StringSlice("user"),
		LocationID: cmd.String("location"),
	})
	if err != nil {
		return err
	}

	return r.writePlain("%s Created party %s (%s)\n", ui.OK("✓"), p.Name, p.ID)
}

func (r *Runner) PartyDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "party")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	if err := r.coord.DeleteParty(ctx, id); err != nil {
		return err
	}
	return r.writePlain("%s Deleted party %s\n", ui.OK("✓"), id)
}

// PartyLocations lists venues matching the given bounds. Unset flags leave a bound open.
func (r *Runner) PartyLocations(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "party")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	var filter party.LocationFilter
	if cmd.IsSet("min-rating") {
		v := cmd.Float("min-rating")
		filter.MinRating = &v
	}
	if cmd.IsSet("max-cost") {
		v := cmd.Float("max-cost")
		filter.MaxCost = &v
	}
	if cmd.IsSet("min-capacity") {
		v := cmd.Int("min-capacity")
		filter.MinCapacity = &v
	}

	locations, err := r.coord.AvailableLocations(ctx, id, filter)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(locations, true)
	}

	if len(locations) == 0 {
		return r.writePlain("%s\n", ui.Muted("No matching locations"))
	}
	for _, l := range locations {
		r.writePlain("%s  %-20s rating %.1f  cost %8.2f  capacity %d\n", l.ID, l.Name, l.Rating, l.Cost, l.Capacity)
	}
	return nil
}

func (r *Runner) PartyAssign(ctx context.Context, cmd *cli.Command) error {
	partyID, err := requireArg(cmd, "party")
	if err != nil {
		return err
	}
	locationID, err := requireArg(cmd, "location")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	p, err := r.coord.AssignLocation(ctx, partyID, locationID)
	if err != nil {
		return err
	}
	return r.writePlain("%s %s is at location %s\n", ui.OK("✓"), p.Name, p.LocationID)
}

func (r *Runner) PartyUnassign(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "party")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	p, err := r.coord.RemoveLocation(ctx, id)
	if err != nil {
		return err
	}
	return r.writePlain("%s %s has no location\n", ui.OK("✓"), p.Name)
}

func (r *Runner) PartyScore(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "party")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	points, err := r.coord.Score(ctx, id)
	if err != nil {
		return err
	}
	return r.writePlain("%d\n", points)
}
