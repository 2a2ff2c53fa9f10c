package main

import (
	"context"

	"github.com/desertthunder/partyx/internal/formatter"
	"github.com/desertthunder/partyx/internal/ui"
	"github.com/urfave/cli/v3"
)

// Export writes a party plan to disk.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "party")
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
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

	result, err := formatter.Write(plan, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("plan exported", "party", id, "format", format, "files", len(result.Files))
	for _, f := range result.Files {
		r.writePlain("%s %s\n", ui.OK("✓"), f)
	}
	return nil
}
