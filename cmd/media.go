package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/partyx/internal/shared"
	"github.com/desertthunder/partyx/internal/ui"
	"github.com/urfave/cli/v3"
)

// MediaSearch resolves a title and artist through the configured lookup chain.
func (r *Runner) MediaSearch(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	title, artist := cmd.String("title"), cmd.String("artist")
	link := r.coord.SearchMedia(ctx, title, artist)
	if link == "" {
		return r.writePlain("%s no link found for %s\n", ui.Warn("?"), title)
	}

	r.writePlain("%s\n", link)

	if cmd.Bool("open") {
		if err := shared.OpenLink(link); err != nil {
			return fmt.Errorf("failed to open link: %w", err)
		}
	}
	return nil
}
