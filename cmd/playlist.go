package main

import (
	"context"
	"sync"

	"github.com/desertthunder/partyx/internal/party"
	"github.com/desertthunder/partyx/internal/ui"
	"github.com/urfave/cli/v3"
)

func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "party")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	songs, err := r.coord.Playlist(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, true)
	}

	for i, s := range songs {
		link := s.Link
		if link == "" {
			link = ui.Muted("no link")
		}
		r.writePlain("%d. %s  %s - %s  %s\n", i+1, s.ID, s.Artist, s.Title, link)
	}
	return nil
}

// PlaylistAdd adds a song; a failed lookup still adds it without a link.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "party")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	song, err := r.coord.AddSong(ctx, id, party.SongSpec{Title: cmd.String("title"), Artist: cmd.String("artist")})
	if err != nil {
		return err
	}

	if song.Link == "" {
		return r.writePlain("%s Added %s (%s) %s\n", ui.OK("✓"), song.Title, song.ID, ui.Warn("without a link"))
	}
	return r.writePlain("%s Added %s (%s) %s\n", ui.OK("✓"), song.Title, song.ID, song.Link)
}

func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	partyID, err := requireArg(cmd, "party")
	if err != nil {
		return err
	}
	songID, err := requireArg(cmd, "song")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	if err := r.coord.RemoveSong(ctx, partyID, songID); err != nil {
		return err
	}
	return r.writePlain("%s Removed %s\n", ui.OK("✓"), songID)
}

// PlaylistResolve streams per-song progress while links resolve, then prints the totals.
func (r *Runner) PlaylistResolve(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "party")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	opts := party.ResolveOpts{Workers: r.config.Media.Workers, RateLimit: r.config.Media.RateLimit}
	if cmd.IsSet("workers") {
		opts.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("rate") {
		opts.RateLimit = cmd.Float("rate")
	}

	progress := make(chan party.ProgressUpdate, 100)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.writePlain("%s\n", ui.Progress(update))
		}
	}()

	result, err := r.coord.ResolveMissingLinks(ctx, id, progress, opts)
	close(progress)
	wg.Wait()
	if err != nil {
		return err
	}

	return r.writePlain("\n%s resolved %d/%d, %d unmatched, %d failed\n",
		ui.Title("Done:"), result.Resolved, result.Total, result.Unmatched, result.Failed)
}
