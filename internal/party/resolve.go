package party

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultResolveWorkers = 4
	maxResolveWorkers     = 10
	defaultResolveRate    = 5.0
)

// ResolveOpts tunes [PlaylistManager.ResolveMissingLinks].
type ResolveOpts struct {
	Workers   int     // Concurrent lookups, clamped to 1..10 (default: 4)
	RateLimit float64 // Lookups started per second (default: 5)
}

// SongResult is the outcome for one song.
type SongResult struct {
	SongID string `json:"songId"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Link   string `json:"link,omitempty"`
	Error  error  `json:"-"`
}

// ResolveResult summarizes a bulk resolution.
type ResolveResult struct {
	PartyID   string       `json:"partyId"`
	Total     int          `json:"total"`
	Resolved  int          `json:"resolved"`
	Unmatched int          `json:"unmatched"`
	Failed    int          `json:"failed"`
	Results   []SongResult `json:"results"`
}

// ResolveMissingLinks looks up links for every playlist song stored without one.
//
// Lookups run on a bounded worker pool paced by a token bucket. Individual failures are counted in the
// result and never abort the run; cancelling ctx stops dispatching and returns what finished.
func (m *PlaylistManager) ResolveMissingLinks(ctx context.Context, partyID string, progress chan<- ProgressUpdate, opts ResolveOpts) (*ResolveResult, error) {
	if m.lookup == nil {
		return nil, fmt.Errorf("%w: no media lookup configured", shared.ErrUpstreamUnavailable)
	}

	if opts.Workers <= 0 {
		opts.Workers = defaultResolveWorkers
	}
	if opts.Workers > maxResolveWorkers {
		opts.Workers = maxResolveWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultResolveRate
	}

	party, err := m.parties.Get(ctx, partyID)
	if err != nil {
		return nil, err
	}

	songs, err := m.playlistSongs(ctx, party)
	if err != nil {
		return nil, err
	}

	missing := make([]*models.Song, 0, len(songs))
	for _, s := range songs {
		if s.Link == "" {
			missing = append(missing, s)
		}
	}

	result := &ResolveResult{PartyID: partyID, Total: len(missing), Results: make([]SongResult, 0, len(missing))}
	sendProgress(progress, loadPlaylistUpdate(party.Name, len(missing)))

	if len(missing) == 0 {
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan *models.Song, len(missing))
	results := make(chan SongResult, len(missing))

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go m.resolveWorker(ctx, &wg, jobs, results)
	}

	go func() {
		defer close(jobs)
		for _, s := range missing {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			jobs <- s
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		switch {
		case res.Error != nil:
			result.Failed++
		case res.Link == "":
			result.Unmatched++
		default:
			result.Resolved++
		}

		sendProgress(progress, resolvedUpdate(completed, len(missing), res))
	}

	m.logger.Info("link resolution finished", "party", partyID,
		"resolved", result.Resolved, "unmatched", result.Unmatched, "failed", result.Failed)
	return result, nil
}

func (m *PlaylistManager) resolveWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan *models.Song, results chan<- SongResult) {
	defer wg.Done()

	for song := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- m.resolveSong(ctx, song)
	}
}

func (m *PlaylistManager) resolveSong(ctx context.Context, song *models.Song) SongResult {
	res := SongResult{SongID: song.ID, Title: song.Title, Artist: song.Artist}

	link, err := m.lookup.SearchLink(ctx, song.Title, song.Artist)
	if errors.Is(err, shared.ErrNoMediaMatch) {
		return res
	}
	if err != nil {
		res.Error = err
		return res
	}
	if link == "" {
		return res
	}

	song.Link = link
	if err := m.songs.Update(ctx, song); err != nil {
		res.Error = fmt.Errorf("failed to store link: %w", err)
		return res
	}

	res.Link = link
	return res
}
