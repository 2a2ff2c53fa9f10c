package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/desertthunder/partyx/internal/shared"
)

// MediaLookup resolves a song's title and artist to a playable media link.
//
// Implementations return [shared.ErrNoMediaMatch] when the provider answered but found nothing,
// and any other error when the provider could not be reached or misbehaved.
type MediaLookup interface {
	// SearchLink returns the best matching link for title and artist.
	SearchLink(ctx context.Context, title, artist string) (string, error)

	// Name returns the name of the provider (e.g., "YouTube", "Spotify")
	Name() string
}

// Track is a provider search hit.
type Track struct {
	ID       string
	Title    string
	Artist   string
	Link     string
	Provider string
}

// NewLookup builds the configured lookup stack:
// providers in fallback order, rate limited, bounded by the media timeout and fronted by store when caching is enabled.
//
// Providers without credentials are skipped. With none left the returned lookup always fails with
// [shared.ErrUpstreamUnavailable], which callers absorb as "no link".
func NewLookup(creds shared.CredentialsConfig, media shared.MediaConfig, store LinkStore, client *http.Client) (MediaLookup, error) {
	var lookups []MediaLookup

	for _, name := range media.Providers {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "youtube":
			yt, err := NewYouTubeService(creds.YouTube.APIKey, creds.YouTube.BaseURL, client)
			if errors.Is(err, shared.ErrMissingConfig) {
				continue
			}
			if err != nil {
				return nil, err
			}
			lookups = append(lookups, yt)
		case "spotify":
			sp, err := NewSpotifyService(creds.Spotify, client)
			if errors.Is(err, shared.ErrMissingConfig) {
				continue
			}
			if err != nil {
				return nil, err
			}
			lookups = append(lookups, sp)
		default:
			return nil, fmt.Errorf("%w: unknown media provider %q", shared.ErrInvalidConfig, name)
		}
	}

	var lookup MediaLookup
	if len(lookups) == 0 {
		lookup = Unavailable{}
	} else {
		lookup = NewChain(lookups...)
	}

	lookup = NewRateLimited(lookup, media.RateLimit, 1)
	lookup = WithTimeout(lookup, media.Timeout)

	if media.Cache && store != nil {
		lookup = NewCached(lookup, store)
	}

	return lookup, nil
}

// Unavailable is the lookup used when no provider is configured.
type Unavailable struct{}

func (Unavailable) Name() string { return "none" }

func (Unavailable) SearchLink(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: no media providers configured", shared.ErrUpstreamUnavailable)
}

type timed struct {
	next    MediaLookup
	timeout time.Duration
}

// WithTimeout bounds every lookup by d. A non-positive d returns next unchanged.
func WithTimeout(next MediaLookup, d time.Duration) MediaLookup {
	if d <= 0 {
		return next
	}
	return &timed{next: next, timeout: d}
}

func (t *timed) Name() string { return t.next.Name() }

func (t *timed) SearchLink(ctx context.Context, title, artist string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	link, err := t.next.SearchLink(ctx, title, artist)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w: %s lookup exceeded %s", shared.ErrTimeout, t.next.Name(), t.timeout)
	}
	return link, err
}

func searchQuery(title, artist string) string {
	return strings.TrimSpace(strings.TrimSpace(title) + " " + strings.TrimSpace(artist))
}
