package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/partyx/internal/shared"
)

// Chain tries each lookup in order and returns the first link found.
type Chain struct {
	lookups []MediaLookup
}

// NewChain creates a [Chain] over lookups in fallback order.
func NewChain(lookups ...MediaLookup) *Chain {
	return &Chain{lookups: lookups}
}

// Name joins the provider names, e.g. "YouTube>Spotify".
func (c *Chain) Name() string {
	names := make([]string, len(c.lookups))
	for i, l := range c.lookups {
		names[i] = l.Name()
	}
	return strings.Join(names, ">")
}

// SearchLink asks each provider in turn.
//
// When every provider reports no match the result wraps [shared.ErrNoMediaMatch];
// if any provider failed otherwise it wraps [shared.ErrUpstreamUnavailable].
func (c *Chain) SearchLink(ctx context.Context, title, artist string) (string, error) {
	if len(c.lookups) == 0 {
		return "", fmt.Errorf("%w: empty provider chain", shared.ErrUpstreamUnavailable)
	}

	var (
		errs   []error
		failed bool
	)

	for _, l := range c.lookups {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			failed = true
			break
		}

		link, err := l.SearchLink(ctx, title, artist)
		if err == nil && link != "" {
			return link, nil
		}
		if err == nil {
			err = fmt.Errorf("%w: %s returned an empty link", shared.ErrNoMediaMatch, l.Name())
		}
		if !errors.Is(err, shared.ErrNoMediaMatch) {
			failed = true
		}
		errs = append(errs, err)
	}

	if failed {
		return "", fmt.Errorf("%w: %w", shared.ErrUpstreamUnavailable, errors.Join(errs...))
	}
	return "", fmt.Errorf("%w: %w", shared.ErrNoMediaMatch, errors.Join(errs...))
}
