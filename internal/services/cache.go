package services

import (
	"context"
)

// LinkStore returns links resolved earlier for the same song.
type LinkStore interface {
	CachedLink(ctx context.Context, title, artist string) (string, bool, error)
}

// Cached answers from a [LinkStore] before falling through to the wrapped lookup.
//
// Store errors are treated as misses.
type Cached struct {
	next  MediaLookup
	store LinkStore
}

// NewCached creates a [Cached] lookup.
func NewCached(next MediaLookup, store LinkStore) *Cached {
	return &Cached{next: next, store: store}
}

func (c *Cached) Name() string { return c.next.Name() }

func (c *Cached) SearchLink(ctx context.Context, title, artist string) (string, error) {
	if link, ok, err := c.store.CachedLink(ctx, title, artist); err == nil && ok {
		return link, nil
	}
	return c.next.SearchLink(ctx, title, artist)
}
