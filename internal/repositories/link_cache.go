package repositories

import (
	"context"

	"github.com/desertthunder/partyx/internal/shared"
)

// LinkCache implements services.LinkStore using [SongRepository].
//
// Songs already stored with a resolved link answer later lookups for the same normalized title and artist,
// so the upstream lookup only runs for songs never resolved before.
type LinkCache struct {
	repo *SongRepository
}

// NewLinkCache creates a new LinkCache with the given repository
func NewLinkCache(repo *SongRepository) *LinkCache {
	return &LinkCache{repo: repo}
}

// CachedLink returns a previously resolved link for title and artist, if any.
func (c *LinkCache) CachedLink(ctx context.Context, title, artist string) (string, bool, error) {
	return c.repo.FindLink(ctx, shared.NormalizeSongKey(title, artist))
}
