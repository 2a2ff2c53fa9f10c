package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/partyx/internal/shared"
	"golang.org/x/time/rate"
)

// RateLimited throttles calls to the wrapped lookup with a token bucket shared by all callers.
type RateLimited struct {
	next    MediaLookup
	limiter *rate.Limiter
}

// NewRateLimited allows perSecond lookups with the given burst. A non-positive perSecond disables the limit.
func NewRateLimited(next MediaLookup, perSecond float64, burst int) *RateLimited {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (r *RateLimited) Name() string { return r.next.Name() }

// SearchLink waits for a token, then delegates. A context that ends while waiting yields [shared.ErrTimeout].
func (r *RateLimited) SearchLink(ctx context.Context, title, artist string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limiter: %v", shared.ErrTimeout, err)
	}
	return r.next.SearchLink(ctx, title, artist)
}
