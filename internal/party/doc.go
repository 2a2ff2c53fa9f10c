// Package party implements party coordination: matching venues, assembling the playlist and scoring tasks.
//
// # Components
//
//   - [LocationMatcher] : filters venues by rating, cost and capacity and assigns one to a party
//   - [PlaylistManager] : adds and removes songs, resolving media links through services.MediaLookup
//   - [TaskEngine] : task CRUD; keeps each party's point total equal to [PointTotal] of its tasks
//   - [Coordinator] : composes the above and owns party CRUD and membership
//
// Every operation resolves the party first and fails with an error wrapping shared.ErrNotFound when it
// does not exist. Media lookup failures never fail an operation: the song is stored without a link.
//
// # Bulk Link Resolution
//
// [PlaylistManager.ResolveMissingLinks] retries lookups for songs stored without a link using a bounded worker
// pool paced by a rate limiter. Progress is reported on an optional channel with non-blocking sends.
package party
