package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Resolution errors. Every entity variant wraps [ErrNotFound].
	ErrNotFound         = fmt.Errorf("not found")
	ErrPartyNotFound    = fmt.Errorf("party %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrLocationNotFound = fmt.Errorf("location %w", ErrNotFound)
	ErrSongNotFound     = fmt.Errorf("song %w", ErrNotFound)
	ErrTaskNotFound     = fmt.Errorf("task %w", ErrNotFound)
	ErrFoodNotFound     = fmt.Errorf("food %w", ErrNotFound)

	// Reference errors: the id resolves but is not associated with the target.
	ErrInvalidReference  = fmt.Errorf("invalid reference")
	ErrSongNotInPlaylist = fmt.Errorf("song not in playlist: %w", ErrInvalidReference)

	// API and service errors
	ErrAPIRequest          = fmt.Errorf("API request failed")
	ErrUpstreamUnavailable = fmt.Errorf("upstream unavailable")
	ErrNoMediaMatch        = fmt.Errorf("no media match")
	ErrTimeout             = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
