package party

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Phase identifies the stage of a bulk operation.
type Phase int

const (
	LoadPlaylist Phase = iota
	ResolveLinks
)

func (p Phase) String() string {
	switch p {
	case LoadPlaylist:
		return "load_playlist"
	case ResolveLinks:
		return "resolve_links"
	default:
		return ""
	}
}

// sendProgress sends without blocking; updates are dropped when nobody is listening.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func loadPlaylistUpdate(name string, missing int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadPlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d songs without a link in %s", missing, name),
	}
}

func resolvedUpdate(step, total int, res SongResult) ProgressUpdate {
	var msg string
	switch {
	case res.Error != nil:
		msg = fmt.Sprintf("[%d/%d] ✗ %s - %s: %v", step, total, res.Artist, res.Title, res.Error)
	case res.Link == "":
		msg = fmt.Sprintf("[%d/%d] ? %s - %s: no match", step, total, res.Artist, res.Title)
	default:
		msg = fmt.Sprintf("[%d/%d] ✓ %s - %s", step, total, res.Artist, res.Title)
	}

	return ProgressUpdate{
		Phase:   ResolveLinks,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    res,
	}
}
