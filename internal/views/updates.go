package views

import "fmt"

// ProgressUpdate represents a progress event during a long-running lookup.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Lookup phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Lookup phase enumeration
type Phase int

const (
	FetchArtist Phase = iota
	FetchDiscography
	RefineAlbums
	FetchImages
	FetchEvents
	Done
)

func (p Phase) String() string {
	switch p {
	case FetchArtist:
		return "fetch_artist"
	case FetchDiscography:
		return "fetch_discography"
	case RefineAlbums:
		return "refine_albums"
	case FetchImages:
		return "fetch_images"
	case FetchEvents:
		return "fetch_events"
	case Done:
		return "done"
	default:
		return ""
	}
}

func fetchArtistUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchArtist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Looking up %s...", name),
	}
}

func fetchDiscographyUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDiscography,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching discography for %s...", name),
	}
}

func refineAlbumsUpdate(step, total int, title string) ProgressUpdate {
	if title == "" {
		return ProgressUpdate{
			Phase:   RefineAlbums,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("Fetching details for %d albums...", total),
		}
	}
	return ProgressUpdate{
		Phase:   RefineAlbums,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, title),
	}
}

func fetchImageUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchImages,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Image for %s", step, total, name),
	}
}

func fetchEventsUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchEvents,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching upcoming events for %s...", name),
	}
}

func doneUpdate(data any) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: "Done",
		Data:    data,
	}
}
