package views

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/soundcheck/internal/catalog"
	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/services"
	"github.com/desertthunder/soundcheck/internal/shared"
)

// ArtistEnricher looks up biography and metadata for an artist by name.
type ArtistEnricher interface {
	SearchArtist(ctx context.Context, name string) *models.ArtistDetail
}

// DiscographySource lists an artist's albums and refines a single album entry.
//
// AlbumDetail must return coarse unchanged when no better record is available.
type DiscographySource interface {
	Discography(ctx context.Context, name string) []models.Album
	AlbumDetail(ctx context.Context, artist string, coarse models.Album) models.Album
}

// ImageSource resolves an artist image URL by name.
type ImageSource interface {
	ArtistImage(ctx context.Context, name string) string
}

// EventSource lists upcoming events for an artist by name.
type EventSource interface {
	ArtistEvents(ctx context.Context, name string) []models.Event
}

// Providers groups the external lookups used for enrichment.
// A nil provider behaves like one that never finds anything.
type Providers struct {
	Enricher    ArtistEnricher
	Discography DiscographySource
	Images      ImageSource
	Events      EventSource
}

// ProvidersFromGateway wires the gateway clients into their enrichment roles.
func ProvidersFromGateway(g *services.Gateway) Providers {
	return Providers{
		Enricher:    g.AudioDB,
		Discography: g.AudioDB,
		Images:      g.Bandsintown,
		Events:      g.Bandsintown,
	}
}

// Engine assembles view models from the catalog, the preference store and the providers.
type Engine struct {
	catalog   *catalog.Catalog
	store     models.PreferenceStore
	providers Providers
	logger    *log.Logger
}

// NewEngine creates a new Engine with the provided dependencies.
func NewEngine(cat *catalog.Catalog, store models.PreferenceStore, providers Providers, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{catalog: cat, store: store, providers: providers, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func (e *Engine) likedSet() map[string]bool {
	ids := e.store.LikedArtistIDs()
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Artists returns the catalog decorated with liked status, keeping catalog order.
//
// search filters case-insensitively on name or genre; an empty search matches everything.
func (e *Engine) Artists(search string) []models.ArtistView {
	liked := e.likedSet()
	artists := e.catalog.Artists()

	views := make([]models.ArtistView, 0, len(artists))
	for _, a := range artists {
		if search != "" && !models.ContainsFold(a.Name, search) && !models.ContainsFold(a.Genre, search) {
			continue
		}
		views = append(views, models.ArtistView{Artist: a, IsLiked: liked[a.ID]})
	}
	return views
}

// LikedArtists returns the catalog entries of liked artists in stored order.
// Liked ids with no catalog entry are skipped.
func (e *Engine) LikedArtists() []models.Artist {
	ids := e.store.LikedArtistIDs()
	artists := make([]models.Artist, 0, len(ids))
	for _, id := range ids {
		if a, ok := e.catalog.Artist(id); ok {
			artists = append(artists, a)
		}
	}
	return artists
}

// IsLiked reports whether id is in the stored liked set.
func (e *Engine) IsLiked(id string) bool {
	return slices.Contains(e.store.LikedArtistIDs(), id)
}

// Like adds id to the liked set.
func (e *Engine) Like(id string) error {
	return e.setLiked(id, true)
}

// Unlike removes id from the liked set.
func (e *Engine) Unlike(id string) error {
	return e.setLiked(id, false)
}

// ToggleLike flips the liked status of id and returns the new status.
func (e *Engine) ToggleLike(id string) (bool, error) {
	liked := !e.IsLiked(id)
	if err := e.setLiked(id, liked); err != nil {
		return !liked, err
	}
	return liked, nil
}

// setLiked adds or removes id against the stored order, leaving every other id in place.
func (e *Engine) setLiked(id string, liked bool) error {
	if _, ok := e.catalog.Artist(id); !ok {
		return fmt.Errorf("%w: %s", shared.ErrArtistNotFound, id)
	}

	stored := e.store.LikedArtistIDs()
	ids := slices.DeleteFunc(slices.Clone(stored), func(s string) bool { return s == id })
	if liked {
		if len(ids) < len(stored) {
			return nil
		}
		ids = append(ids, id)
	} else if len(ids) == len(stored) {
		return nil
	}

	if err := e.store.SetLikedArtistIDs(ids); err != nil {
		return err
	}
	e.logger.Debug("liked artists updated", "id", id, "liked", liked, "count", len(ids))
	return nil
}

// Events returns the event catalog, each event decorated with the first note attached to it.
//
// search filters case-insensitively on event title, artist name or venue city.
func (e *Engine) Events(search string) []models.EventView {
	notes := e.store.Notes()
	events := e.catalog.Events()

	views := make([]models.EventView, 0, len(events))
	for _, ev := range events {
		if search != "" &&
			!models.ContainsFold(ev.Title, search) &&
			!models.ContainsFold(ev.ArtistName, search) &&
			!models.ContainsFold(ev.Venue.City, search) {
			continue
		}

		view := models.EventView{Event: ev}
		for i := range notes {
			if notes[i].EventID == ev.ID {
				n := notes[i]
				view.Note = &n
				break
			}
		}
		views = append(views, view)
	}
	return views
}

// Notes returns stored notes joined with their events, in stored order.
//
// Notes whose event is not in the catalog are left out. search filters case-insensitively on
// note content, event title or artist name.
func (e *Engine) Notes(search string) []models.NoteView {
	notes := e.store.Notes()

	views := make([]models.NoteView, 0, len(notes))
	for _, n := range notes {
		ev, ok := e.catalog.Event(n.EventID)
		if !ok {
			continue
		}
		if search != "" &&
			!models.ContainsFold(n.Content, search) &&
			!models.ContainsFold(ev.Title, search) &&
			!models.ContainsFold(ev.ArtistName, search) {
			continue
		}
		views = append(views, models.NoteView{Note: n, Event: ev})
	}
	return views
}

// Event returns the catalog event id decorated with its note.
func (e *Engine) Event(id string) (models.EventView, error) {
	ev, ok := e.catalog.Event(id)
	if !ok {
		return models.EventView{}, fmt.Errorf("%w: %s", shared.ErrEventNotFound, id)
	}

	view := models.EventView{Event: ev}
	for _, n := range e.store.Notes() {
		if n.EventID == id {
			view.Note = &n
			break
		}
	}
	return view, nil
}
