package views

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/shared"
)

// MaxRefinedAlbums is how many discography entries an artist page keeps, each with a
// per-album detail lookup.
const MaxRefinedAlbums = 10

// Artist builds the detail page for a catalog artist.
//
// The catalog entry is always returned when the artist exists, even if every provider fails.
// Discography is fetched only when the artist lookup found something; the page keeps the
// first [MaxRefinedAlbums] albums, refined concurrently, each falling back to its coarse
// entry. A canceled ctx yields ctx.Err() and no page.
func (e *Engine) Artist(ctx context.Context, id string, progress chan<- ProgressUpdate) (*models.ArtistPage, error) {
	artist, ok := e.catalog.Artist(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrArtistNotFound, id)
	}

	page := &models.ArtistPage{
		Artist:  artist,
		Albums:  []models.Album{},
		IsLiked: e.IsLiked(id),
	}

	if e.providers.Enricher != nil {
		e.sendProgress(progress, fetchArtistUpdate(artist.Name))
		page.Detail = e.providers.Enricher.SearchArtist(ctx, artist.Name)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	if page.Detail != nil && e.providers.Discography != nil {
		e.sendProgress(progress, fetchDiscographyUpdate(artist.Name))
		albums := e.providers.Discography.Discography(ctx, artist.Name)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page.Albums = e.refineAlbums(ctx, artist.Name, albums, progress)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("artist page assembled", "id", id, "enriched", page.Enriched(), "albums", len(page.Albums))
	e.sendProgress(progress, doneUpdate(page))
	return page, nil
}

// refineAlbums keeps the leading albums and replaces each with its detail record, keeping
// positions.
func (e *Engine) refineAlbums(ctx context.Context, artist string, albums []models.Album, progress chan<- ProgressUpdate) []models.Album {
	total := min(len(albums), MaxRefinedAlbums)
	result := make([]models.Album, total)
	copy(result, albums[:total])

	if total == 0 {
		return result
	}
	e.sendProgress(progress, refineAlbumsUpdate(0, total, ""))

	var (
		g         errgroup.Group
		completed atomic.Int32
	)
	for i := range total {
		g.Go(func() error {
			refined := e.providers.Discography.AlbumDetail(ctx, artist, albums[i])
			if refined.Title != "" {
				result[i] = refined
			}
			step := completed.Add(1)
			e.sendProgress(progress, refineAlbumsUpdate(int(step), total, result[i].Title))
			return nil
		})
	}
	_ = g.Wait()
	return result
}

// LiveEvents returns upcoming events for a catalog artist from the event provider.
func (e *Engine) LiveEvents(ctx context.Context, artistID string, progress chan<- ProgressUpdate) ([]models.Event, error) {
	artist, ok := e.catalog.Artist(artistID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrArtistNotFound, artistID)
	}

	events := []models.Event{}
	if e.providers.Events != nil {
		e.sendProgress(progress, fetchEventsUpdate(artist.Name))
		if found := e.providers.Events.ArtistEvents(ctx, artist.Name); found != nil {
			events = found
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	e.sendProgress(progress, doneUpdate(events))
	return events, nil
}
