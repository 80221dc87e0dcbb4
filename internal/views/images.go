package views

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/services"
)

// ImageOpts contains configuration for bulk image lookups.
type ImageOpts struct {
	Workers   int     // Concurrent lookups (default: 5, max: 10)
	RateLimit float64 // Requests per second (default: 5)
}

func (o ImageOpts) withDefaults() ImageOpts {
	if o.Workers <= 0 {
		o.Workers = 5
	}
	if o.Workers > 10 {
		o.Workers = 10
	}
	if o.RateLimit <= 0 {
		o.RateLimit = 5.0
	}
	return o
}

// ArtistImages resolves a display image for every artist, keyed by artist id.
//
// Provider images that are empty or known placeholders are replaced by the catalog image.
// Lookups are paced by a rate limiter; once ctx is done the remaining artists keep their
// catalog image.
func (e *Engine) ArtistImages(ctx context.Context, artists []models.Artist, opts ImageOpts, progress chan<- ProgressUpdate) map[string]string {
	images := make(map[string]string, len(artists))
	for _, a := range artists {
		images[a.ID] = a.Image
	}
	if e.providers.Images == nil || len(artists) == 0 {
		return images
	}

	opts = opts.withDefaults()
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	var (
		g         errgroup.Group
		mu        sync.Mutex
		completed atomic.Int32
	)
	g.SetLimit(opts.Workers)

	for _, a := range artists {
		g.Go(func() error {
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}

			url := services.PreferredImage(e.providers.Images.ArtistImage(ctx, a.Name), a.Image)
			if url != "" && ctx.Err() == nil {
				mu.Lock()
				images[a.ID] = url
				mu.Unlock()
			}

			step := completed.Add(1)
			e.sendProgress(progress, fetchImageUpdate(int(step), len(artists), a.Name))
			return nil
		})
	}
	_ = g.Wait()

	e.logger.Debug("artist images resolved", "count", len(artists))
	return images
}
