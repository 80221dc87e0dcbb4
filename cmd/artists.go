package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/soundcheck/internal/formatter"
	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/services"
	"github.com/desertthunder/soundcheck/internal/shared"
	"github.com/desertthunder/soundcheck/internal/views"
	"github.com/urfave/cli/v3"
)

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return v, nil
}

func likedMark(liked bool) string {
	if liked {
		return "♥"
	}
	return " "
}

// ArtistsList prints the catalog, filtered by --search.
func (r *Runner) ArtistsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	artists := r.engine.Artists(cmd.String("search"))

	if cmd.Bool("images") && len(artists) > 0 {
		plain := make([]models.Artist, len(artists))
		for i, a := range artists {
			plain[i] = a.Artist
		}
		images := r.engine.ArtistImages(ctx, plain, views.ImageOpts{}, nil)
		for i := range artists {
			artists[i].Image = images[artists[i].ID]
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(artists, cmd.Bool("pretty"))
	}

	if len(artists) == 0 {
		return r.writePlain("No artists found\n")
	}
	for _, a := range artists {
		r.writePlain("%s %-3s %-20s %s\n", likedMark(a.IsLiked), a.ID, a.Name, a.Genre)
		if cmd.Bool("images") {
			r.writePlain("        %s\n", a.Image)
		}
	}
	return nil
}

// ArtistShow prints an artist page, reporting lookup progress as it goes.
func (r *Runner) ArtistShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	asJSON := cmd.Bool("json")

	progressCh := make(chan views.ProgressUpdate, 20)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if asJSON || update.Phase == views.Done {
				continue
			}
			switch update.Phase {
			case views.RefineAlbums:
				if update.Step == 0 {
					r.writePlain("💿 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			default:
				r.writePlain("📥 %s\n", update.Message)
			}
		}
	}()

	page, err := r.engine.Artist(ctx, id, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}
	if asJSON {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}
	return r.writeArtistPage(page)
}

func (r *Runner) writeArtistPage(page *models.ArtistPage) error {
	r.writePlain("\n")
	r.writePlainHeader(fmt.Sprintf("%s %s", page.Artist.Name, strings.TrimSpace(likedMark(page.IsLiked))))
	r.writePlain("Genre: %s\n", page.DisplayGenre())
	r.writePlain("Image: %s\n", page.DisplayImage())

	if !page.Enriched() {
		r.writePlainln("No additional information found for this artist.")
		return nil
	}

	d := page.Detail
	if d.Country != "" {
		r.writePlain("Country: %s\n", d.Country)
	}
	if d.FormedYear != "" {
		r.writePlain("Formed: %s\n", d.FormedYear)
	}
	if d.Website != "" {
		r.writePlain("Website: %s\n", d.Website)
	}
	if d.Biography != "" {
		r.writePlainln("%s", d.Biography)
	}

	if len(page.Albums) == 0 {
		return nil
	}
	r.writePlainln("Discography (%d)", len(page.Albums))
	for _, a := range page.Albums {
		year := a.YearReleased
		if year == "" {
			year = "----"
		}
		line := fmt.Sprintf("  %s  %s", year, a.Title)
		if a.Genre != "" {
			line += " · " + a.Genre
		}
		r.writePlain("%s\n", line)
	}
	return nil
}

// ArtistLike adds an artist to the liked set.
func (r *Runner) ArtistLike(ctx context.Context, cmd *cli.Command) error {
	return r.setLike(cmd, true)
}

// ArtistUnlike removes an artist from the liked set.
func (r *Runner) ArtistUnlike(ctx context.Context, cmd *cli.Command) error {
	return r.setLike(cmd, false)
}

func (r *Runner) setLike(cmd *cli.Command, liked bool) error {
	if err := r.requireEngine(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	if liked {
		err = r.engine.Like(id)
	} else {
		err = r.engine.Unlike(id)
	}
	if err != nil {
		return err
	}
	return r.writeLikeState(id, liked)
}

// ArtistToggle flips the like on an artist.
func (r *Runner) ArtistToggle(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	liked, err := r.engine.ToggleLike(id)
	if err != nil {
		return err
	}
	return r.writeLikeState(id, liked)
}

func (r *Runner) writeLikeState(id string, liked bool) error {
	artist, _ := r.catalog.Artist(id)
	if liked {
		return r.writePlain("♥ Liked %s\n", artist.Name)
	}
	return r.writePlain("✓ Removed %s from liked artists\n", artist.Name)
}

// ArtistsLiked prints or exports the liked artists in stored order.
func (r *Runner) ArtistsLiked(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	liked := r.engine.LikedArtists()
	return r.export(cmd, liked, len(liked), "liked artists")
}

// export renders data with --format and writes it to --output or stdout.
func (r *Runner) export(cmd *cli.Command, data any, count int, what string) error {
	format := cmd.String("format")

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(path, format, data); err != nil {
			return err
		}
		r.logger.Info("exported", "what", what, "format", format, "path", path, "count", count)
		return r.writePlain("✓ Exported %d %s to %s\n", count, what, path)
	}

	if count == 0 && format == formatter.FormatText {
		return r.writePlain("No %s\n", what)
	}

	out, err := formatter.Export(format, data)
	if err != nil {
		return err
	}
	return r.writeBytes(out)
}

// ArtistEvents prints upcoming Bandsintown events for a catalog artist.
func (r *Runner) ArtistEvents(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	events, err := r.engine.LiveEvents(ctx, id, nil)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(events, cmd.Bool("pretty"))
	}
	if len(events) == 0 {
		return r.writePlain("No upcoming events\n")
	}
	for _, e := range events {
		r.writeEvent(e)
	}
	return nil
}

func (r *Runner) writeEvent(e models.Event) {
	r.writePlain("%s\n", e.Title)
	r.writePlain("  %s\n", formatter.EventDate(e))
	r.writePlain("  %s, %s, %s\n", e.Venue.Name, e.Venue.City, e.Venue.Country)
	if e.URL != "" {
		r.writePlain("  %s\n", e.URL)
	}
}

// ArtistOpen opens the artist's Last.fm page in the system browser.
func (r *Runner) ArtistOpen(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	artist, ok := r.catalog.Artist(id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrArtistNotFound, id)
	}

	url := services.ArtistPageURL(artist.Name)
	if err := r.openURL(url); err != nil {
		return err
	}
	return r.writePlain("Opened %s\n", url)
}
