package main

import (
	"context"
	"strings"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/urfave/cli/v3"
)

// orEmpty keeps degraded lookups printing [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// LookupSearch prints Last.fm artist search matches.
func (r *Runner) LookupSearch(ctx context.Context, cmd *cli.Command) error {
	query, err := requireArg(cmd, "query")
	if err != nil {
		return err
	}

	r.logger.Debug("searching Last.fm", "query", query)
	return r.writeJSON(orEmpty(r.gateway.LastFM.SearchArtists(ctx, query)), cmd.Bool("pretty"))
}

// LookupInfo prints Last.fm artist info. With --also every name is looked up concurrently;
// with --raw the upstream body is printed unchanged.
func (r *Runner) LookupInfo(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}

	if cmd.Bool("raw") {
		body, err := r.gateway.LastFM.RawArtistInfo(ctx, name)
		if err != nil {
			return err
		}
		return r.writeBytes(body)
	}

	if also := cmd.StringSlice("also"); len(also) > 0 {
		names := []string{name}
		for _, n := range also {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		return r.writeJSON(orEmpty(r.gateway.LastFM.MultipleArtistInfo(ctx, names)), cmd.Bool("pretty"))
	}

	info := r.gateway.LastFM.ArtistInfo(ctx, name)
	return r.writeJSON(info, cmd.Bool("pretty"))
}

// LookupImage prints the Bandsintown image for an artist, or an empty string.
func (r *Runner) LookupImage(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}

	return r.writeJSON(map[string]string{
		"name":  name,
		"image": r.gateway.Bandsintown.ArtistImage(ctx, name),
	}, cmd.Bool("pretty"))
}

// LookupTopAlbums prints Last.fm top albums.
func (r *Runner) LookupTopAlbums(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	return r.writeJSON(orEmpty(r.gateway.LastFM.TopAlbums(ctx, name, cmd.String("mbid"))), cmd.Bool("pretty"))
}

// LookupTopTracks prints Last.fm top tracks.
func (r *Runner) LookupTopTracks(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	return r.writeJSON(orEmpty(r.gateway.LastFM.TopTracks(ctx, name, cmd.String("mbid"))), cmd.Bool("pretty"))
}

// LookupDiscography prints the TheAudioDB discography.
func (r *Runner) LookupDiscography(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	return r.writeJSON(orEmpty(r.gateway.AudioDB.Discography(ctx, name)), cmd.Bool("pretty"))
}

// LookupAlbum prints the TheAudioDB detail record for one album. When nothing is found the
// bare album title is printed back with refined=false.
func (r *Runner) LookupAlbum(ctx context.Context, cmd *cli.Command) error {
	artist, err := requireArg(cmd, "artist")
	if err != nil {
		return err
	}
	title, err := requireArg(cmd, "album")
	if err != nil {
		return err
	}

	album := r.gateway.AudioDB.AlbumDetail(ctx, artist, models.Album{Title: title, Artist: artist})
	return r.writeJSON(album, cmd.Bool("pretty"))
}

// LookupEvents prints upcoming Bandsintown events.
func (r *Runner) LookupEvents(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	return r.writeJSON(orEmpty(r.gateway.Bandsintown.ArtistEvents(ctx, name)), cmd.Bool("pretty"))
}
