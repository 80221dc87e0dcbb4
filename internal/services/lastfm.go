// Last.fm API 2.0 implementation
//
// Response types based on https://www.last.fm/api/show/artist.getInfo
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/shared"
)

const (
	lastfmBaseURL  = "http://ws.audioscrobbler.com/2.0/"
	lastfmWebURL   = "https://www.last.fm/music/"
	lastfmProvider = "lastfm"

	// maxConcurrentInfo bounds the parallel lookups made by MultipleArtistInfo.
	maxConcurrentInfo = 8
)

type lastfmImage struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

type lastfmTag struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type lastfmSimilarArtist struct {
	Name  string        `json:"name"`
	URL   string        `json:"url"`
	Image []lastfmImage `json:"image"`
}

// lastfmTags and lastfmSimilar tolerate Last.fm sending "" in place of an empty container.
type lastfmTags struct {
	Tag oneOrMany[lastfmTag] `json:"tag"`
}

func (t *lastfmTags) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		return nil
	}
	type plain lastfmTags
	return json.Unmarshal(data, (*plain)(t))
}

type lastfmSimilar struct {
	Artist oneOrMany[lastfmSimilarArtist] `json:"artist"`
}

func (s *lastfmSimilar) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		return nil
	}
	type plain lastfmSimilar
	return json.Unmarshal(data, (*plain)(s))
}

// LastFMArtist represents an artist record from artist.getinfo or artist.search.
type LastFMArtist struct {
	Name      string        `json:"name"`
	MBID      string        `json:"mbid"`
	URL       string        `json:"url"`
	Listeners flexInt       `json:"listeners"`
	Image     []lastfmImage `json:"image"`
	Stats     struct {
		Listeners flexInt `json:"listeners"`
		Playcount flexInt `json:"playcount"`
	} `json:"stats"`
	Bio struct {
		Summary string `json:"summary"`
		Content string `json:"content"`
	} `json:"bio"`
	Tags    lastfmTags    `json:"tags"`
	Similar lastfmSimilar `json:"similar"`
}

// LastFMAlbum represents an entry of artist.gettopalbums.
type LastFMAlbum struct {
	Name      string        `json:"name"`
	MBID      string        `json:"mbid"`
	URL       string        `json:"url"`
	Playcount flexInt       `json:"playcount"`
	Image     []lastfmImage `json:"image"`
}

// LastFMTrack represents an entry of artist.gettoptracks.
type LastFMTrack struct {
	Name      string  `json:"name"`
	MBID      string  `json:"mbid"`
	URL       string  `json:"url"`
	Playcount flexInt `json:"playcount"`
	Listeners flexInt `json:"listeners"`
}

type lastfmErrorPayload struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// LastFMService is a read-only client for the Last.fm artist methods.
type LastFMService struct {
	apiKey     string
	baseURL    string
	httpClient httpDoer
	logger     *log.Logger
}

// NewLastFMService creates a new Last.fm client. An empty key is accepted;
// every call then degrades to the empty result.
func NewLastFMService(cfg ProviderConfig) *LastFMService {
	return &LastFMService{
		apiKey:     cfg.Key,
		baseURL:    cfg.baseURL(lastfmBaseURL),
		httpClient: cfg.client(),
		logger:     cfg.logger(lastfmProvider),
	}
}

// Configured reports whether an API key is set.
func (s *LastFMService) Configured() bool {
	return s.apiKey != ""
}

func (s *LastFMService) methodURL(method string, params url.Values) string {
	params.Set("method", method)
	params.Set("api_key", s.apiKey)
	params.Set("format", "json")
	return s.baseURL + "?" + params.Encode()
}

// call fetches a Last.fm method and decodes it into result.
//
// Error payloads sent with a 2xx status are returned as [*ProviderError].
func (s *LastFMService) call(ctx context.Context, method string, params url.Values, result any) error {
	if !s.Configured() {
		return shared.ErrMissingCredentials
	}

	body, err := doRequest(ctx, s.httpClient, lastfmProvider, s.methodURL(method, params))
	if err != nil {
		return err
	}

	var payload lastfmErrorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != 0 {
		return &ProviderError{Provider: lastfmProvider, Code: payload.Error, Message: payload.Message}
	}
	return decodeJSON(body, result)
}

// identify selects the mbid parameter when one is known, the artist name otherwise.
func identify(name, mbid string) url.Values {
	if mbid != "" {
		return url.Values{"mbid": {mbid}}
	}
	return url.Values{"artist": {name}}
}

// SearchArtists returns artists matching query, or nil when the search fails.
func (s *LastFMService) SearchArtists(ctx context.Context, query string) []models.ArtistSummary {
	var result struct {
		Results struct {
			ArtistMatches struct {
				Artist oneOrMany[LastFMArtist] `json:"artist"`
			} `json:"artistmatches"`
		} `json:"results"`
	}

	if err := s.call(ctx, "artist.search", url.Values{"artist": {query}}, &result); err != nil {
		logFailure(s.logger, "artist.search", err)
		return nil
	}

	matches := result.Results.ArtistMatches.Artist
	summaries := make([]models.ArtistSummary, 0, len(matches))
	for _, a := range matches {
		summaries = append(summaries, a.toSummary())
	}
	return summaries
}

// ArtistInfo returns the Last.fm record for an artist name, or nil when the lookup fails.
func (s *LastFMService) ArtistInfo(ctx context.Context, nameOrMBID string) *models.ArtistInfo {
	var result struct {
		Artist *LastFMArtist `json:"artist"`
	}

	if err := s.call(ctx, "artist.getinfo", url.Values{"artist": {nameOrMBID}}, &result); err != nil {
		logFailure(s.logger, "artist.getinfo", err)
		return nil
	}
	if result.Artist == nil {
		return nil
	}

	info := result.Artist.toInfo()
	return &info
}

// RawArtistInfo returns the artist.getinfo response body exactly as received.
//
// Unlike the other methods it reports failures to the caller: [shared.ErrMissingCredentials]
// when no key is set, [*StatusError] for non-2xx responses, and [shared.ErrMalformedResponse]
// when the body is not JSON. Last.fm error payloads are returned as-is.
func (s *LastFMService) RawArtistInfo(ctx context.Context, query string) ([]byte, error) {
	if !s.Configured() {
		return nil, shared.ErrMissingCredentials
	}

	body, err := doRequest(ctx, s.httpClient, lastfmProvider, s.methodURL("artist.getinfo", url.Values{"artist": {query}}))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, shared.ErrMalformedResponse
	}
	return body, nil
}

// TopAlbums returns the artist's most played albums, or nil when the lookup fails.
func (s *LastFMService) TopAlbums(ctx context.Context, name, mbid string) []models.ChartAlbum {
	var result struct {
		TopAlbums struct {
			Album oneOrMany[LastFMAlbum] `json:"album"`
		} `json:"topalbums"`
	}

	if err := s.call(ctx, "artist.gettopalbums", identify(name, mbid), &result); err != nil {
		logFailure(s.logger, "artist.gettopalbums", err)
		return nil
	}

	albums := make([]models.ChartAlbum, 0, len(result.TopAlbums.Album))
	for _, a := range result.TopAlbums.Album {
		albums = append(albums, models.ChartAlbum{
			Name:      a.Name,
			MBID:      a.MBID,
			URL:       a.URL,
			Playcount: int(a.Playcount),
			Image:     largestImage(a.Image),
		})
	}
	return albums
}

// TopTracks returns the artist's most played tracks, or nil when the lookup fails.
func (s *LastFMService) TopTracks(ctx context.Context, name, mbid string) []models.ChartTrack {
	var result struct {
		TopTracks struct {
			Track oneOrMany[LastFMTrack] `json:"track"`
		} `json:"toptracks"`
	}

	if err := s.call(ctx, "artist.gettoptracks", identify(name, mbid), &result); err != nil {
		logFailure(s.logger, "artist.gettoptracks", err)
		return nil
	}

	tracks := make([]models.ChartTrack, 0, len(result.TopTracks.Track))
	for _, t := range result.TopTracks.Track {
		tracks = append(tracks, models.ChartTrack{
			Name:      t.Name,
			MBID:      t.MBID,
			URL:       t.URL,
			Playcount: int(t.Playcount),
			Listeners: int(t.Listeners),
		})
	}
	return tracks
}

// MultipleArtistInfo looks up every name concurrently and returns the records that were found, in input order.
func (s *LastFMService) MultipleArtistInfo(ctx context.Context, names []string) []models.ArtistInfo {
	if !s.Configured() {
		logFailure(s.logger, "artist.getinfo", shared.ErrMissingCredentials)
		return nil
	}

	found := make([]*models.ArtistInfo, len(names))
	var g errgroup.Group
	g.SetLimit(maxConcurrentInfo)
	for i, name := range names {
		g.Go(func() error {
			found[i] = s.ArtistInfo(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	infos := make([]models.ArtistInfo, 0, len(names))
	for _, info := range found {
		if info != nil {
			infos = append(infos, *info)
		}
	}
	return infos
}

// ArtistPageURL returns the Last.fm web page for an artist name.
func ArtistPageURL(name string) string {
	return lastfmWebURL + url.PathEscape(strings.ReplaceAll(name, " ", "+"))
}

func (a LastFMArtist) toSummary() models.ArtistSummary {
	return models.ArtistSummary{
		Name:      a.Name,
		MBID:      a.MBID,
		URL:       a.URL,
		Listeners: int(a.Listeners),
		Image:     largestImage(a.Image),
	}
}

func (a LastFMArtist) toInfo() models.ArtistInfo {
	info := models.ArtistInfo{
		Name:      a.Name,
		MBID:      a.MBID,
		URL:       a.URL,
		Listeners: int(a.Stats.Listeners),
		Playcount: int(a.Stats.Playcount),
		Summary:   strings.TrimSpace(a.Bio.Summary),
		Content:   strings.TrimSpace(a.Bio.Content),
		Image:     largestImage(a.Image),
	}
	if info.Listeners == 0 {
		info.Listeners = int(a.Listeners)
	}

	for _, t := range a.Tags.Tag {
		if t.Name != "" {
			info.Tags = append(info.Tags, t.Name)
		}
	}
	for _, sim := range a.Similar.Artist {
		info.Similar = append(info.Similar, models.ArtistSummary{
			Name:  sim.Name,
			URL:   sim.URL,
			Image: largestImage(sim.Image),
		})
	}
	return info
}

// largestImage returns the URL of the last non-empty image; Last.fm orders images from small to mega.
func largestImage(images []lastfmImage) string {
	for i := len(images) - 1; i >= 0; i-- {
		if images[i].URL != "" {
			return images[i].URL
		}
	}
	return ""
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}
