// Bandsintown REST API implementation
//
// Response types based on https://app.swaggerhub.com/apis/Bandsintown/PublicAPI/3.0.1
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/shared"
)

const (
	bandsintownBaseURL  = "https://rest.bandsintown.com"
	bandsintownProvider = "bandsintown"
)

// BandsintownArtist represents an artist profile.
type BandsintownArtist struct {
	ID                 flexString `json:"id"`
	Name               string     `json:"name"`
	URL                string     `json:"url"`
	MBID               string     `json:"mbid"`
	ImageURL           string     `json:"image_url"`
	ThumbURL           string     `json:"thumb_url"`
	FacebookPageURL    string     `json:"facebook_page_url"`
	TrackerCount       flexInt    `json:"tracker_count"`
	UpcomingEventCount flexInt    `json:"upcoming_event_count"`
}

// BandsintownVenue represents the venue of an event.
type BandsintownVenue struct {
	Name      string `json:"name"`
	City      string `json:"city"`
	Region    string `json:"region"`
	Country   string `json:"country"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// BandsintownEvent represents an upcoming event.
type BandsintownEvent struct {
	ID          flexString         `json:"id"`
	ArtistID    flexString         `json:"artist_id"`
	URL         string             `json:"url"`
	Datetime    string             `json:"datetime"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Venue       BandsintownVenue   `json:"venue"`
	Lineup      []string           `json:"lineup"`
	Artist      *BandsintownArtist `json:"artist,omitempty"`
}

type bandsintownErrorPayload struct {
	Error        string `json:"error"`
	ErrorMessage string `json:"errorMessage"`
	Message      string `json:"message"`
}

func (p bandsintownErrorPayload) message() string {
	for _, m := range []string{p.Error, p.ErrorMessage, p.Message} {
		if m != "" {
			return m
		}
	}
	return ""
}

// BandsintownService is a read-only client for Bandsintown artist data.
type BandsintownService struct {
	appID      string
	baseURL    string
	httpClient httpDoer
	logger     *log.Logger
}

// NewBandsintownService creates a new Bandsintown client. An empty app id is accepted;
// every call then degrades to the empty result.
func NewBandsintownService(cfg ProviderConfig) *BandsintownService {
	return &BandsintownService{
		appID:      cfg.Key,
		baseURL:    strings.TrimSuffix(cfg.baseURL(bandsintownBaseURL), "/"),
		httpClient: cfg.client(),
		logger:     cfg.logger(bandsintownProvider),
	}
}

// Configured reports whether an application id is set.
func (s *BandsintownService) Configured() bool {
	return s.appID != ""
}

func (s *BandsintownService) call(ctx context.Context, path string, result any) error {
	if !s.Configured() {
		return shared.ErrMissingCredentials
	}

	apiURL := s.baseURL + path + "?" + url.Values{"app_id": {s.appID}}.Encode()
	body, err := doRequest(ctx, s.httpClient, bandsintownProvider, apiURL)
	if err != nil {
		return err
	}

	if isObject(body) {
		var payload bandsintownErrorPayload
		if err := json.Unmarshal(body, &payload); err == nil && payload.message() != "" {
			return &ProviderError{Provider: bandsintownProvider, Message: payload.message()}
		}
	}
	return decodeJSON(body, result)
}

func artistPath(name string) string {
	return "/artists/" + url.PathEscape(name)
}

// Artist returns the artist profile, or nil when the lookup fails or the artist is unknown.
func (s *BandsintownService) Artist(ctx context.Context, name string) *BandsintownArtist {
	var artist BandsintownArtist
	if err := s.call(ctx, artistPath(name), &artist); err != nil {
		logFailure(s.logger, "artist", err)
		return nil
	}
	if artist.Name == "" && artist.ID == "" {
		s.logger.Debug("artist not found", "name", name)
		return nil
	}
	return &artist
}

// ArtistImage returns the artist's profile image URL, or "" when none is available.
func (s *BandsintownService) ArtistImage(ctx context.Context, name string) string {
	artist := s.Artist(ctx, name)
	if artist == nil {
		return ""
	}
	return artist.ImageURL
}

// ArtistEvents returns the artist's upcoming events, or nil when the lookup fails.
func (s *BandsintownService) ArtistEvents(ctx context.Context, name string) []models.Event {
	var events []BandsintownEvent
	if err := s.call(ctx, artistPath(name)+"/events", &events); err != nil {
		logFailure(s.logger, "artist.events", err)
		return nil
	}

	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		out = append(out, e.toEvent(name))
	}
	return out
}

func (e BandsintownEvent) toEvent(artistName string) models.Event {
	event := models.Event{
		ID:          string(e.ID),
		Title:       strings.TrimSpace(e.Title),
		ArtistName:  artistName,
		Datetime:    e.Datetime,
		Description: e.Description,
		URL:         e.URL,
		Venue: models.Venue{
			Name:    e.Venue.Name,
			City:    e.Venue.City,
			Country: e.Venue.Country,
		},
	}

	if len(e.Lineup) > 0 && e.Lineup[0] != "" {
		event.ArtistName = e.Lineup[0]
	}
	if e.Artist != nil {
		event.ArtistImage = e.Artist.ImageURL
	}
	if event.Title == "" {
		event.Title = fmt.Sprintf("%s at %s", event.ArtistName, e.Venue.Name)
	}
	return event
}
