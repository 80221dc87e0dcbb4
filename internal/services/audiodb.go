// TheAudioDB API implementation
//
// Response types based on https://www.theaudiodb.com/free_music_api
package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/soundcheck/internal/models"
)

const (
	audioDBBaseURL  = "https://www.theaudiodb.com/api/v1/json"
	audioDBProvider = "audiodb"

	// AudioDBTestKey is TheAudioDB's public key for low-volume use.
	AudioDBTestKey = "2"
)

// AudioDBArtist represents a TheAudioDB artist entity.
type AudioDBArtist struct {
	ID            flexString `json:"idArtist"`
	Artist        string     `json:"strArtist"`
	Genre         string     `json:"strGenre"`
	Style         string     `json:"strStyle"`
	Country       string     `json:"strCountry"`
	FormedYear    flexString `json:"intFormedYear"`
	Biography     string     `json:"strBiography"`
	BiographyEN   string     `json:"strBiographyEN"`
	Website       string     `json:"strWebsite"`
	MusicBrainzID string     `json:"strMusicBrainzID"`
	ArtistThumb   string     `json:"strArtistThumb"`
}

// AudioDBAlbum represents a TheAudioDB album entity as returned by both discography and album search.
type AudioDBAlbum struct {
	ID           flexString `json:"idAlbum"`
	Album        string     `json:"strAlbum"`
	Artist       string     `json:"strArtist"`
	AlbumThumb   string     `json:"strAlbumThumb"`
	YearReleased flexString `json:"intYearReleased"`
	Genre        string     `json:"strGenre"`
}

// AudioDBService is a read-only client for TheAudioDB.
type AudioDBService struct {
	baseURL    string
	httpClient httpDoer
	logger     *log.Logger
}

// NewAudioDBService creates a new TheAudioDB client. An empty key selects [AudioDBTestKey].
func NewAudioDBService(cfg ProviderConfig) *AudioDBService {
	key := cfg.Key
	if key == "" {
		key = AudioDBTestKey
	}
	return &AudioDBService{
		baseURL:    strings.TrimSuffix(cfg.baseURL(audioDBBaseURL), "/") + "/" + url.PathEscape(key),
		httpClient: cfg.client(),
		logger:     cfg.logger(audioDBProvider),
	}
}

func (s *AudioDBService) call(ctx context.Context, endpoint string, params url.Values, result any) error {
	body, err := doRequest(ctx, s.httpClient, audioDBProvider, s.baseURL+"/"+endpoint+"?"+params.Encode())
	if err != nil {
		return err
	}
	return decodeJSON(body, result)
}

// SearchArtist returns the first artist matching name, or nil when none matches or the lookup fails.
func (s *AudioDBService) SearchArtist(ctx context.Context, name string) *models.ArtistDetail {
	var result struct {
		Artists []AudioDBArtist `json:"artists"`
	}

	if err := s.call(ctx, "search.php", url.Values{"s": {name}}, &result); err != nil {
		logFailure(s.logger, "search", err)
		return nil
	}
	if len(result.Artists) == 0 {
		s.logger.Debug("artist not found", "name", name)
		return nil
	}

	a := result.Artists[0]
	detail := &models.ArtistDetail{
		ID:            string(a.ID),
		Name:          a.Artist,
		Biography:     a.Biography,
		Genre:         a.Genre,
		Style:         a.Style,
		Country:       a.Country,
		FormedYear:    string(a.FormedYear),
		Thumb:         a.ArtistThumb,
		Website:       a.Website,
		MusicBrainzID: a.MusicBrainzID,
	}
	if detail.Biography == "" {
		detail.Biography = a.BiographyEN
	}
	return detail
}

// Discography returns the artist's albums in provider order, or nil when the lookup fails.
func (s *AudioDBService) Discography(ctx context.Context, name string) []models.Album {
	var result struct {
		Album []AudioDBAlbum `json:"album"`
	}

	if err := s.call(ctx, "discography.php", url.Values{"s": {name}}, &result); err != nil {
		logFailure(s.logger, "discography", err)
		return nil
	}

	albums := make([]models.Album, 0, len(result.Album))
	for _, a := range result.Album {
		albums = append(albums, a.toAlbum(false))
	}
	return albums
}

// AlbumDetail returns the detailed record for coarse, or coarse itself when the lookup fails or finds nothing.
func (s *AudioDBService) AlbumDetail(ctx context.Context, artist string, coarse models.Album) models.Album {
	var result struct {
		Album []AudioDBAlbum `json:"album"`
	}

	if err := s.call(ctx, "searchalbum.php", url.Values{"s": {artist}, "a": {coarse.Title}}, &result); err != nil {
		logFailure(s.logger, "searchalbum", err)
		return coarse
	}
	if len(result.Album) == 0 {
		return coarse
	}

	refined := result.Album[0].toAlbum(true)
	if refined.Title == "" {
		refined.Title = coarse.Title
	}
	if refined.YearReleased == "" {
		refined.YearReleased = coarse.YearReleased
	}
	return refined
}

func (a AudioDBAlbum) toAlbum(refined bool) models.Album {
	return models.Album{
		ID:           string(a.ID),
		Title:        a.Album,
		Artist:       a.Artist,
		Thumb:        a.AlbumThumb,
		YearReleased: string(a.YearReleased),
		Genre:        a.Genre,
		Refined:      refined,
	}
}
