package models

import (
	"strings"
	"time"
)

// MaxNoteLength is the upper bound (in characters) for note content accepted from a user.
const MaxNoteLength = 1000

// PreferenceStore defines the persistence contract for user preferences.
//
// Both collections are read and written as a whole; there is no partial update at this boundary.
// Reads of missing or unreadable data return an empty collection and never fail.
type PreferenceStore interface {
	LikedArtistIDs() []string         // LikedArtistIDs returns the set of liked artist identifiers
	SetLikedArtistIDs([]string) error // SetLikedArtistIDs overwrites the liked artist identifiers
	Notes() []Note                    // Notes returns all event notes in insertion order
	SetNotes([]Note) error            // SetNotes overwrites the event notes collection
}

// Artist is an entry of the static artist catalog.
type Artist struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Genre string `json:"genre" yaml:"genre"`
	Image string `json:"image" yaml:"image"`
}

// ArtistView is an [Artist] decorated with its liked status.
type ArtistView struct {
	Artist
	IsLiked bool `json:"isLiked"`
}

// ArtistDetail holds enrichment data for an artist. Every field is optional.
type ArtistDetail struct {
	ID            string `json:"idArtist,omitempty"`
	Name          string `json:"strArtist,omitempty"`
	Biography     string `json:"strBiography,omitempty"`
	Genre         string `json:"strGenre,omitempty"`
	Style         string `json:"strStyle,omitempty"`
	Country       string `json:"strCountry,omitempty"`
	FormedYear    string `json:"intFormedYear,omitempty"`
	Thumb         string `json:"strArtistThumb,omitempty"`
	Website       string `json:"strWebsite,omitempty"`
	MusicBrainzID string `json:"strMusicBrainzID,omitempty"`
}

// Album is a discography entry.
//
// Refined is set when the record came from a per-album detail lookup rather than the discography listing.
type Album struct {
	ID           string `json:"idAlbum,omitempty"`
	Title        string `json:"strAlbum"`
	Artist       string `json:"strArtist,omitempty"`
	Thumb        string `json:"strAlbumThumb,omitempty"`
	YearReleased string `json:"intYearReleased,omitempty"`
	Genre        string `json:"strGenre,omitempty"`
	Refined      bool   `json:"refined"`
}

// ArtistPage is the view model for a single artist.
type ArtistPage struct {
	Artist  Artist        `json:"artist"`
	Detail  *ArtistDetail `json:"detail,omitempty"`
	Albums  []Album       `json:"albums"`
	IsLiked bool          `json:"isLiked"`
}

// Enriched reports whether external artist data was found.
func (p *ArtistPage) Enriched() bool {
	return p.Detail != nil
}

// DisplayImage returns the enriched thumbnail, falling back to the catalog image.
func (p *ArtistPage) DisplayImage() string {
	if p.Detail != nil && p.Detail.Thumb != "" {
		return p.Detail.Thumb
	}
	return p.Artist.Image
}

// DisplayGenre returns the enriched genre, falling back to the catalog genre.
func (p *ArtistPage) DisplayGenre() string {
	if p.Detail != nil && p.Detail.Genre != "" {
		return p.Detail.Genre
	}
	return p.Artist.Genre
}

// ArtistSummary is a candidate returned by an artist search.
type ArtistSummary struct {
	Name      string `json:"name"`
	MBID      string `json:"mbid,omitempty"`
	URL       string `json:"url,omitempty"`
	Listeners int    `json:"listeners,omitempty"`
	Image     string `json:"image,omitempty"`
}

// ArtistInfo is the detailed artist record from the metadata provider.
type ArtistInfo struct {
	Name      string          `json:"name"`
	MBID      string          `json:"mbid,omitempty"`
	URL       string          `json:"url,omitempty"`
	Listeners int             `json:"listeners,omitempty"`
	Playcount int             `json:"playcount,omitempty"`
	Summary   string          `json:"summary,omitempty"`
	Content   string          `json:"content,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
	Similar   []ArtistSummary `json:"similar,omitempty"`
	Image     string          `json:"image,omitempty"`
}

// ChartAlbum is an entry of an artist's top albums chart.
type ChartAlbum struct {
	Name      string `json:"name"`
	MBID      string `json:"mbid,omitempty"`
	Playcount int    `json:"playcount,omitempty"`
	URL       string `json:"url,omitempty"`
	Image     string `json:"image,omitempty"`
}

// ChartTrack is an entry of an artist's top tracks chart.
type ChartTrack struct {
	Name      string `json:"name"`
	MBID      string `json:"mbid,omitempty"`
	Playcount int    `json:"playcount,omitempty"`
	Listeners int    `json:"listeners,omitempty"`
	URL       string `json:"url,omitempty"`
}

// Venue is where an [Event] takes place.
type Venue struct {
	Name    string `json:"name" yaml:"name"`
	City    string `json:"city" yaml:"city"`
	Country string `json:"country" yaml:"country"`
}

// Event is a concert or festival appearance.
//
// Datetime is kept as the ISO-8601 string received from the source.
type Event struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	ArtistName  string `json:"artist_name" yaml:"artist_name"`
	Datetime    string `json:"datetime" yaml:"datetime"`
	Venue       Venue  `json:"venue" yaml:"venue"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	ArtistImage string `json:"artist_image,omitempty" yaml:"artist_image,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Time parses Datetime, accepting timestamps with or without a zone offset.
func (e Event) Time() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, e.Datetime); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EventView is an [Event] decorated with the note attached to it, if any.
type EventView struct {
	Event
	Note *Note `json:"note,omitempty"`
}

// HasNote reports whether a note is attached to the event.
func (v EventView) HasNote() bool {
	return v.Note != nil
}

// Note is a free-text note a user attached to an event.
//
// EventID is not checked against the catalog when stored; notes pointing at unknown events are skipped at read time.
type Note struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Edited reports whether the note changed after creation.
func (n Note) Edited() bool {
	return n.UpdatedAt.After(n.CreatedAt)
}

// NoteView is a [Note] joined with the event it belongs to.
type NoteView struct {
	Note  Note  `json:"note"`
	Event Event `json:"event"`
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
