package repositories

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/shared"
)

// Storage keys, kept identical to the browser-era localStorage layout.
const (
	LikedArtistsKey = "likedArtists"
	EventNotesKey   = "eventNotes"
)

// KeyValueStore is a string-keyed store of serialized values.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error) // Get returns the value stored under key; ok is false when absent
	Put(key, value string) error                       // Put stores value under key, replacing any previous value
}

// PreferenceRepository implements [models.PreferenceStore] on top of a [KeyValueStore].
type PreferenceRepository struct {
	kv     KeyValueStore
	logger *log.Logger
}

// NewPreferenceRepository creates a new [PreferenceRepository] backed by kv.
//
// A nil logger discards storage warnings.
func NewPreferenceRepository(kv KeyValueStore, logger *log.Logger) *PreferenceRepository {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &PreferenceRepository{kv: kv, logger: shared.WithLogger(logger, "component", "preferences")}
}

// NewMemoryPreferences creates a [PreferenceRepository] over a fresh [MemoryStore].
func NewMemoryPreferences(logger *log.Logger) *PreferenceRepository {
	return NewPreferenceRepository(NewMemoryStore(), logger)
}

// LikedArtistIDs returns the liked artist ids, or an empty slice when nothing usable is stored.
func (r *PreferenceRepository) LikedArtistIDs() []string {
	var ids []string
	if !r.read(LikedArtistsKey, &ids) {
		return []string{}
	}
	return dedupe(ids)
}

// SetLikedArtistIDs overwrites the liked artist ids. Duplicates are dropped, keeping first-seen order.
func (r *PreferenceRepository) SetLikedArtistIDs(ids []string) error {
	return r.write(LikedArtistsKey, dedupe(ids))
}

// Notes returns every stored note in insertion order, or an empty slice when nothing usable is stored.
func (r *PreferenceRepository) Notes() []models.Note {
	var notes []models.Note
	if !r.read(EventNotesKey, &notes) || notes == nil {
		return []models.Note{}
	}
	return notes
}

// SetNotes overwrites the notes collection.
func (r *PreferenceRepository) SetNotes(notes []models.Note) error {
	if notes == nil {
		notes = []models.Note{}
	}
	return r.write(EventNotesKey, notes)
}

// read decodes the value under key into dst and reports whether dst holds usable data.
func (r *PreferenceRepository) read(key string, dst any) bool {
	raw, ok, err := r.kv.Get(key)
	if err != nil {
		r.logger.Warn("failed to read preferences", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		r.logger.Warn("discarding unreadable preferences", "key", key, "error", err)
		return false
	}
	return true
}

func (r *PreferenceRepository) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %w", shared.ErrStorage, key, err)
	}

	if err := r.kv.Put(key, string(data)); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", shared.ErrStorage, key, err)
	}
	return nil
}

// dedupe removes repeated and empty ids, preserving the order in which ids were first seen.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
