// package notes manages the lifecycle of event notes
package notes

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/shared"
)

var (
	ErrEmptyContent   = errors.New("note content is empty")
	ErrContentTooLong = fmt.Errorf("note content exceeds %d characters", models.MaxNoteLength)
	ErrMissingEvent   = errors.New("note requires an event id")
	ErrNoteExists     = errors.New("event already has a note")
	ErrNoteNotFound   = errors.New("note not found")
)

// Manager creates, edits and deletes notes against a [models.PreferenceStore].
//
// Every mutation reads the full collection, changes it and writes it back. The mutex only
// serializes callers sharing this Manager; separate processes writing the same store follow
// last-writer-wins.
type Manager struct {
	store models.PreferenceStore
	now   func() time.Time
	newID func() string
	mu    sync.Mutex
}

// Option configures a [Manager].
type Option func(*Manager)

// WithClock replaces the time source used for note timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator replaces the note id generator.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// NewManager creates a [Manager] using UTC wall-clock time and [shared.GenerateID].
func NewManager(store models.PreferenceStore, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		now:   time.Now,
		newID: shared.GenerateID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// timestamp returns the current time at the millisecond precision used by stored notes.
func (m *Manager) timestamp() time.Time {
	return m.now().UTC().Truncate(time.Millisecond)
}

// validate trims content and checks it against the note bounds.
func validate(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > models.MaxNoteLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

// List returns every stored note in insertion order, including notes whose event no longer exists.
func (m *Manager) List() []models.Note {
	return m.store.Notes()
}

// Get returns the note with id, or nil.
func (m *Manager) Get(id string) *models.Note {
	for _, n := range m.store.Notes() {
		if n.ID == id {
			return &n
		}
	}
	return nil
}

// ForEvent returns the first note attached to eventID in collection order, or nil.
func (m *Manager) ForEvent(eventID string) *models.Note {
	return forEvent(m.store.Notes(), eventID)
}

func forEvent(notes []models.Note, eventID string) *models.Note {
	for _, n := range notes {
		if n.EventID == eventID {
			return &n
		}
	}
	return nil
}

// Create attaches a new note to eventID.
//
// Content is trimmed and must be non-empty and at most [models.MaxNoteLength] characters.
// An event holds at most one note; use [Manager.Update] or [Manager.Upsert] to change it.
func (m *Manager) Create(eventID, content string) (models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.TrimSpace(eventID) == "" {
		return models.Note{}, ErrMissingEvent
	}
	content, err := validate(content)
	if err != nil {
		return models.Note{}, err
	}

	notes := m.store.Notes()
	if existing := forEvent(notes, eventID); existing != nil {
		return models.Note{}, fmt.Errorf("%w: event %s has note %s", ErrNoteExists, eventID, existing.ID)
	}

	now := m.timestamp()
	note := models.Note{
		ID:        m.newID(),
		EventID:   eventID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.store.SetNotes(append(notes, note)); err != nil {
		return models.Note{}, fmt.Errorf("failed to save note: %w", err)
	}
	return note, nil
}

// Update replaces the content of the note with id. ID, EventID and CreatedAt are kept;
// UpdatedAt never moves backwards.
func (m *Manager) Update(id, content string) (models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, err := validate(content)
	if err != nil {
		return models.Note{}, err
	}

	notes := m.store.Notes()
	idx := -1
	for i, n := range notes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}

	note := notes[idx]
	note.Content = content
	if now := m.timestamp(); now.After(note.UpdatedAt) {
		note.UpdatedAt = now
	}
	notes[idx] = note

	if err := m.store.SetNotes(notes); err != nil {
		return models.Note{}, fmt.Errorf("failed to save note: %w", err)
	}
	return note, nil
}

// Upsert updates the note attached to eventID, or creates one when the event has none.
func (m *Manager) Upsert(eventID, content string) (models.Note, error) {
	if existing := m.ForEvent(eventID); existing != nil {
		return m.Update(existing.ID, content)
	}
	return m.Create(eventID, content)
}

// Delete removes the note with id. Deleting an unknown id is a no-op and leaves storage untouched.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	notes := m.store.Notes()
	kept := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		return nil
	}

	if err := m.store.SetNotes(kept); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
