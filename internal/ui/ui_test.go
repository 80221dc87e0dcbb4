package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/soundcheck/internal/catalog"
	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/notes"
	"github.com/desertthunder/soundcheck/internal/repositories"
	"github.com/desertthunder/soundcheck/internal/views"
)

func newTestModel(t *testing.T) (*Model, *repositories.PreferenceRepository) {
	t.Helper()
	store := repositories.NewMemoryPreferences(nil)
	engine := views.NewEngine(catalog.Default(), store, views.Providers{}, nil)
	m := NewModel(context.Background(), engine, notes.NewManager(store))
	m.openURL = func(string) error { return nil }
	return m, store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(runes(string(r)))
	}
}

// settle drives the background artist lookup until it reports a result.
func settle(t *testing.T, m *Model) {
	t.Helper()
	for range 20 {
		if m.load == nil {
			return
		}
		m.Update(waitForArtist(m.load)())
	}
	t.Fatal("artist lookup did not settle")
}

func TestArtistsView(t *testing.T) {
	t.Run("lists full catalog", func(t *testing.T) {
		m, _ := newTestModel(t)
		if got := len(m.artistList.Items()); got != 8 {
			t.Errorf("expected 8 artists, got %d", got)
		}
	})

	t.Run("search recomputes on every keystroke", func(t *testing.T) {
		m, _ := newTestModel(t)

		press(m, runes("/"))
		if !m.searching {
			t.Fatal("expected search mode")
		}

		typeText(m, "ro")
		if got := len(m.artistList.Items()); got != 3 {
			t.Errorf("after 'ro': expected 3 artists, got %d", got)
		}
		typeText(m, "ck")
		if got := len(m.artistList.Items()); got != 3 {
			t.Errorf("after 'rock': expected 3 artists, got %d", got)
		}
		typeText(m, "x")
		if got := len(m.artistList.Items()); got != 0 {
			t.Errorf("after 'rockx': expected 0 artists, got %d", got)
		}

		press(m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.searching {
			t.Error("expected esc to leave search mode")
		}
		press(m, tea.KeyMsg{Type: tea.KeyEsc})
		if got := len(m.artistList.Items()); got != 8 {
			t.Errorf("expected cleared search to list 8 artists, got %d", got)
		}
	})

	t.Run("like toggles the selected artist", func(t *testing.T) {
		m, store := newTestModel(t)

		press(m, runes("l"))
		if got := store.LikedArtistIDs(); len(got) != 1 || got[0] != "1" {
			t.Fatalf("expected artist 1 liked, got %v", got)
		}
		if item := m.artistList.Items()[0].(artistItem); !item.view.IsLiked {
			t.Error("expected list to reflect liked status")
		}

		press(m, runes("l"))
		if got := store.LikedArtistIDs(); len(got) != 0 {
			t.Errorf("expected no likes after second toggle, got %v", got)
		}
	})

	t.Run("q quits", func(t *testing.T) {
		m, _ := newTestModel(t)
		_, cmd := m.Update(runes("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestArtistDetailView(t *testing.T) {
	t.Run("loads page in the background", func(t *testing.T) {
		m, _ := newTestModel(t)

		press(m, tea.KeyMsg{Type: tea.KeyEnter})
		if m.view != ArtistDetailView {
			t.Fatalf("expected detail view, got %v", m.view)
		}
		settle(t, m)

		if m.page == nil || m.page.Artist.Name != "The Weeknd" {
			t.Fatalf("expected The Weeknd page, got %+v", m.page)
		}
		if !strings.Contains(m.View(), "No additional information available.") {
			t.Error("expected unenriched page notice")
		}
	})

	t.Run("like from detail", func(t *testing.T) {
		m, store := newTestModel(t)
		press(m, tea.KeyMsg{Type: tea.KeyEnter})
		settle(t, m)

		press(m, runes("l"))
		if !m.page.IsLiked || len(store.LikedArtistIDs()) != 1 {
			t.Error("expected artist liked from detail view")
		}

		press(m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.view != ArtistsView {
			t.Fatalf("expected artists view, got %v", m.view)
		}
		if item := m.artistList.Items()[0].(artistItem); !item.view.IsLiked {
			t.Error("expected list refreshed with liked status")
		}
	})

	t.Run("results of an abandoned lookup are dropped", func(t *testing.T) {
		m, _ := newTestModel(t)

		press(m, tea.KeyMsg{Type: tea.KeyEnter})
		stale := m.seq
		press(m, tea.KeyMsg{Type: tea.KeyEsc})

		if m.load != nil {
			t.Fatal("expected lookup canceled on leaving the page")
		}

		m.Update(artistLoadedMsg(stale, &models.ArtistPage{Artist: models.Artist{Name: "stale"}}, nil))
		if m.page != nil {
			t.Errorf("expected stale page ignored, got %+v", m.page)
		}
		if m.view != ArtistsView {
			t.Errorf("expected to stay on artists view, got %v", m.view)
		}
	})

	t.Run("lookup errors are shown", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, tea.KeyMsg{Type: tea.KeyEnter})

		m.Update(artistLoadedMsg(m.seq, nil, errors.New("boom")))
		if !strings.Contains(m.View(), "boom") {
			t.Errorf("expected error in view, got %s", m.View())
		}
	})
}

func TestNoteEditing(t *testing.T) {
	t.Run("create from events view", func(t *testing.T) {
		m, store := newTestModel(t)

		press(m, runes("2"))
		if m.view != EventsView {
			t.Fatalf("expected events view, got %v", m.view)
		}

		press(m, tea.KeyMsg{Type: tea.KeyEnter})
		if m.view != NoteEditView {
			t.Fatalf("expected editor, got %v", m.view)
		}
		if m.editor.CharLimit != models.MaxNoteLength {
			t.Errorf("expected char limit %d, got %d", models.MaxNoteLength, m.editor.CharLimit)
		}

		typeText(m, "Meet at gate B")
		press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

		if m.view != EventsView {
			t.Errorf("expected return to events view, got %v", m.view)
		}
		saved := store.Notes()
		if len(saved) != 1 || saved[0].EventID != "1" || saved[0].Content != "Meet at gate B" {
			t.Fatalf("unexpected stored notes: %+v", saved)
		}
		if item := m.eventList.Items()[0].(eventItem); !item.view.HasNote() {
			t.Error("expected event list to show the note")
		}
		if got := len(m.noteList.Items()); got != 1 {
			t.Errorf("expected notes list refreshed, got %d items", got)
		}
	})

	t.Run("empty note is rejected", func(t *testing.T) {
		m, store := newTestModel(t)
		press(m, runes("2"), tea.KeyMsg{Type: tea.KeyEnter})
		typeText(m, "   ")
		press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

		if m.view != NoteEditView {
			t.Error("expected to stay in editor")
		}
		if len(store.Notes()) != 0 {
			t.Error("expected nothing stored")
		}
		if m.status == "" {
			t.Error("expected validation message")
		}
	})

	t.Run("edit and delete from notes view", func(t *testing.T) {
		m, store := newTestModel(t)
		if _, err := m.notes.Create("2", "first"); err != nil {
			t.Fatalf("failed to seed note: %v", err)
		}

		press(m, runes("3"))
		if got := len(m.noteList.Items()); got != 1 {
			t.Fatalf("expected 1 note, got %d", got)
		}

		press(m, tea.KeyMsg{Type: tea.KeyEnter})
		if m.editor.Value() != "first" {
			t.Errorf("expected editor prefilled, got %q", m.editor.Value())
		}
		typeText(m, " and second")
		press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
		if got := store.Notes()[0].Content; got != "first and second" {
			t.Errorf("expected updated content, got %q", got)
		}

		press(m, runes("d"))
		if got := len(store.Notes()); got != 0 {
			t.Errorf("expected note deleted, got %d", got)
		}
		if got := len(m.noteList.Items()); got != 0 {
			t.Errorf("expected notes list emptied, got %d", got)
		}
	})

	t.Run("esc discards changes", func(t *testing.T) {
		m, store := newTestModel(t)
		press(m, runes("2"), tea.KeyMsg{Type: tea.KeyEnter})
		typeText(m, "draft")
		press(m, tea.KeyMsg{Type: tea.KeyEsc})

		if m.view != EventsView || len(store.Notes()) != 0 {
			t.Error("expected draft discarded")
		}
	})
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"first line\nsecond", 20, "first line …"},
		{"abcdefghij", 4, "abcd…"},
	}
	for _, tt := range tests {
		if got := preview(tt.in, tt.n); got != tt.want {
			t.Errorf("preview(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
