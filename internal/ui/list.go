package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/soundcheck/internal/formatter"
	"github.com/desertthunder/soundcheck/internal/models"
)

var (
	_ list.Item = artistItem{}
	_ list.Item = eventItem{}
	_ list.Item = noteItem{}
)

const previewLength = 60

// artistItem wraps [models.ArtistView] to implement [list.Item].
type artistItem struct {
	view models.ArtistView
}

func (i artistItem) FilterValue() string { return i.view.Name }
func (i artistItem) Title() string {
	if i.view.IsLiked {
		return styles.liked.Render("♥ ") + i.view.Name
	}
	return i.view.Name
}
func (i artistItem) Description() string { return i.view.Genre }

// eventItem wraps [models.EventView] to implement [list.Item].
type eventItem struct {
	view models.EventView
}

func (i eventItem) FilterValue() string { return i.view.Title }
func (i eventItem) Title() string {
	if i.view.HasNote() {
		return fmt.Sprintf("%s ✎", i.view.Title)
	}
	return i.view.Title
}
func (i eventItem) Description() string {
	return fmt.Sprintf("%s • %s, %s • %s", i.view.ArtistName, i.view.Venue.Name, i.view.Venue.City, formatter.EventDate(i.view.Event))
}

// noteItem wraps [models.NoteView] to implement [list.Item].
type noteItem struct {
	view models.NoteView
}

func (i noteItem) FilterValue() string { return i.view.Note.Content }
func (i noteItem) Title() string {
	return fmt.Sprintf("%s - %s", i.view.Event.ArtistName, i.view.Event.Title)
}
func (i noteItem) Description() string {
	return preview(i.view.Note.Content, previewLength)
}

// preview returns the first line of s, cut to at most n runes.
func preview(s string, n int) string {
	line, _, more := strings.Cut(s, "\n")
	runes := []rune(line)
	if len(runes) > n {
		return string(runes[:n]) + "…"
	}
	if more {
		return line + " …"
	}
	return line
}

func newList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
