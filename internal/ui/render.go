package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/desertthunder/soundcheck/internal/formatter"
	"github.com/desertthunder/soundcheck/internal/models"
)

const maxBiographyRunes = 600

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case ArtistsView:
		body = m.renderList(m.artistList.View(), m.keys.enter, m.keys.like)
	case EventsView:
		body = m.renderList(m.eventList.View(), m.keys.enter, m.keys.remove)
	case NotesView:
		body = m.renderList(m.noteList.View(), m.keys.enter, m.keys.remove)
	case ArtistDetailView:
		body = m.renderDetail()
	case NoteEditView:
		body = m.renderEditor()
	}

	if m.status != "" {
		body = fmt.Sprintf("%s\n%s", body, m.status)
	}
	return body
}

func (m *Model) renderTabs() string {
	names := []struct {
		view  ViewState
		label string
	}{
		{ArtistsView, "1 Artists"},
		{EventsView, "2 Events"},
		{NotesView, "3 Notes"},
	}

	tabs := make([]string, len(names))
	for i, n := range names {
		if n.view == m.view {
			tabs[i] = styles.activeTab.Render(n.label)
		} else {
			tabs[i] = styles.tab.Render(n.label)
		}
	}
	return strings.Join(tabs, " ")
}

func (m *Model) renderList(list string, extra ...key.Binding) string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.searching || m.queries[m.view] != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	b.WriteString(list)
	b.WriteString("\n\n")

	helpKeys := append(extra, m.keys.search, m.keys.next, m.keys.quit)
	if m.searching {
		helpKeys = []key.Binding{m.keys.back}
	}
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderDetail() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.like, m.keys.open, m.keys.quit})

	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Error: %v", m.err)), helpView)
	}
	if m.page == nil {
		return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), m.progress.Message, helpView)
	}

	p := m.page
	var b strings.Builder

	title := p.Artist.Name
	if p.IsLiked {
		title = styles.liked.Render("♥ ") + title
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Genre: %s\n", p.DisplayGenre())
	fmt.Fprintf(&b, "Image: %s\n", p.DisplayImage())

	if !p.Enriched() {
		b.WriteString(styles.help.Render("\nNo additional information available."))
		return fmt.Sprintf("%s\n\n%s", b.String(), helpView)
	}

	if p.Detail.Country != "" {
		fmt.Fprintf(&b, "Country: %s\n", p.Detail.Country)
	}
	if p.Detail.FormedYear != "" {
		fmt.Fprintf(&b, "Formed: %s\n", p.Detail.FormedYear)
	}
	if bio := truncate(p.Detail.Biography, maxBiographyRunes); bio != "" {
		fmt.Fprintf(&b, "\n%s\n", bio)
	}

	if len(p.Albums) > 0 {
		fmt.Fprintf(&b, "\n%s\n", styles.ok.Render(fmt.Sprintf("Albums (%d)", len(p.Albums))))
		for _, a := range p.Albums {
			b.WriteString(renderAlbum(a))
		}
	}

	return fmt.Sprintf("%s\n%s", b.String(), helpView)
}

func renderAlbum(a models.Album) string {
	line := "  • " + a.Title
	if a.YearReleased != "" {
		line = fmt.Sprintf("  • %s (%s)", a.Title, a.YearReleased)
	}
	if a.Genre != "" {
		line += styles.help.Render(" " + a.Genre)
	}
	return line + "\n"
}

func (m *Model) renderEditor() string {
	if m.editing == nil {
		return ""
	}

	ev := m.editing
	heading := "New note"
	if ev.Note != nil {
		heading = "Edit note"
	}

	title := styles.title.Render(fmt.Sprintf("%s: %s", heading, ev.Title))
	info := fmt.Sprintf("%s • %s, %s • %s", ev.ArtistName, ev.Venue.Name, ev.Venue.City, formatter.EventDate(ev.Event))
	counter := styles.help.Render(fmt.Sprintf("%d/%d", len([]rune(m.editor.Value())), models.MaxNoteLength))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.save, m.keys.back})

	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n\n%s", title, info, m.editor.View(), counter, helpView)
}

// truncate cuts s to at most n runes on a word boundary.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := string(runes[:n])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
