package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/notes"
	"github.com/desertthunder/soundcheck/internal/services"
	"github.com/desertthunder/soundcheck/internal/shared"
	"github.com/desertthunder/soundcheck/internal/views"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ArtistsView ViewState = iota
	EventsView
	NotesView
	ArtistDetailView
	NoteEditView
)

// artistLoad tracks one background artist page lookup.
type artistLoad struct {
	seq      int
	progress chan views.ProgressUpdate
	done     chan artistLoadedData
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	engine  *views.Engine
	notes   *notes.Manager
	openURL func(string) error
	width   int
	height  int

	artistList list.Model
	eventList  list.Model
	noteList   list.Model
	search     textinput.Model
	searching  bool
	queries    map[ViewState]string

	page     *models.ArtistPage
	seq      int
	load     *artistLoad
	cancel   context.CancelFunc
	progress views.ProgressUpdate
	spinner  spinner.Model

	editor   textarea.Model
	editing  *models.EventView
	returnTo ViewState

	status string
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *views.Engine, manager *notes.Manager) *Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"

	editor := textarea.New()
	editor.CharLimit = models.MaxNoteLength
	editor.Placeholder = "Write a note for this event..."
	editor.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:        ctx,
		view:       ArtistsView,
		engine:     engine,
		notes:      manager,
		openURL:    shared.OpenBrowser,
		width:      80,
		height:     24,
		artistList: newList("Artists"),
		eventList:  newList("Events"),
		noteList:   newList("Notes"),
		search:     search,
		queries:    make(map[ViewState]string),
		spinner:    sp,
		editor:     editor,
		help:       help.New(),
		keys:       newKeyMap(),
	}
	m.resize()
	m.refreshAll()
	return m
}

// Init populates the lists from the store.
func (m *Model) Init() tea.Cmd {
	m.refreshAll()
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			m.cancelLoad()
			return m, tea.Quit
		}
		switch {
		case m.view == NoteEditView:
			return m.handleEditorKeys(msg)
		case m.searching:
			return m.handleSearchKeys(msg)
		case m.view == ArtistDetailView:
			return m.handleDetailKeys(msg)
		default:
			return m.handleListKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)

	case spinner.TickMsg:
		if m.load == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateActive(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProgressUpdate:
		data := msg.data.(progressData)
		if m.load == nil || data.seq != m.load.seq {
			return m, nil
		}
		m.progress = data.update
		return m, waitForArtist(m.load)

	case MsgArtistLoaded:
		data := msg.data.(artistLoadedData)
		if m.load == nil || data.seq != m.load.seq {
			return m, nil
		}
		m.cancelLoad()
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.page = data.page
		return m, nil

	case MsgBrowserOpened:
		if err, _ := msg.data.(error); err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Could not open browser: %v", err))
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.back):
		if m.queries[m.view] != "" {
			m.queries[m.view] = ""
			m.search.SetValue("")
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.next):
		m.switchView((m.view + 1) % 3)
		return m, nil
	case key.Matches(msg, m.keys.artists):
		m.switchView(ArtistsView)
		return m, nil
	case key.Matches(msg, m.keys.events):
		m.switchView(EventsView)
		return m, nil
	case key.Matches(msg, m.keys.notes):
		m.switchView(NotesView)
		return m, nil
	}

	switch m.view {
	case ArtistsView:
		item, ok := m.artistList.SelectedItem().(artistItem)
		switch {
		case ok && key.Matches(msg, m.keys.like):
			m.toggleLike(item.view.ID)
			return m, nil
		case ok && key.Matches(msg, m.keys.enter):
			return m, m.openArtist(item.view.ID)
		}

	case EventsView:
		item, ok := m.eventList.SelectedItem().(eventItem)
		switch {
		case ok && key.Matches(msg, m.keys.enter):
			return m, m.openEditor(item.view)
		case ok && key.Matches(msg, m.keys.remove) && item.view.HasNote():
			m.deleteNote(item.view.Note.ID)
			return m, nil
		}

	case NotesView:
		item, ok := m.noteList.SelectedItem().(noteItem)
		switch {
		case ok && key.Matches(msg, m.keys.enter):
			note := item.view.Note
			return m, m.openEditor(models.EventView{Event: item.view.Event, Note: &note})
		case ok && key.Matches(msg, m.keys.remove):
			m.deleteNote(item.view.Note.ID)
			return m, nil
		}
	}

	return m.updateActive(msg)
}

// handleSearchKeys feeds keystrokes to the search box and recomputes the active list on every change.
func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.queries[m.view] {
		m.queries[m.view] = q
		m.refresh()
	}
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.cancelLoad()
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.cancelLoad()
		m.page = nil
		m.err = nil
		m.view = ArtistsView
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.like) && m.page != nil:
		liked, err := m.engine.ToggleLike(m.page.Artist.ID)
		if err != nil {
			m.status = styles.err.Render(err.Error())
			return m, nil
		}
		m.page.IsLiked = liked
		return m, nil
	case key.Matches(msg, m.keys.open) && m.page != nil:
		url := services.ArtistPageURL(m.page.Artist.Name)
		open := m.openURL
		return m, func() tea.Msg { return browserOpenedMsg(open(url)) }
	}
	return m, nil
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.save):
		if _, err := m.notes.Upsert(m.editing.ID, m.editor.Value()); err != nil {
			m.status = styles.err.Render(err.Error())
			return m, nil
		}
		m.closeEditor()
		m.status = styles.ok.Render("Note saved")
		return m, nil
	case key.Matches(msg, m.keys.back):
		m.closeEditor()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ArtistsView:
		m.artistList, cmd = m.artistList.Update(msg)
	case EventsView:
		m.eventList, cmd = m.eventList.Update(msg)
	case NotesView:
		m.noteList, cmd = m.noteList.Update(msg)
	case NoteEditView:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchView(v ViewState) {
	m.view = v
	m.search.SetValue(m.queries[v])
	m.refresh()
}

// refresh recomputes the active list from the store.
func (m *Model) refresh() {
	q := m.queries[m.view]

	switch m.view {
	case ArtistsView:
		artists := m.engine.Artists(q)
		items := make([]list.Item, len(artists))
		for i, a := range artists {
			items[i] = artistItem{view: a}
		}
		m.artistList.SetItems(items)
	case EventsView:
		events := m.engine.Events(q)
		items := make([]list.Item, len(events))
		for i, e := range events {
			items[i] = eventItem{view: e}
		}
		m.eventList.SetItems(items)
	case NotesView:
		noteViews := m.engine.Notes(q)
		items := make([]list.Item, len(noteViews))
		for i, n := range noteViews {
			items[i] = noteItem{view: n}
		}
		m.noteList.SetItems(items)
	}
}

func (m *Model) refreshAll() {
	current := m.view
	for _, v := range []ViewState{ArtistsView, EventsView, NotesView} {
		m.view = v
		m.refresh()
	}
	m.view = current
}

func (m *Model) resize() {
	w, h := m.width-4, m.height-8
	m.artistList.SetSize(w, h)
	m.eventList.SetSize(w, h)
	m.noteList.SetSize(w, h)
	m.editor.SetWidth(w)
	m.editor.SetHeight(max(h-4, 3))
}

func (m *Model) toggleLike(id string) {
	liked, err := m.engine.ToggleLike(id)
	if err != nil {
		m.status = styles.err.Render(err.Error())
		return
	}
	if liked {
		m.status = styles.ok.Render("Liked")
	} else {
		m.status = styles.warn.Render("Unliked")
	}
	m.refresh()
}

func (m *Model) deleteNote(id string) {
	if err := m.notes.Delete(id); err != nil {
		m.status = styles.err.Render(err.Error())
		return
	}
	m.status = styles.warn.Render("Note deleted")
	m.refresh()
}

func (m *Model) openEditor(ev models.EventView) tea.Cmd {
	m.editing = &ev
	m.returnTo = m.view
	m.editor.Reset()
	if ev.Note != nil {
		m.editor.SetValue(ev.Note.Content)
	}
	m.status = ""
	m.view = NoteEditView
	return m.editor.Focus()
}

func (m *Model) closeEditor() {
	m.editor.Blur()
	m.editing = nil
	m.view = m.returnTo
	m.refreshAll()
}

// openArtist starts a background page lookup bound to a cancelable context.
func (m *Model) openArtist(id string) tea.Cmd {
	m.cancelLoad()

	ctx, cancel := context.WithCancel(m.ctx)
	m.seq++
	load := &artistLoad{
		seq:      m.seq,
		progress: make(chan views.ProgressUpdate, 32),
		done:     make(chan artistLoadedData, 1),
	}

	m.load = load
	m.cancel = cancel
	m.page = nil
	m.err = nil
	m.progress = views.ProgressUpdate{Message: "Loading..."}
	m.view = ArtistDetailView

	engine := m.engine
	go func() {
		page, err := engine.Artist(ctx, id, load.progress)
		load.done <- artistLoadedData{seq: load.seq, page: page, err: err}
	}()

	return tea.Batch(m.spinner.Tick, waitForArtist(load))
}

func (m *Model) cancelLoad() {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.load = nil
}

func waitForArtist(load *artistLoad) tea.Cmd {
	return func() tea.Msg {
		select {
		case update := <-load.progress:
			return progressUpdateMsg(load.seq, update)
		case res := <-load.done:
			return artistLoadedMsg(res.seq, res.page, res.err)
		}
	}
}
