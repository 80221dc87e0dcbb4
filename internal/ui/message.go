package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/views"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProgressUpdate MsgKind = iota
	MsgArtistLoaded
	MsgBrowserOpened
)

type progressData struct {
	seq    int
	update views.ProgressUpdate
}

type artistLoadedData struct {
	seq  int
	page *models.ArtistPage
	err  error
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(seq int, update views.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: progressData{seq: seq, update: update}}
}

// artistLoadedMsg is the constructor for [MsgArtistLoaded]
func artistLoadedMsg(seq int, page *models.ArtistPage, err error) Msg {
	return Msg{kind: MsgArtistLoaded, data: artistLoadedData{seq: seq, page: page, err: err}}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(err error) Msg {
	return Msg{kind: MsgBrowserOpened, data: err}
}
