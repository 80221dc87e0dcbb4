// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has three browsing views and two focused views:
//  1. [ArtistsView] : Browse the catalog, search by name or genre, like and unlike artists
//  2. [EventsView] : Browse events with their notes, search by title, artist or city
//  3. [NotesView] : Browse saved notes, search by content, event or artist
//  4. [ArtistDetailView] : Enriched artist page with biography and discography
//  5. [NoteEditView] : Create or edit the note attached to an event
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Searches are recomputed through the views engine on every keystroke, so liked flags and notes always reflect the store.
//
// Artist pages load in the background. Progress updates flow through a channel from the views engine, and
// leaving the page cancels the lookup; results from a canceled or superseded lookup are dropped by sequence number.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, /, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
