// Package models defines the domain entities shared by the soundcheck packages.
//
// The package contains three categories of types:
//
// 1. Catalog entries: the seed data the application starts from
//   - [Artist] : Artist with fallback image and genre
//   - [Event] : Concert or festival with its [Venue]
//
// 2. Enrichment records: best-effort data fetched from external providers
//   - [ArtistDetail] : Biography, country, formed year and thumbnail (TheAudioDB)
//   - [Album] : Coarse or refined discography entry (TheAudioDB)
//   - [ArtistSummary], [ArtistInfo], [ChartAlbum], [ChartTrack] : Last.fm payloads
//
// 3. User preferences and view models
//   - [Note] : Free-text note attached to an event
//   - [ArtistView], [ArtistPage], [EventView], [NoteView] : Structures handed to the presentation layer
//
// The [PreferenceStore] interface is the persistence contract for liked artists and notes.
// Liked flags are never stored on [Artist]; they are derived from the store on every load.
package models
