// Package repositories implements local persistence for user preferences.
//
// Preferences live in a string-keyed key-value store. Each key holds one JSON document that is
// always read and written as a whole:
//   - likedArtists : JSON array of artist ids
//   - eventNotes   : JSON array of notes
//
// Key Implementations:
//   - [PreferenceRepository] : [models.PreferenceStore] over any [KeyValueStore]
//   - [SQLiteStore] : preferences table managed by the embedded migrations
//   - [MemoryStore] : process-local map for tests and ephemeral runs
//
// Reads never fail. Absent keys yield empty collections and unparsable values are logged and
// treated as empty. Writes replace the stored value; there is no merge and no transaction
// spanning both keys, so concurrent writers follow last-writer-wins.
package repositories
