// package views assembles the view models shown by the CLI, the TUI and the HTTP server.
//
// The core abstraction is Engine, which merges the static catalog with the liked-artist set and
// event notes held in a [models.PreferenceStore], and enriches artists through the external
// providers. Preferences are read fresh on every call; nothing is cached between loads.
//
// Long-running lookups emit progress updates via channels for non-blocking status reporting to
// CLI/UI layers. Every provider call takes the caller's context, so a view that is torn down
// cancels its in-flight requests and the engine reports [context.Canceled] instead of a
// partially assembled page.
package views
