// Package storage persists the sign-up page between runs.
//
// The page lives as a single HTML file (page.html) in the data directory,
// next to the optional config.toml. Writes go through a temporary file and a
// rename so an interrupted save never leaves a truncated page behind.
// The default storage location is ~/.local/share/event-roster/.
package storage
