// Package plugins holds the built-in verbs compiled into the binary, one per
// file. Discovery is the explicit list below — a new built-in is added here,
// never found by scanning.
package plugins

import "github.com/verbkit-labs/verbkit/internal/command"

// Providers returns the built-in handlers in registration order. Order does
// not affect help output; the registry sorts verbs itself.
func Providers() []command.Handler {
	return []command.Handler{
		&Check{},
		&Ingest{},
	}
}
