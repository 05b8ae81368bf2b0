// Package logging configures slog output for the playtime CLI.
//
// It provides console and JSON handlers behind a single Options struct,
// attribute helper aliases so call sites stay terse, and component loggers
// that tag every record with the subsystem that emitted it.
package logging
