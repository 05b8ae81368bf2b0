// Package main hosts the playtime CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into cache
// updates, symlink tree generation, cover downloads, cache maintenance, and
// configuration scaffolding. It centralizes configuration resolution, the
// single-process lock, and structured logging setup so subcommands can focus
// on user experience instead of wiring.
package main
