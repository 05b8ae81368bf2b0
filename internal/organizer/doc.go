// Package organizer regenerates browsable category trees from the cache.
//
// Each category subtree is rebuilt from scratch: one container per category
// value, one directory per movie, one symlink per physical copy, posters
// attached from a shared per-tree cover store, and container names finalized
// with entry counts after population. Clean-slate regeneration makes the
// operation idempotent and self-repairing.
package organizer
