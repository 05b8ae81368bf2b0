// Package moviecache persists the directory-to-movie mappings and movie
// metadata records that every other subsystem reads.
//
// The whole aggregate lives in one JSON document written via
// write-to-temp-then-rename, so a crash never leaves a half-written cache.
// Directory keys are canonicalized before use to keep one physical directory
// from appearing under two paths.
package moviecache
