// Package update orchestrates the cache update flow: per-directory
// identification with incremental flushes, staleness refresh, and the final
// cleaning pass.
package update
