// Package covers manages the shared cover-image store and the per-directory
// poster files derived from it.
package covers
