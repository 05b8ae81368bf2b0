// Package searchcache persists title-search results in SQLite so repeated
// identification runs skip provider searches that already have an answer.
package searchcache
