// Package media defines the Movie metadata record and the closed set of
// categories a movie contributes values to when derived trees are built.
package media
