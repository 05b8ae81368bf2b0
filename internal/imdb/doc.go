// Package imdb looks up movie metadata on IMDb.
//
// Free-text searches go through the public suggestion API; full records come
// from the schema.org JSON-LD payload embedded in title pages, enriched with
// the page-state fields (spoken languages, chart rankings) schema.org lacks.
// The Provider interface lets other packages swap in fakes for tests.
package imdb
