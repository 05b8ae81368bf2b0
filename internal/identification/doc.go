// Package identification resolves movie directories to IMDb ids.
//
// The Identifier walks an ordered fallback chain per directory: an existing
// cache mapping (re-validated against the hint textfile), an IMDb id found in
// plain-text files inside the directory, and finally a title parsed from the
// directory name fed to a free-text provider search. Provider failures are
// absorbed as "no result" so a bad network day never destroys prior state.
package identification
