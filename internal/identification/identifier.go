package identification

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"playtime/internal/imdb"
	"playtime/internal/logging"
	"playtime/internal/media"
	"playtime/internal/moviecache"
	"playtime/internal/searchcache"
)

// Options tunes the identification strategy chain.
type Options struct {
	// TextfileExtensions are the hint textfile extensions scanned in step two.
	TextfileExtensions []string
	// HintFilename is the single file re-scanned for already-mapped directories.
	HintFilename string
	// MaxTextfileBytes caps hint file candidates; larger files are skipped.
	MaxTextfileBytes int64
	// SkipTextfiles disables the hint-file strategy.
	SkipTextfiles bool
	// SkipSearch disables the name-parse plus provider-search strategy.
	SkipSearch bool
	// SearchConfirmation interactively confirms each search string.
	SearchConfirmation bool

	// PromptInput and PromptOutput override the confirmation streams in tests.
	PromptInput  io.Reader
	PromptOutput io.Writer
}

func (o *Options) applyDefaults() {
	if len(o.TextfileExtensions) == 0 {
		o.TextfileExtensions = []string{"txt", "nfo"}
	}
	if o.HintFilename == "" {
		o.HintFilename = "imdb.txt"
	}
	if o.MaxTextfileBytes <= 0 {
		o.MaxTextfileBytes = MaxTextfileBytes
	}
}

// Identifier resolves movie directories to cached metadata records using an
// ordered strategy chain: cache consistency, hint textfiles, then directory
// name parsing plus a provider search.
type Identifier struct {
	provider imdb.Provider
	cache    *moviecache.Cache
	searches *searchcache.Store
	opts     Options
	logger   *slog.Logger
}

// New constructs an Identifier. The search store may be nil to disable search
// memoization.
func New(provider imdb.Provider, cache *moviecache.Cache, searches *searchcache.Store, opts Options, logger *slog.Logger) *Identifier {
	opts.applyDefaults()
	return &Identifier{
		provider: provider,
		cache:    cache,
		searches: searches,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "identification"),
	}
}

// IdentifyDirectory resolves one movie directory. It returns true when the
// directory ends up mapped (including the already-correctly-mapped case) and
// false when every strategy is exhausted. The returned error reports cache
// persistence failures only; provider failures are handled internally.
func (i *Identifier) IdentifyDirectory(ctx context.Context, moviedir string) (bool, error) {
	logger := i.logger.With(logging.String("dir", moviedir))

	// Step one: an already-mapped directory only needs its hint file
	// re-checked. No hint, or a hint agreeing with the cache, means the
	// mapping stands and repeat runs stay cheap.
	hintID := ""
	if cachedID, ok := i.cache.DirectoryID(moviedir); ok {
		hintID = findIDInTextfiles([]string{filepath.Join(moviedir, i.opts.HintFilename)}, logger)
		if hintID == "" || hintID == cachedID {
			logger.Debug("directory already identified", logging.String("imdb_id", cachedID))
			return true, nil
		}
		logger.Info("hint file disagrees with cache, re-identifying",
			logging.String("hint_id", hintID),
			logging.String("cached_id", cachedID))
	}

	movie := i.identify(ctx, moviedir, hintID, logger)
	if movie == nil {
		logger.Warn("unable to identify movie directory")
		return false, nil
	}

	logger.Info("identified movie",
		logging.String("imdb_id", movie.ImdbID),
		logging.String("movie", movie.Short()))

	i.cache.SetDirectory(moviedir, movie.ImdbID)
	if _, exists := i.cache.Movie(movie.ImdbID); !exists {
		i.cache.SetMovie(*movie)
	}
	// Flush now so a crash later in the run loses at most the in-flight
	// directory.
	if err := i.cache.Save(); err != nil {
		return true, fmt.Errorf("persist identification of %s: %w", moviedir, err)
	}
	return true, nil
}

// identify walks the fallback chain and produces a record, or nil when the
// directory cannot be identified. Provider errors are treated as "no result"
// at whichever step they occur.
func (i *Identifier) identify(ctx context.Context, moviedir, hintID string, logger *slog.Logger) *media.Movie {
	id := hintID

	if id == "" && !i.opts.SkipTextfiles {
		textfiles := findTextfiles(moviedir, i.opts.TextfileExtensions, i.opts.MaxTextfileBytes, logger)
		id = findIDInTextfiles(textfiles, logger)
	}

	if id == "" && !i.opts.SkipSearch {
		id = i.searchByName(ctx, moviedir, logger)
	}

	if id == "" {
		return nil
	}

	// Reuse an existing record rather than re-fetching for every duplicate
	// copy of the same movie.
	if movie, ok := i.cache.Movie(id); ok {
		return &movie
	}
	movie, err := i.provider.GetTitle(ctx, id)
	if err != nil {
		logger.Warn("imdb lookup failed",
			logging.String("imdb_id", id),
			logging.Error(err))
		return nil
	}
	return movie
}

func (i *Identifier) searchByName(ctx context.Context, moviedir string, logger *slog.Logger) string {
	parsed := ParseDirName(filepath.Base(moviedir))
	if parsed.Title == "" {
		logger.Warn("failed to parse a title from the directory name; " +
			"rename the directory or add the movie's imdb url to a hint textfile inside it")
		return ""
	}

	query := parsed.Title
	if parsed.Year != 0 {
		query = parsed.Title + " " + strconv.Itoa(parsed.Year)
	}
	if i.opts.SearchConfirmation {
		query = confirmSearch(query, i.opts.PromptInput, i.opts.PromptOutput)
	}

	if i.searches != nil {
		if id, ok, err := i.searches.Lookup(ctx, query); err == nil && ok {
			logger.Debug("search memoized", logging.String("query", query), logging.String("imdb_id", id))
			return id
		}
	}

	logger.Info("searching imdb", logging.String("query", query))
	results, err := i.provider.SearchTitle(ctx, query)
	if err != nil {
		logger.Warn("imdb search failed", logging.String("query", query), logging.Error(err))
		return ""
	}
	if len(results) == 0 {
		logger.Warn("no search results", logging.String("query", query))
		return ""
	}

	// The first result is authoritative; no further disambiguation.
	id := results[0].ID
	if i.searches != nil {
		if err := i.searches.Put(ctx, query, id); err != nil {
			logger.Warn("failed to memoize search", logging.String("query", query), logging.Error(err))
		}
	}
	return id
}

// PersistHints writes the IMDb URL of every identified directory into its
// hint textfile, pinning identification for future runs.
func (i *Identifier) PersistHints(filename string) error {
	if strings.ContainsRune(filename, filepath.Separator) {
		return fmt.Errorf("hint filename %q must not contain path separators", filename)
	}
	for _, mapping := range i.cache.Mappings() {
		movie, ok := i.cache.Movie(mapping.ImdbID)
		if !ok {
			continue
		}
		path := filepath.Join(mapping.Dir, filename)
		if err := writeHintFile(path, movie.ImdbURL()); err != nil {
			return err
		}
		i.logger.Debug("wrote imdb url hint",
			logging.String("path", path),
			logging.String("url", movie.ImdbURL()))
	}
	return nil
}
