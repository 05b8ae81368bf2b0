package update

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"playtime/internal/identification"
	"playtime/internal/logging"
	"playtime/internal/moviecache"
	"playtime/internal/refresh"
)

// Options tunes one update run.
type Options struct {
	// UpdateAgeDays is the staleness threshold for metadata refresh.
	UpdateAgeDays int
	// ForceUpdate refreshes every record regardless of age.
	ForceUpdate bool
	// SkipCacheClean leaves vanished directories and orphaned records in place.
	SkipCacheClean bool
}

// Updater drives the full update flow: identify every subdirectory of every
// basedir, refresh stale metadata, then clean the cache.
type Updater struct {
	identifier *identification.Identifier
	refresher  *refresh.Refresher
	cache      *moviecache.Cache
	logger     *slog.Logger
}

// New constructs an Updater.
func New(identifier *identification.Identifier, refresher *refresh.Refresher, cache *moviecache.Cache, logger *slog.Logger) *Updater {
	return &Updater{
		identifier: identifier,
		refresher:  refresher,
		cache:      cache,
		logger:     logging.NewComponentLogger(logger, "update"),
	}
}

// Run performs the update flow over the union of the cache's known basedirs
// and newBasedirs. Unidentifiable directories are collected and reported at
// the end; they never abort the run.
func (u *Updater) Run(ctx context.Context, newBasedirs []string, opts Options) error {
	basedirs, err := u.collectBasedirs(newBasedirs)
	if err != nil {
		return err
	}
	u.logger.Debug("looking for movies", logging.Any("basedirs", basedirs))

	var fails []string
	for _, basedir := range basedirs {
		failed, err := u.updateBasedir(ctx, basedir)
		if err != nil {
			return err
		}
		fails = append(fails, failed...)
	}
	if len(fails) > 0 {
		u.logger.Warn("some directories could not be identified; rename them or "+
			"add the movie's imdb url to an imdb.txt file inside the directory",
			logging.Int("count", len(fails)))
		for _, fail := range fails {
			u.logger.Warn("unidentified directory", logging.String("dir", fail))
		}
	}

	if err := u.refresher.Run(ctx, opts.UpdateAgeDays, opts.ForceUpdate); err != nil {
		return fmt.Errorf("refresh movie data: %w", err)
	}

	if opts.SkipCacheClean {
		return u.cache.Save()
	}
	if err := u.cache.Clean(); err != nil {
		return fmt.Errorf("clean cache: %w", err)
	}
	return nil
}

// updateBasedir identifies every immediate subdirectory of basedir, in
// directory iteration order, flushing the cache after each success.
func (u *Updater) updateBasedir(ctx context.Context, basedir string) ([]string, error) {
	entries, err := os.ReadDir(basedir)
	if err != nil {
		u.logger.Warn("cannot read basedir, skipping",
			logging.String("basedir", basedir),
			logging.Error(err))
		return nil, nil
	}

	var fails []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return fails, err
		}
		if !entry.IsDir() {
			continue
		}
		moviedir, err := moviecache.CanonicalPath(basedir + string(os.PathSeparator) + entry.Name())
		if err != nil {
			u.logger.Warn("cannot canonicalize movie directory, skipping",
				logging.String("dir", entry.Name()),
				logging.Error(err))
			continue
		}
		identified, err := u.identifier.IdentifyDirectory(ctx, moviedir)
		if err != nil {
			return fails, err
		}
		if !identified {
			fails = append(fails, moviedir)
		}
	}
	return fails, nil
}

// collectBasedirs unions the cache's derived basedirs with the caller's new
// ones, canonicalized and deduplicated.
func (u *Updater) collectBasedirs(newBasedirs []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, dir := range u.cache.Basedirs() {
		seen[dir] = struct{}{}
	}
	for _, dir := range newBasedirs {
		canonical, err := moviecache.CanonicalPath(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve basedir %q: %w", dir, err)
		}
		seen[canonical] = struct{}{}
	}
	basedirs := make([]string, 0, len(seen))
	for dir := range seen {
		basedirs = append(basedirs, dir)
	}
	sort.Strings(basedirs)
	return basedirs, nil
}
