package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"playtime/internal/covers"
	"playtime/internal/fileutil"
	"playtime/internal/logging"
	"playtime/internal/media"
	"playtime/internal/moviecache"
)

// sharedCoverDirname is the hidden per-tree cover store.
const sharedCoverDirname = ".covers"

// Options tunes symlink tree generation.
type Options struct {
	// RuntimeInterval is the bucket width in minutes for the runtime category.
	RuntimeInterval int
	// Relative selects relative symlink targets; posters are then relative
	// links into the shared cover store, otherwise copies.
	Relative bool
}

// Builder regenerates category symlink trees from the cache. Every category
// directory is rebuilt from scratch, so a run is idempotent and repairs any
// partially built state a crash left behind.
type Builder struct {
	cache  *moviecache.Cache
	opts   Options
	logger *slog.Logger
}

// New constructs a Builder.
func New(cache *moviecache.Cache, opts Options, logger *slog.Logger) *Builder {
	if opts.RuntimeInterval <= 0 {
		opts.RuntimeInterval = 30
	}
	return &Builder{
		cache:  cache,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "organizer"),
	}
}

// Build regenerates one subtree per category under targetDir.
func (b *Builder) Build(ctx context.Context, targetDir string, categories []media.Category) error {
	if err := fileutil.EnsureDir(targetDir); err != nil {
		return fmt.Errorf("create symlink dir: %w", err)
	}
	sharedCoverDir := filepath.Join(targetDir, sharedCoverDirname)
	if err := fileutil.EnsureDir(sharedCoverDir); err != nil {
		return fmt.Errorf("create shared cover dir: %w", err)
	}

	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.buildCategory(targetDir, sharedCoverDir, category); err != nil {
			return fmt.Errorf("build category %s: %w", category, err)
		}
	}
	return nil
}

// buildCategory rebuilds one category subtree in two phases: populate every
// container, then rename containers with their entry counts. Renaming once at
// the end keeps regeneration idempotent and easy to reason about.
func (b *Builder) buildCategory(targetDir, sharedCoverDir string, category media.Category) error {
	categoryDir := filepath.Join(targetDir, string(category))
	b.logger.Debug("regenerating category tree", logging.String("dir", categoryDir))

	// Clean slate: stale leftovers from prior runs must not survive, at the
	// cost of destroying manual edits inside the category dir.
	if err := os.RemoveAll(categoryDir); err != nil {
		return fmt.Errorf("remove old category dir: %w", err)
	}
	if err := fileutil.EnsureDir(categoryDir); err != nil {
		return fmt.Errorf("create category dir: %w", err)
	}

	things := b.categoryThings(category)
	thingDirs := make([]string, 0, len(things))
	for _, thing := range things {
		thingDir := b.thingDir(categoryDir, category, thing)
		if err := b.populateThing(thing, thingDir, category, sharedCoverDir); err != nil {
			return err
		}
		thingDirs = append(thingDirs, thingDir)
	}

	for _, thingDir := range thingDirs {
		if err := appendCountSuffix(thingDir, category.Unit()); err != nil {
			return err
		}
	}
	if category.IsPerson() {
		if err := b.renameLetterBuckets(categoryDir); err != nil {
			return err
		}
	}
	return nil
}

// categoryThings returns the sorted distinct values cached movies contribute
// to the category.
func (b *Builder) categoryThings(category media.Category) []string {
	seen := make(map[string]struct{})
	for _, movie := range b.cache.Movies() {
		for _, value := range movie.CategoryValues(category, b.opts.RuntimeInterval) {
			if value != "" {
				seen[sanitizeName(value)] = struct{}{}
			}
		}
	}
	things := make([]string, 0, len(seen))
	for thing := range seen {
		things = append(things, thing)
	}
	sort.Strings(things)
	return things
}

// thingDir returns the container directory for a thing. Person-valued
// categories get a first-letter bucket level; everything else is flat.
func (b *Builder) thingDir(categoryDir string, category media.Category, thing string) string {
	if category.IsPerson() {
		letter := strings.ToUpper(string([]rune(thing)[0]))
		return filepath.Join(categoryDir, letter, thing)
	}
	return filepath.Join(categoryDir, thing)
}

// populateThing creates, inside the thing's container, one directory per
// distinct movie and one link per physical copy, plus the movie's poster.
func (b *Builder) populateThing(thing, thingDir string, category media.Category, sharedCoverDir string) error {
	if err := fileutil.EnsureDir(thingDir); err != nil {
		return fmt.Errorf("create container dir: %w", err)
	}

	for _, mapping := range b.cache.Mappings() {
		movie, ok := b.cache.Movie(mapping.ImdbID)
		if !ok {
			continue
		}
		if !contributesTo(movie, category, thing, b.opts.RuntimeInterval) {
			continue
		}

		movieDir := filepath.Join(thingDir, movie.DirName())
		if err := fileutil.EnsureDir(movieDir); err != nil {
			return fmt.Errorf("create movie dir: %w", err)
		}

		b.placePoster(movie, movieDir, sharedCoverDir)

		if err := b.linkCopy(mapping.Dir, movieDir); err != nil {
			return err
		}
	}
	return nil
}

func contributesTo(movie media.Movie, category media.Category, thing string, runtimeInterval int) bool {
	for _, value := range movie.CategoryValues(category, runtimeInterval) {
		if sanitizeName(value) == thing {
			return true
		}
	}
	return false
}

// linkCopy creates the symlink for one physical copy inside the movie's
// container directory, named after the source directory's basename.
func (b *Builder) linkCopy(moviedir, movieDir string) error {
	linkPath := filepath.Join(movieDir, filepath.Base(moviedir))
	if _, err := os.Lstat(linkPath); err == nil {
		// Same-named copies in different basedirs collide here; the first
		// link wins and the rest are left untouched.
		return nil
	}

	target := moviedir
	if b.opts.Relative {
		rel, err := fileutil.RelativeTo(moviedir, movieDir)
		if err != nil {
			return err
		}
		target = rel
	}
	if err := os.Symlink(target, linkPath); err != nil {
		return fmt.Errorf("create movie link: %w", err)
	}
	b.logger.Debug("created movie link",
		logging.String("link", linkPath),
		logging.String("target", target))
	return nil
}

// placePoster materializes the movie's cover once in the shared store and
// attaches it to the movie dir. Missing covers skip the sub-step with a
// warning; they never abort the build.
func (b *Builder) placePoster(movie media.Movie, movieDir, sharedCoverDir string) {
	cacheCover := b.cache.CoverPath(movie.ImdbID)
	if _, err := os.Stat(cacheCover); err != nil {
		b.logger.Warn("no cover in cache, skipping poster",
			logging.String("movie", movie.Short()))
		return
	}

	sharedCover := filepath.Join(sharedCoverDir, movie.CoverFilename())
	if _, err := os.Stat(sharedCover); err != nil {
		if err := fileutil.CopyFile(cacheCover, sharedCover); err != nil {
			b.logger.Warn("failed to copy cover into shared store",
				logging.String("movie", movie.Short()),
				logging.Error(err))
			return
		}
	}

	poster := filepath.Join(movieDir, covers.PosterFilename)
	if err := covers.PlaceCover(sharedCover, poster, !b.opts.Relative); err != nil {
		b.logger.Warn("failed to place poster",
			logging.String("path", poster),
			logging.Error(err))
	}
}

// renameLetterBuckets appends people counts to the first-letter buckets of a
// person category after every thing dir beneath them has been renamed.
func (b *Builder) renameLetterBuckets(categoryDir string) error {
	entries, err := os.ReadDir(categoryDir)
	if err != nil {
		return fmt.Errorf("read category dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := appendCountSuffix(filepath.Join(categoryDir, entry.Name()), "people"); err != nil {
			return err
		}
	}
	return nil
}

// appendCountSuffix renames dir to "dir (N unit)" where N is the number of
// entries actually placed inside it.
func appendCountSuffix(dir, unit string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("count container entries: %w", err)
	}
	counted := fmt.Sprintf("%s (%d %s)", dir, len(entries), unit)
	if err := os.Rename(dir, counted); err != nil {
		return fmt.Errorf("rename container with count: %w", err)
	}
	return nil
}

func sanitizeName(name string) string {
	return strings.ReplaceAll(name, string(os.PathSeparator), "_")
}
