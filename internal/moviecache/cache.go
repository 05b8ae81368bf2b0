package moviecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"playtime/internal/fileutil"
	"playtime/internal/logging"
	"playtime/internal/media"
)

const (
	cacheFilename = "playtime.json"
	coverDirname  = "covers"
)

// Mapping is one directory-to-movie association.
type Mapping struct {
	Dir    string
	ImdbID string
}

// Cache is the persisted aggregate of directory mappings and movie records.
// It is loaded once at process start and written back atomically after every
// meaningful mutation.
type Cache struct {
	dir    string
	path   string
	logger *slog.Logger

	mu          sync.RWMutex
	directories map[string]string
	movies      map[string]media.Movie
}

type document struct {
	Directories map[string]string      `json:"directories"`
	Movies      map[string]media.Movie `json:"movies"`
}

// Open ensures the cache directory and cover store exist and loads the cache
// file. A missing file yields an empty cache; an unparseable file yields an
// empty cache and a warning (the old data is lost, not partially recovered).
func Open(cacheDir string, logger *slog.Logger) (*Cache, error) {
	logger = logging.NewComponentLogger(logger, "moviecache")

	if err := fileutil.EnsureDir(cacheDir); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	if err := fileutil.EnsureDir(filepath.Join(cacheDir, coverDirname)); err != nil {
		return nil, fmt.Errorf("create cover directory: %w", err)
	}

	c := &Cache{
		dir:         cacheDir,
		path:        filepath.Join(cacheDir, cacheFilename),
		logger:      logger,
		directories: make(map[string]string),
		movies:      make(map[string]media.Movie),
	}

	if err := c.load(); err != nil {
		logger.Warn("failed to load cache file, starting with empty cache",
			logging.String("path", c.path),
			logging.Error(err))
	}
	return c, nil
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("cache file not found, starting with empty cache",
				logging.String("path", c.path))
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}
	if doc.Directories != nil {
		c.directories = doc.Directories
	}
	if doc.Movies != nil {
		c.movies = doc.Movies
	}

	c.logger.Debug("loaded cache file",
		logging.Int("directory_count", len(c.directories)),
		logging.Int("movie_count", len(c.movies)),
		logging.String("path", c.path))
	return nil
}

// Save serializes the aggregate to a temp file beside the cache file and
// atomically renames it into place.
func (c *Cache) Save() error {
	c.mu.RLock()
	doc := document{Directories: c.directories, Movies: c.movies}
	data, err := json.MarshalIndent(doc, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := fileutil.WriteFileAtomic(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	c.logger.Debug("wrote cache file",
		logging.Int("directory_count", c.Len()),
		logging.Int("movie_count", c.MovieCount()),
		logging.String("path", c.path))
	return nil
}

// Path returns the cache file location.
func (c *Cache) Path() string { return c.path }

// CoverDir returns the directory holding downloaded cover images.
func (c *Cache) CoverDir() string { return filepath.Join(c.dir, coverDirname) }

// CoverPath returns the cover store location for the given movie id.
func (c *Cache) CoverPath(imdbID string) string {
	return filepath.Join(c.CoverDir(), imdbID+".jpg")
}

// SetDirectory records that dir contains a copy of the movie with the given id.
func (c *Cache) SetDirectory(dir, imdbID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.directories[dir] = imdbID
}

// DirectoryID returns the id mapped to dir, if any.
func (c *Cache) DirectoryID(dir string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.directories[dir]
	return id, ok
}

// SetMovie adds or replaces the record for the movie's id.
func (c *Cache) SetMovie(m media.Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.movies[m.ImdbID] = m
}

// Movie returns the record for the given id, if present. During
// identification a directory can be mapped before its record is stored, so
// callers must tolerate a miss.
func (c *Cache) Movie(imdbID string) (media.Movie, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.movies[imdbID]
	return m, ok
}

// Movies returns all records sorted by id.
func (c *Cache) Movies() []media.Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()
	movies := make([]media.Movie, 0, len(c.movies))
	for _, m := range c.movies {
		movies = append(movies, m)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ImdbID < movies[j].ImdbID })
	return movies
}

// Mappings returns all directory mappings sorted by directory path.
func (c *Cache) Mappings() []Mapping {
	c.mu.RLock()
	defer c.mu.RUnlock()
	mappings := make([]Mapping, 0, len(c.directories))
	for dir, id := range c.directories {
		mappings = append(mappings, Mapping{Dir: dir, ImdbID: id})
	}
	sort.Slice(mappings, func(i, j int) bool { return mappings[i].Dir < mappings[j].Dir })
	return mappings
}

// Len returns the number of directory mappings.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.directories)
}

// MovieCount returns the number of movie records.
func (c *Cache) MovieCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.movies)
}

// CountDirectories returns how many directories map to the given id. A value
// above one means duplicate copies of the same movie.
func (c *Cache) CountDirectories(imdbID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	for _, id := range c.directories {
		if id == imdbID {
			count++
		}
	}
	return count
}

// Basedirs returns the sorted distinct parent directories of all mapped
// directories. The basedir set is derived, never persisted separately.
func (c *Cache) Basedirs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]struct{})
	for dir := range c.directories {
		seen[filepath.Dir(dir)] = struct{}{}
	}
	basedirs := make([]string, 0, len(seen))
	for dir := range seen {
		basedirs = append(basedirs, dir)
	}
	sort.Strings(basedirs)
	return basedirs
}

// Clean removes directory mappings whose path no longer exists on the
// filesystem, then removes movie records no longer referenced by any
// surviving mapping, and persists the result.
func (c *Cache) Clean() error {
	c.mu.Lock()
	var removedDirs []string
	for dir := range c.directories {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			removedDirs = append(removedDirs, dir)
		}
	}
	sort.Strings(removedDirs)
	for _, dir := range removedDirs {
		c.logger.Warn("directory no longer exists, removing from cache",
			logging.String("dir", dir),
			logging.String("imdb_id", c.directories[dir]))
		delete(c.directories, dir)
	}

	referenced := make(map[string]struct{}, len(c.directories))
	for _, id := range c.directories {
		referenced[id] = struct{}{}
	}
	var removedMovies []string
	for id := range c.movies {
		if _, ok := referenced[id]; !ok {
			removedMovies = append(removedMovies, id)
		}
	}
	sort.Strings(removedMovies)
	for _, id := range removedMovies {
		c.logger.Warn("movie no longer referenced by any directory, removing from cache",
			logging.String("imdb_id", id),
			logging.String("movie", c.movies[id].Short()))
		delete(c.movies, id)
	}
	c.mu.Unlock()

	return c.Save()
}

// PurgeDirectories removes the given directory mappings and persists the
// result. Unknown directories are reported, not fatal.
func (c *Cache) PurgeDirectories(dirs []string) error {
	c.mu.Lock()
	for _, dir := range dirs {
		id, ok := c.directories[dir]
		if !ok {
			c.logger.Warn("directory not found in cache, cannot purge",
				logging.String("dir", dir))
			continue
		}
		c.logger.Info("purging directory from cache",
			logging.String("dir", dir),
			logging.String("imdb_id", id))
		delete(c.directories, dir)
	}
	c.mu.Unlock()
	return c.Save()
}

// PurgeIDs removes the given movie records along with every directory mapping
// that references them, and persists the result.
func (c *Cache) PurgeIDs(imdbIDs []string) error {
	c.mu.Lock()
	for _, id := range imdbIDs {
		if m, ok := c.movies[id]; ok {
			c.logger.Info("purging movie from cache",
				logging.String("imdb_id", id),
				logging.String("movie", m.Short()))
			delete(c.movies, id)
		} else {
			c.logger.Warn("imdb id not found in cache, cannot purge",
				logging.String("imdb_id", id))
		}
		for dir, mapped := range c.directories {
			if mapped == id {
				c.logger.Info("purging directory with purged imdb id from cache",
					logging.String("dir", dir),
					logging.String("imdb_id", id))
				delete(c.directories, dir)
			}
		}
	}
	c.mu.Unlock()
	return c.Save()
}

// CanonicalPath resolves dir to an absolute path with symlinks evaluated, so
// the same physical directory reached two ways maps to one cache key. A path
// that does not exist is only made absolute.
func CanonicalPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return abs, nil
		}
		return "", fmt.Errorf("resolve symlinks for %q: %w", abs, err)
	}
	return resolved, nil
}
