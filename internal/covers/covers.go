package covers

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"playtime/internal/fileutil"
	"playtime/internal/logging"
	"playtime/internal/moviecache"
)

// PosterFilename is the cover file placed inside each movie directory.
const PosterFilename = "poster.jpg"

// Manager downloads cover images into the cache cover store and places a
// poster in every mapped movie directory.
type Manager struct {
	cache      *moviecache.Cache
	httpClient *http.Client
	logger     *slog.Logger
}

// New constructs a Manager. A nil httpClient selects http.DefaultClient.
func New(cache *moviecache.Cache, httpClient *http.Client, logger *slog.Logger) *Manager {
	return &Manager{
		cache:      cache,
		httpClient: httpClient,
		logger:     logging.NewComponentLogger(logger, "covers"),
	}
}

// Download fetches missing covers for every cached movie into the cover
// store. Movies without a cover URL are skipped with a warning; existing
// covers are kept unless force is set.
func (m *Manager) Download(ctx context.Context, force bool) error {
	for _, movie := range m.cache.Movies() {
		if err := ctx.Err(); err != nil {
			return err
		}
		coverPath := m.cache.CoverPath(movie.ImdbID)
		if _, err := os.Stat(coverPath); err == nil && !force {
			m.logger.Debug("cover already in cache, skipping download",
				logging.String("path", coverPath))
			continue
		}
		if movie.PrimaryImage == "" {
			m.logger.Warn("movie has no cover url, skipping",
				logging.String("movie", movie.Short()))
			continue
		}
		m.logger.Info("downloading cover",
			logging.String("movie", movie.Short()),
			logging.String("path", coverPath))
		if err := fileutil.DownloadFile(ctx, m.httpClient, movie.PrimaryImage, coverPath); err != nil {
			m.logger.Warn("cover download failed",
				logging.String("movie", movie.Short()),
				logging.Error(err))
		}
	}
	return nil
}

// Distribute places a poster in every mapped movie directory, copied when
// saveCopies is set, else symlinked into the cover store. An existing poster
// of the wrong kind (link where a copy was requested, or vice versa) is
// deleted and regenerated; one of the right kind is left alone.
func (m *Manager) Distribute(saveCopies bool) error {
	for _, mapping := range m.cache.Mappings() {
		movie, ok := m.cache.Movie(mapping.ImdbID)
		if !ok {
			continue
		}
		cacheCover := m.cache.CoverPath(movie.ImdbID)
		if _, err := os.Stat(cacheCover); err != nil {
			m.logger.Warn("cover not in cache, skipping",
				logging.String("movie", movie.Short()),
				logging.String("path", cacheCover))
			continue
		}
		poster := filepath.Join(mapping.Dir, PosterFilename)
		if err := PlaceCover(cacheCover, poster, saveCopies); err != nil {
			m.logger.Warn("failed to place poster",
				logging.String("path", poster),
				logging.Error(err))
		}
	}
	return nil
}

// PlaceCover materializes src at dest as a copy or a symlink. A dest of the
// requested kind is kept as is; one of the wrong kind is replaced.
func PlaceCover(src, dest string, copyFile bool) error {
	if info, err := os.Lstat(dest); err == nil {
		isLink := info.Mode()&os.ModeSymlink != 0
		if isLink != copyFile {
			return nil
		}
		if err := os.Remove(dest); err != nil {
			return err
		}
	}
	if copyFile {
		return fileutil.CopyFile(src, dest)
	}
	target, err := fileutil.RelativeTo(src, filepath.Dir(dest))
	if err != nil {
		return err
	}
	return os.Symlink(target, dest)
}
