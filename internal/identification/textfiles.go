package identification

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"playtime/internal/imdb"
	"playtime/internal/logging"
)

// MaxTextfileBytes is the default size ceiling for hint textfile candidates.
const MaxTextfileBytes = 1 << 20

// findTextfiles returns the hint textfile candidates inside moviedir, in
// stable file order. Non-regular files and files above maxBytes are skipped
// with a warning.
func findTextfiles(moviedir string, extensions []string, maxBytes int64, logger *slog.Logger) []string {
	var textfiles []string
	for _, ext := range extensions {
		matches, err := filepath.Glob(filepath.Join(moviedir, "*."+ext))
		if err != nil {
			continue
		}
		sort.Strings(matches)
		for _, path := range matches {
			info, err := os.Lstat(path)
			if err != nil {
				continue
			}
			if !info.Mode().IsRegular() {
				logger.Warn("skipping non-regular hint file candidate",
					logging.String("path", path))
				continue
			}
			if info.Size() > maxBytes {
				logger.Warn("skipping oversized hint file candidate",
					logging.String("path", path),
					logging.Int64("size", info.Size()))
				continue
			}
			textfiles = append(textfiles, path)
		}
	}
	return textfiles
}

// findIDInTextfiles searches the files for an IMDb id; the first match in the
// first matching file wins. Files that vanished or cannot be read count as
// non-matches.
func findIDInTextfiles(textfiles []string, logger *slog.Logger) string {
	for _, path := range textfiles {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if id := imdb.IDPattern.FindString(decodeText(data)); id != "" {
			logger.Debug("found imdb id in hint file",
				logging.String("imdb_id", id),
				logging.String("path", path))
			return id
		}
	}
	return ""
}

func writeHintFile(path, url string) error {
	return os.WriteFile(path, []byte(url+"\n"), 0o644)
}

// decodeText decodes file content as UTF-8 when valid, falling back to
// Latin-1 for files of unknown encoding (every byte sequence is valid
// Latin-1, so this never fails).
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
