package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"playtime/internal/media"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	CacheDir string `toml:"cache_dir"`
}

// IMDB contains configuration for the IMDb metadata provider.
type IMDB struct {
	BaseURL       string `toml:"base_url"`
	SuggestionURL string `toml:"suggestion_url"`
	Language      string `toml:"language"`
}

// Identify contains configuration for the identification strategy chain.
type Identify struct {
	// TextfileExtensions are scanned for IMDb ids inside movie directories.
	TextfileExtensions []string `toml:"textfile_extensions"`
	// HintFilename pins the identification of an already-mapped directory.
	HintFilename string `toml:"hint_filename"`
	// MaxTextfileBytes caps hint file candidates; larger files are skipped.
	MaxTextfileBytes int64 `toml:"max_textfile_bytes"`
	// SearchCache memoizes title searches in a local SQLite database.
	SearchCache bool `toml:"search_cache"`
}

// Symlink contains configuration for derived category trees.
type Symlink struct {
	Categories      []string `toml:"categories"`
	RuntimeInterval int      `toml:"runtime_interval"`
	Relative        bool     `toml:"relative"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for playtime.
type Config struct {
	Paths    Paths    `toml:"paths"`
	IMDB     IMDB     `toml:"imdb"`
	Identify Identify `toml:"identify"`
	Symlink  Symlink  `toml:"symlink"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/playtime/config.toml")
}

// Sample returns the embedded sample configuration.
func Sample() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// LockPath returns the location of the single-process lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.CacheDir, "playtime.lock")
}

// SearchCachePath returns the location of the search memo database.
func (c *Config) SearchCachePath() string {
	return filepath.Join(c.Paths.CacheDir, "searches.db")
}

// Categories returns the configured symlink categories, parsed and validated.
func (c *Config) Categories() ([]media.Category, error) {
	categories := make([]media.Category, 0, len(c.Symlink.Categories))
	for _, name := range c.Symlink.Categories {
		cat, err := media.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

// ExpandPath expands a leading ~ to the user home directory and resolves the
// result to an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
