package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("exists = true for a missing file")
	}
	if resolved == "" {
		t.Fatal("resolved path empty")
	}
	if cfg.IMDB.BaseURL != "https://www.imdb.com" {
		t.Fatalf("BaseURL = %q", cfg.IMDB.BaseURL)
	}
	if !cfg.Identify.SearchCache {
		t.Fatal("search cache should default on")
	}
	if !filepath.IsAbs(cfg.Paths.CacheDir) {
		t.Fatalf("CacheDir = %q, want expanded absolute path", cfg.Paths.CacheDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[paths]
cache_dir = "/tmp/playtime-test-cache"

[identify]
textfile_extensions = [".TXT", "info"]
search_cache = false

[symlink]
categories = ["genres", "languages"]
runtime_interval = 45

[logging]
format = "json"
level = "debug"
`)
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("exists = false for a present file")
	}
	if cfg.Paths.CacheDir != "/tmp/playtime-test-cache" {
		t.Fatalf("CacheDir = %q", cfg.Paths.CacheDir)
	}
	// Extensions are normalized to lowercase without a leading dot.
	if cfg.Identify.TextfileExtensions[0] != "txt" || cfg.Identify.TextfileExtensions[1] != "info" {
		t.Fatalf("TextfileExtensions = %v", cfg.Identify.TextfileExtensions)
	}
	if cfg.Identify.SearchCache {
		t.Fatal("search cache not disabled")
	}
	if cfg.Symlink.RuntimeInterval != 45 {
		t.Fatalf("RuntimeInterval = %d", cfg.Symlink.RuntimeInterval)
	}
	categories, err := cfg.Categories()
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("Categories = %v", categories)
	}
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	path := writeConfig(t, `
[symlink]
categories = ["genres", "moods"]
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("Load accepted an unknown category")
	} else if !strings.Contains(err.Error(), "moods") {
		t.Fatalf("error does not name the bad category: %v", err)
	}
}

func TestLoadRejectsBadLogging(t *testing.T) {
	path := writeConfig(t, `
[logging]
format = "xml"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("Load accepted an unknown log format")
	}
}

func TestLockAndSearchCachePaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.CacheDir = "/tmp/playtime-test-cache"
	if got := cfg.LockPath(); got != "/tmp/playtime-test-cache/playtime.lock" {
		t.Fatalf("LockPath = %q", got)
	}
	if got := cfg.SearchCachePath(); got != "/tmp/playtime-test-cache/searches.db" {
		t.Fatalf("SearchCachePath = %q", got)
	}
}

func TestSampleConfigParsesToDefaults(t *testing.T) {
	var cfg Config
	if err := toml.Unmarshal([]byte(Sample()), &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	defaults := Default()
	if cfg.IMDB.BaseURL != defaults.IMDB.BaseURL {
		t.Fatalf("sample base_url = %q, defaults say %q", cfg.IMDB.BaseURL, defaults.IMDB.BaseURL)
	}
	if cfg.Identify.HintFilename != defaults.Identify.HintFilename {
		t.Fatalf("sample hint_filename = %q", cfg.Identify.HintFilename)
	}
	if len(cfg.Symlink.Categories) != len(defaults.Symlink.Categories) {
		t.Fatalf("sample categories = %v", cfg.Symlink.Categories)
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/movies")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "movies") {
		t.Fatalf("ExpandPath = %q", got)
	}
}
