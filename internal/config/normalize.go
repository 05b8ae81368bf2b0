package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = ExpandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}

	c.IMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.IMDB.BaseURL), "/")
	c.IMDB.SuggestionURL = strings.TrimRight(strings.TrimSpace(c.IMDB.SuggestionURL), "/")
	c.IMDB.Language = strings.TrimSpace(c.IMDB.Language)
	if c.IMDB.Language == "" {
		c.IMDB.Language = defaultIMDBLanguage
	}

	for index, ext := range c.Identify.TextfileExtensions {
		c.Identify.TextfileExtensions[index] = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	}
	c.Identify.HintFilename = strings.TrimSpace(c.Identify.HintFilename)
	if c.Identify.HintFilename == "" {
		c.Identify.HintFilename = defaultHintFilename
	}
	if c.Identify.MaxTextfileBytes <= 0 {
		c.Identify.MaxTextfileBytes = defaultMaxTextfileBytes
	}

	for index, name := range c.Symlink.Categories {
		c.Symlink.Categories[index] = strings.ToLower(strings.TrimSpace(name))
	}
	if c.Symlink.RuntimeInterval <= 0 {
		c.Symlink.RuntimeInterval = defaultRuntimeInterval
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
