package config

import (
	"errors"
	"fmt"

	"playtime/internal/media"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateIMDB(); err != nil {
		return err
	}
	if err := c.validateIdentify(); err != nil {
		return err
	}
	if err := c.validateSymlink(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateIMDB() error {
	if c.IMDB.BaseURL == "" {
		return errors.New("imdb.base_url must be set")
	}
	if c.IMDB.SuggestionURL == "" {
		return errors.New("imdb.suggestion_url must be set")
	}
	return nil
}

func (c *Config) validateIdentify() error {
	if len(c.Identify.TextfileExtensions) == 0 {
		return errors.New("identify.textfile_extensions must not be empty")
	}
	for _, ext := range c.Identify.TextfileExtensions {
		if ext == "" {
			return errors.New("identify.textfile_extensions must not contain empty entries")
		}
	}
	return nil
}

// validateSymlink rejects unknown category names at startup instead of
// silently producing an empty tree for them.
func (c *Config) validateSymlink() error {
	if len(c.Symlink.Categories) == 0 {
		return errors.New("symlink.categories must not be empty")
	}
	for _, name := range c.Symlink.Categories {
		if _, err := media.ParseCategory(name); err != nil {
			return fmt.Errorf("symlink.categories: %w", err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
