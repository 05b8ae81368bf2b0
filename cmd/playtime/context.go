package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"playtime/internal/config"
	"playtime/internal/fileutil"
	"playtime/internal/imdb"
	"playtime/internal/logging"
	"playtime/internal/moviecache"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool
	quietFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verboseFlag, quietFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
		quietFlag:   quietFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.quietFlag != nil && *c.quietFlag {
			level = "warn"
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			level = "debug"
		}
		logger, err := logging.New(logging.Options{Level: level, Format: cfg.Logging.Format})
		if err != nil {
			c.loggerErr = fmt.Errorf("setup logging: %w", err)
			return
		}
		c.logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	})
	return c.logger, c.loggerErr
}

// appEnv bundles the collaborators most commands need.
type appEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	cache  *moviecache.Cache
}

// withEnv loads config and cache and runs fn. When exclusive is set an
// advisory lock on the cache directory is held for the duration, so two
// mutating playtime processes never race on the cache file.
func (c *commandContext) withEnv(exclusive bool, fn func(*appEnv) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	if exclusive {
		if err := fileutil.EnsureDir(cfg.Paths.CacheDir); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
		lock := flock.New(cfg.LockPath())
		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return fmt.Errorf("another playtime process holds %s", cfg.LockPath())
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	cache, err := moviecache.Open(cfg.Paths.CacheDir, logger)
	if err != nil {
		return err
	}
	return fn(&appEnv{cfg: cfg, logger: logger, cache: cache})
}

func (c *commandContext) newProvider() (*imdb.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return imdb.New(cfg.IMDB.BaseURL, cfg.IMDB.SuggestionURL, cfg.IMDB.Language)
}
