package config

const (
	defaultCacheDir         = "~/.cache/playtime"
	defaultIMDBBaseURL      = "https://www.imdb.com"
	defaultSuggestionURL    = "https://v3.sg.media-imdb.com/suggestion/x"
	defaultIMDBLanguage     = "en"
	defaultHintFilename     = "imdb.txt"
	defaultMaxTextfileBytes = 1 << 20
	defaultRuntimeInterval  = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
		},
		IMDB: IMDB{
			BaseURL:       defaultIMDBBaseURL,
			SuggestionURL: defaultSuggestionURL,
			Language:      defaultIMDBLanguage,
		},
		Identify: Identify{
			TextfileExtensions: []string{"txt", "nfo"},
			HintFilename:       defaultHintFilename,
			MaxTextfileBytes:   defaultMaxTextfileBytes,
			SearchCache:        true,
		},
		Symlink: Symlink{
			Categories:      []string{"genres", "year", "directors", "actors", "runtime"},
			RuntimeInterval: defaultRuntimeInterval,
			Relative:        true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
