package refresh

import (
	"context"
	"log/slog"

	"playtime/internal/imdb"
	"playtime/internal/logging"
	"playtime/internal/moviecache"
)

// Refresher replaces cached movie records whose data has grown stale. It
// works purely by id and never re-derives directory identifications.
type Refresher struct {
	provider imdb.Provider
	cache    *moviecache.Cache
	logger   *slog.Logger
}

// New constructs a Refresher.
func New(provider imdb.Provider, cache *moviecache.Cache, logger *slog.Logger) *Refresher {
	return &Refresher{
		provider: provider,
		cache:    cache,
		logger:   logging.NewComponentLogger(logger, "refresh"),
	}
}

// Run re-fetches every record whose age in whole days meets or exceeds
// maxAgeDays (force refreshes all) and replaces it wholesale. A failed fetch
// keeps the old record: staleness is tolerable, losing identification is not.
func (r *Refresher) Run(ctx context.Context, maxAgeDays int, force bool) error {
	var stale []string
	for _, movie := range r.cache.Movies() {
		if force || movie.DataAgeDays() >= maxAgeDays {
			r.logger.Debug("movie data is stale",
				logging.String("imdb_id", movie.ImdbID),
				logging.String("movie", movie.Short()),
				logging.Int("age_days", movie.DataAgeDays()),
				logging.Int("max_age_days", maxAgeDays))
			stale = append(stale, movie.ImdbID)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	r.logger.Info("refreshing stale movie data", logging.Int("count", len(stale)))
	refreshed := 0
	for index, id := range stale {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.logger.Info("fetching updated movie data",
			logging.Int("index", index+1),
			logging.Int("count", len(stale)),
			logging.String("imdb_id", id))
		movie, err := r.provider.GetTitle(ctx, id)
		if err != nil {
			r.logger.Warn("unable to refresh movie data, keeping stale record",
				logging.String("imdb_id", id),
				logging.Error(err))
			continue
		}
		r.cache.SetMovie(*movie)
		refreshed++
	}

	if refreshed == 0 {
		return nil
	}
	return r.cache.Save()
}
