package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"playtime/internal/identification"
	"playtime/internal/refresh"
	"playtime/internal/searchcache"
	"playtime/internal/update"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var updateAgeDays int
	var forceUpdate bool
	var searchConfirmation bool
	var skipTextfiles bool
	var skipSearch bool
	var skipCacheClean bool

	cmd := &cobra.Command{
		Use:   "update [basedirs...]",
		Short: "Identify movie directories and update the metadata cache",
		Long: `Identify every movie directory under the known basedirs plus any new
basedirs given as arguments, refresh stale metadata, and clean cache entries
whose directories no longer exist. Each basedir is expected to contain one
subdirectory per movie.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := ctx.newProvider()
			if err != nil {
				return err
			}
			return ctx.withEnv(true, func(env *appEnv) error {
				var searches *searchcache.Store
				if env.cfg.Identify.SearchCache {
					searches, err = searchcache.Open(env.cfg.SearchCachePath(), env.logger)
					if err != nil {
						return fmt.Errorf("open search cache: %w", err)
					}
					defer searches.Close()
				}

				identifier := identification.New(provider, env.cache, searches, identification.Options{
					TextfileExtensions: env.cfg.Identify.TextfileExtensions,
					HintFilename:       env.cfg.Identify.HintFilename,
					MaxTextfileBytes:   env.cfg.Identify.MaxTextfileBytes,
					SkipTextfiles:      skipTextfiles,
					SkipSearch:         skipSearch,
					SearchConfirmation: searchConfirmation,
				}, env.logger)
				refresher := refresh.New(provider, env.cache, env.logger)
				updater := update.New(identifier, refresher, env.cache, env.logger)

				return updater.Run(cmd.Context(), args, update.Options{
					UpdateAgeDays:  updateAgeDays,
					ForceUpdate:    forceUpdate,
					SkipCacheClean: skipCacheClean,
				})
			})
		},
	}

	cmd.Flags().IntVarP(&updateAgeDays, "update-age-days", "u", 30, "Days between metadata refreshes for a movie")
	cmd.Flags().BoolVarP(&forceUpdate, "force-update", "f", false, "Refresh metadata for all movies regardless of age")
	cmd.Flags().BoolVarP(&searchConfirmation, "search-confirmation", "s", false, "Interactively confirm each IMDb search string")
	cmd.Flags().BoolVar(&skipTextfiles, "skip-textfiles", false, "Do not scan textfiles for IMDb ids")
	cmd.Flags().BoolVar(&skipSearch, "skip-imdb-search", false, "Do not search IMDb when identifying movies")
	cmd.Flags().BoolVar(&skipCacheClean, "skip-cache-clean", false, "Do not remove vanished directories from the cache")

	return cmd
}
