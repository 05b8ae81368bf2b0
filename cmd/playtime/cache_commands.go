package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"playtime/internal/identification"
	"playtime/internal/moviecache"
	"playtime/internal/searchcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the identification cache",
	}

	cacheCmd.AddCommand(newCachePurgedirsCommand(ctx))
	cacheCmd.AddCommand(newCachePurgeidsCommand(ctx))
	cacheCmd.AddCommand(newCachePersistCommand(ctx))
	cacheCmd.AddCommand(newCacheClearSearchesCommand(ctx))

	return cacheCmd
}

func newCachePurgedirsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "purgedirs <moviedir>...",
		Short: "Remove directory mappings from the cache, forcing re-identification",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(true, func(env *appEnv) error {
				dirs := make([]string, 0, len(args))
				for _, arg := range args {
					dir, err := moviecache.CanonicalPath(arg)
					if err != nil {
						return err
					}
					dirs = append(dirs, dir)
				}
				return env.cache.PurgeDirectories(dirs)
			})
		},
	}
}

func newCachePurgeidsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "purgeids <imdb-id>...",
		Short: "Remove movie records and their directory mappings from the cache",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(true, func(env *appEnv) error {
				return env.cache.PurgeIDs(args)
			})
		},
	}
}

func newCachePersistCommand(ctx *commandContext) *cobra.Command {
	var persistFilename string

	cmd := &cobra.Command{
		Use:   "persist",
		Short: "Pin identification by writing each movie's IMDb URL to a textfile in its directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := ctx.newProvider()
			if err != nil {
				return err
			}
			return ctx.withEnv(true, func(env *appEnv) error {
				identifier := identification.New(provider, env.cache, nil,
					identification.Options{}, env.logger)
				return identifier.PersistHints(persistFilename)
			})
		},
	}

	cmd.Flags().StringVarP(&persistFilename, "persist-filename", "p", "imdb.txt", "Filename to write IMDb URLs to in each moviedir")

	return cmd
}

func newCacheClearSearchesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-searches",
		Short: "Drop all memoized IMDb search results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(true, func(env *appEnv) error {
				store, err := searchcache.Open(env.cfg.SearchCachePath(), env.logger)
				if err != nil {
					return fmt.Errorf("open search cache: %w", err)
				}
				defer store.Close()
				return store.Clear(cmd.Context())
			})
		},
	}
}
