package main

import (
	"github.com/spf13/cobra"

	"playtime/internal/covers"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var forceDownload bool
	var saveCopies bool

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download cover images and place posters in movie directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(true, func(env *appEnv) error {
				manager := covers.New(env.cache, nil, env.logger)
				if err := manager.Download(cmd.Context(), forceDownload); err != nil {
					return err
				}
				return manager.Distribute(saveCopies)
			})
		},
	}

	cmd.Flags().BoolVarP(&forceDownload, "force-download", "f", false, "Re-download covers already in the cache")
	cmd.Flags().BoolVarP(&saveCopies, "save-covers-in-moviedirs", "s", false, "Copy posters into movie directories instead of symlinking")

	return cmd
}
