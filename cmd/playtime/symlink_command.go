package main

import (
	"github.com/spf13/cobra"

	"playtime/internal/media"
	"playtime/internal/organizer"
)

func newSymlinkCommand(ctx *commandContext) *cobra.Command {
	var categoryNames []string
	var runtimeInterval int
	var absolute bool

	cmd := &cobra.Command{
		Use:   "symlink <dir>",
		Short: "Regenerate category symlink trees from the cache",
		Long: `Build, under the given directory, one subtree per category in which every
movie is reachable under each value it belongs to (each genre, each actor,
...). Category directories are regenerated from scratch on every run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(true, func(env *appEnv) error {
				names := categoryNames
				if !cmd.Flags().Changed("categories") {
					names = env.cfg.Symlink.Categories
				}
				categories := make([]media.Category, 0, len(names))
				for _, name := range names {
					cat, err := media.ParseCategory(name)
					if err != nil {
						return err
					}
					categories = append(categories, cat)
				}

				interval := runtimeInterval
				if !cmd.Flags().Changed("runtime-interval") {
					interval = env.cfg.Symlink.RuntimeInterval
				}
				relative := env.cfg.Symlink.Relative
				if cmd.Flags().Changed("absolute") {
					relative = !absolute
				}

				builder := organizer.New(env.cache, organizer.Options{
					RuntimeInterval: interval,
					Relative:        relative,
				}, env.logger)
				return builder.Build(cmd.Context(), args[0], categories)
			})
		},
	}

	cmd.Flags().StringSliceVarP(&categoryNames, "categories", "C", nil, "Categories to build trees for")
	cmd.Flags().IntVar(&runtimeInterval, "runtime-interval", 0, "Bucket width in minutes for the runtime category")
	cmd.Flags().BoolVar(&absolute, "absolute", false, "Create absolute symlinks instead of relative ones")

	return cmd
}
