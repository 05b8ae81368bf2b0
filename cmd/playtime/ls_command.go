package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"playtime/internal/logging"
	"playtime/internal/moviecache"
)

func newLsCommand(ctx *commandContext) *cobra.Command {
	var identifiedOnly bool
	var unidentifiedOnly bool
	var duplicatesOnly bool

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List movie directories under the known basedirs",
		Long: `Walk every basedir known to the cache and list each movie directory with
its identification status: OK (identified with metadata), NODATA (mapped but
no metadata record), or UNIDENTIFIED (not in the cache). The copies column
counts directories mapped to the same movie.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(false, func(env *appEnv) error {
				headers := []string{"Status", "Copies", "Directory", "Movie"}
				aligns := []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft}

				var rows [][]string
				movies := make(map[string]struct{})
				for _, basedir := range env.cache.Basedirs() {
					entries, err := os.ReadDir(basedir)
					if err != nil {
						env.logger.Warn("cannot read basedir, skipping",
							logging.String("basedir", basedir),
							logging.Error(err))
						continue
					}
					for _, entry := range entries {
						if !entry.IsDir() {
							continue
						}
						moviedir, err := moviecache.CanonicalPath(filepath.Join(basedir, entry.Name()))
						if err != nil {
							continue
						}

						id, mapped := env.cache.DirectoryID(moviedir)
						if !mapped {
							if identifiedOnly || duplicatesOnly {
								continue
							}
							rows = append(rows, []string{"UNIDENTIFIED", "", moviedir, ""})
							continue
						}

						copies := env.cache.CountDirectories(id)
						movie, hasData := env.cache.Movie(id)
						if !hasData {
							if !identifiedOnly {
								rows = append(rows, []string{"NODATA", strconv.Itoa(copies), moviedir, id})
							}
							continue
						}
						if unidentifiedOnly {
							continue
						}
						if duplicatesOnly && copies == 1 {
							continue
						}
						movies[id] = struct{}{}
						rows = append(rows, []string{"OK", strconv.Itoa(copies), moviedir, movie.Short()})
					}
				}

				footer := []string{
					fmt.Sprintf("%d directories", len(rows)),
					"",
					"",
					fmt.Sprintf("%d movies", len(movies)),
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns, footer))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&identifiedOnly, "identified-only", false, "Only list identified movie directories")
	cmd.Flags().BoolVar(&unidentifiedOnly, "unidentified-only", false, "Only list unidentified movie directories")
	cmd.Flags().BoolVar(&duplicatesOnly, "duplicates-only", false, "Only list movies with more than one directory")

	return cmd
}
