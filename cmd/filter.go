package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"strfilter/config"
	"strfilter/filter"
	"strfilter/sources"

	"github.com/spf13/cobra"
)

var filterThreshold int
var filterStrategy string
var filterDir string
var filterPattern string
var filterWorkers int
var filterOutputDirectory string

var filterCmd = &cobra.Command{
	Use:   "filter [files...]",
	Short: "Filter files, a directory or lines from stdin",
	Long: `Removes text shared by the given files, or by the files of --dir, without a configuration file.
With neither, every line read from stdin is one string and the filtered lines are printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strategies := []filter.Config{{
			Type:    filterStrategy,
			Workers: filterWorkers,
		}}

		if len(args) == 0 && filterDir == "" {
			return filterLines(cmd, strategies)
		}

		var list []sources.Source
		for _, path := range args {
			list = append(list, sources.Source{Type: sources.TypeFile, Path: path})
		}
		if filterDir != "" {
			list = append(list, sources.Source{Type: sources.TypeDirectory, Path: filterDir, Pattern: filterPattern})
		}

		documents, err := sources.FetchAll(cmd.Context(), nil, list)
		if err != nil {
			return err
		}

		p := &pipeline{
			cache:      nopCache{},
			threshold:  filterThreshold,
			strategies: strategies,
		}
		documents, err = p.run(cmd.Context(), documents)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if filterOutputDirectory == "" {
			_, err := io.WriteString(out, combine(documents))
			return err
		}

		paths, err := writeDocuments(documents, filterOutputDirectory, "")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d documents to %s\n", len(paths), filterOutputDirectory)

		return ensureGitignored(out, nil, paths)
	},
}

func filterLines(cmd *cobra.Command, strategies []filter.Config) error {
	var lines []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	filtered, err := filter.ApplyStrategies(cmd.Context(), lines, strategies, filterThreshold)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, line := range filtered {
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}

func init() {
	filterCmd.Flags().IntVarP(&filterThreshold, "threshold", "t", config.DefaultThreshold, "shared text must be longer than this many characters to be removed")
	filterCmd.Flags().StringVarP(&filterStrategy, "strategy", "s", filter.TypeSharedSubstrings, "filter strategy to use")
	filterCmd.Flags().StringVar(&filterDir, "dir", "", "filter every matching file of this directory")
	filterCmd.Flags().StringVar(&filterPattern, "pattern", "", "file name pattern for --dir (default *.txt)")
	filterCmd.Flags().IntVar(&filterWorkers, "workers", 0, "goroutines for the parallel strategy (default GOMAXPROCS)")
	filterCmd.Flags().StringVarP(&filterOutputDirectory, "output-directory", "d", "", "write filtered documents to this directory instead of stdout")
	rootCmd.AddCommand(filterCmd)
}

// nopCache never hits; ad-hoc runs have nothing to share results with
type nopCache struct{}

func (nopCache) Get(ctx context.Context, key string) ([]string, bool) { return nil, false }
func (nopCache) Set(ctx context.Context, key string, value []string) {}
