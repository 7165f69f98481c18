package main

import (
	"fmt"
	"os"

	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsNarrative bool

var statsCmd = &cobra.Command{
	Use:   "stats [csv]",
	Short: "Print summary statistics of the commit history",
	Long: `Print the meta page summary: commits, files, total LOC, longest line,
max depth and the most active time of day.

The CSV may be a path or an http(s) URL. Without one, meta.csv (or the
sqlite import at storage.sqlite_path) is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsNarrative, "narrative", false, "also print one line per commit, oldest first")
}

func runStats(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		if result := cfg.Validate(config.ValidationContextMeta); result.HasErrors() {
			return fmt.Errorf("%s", result.Error())
		}
	}

	ds, err := loadDataset(cmd.Context(), args)
	if err != nil {
		return err
	}

	label := color.New(color.FgHiBlack).SprintFunc()
	value := color.New(color.Bold).SprintFunc()

	for _, s := range commits.Summarize(ds).Stats() {
		fmt.Fprintf(color.Output, "%-18s %s\n", label(s.Label), value(s.Value))
	}

	if statsNarrative {
		fmt.Fprintln(os.Stdout)
		for _, step := range commits.Narrative(ds) {
			fmt.Fprintf(color.Output, "%s %s\n", color.CyanString(shortID(step.Commit.ID)), step.Text)
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
