package main

import (
	"fmt"

	"github.com/d4zhu/portfolio/internal/meta"
	"github.com/d4zhu/portfolio/internal/scales"
	"github.com/d4zhu/portfolio/internal/selection"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	selectRect     string
	selectProgress float64
	selectCommit   string
)

var selectCmd = &cobra.Command{
	Use:   "select [csv]",
	Short: "Run a brush or cutoff selection from the command line",
	Long: `Select commits the way the meta page does.

Examples:
  # Brush a rectangle in chart pixels (1000x600 viewBox)
  portfolio select --rect 40,10,990,570

  # Everything up to 25% of the slider
  portfolio select --progress 25

  # Everything up to and including a commit
  portfolio select --commit 3f2a9c1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringVar(&selectRect, "rect", "", "brush rectangle x0,y0,x1,y1")
	selectCmd.Flags().Float64Var(&selectProgress, "progress", 100, "slider position, 0..100")
	selectCmd.Flags().StringVar(&selectCommit, "commit", "", "cut off after this commit")
}

func runSelect(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context(), args)
	if err != nil {
		return err
	}
	view := meta.NewView(ds, scales.DefaultLayout)

	window := view.All()
	switch {
	case selectCommit != "":
		var ok bool
		if window, ok = view.AtCommit(selectCommit); !ok {
			return fmt.Errorf("unknown commit %q", selectCommit)
		}
	case cmd.Flags().Changed("progress"):
		window = view.AtProgress(selectProgress)
	}

	if selectRect == "" {
		fmt.Fprintf(color.Output, "%s %s\n", color.GreenString("%d commits", len(window.Active)), meta.CutoffLabel(window))
		for _, c := range window.Active {
			fmt.Fprintf(color.Output, "  %s %s %d lines\n", color.CyanString(shortID(c.ID)), c.Datetime.Format("2006-01-02 15:04"), c.TotalLines)
		}
		return nil
	}

	rect, err := selection.ParseRect(selectRect)
	if err != nil {
		return err
	}

	res := view.Brush(window, rect)
	fmt.Fprintln(color.Output, color.GreenString("%s", res.Label))
	for _, row := range res.Breakdown {
		fmt.Fprintf(color.Output, "  %-8s %5d lines (%s)\n", color.MagentaString(row.Language), row.Lines, color.YellowString(row.Percent))
	}
	return nil
}
