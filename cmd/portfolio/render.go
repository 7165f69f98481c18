package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/d4zhu/portfolio/internal/meta"
	"github.com/d4zhu/portfolio/internal/scales"
	"github.com/d4zhu/portfolio/internal/selection"
	"github.com/spf13/cobra"
)

var (
	renderOut      string
	renderProgress float64
	renderCommit   string
)

var renderCmd = &cobra.Command{
	Use:   "render [csv]",
	Short: "Render the scatterplot and file breakdown to files",
	Long: `Render scatter.svg and files.html for the commit history, optionally
cut off at a slider position (--progress 0..100) or at a commit (--commit).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", ".", "output directory")
	renderCmd.Flags().Float64Var(&renderProgress, "progress", 100, "slider position, 0..100")
	renderCmd.Flags().StringVar(&renderCommit, "commit", "", "cut off after this commit")
}

func runRender(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context(), args)
	if err != nil {
		return err
	}
	view := meta.NewView(ds, scales.DefaultLayout)

	window := view.All()
	switch {
	case renderCommit != "":
		var ok bool
		if window, ok = view.AtCommit(renderCommit); !ok {
			return fmt.Errorf("unknown commit %q", renderCommit)
		}
	case cmd.Flags().Changed("progress"):
		window = view.AtProgress(renderProgress)
	}

	sel := selection.None()
	if window.Filtered {
		sel = selection.Until(window.Cutoff)
	}

	svg, err := view.RenderScatter(window, sel)
	if err != nil {
		return err
	}
	files, err := view.RenderFiles(window)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(renderOut, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	outputs := map[string]string{
		"scatter.svg": string(svg),
		"files.html":  string(files),
	}
	for name, body := range outputs {
		path := filepath.Join(renderOut, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.WithField("path", path).Info("rendered")
	}

	fmt.Printf("%d commits until %s\n", len(window.Active), meta.CutoffLabel(window))
	return nil
}
