package meta

import (
	"bytes"
	"html/template"
	"time"

	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/d4zhu/portfolio/internal/render"
	"github.com/d4zhu/portfolio/internal/scales"
	"github.com/d4zhu/portfolio/internal/selection"
)

// View answers interactions against one dataset. It holds no selection
// state; every call receives the selection explicitly.
type View struct {
	ds       *commits.Dataset
	layout   scales.Layout
	palette  *render.Palette
	full     []models.Commit
	progress scales.Time
}

// NewView prepares a view over ds with the given chart layout.
func NewView(ds *commits.Dataset, layout scales.Layout) *View {
	full := ds.Commits()
	return &View{
		ds:       ds,
		layout:   layout,
		palette:  render.NewPalette(ds.Languages()),
		full:     full,
		progress: scales.ProgressScale(full),
	}
}

// Dataset returns the underlying dataset.
func (v *View) Dataset() *commits.Dataset { return v.ds }

// Window is the commit set currently drawn, either everything or
// everything up to a cutoff.
type Window struct {
	Active   []models.Commit
	Cutoff   time.Time
	Progress float64
	Filtered bool
}

// All is the unfiltered window.
func (v *View) All() Window {
	return Window{Active: v.full, Progress: 100}
}

// AtProgress filters to a slider position in 0..100.
func (v *View) AtProgress(p float64) Window {
	if len(v.full) == 0 {
		return v.All()
	}
	cutoff := selection.CutoffFromProgress(p, v.progress)
	return v.until(cutoff)
}

// AtCommit filters to everything up to and including commit id. An
// unknown id reports false.
func (v *View) AtCommit(id string) (Window, bool) {
	cutoff, ok := selection.CutoffAtCommit(v.ds, id)
	if !ok {
		return Window{}, false
	}
	return v.until(cutoff), true
}

func (v *View) until(cutoff time.Time) Window {
	return Window{
		Active:   selection.Cutoff(v.full, cutoff),
		Cutoff:   cutoff,
		Progress: v.progress.Scale(cutoff),
		Filtered: true,
	}
}

// Scales returns the scales for drawing w.
func (v *View) Scales(w Window) scales.Set {
	return scales.Build(v.layout, w.Active, v.full)
}

// BrushResult is the derived view of a brush selection.
type BrushResult struct {
	Count     int                       `json:"count"`
	Label     string                    `json:"label"`
	IDs       []string                  `json:"ids"`
	Breakdown []selection.LanguageShare `json:"breakdown"`
}

// Brush selects the commits of w under rect. A nil rect selects nothing.
func (v *View) Brush(w Window, rect *selection.Rect) BrushResult {
	selected := selection.InRect(rect, w.Active, v.Scales(w))
	return BrushResult{
		Count:     len(selected),
		Label:     selection.CountLabel(len(selected)),
		IDs:       commitIDs(selected),
		Breakdown: selection.Breakdown(v.ds, selected),
	}
}

// FileGroups returns the file breakdown groups of w.
func (v *View) FileGroups(w Window) []models.FileGroup {
	return render.FileGroups(v.ds, w.Active, v.palette)
}

// RenderScatter renders the chart of w with sel applied.
func (v *View) RenderScatter(w Window, sel selection.Selection) (template.HTML, error) {
	var buf bytes.Buffer
	err := render.Scatter(&buf, render.ScatterInput{
		Commits:   w.Active,
		Scales:    v.Scales(w),
		Selection: sel,
	})
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// RenderFiles renders the file breakdown of w.
func (v *View) RenderFiles(w Window) (template.HTML, error) {
	var buf bytes.Buffer
	if err := render.Files(&buf, v.FileGroups(w)); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// CutoffResult is everything the page redraws after the slider or a
// narrative step moves the cutoff.
type CutoffResult struct {
	IDs      []string          `json:"ids"`
	Count    int               `json:"count"`
	Cutoff   string            `json:"cutoff"`
	Label    string            `json:"label"`
	Progress float64           `json:"progress"`
	Scatter  string            `json:"scatter"`
	Files    string            `json:"files"`
	Join     render.JoinResult `json:"join"`
}

// Redraw renders w and joins its file groups against prev.
func (v *View) Redraw(w Window, prev *Window) (CutoffResult, error) {
	sel := selection.None()
	if w.Filtered {
		sel = selection.Until(w.Cutoff)
	}

	scatter, err := v.RenderScatter(w, sel)
	if err != nil {
		return CutoffResult{}, err
	}
	files, err := v.RenderFiles(w)
	if err != nil {
		return CutoffResult{}, err
	}

	var before []models.FileGroup
	if prev != nil {
		before = v.FileGroups(*prev)
	}

	res := CutoffResult{
		IDs:      commitIDs(w.Active),
		Count:    len(w.Active),
		Label:    CutoffLabel(w),
		Progress: w.Progress,
		Scatter:  string(scatter),
		Files:    string(files),
		Join:     render.Join(before, v.FileGroups(w)),
	}
	if !w.Cutoff.IsZero() {
		res.Cutoff = w.Cutoff.Format(time.RFC3339)
	}
	return res, nil
}

// CutoffLabel is the slider's time readout.
func CutoffLabel(w Window) string {
	if w.Cutoff.IsZero() {
		return "All time"
	}
	return w.Cutoff.Format("Jan 2, 2006, 3:04 PM")
}

func commitIDs(list []models.Commit) []string {
	ids := make([]string, len(list))
	for i, c := range list {
		ids[i] = c.ID
	}
	return ids
}
