package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/d4zhu/portfolio/internal/errors"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/d4zhu/portfolio/internal/scales"
	"github.com/d4zhu/portfolio/internal/selection"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"px": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).ParseFS(templateFS, "templates/*.tmpl"))

// ScatterInput is everything one scatterplot render depends on.
type ScatterInput struct {
	Commits   []models.Commit
	Scales    scales.Set
	Selection selection.Selection
}

// Dot is one positioned commit bubble.
type Dot struct {
	ID       string
	CX, CY   float64
	R        float64
	Selected bool
	Tooltip  Tooltip
}

// AxisTick is a labelled tick at a pixel position.
type AxisTick struct {
	Pos   float64
	Label string
}

// BrushBox is the drawn brush region in chart pixels.
type BrushBox struct {
	X, Y, Width, Height float64
}

type scatterView struct {
	Width, Height float64
	Area          scales.Area
	Empty         bool
	Dots          []Dot
	XTicks        []AxisTick
	YTicks        []AxisTick
	Brush         *BrushBox
}

// BrushRegion returns the region a brush selection draws, or nil when
// the selection is not a brush.
func BrushRegion(sel selection.Selection) *BrushBox {
	if sel.Mode != selection.ModeBrush {
		return nil
	}
	r := sel.Rect.Normalize()
	return &BrushBox{
		X:      r[0][0],
		Y:      r[0][1],
		Width:  r[1][0] - r[0][0],
		Height: r[1][1] - r[0][1],
	}
}

// Dots positions the commits, largest first so smaller bubbles stay on
// top and remain hoverable.
func Dots(in ScatterInput) []Dot {
	if in.Scales.Empty {
		return []Dot{}
	}

	sorted := make([]models.Commit, len(in.Commits))
	copy(sorted, in.Commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalLines > sorted[j].TotalLines
	})

	brushing := in.Selection.Mode == selection.ModeBrush

	dots := make([]Dot, len(sorted))
	for i, c := range sorted {
		x, y := in.Scales.Point(c)
		dots[i] = Dot{
			ID:       c.ID,
			CX:       x,
			CY:       y,
			R:        in.Scales.R.Scale(float64(c.TotalLines)),
			Selected: brushing && in.Selection.Matches(c, in.Scales),
			Tooltip:  TooltipFor(c),
		}
	}
	return dots
}

// Scatter writes the scatterplot SVG. An empty active set still yields
// a valid, empty chart.
func Scatter(w io.Writer, in ScatterInput) error {
	if w == nil {
		return errors.ContainerError("scatter: no output container")
	}

	layout := in.Scales.Layout
	if layout.Width == 0 {
		layout = scales.DefaultLayout
	}

	view := scatterView{
		Width:  layout.Width,
		Height: layout.Height,
		Area:   layout.Usable(),
		Empty:  in.Scales.Empty,
		Dots:   Dots(in),
		Brush:  BrushRegion(in.Selection),
	}

	for _, h := range in.Scales.Y.Ticks(12) {
		view.YTicks = append(view.YTicks, AxisTick{
			Pos:   in.Scales.Y.Scale(h),
			Label: fmt.Sprintf("%02d:00", int(h)%24),
		})
	}
	if !in.Scales.Empty {
		for _, t := range in.Scales.X.Ticks(10) {
			view.XTicks = append(view.XTicks, AxisTick{Pos: in.Scales.X.Scale(t.At), Label: t.Label})
		}
	}

	return templates.ExecuteTemplate(w, "scatter.tmpl", view)
}
