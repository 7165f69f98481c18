package scales

import (
	"time"

	"github.com/d4zhu/portfolio/internal/models"
)

// Radius range of commit bubbles, in pixels.
var RadiusRange = [2]float64{2, 30}

// Margin is the space reserved around the plotting area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Layout describes the chart viewport.
type Layout struct {
	Width  float64
	Height float64
	Margin Margin
}

// DefaultLayout is the 1000x600 viewBox of the meta page.
var DefaultLayout = Layout{
	Width:  1000,
	Height: 600,
	Margin: Margin{Top: 10, Right: 10, Bottom: 30, Left: 40},
}

// Area is the plotting extent inside the margins.
type Area struct {
	Top, Right, Bottom, Left float64
	Width, Height            float64
}

// Usable returns the plotting area.
func (l Layout) Usable() Area {
	return Area{
		Top:    l.Margin.Top,
		Right:  l.Width - l.Margin.Right,
		Bottom: l.Height - l.Margin.Bottom,
		Left:   l.Margin.Left,
		Width:  l.Width - l.Margin.Left - l.Margin.Right,
		Height: l.Height - l.Margin.Top - l.Margin.Bottom,
	}
}

// Set bundles the scales of one render.
type Set struct {
	Layout   Layout
	X        Time
	Y        Linear
	R        Sqrt
	Progress Time
	// Empty is true when the active set has no commits; X has no
	// meaningful domain then and renderers draw nothing.
	Empty bool
}

// Build derives the scales for the active commits. The radius and
// progress scales always come from the full set so bubble sizes and
// slider positions do not move while filtering.
func Build(layout Layout, active, full []models.Commit) Set {
	area := layout.Usable()

	set := Set{
		Layout:   layout,
		Y:        NewLinear([2]float64{0, 24}, [2]float64{area.Bottom, area.Top}),
		R:        RadiusScale(full),
		Progress: ProgressScale(full),
		Empty:    len(active) == 0,
	}

	if !set.Empty {
		lo, hi := TimeExtent(active)
		set.X = NewTime([2]time.Time{lo, hi}, [2]float64{area.Left, area.Right}).Nice()
	}

	return set
}

// Point returns the projected screen position of a commit.
func (s Set) Point(c models.Commit) (x, y float64) {
	return s.X.Scale(c.Datetime), s.Y.Scale(c.HourFrac)
}

// RadiusScale maps total lines onto bubble radius over the given set.
func RadiusScale(full []models.Commit) Sqrt {
	lo, hi := LinesExtent(full)
	return NewSqrt([2]float64{float64(lo), float64(hi)}, RadiusRange)
}

// ProgressScale maps the full timestamp extent onto 0..100.
func ProgressScale(full []models.Commit) Time {
	lo, hi := TimeExtent(full)
	return NewTime([2]time.Time{lo, hi}, [2]float64{0, 100})
}

// TimeExtent returns the min and max commit timestamps. Both are zero
// for an empty set.
func TimeExtent(commits []models.Commit) (lo, hi time.Time) {
	for i, c := range commits {
		if i == 0 || c.Datetime.Before(lo) {
			lo = c.Datetime
		}
		if i == 0 || c.Datetime.After(hi) {
			hi = c.Datetime
		}
	}
	return lo, hi
}

// LinesExtent returns the min and max total line counts.
func LinesExtent(commits []models.Commit) (lo, hi int) {
	for i, c := range commits {
		if i == 0 || c.TotalLines < lo {
			lo = c.TotalLines
		}
		if i == 0 || c.TotalLines > hi {
			hi = c.TotalLines
		}
	}
	return lo, hi
}
