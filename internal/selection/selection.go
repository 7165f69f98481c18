// Package selection decides which commits a brush rectangle or a time
// cutoff selects, and derives the views that follow a selection.
//
// Every function here is pure. Brush, slider and scroll step handlers
// each build their own Selection and call these; whichever request ran
// last is what the page shows.
package selection

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/d4zhu/portfolio/internal/scales"
)

// Rect is a brush region in screen coordinates, [[x0,y0],[x1,y1]].
type Rect [2][2]float64

// Normalize orders the corners so that x0<=x1 and y0<=y1.
func (r Rect) Normalize() Rect {
	x0, y0, x1, y1 := r[0][0], r[0][1], r[1][0], r[1][1]
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{{x0, y0}, {x1, y1}}
}

// Contains reports whether the point lies in the rectangle, bounds
// included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r[0][0] && x <= r[1][0] && y >= r[0][1] && y <= r[1][1]
}

// ParseRect reads "x0,y0,x1,y1".
func ParseRect(s string) (*Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("rect %q: want x0,y0,x1,y1", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("rect %q: %w", s, err)
		}
		v[i] = f
	}
	r := Rect{{v[0], v[1]}, {v[2], v[3]}}.Normalize()
	return &r, nil
}

// Mode says which kind of selection is active.
type Mode int

const (
	ModeNone Mode = iota
	ModeBrush
	ModeCutoff
)

// Selection is either nothing, a brush rectangle or a timestamp cutoff.
// The two modes are never combined.
type Selection struct {
	Mode   Mode
	Rect   Rect
	Cutoff time.Time
}

// None selects nothing.
func None() Selection { return Selection{} }

// Brush makes a rectangle selection. A nil rectangle selects nothing.
func Brush(r *Rect) Selection {
	if r == nil {
		return None()
	}
	return Selection{Mode: ModeBrush, Rect: r.Normalize()}
}

// Until makes a cutoff selection that keeps commits at or before t.
func Until(t time.Time) Selection {
	return Selection{Mode: ModeCutoff, Cutoff: t}
}

// Matches reports whether the selection picks c under the given scales.
func (s Selection) Matches(c models.Commit, set scales.Set) bool {
	switch s.Mode {
	case ModeBrush:
		return IsSelected(&s.Rect, c, set)
	case ModeCutoff:
		return !c.Datetime.After(s.Cutoff)
	default:
		return false
	}
}

// Apply returns the commits the selection picks, in input order.
func (s Selection) Apply(list []models.Commit, set scales.Set) []models.Commit {
	out := []models.Commit{}
	for _, c := range list {
		if s.Matches(c, set) {
			out = append(out, c)
		}
	}
	return out
}

// IsSelected reports whether c's projected position lies inside rect.
func IsSelected(rect *Rect, c models.Commit, set scales.Set) bool {
	if rect == nil || set.Empty {
		return false
	}
	x, y := set.Point(c)
	return rect.Contains(x, y)
}

// InRect returns the commits inside rect.
func InRect(rect *Rect, list []models.Commit, set scales.Set) []models.Commit {
	return Brush(rect).Apply(list, set)
}

// Cutoff keeps the commits whose timestamp is at or before t.
func Cutoff(list []models.Commit, t time.Time) []models.Commit {
	return Until(t).Apply(list, scales.Set{})
}

// CutoffFromProgress turns a 0..100 slider value into a timestamp.
func CutoffFromProgress(progress float64, scale scales.Time) time.Time {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return scale.Invert(progress)
}

// CutoffAtCommit is the cutoff a scroll step for commit id produces.
func CutoffAtCommit(ds *commits.Dataset, id string) (time.Time, bool) {
	c, ok := ds.Commit(id)
	if !ok {
		return time.Time{}, false
	}
	return c.Datetime, true
}

// CountLabel renders "N commits selected" or "No commits selected".
func CountLabel(n int) string {
	if n == 0 {
		return "No commits selected"
	}
	return fmt.Sprintf("%d commits selected", n)
}
