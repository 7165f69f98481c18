package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/d4zhu/portfolio/internal/scales"
	"github.com/d4zhu/portfolio/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataset() *commits.Dataset {
	day := func(d, h int) time.Time { return time.Date(2024, 1, d, h, 0, 0, 0, time.UTC) }
	var records []models.LineRecord
	add := func(id, file, typ string, at time.Time, n int) {
		for i := 0; i < n; i++ {
			records = append(records, models.LineRecord{Commit: id, Author: "dana", File: file, Type: typ, Datetime: at, Line: i + 1})
		}
	}
	add("small", "index.html", "html", day(1, 9), 2)
	add("big", "main.js", "js", day(3, 14), 20)
	add("big", "style.css", "css", day(3, 14), 5)
	add("mid", "index.html", "html", day(6, 21), 8)
	return commits.Aggregate(records, "https://example.com/c/")
}

func TestDots_LargestFirst(t *testing.T) {
	ds := dataset()
	all := ds.Commits()

	dots := Dots(ScatterInput{Commits: all, Scales: scales.Build(scales.DefaultLayout, all, all)})
	require.Len(t, dots, 3)
	assert.Equal(t, []string{"big", "mid", "small"}, []string{dots[0].ID, dots[1].ID, dots[2].ID})
	assert.InDelta(t, 30, dots[0].R, 1e-9)
	assert.InDelta(t, 2, dots[2].R, 1e-9)
}

func TestDots_RadiusStableWhenFiltered(t *testing.T) {
	ds := dataset()
	all := ds.Commits()
	full := Dots(ScatterInput{Commits: all, Scales: scales.Build(scales.DefaultLayout, all, all)})

	cut := selection.Cutoff(all, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC))
	filtered := Dots(ScatterInput{Commits: cut, Scales: scales.Build(scales.DefaultLayout, cut, all)})

	radius := map[string]float64{}
	for _, d := range full {
		radius[d.ID] = d.R
	}
	require.Len(t, filtered, 2)
	for _, d := range filtered {
		assert.Equal(t, radius[d.ID], d.R, d.ID)
	}
}

func TestDots_BrushMarksSelected(t *testing.T) {
	ds := dataset()
	all := ds.Commits()
	set := scales.Build(scales.DefaultLayout, all, all)

	small, _ := ds.Commit("small")
	x, y := set.Point(small)
	rect := selection.Rect{{x - 1, y - 1}, {x + 1, y + 1}}

	dots := Dots(ScatterInput{Commits: all, Scales: set, Selection: selection.Brush(&rect)})
	for _, d := range dots {
		assert.Equal(t, d.ID == "small", d.Selected, d.ID)
	}
}

func TestScatter_SVG(t *testing.T) {
	ds := dataset()
	all := ds.Commits()

	var buf bytes.Buffer
	require.NoError(t, Scatter(&buf, ScatterInput{Commits: all, Scales: scales.Build(scales.DefaultLayout, all, all)}))

	svg := buf.String()
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Equal(t, 3, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, `viewBox="0 0 1000 600"`)
	assert.Contains(t, svg, "00:00")
	assert.Contains(t, svg, `data-id="big"`)
	assert.Less(t, strings.Index(svg, `data-id="big"`), strings.Index(svg, `data-id="small"`))
}

func TestScatter_EmptyActiveSet(t *testing.T) {
	all := dataset().Commits()

	var buf bytes.Buffer
	require.NoError(t, Scatter(&buf, ScatterInput{Scales: scales.Build(scales.DefaultLayout, nil, all)}))
	assert.Contains(t, buf.String(), "<svg")
	assert.NotContains(t, buf.String(), "<circle")
}

func TestScatter_NilWriter(t *testing.T) {
	err := Scatter(nil, ScatterInput{})
	assert.Error(t, err)
}

func TestTooltipFor(t *testing.T) {
	c := models.Commit{
		ID:         "abc",
		URL:        "https://example.com/c/abc",
		Author:     "dana",
		Datetime:   time.Date(2024, 1, 1, 9, 5, 0, 0, time.UTC),
		TotalLines: 7,
	}

	tip := TooltipFor(c)
	assert.Equal(t, "Mon, Jan 1, 2024", tip.Date)
	assert.Equal(t, "09:05 AM", tip.Time)
	assert.Equal(t, 7, tip.Lines)

	left, top := TooltipPosition(100, 250.5)
	assert.Equal(t, "110px", left)
	assert.Equal(t, "260.5px", top)
}

func TestFileGroups(t *testing.T) {
	ds := dataset()
	palette := NewPalette(ds.Languages())

	groups := FileGroups(ds, ds.Commits(), palette)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"main.js", "index.html", "style.css"}, Keys(groups))
	assert.Equal(t, 20, groups[0].Count())
	assert.Equal(t, 10, groups[1].Count())
	assert.Equal(t, "html", groups[1].Type)

	// html was seen first
	assert.Equal(t, Tableau10[0], groups[1].Color)

	small, _ := ds.Commit("small")
	filtered := FileGroups(ds, []models.Commit{small}, palette)
	require.Len(t, filtered, 1)
	assert.Equal(t, groups[1].Color, filtered[0].Color, "color follows language across renders")

	assert.Empty(t, FileGroups(ds, nil, palette))
}

func TestFiles_HTML(t *testing.T) {
	ds := dataset()
	groups := FileGroups(ds, ds.Commits(), NewPalette(ds.Languages()))

	var buf bytes.Buffer
	require.NoError(t, Files(&buf, groups))

	html := buf.String()
	assert.Equal(t, 35, strings.Count(html, `class="loc"`))
	assert.Contains(t, html, `data-key="main.js"`)
	assert.Contains(t, html, "20 lines")
	assert.Contains(t, html, "--color: "+Tableau10[0])
}

func TestJoin(t *testing.T) {
	g := func(names ...string) []models.FileGroup {
		out := make([]models.FileGroup, len(names))
		for i, n := range names {
			out[i] = models.FileGroup{Name: n}
		}
		return out
	}

	res := Join(g("a.js", "b.css"), g("b.css", "c.html"))
	assert.Equal(t, []string{"c.html"}, res.Enter)
	assert.Equal(t, []string{"b.css"}, res.Update)
	assert.Equal(t, []string{"a.js"}, res.Exit)

	res = Join(nil, g("x"))
	assert.Equal(t, []string{"x"}, res.Enter)
	assert.Empty(t, res.Exit)
}

func TestPalette_Stable(t *testing.T) {
	p := NewPalette([]string{"html", "css"})
	assert.Equal(t, Tableau10[1], p.Color("css"))
	assert.Equal(t, Tableau10[2], p.Color("js"))
	assert.Equal(t, Tableau10[2], p.Color("js"))
}

func TestScatter_BrushRegion(t *testing.T) {
	all := dataset().Commits()
	set := scales.Build(scales.DefaultLayout, all, all)

	var buf bytes.Buffer
	require.NoError(t, Scatter(&buf, ScatterInput{Commits: all, Scales: set}))
	assert.Contains(t, buf.String(), `<rect class="selection" x="0" y="0" width="0" height="0" pointer-events="none" display="none">`)

	// corners given in drag order still draw a positive box
	rect := selection.Rect{{300, 400}, {100, 150}}
	buf.Reset()
	require.NoError(t, Scatter(&buf, ScatterInput{Commits: all, Scales: set, Selection: selection.Brush(&rect)}))
	assert.Contains(t, buf.String(), `<rect class="selection" x="100.00" y="150.00" width="200.00" height="250.00" pointer-events="none">`)
}

func TestBrushRegion(t *testing.T) {
	assert.Nil(t, BrushRegion(selection.None()))
	assert.Nil(t, BrushRegion(selection.Until(time.Now())))

	rect := selection.Rect{{10, 20}, {40, 60}}
	assert.Equal(t, &BrushBox{X: 10, Y: 20, Width: 30, Height: 40}, BrushRegion(selection.Brush(&rect)))
}
