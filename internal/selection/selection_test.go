package selection

import (
	"testing"
	"time"

	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/d4zhu/portfolio/internal/scales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t1 = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	t2 = time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)
	t3 = time.Date(2024, 1, 9, 22, 0, 0, 0, time.UTC)
)

func fixture() *commits.Dataset {
	mk := func(id, file, typ string, at time.Time) models.LineRecord {
		return models.LineRecord{Commit: id, File: file, Type: typ, Datetime: at}
	}
	return commits.Aggregate([]models.LineRecord{
		mk("c1", "index.html", "html", t1),
		mk("c1", "style.css", "css", t1),
		mk("c2", "main.js", "js", t2),
		mk("c3", "index.html", "html", t3),
	}, "")
}

func ids(list []models.Commit) []string {
	out := []string{}
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func TestIsSelected_InclusiveBounds(t *testing.T) {
	ds := fixture()
	all := ds.Commits()
	set := scales.Build(scales.DefaultLayout, all, all)

	c2, _ := ds.Commit("c2")
	x, y := set.Point(c2)

	edge := Rect{{x, y}, {x + 50, y + 50}}
	assert.True(t, IsSelected(&edge, c2, set), "point on the top-left corner is selected")

	edge = Rect{{x - 50, y - 50}, {x, y}}
	assert.True(t, IsSelected(&edge, c2, set), "point on the bottom-right corner is selected")

	outside := Rect{{x + 1, y}, {x + 50, y + 50}}
	assert.False(t, IsSelected(&outside, c2, set), "one pixel left of the rect is not selected")

	outside = Rect{{x - 50, y - 50}, {x, y - 1}}
	assert.False(t, IsSelected(&outside, c2, set), "one pixel below the rect is not selected")

	assert.False(t, IsSelected(nil, c2, set))
}

func TestInRect(t *testing.T) {
	ds := fixture()
	all := ds.Commits()
	set := scales.Build(scales.DefaultLayout, all, all)

	area := scales.DefaultLayout.Usable()
	everything := Rect{{area.Left, area.Top}, {area.Right, area.Bottom}}
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids(InRect(&everything, all, set)))

	// reversed corners from a drag going up-left
	x1, y1 := set.Point(all[0])
	x2, y2 := set.Point(all[1])
	dragged := Rect{{x2 + 1, y2 - 1}, {x1 - 1, y1 + 1}}
	assert.Equal(t, []string{"c1", "c2"}, ids(Brush(&dragged).Apply(all, set)))

	assert.Empty(t, InRect(nil, all, set))
}

func TestCutoff(t *testing.T) {
	all := fixture().Commits()

	assert.Equal(t, []string{"c1", "c2"}, ids(Cutoff(all, t2)))
	assert.Equal(t, []string{"c1"}, ids(Cutoff(all, t2.Add(-time.Second))))
	assert.Empty(t, Cutoff(all, t1.Add(-time.Hour)))
	assert.Len(t, Cutoff(all, t3), 3)
}

func TestCutoffFromProgress(t *testing.T) {
	all := fixture().Commits()
	progress := scales.ProgressScale(all)

	assert.Equal(t, t1, CutoffFromProgress(0, progress))
	assert.Equal(t, t3, CutoffFromProgress(100, progress))
	assert.Equal(t, t3, CutoffFromProgress(250, progress))
	assert.Equal(t, t1, CutoffFromProgress(-3, progress))

	mid := CutoffFromProgress(progress.Scale(t2), progress)
	assert.Equal(t, []string{"c1", "c2"}, ids(Cutoff(all, mid)))
}

func TestCutoffAtCommit(t *testing.T) {
	ds := fixture()

	cut, ok := CutoffAtCommit(ds, "c2")
	require.True(t, ok)
	assert.Equal(t, []string{"c1", "c2"}, ids(Cutoff(ds.Commits(), cut)))

	_, ok = CutoffAtCommit(ds, "nope")
	assert.False(t, ok)
}

func TestSelection_ModesAreExclusive(t *testing.T) {
	all := fixture().Commits()
	set := scales.Build(scales.DefaultLayout, all, all)

	assert.Empty(t, None().Apply(all, set))
	assert.Equal(t, ModeNone, Brush(nil).Mode)

	sel := Until(t1)
	assert.Equal(t, ModeCutoff, sel.Mode)
	assert.Equal(t, []string{"c1"}, ids(sel.Apply(all, set)))
}

func TestParseRect(t *testing.T) {
	r, err := ParseRect("100, 50, 10, 5")
	require.NoError(t, err)
	assert.Equal(t, Rect{{10, 5}, {100, 50}}, *r)

	_, err = ParseRect("1,2,3")
	assert.Error(t, err)

	_, err = ParseRect("1,2,3,x")
	assert.Error(t, err)
}

func TestCountLabel(t *testing.T) {
	assert.Equal(t, "No commits selected", CountLabel(0))
	assert.Equal(t, "3 commits selected", CountLabel(3))
}

func TestBreakdown(t *testing.T) {
	ds := fixture()
	c1, _ := ds.Commit("c1")
	c3, _ := ds.Commit("c3")

	rows := Breakdown(ds, []models.Commit{c1, c3})
	require.Len(t, rows, 2)
	assert.Equal(t, "html", rows[0].Language)
	assert.Equal(t, 2, rows[0].Lines)
	assert.Equal(t, "66.7%", rows[0].Percent)
	assert.Equal(t, "css", rows[1].Language)
	assert.Equal(t, "33.3%", rows[1].Percent)

	assert.Empty(t, Breakdown(ds, nil))
}

func TestBreakdown_SumsToOne(t *testing.T) {
	ds := fixture()
	total := 0.0
	for _, row := range Breakdown(ds, ds.Commits()) {
		total += row.Fraction
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestBreakdown_ThreeLineScenario(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC)
	ds := commits.Aggregate([]models.LineRecord{
		{Commit: "x", Type: "html", Datetime: at},
		{Commit: "x", Type: "css", Datetime: at},
		{Commit: "x", Type: "html", Datetime: at},
	}, "")

	require.Equal(t, 1, ds.Len())
	c := ds.Commits()[0]
	assert.Equal(t, 3, c.TotalLines)
	assert.InDelta(t, 10.25, c.HourFrac, 1e-9)

	rows := Breakdown(ds, ds.Commits())
	require.Len(t, rows, 2)
	assert.Equal(t, LanguageShare{Language: "html", Lines: 2, Fraction: 2.0 / 3.0, Percent: "66.7%"}, rows[0])
	assert.Equal(t, "css", rows[1].Language)
	assert.Equal(t, 1, rows[1].Lines)
	assert.Equal(t, "33.3%", rows[1].Percent)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "50%", FormatPercent(0.5))
	assert.Equal(t, "12.3%", FormatPercent(0.1234))
	assert.Equal(t, "100%", FormatPercent(1))
	assert.Equal(t, "0%", FormatPercent(0))
}
