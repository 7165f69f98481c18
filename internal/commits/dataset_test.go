package commits

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/d4zhu/portfolio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(commit, file, typ string, at time.Time) models.LineRecord {
	return models.LineRecord{
		Commit:   commit,
		Author:   "dana",
		Datetime: at,
		Date:     time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location()),
		File:     file,
		Type:     typ,
		Length:   10,
	}
}

func TestAggregate_ThreeLinesOneCommit(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC)
	records := []models.LineRecord{
		line("abc", "index.html", "html", at),
		line("abc", "style.css", "css", at),
		line("abc", "index.html", "html", at),
	}

	ds := Aggregate(records, "")
	require.Equal(t, 1, ds.Len())

	c := ds.Commits()[0]
	assert.Equal(t, "abc", c.ID)
	assert.Equal(t, 3, c.TotalLines)
	assert.InDelta(t, 10.25, c.HourFrac, 1e-9)
	assert.Equal(t, at, c.Datetime)
	assert.Equal(t, DefaultCommitBaseURL+"abc", c.URL)
	assert.Len(t, ds.Lines("abc"), 3)
}

func TestAggregate_CountsAndOrder(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var records []models.LineRecord
	ids := []string{"c2", "c1", "c2", "c3", "c1", "c2"}
	for i, id := range ids {
		records = append(records, line(id, fmt.Sprintf("f%d.go", i), "go", base))
	}

	ds := Aggregate(records, "https://example.com/commit/")

	commits := ds.Commits()
	require.Len(t, commits, 3)
	assert.Equal(t, []string{"c2", "c1", "c3"}, []string{commits[0].ID, commits[1].ID, commits[2].ID})

	total := 0
	for _, c := range commits {
		total += c.TotalLines
		assert.Equal(t, len(ds.Lines(c.ID)), c.TotalLines)
	}
	assert.Equal(t, len(records), total)
	assert.Equal(t, "https://example.com/commit/c1", commits[1].URL)
}

func TestHourFrac(t *testing.T) {
	tests := []struct {
		name string
		h, m int
		want float64
	}{
		{"half past two", 14, 30, 14.5},
		{"midnight", 0, 0, 0},
		{"last minute", 23, 59, 23.9833},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.LineRecord{Datetime: time.Date(2024, 1, 1, tt.h, tt.m, 0, 0, time.UTC)}
			assert.InDelta(t, tt.want, HourFrac(rec), 1e-4)
		})
	}
}

func TestCommit_JSONExcludesLines(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC)
	ds := Aggregate([]models.LineRecord{line("abc", "a.go", "go", at)}, "")

	data, err := json.Marshal(ds.Commits()[0])
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "lines")
	assert.Equal(t, float64(1), fields["totalLines"])
}

func TestDataset_CommitsIsACopy(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC)
	ds := Aggregate([]models.LineRecord{line("abc", "a.go", "go", at)}, "")

	commits := ds.Commits()
	commits[0].TotalLines = 99

	c, ok := ds.Commit("abc")
	require.True(t, ok)
	assert.Equal(t, 1, c.TotalLines)

	_, ok = ds.Commit("missing")
	assert.False(t, ok)
}

func TestDataset_LinesOfAndLanguages(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	ds := Aggregate([]models.LineRecord{
		line("a", "x.js", "js", at),
		line("b", "y.css", "css", at),
		line("a", "z.html", "html", at),
	}, "")

	b, _ := ds.Commit("b")
	assert.Len(t, ds.LinesOf([]models.Commit{b}), 1)
	assert.Len(t, ds.LinesOf(ds.Commits()), 3)
	assert.Equal(t, []string{"js", "css", "html"}, ds.Languages())
}

func TestAggregate_Empty(t *testing.T) {
	ds := Aggregate(nil, "")
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Commits())
	assert.Empty(t, ds.Chronological())
}
