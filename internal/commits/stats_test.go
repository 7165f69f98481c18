package commits

import (
	"strings"
	"testing"
	"time"

	"github.com/d4zhu/portfolio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayPeriod(t *testing.T) {
	tests := []struct {
		h, m int
		want string
	}{
		{0, 0, "at night"},
		{5, 59, "at night"},
		{6, 0, "in the morning"},
		{11, 59, "in the morning"},
		{12, 0, "noon"},
		{12, 1, "in the afternoon"},
		{17, 59, "in the afternoon"},
		{18, 0, "in the evening"},
		{21, 0, "at night"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			at := time.Date(2024, 1, 1, tt.h, tt.m, 0, 0, time.UTC)
			assert.Equal(t, tt.want, DayPeriod(at))
		})
	}
}

func TestSummarize(t *testing.T) {
	morning := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 1, 2, 19, 0, 0, 0, time.UTC)

	records := []models.LineRecord{
		{Commit: "a", File: "a.js", Length: 12, Depth: 1, Datetime: morning},
		{Commit: "a", File: "b.js", Length: 80, Depth: 4, Datetime: morning},
		{Commit: "b", File: "a.js", Length: 5, Depth: 0, Datetime: evening},
		{Commit: "b", File: "a.js", Length: 5, Depth: 0, Datetime: evening},
		{Commit: "b", File: "c.css", Length: 5, Depth: 2, Datetime: evening},
	}

	s := Summarize(Aggregate(records, ""))
	assert.Equal(t, 2, s.Commits)
	assert.Equal(t, 3, s.Files)
	assert.Equal(t, 5, s.TotalLOC)
	assert.Equal(t, 80, s.LongestLine)
	assert.Equal(t, 4, s.MaxDepth)
	assert.Equal(t, "In the evening", s.MostActivePeriod)

	stats := s.Stats()
	require.Len(t, stats, 6)
	assert.Equal(t, "LONGEST LINE", stats[3].Label)
	assert.Equal(t, "80 chars", stats[3].Value)
}

func TestSummarize_TieGoesToFirstPeriod(t *testing.T) {
	records := []models.LineRecord{
		{Commit: "a", Datetime: time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)},
		{Commit: "b", Datetime: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, "At night", Summarize(Aggregate(records, "")).MostActivePeriod)
}

func TestNarrative(t *testing.T) {
	late := time.Date(2024, 2, 1, 15, 4, 0, 0, time.UTC)
	early := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	ds := Aggregate([]models.LineRecord{
		{Commit: "late", File: "a.js", Datetime: late},
		{Commit: "late", File: "b.js", Datetime: late},
		{Commit: "early", File: "a.js", Datetime: early},
	}, "")

	steps := Narrative(ds)
	require.Len(t, steps, 2)
	assert.Equal(t, "early", steps[0].Commit.ID)
	assert.Equal(t, "late", steps[1].Commit.ID)

	assert.True(t, strings.HasPrefix(steps[0].Text, "On Monday, January 1, 2024 at 9:30 AM"))
	assert.Contains(t, steps[0].Text, "I edited 1 line across 1 file.")
	assert.Contains(t, steps[1].Text, "another glorious commit")
	assert.Contains(t, steps[1].Text, "I edited 2 lines across 2 files.")
}
