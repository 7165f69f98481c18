package commits

import (
	"fmt"
	"strings"
	"time"

	"github.com/d4zhu/portfolio/internal/models"
)

// Stat is one labelled value of the summary block.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary holds the numbers shown above the scatterplot.
type Summary struct {
	Commits          int    `json:"commits"`
	Files            int    `json:"files"`
	TotalLOC         int    `json:"total_loc"`
	LongestLine      int    `json:"longest_line"`
	MaxDepth         int    `json:"max_depth"`
	MostActivePeriod string `json:"most_active_period"`
}

// Summarize computes the summary over every line of the dataset.
func Summarize(d *Dataset) Summary {
	s := Summary{Commits: d.Len()}

	files := make(map[string]bool)
	periods := make(map[string]int)
	var periodOrder []string

	for _, rec := range d.Records() {
		files[rec.File] = true
		if rec.Length > s.LongestLine {
			s.LongestLine = rec.Length
		}
		if rec.Depth > s.MaxDepth {
			s.MaxDepth = rec.Depth
		}

		p := DayPeriod(rec.Datetime)
		if _, ok := periods[p]; !ok {
			periodOrder = append(periodOrder, p)
		}
		periods[p]++
	}

	s.Files = len(files)
	s.TotalLOC = len(d.Records())

	// ties resolve to the first period encountered
	best := 0
	for _, p := range periodOrder {
		if periods[p] > best {
			best = periods[p]
			s.MostActivePeriod = p
		}
	}
	s.MostActivePeriod = capitalize(s.MostActivePeriod)

	return s
}

// Stats returns the summary as ordered label/value pairs.
func (s Summary) Stats() []Stat {
	return []Stat{
		{Label: "COMMITS", Value: fmt.Sprint(s.Commits)},
		{Label: "FILES", Value: fmt.Sprint(s.Files)},
		{Label: "TOTAL LOC", Value: fmt.Sprint(s.TotalLOC)},
		{Label: "LONGEST LINE", Value: fmt.Sprintf("%d chars", s.LongestLine)},
		{Label: "MAX DEPTH", Value: fmt.Sprint(s.MaxDepth)},
		{Label: "MOST ACTIVE TIME", Value: s.MostActivePeriod},
	}
}

// DayPeriod names the part of the day the way English locales do for a
// short flexible day period.
func DayPeriod(t time.Time) string {
	h := t.Hour()
	switch {
	case h == 12 && t.Minute() == 0:
		return "noon"
	case h >= 6 && h < 12:
		return "in the morning"
	case h >= 12 && h < 18:
		return "in the afternoon"
	case h >= 18 && h < 21:
		return "in the evening"
	default:
		return "at night"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// filesTouched counts distinct files among lines.
func filesTouched(lines []models.LineRecord) int {
	files := make(map[string]bool)
	for _, l := range lines {
		files[l.File] = true
	}
	return len(files)
}
