package selection

import (
	"strconv"
	"strings"

	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/models"
)

// LanguageShare is one row of the language breakdown.
type LanguageShare struct {
	Language string  `json:"language"`
	Lines    int     `json:"lines"`
	Fraction float64 `json:"fraction"`
	Percent  string  `json:"percent"`
}

// Breakdown groups every line of the selected commits by type. Rows
// come out in order of first appearance; an empty selection yields no
// rows.
func Breakdown(ds *commits.Dataset, selected []models.Commit) []LanguageShare {
	lines := ds.LinesOf(selected)
	if len(lines) == 0 {
		return []LanguageShare{}
	}

	counts := make(map[string]int)
	var order []string
	for _, l := range lines {
		if _, ok := counts[l.Type]; !ok {
			order = append(order, l.Type)
		}
		counts[l.Type]++
	}

	out := make([]LanguageShare, 0, len(order))
	for _, lang := range order {
		frac := float64(counts[lang]) / float64(len(lines))
		out = append(out, LanguageShare{
			Language: lang,
			Lines:    counts[lang],
			Fraction: frac,
			Percent:  FormatPercent(frac),
		})
	}
	return out
}

// FormatPercent formats a fraction with one decimal and no trailing
// zero: 0.6667 -> "66.7%", 0.5 -> "50%".
func FormatPercent(frac float64) string {
	s := strconv.FormatFloat(frac*100, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return s + "%"
}
