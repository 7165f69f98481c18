package render

import (
	"github.com/d4zhu/portfolio/internal/models"
)

// JoinResult is a keyed data join between two renders.
type JoinResult struct {
	Enter  []string `json:"enter"`
	Update []string `json:"update"`
	Exit   []string `json:"exit"`
}

// Join matches file groups by name. Enter and Update follow next's
// order; Exit follows prev's.
func Join(prev, next []models.FileGroup) JoinResult {
	before := make(map[string]bool, len(prev))
	for _, g := range prev {
		before[g.Name] = true
	}
	after := make(map[string]bool, len(next))

	res := JoinResult{Enter: []string{}, Update: []string{}, Exit: []string{}}
	for _, g := range next {
		after[g.Name] = true
		if before[g.Name] {
			res.Update = append(res.Update, g.Name)
		} else {
			res.Enter = append(res.Enter, g.Name)
		}
	}
	for _, g := range prev {
		if !after[g.Name] {
			res.Exit = append(res.Exit, g.Name)
		}
	}
	return res
}

// Keys returns the group names in order.
func Keys(groups []models.FileGroup) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Name
	}
	return out
}
