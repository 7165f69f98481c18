package commits

import (
	"fmt"

	"github.com/d4zhu/portfolio/internal/models"
)

// Step is one scrollytelling block. Entering it filters the charts to
// every commit up to and including Commit.
type Step struct {
	Commit models.Commit `json:"commit"`
	Text   string        `json:"text"`
	Lines  int           `json:"lines"`
	Files  int           `json:"files"`
}

// Narrative builds one step per commit, oldest first.
func Narrative(d *Dataset) []Step {
	ordered := d.Chronological()
	steps := make([]Step, 0, len(ordered))

	for i, c := range ordered {
		files := filesTouched(d.Lines(c.ID))

		adjective := "another glorious commit"
		if i == 0 {
			adjective = "my first commit, and it was glorious"
		}

		steps = append(steps, Step{
			Commit: c,
			Lines:  c.TotalLines,
			Files:  files,
			Text: fmt.Sprintf("On %s, I made %s. I edited %d %s across %d %s.",
				c.Datetime.Format("Monday, January 2, 2006 at 3:04 PM"),
				adjective,
				c.TotalLines, plural(c.TotalLines, "line", "lines"),
				files, plural(files, "file", "files")),
		})
	}

	return steps
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
