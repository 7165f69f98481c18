// Package commits groups line records into commits and derives the
// summary and narrative views of the meta page.
package commits

import (
	"sort"
	"strings"

	"github.com/d4zhu/portfolio/internal/models"
)

// DefaultCommitBaseURL prefixes commit ids to form the commit link.
const DefaultCommitBaseURL = "https://github.com/vis-society/lab-7/commit/"

// Dataset is the read-only result of aggregating loc.csv.
//
// Commit values never carry their lines. The association lives in the
// lines table keyed by commit id, so encoding or copying a Commit does
// not drag the raw records along.
type Dataset struct {
	records []models.LineRecord
	commits []models.Commit
	lines   map[string][]models.LineRecord
	index   map[string]int
}

// Aggregate groups records by commit id in first-encountered order.
// baseURL is prepended to each id for Commit.URL; empty uses the default.
func Aggregate(records []models.LineRecord, baseURL string) *Dataset {
	if baseURL == "" {
		baseURL = DefaultCommitBaseURL
	}

	ds := &Dataset{
		records: records,
		lines:   make(map[string][]models.LineRecord),
		index:   make(map[string]int),
	}

	var order []string
	for _, rec := range records {
		if _, seen := ds.lines[rec.Commit]; !seen {
			order = append(order, rec.Commit)
		}
		ds.lines[rec.Commit] = append(ds.lines[rec.Commit], rec)
	}

	ds.commits = make([]models.Commit, 0, len(order))
	for _, id := range order {
		group := ds.lines[id]
		first := group[0]
		ds.index[id] = len(ds.commits)
		ds.commits = append(ds.commits, models.Commit{
			ID:         id,
			URL:        strings.TrimRight(baseURL, "/") + "/" + id,
			Author:     first.Author,
			Date:       first.Date,
			Time:       first.Time,
			Timezone:   first.Timezone,
			Datetime:   first.Datetime,
			HourFrac:   HourFrac(first),
			TotalLines: len(group),
		})
	}

	return ds
}

// HourFrac is the fractional hour of day of the record's timestamp.
func HourFrac(rec models.LineRecord) float64 {
	return float64(rec.Datetime.Hour()) + float64(rec.Datetime.Minute())/60
}

// Commits returns a copy of the full commit list in first-seen order.
func (d *Dataset) Commits() []models.Commit {
	out := make([]models.Commit, len(d.commits))
	copy(out, d.commits)
	return out
}

// Len returns the number of commits.
func (d *Dataset) Len() int {
	return len(d.commits)
}

// Records returns every line record in source order.
func (d *Dataset) Records() []models.LineRecord {
	return d.records
}

// Commit looks up a commit by id.
func (d *Dataset) Commit(id string) (models.Commit, bool) {
	i, ok := d.index[id]
	if !ok {
		return models.Commit{}, false
	}
	return d.commits[i], true
}

// Lines returns the line records of one commit.
func (d *Dataset) Lines(id string) []models.LineRecord {
	return d.lines[id]
}

// LinesOf flattens the lines of the given commits, commit by commit.
func (d *Dataset) LinesOf(commits []models.Commit) []models.LineRecord {
	var n int
	for _, c := range commits {
		n += len(d.lines[c.ID])
	}
	out := make([]models.LineRecord, 0, n)
	for _, c := range commits {
		out = append(out, d.lines[c.ID]...)
	}
	return out
}

// Chronological returns the commits sorted by timestamp, oldest first.
func (d *Dataset) Chronological() []models.Commit {
	out := d.Commits()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Datetime.Before(out[j].Datetime)
	})
	return out
}

// Languages returns the distinct line types in first-seen order.
func (d *Dataset) Languages() []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range d.records {
		if !seen[rec.Type] {
			seen[rec.Type] = true
			out = append(out, rec.Type)
		}
	}
	return out
}
