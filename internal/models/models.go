package models

import (
	"encoding/json"
	"strings"
	"time"
)

// LineRecord is one changed source line attributed to a commit,
// as exported in loc.csv.
type LineRecord struct {
	Commit   string    `json:"commit" db:"commit_id"`
	Author   string    `json:"author" db:"author"`
	Date     time.Time `json:"date" db:"date"`
	Time     string    `json:"time" db:"time"`
	Timezone string    `json:"timezone" db:"timezone"`
	Datetime time.Time `json:"datetime" db:"datetime"`
	File     string    `json:"file" db:"file"`
	Line     int       `json:"line" db:"line"`
	Depth    int       `json:"depth" db:"depth"`
	Length   int       `json:"length" db:"length"`
	Type     string    `json:"type" db:"type"`
}

// Commit aggregates every LineRecord that shares a commit id.
//
// The constituent lines are deliberately not a field: they live in the
// dataset's side table and are looked up by ID.
type Commit struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Author     string    `json:"author"`
	Date       time.Time `json:"date"`
	Time       string    `json:"time"`
	Timezone   string    `json:"timezone"`
	Datetime   time.Time `json:"datetime"`
	HourFrac   float64   `json:"hourFrac"`
	TotalLines int       `json:"totalLines"`
}

// FileGroup is the per-file view of lines within a filtered commit set.
type FileGroup struct {
	Name  string       `json:"name"`
	Lines []LineRecord `json:"-"`
	Type  string       `json:"type"`
	Color string       `json:"color"`
}

// Count returns the number of lines in the group.
func (g FileGroup) Count() int {
	return len(g.Lines)
}

// Project is one entry of the projects JSON feed. Every field is optional.
type Project struct {
	Title       string `json:"title,omitempty" yaml:"title"`
	Image       string `json:"image,omitempty" yaml:"image"`
	Description string `json:"description,omitempty" yaml:"description"`
	Year        string `json:"year,omitempty" yaml:"year"`
}

// UnmarshalJSON accepts a numeric or string year.
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var raw struct {
		plain
		Year json.RawMessage `json:"year"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Project(raw.plain)
	p.Year = ""
	if len(raw.Year) > 0 && string(raw.Year) != "null" {
		var s string
		if err := json.Unmarshal(raw.Year, &s); err == nil {
			p.Year = s
		} else {
			p.Year = strings.TrimSpace(string(raw.Year))
		}
	}
	return nil
}

// Profile holds the GitHub profile counters shown on the home page.
type Profile struct {
	Login       string    `json:"login"`
	PublicRepos int       `json:"public_repos"`
	PublicGists int       `json:"public_gists"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Page is one navigation entry.
type Page struct {
	URL   string `json:"url" yaml:"url" mapstructure:"url"`
	Title string `json:"title" yaml:"title" mapstructure:"title"`
}
