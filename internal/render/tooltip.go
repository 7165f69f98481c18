package render

import (
	"fmt"

	"github.com/d4zhu/portfolio/internal/models"
)

// Tooltip is what the hover card shows for a commit.
type Tooltip struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Author string `json:"author"`
	Lines  int    `json:"lines"`
}

// TooltipFor formats a commit for the hover card.
func TooltipFor(c models.Commit) Tooltip {
	t := Tooltip{
		ID:     c.ID,
		URL:    c.URL,
		Author: c.Author,
		Lines:  c.TotalLines,
	}
	if !c.Datetime.IsZero() {
		t.Date = c.Datetime.Format("Mon, Jan 2, 2006")
		t.Time = c.Datetime.Format("03:04 PM")
	}
	return t
}

// TooltipPosition places the card just below and right of the pointer.
func TooltipPosition(clientX, clientY float64) (left, top string) {
	return fmt.Sprintf("%gpx", clientX+10), fmt.Sprintf("%gpx", clientY+10)
}
