package site

import (
	"io"
	"strconv"

	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/errors"
	"github.com/d4zhu/portfolio/internal/models"
)

// ProfileStats lists the profile counters in display order.
func ProfileStats(p *models.Profile) []commits.Stat {
	if p == nil {
		return nil
	}
	return []commits.Stat{
		{Label: "PUBLIC REPOS", Value: strconv.Itoa(p.PublicRepos)},
		{Label: "PUBLIC GISTS", Value: strconv.Itoa(p.PublicGists)},
		{Label: "FOLLOWERS", Value: strconv.Itoa(p.Followers)},
		{Label: "FOLLOWING", Value: strconv.Itoa(p.Following)},
	}
}

// RenderProfile writes the profile card. A nil profile renders nothing.
func (r *Renderer) RenderProfile(w io.Writer, p *models.Profile) error {
	if w == nil {
		r.logger.Error("profile render needs a valid container")
		return nil
	}
	if p == nil {
		return nil
	}

	if err := templates.ExecuteTemplate(w, "profile.tmpl", ProfileStats(p)); err != nil {
		return errors.InternalErrorf("render profile: %v", err)
	}
	return nil
}
