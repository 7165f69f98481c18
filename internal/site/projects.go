// Package site holds the pieces shared by every page: navigation, the
// color scheme preference, the projects feed and the GitHub profile card.
package site

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/d4zhu/portfolio/internal/errors"
	"github.com/d4zhu/portfolio/internal/ingestion"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// UntitledProject is shown for projects without a title.
const UntitledProject = "Untitled Project"

// HomeProjectCount is how many projects the home page shows.
const HomeProjectCount = 3

var headingLevels = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// Renderer writes site fragments. A missing output is logged, not fatal.
type Renderer struct {
	logger *logrus.Logger
}

// NewRenderer creates a renderer that reports problems to logger.
func NewRenderer(logger *logrus.Logger) *Renderer {
	return &Renderer{logger: logger}
}

type projectView struct {
	Open, Close template.HTML
	Title       string
	Image       string
	Description string
	Year        string
}

// RenderProjects writes one article per project. Missing fields fall back
// to defaults and an unknown heading level becomes h2.
func (r *Renderer) RenderProjects(w io.Writer, projects []models.Project, headingLevel string) error {
	if w == nil {
		r.logger.Error("projects render needs a valid container")
		return nil
	}

	level := strings.ToLower(strings.TrimSpace(headingLevel))
	if !headingLevels[level] {
		level = "h2"
	}

	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		title := p.Title
		if title == "" {
			title = UntitledProject
		}
		views = append(views, projectView{
			// level comes from the fixed set above
			Open:        template.HTML("<" + level + ">"),
			Close:       template.HTML("</" + level + ">"),
			Title:       title,
			Image:       p.Image,
			Description: p.Description,
			Year:        p.Year,
		})
	}

	if err := templates.ExecuteTemplate(w, "projects.tmpl", views); err != nil {
		return errors.InternalErrorf("render projects: %v", err)
	}
	return nil
}

// LoadProjects fetches and decodes a projects JSON array.
func LoadProjects(ctx context.Context, src ingestion.Source) ([]models.Project, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var projects []models.Project
	if err := json.NewDecoder(rc).Decode(&projects); err != nil {
		return nil, errors.ParseErrorf(err, "decode projects from %s", src.Name())
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// LatestProjects returns the first n projects with image paths rewritten
// for a page one directory up.
func LatestProjects(projects []models.Project, n int) []models.Project {
	if n > len(projects) {
		n = len(projects)
	}
	if n < 0 {
		n = 0
	}

	latest := make([]models.Project, n)
	for i := 0; i < n; i++ {
		p := projects[i]
		p.Image = strings.Replace(p.Image, "../", "./", 1)
		latest[i] = p
	}
	return latest
}

// ProjectsTitle is the heading of the projects page.
func ProjectsTitle(count int) string {
	return fmt.Sprintf("Projects (%d)", count)
}
