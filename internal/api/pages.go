package api

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/meta"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/d4zhu/portfolio/internal/selection"
	"github.com/d4zhu/portfolio/internal/site"
	"golang.org/x/sync/errgroup"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageNames = []string{"home", "projects", "contact", "resume", "meta"}

type pageTemplates struct {
	byName map[string]*template.Template
}

// mustParsePages builds one template per page, each sharing the layout.
func mustParsePages() *pageTemplates {
	layout := template.Must(template.ParseFS(templateFS, "templates/layout.tmpl"))
	pt := &pageTemplates{byName: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t := template.Must(layout.Clone())
		pt.byName[name] = template.Must(t.ParseFS(templateFS, "templates/"+name+".tmpl"))
	}
	return pt
}

// pageData is what the layout needs on every page.
type pageData struct {
	Title   string
	Base    string
	Nav     []site.NavLink
	Scheme  template.CSS
	Schemes []site.SchemeOption
	Content interface{}
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name, title string, content interface{}) {
	scheme := s.scheme(r.Context())
	data := pageData{
		Title: title,
		Base:  s.opts.BasePath,
		Nav:   site.Nav(s.opts.Pages, r.Host, r.URL.Path),
		// only the three validated scheme values reach here
		Scheme:  template.CSS(scheme),
		Schemes: site.SchemeOptions(scheme),
		Content: content,
	}

	var buf bytes.Buffer
	if err := s.pages.byName[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.WithError(err).WithField("page", name).Error("failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

type homeContent struct {
	Projects template.HTML
	Profile  template.HTML
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	var content homeContent

	// sections are independent; each one fails soft
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		projects := s.loadProjects(ctx)
		content.Projects = s.projectsHTML(site.LatestProjects(projects, site.HomeProjectCount))
		return nil
	})
	g.Go(func() error {
		content.Profile = s.profileHTML(ctx)
		return nil
	})
	g.Wait()

	s.renderPage(w, r, "home", "Home", content)
}

type projectsContent struct {
	Heading  string
	Projects template.HTML
}

func (s *Server) projects(w http.ResponseWriter, r *http.Request) {
	projects := s.loadProjects(r.Context())
	s.renderPage(w, r, "projects", "Projects", projectsContent{
		Heading:  site.ProjectsTitle(len(projects)),
		Projects: s.projectsHTML(projects),
	})
}

func (s *Server) contact(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "contact", "Contact", nil)
}

func (s *Server) resume(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "resume", "Resume", nil)
}

type metaContent struct {
	Stats     []commits.Stat
	Scatter   template.HTML
	Files     template.HTML
	Steps     []commits.Step
	Count     string
	Breakdown []selection.LanguageShare
	Cutoff    string
	Progress  float64
}

func (s *Server) metaPage(w http.ResponseWriter, r *http.Request) {
	view := s.view(r.Context())
	window := view.All()

	content := metaContent{
		Stats:     commits.Summarize(view.Dataset()).Stats(),
		Steps:     commits.Narrative(view.Dataset()),
		Count:     selection.CountLabel(0),
		Breakdown: []selection.LanguageShare{},
		Cutoff:    meta.CutoffLabel(window),
		Progress:  window.Progress,
	}

	var err error
	if content.Scatter, err = view.RenderScatter(window, selection.None()); err != nil {
		s.logger.WithError(err).Error("failed to render scatterplot")
	}
	if content.Files, err = view.RenderFiles(window); err != nil {
		s.logger.WithError(err).Error("failed to render file breakdown")
	}

	s.renderPage(w, r, "meta", "Meta", content)
}

func (s *Server) view(ctx context.Context) *meta.View {
	return meta.NewView(s.opts.Data.DatasetSafe(ctx), s.opts.Layout)
}

func (s *Server) loadProjects(ctx context.Context) []models.Project {
	if s.opts.Projects == nil {
		return []models.Project{}
	}
	projects, err := site.LoadProjects(ctx, s.opts.Projects)
	if err != nil {
		s.logger.WithError(err).WithField("source", s.opts.Projects.Name()).Error("failed to load projects")
		return []models.Project{}
	}
	return projects
}

func (s *Server) projectsHTML(projects []models.Project) template.HTML {
	var buf bytes.Buffer
	if err := s.renderer.RenderProjects(&buf, projects, "h2"); err != nil {
		s.logger.WithError(err).Error("failed to render projects")
		return ""
	}
	return template.HTML(buf.String())
}

func (s *Server) profileHTML(ctx context.Context) template.HTML {
	if s.opts.Profiles == nil || s.opts.GitHubUser == "" {
		return ""
	}
	profile, err := s.opts.Profiles.FetchProfile(ctx, s.opts.GitHubUser)
	if err != nil {
		s.logger.WithError(err).WithField("user", s.opts.GitHubUser).Error("failed to fetch GitHub profile")
		return ""
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderProfile(&buf, profile); err != nil {
		s.logger.WithError(err).Error("failed to render profile")
		return ""
	}
	return template.HTML(buf.String())
}
