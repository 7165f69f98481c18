package api

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/d4zhu/portfolio/internal/ingestion"
	"github.com/d4zhu/portfolio/internal/logging"
	"github.com/d4zhu/portfolio/internal/meta"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/d4zhu/portfolio/internal/scales"
	"github.com/d4zhu/portfolio/internal/site"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

//go:embed static
var staticFS embed.FS

// ProfileFetcher returns GitHub profile counters.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (*models.Profile, error)
}

// Options wires a Server to its collaborators. Projects and Profiles are
// optional; their sections render empty when nil.
type Options struct {
	Data       *meta.Provider
	Themes     site.ThemeStore
	Profiles   ProfileFetcher
	Projects   ingestion.Source
	Pages      []models.Page
	GitHubUser string
	BasePath   string
	Layout     scales.Layout
	Logger     *logrus.Logger
}

type Server struct {
	router   *chi.Mux
	opts     Options
	logger   *logrus.Logger
	renderer *site.Renderer
	pages    *pageTemplates
}

func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Themes == nil {
		opts.Themes = site.NewMemoryThemeStore()
	}
	if opts.Pages == nil {
		opts.Pages = site.DefaultPages
	}
	if opts.Layout.Width == 0 {
		opts.Layout = scales.DefaultLayout
	}
	opts.BasePath = strings.TrimSuffix(opts.BasePath, "/")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: opts.Logger, NoColor: true}))
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		opts:     opts,
		logger:   opts.Logger,
		renderer: site.NewRenderer(opts.Logger),
		pages:    mustParsePages(),
	}

	router.Get("/health", s.health)

	static, _ := fs.Sub(staticFS, "static")
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	router.Route("/api", func(r chi.Router) {
		r.Get("/commits", s.commits)
		r.Get("/summary", s.summary)
		r.Get("/narrative", s.narrative)
		r.Get("/selection", s.selection)
		r.Get("/cutoff", s.cutoff)
	})

	router.Group(func(r chi.Router) {
		r.Use(s.visitor)
		r.Post("/theme", s.setTheme)

		base := opts.BasePath
		if base != "" {
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				http.Redirect(w, req, base+"/", http.StatusFound)
			})
		}
		r.Get(base+"/", s.home)
		r.Get(base+"/index.html", s.home)
		r.Get(base+"/projects/", s.projects)
		r.Get(base+"/contact/", s.contact)
		r.Get(base+"/resume/", s.resume)
		r.Get(base+"/meta/", s.metaPage)
		r.Get(base+"/meta/scatter.svg", s.scatterSVG)
		r.Get(base+"/meta/files", s.filesFragment)
	})

	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("portfolio server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
