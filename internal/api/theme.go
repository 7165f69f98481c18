package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/d4zhu/portfolio/internal/site"
	"github.com/google/uuid"
)

// VisitorCookie carries the anonymous id preferences are stored under.
const VisitorCookie = "visitor"

type visitorKey struct{}

// visitor makes sure every page request carries a visitor id.
func (s *Server) visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(VisitorCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     VisitorCookie,
				Value:    id,
				Path:     "/",
				Expires:  time.Now().AddDate(1, 0, 0),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), visitorKey{}, id)))
	})
}

func visitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}

// scheme returns the visitor's color scheme, falling back to automatic.
func (s *Server) scheme(ctx context.Context) string {
	scheme, err := s.opts.Themes.GetScheme(ctx, visitorID(ctx))
	if err != nil {
		s.logger.WithError(err).Warn("failed to read color scheme")
		return site.SchemeAuto
	}
	return site.NormalizeScheme(scheme)
}

func (s *Server) setTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	scheme := site.NormalizeScheme(r.PostForm.Get("scheme"))
	if err := s.opts.Themes.SetScheme(r.Context(), visitorID(r.Context()), scheme); err != nil {
		s.logger.WithError(err).Error("failed to save color scheme")
		writeError(w, http.StatusInternalServerError, "could not save preference")
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, map[string]string{"scheme": scheme})
		return
	}

	back := s.opts.BasePath + "/"
	if u, err := url.Parse(r.Referer()); err == nil && strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(u.Path, "//") && (u.Host == "" || u.Host == r.Host) {
		back = u.Path
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
