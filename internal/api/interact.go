package api

import (
	"net/http"
	"strconv"

	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/meta"
	"github.com/d4zhu/portfolio/internal/selection"
)

func (s *Server) commits(w http.ResponseWriter, r *http.Request) {
	ds, err := s.opts.Data.Dataset(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to load commit data")
		writeError(w, http.StatusServiceUnavailable, "commit data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, ds.Commits())
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	ds, err := s.opts.Data.Dataset(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to load commit data")
		writeError(w, http.StatusServiceUnavailable, "commit data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, commits.Summarize(ds).Stats())
}

func (s *Server) narrative(w http.ResponseWriter, r *http.Request) {
	ds, err := s.opts.Data.Dataset(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to load commit data")
		writeError(w, http.StatusServiceUnavailable, "commit data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, commits.Narrative(ds))
}

// selection answers a brush over the chart currently drawn. The drawn
// window is given by the same progress/commit parameters as cutoff.
func (s *Server) selection(w http.ResponseWriter, r *http.Request) {
	view := s.view(r.Context())

	window, ok := s.window(w, r, view)
	if !ok {
		return
	}

	q := r.URL.Query()
	var rect *selection.Rect
	if q.Get("x0") != "" {
		vals := make([]float64, 4)
		for i, key := range []string{"x0", "y0", "x1", "y1"} {
			v, err := strconv.ParseFloat(q.Get(key), 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid "+key)
				return
			}
			vals[i] = v
		}
		rect = &selection.Rect{{vals[0], vals[1]}, {vals[2], vals[3]}}
	}

	writeJSON(w, http.StatusOK, view.Brush(window, rect))
}

func (s *Server) cutoff(w http.ResponseWriter, r *http.Request) {
	view := s.view(r.Context())

	window, ok := s.window(w, r, view)
	if !ok {
		return
	}

	var prev *meta.Window
	if p := r.URL.Query().Get("prev"); p != "" {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid prev")
			return
		}
		before := view.AtProgress(v)
		prev = &before
	}

	res, err := view.Redraw(window, prev)
	if err != nil {
		s.logger.WithError(err).Error("failed to redraw charts")
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) scatterSVG(w http.ResponseWriter, r *http.Request) {
	view := s.view(r.Context())

	window, ok := s.window(w, r, view)
	if !ok {
		return
	}

	sel := selection.None()
	if window.Filtered {
		sel = selection.Until(window.Cutoff)
	}
	svg, err := view.RenderScatter(window, sel)
	if err != nil {
		s.logger.WithError(err).Error("failed to render scatterplot")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` + "\n"))
	w.Write([]byte(svg))
}

func (s *Server) filesFragment(w http.ResponseWriter, r *http.Request) {
	view := s.view(r.Context())

	window, ok := s.window(w, r, view)
	if !ok {
		return
	}

	html, err := view.RenderFiles(window)
	if err != nil {
		s.logger.WithError(err).Error("failed to render file breakdown")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// window reads the drawn commit window from ?commit= or ?progress=.
// Neither means everything. It writes the error response itself.
func (s *Server) window(w http.ResponseWriter, r *http.Request, view *meta.View) (meta.Window, bool) {
	q := r.URL.Query()

	if id := q.Get("commit"); id != "" {
		window, ok := view.AtCommit(id)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown commit "+id)
			return meta.Window{}, false
		}
		return window, true
	}

	if p := q.Get("progress"); p != "" {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid progress")
			return meta.Window{}, false
		}
		return view.AtProgress(v), true
	}

	return view.All(), true
}
