package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docsite/internal/codeviewer"
	"github.com/ziadkadry99/docsite/internal/dom"
	"github.com/ziadkadry99/docsite/internal/headings"
	"github.com/ziadkadry99/docsite/internal/visibility"
)

type categoriesResponse struct {
	Categories []string `json:"categories"`
	Hidden     []string `json:"hidden"`
	Visible    []string `json:"visible"`
}

// registerAPI mounts the JSON endpoints under /api.
func (s *Server) registerAPI(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)
		r.Delete("/categories", s.handleResetCategories)
		r.Post("/categories/{category}/hide", s.handleToggle(true))
		r.Post("/categories/{category}/show", s.handleToggle(false))
		r.Get("/headings", s.handleHeadings)
		r.Post("/headings/observe", s.handleObserveHeadings)
		r.Get("/viewers", s.handleViewers)
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	ctrl := s.readerController(r.Context(), w, r, dom.None)
	writeJSON(w, http.StatusOK, categoriesOf(ctrl))
}

func (s *Server) handleToggle(hide bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := chi.URLParam(r, "category")
		ctrl := s.readerController(r.Context(), w, r, dom.None)

		if err := toggle(r.Context(), ctrl, category, hide); err != nil {
			if errors.Is(err, visibility.ErrUnknownCategory) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
				return
			}
			s.logger.Error("updating preference", zap.String("category", category), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, categoriesOf(ctrl))
	}
}

func (s *Server) handleResetCategories(w http.ResponseWriter, r *http.Request) {
	ctrl := s.readerController(r.Context(), w, r, dom.None)
	if err := ctrl.Reset(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHeadings(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadPage(w, r)
	if !ok {
		return
	}
	hs := headings.Collect(doc)
	if hs == nil {
		hs = []headings.Heading{}
	}
	writeJSON(w, http.StatusOK, hs)
}

type observeRequest struct {
	Entries []headings.Entry `json:"entries"`
}

type observeResponse struct {
	Fragment string   `json:"fragment"`
	Pushed   []string `json:"pushed"`
}

// handleObserveHeadings replays a batch of heading visibility entries and
// returns the location fragments they push. fragment is the last of them.
func (s *Server) handleObserveHeadings(w http.ResponseWriter, r *http.Request) {
	var req observeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	pushed := []string{}
	obs := headings.NewObserver(func(fragment string) { pushed = append(pushed, fragment) })
	obs.Observe(req.Entries)
	writeJSON(w, http.StatusOK, observeResponse{Fragment: obs.Fragment(), Pushed: pushed})
}

type viewerState struct {
	ID       string `json:"id"`
	Selected string `json:"selected"`
}

func (s *Server) handleViewers(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadPage(w, r)
	if !ok {
		return
	}
	out := []viewerState{}
	for _, id := range codeviewer.Viewers(doc) {
		if file, ok := codeviewer.Selected(doc, id); ok {
			out = append(out, viewerState{ID: id, Selected: file})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// loadPage parses the site page named by ?page=. On failure it writes the
// error response and returns false.
func (s *Server) loadPage(w http.ResponseWriter, r *http.Request) (*dom.Document, bool) {
	page := r.URL.Query().Get("page")
	if page == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "page is required"})
		return nil, false
	}
	file, err := s.resolve(page)
	if err != nil || !strings.HasSuffix(file, ".html") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "page not found"})
		return nil, false
	}
	f, err := os.Open(file)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "page not found"})
		return nil, false
	}
	defer f.Close()

	doc, err := dom.Parse(f, s.cfg.Attributes)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	return doc, true
}

func categoriesOf(ctrl *visibility.Controller) categoriesResponse {
	return categoriesResponse{
		Categories: nonNil(ctrl.Categories()),
		Hidden:     nonNil(ctrl.Hidden()),
		Visible:    nonNil(ctrl.Visible()),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
