package server

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docsite/internal/codeviewer"
	"github.com/ziadkadry99/docsite/internal/dom"
	"github.com/ziadkadry99/docsite/internal/visibility"
)

// liveReloadScript reconnects to /livereload and reloads on "reload".
const liveReloadScript = `<script>(function() {
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + '/livereload');
  ws.onmessage = function(e) { if (e.data === 'reload') { location.reload(); } };
})();</script>`

var errOutsideSite = errors.New("path outside site")

// resolve maps a URL path to a file under the site dir. Directories resolve
// to their index.html.
func (s *Server) resolve(urlPath string) (string, error) {
	clean := path.Clean("/" + urlPath)
	file := filepath.Join(s.cfg.SiteDir, filepath.FromSlash(clean))
	rel, err := filepath.Rel(s.cfg.SiteDir, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errOutsideSite
	}

	info, err := os.Stat(file)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		file = filepath.Join(file, "index.html")
		if _, err := os.Stat(file); err != nil {
			return "", err
		}
	}
	return file, nil
}

// handlePage serves site files. HTML pages are rendered with the reader's
// hidden categories; ?hide= and ?show= update them first and redirect back
// to the page without the action.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	file, err := s.resolve(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if !strings.HasSuffix(file, ".html") {
		http.ServeFile(w, r, file)
		return
	}

	query := r.URL.Query()
	if query.Has("hide") || query.Has("show") {
		s.handleAction(w, r, query)
		return
	}

	f, err := os.Open(file)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	doc, err := dom.Parse(f, s.cfg.Attributes)
	if err != nil {
		s.logger.Error("parsing page", zap.String("file", file), zap.Error(err))
		http.Error(w, "page could not be parsed", http.StatusInternalServerError)
		return
	}

	s.readerController(r.Context(), w, r, doc)

	if viewer := query.Get("viewer"); viewer != "" {
		codeviewer.Select(doc, viewer, query.Get("file"))
	}

	if s.hub != nil {
		if body := doc.Body(); body != nil {
			if err := body.AppendHTML(liveReloadScript); err != nil {
				s.logger.Warn("injecting live reload", zap.Error(err))
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := doc.Render(w); err != nil {
		s.logger.Warn("writing page", zap.String("file", file), zap.Error(err))
	}
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request, query url.Values) {
	ctrl := s.readerController(r.Context(), w, r, dom.None)

	for _, action := range []struct {
		param string
		hide  bool
	}{{"hide", true}, {"show", false}} {
		if !query.Has(action.param) {
			continue
		}
		category := query.Get(action.param)
		if err := toggle(r.Context(), ctrl, category, action.hide); err != nil {
			if errors.Is(err, visibility.ErrUnknownCategory) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			s.logger.Error("updating preference", zap.String("category", category), zap.Error(err))
			http.Error(w, "preference could not be saved", http.StatusInternalServerError)
			return
		}
		query.Del(action.param)
	}

	target := url.URL{Path: r.URL.Path, RawQuery: query.Encode()}
	http.Redirect(w, r, target.String(), http.StatusSeeOther)
}
