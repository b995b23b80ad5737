package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docsite/internal/dom"
	"github.com/ziadkadry99/docsite/internal/kvstore"
	"github.com/ziadkadry99/docsite/internal/visibility"
)

// readerController rehydrates the reader's hidden categories from their
// cookies and applies them to q. Readers without a stored preference get
// DefaultHidden. Writes go back out as Set-Cookie headers on w.
func (s *Server) readerController(ctx context.Context, w http.ResponseWriter, r *http.Request, q dom.Query) *visibility.Controller {
	var backend kvstore.Backend = kvstore.NewCookieBackend(r, w, s.cfg.Cookies)
	if s.defaults != nil {
		backend = kvstore.NewFallbackBackend(backend, s.defaults)
	}
	adapter := kvstore.NewAdapter(backend, kvstore.DefaultScope, s.logger)
	return visibility.New(ctx, adapter, visibility.Options{
		Key:        s.cfg.StorageKey,
		Categories: s.cfg.Categories,
		Logger:     s.logger,
	}, q)
}

// toggle hides or shows category for the reader.
func toggle(ctx context.Context, ctrl *visibility.Controller, category string, hide bool) error {
	if err := ctrl.Validate(category); err != nil {
		return err
	}
	if hide {
		return ctrl.Hide(ctx, category)
	}
	return ctrl.Show(ctx, category)
}

// defaultsBackend holds cfg.DefaultHidden under the storage key.
func defaultsBackend(cfg Config, logger *zap.Logger) kvstore.Backend {
	key := cfg.StorageKey
	if key == "" {
		key = visibility.DefaultKey
	}
	mem := kvstore.NewMemoryBackend()
	// Encoding a string slice into memory cannot fail.
	_ = kvstore.NewAdapter(mem, kvstore.DefaultScope, logger).SetJSON(context.Background(), key, cfg.DefaultHidden)
	return mem
}
