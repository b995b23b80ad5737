package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/ziadkadry99/docsite/internal/config"
	"github.com/ziadkadry99/docsite/internal/db"
	"github.com/ziadkadry99/docsite/internal/kvstore"
	"github.com/ziadkadry99/docsite/internal/visibility"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docsite init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openProfile opens the local preferences database and returns an adapter
// scoped to profile. The caller closes the database.
func openProfile(cfg *config.Config, profile string) (*db.DB, *kvstore.Adapter, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening preferences: %w", err)
	}
	return database, kvstore.NewAdapter(kvstore.NewSQLiteBackend(database), profile, logger), nil
}

// newController builds a visibility controller over a page-less profile.
func newController(ctx context.Context, cfg *config.Config, adapter *kvstore.Adapter) *visibility.Controller {
	return visibility.New(ctx, adapter, visibility.Options{
		Key:        cfg.StorageKey,
		Categories: cfg.Categories,
		Logger:     logger,
	}, nil)
}

// profileExists reports whether the local preferences database has been
// created.
func profileExists(cfg *config.Config) bool {
	_, err := os.Stat(cfg.DatabasePath())
	return err == nil
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
