package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docsite/internal/config"
	"github.com/ziadkadry99/docsite/internal/db"
	"github.com/ziadkadry99/docsite/internal/kvstore"
	"github.com/ziadkadry99/docsite/internal/progress"
	"github.com/ziadkadry99/docsite/internal/server"
	"github.com/ziadkadry99/docsite/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated site with per-reader framework filtering",
	Long: `Serves output_dir over HTTP. Each reader's hidden frameworks are kept in
their own cookies and applied to every page; the server itself stores nothing.
With --watch the site is regenerated when docs change and open pages reload.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetInt("port")
		watch, _ := cmd.Flags().GetBool("watch")
		open, _ := cmd.Flags().GetBool("open")
		profile, _ := cmd.Flags().GetString("profile")

		var gen *site.Generator
		if watch {
			g, database, err := generateForWatch(cmd.Context(), cfg, profile)
			if err != nil {
				return err
			}
			if database != nil {
				defer database.Close()
			}
			gen = g
		} else if _, err := os.Stat(cfg.OutputDir); err != nil {
			return fmt.Errorf("site not found at %s\nRun `docsite site` first", cfg.OutputDir)
		}

		return serveSite(cmd, cfg, gen, port, watch, open)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port)")
	serveCmd.Flags().Bool("watch", false, "regenerate on docs changes and live-reload open pages")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	serveCmd.Flags().String("profile", kvstore.DefaultScope, "local preferences profile to render with (--watch only)")
	rootCmd.AddCommand(serveCmd)
}

// generateForWatch renders the site once with the given preferences profile
// and returns the generator for later rebuilds. A non-nil database must stay
// open while the generator is in use.
func generateForWatch(ctx context.Context, cfg *config.Config, profile string) (*site.Generator, *db.DB, error) {
	gen, database, err := newGenerator(ctx, cfg, profile, progress.Nop{})
	if err != nil {
		return nil, nil, err
	}
	if _, err := gen.Generate(ctx); err != nil {
		if database != nil {
			database.Close()
		}
		return nil, nil, fmt.Errorf("generating site: %w", err)
	}
	return gen, database, nil
}

// serveSite serves cfg.OutputDir until interrupted. With watch, gen rebuilds
// the site whenever the docs change and connected pages are told to reload.
func serveSite(cmd *cobra.Command, cfg *config.Config, gen *site.Generator, port int, watch, open bool) error {
	if port == 0 {
		port = cfg.Server.Port
	}

	srv := server.New(server.Config{
		Port:          port,
		SiteDir:       cfg.OutputDir,
		AllowAll:      cfg.Server.AllowAllOrigins,
		LiveReload:    watch,
		Categories:    cfg.Categories,
		StorageKey:    cfg.StorageKey,
		DefaultHidden: cfg.DefaultHidden,
		Attributes:    cfg.Attributes,
		Cookies: kvstore.CookieOptions{
			Prefix: cfg.Server.CookiePrefix,
			Secure: cfg.Server.SecureCookies,
		},
	}, logger)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch && gen != nil {
		w, err := site.NewWatcher(cfg.DocsDir, site.DefaultDebounce, func(ctx context.Context) {
			n, err := gen.Generate(ctx)
			if err != nil {
				logger.Error("regenerating site", zap.Error(err))
				return
			}
			logger.Info("site regenerated", zap.Int("pages", n), zap.Int("clients", srv.Hub().Reload()))
		}, logger)
		if err != nil {
			return err
		}
		go w.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	url := fmt.Sprintf("http://localhost:%d", port)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving at %s, press Ctrl+C to stop\n", url)
	if open {
		openBrowser(url)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	fmt.Fprintln(os.Stderr, "\nShutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
