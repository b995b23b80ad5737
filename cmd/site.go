package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docsite/internal/config"
	"github.com/ziadkadry99/docsite/internal/db"
	"github.com/ziadkadry99/docsite/internal/kvstore"
	"github.com/ziadkadry99/docsite/internal/progress"
	"github.com/ziadkadry99/docsite/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate the static documentation website",
	Long: `Renders every markdown page under docs_dir into output_dir, with navigation,
search, a per-page heading list and the framework filter applied. Hidden
categories come from the local preferences profile when it has any, otherwise
from default_hidden.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Bool("watch", false, "regenerate on changes and live-reload open pages (implies --serve)")
	siteCmd.Flags().Int("port", 0, "port for the local server (defaults to server.port)")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	siteCmd.Flags().String("output", "", "override output directory")
	siteCmd.Flags().String("profile", kvstore.DefaultScope, "local preferences profile to render with")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.OutputDir = output
	}
	profile, _ := cmd.Flags().GetString("profile")

	gen, database, err := newGenerator(cmd.Context(), cfg, profile, progress.NewReporter(logger))
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	pageCount, err := gen.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Static site generated: %s (%d pages)\n", cfg.OutputDir, pageCount)

	serve, _ := cmd.Flags().GetBool("serve")
	watch, _ := cmd.Flags().GetBool("watch")
	if !serve && !watch {
		return nil
	}
	port, _ := cmd.Flags().GetInt("port")
	open, _ := cmd.Flags().GetBool("open")
	return serveSite(cmd, cfg, gen, port, watch, open)
}

// newGenerator builds a generator for cfg. When the local preferences
// profile holds a stored hidden set it is used in place of default_hidden;
// the returned database is then non-nil and must stay open while the
// generator is in use.
func newGenerator(ctx context.Context, cfg *config.Config, profile string, reporter progress.Reporter) (*site.Generator, *db.DB, error) {
	opts := site.Options{
		DocsDir:       cfg.DocsDir,
		OutputDir:     cfg.OutputDir,
		ProjectName:   cfg.ProjectName,
		Logo:          cfg.Logo,
		Include:       cfg.Include,
		Exclude:       cfg.Exclude,
		Categories:    cfg.Categories,
		StorageKey:    cfg.StorageKey,
		DefaultHidden: cfg.DefaultHidden,
		Attributes:    cfg.Attributes,
		Logger:        logger,
		Reporter:      reporter,
	}

	var database *db.DB
	if profileExists(cfg) {
		d, adapter, err := openProfile(cfg, profile)
		if err != nil {
			return nil, nil, err
		}
		if _, ok := adapter.GetRaw(ctx, cfg.StorageKey); ok {
			logger.Debug("rendering with local profile", zap.String("profile", profile))
			opts.Prefs = adapter
			database = d
		} else {
			d.Close()
		}
	}

	gen, err := site.NewGenerator(opts)
	if err != nil {
		if database != nil {
			database.Close()
		}
		return nil, nil, err
	}
	return gen, database, nil
}
