package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// docsDirCandidates are directories checked, in order, for existing docs.
var docsDirCandidates = []string{"docs", "documentation", "content", "site-src"}

// detectDocsDir returns the first candidate directory containing markdown.
func detectDocsDir() string {
	for _, dir := range docsDirCandidates {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.md"))
		if len(matches) > 0 {
			return dir
		}
	}
	return "docs"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docsite! Let's configure your documentation site.")
	fmt.Println()

	cfg := DefaultConfig()
	if wd, err := os.Getwd(); err == nil {
		cfg.ProjectName = filepath.Base(wd)
	}

	// 1. Project name.
	namePrompt := promptui.Prompt{
		Label:   "Project name",
		Default: cfg.ProjectName,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("project name: %w", err)
	}
	cfg.ProjectName = name

	// 2. Docs directory.
	docsPrompt := promptui.Prompt{
		Label:   "Markdown source directory",
		Default: detectDocsDir(),
	}
	docsDir, err := docsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("docs dir: %w", err)
	}
	cfg.DocsDir = docsDir

	// 3. Categories.
	catPrompt := promptui.Prompt{
		Label:   "Content categories readers can hide (comma-separated)",
		Default: strings.Join(cfg.Categories, ","),
		Validate: func(s string) error {
			if len(splitAndTrim(s)) == 0 {
				return fmt.Errorf("at least one category is required")
			}
			return nil
		},
	}
	catStr, err := catPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	cfg.Categories = splitAndTrim(catStr)

	// 4. Categories hidden until a reader chooses otherwise.
	hiddenPrompt := promptui.Prompt{
		Label:   "Categories hidden by default (comma-separated, blank for none)",
		Default: "",
		Validate: func(s string) error {
			for _, c := range splitAndTrim(s) {
				if !contains(cfg.Categories, c) {
					return fmt.Errorf("%q is not one of the categories", c)
				}
			}
			return nil
		},
	}
	hiddenStr, err := hiddenPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("default hidden: %w", err)
	}
	cfg.DefaultHidden = splitAndTrim(hiddenStr)
	if cfg.DefaultHidden == nil {
		cfg.DefaultHidden = []string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
