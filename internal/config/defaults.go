package config

import (
	"github.com/ziadkadry99/docsite/internal/dom"
	"github.com/ziadkadry99/docsite/internal/kvstore"
	"github.com/ziadkadry99/docsite/internal/visibility"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = ".docsite.yml"

// DefaultExcludes are glob patterns never rendered as pages.
var DefaultExcludes = []string{
	"**/_*.md",
	"**/node_modules/**",
	".git/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ProjectName:   "Documentation",
		DocsDir:       "docs",
		OutputDir:     "site",
		DataDir:       ".docsite",
		Categories:    append([]string(nil), visibility.DefaultCategories...),
		StorageKey:    visibility.DefaultKey,
		DefaultHidden: []string{},
		Include:       []string{"**/*.md"},
		Exclude:       append([]string(nil), DefaultExcludes...),
		Attributes:    dom.DefaultAttributes(),
		Server: ServerConfig{
			Port:         8080,
			CookiePrefix: kvstore.DefaultCookiePrefix,
		},
	}
}
