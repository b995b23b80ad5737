package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []string{"react", "svelte", "angular", "vue3"}, cfg.Categories)
	assert.Equal(t, "hidden_frameworks", cfg.StorageKey)
	assert.Equal(t, "docs", cfg.DocsDir)
	assert.Equal(t, "site", cfg.OutputDir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data-framework-content", cfg.Attributes.Content)
	assert.Equal(t, filepath.Join(".docsite", "docsite.db"), cfg.DatabasePath())
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.docsite.yml")

	original := DefaultConfig()
	original.ProjectName = "Widgets"
	original.Categories = []string{"go", "rust", "zig"}
	original.DefaultHidden = []string{"zig"}
	original.StorageKey = "hidden_langs"
	original.Server.Port = 9000

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Widgets", loaded.ProjectName)
	assert.Equal(t, []string{"go", "rust", "zig"}, loaded.Categories)
	assert.Equal(t, []string{"zig"}, loaded.DefaultHidden)
	assert.Equal(t, "hidden_langs", loaded.StorageKey)
	assert.Equal(t, 9000, loaded.Server.Port)
	assert.Equal(t, original.Attributes, loaded.Attributes)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	require.NoError(t, err, "loading a missing file should return defaults")
	assert.Equal(t, DefaultConfig().Categories, cfg.Categories)
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	require.NoError(t, DefaultConfig().Save(path))

	t.Setenv("DOCSITE_PROJECT_NAME", "FromEnv")
	t.Setenv("DOCSITE_SERVER__PORT", "9191")
	t.Setenv("DOCSITE_CATEGORIES", "go, rust")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", loaded.ProjectName)
	assert.Equal(t, 9191, loaded.Server.Port)
	assert.Equal(t, []string{"go", "rust"}, loaded.Categories)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"default hidden known", func(c *Config) { c.DefaultHidden = []string{"react"} }, true},
		{"no categories", func(c *Config) { c.Categories = nil }, false},
		{"empty category", func(c *Config) { c.Categories = []string{"react", ""} }, false},
		{"duplicate category", func(c *Config) { c.Categories = []string{"react", "react"} }, false},
		{"unknown default hidden", func(c *Config) { c.DefaultHidden = []string{"ember"} }, false},
		{"empty storage key", func(c *Config) { c.StorageKey = "" }, false},
		{"empty docs dir", func(c *Config) { c.DocsDir = "" }, false},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, false},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, false},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"react", []string{"react"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitAndTrim(tt.input), "splitAndTrim(%q)", tt.input)
	}
}

func TestDetectDocsDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	assert.Equal(t, "docs", detectDocsDir())
}
