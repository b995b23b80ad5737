package config

import "github.com/ziadkadry99/docsite/internal/dom"

// Config is the top-level docsite configuration, corresponding to .docsite.yml.
type Config struct {
	ProjectName   string         `yaml:"project_name" koanf:"project_name"`
	DocsDir       string         `yaml:"docs_dir" koanf:"docs_dir"`
	OutputDir     string         `yaml:"output_dir" koanf:"output_dir"`
	DataDir       string         `yaml:"data_dir" koanf:"data_dir"`
	Logo          string         `yaml:"logo" koanf:"logo"`
	Categories    []string       `yaml:"categories" koanf:"categories"`
	StorageKey    string         `yaml:"storage_key" koanf:"storage_key"`
	DefaultHidden []string       `yaml:"default_hidden" koanf:"default_hidden"`
	Include       []string       `yaml:"include" koanf:"include"`
	Exclude       []string       `yaml:"exclude" koanf:"exclude"`
	Attributes    dom.Attributes `yaml:"attributes" koanf:"attributes"`
	Server        ServerConfig   `yaml:"server" koanf:"server"`
}

// ServerConfig holds settings for `docsite serve`.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	CookiePrefix    string `yaml:"cookie_prefix" koanf:"cookie_prefix"`
	SecureCookies   bool   `yaml:"secure_cookies" koanf:"secure_cookies"`
}
