package config

import (
	"path/filepath"
	"time"
)

// Config represents the complete vyperdoc configuration.
// It can be loaded from .vyperdoc.yml with environment variable overrides.
type Config struct {
	Contracts string       `yaml:"contracts" mapstructure:"contracts"` // directory scanned for contract sources
	Output    string       `yaml:"output" mapstructure:"output"`       // root directory for generated documentation
	Include   []string     `yaml:"include" mapstructure:"include"`     // glob patterns narrowing discovery (empty = every .vy file)
	Exclude   []string     `yaml:"exclude" mapstructure:"exclude"`     // glob patterns removed from discovery
	Sphinx    SphinxConfig `yaml:"sphinx" mapstructure:"sphinx"`
	Serve     ServeConfig  `yaml:"serve" mapstructure:"serve"`
	Watch     WatchConfig  `yaml:"watch" mapstructure:"watch"`
	Search    SearchConfig `yaml:"search" mapstructure:"search"`
}

// SphinxConfig configures the sphinx-build step that turns generated
// RST files into HTML.
type SphinxConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"` // run sphinx-build after generating RST
	Builder string `yaml:"builder" mapstructure:"builder"` // sphinx-build -b builder name
}

// ServeConfig configures the documentation HTTP server.
type ServeConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// WatchConfig configures rebuild-on-change behavior.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before a rebuild fires
}

// SearchConfig configures the in-memory documentation search.
type SearchConfig struct {
	MaxResults int `yaml:"max_results" mapstructure:"max_results"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Contracts: "./contracts",
		Output:    ".",
		Include:   []string{},
		Exclude:   []string{},
		Sphinx: SphinxConfig{
			Enabled: true,
			Builder: "html",
		},
		Serve: ServeConfig{
			Port: 8000,
		},
		Watch: WatchConfig{
			DebounceMs: 300,
		},
		Search: SearchConfig{
			MaxResults: 20,
		},
	}
}

// DocsDir returns the directory that receives generated RST files.
func (c *Config) DocsDir() string {
	return filepath.Join(c.Output, "docs")
}

// BuildDir returns the directory sphinx-build writes into.
func (c *Config) BuildDir() string {
	return filepath.Join(c.DocsDir(), "_build")
}

// HTMLDir returns the directory the documentation server exposes. Each
// sphinx builder writes into its own subdirectory of BuildDir.
func (c *Config) HTMLDir() string {
	return filepath.Join(c.BuildDir(), c.Sphinx.Builder)
}

// Debounce returns the watch quiet period as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}
