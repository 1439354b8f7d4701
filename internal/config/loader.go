package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string // explicit config file path, overrides the search
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (VYPERDOC_*)
// 2. Config file (.vyperdoc.yml or .vyperdoc.yaml in the root directory)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	// Configure viper
	v := viper.New()

	if l.configFile != "" {
		// An explicitly named config file must exist; only the default
		// search below tolerates absence.
		v.SetConfigFile(l.configFile)
	} else {
		// Set up config file search
		v.SetConfigName(".vyperdoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("VYPERDOC")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., VYPERDOC_SERVE_PORT)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to config keys
	v.BindEnv("contracts")
	v.BindEnv("output")

	// Sphinx configuration
	v.BindEnv("sphinx.enabled")
	v.BindEnv("sphinx.builder")

	// Serve configuration
	v.BindEnv("serve.port")

	// Watch configuration
	v.BindEnv("watch.debounce_ms")

	// Search configuration
	v.BindEnv("search.max_results")

	// Set defaults in viper
	setDefaults(v)

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Some other error occurred while reading the config file
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate the configuration
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("contracts", defaults.Contracts)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("include", defaults.Include)
	v.SetDefault("exclude", defaults.Exclude)

	// Sphinx defaults
	v.SetDefault("sphinx.enabled", defaults.Sphinx.Enabled)
	v.SetDefault("sphinx.builder", defaults.Sphinx.Builder)

	// Serve defaults
	v.SetDefault("serve.port", defaults.Serve.Port)

	// Watch defaults
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	// Search defaults
	v.SetDefault("search.max_results", defaults.Search.MaxResults)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

// LoadConfigFromFile loads configuration from an explicit config file.
func LoadConfigFromFile(path string) (*Config, error) {
	l := &loader{configFile: path}
	return l.Load()
}
