package config

import (
	"fmt"
	"path/filepath"
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
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewLoaderWithFile creates a loader that reads the named config file
// instead of searching rootDir/.deadwood. A missing file is an error here:
// the caller asked for it explicitly.
func NewLoaderWithFile(rootDir, configFile string) Loader {
	return &loader{
		rootDir:    rootDir,
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (DEADWOOD_*)
// 2. Config file (.deadwood/config.yml or .deadwood/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	// Configure viper
	v := viper.New()

	// Set up config file search
	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		configDir := filepath.Join(l.rootDir, ".deadwood")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("DEADWOOD")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., DEADWOOD_CACHE_ENABLED)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to config keys
	// Discovery patterns (comma-separated lists)
	v.BindEnv("entry")
	v.BindEnv("project")
	v.BindEnv("ignore")

	// Report configuration
	v.BindEnv("report.include")
	v.BindEnv("report.exclude")
	v.BindEnv("treat_public_as_used")

	// Cache configuration
	v.BindEnv("cache.enabled")
	v.BindEnv("cache.path")

	// Watch and logging configuration
	v.BindEnv("watch.debounce_ms")
	v.BindEnv("log.quiet")

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

	// Discovery defaults
	v.SetDefault("entry", defaults.Entry)
	v.SetDefault("project", defaults.Project)
	v.SetDefault("ignore", defaults.Ignore)

	// Report defaults
	v.SetDefault("report.include", defaults.Report.Include)
	v.SetDefault("report.exclude", defaults.Report.Exclude)
	v.SetDefault("treat_public_as_used", defaults.TreatPublicAsUsed)

	// Cache defaults
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.path", defaults.Cache.Path)

	// Watch and logging defaults
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	v.SetDefault("log.quiet", defaults.Log.Quiet)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

// LoadConfigFromFile loads configuration from an explicit config file.
func LoadConfigFromFile(rootDir, configFile string) (*Config, error) {
	return NewLoaderWithFile(rootDir, configFile).Load()
}
