package config

import (
	"github.com/deadwoodhq/deadwood/internal/scan"
)

// Config represents the complete deadwood configuration.
// It can be loaded from .deadwood/config.yml with environment variable overrides.
type Config struct {
	Entry             []string     `yaml:"entry" mapstructure:"entry"`
	Project           []string     `yaml:"project" mapstructure:"project"`
	Ignore            []string     `yaml:"ignore" mapstructure:"ignore"`
	Report            ReportConfig `yaml:"report" mapstructure:"report"`
	TreatPublicAsUsed bool         `yaml:"treat_public_as_used" mapstructure:"treat_public_as_used"`
	Cache             CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Watch             WatchConfig  `yaml:"watch" mapstructure:"watch"`
	Log               LogConfig    `yaml:"log" mapstructure:"log"`
}

// ReportConfig narrows the issue categories a scan records.
type ReportConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // category names; empty means all
	Exclude []string `yaml:"exclude" mapstructure:"exclude"` // category names removed after include
}

// CacheConfig controls the parse-summary cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"` // relative to the project root
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Quiet bool `yaml:"quiet" mapstructure:"quiet"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Entry: []string{
			"index.{ts,tsx,js,jsx}",
			"src/index.{ts,tsx,js,jsx}",
			"src/main.{ts,tsx,js,jsx}",
		},
		Project: []string{
			"**/*.{ts,tsx,js,jsx,mjs,cjs}",
		},
		Ignore: []string{
			"**/*.d.ts",
			"dist/**",
			"build/**",
			"coverage/**",
		},
		Report:            ReportConfig{},
		TreatPublicAsUsed: true,
		Cache: CacheConfig{
			Enabled: true,
			Path:    ".deadwood/cache.db",
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
		Log: LogConfig{
			Quiet: false,
		},
	}
}

// ScanReport converts the include/exclude lists into the engine's
// enabled-category set.
func (c *Config) ScanReport() (scan.Report, error) {
	return scan.NewReport(c.Report.Include, c.Report.Exclude)
}
