package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - LoadConfig() uses defaults when no config file exists
// - LoadConfig() loads from .deadwood/config.yml when present
// - LoadConfig() merges config file with defaults
// - Environment variables override config file values
// - LoadConfig() returns error for malformed YAML
// - LoadConfig() returns error for invalid configuration values
// - ScanReport() converts include/exclude lists
// - Validate() accepts valid configuration
// - Validate() rejects empty entry and project pattern lists
// - Validate() rejects unknown report categories
// - Validate() rejects an enabled cache without a path
// - Validate() rejects non-positive watch debounce
// - Validate() returns multiple errors for multiple invalid fields
// - LoadConfigFromFile() reads an explicit path and errors when it is missing

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	// Test: Default() returns valid configuration
	cfg := Default()

	require.NotNil(t, cfg)

	assert.NotEmpty(t, cfg.Entry)
	assert.NotEmpty(t, cfg.Project)
	assert.NotEmpty(t, cfg.Ignore)

	assert.Empty(t, cfg.Report.Include)
	assert.Empty(t, cfg.Report.Exclude)
	assert.True(t, cfg.TreatPublicAsUsed)

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, ".deadwood/cache.db", cfg.Cache.Path)
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
	assert.False(t, cfg.Log.Quiet)

	// Verify default config passes validation
	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	// Test: Load from directory with no config file returns defaults
	tempDir := t.TempDir()

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)

	expected := Default()
	assert.Equal(t, expected.Entry, cfg.Entry)
	assert.Equal(t, expected.Project, cfg.Project)
	assert.Equal(t, expected.Cache, cfg.Cache)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	// Test: Load from .deadwood/config.yml
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".deadwood")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configContent := `
entry:
  - "src/cli.ts"
project:
  - "src/**/*.ts"
ignore:
  - "src/generated/**"

report:
  include:
    - files
    - exports
  exclude:
    - exports

treat_public_as_used: false

cache:
  enabled: false
  path: .deadwood/alt.db

watch:
  debounce_ms: 250

log:
  quiet: true
`

	configPath := filepath.Join(configDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"src/cli.ts"}, cfg.Entry)
	assert.Equal(t, []string{"src/**/*.ts"}, cfg.Project)
	assert.Equal(t, []string{"src/generated/**"}, cfg.Ignore)

	assert.Equal(t, []string{"files", "exports"}, cfg.Report.Include)
	assert.Equal(t, []string{"exports"}, cfg.Report.Exclude)
	assert.False(t, cfg.TreatPublicAsUsed)

	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, ".deadwood/alt.db", cfg.Cache.Path)
	assert.Equal(t, 250, cfg.Watch.DebounceMs)
	assert.True(t, cfg.Log.Quiet)
}

func TestLoadConfig_MergesConfigWithDefaults(t *testing.T) {
	// Test: Partial config file merges with defaults
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".deadwood")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	// Only override entry, rest should come from defaults
	configContent := `
entry:
  - "lib/main.ts"
`

	configPath := filepath.Join(configDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)

	assert.Equal(t, []string{"lib/main.ts"}, cfg.Entry)

	expected := Default()
	assert.Equal(t, expected.Project, cfg.Project)
	assert.Equal(t, expected.Watch.DebounceMs, cfg.Watch.DebounceMs)
	assert.Equal(t, expected.TreatPublicAsUsed, cfg.TreatPublicAsUsed)
}

func TestLoadConfig_EnvironmentVariablesOverrideConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()

	// Test: Environment variables take precedence over config file
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".deadwood")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configContent := `
cache:
  enabled: true
  path: .deadwood/file.db

watch:
  debounce_ms: 100
`

	configPath := filepath.Join(configDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("DEADWOOD_CACHE_ENABLED", "false")
	t.Setenv("DEADWOOD_WATCH_DEBOUNCE_MS", "900")
	t.Setenv("DEADWOOD_ENTRY", "a.ts,b.ts")

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)

	// Environment variables should win
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 900, cfg.Watch.DebounceMs)
	assert.Equal(t, []string{"a.ts", "b.ts"}, cfg.Entry)

	// Path not overridden, should come from config file
	assert.Equal(t, ".deadwood/file.db", cfg.Cache.Path)
}

func TestLoadConfig_ReturnsErrorForMalformedYaml(t *testing.T) {
	// Test: Malformed YAML returns error
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".deadwood")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	malformedContent := `
entry:
  - "unclosed quote
cache: [not, a, map
`

	configPath := filepath.Join(configDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(malformedContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_ReturnsErrorForInvalidValues(t *testing.T) {
	// Test: Invalid configuration values fail validation
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".deadwood")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	invalidContent := `
report:
  include:
    - no-such-category
watch:
  debounce_ms: -5
`

	configPath := filepath.Join(configDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(invalidContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid")
}

func TestScanReport_ConvertsIncludeExclude(t *testing.T) {
	cfg := Default()
	cfg.Report.Include = []string{"files", "exports"}
	cfg.Report.Exclude = []string{"exports"}

	report, err := cfg.ScanReport()
	require.NoError(t, err)

	assert.True(t, report.Files)
	assert.False(t, report.Exports)
	assert.False(t, report.Dependencies)
}

func TestValidate_AcceptsValidConfiguration(t *testing.T) {
	// Test: Valid configuration passes validation
	cfg := &Config{
		Entry:   []string{"src/index.ts"},
		Project: []string{"src/**/*.ts"},
		Report: ReportConfig{
			Include: []string{"files", "dependencies"},
		},
		Cache: CacheConfig{Enabled: true, Path: ".deadwood/cache.db"},
		Watch: WatchConfig{DebounceMs: 500},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_RejectsEmptyEntryPatterns(t *testing.T) {
	cfg := Default()
	cfg.Entry = nil

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNoEntryPatterns)
}

func TestValidate_RejectsEmptyProjectPatterns(t *testing.T) {
	cfg := Default()
	cfg.Project = []string{}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNoProjectPatterns)
}

func TestValidate_RejectsUnknownCategory(t *testing.T) {
	cfg := Default()
	cfg.Report.Exclude = []string{"unknown-category"}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Contains(t, err.Error(), "unknown-category")
}

func TestValidate_RejectsEnabledCacheWithoutPath(t *testing.T) {
	cfg := Default()
	cfg.Cache.Path = "  "

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCachePath)
}

func TestValidate_AcceptsDisabledCacheWithoutPath(t *testing.T) {
	cfg := Default()
	cfg.Cache.Enabled = false
	cfg.Cache.Path = ""

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_RejectsNonPositiveDebounce(t *testing.T) {
	cfg := Default()
	cfg.Watch.DebounceMs = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDebounce)
}

func TestValidate_ReturnsMultipleErrorsForMultipleInvalidFields(t *testing.T) {
	// Test: Multiple validation errors are all reported
	cfg := &Config{
		Entry:   nil,
		Project: nil,
		Report:  ReportConfig{Include: []string{"bogus"}},
		Cache:   CacheConfig{Enabled: true, Path: ""},
		Watch:   WatchConfig{DebounceMs: -1},
	}

	err := Validate(cfg)
	assert.Error(t, err)

	// Error message should contain multiple issues
	errMsg := err.Error()
	assert.Contains(t, errMsg, "entry")
	assert.Contains(t, errMsg, "project")
	assert.Contains(t, errMsg, "bogus")
	assert.Contains(t, errMsg, "cache.path")
	assert.Contains(t, errMsg, "debounce")
}

func TestLoadConfigFromDir_UsesGivenDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".deadwood")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configContent := `
entry:
  - "app.ts"
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(configContent), 0644))

	cfg, err := LoadConfigFromDir(tempDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.ts"}, cfg.Entry)
}

func TestLoadConfigFromFile_ReadsExplicitPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "custom.yml")

	configContent := `
entry:
  - "server.ts"
watch:
  debounce_ms: 250
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := LoadConfigFromFile(tempDir, configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"server.ts"}, cfg.Entry)
	assert.Equal(t, 250, cfg.Watch.DebounceMs)
}

func TestLoadConfigFromFile_MissingFileIsAnError(t *testing.T) {
	tempDir := t.TempDir()

	_, err := LoadConfigFromFile(tempDir, filepath.Join(tempDir, "nope.yml"))
	assert.Error(t, err)
}
