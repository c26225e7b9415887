package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deadwoodhq/deadwood/internal/scan"
)

var (
	// ErrNoEntryPatterns indicates an empty entry pattern list
	ErrNoEntryPatterns = errors.New("no entry patterns")

	// ErrNoProjectPatterns indicates an empty project pattern list
	ErrNoProjectPatterns = errors.New("no project patterns")

	// ErrInvalidCategory indicates an unknown report category name
	ErrInvalidCategory = errors.New("invalid report category")

	// ErrEmptyCachePath indicates a missing cache path while the cache is enabled
	ErrEmptyCachePath = errors.New("empty cache path")

	// ErrInvalidDebounce indicates a non-positive watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	// Validate discovery patterns
	if err := validatePatterns(cfg); err != nil {
		errs = append(errs, err)
	}

	// Validate report categories
	if err := validateReport(&cfg.Report); err != nil {
		errs = append(errs, err)
	}

	// Validate cache configuration
	if err := validateCache(&cfg.Cache); err != nil {
		errs = append(errs, err)
	}

	// Validate watch configuration
	if err := validateWatch(&cfg.Watch); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePatterns(cfg *Config) error {
	var errs []error

	if len(cfg.Entry) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one entry pattern required", ErrNoEntryPatterns))
	}

	if len(cfg.Project) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one project pattern required", ErrNoProjectPatterns))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateReport(cfg *ReportConfig) error {
	var errs []error

	for _, name := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if _, err := scan.ParseCategory(strings.TrimSpace(name)); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidCategory, name, categoryNames()))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateCache(cfg *CacheConfig) error {
	if cfg.Enabled && strings.TrimSpace(cfg.Path) == "" {
		return fmt.Errorf("%w: cache.path is required when the cache is enabled", ErrEmptyCachePath)
	}
	return nil
}

func validateWatch(cfg *WatchConfig) error {
	if cfg.DebounceMs <= 0 {
		return fmt.Errorf("%w: watch.debounce_ms must be positive, got %d", ErrInvalidDebounce, cfg.DebounceMs)
	}
	return nil
}

func categoryNames() string {
	names := make([]string, 0, len(scan.AllIssueCategories))
	for _, c := range scan.AllIssueCategories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
