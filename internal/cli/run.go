package cli

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/deadwoodhq/deadwood/internal/cache"
	"github.com/deadwoodhq/deadwood/internal/config"
	"github.com/deadwoodhq/deadwood/internal/deps"
	"github.com/deadwoodhq/deadwood/internal/project"
	"github.com/deadwoodhq/deadwood/internal/scan"
	"github.com/deadwoodhq/deadwood/internal/source"
)

// pipelineOptions adjust one scan pipeline run. Include and Exclude override
// the configured report lists when non-empty.
type pipelineOptions struct {
	ConfigFile string
	Include    []string
	Exclude    []string
	NoCache    bool
	NoProgress bool
	Quiet      bool
}

// scanOutcome is the product of one pipeline run.
type scanOutcome struct {
	root    string
	cfg     *config.Config
	project *project.Project
	result  *scan.Result
	enabled scan.Report
}

// loadConfigFrom loads the project configuration for rootDir, from an
// explicit config file when one was given.
func loadConfigFrom(rootDir, configFile string) (*config.Config, error) {
	if configFile != "" {
		return config.LoadConfigFromFile(rootDir, configFile)
	}
	return config.LoadConfigFromDir(rootDir)
}

// resolveCachePath normalizes the configured cache location against rootDir.
func resolveCachePath(rootDir string, cfg *config.Config) string {
	if filepath.IsAbs(cfg.Cache.Path) {
		return cfg.Cache.Path
	}
	return filepath.Join(rootDir, cfg.Cache.Path)
}

// runScanPipeline loads configuration and project files from dir, builds the
// source index, and runs one classification pass over the reachable set.
func runScanPipeline(ctx context.Context, dir string, opts pipelineOptions) (*scanOutcome, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	cfg, err := loadConfigFrom(root, opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(opts.Include) > 0 {
		cfg.Report.Include = opts.Include
	}
	if len(opts.Exclude) > 0 {
		cfg.Report.Exclude = opts.Exclude
	}

	enabled, err := cfg.ScanReport()
	if err != nil {
		return nil, err
	}

	quiet := opts.Quiet || cfg.Log.Quiet

	proj, err := project.Load(root, project.Options{
		EntryPatterns:   cfg.Entry,
		ProjectPatterns: cfg.Project,
		IgnorePatterns:  cfg.Ignore,
	})
	if err != nil {
		return nil, err
	}

	// Without a manifest every bare import would show up as unresolved;
	// Load already logged the notice.
	if proj.Manifest == nil {
		enabled.Dependencies = false
		enabled.DevDependencies = false
		enabled.Unresolved = false
	}

	// An unusable summary cache degrades to a full parse, never a failure.
	var indexOpts []source.IndexOption
	var summaryCache *cache.Cache
	if cfg.Cache.Enabled && !opts.NoCache {
		summaryCache, err = cache.Open(resolveCachePath(root, cfg))
		if err != nil {
			log.Printf("Warning: summary cache unavailable: %v", err)
		} else {
			defer summaryCache.Close()
			indexOpts = append(indexOpts, source.WithSummaryCache(summaryCache))
		}
	}

	idx, err := source.BuildIndex(ctx, root, proj.Files, indexOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to index project: %w", err)
	}

	reachable, err := idx.ReachableFrom(proj.EntryFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve module graph: %w", err)
	}

	analyzer := deps.NewAnalyzer(proj.Manifest, idx)

	scanOpts := []scan.Option{
		scan.WithReport(enabled),
		scan.WithProgress(NewCLIProgressReporter(quiet || opts.NoProgress)),
	}
	if cfg.TreatPublicAsUsed {
		scanOpts = append(scanOpts, scan.WithPublicTagAsUsed())
	}

	result := scan.New(idx, analyzer, scanOpts...).Run(scan.ProjectFiles{
		Reachable:  reachable,
		Production: proj.ProductionFiles,
		Entry:      proj.EntryFiles,
	})

	if summaryCache != nil {
		pruned, err := summaryCache.Prune(proj.Files)
		if err != nil {
			log.Printf("Warning: cache prune failed: %v", err)
		} else if pruned > 0 && !quiet {
			log.Printf("Pruned %d stale cache entries", pruned)
		}
	}

	return &scanOutcome{
		root:    root,
		cfg:     cfg,
		project: proj,
		result:  result,
		enabled: enabled,
	}, nil
}
