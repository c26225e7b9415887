package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/deadwoodhq/deadwood/internal/report"
	"github.com/deadwoodhq/deadwood/internal/scan"
	"github.com/deadwoodhq/deadwood/internal/watcher"
)

// watchExtensions are the file types whose changes trigger a rescan.
// package.json edits move the dependency report, so .json is included.
var watchExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".json"}

var watchNoCacheFlag bool

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Rescan on file changes and report what moved",
	Long: `Watch runs an initial scan, then watches the project tree and rescans
after each debounced batch of source changes, printing how the issue
counts moved since the previous cycle.

The debounce period comes from watch.debounce_ms in the configuration
(default 500ms).

Examples:
  # Watch the current directory
  deadwood watch

  # Watch a specific project
  deadwood watch ../app
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchNoCacheFlag, "no-cache", false, "Parse every file on each cycle, bypassing the summary cache")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}

	opts := pipelineOptions{
		ConfigFile: cfgFile,
		NoCache:    watchNoCacheFlag,
		NoProgress: true,
		Quiet:      quietFlag,
	}

	outcome, err := runScanPipeline(ctx, root, opts)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(outcome.root, Version)
	if err := renderer.Text(os.Stdout, outcome.result, outcome.enabled); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	prev := outcome.result.Counters

	debounce := time.Duration(outcome.cfg.Watch.DebounceMs) * time.Millisecond
	fw, err := watcher.NewFileWatcher([]string{root}, watchExtensions, debounce)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	// The watcher fires callbacks serially; changes arriving mid-scan
	// accumulate and come through as the next batch.
	rescan := func(files []string) {
		if !quietFlag {
			log.Printf("%d files changed, rescanning...", len(files))
		}
		cycleOpts := opts
		cycleOpts.Quiet = true
		out, err := runScanPipeline(ctx, root, cycleOpts)
		if err != nil {
			log.Printf("Rescan failed: %v", err)
			return
		}
		printCycle(out.result, prev)
		prev = out.result.Counters
	}

	if err := fw.Start(ctx, rescan); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	if !quietFlag {
		log.Printf("Watching %s (Ctrl+C to stop)", root)
	}
	<-ctx.Done()
	return nil
}

// printCycle summarizes one rescan: the new total, then the movement of
// every category whose count changed since the previous cycle.
func printCycle(result *scan.Result, prev map[scan.IssueCategory]int) {
	fmt.Printf("✓ Rescan complete: %d issues in %.1fs\n", result.Total(), result.Elapsed.Seconds())
	for _, c := range scan.AllIssueCategories {
		before, after := prev[c], result.Counters[c]
		if before == after {
			continue
		}
		fmt.Printf("  %s: %d -> %d (%+d)\n", c, before, after, after-before)
	}
}
