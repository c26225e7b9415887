package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deadwoodhq/deadwood/internal/report"
)

var (
	scanJSONFlag       bool
	scanIncludeFlag    []string
	scanExcludeFlag    []string
	scanNoProgressFlag bool
	scanNoCacheFlag    bool
	scanMaxIssuesFlag  int
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Scan a project for dead code and unused dependencies",
	Long: `Scan discovers the project's source files, resolves the module graph from
the configured entry points, and classifies what nothing reaches:

  - files no entry point imports
  - exports and exported types no other file uses
  - exports only reachable through a namespace import
  - duplicate export names bound to one declaration
  - package.json dependencies never imported, and imports that resolve
    to nothing

The exit code is nonzero when more issues are found than --max-issues
allows (default 0), so it can gate CI.

Examples:
  # Scan the current directory
  deadwood scan

  # Scan a specific project as JSON
  deadwood scan ../app --json

  # Only report unused files and exports
  deadwood scan --include files,exports

  # Tolerate up to 10 issues
  deadwood scan --max-issues 10
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanJSONFlag, "json", false, "Write the report as JSON")
	scanCmd.Flags().StringSliceVar(&scanIncludeFlag, "include", nil, "Issue categories to report (comma-separated)")
	scanCmd.Flags().StringSliceVar(&scanExcludeFlag, "exclude", nil, "Issue categories to skip (comma-separated)")
	scanCmd.Flags().BoolVar(&scanNoProgressFlag, "no-progress", false, "Disable progress output")
	scanCmd.Flags().BoolVar(&scanNoCacheFlag, "no-cache", false, "Parse every file, bypassing the summary cache")
	scanCmd.Flags().IntVar(&scanMaxIssuesFlag, "max-issues", 0, "Maximum issue count that still exits zero")
}

func runScan(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	// Progress bars share stdout with the report, so JSON output forces
	// them off.
	outcome, err := runScanPipeline(cmd.Context(), dir, pipelineOptions{
		ConfigFile: cfgFile,
		Include:    scanIncludeFlag,
		Exclude:    scanExcludeFlag,
		NoCache:    scanNoCacheFlag,
		NoProgress: scanNoProgressFlag || scanJSONFlag,
		Quiet:      quietFlag,
	})
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(outcome.root, Version)
	if scanJSONFlag {
		err = renderer.JSON(os.Stdout, outcome.result, outcome.enabled)
	} else {
		err = renderer.Text(os.Stdout, outcome.result, outcome.enabled)
	}
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if total := outcome.result.Total(); total > scanMaxIssuesFlag {
		return fmt.Errorf("found %d issues (max allowed: %d)", total, scanMaxIssuesFlag)
	}
	return nil
}
