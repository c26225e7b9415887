package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deadwoodhq/deadwood/internal/cache"
)

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the summary cache to force a full reparse",
	Long: `Clean deletes the SQLite summary cache (.deadwood/cache.db by default).
The next 'deadwood scan' parses every file from scratch.

The configuration file (.deadwood/config.yml) is preserved.

Use cases:
  - Corrupted cache data
  - Fresh parse wanted after upgrading deadwood
  - Debugging scan issues

Examples:
  # Remove the cache for the current project
  deadwood clean

  # Remove with minimal output
  deadwood clean --quiet
`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	return cleanCache(rootDir)
}

// cleanCache removes the configured cache database under rootDir.
func cleanCache(rootDir string) error {
	cfg, err := loadConfigFrom(rootDir, cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cachePath := resolveCachePath(rootDir, cfg)

	info, err := os.Stat(cachePath)
	if os.IsNotExist(err) {
		if !quietFlag {
			fmt.Println("No cache found for this project")
		}
		return nil
	}

	var sizeMB float64
	if err == nil {
		sizeMB = float64(info.Size()) / (1024 * 1024)
	}

	if err := cache.Clear(cachePath); err != nil {
		return err
	}

	if !quietFlag {
		if sizeMB > 0 {
			fmt.Printf("✓ Removed cache (~%.1f MB)\n", sizeMB)
		} else {
			fmt.Println("✓ Removed cache")
		}
		fmt.Println("Next 'deadwood scan' will parse every file")
	}
	return nil
}
