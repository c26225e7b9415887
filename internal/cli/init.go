package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/deadwoodhq/deadwood/internal/config"
)

// configHeader introduces the generated starter file.
const configHeader = `# Deadwood configuration.
# Patterns are root-relative globs. Categories accepted under report.include
# and report.exclude: files, dependencies, devDependencies, unresolved,
# exports, types, nsExports, nsTypes, duplicates.
`

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .deadwood/config.yml",
	Long: `Init writes the default configuration to .deadwood/config.yml in the
current directory so it can be edited and checked in. An existing file is
never overwritten.

Example:
  deadwood init
`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	return writeStarterConfig(rootDir)
}

// writeStarterConfig marshals the default configuration into
// rootDir/.deadwood/config.yml, refusing to overwrite an existing file.
func writeStarterConfig(rootDir string) error {
	configPath := filepath.Join(rootDir, ".deadwood", "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("failed to encode default configuration: %w", err)
	}

	content := append([]byte(configHeader), data...)
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	if !quietFlag {
		fmt.Printf("✓ Wrote %s\n", configPath)
	}
	return nil
}
