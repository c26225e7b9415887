package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deadwoodhq/deadwood/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server exposing the scanner to coding assistants",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered coding
assistants run dead-code scans and query the results.

The MCP server:
- Runs scans on demand via the scan_project tool
- Lists one category's findings via the list_issues tool
- Communicates via stdio (standard MCP transport)

Example:
  deadwood mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// stdout carries the MCP transport; scans run silent and diagnostics
	// go to stderr.
	scanFn := func(ctx context.Context, dir string, include []string) (*mcp.Outcome, error) {
		outcome, err := runScanPipeline(ctx, dir, pipelineOptions{
			ConfigFile: cfgFile,
			Include:    include,
			NoProgress: true,
			Quiet:      true,
		})
		if err != nil {
			return nil, err
		}
		return &mcp.Outcome{Root: outcome.root, Result: outcome.result, Enabled: outcome.enabled}, nil
	}

	server, err := mcp.NewServer(Version, scanFn)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Deadwood MCP Server\n\n")

	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
