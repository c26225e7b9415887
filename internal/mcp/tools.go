package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/deadwoodhq/deadwood/internal/report"
	"github.com/deadwoodhq/deadwood/internal/scan"
)

// AddScanProjectTool registers the scan_project tool with an MCP server.
// This function is composable - it can be combined with other tool registrations.
func AddScanProjectTool(mcpServer *server.MCPServer, s *Server) {
	tool := mcp.NewTool(
		"scan_project",
		mcp.WithDescription("Run a dead-code scan over a JavaScript/TypeScript project. Returns unreferenced files, unused exports and types, duplicate exports, and unused or unresolved dependencies as JSON."),
		mcp.WithString("dir",
			mcp.Description("Project root directory (default: current directory)")),
		mcp.WithArray("include",
			mcp.Description("Issue categories to report, all when empty. Options: files, dependencies, devDependencies, unresolved, exports, types, nsExports, nsTypes, duplicates.")),
	)

	mcpServer.AddTool(tool, createScanProjectHandler(s))
}

// AddListIssuesTool registers the list_issues tool with an MCP server.
func AddListIssuesTool(mcpServer *server.MCPServer, s *Server) {
	tool := mcp.NewTool(
		"list_issues",
		mcp.WithDescription("List issues of one category from the most recent scan_project run."),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Issue category to list (files, dependencies, devDependencies, unresolved, exports, types, nsExports, nsTypes, duplicates)")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of issues to return (1-500, default: 50)")),
	)

	mcpServer.AddTool(tool, createListIssuesHandler(s))
}

// createScanProjectHandler creates the handler function for scan_project.
func createScanProjectHandler(s *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		dir, err := parseStringArg(argsMap, "dir", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if dir == "" {
			dir = "."
		}
		include := parseArrayArg(argsMap, "include")

		outcome, err := s.scan(ctx, dir, include)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
		}
		s.setOutcome(outcome)

		var buf bytes.Buffer
		if err := report.NewRenderer(outcome.Root, s.version).JSON(&buf, outcome.Result, outcome.Enabled); err != nil {
			return nil, fmt.Errorf("failed to render scan results: %w", err)
		}

		// Return as text result (mcp-go convention)
		return mcp.NewToolResultText(buf.String()), nil
	}
}

// createListIssuesHandler creates the handler function for list_issues.
func createListIssuesHandler(s *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		name, err := parseStringArg(argsMap, "category", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		category, err := scan.ParseCategory(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := parseClampedInt(argsMap, "limit", 50, 1, 500)

		outcome := s.outcome()
		if outcome == nil {
			return mcp.NewToolResultError("no scan results available; run scan_project first"), nil
		}

		issues := collectIssues(outcome, category)
		total := len(issues)
		if len(issues) > limit {
			issues = issues[:limit]
		}

		response := &ListIssuesResponse{
			Category: string(category),
			Total:    total,
			Returned: len(issues),
			Issues:   issues,
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// collectIssues flattens one category's findings. Project-scoped categories
// carry the name in Symbol with no file path.
func collectIssues(outcome *Outcome, category scan.IssueCategory) []scan.Issue {
	if category.ProjectScoped() {
		names := outcome.Result.Issues.ProjectIssues(category)
		issues := make([]scan.Issue, 0, len(names))
		for _, name := range names {
			issues = append(issues, scan.Issue{Symbol: name})
		}
		return issues
	}
	issues := outcome.Result.Issues.SymbolIssues(category)
	if issues == nil {
		issues = []scan.Issue{}
	}
	return issues
}
