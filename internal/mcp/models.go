package mcp

import (
	"context"

	"github.com/deadwoodhq/deadwood/internal/scan"
)

// ScanFunc runs one classification pass over the project rooted at dir,
// narrowing the report to the named categories when include is non-empty.
// The function is passed in to avoid import cycles with the CLI wiring.
type ScanFunc func(ctx context.Context, dir string, include []string) (*Outcome, error)

// Outcome is one scan's results plus the context the tools need to render
// them.
type Outcome struct {
	Root    string
	Result  *scan.Result
	Enabled scan.Report
}

// ListIssuesResponse is the list_issues tool's JSON payload.
type ListIssuesResponse struct {
	Category string       `json:"category"`
	Total    int          `json:"total"`
	Returned int          `json:"returned"`
	Issues   []scan.Issue `json:"issues"`
}
