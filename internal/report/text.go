package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/deadwoodhq/deadwood/internal/scan"
)

// Text writes the human-readable report: one section per enabled category
// with findings, then a summary table.
func (r *Renderer) Text(w io.Writer, result *scan.Result, enabled scan.Report) error {
	if result.Total() == 0 {
		_, err := fmt.Fprintf(w, "✓ No issues found in %s (%.1fs)\n", r.Root, result.Elapsed.Seconds())
		return err
	}

	for _, c := range enabled.Categories() {
		if result.Counters[c] == 0 {
			continue
		}
		if err := r.writeSection(w, result, c); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, renderSummaryTable(result, enabled))
	return err
}

func (r *Renderer) writeSection(w io.Writer, result *scan.Result, c scan.IssueCategory) error {
	if _, err := fmt.Fprintf(w, "%s (%d)\n", sectionTitles[c], result.Counters[c]); err != nil {
		return err
	}

	if c.ProjectScoped() {
		for _, symbol := range result.Issues.ProjectIssues(c) {
			if _, err := fmt.Fprintf(w, "  %s\n", symbol); err != nil {
				return err
			}
		}
	} else {
		for _, iss := range result.Issues.SymbolIssues(c) {
			if _, err := fmt.Fprintf(w, "  %s\n", formatSymbolIssue(iss)); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

// formatSymbolIssue renders one finding line: file, symbol, and the
// declaration shape when known. Duplicate groups list their member names.
func formatSymbolIssue(iss scan.Issue) string {
	symbol := iss.Symbol
	if len(iss.Symbols) > 0 {
		symbol = strings.Join(iss.Symbols, ", ")
	}
	if iss.SymbolType != "" {
		return fmt.Sprintf("%s: %s (%s)", iss.FilePath, symbol, iss.SymbolType)
	}
	return fmt.Sprintf("%s: %s", iss.FilePath, symbol)
}

func renderSummaryTable(result *scan.Result, enabled scan.Report) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Category", "Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, c := range enabled.Categories() {
		table.Append([]string{string(c), fmt.Sprintf("%d", result.Counters[c])})
	}
	table.SetFooter([]string{"Total", fmt.Sprintf("%d", result.Total())})
	table.Render()

	return buf.String()
}
