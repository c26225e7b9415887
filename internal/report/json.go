package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/deadwoodhq/deadwood/internal/scan"
)

// jsonReport is the machine-readable result envelope. Issue keys appear
// only for enabled categories; map marshaling keeps them sorted.
type jsonReport struct {
	Root        string                 `json:"root"`
	Version     string                 `json:"version"`
	RunID       string                 `json:"run_id"`
	GeneratedAt string                 `json:"generated_at"`
	Counters    map[string]int         `json:"counters"`
	Issues      map[string]interface{} `json:"issues"`
	Total       int                    `json:"total"`
}

// JSON writes the report as indented JSON. Each symbol-issue category maps
// to a list of issue objects, each project-issue category to a list of
// names, both in recording order.
func (r *Renderer) JSON(w io.Writer, result *scan.Result, enabled scan.Report) error {
	out := jsonReport{
		Root:        r.Root,
		Version:     r.Version,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Counters:    make(map[string]int),
		Issues:      make(map[string]interface{}),
		Total:       result.Total(),
	}

	for _, c := range enabled.Categories() {
		out.Counters[string(c)] = result.Counters[c]
		if c.ProjectScoped() {
			symbols := result.Issues.ProjectIssues(c)
			if symbols == nil {
				symbols = []string{}
			}
			out.Issues[string(c)] = symbols
		} else {
			issues := result.Issues.SymbolIssues(c)
			if issues == nil {
				issues = []scan.Issue{}
			}
			out.Issues[string(c)] = issues
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
