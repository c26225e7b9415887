// Package report renders scan results for humans (text with a summary
// table) and machines (JSON).
package report

import (
	"github.com/deadwoodhq/deadwood/internal/scan"
)

// Renderer carries the run metadata both output formats share.
type Renderer struct {
	Root    string
	Version string
}

// NewRenderer creates a renderer for a scan of rootDir.
func NewRenderer(rootDir, version string) *Renderer {
	return &Renderer{Root: rootDir, Version: version}
}

// sectionTitles name each category in the text report, in canonical order.
var sectionTitles = map[scan.IssueCategory]string{
	scan.CategoryFiles:           "Unreferenced files",
	scan.CategoryDependencies:    "Unused dependencies",
	scan.CategoryDevDependencies: "Unused devDependencies",
	scan.CategoryUnresolved:      "Unresolved imports",
	scan.CategoryExports:         "Unused exports",
	scan.CategoryTypes:           "Unused exported types",
	scan.CategoryNSExports:       "Exports only used through a namespace",
	scan.CategoryNSTypes:         "Types only used through a namespace",
	scan.CategoryDuplicates:      "Duplicate exports",
}
