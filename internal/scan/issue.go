package scan

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory indicates a category name outside AllIssueCategories.
var ErrUnknownCategory = errors.New("unknown issue category")

// IssueCategory identifies one class of reportable problem.
type IssueCategory string

const (
	// CategoryFiles reports production files never imported from any entry point.
	CategoryFiles IssueCategory = "files"
	// CategoryDependencies reports manifest dependencies never imported.
	CategoryDependencies IssueCategory = "dependencies"
	// CategoryDevDependencies reports development-only manifest dependencies never imported.
	CategoryDevDependencies IssueCategory = "devDependencies"
	// CategoryUnresolved reports import specifiers that resolve to nothing.
	CategoryUnresolved IssueCategory = "unresolved"
	// CategoryExports reports exported values never used outside their file.
	CategoryExports IssueCategory = "exports"
	// CategoryTypes reports exported types never used outside their file.
	CategoryTypes IssueCategory = "types"
	// CategoryNSExports reports unused-looking values only reachable through a namespace import.
	CategoryNSExports IssueCategory = "nsExports"
	// CategoryNSTypes reports unused-looking types only reachable through a namespace import.
	CategoryNSTypes IssueCategory = "nsTypes"
	// CategoryDuplicates reports groups of export names bound to one declaration.
	CategoryDuplicates IssueCategory = "duplicates"
)

// AllIssueCategories lists every category in canonical report order.
var AllIssueCategories = []IssueCategory{
	CategoryFiles,
	CategoryDependencies,
	CategoryDevDependencies,
	CategoryUnresolved,
	CategoryExports,
	CategoryTypes,
	CategoryNSExports,
	CategoryNSTypes,
	CategoryDuplicates,
}

// exportCategories are the categories the export usage classifier can emit,
// in short-circuit lookup order.
var exportCategories = []IssueCategory{
	CategoryExports,
	CategoryTypes,
	CategoryNSExports,
	CategoryNSTypes,
}

// ProjectScoped reports whether issues in this category are deduplicated
// project-wide by symbol alone rather than per (file, symbol).
func (c IssueCategory) ProjectScoped() bool {
	switch c {
	case CategoryFiles, CategoryDependencies, CategoryDevDependencies:
		return true
	}
	return false
}

// ParseCategory converts a user-supplied category name.
func ParseCategory(name string) (IssueCategory, error) {
	for _, c := range AllIssueCategories {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Issue is one recorded finding. FilePath and Symbol key symbol issues;
// project issues carry only Symbol. Symbols holds the member names of a
// duplicate-export group. SymbolType carries the declaration shape for
// type-category issues.
type Issue struct {
	FilePath   string   `json:"file_path"`
	Symbol     string   `json:"symbol"`
	Symbols    []string `json:"symbols,omitempty"`
	SymbolType string   `json:"symbol_type,omitempty"`
}

// Report selects which issue categories a run records. Disabled categories
// skip their work entirely; a whole phase with no enabled category is skipped.
type Report struct {
	Files           bool
	Dependencies    bool
	DevDependencies bool
	Unresolved      bool
	Exports         bool
	Types           bool
	NSExports       bool
	NSTypes         bool
	Duplicates      bool
}

// AllCategories returns a Report with every category enabled.
func AllCategories() Report {
	return Report{
		Files:           true,
		Dependencies:    true,
		DevDependencies: true,
		Unresolved:      true,
		Exports:         true,
		Types:           true,
		NSExports:       true,
		NSTypes:         true,
		Duplicates:      true,
	}
}

// NewReport builds a Report from include/exclude category name lists. An
// empty include list enables all categories; exclude is applied afterwards.
func NewReport(include, exclude []string) (Report, error) {
	r := AllCategories()
	if len(include) > 0 {
		r = Report{}
		for _, name := range include {
			c, err := ParseCategory(strings.TrimSpace(name))
			if err != nil {
				return Report{}, err
			}
			r.set(c, true)
		}
	}
	for _, name := range exclude {
		c, err := ParseCategory(strings.TrimSpace(name))
		if err != nil {
			return Report{}, err
		}
		r.set(c, false)
	}
	return r, nil
}

func (r *Report) set(c IssueCategory, on bool) {
	switch c {
	case CategoryFiles:
		r.Files = on
	case CategoryDependencies:
		r.Dependencies = on
	case CategoryDevDependencies:
		r.DevDependencies = on
	case CategoryUnresolved:
		r.Unresolved = on
	case CategoryExports:
		r.Exports = on
	case CategoryTypes:
		r.Types = on
	case CategoryNSExports:
		r.NSExports = on
	case CategoryNSTypes:
		r.NSTypes = on
	case CategoryDuplicates:
		r.Duplicates = on
	}
}

// Enabled reports whether the category is selected.
func (r Report) Enabled(c IssueCategory) bool {
	switch c {
	case CategoryFiles:
		return r.Files
	case CategoryDependencies:
		return r.Dependencies
	case CategoryDevDependencies:
		return r.DevDependencies
	case CategoryUnresolved:
		return r.Unresolved
	case CategoryExports:
		return r.Exports
	case CategoryTypes:
		return r.Types
	case CategoryNSExports:
		return r.NSExports
	case CategoryNSTypes:
		return r.NSTypes
	case CategoryDuplicates:
		return r.Duplicates
	}
	return false
}

// AnyExports reports whether any export classification category is selected.
func (r Report) AnyExports() bool {
	return r.Exports || r.Types || r.NSExports || r.NSTypes
}

// AnyDependencies reports whether any dependency-related category is selected.
func (r Report) AnyDependencies() bool {
	return r.Dependencies || r.DevDependencies || r.Unresolved
}

// Categories returns the enabled categories in canonical order.
func (r Report) Categories() []IssueCategory {
	var out []IssueCategory
	for _, c := range AllIssueCategories {
		if r.Enabled(c) {
			out = append(out, c)
		}
	}
	return out
}
