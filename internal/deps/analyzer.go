// Package deps accounts for dependency-manifest usage: import specifiers
// that resolve to nothing, and manifest entries no reachable file imports.
package deps

import (
	"strings"

	"github.com/deadwoodhq/deadwood/internal/project"
	"github.com/deadwoodhq/deadwood/internal/scan"
	"github.com/deadwoodhq/deadwood/internal/source"
)

// ImportIndex is the slice of the source index the analyzer reads.
type ImportIndex interface {
	// Summary returns the parse summary for a file, nil if unknown.
	Summary(filePath string) *source.FileSummary

	// UnresolvedRelative returns the file's relative specifiers that
	// resolve to no indexed file, in source order.
	UnresolvedRelative(filePath string) []string
}

// Analyzer answers the scanner's dependency queries over one project.
// UnresolvedImports doubles as the usage scan: each file queried marks its
// imported packages as used, so the unused queries are only meaningful after
// the scanner has traversed every reachable file.
type Analyzer struct {
	manifest *project.Manifest
	index    ImportIndex
	used     map[string]struct{}
}

// NewAnalyzer creates an analyzer over the manifest and parsed index.
// A nil manifest means every dependency section is empty.
func NewAnalyzer(manifest *project.Manifest, index ImportIndex) *Analyzer {
	return &Analyzer{
		manifest: manifest,
		index:    index,
		used:     make(map[string]struct{}),
	}
}

// UnresolvedImports returns the file's import specifiers that resolve to no
// project file, no manifest entry, and no built-in module, in source order.
// Bare specifiers seen here are recorded as manifest usage.
func (a *Analyzer) UnresolvedImports(filePath string) []string {
	summary := a.index.Summary(filePath)
	if summary == nil {
		return nil
	}

	unresolvedRelative := make(map[string]struct{})
	for _, spec := range a.index.UnresolvedRelative(filePath) {
		unresolvedRelative[spec] = struct{}{}
	}

	var out []string
	for _, imp := range summary.Imports {
		if source.IsRelative(imp.Specifier) {
			if _, missing := unresolvedRelative[imp.Specifier]; missing {
				out = append(out, imp.Specifier)
			}
			continue
		}
		if source.IsBuiltin(imp.Specifier) {
			continue
		}

		pkg := source.PackageName(imp.Specifier)
		a.used[pkg] = struct{}{}
		if a.manifest == nil || !a.manifest.HasDependency(pkg) {
			out = append(out, imp.Specifier)
		}
	}
	return out
}

// UnusedDependencies returns manifest dependencies no scanned file imported,
// sorted by name.
func (a *Analyzer) UnusedDependencies() []string {
	if a.manifest == nil {
		return nil
	}
	return a.filterUnused(a.manifest.DependencyNames())
}

// UnusedDevDependencies is UnusedDependencies over the devDependencies
// section.
func (a *Analyzer) UnusedDevDependencies() []string {
	if a.manifest == nil {
		return nil
	}
	return a.filterUnused(a.manifest.DevDependencyNames())
}

func (a *Analyzer) filterUnused(declared []string) []string {
	var out []string
	for _, name := range declared {
		if !a.isUsed(name) {
			out = append(out, name)
		}
	}
	return out
}

// isUsed reports whether a declared package was imported. A @types/* package
// counts as used when its base package is.
func (a *Analyzer) isUsed(name string) bool {
	if _, ok := a.used[name]; ok {
		return true
	}
	if base, ok := typesBase(name); ok {
		_, used := a.used[base]
		return used
	}
	return false
}

// typesBase maps a DefinitelyTyped package to the package it types:
// "@types/lodash" -> "lodash", "@types/babel__core" -> "@babel/core".
func typesBase(name string) (string, bool) {
	base, ok := strings.CutPrefix(name, "@types/")
	if !ok {
		return "", false
	}
	if scope, pkg, scoped := strings.Cut(base, "__"); scoped {
		return "@" + scope + "/" + pkg, true
	}
	return base, true
}

var _ scan.DependencyAnalyzer = (*Analyzer)(nil)
