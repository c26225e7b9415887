package scan

import (
	"sort"
	"strings"
)

// classifyExports runs the export usage rules over one file. A file whose
// export list has a single distinct name is skipped entirely: a
// single-export file is assumed consumed by its importer. That shortcut can
// hide a genuinely unused export; it is kept for the traversal savings.
func (s *scanner) classifyExports(store *Store, filePath string) {
	exports := s.source.ExportedDeclarations(filePath)
	if distinctNames(exports) <= 1 {
		return
	}
	for _, exp := range exports {
		s.classifyExport(store, filePath, exp)
	}
}

// classifyExport decides the category of one exported declaration. Rules
// apply in order, first match wins:
//
//  1. @public-tagged declarations are skipped when configured as used.
//  2. Declarations with no extractable identifier are skipped.
//  3. A (file, identifier) already recorded under an enabled export
//     category is not re-processed.
//  4. Zero references: exports or types. Never a namespace category; a
//     namespace re-export site would itself count as a reference.
//  5. References confined to the declaring file: still a candidate. If the
//     file is a namespace-access target the finding is only
//     lower-confidence (nsExports/nsTypes), because namespace member usage
//     cannot be proven absent by reference counting; otherwise
//     exports/types.
//  6. Any reference from another file means the export is in use.
func (s *scanner) classifyExport(store *Store, filePath string, exp Export) {
	d := exp.Decl
	if d == nil {
		return
	}
	if s.publicAsUsed && d.HasPublicTag() {
		return
	}
	identifier, ok := d.Identifier()
	if !ok {
		return
	}
	if s.alreadyRecorded(store, filePath, identifier) {
		return
	}

	refs := s.source.References(filePath, identifier)
	isType := d.IsType()
	if len(refs) == 0 {
		s.recordExportIssue(store, filePath, identifier, d.SymbolType(), isType, false)
		return
	}
	if !selfOnly(refs, filePath) {
		return
	}
	namespaced := s.source.IsNamespaceTarget(filePath)
	s.recordExportIssue(store, filePath, identifier, d.SymbolType(), isType, namespaced)
}

// recordExportIssue picks the category, type-ness first, then namespace-ness.
// A disabled category records nothing; there is no fallback.
func (s *scanner) recordExportIssue(store *Store, filePath, symbol, symbolType string, isType, namespaced bool) {
	var c IssueCategory
	if isType {
		c = CategoryTypes
		if namespaced {
			c = CategoryNSTypes
		}
	} else {
		c = CategoryExports
		if namespaced {
			c = CategoryNSExports
		}
	}
	if !s.report.Enabled(c) {
		return
	}
	iss := Issue{FilePath: filePath, Symbol: symbol}
	if isType {
		iss.SymbolType = symbolType
	}
	s.record(store, c, iss)
}

// alreadyRecorded checks the enabled export categories for (filePath, symbol).
func (s *scanner) alreadyRecorded(store *Store, filePath, symbol string) bool {
	for _, c := range exportCategories {
		if s.report.Enabled(c) && store.HasSymbolIssue(c, filePath, symbol) {
			return true
		}
	}
	return false
}

// detectDuplicates records one issue per group of export names bound to the
// same declaration, keyed by the pipe-joined sorted names.
func (s *scanner) detectDuplicates(store *Store, filePath string) {
	for _, group := range s.source.DuplicateExportGroups(filePath) {
		if len(group) < 2 {
			continue
		}
		names := append([]string(nil), group...)
		sort.Strings(names)
		s.record(store, CategoryDuplicates, Issue{
			FilePath: filePath,
			Symbol:   strings.Join(names, "|"),
			Symbols:  names,
		})
	}
}

// distinctNames counts unique export names.
func distinctNames(exports []Export) int {
	if len(exports) <= 1 {
		return len(exports)
	}
	seen := make(map[string]struct{}, len(exports))
	for _, exp := range exports {
		seen[exp.Name] = struct{}{}
	}
	return len(seen)
}

// selfOnly reports whether every reference lives in the declaring file.
func selfOnly(refs []string, declaringFile string) bool {
	for _, ref := range refs {
		if ref != declaringFile {
			return false
		}
	}
	return true
}
