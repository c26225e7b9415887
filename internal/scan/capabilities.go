package scan

// Declaration describes one exported declaration as seen by the source model.
// The engine never inspects syntax itself; it relies on these queries.
type Declaration interface {
	// IsType reports whether the declaration is a type (type alias,
	// interface, enum) rather than a value.
	IsType() bool

	// SymbolType names the declaration shape ("function", "class",
	// "interface", "type", "enum", ...), used for reporting.
	SymbolType() string

	// Identifier returns the bound identifier name. ok is false for
	// anonymous shapes (default-exported inline expressions), which
	// cannot be targeted by reference lookup.
	Identifier() (name string, ok bool)

	// HasPublicTag reports whether the declaration carries an @public
	// doc tag marking it as intentionally-exported API.
	HasPublicTag() bool
}

// Export pairs an export name with its declaration. The same declaration may
// appear under several names (aliased re-exports).
type Export struct {
	Name string
	Decl Declaration
}

// SourceModel resolves exports and cross-file symbol usage. Implementations
// must answer every query synchronously and deterministically; the engine
// calls them in a fixed order so results are reproducible across runs.
type SourceModel interface {
	// ExportedDeclarations returns the file's exports in declaration order.
	ExportedDeclarations(filePath string) []Export

	// References returns the paths of every file containing a reference to
	// the identifier declared in filePath, possibly including filePath
	// itself. Re-export sites count as references.
	References(filePath, identifier string) []string

	// IsNamespaceTarget reports whether some other file imports or
	// re-exports this file's exports collectively through a namespace
	// binding rather than per-name imports.
	IsNamespaceTarget(filePath string) bool

	// DuplicateExportGroups returns groups of two-or-more export names in
	// filePath that all bind to the same underlying declaration.
	DuplicateExportGroups(filePath string) [][]string
}

// DependencyAnalyzer answers dependency-manifest queries. Import scanning
// itself happens upstream; the engine only merges these results.
type DependencyAnalyzer interface {
	// UnresolvedImports returns the file's import specifiers that resolve
	// to no project file, no manifest entry, and no built-in module, in
	// source order.
	UnresolvedImports(filePath string) []string

	// UnusedDependencies returns manifest dependencies never imported
	// anywhere in the reachable set, computed in project scope.
	UnusedDependencies() []string

	// UnusedDevDependencies is UnusedDependencies restricted to
	// development-only manifest entries.
	UnusedDevDependencies() []string
}

// ProjectFiles carries the three file sets a run consumes, as produced by
// the project loader. Reachable is the resolved module graph from the entry
// points; Production are the files matching production patterns; Entry are
// the designated entry points, exempt from per-symbol classification.
type ProjectFiles struct {
	Reachable  []string
	Production []string
	Entry      []string
}
