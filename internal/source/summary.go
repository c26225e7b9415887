package source

import (
	"crypto/sha256"
	"fmt"

	"github.com/deadwoodhq/deadwood/internal/scan"
)

// ImportKind classifies one import or re-export clause.
type ImportKind string

const (
	// ImportNamed is `import { a, b as c } from "x"`.
	ImportNamed ImportKind = "named"
	// ImportDefault is `import x from "y"`.
	ImportDefault ImportKind = "default"
	// ImportNamespace is `import * as ns from "y"`.
	ImportNamespace ImportKind = "namespace"
	// ImportSideEffect is `import "y"`, `require("y")` and dynamic `import("y")`.
	ImportSideEffect ImportKind = "side-effect"
	// ReExportNamed is `export { a, b as c } from "y"`.
	ReExportNamed ImportKind = "reexport"
	// ReExportNamespace is `export * as ns from "y"`.
	ReExportNamespace ImportKind = "reexport-namespace"
	// ReExportAll is `export * from "y"`.
	ReExportAll ImportKind = "reexport-all"
)

// Import is one import or re-export clause. Names holds the target file's
// exported names the clause mentions (original names, not local aliases);
// Alias holds the namespace binding for namespace kinds.
type Import struct {
	Specifier string     `json:"specifier"`
	Kind      ImportKind `json:"kind"`
	Names     []string   `json:"names,omitempty"`
	Alias     string     `json:"alias,omitempty"`
	Line      int        `json:"line"`
}

// ExportDecl is one exported declaration or export-clause entry. Identifier
// is the bound local identifier, empty for anonymous shapes. Two entries
// sharing an Identifier export the same underlying declaration.
type ExportDecl struct {
	Name         string `json:"name"`
	Identifier   string `json:"identifier,omitempty"`
	SymbolType   string `json:"symbol_type"`
	IsType       bool   `json:"is_type,omitempty"`
	HasPublicTag bool   `json:"has_public_tag,omitempty"`
	Line         int    `json:"line"`
}

// NamespaceRef is one `alias.member` access through a namespace import.
type NamespaceRef struct {
	Alias  string `json:"alias"`
	Member string `json:"member"`
}

// FileSummary is everything the index needs from one parsed file. It is
// JSON-serializable so the parse cache can persist it across runs.
type FileSummary struct {
	Path          string         `json:"path"`
	Hash          string         `json:"hash"`
	Parsed        bool           `json:"parsed"`
	Imports       []Import       `json:"imports,omitempty"`
	Exports       []ExportDecl   `json:"exports,omitempty"`
	IdentRefs     map[string]int `json:"ident_refs,omitempty"`
	NamespaceRefs []NamespaceRef `json:"namespace_refs,omitempty"`
}

// ContentHash returns the cache key for a file's contents.
func ContentHash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// declaration adapts an ExportDecl to the scanner's declaration queries.
type declaration struct {
	d ExportDecl
}

func (a *declaration) IsType() bool { return a.d.IsType }

func (a *declaration) SymbolType() string { return a.d.SymbolType }

func (a *declaration) Identifier() (string, bool) {
	if a.d.Identifier == "" {
		return "", false
	}
	return a.d.Identifier, true
}

func (a *declaration) HasPublicTag() bool { return a.d.HasPublicTag }

var _ scan.Declaration = (*declaration)(nil)
