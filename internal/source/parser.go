package source

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// ErrUnparseable indicates tree-sitter produced no tree for a file.
var ErrUnparseable = errors.New("file could not be parsed")

// Parser turns JavaScript and TypeScript sources into FileSummaries. The
// TypeScript grammar parses plain JavaScript too; the TSX grammar covers
// files with JSX in them.
type Parser struct {
	typescript *sitter.Language
	tsx        *sitter.Language
}

// NewParser creates a parser for .ts/.tsx/.js/.jsx/.mjs/.cjs files.
func NewParser() *Parser {
	return &Parser{
		typescript: sitter.NewLanguage(typescript.LanguageTypescript()),
		tsx:        sitter.NewLanguage(typescript.LanguageTSX()),
	}
}

func (p *Parser) languageFor(filePath string) *sitter.Language {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".tsx", ".jsx":
		return p.tsx
	default:
		return p.typescript
	}
}

// ParseFile extracts imports, exports, identifier references, and namespace
// member accesses from one source file.
func (p *Parser) ParseFile(ctx context.Context, filePath string, src []byte) (*FileSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.languageFor(filePath))

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnparseable, filePath)
	}
	defer tree.Close()

	e := &extractor{
		src: src,
		summary: &FileSummary{
			Path:      filePath,
			Hash:      ContentHash(src),
			Parsed:    true,
			IdentRefs: make(map[string]int),
		},
		locals:   make(map[string]localDecl),
		bindings: make(map[uint]struct{}),
	}

	root := tree.RootNode()
	e.collectDeclarations(root)
	e.collectExports(root)
	e.countReferences(root)

	return e.summary, nil
}

// localDecl is a top-level declaration visible to export clauses.
type localDecl struct {
	symbolType string
	isType     bool
	line       int
	publicTag  bool
}

type extractor struct {
	src      []byte
	summary  *FileSummary
	locals   map[string]localDecl
	bindings map[uint]struct{} // start bytes of name nodes that bind, not reference
}

func (e *extractor) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(e.src[n.StartByte():n.EndByte()])
}

func line(n *sitter.Node) int {
	return int(n.StartPosition().Row) + 1
}

// collectDeclarations registers every top-level declaration and import
// clause. Export clauses are resolved in a second pass so they can see
// declarations that appear later in the file.
func (e *extractor) collectDeclarations(root *sitter.Node) {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		switch child.Kind() {
		case "import_statement":
			e.extractImport(child)
		case "export_statement":
			decl := unwrapAmbient(child.ChildByFieldName("declaration"))
			if decl != nil {
				e.registerDecl(decl, e.hasPublicTag(child))
			}
		default:
			if decl := unwrapAmbient(child); isDeclarationKind(decl.Kind()) {
				e.registerDecl(decl, e.hasPublicTag(child))
			}
		}
	}
}

func isDeclarationKind(kind string) bool {
	switch kind {
	case "function_declaration", "generator_function_declaration",
		"class_declaration", "abstract_class_declaration",
		"interface_declaration", "type_alias_declaration",
		"enum_declaration", "lexical_declaration", "variable_declaration",
		"internal_module":
		return true
	}
	return false
}

// unwrapAmbient digs the declaration out of a `declare ...` statement.
func unwrapAmbient(n *sitter.Node) *sitter.Node {
	if n == nil || n.Kind() != "ambient_declaration" {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(uint(i))
		if isDeclarationKind(child.Kind()) {
			return child
		}
	}
	return n
}

func declInfo(n *sitter.Node) (symbolType string, isType bool) {
	switch n.Kind() {
	case "function_declaration", "generator_function_declaration":
		return "function", false
	case "class_declaration", "abstract_class_declaration":
		return "class", false
	case "interface_declaration":
		return "interface", true
	case "type_alias_declaration":
		return "type", true
	case "enum_declaration":
		return "enum", true
	case "lexical_declaration":
		if first := n.Child(0); first != nil && first.Kind() == "let" {
			return "let", false
		}
		return "const", false
	case "variable_declaration":
		return "var", false
	case "internal_module":
		return "namespace", false
	}
	return "unknown", false
}

// declNames lists the identifiers a declaration binds, with their name nodes.
func (e *extractor) declNames(n *sitter.Node) []*sitter.Node {
	switch n.Kind() {
	case "lexical_declaration", "variable_declaration":
		var names []*sitter.Node
		for _, declarator := range findChildrenByKind(n, "variable_declarator") {
			nameNode := declarator.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			if nameNode.Kind() == "identifier" {
				names = append(names, nameNode)
				continue
			}
			names = append(names, patternNames(nameNode)...)
		}
		return names
	default:
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			return []*sitter.Node{nameNode}
		}
		return nil
	}
}

// patternNames collects the binding leaves of a destructuring pattern.
func patternNames(n *sitter.Node) []*sitter.Node {
	var names []*sitter.Node
	walkTree(n, func(node *sitter.Node) bool {
		switch node.Kind() {
		case "shorthand_property_identifier_pattern":
			names = append(names, node)
		case "pair_pattern":
			value := node.ChildByFieldName("value")
			if value != nil && value.Kind() == "identifier" {
				names = append(names, value)
				return false
			}
		case "identifier":
			if parent := node.Parent(); parent != nil {
				switch parent.Kind() {
				case "array_pattern", "rest_pattern", "assignment_pattern", "object_assignment_pattern":
					names = append(names, node)
				}
			}
		}
		return true
	})
	return names
}

func (e *extractor) registerDecl(n *sitter.Node, publicTag bool) {
	symbolType, isType := declInfo(n)
	for _, nameNode := range e.declNames(n) {
		name := e.text(nameNode)
		if name == "" {
			continue
		}
		e.bindings[nameNode.StartByte()] = struct{}{}
		if _, exists := e.locals[name]; !exists {
			e.locals[name] = localDecl{
				symbolType: symbolType,
				isType:     isType,
				line:       line(n),
				publicTag:  publicTag,
			}
		}
	}
}

// hasPublicTag checks the comment directly above a statement for @public.
func (e *extractor) hasPublicTag(n *sitter.Node) bool {
	prev := n.PrevSibling()
	if prev == nil || prev.Kind() != "comment" {
		return false
	}
	return strings.Contains(e.text(prev), "@public")
}

func (e *extractor) extractImport(n *sitter.Node) {
	sourceNode := n.ChildByFieldName("source")
	if sourceNode == nil {
		// `import x = require("y")`
		if clause := findChildByKind(n, "import_require_clause"); clause != nil {
			if str := findChildByKind(clause, "string"); str != nil {
				e.summary.Imports = append(e.summary.Imports, Import{
					Specifier: e.stringText(str),
					Kind:      ImportDefault,
					Names:     []string{"default"},
					Line:      line(n),
				})
			}
		}
		return
	}
	specifier := e.stringText(sourceNode)

	clause := findChildByKind(n, "import_clause")
	if clause == nil {
		e.summary.Imports = append(e.summary.Imports, Import{
			Specifier: specifier,
			Kind:      ImportSideEffect,
			Line:      line(n),
		})
		return
	}

	for i := 0; i < int(clause.ChildCount()); i++ {
		part := clause.Child(uint(i))
		switch part.Kind() {
		case "identifier":
			e.summary.Imports = append(e.summary.Imports, Import{
				Specifier: specifier,
				Kind:      ImportDefault,
				Names:     []string{"default"},
				Line:      line(n),
			})
		case "named_imports":
			names := make([]string, 0, int(part.ChildCount()))
			for _, spec := range findChildrenByKind(part, "import_specifier") {
				if nameNode := spec.ChildByFieldName("name"); nameNode != nil {
					names = append(names, e.text(nameNode))
				}
			}
			if len(names) > 0 {
				e.summary.Imports = append(e.summary.Imports, Import{
					Specifier: specifier,
					Kind:      ImportNamed,
					Names:     names,
					Line:      line(n),
				})
			}
		case "namespace_import":
			if alias := findChildByKind(part, "identifier"); alias != nil {
				e.summary.Imports = append(e.summary.Imports, Import{
					Specifier: specifier,
					Kind:      ImportNamespace,
					Alias:     e.text(alias),
					Line:      line(n),
				})
			}
		}
	}
}

// collectExports walks export statements in order, resolving clause entries
// against the locals collected in the first pass.
func (e *extractor) collectExports(root *sitter.Node) {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		if child.Kind() != "export_statement" {
			continue
		}
		e.extractExport(child)
	}
}

func (e *extractor) extractExport(n *sitter.Node) {
	if sourceNode := n.ChildByFieldName("source"); sourceNode != nil {
		e.extractReExport(n, e.stringText(sourceNode))
		return
	}

	isDefault := hasChildToken(n, "default")
	publicTag := e.hasPublicTag(n)

	if decl := unwrapAmbient(n.ChildByFieldName("declaration")); decl != nil {
		e.exportDeclaration(decl, isDefault, publicTag)
		return
	}

	if value := n.ChildByFieldName("value"); value != nil && isDefault {
		e.exportDefaultValue(value, publicTag)
		return
	}

	if clause := findChildByKind(n, "export_clause"); clause != nil {
		e.exportClause(n, clause, publicTag)
	}
}

// extractReExport handles the export forms with a source. Re-exported names
// reference the target file's declarations; they add no local exports except
// the binding introduced by `export * as ns`.
func (e *extractor) extractReExport(n *sitter.Node, specifier string) {
	if nsExport := findChildByKind(n, "namespace_export"); nsExport != nil {
		alias := lastNamedChildText(e, nsExport)
		e.summary.Imports = append(e.summary.Imports, Import{
			Specifier: specifier,
			Kind:      ReExportNamespace,
			Alias:     alias,
			Line:      line(n),
		})
		if alias != "" {
			e.summary.Exports = append(e.summary.Exports, ExportDecl{
				Name:       alias,
				Identifier: alias,
				SymbolType: "namespace",
				Line:       line(n),
			})
		}
		return
	}

	if clause := findChildByKind(n, "export_clause"); clause != nil {
		names := make([]string, 0, int(clause.ChildCount()))
		for _, spec := range findChildrenByKind(clause, "export_specifier") {
			if nameNode := spec.ChildByFieldName("name"); nameNode != nil {
				names = append(names, e.text(nameNode))
			}
		}
		e.summary.Imports = append(e.summary.Imports, Import{
			Specifier: specifier,
			Kind:      ReExportNamed,
			Names:     names,
			Line:      line(n),
		})
		return
	}

	e.summary.Imports = append(e.summary.Imports, Import{
		Specifier: specifier,
		Kind:      ReExportAll,
		Line:      line(n),
	})
}

func (e *extractor) exportDeclaration(decl *sitter.Node, isDefault, publicTag bool) {
	symbolType, isType := declInfo(decl)
	names := e.declNames(decl)

	if isDefault {
		identifier := ""
		if len(names) > 0 {
			identifier = e.text(names[0])
		}
		e.summary.Exports = append(e.summary.Exports, ExportDecl{
			Name:         "default",
			Identifier:   identifier,
			SymbolType:   symbolType,
			IsType:       isType,
			HasPublicTag: publicTag,
			Line:         line(decl),
		})
		return
	}

	for _, nameNode := range names {
		e.summary.Exports = append(e.summary.Exports, ExportDecl{
			Name:         e.text(nameNode),
			Identifier:   e.text(nameNode),
			SymbolType:   symbolType,
			IsType:       isType,
			HasPublicTag: publicTag,
			Line:         line(decl),
		})
	}
}

// exportDefaultValue handles `export default <expression>`. Only an
// identifier expression yields a classifiable declaration; anything inline
// is anonymous.
func (e *extractor) exportDefaultValue(value *sitter.Node, publicTag bool) {
	exp := ExportDecl{
		Name:         "default",
		SymbolType:   "default",
		HasPublicTag: publicTag,
		Line:         line(value),
	}
	if value.Kind() == "identifier" {
		name := e.text(value)
		exp.Identifier = name
		if info, ok := e.locals[name]; ok {
			exp.SymbolType = info.symbolType
			exp.IsType = info.isType
		}
	}
	e.summary.Exports = append(e.summary.Exports, exp)
}

func (e *extractor) exportClause(stmt, clause *sitter.Node, publicTag bool) {
	typeOnly := hasChildToken(stmt, "type")
	for _, spec := range findChildrenByKind(clause, "export_specifier") {
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		local := e.text(nameNode)
		exported := local
		if aliasNode := spec.ChildByFieldName("alias"); aliasNode != nil {
			exported = e.text(aliasNode)
			// The alias introduces the exported name; it is not a
			// reference to a local symbol.
			e.bindings[aliasNode.StartByte()] = struct{}{}
		}

		exp := ExportDecl{
			Name:         exported,
			Identifier:   local,
			SymbolType:   "export",
			IsType:       typeOnly,
			HasPublicTag: publicTag,
			Line:         line(spec),
		}
		if info, ok := e.locals[local]; ok {
			exp.SymbolType = info.symbolType
			exp.IsType = info.isType || typeOnly
			exp.HasPublicTag = publicTag || info.publicTag
		}
		e.summary.Exports = append(e.summary.Exports, exp)
	}
}

// countReferences tallies identifier occurrences and namespace member
// accesses. Import subtrees and re-export subtrees are skipped: their names
// reference other files. Export clauses without a source are kept; the
// export statement itself counts as a self-reference.
func (e *extractor) countReferences(root *sitter.Node) {
	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement":
			return false
		case "export_statement":
			if n.ChildByFieldName("source") != nil {
				return false
			}
		case "member_expression":
			object := n.ChildByFieldName("object")
			property := n.ChildByFieldName("property")
			if object != nil && object.Kind() == "identifier" &&
				property != nil && property.Kind() == "property_identifier" {
				e.summary.NamespaceRefs = append(e.summary.NamespaceRefs, NamespaceRef{
					Alias:  e.text(object),
					Member: e.text(property),
				})
			}
		case "call_expression":
			e.maybeDynamicImport(n)
		case "identifier", "type_identifier", "shorthand_property_identifier":
			if _, bound := e.bindings[n.StartByte()]; !bound {
				e.summary.IdentRefs[e.text(n)]++
			}
		}
		return true
	})
}

// maybeDynamicImport records `require("x")` and `import("x")` calls as
// side-effect imports so the module graph and dependency usage see them.
func (e *extractor) maybeDynamicImport(n *sitter.Node) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return
	}
	isRequire := fn.Kind() == "identifier" && e.text(fn) == "require"
	isImport := fn.Kind() == "import"
	if !isRequire && !isImport {
		return
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return
	}
	str := findChildByKind(args, "string")
	if str == nil {
		return
	}
	e.summary.Imports = append(e.summary.Imports, Import{
		Specifier: e.stringText(str),
		Kind:      ImportSideEffect,
		Line:      line(n),
	})
}

// stringText returns a string literal's contents without quotes.
func (e *extractor) stringText(n *sitter.Node) string {
	if fragment := findChildByKind(n, "string_fragment"); fragment != nil {
		return e.text(fragment)
	}
	t := e.text(n)
	if len(t) >= 2 {
		return t[1 : len(t)-1]
	}
	return t
}

func lastNamedChildText(e *extractor, n *sitter.Node) string {
	var last string
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(uint(i))
		switch child.Kind() {
		case "identifier", "module_export_name":
			last = e.text(child)
		case "string":
			last = e.stringText(child)
		}
	}
	return last
}

func hasChildToken(n *sitter.Node, token string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(uint(i)).Kind() == token {
			return true
		}
	}
	return false
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for
// each node. Returning false skips the node's children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// findChildByKind finds the first direct child with the given kind.
func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// findChildrenByKind finds all direct children with the given kind.
func findChildrenByKind(node *sitter.Node, kind string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}
