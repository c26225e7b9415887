package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Parser:
// - Extracts named, default, namespace, and side-effect imports
// - Records require() and dynamic import() as side-effect imports
// - Extracts exported declarations with their symbol types
// - Resolves export clauses against local declarations, aliases included
// - Handles type-only export clauses and export default expressions
// - Extracts destructured const exports
// - Records re-export clauses as imports of the target file
// - Counts identifier references, skipping bindings and import names
// - Records namespace member accesses
// - Detects @public comment tags
// - Parses TSX files

func parseSource(t *testing.T, filePath, src string) *FileSummary {
	t.Helper()
	summary, err := NewParser().ParseFile(context.Background(), filePath, []byte(src))
	require.NoError(t, err)
	require.NotNil(t, summary)
	return summary
}

func TestParser_Imports(t *testing.T) {
	t.Parallel()

	summary := parseSource(t, "src/app.ts", `
import def from "./a";
import { x, y as z } from "./b";
import * as ns from "./c";
import "./styles.css";
import fs from "fs";
import legacy = require("./old");
const lazy = import("./lazy");
const dynamic = require("lodash");
`)

	require.Len(t, summary.Imports, 8)

	assert.Equal(t, Import{Specifier: "./a", Kind: ImportDefault, Names: []string{"default"}, Line: 2}, summary.Imports[0])
	assert.Equal(t, Import{Specifier: "./b", Kind: ImportNamed, Names: []string{"x", "y"}, Line: 3}, summary.Imports[1])
	assert.Equal(t, Import{Specifier: "./c", Kind: ImportNamespace, Alias: "ns", Line: 4}, summary.Imports[2])
	assert.Equal(t, Import{Specifier: "./styles.css", Kind: ImportSideEffect, Line: 5}, summary.Imports[3])
	assert.Equal(t, Import{Specifier: "fs", Kind: ImportDefault, Names: []string{"default"}, Line: 6}, summary.Imports[4])
	assert.Equal(t, Import{Specifier: "./old", Kind: ImportDefault, Names: []string{"default"}, Line: 7}, summary.Imports[5])

	// Dynamic forms are collected during the reference walk, after the
	// static clauses.
	assert.Equal(t, Import{Specifier: "./lazy", Kind: ImportSideEffect, Line: 8}, summary.Imports[6])
	assert.Equal(t, Import{Specifier: "lodash", Kind: ImportSideEffect, Line: 9}, summary.Imports[7])
}

func TestParser_ExportedDeclarations(t *testing.T) {
	t.Parallel()

	summary := parseSource(t, "src/decls.ts", `
export const a = 1;
export let mutable = 2;
export function fn() {}
export class Widget {}
export interface Opts { verbose: boolean }
export type Alias = string;
export enum Color { Red }
export default class Main {}
`)

	require.Len(t, summary.Exports, 8)

	expect := []struct {
		name       string
		identifier string
		symbolType string
		isType     bool
	}{
		{"a", "a", "const", false},
		{"mutable", "mutable", "let", false},
		{"fn", "fn", "function", false},
		{"Widget", "Widget", "class", false},
		{"Opts", "Opts", "interface", true},
		{"Alias", "Alias", "type", true},
		{"Color", "Color", "enum", true},
		{"default", "Main", "class", false},
	}
	for i, want := range expect {
		got := summary.Exports[i]
		assert.Equal(t, want.name, got.Name, "export %d name", i)
		assert.Equal(t, want.identifier, got.Identifier, "export %d identifier", i)
		assert.Equal(t, want.symbolType, got.SymbolType, "export %d symbol type", i)
		assert.Equal(t, want.isType, got.IsType, "export %d is-type", i)
	}
}

func TestParser_ExportClause(t *testing.T) {
	t.Parallel()

	summary := parseSource(t, "src/clause.ts", `
const first = 1;
const second = 2;
function helper() {}
interface Opts {}
export { first, second as alias };
export type { Opts };
export default helper;
`)

	require.Len(t, summary.Exports, 4)

	assert.Equal(t, "first", summary.Exports[0].Name)
	assert.Equal(t, "first", summary.Exports[0].Identifier)
	assert.Equal(t, "const", summary.Exports[0].SymbolType)

	// The exported name is the alias; the identifier stays the local name.
	assert.Equal(t, "alias", summary.Exports[1].Name)
	assert.Equal(t, "second", summary.Exports[1].Identifier)
	assert.Equal(t, "const", summary.Exports[1].SymbolType)

	assert.Equal(t, "Opts", summary.Exports[2].Name)
	assert.Equal(t, "interface", summary.Exports[2].SymbolType)
	assert.True(t, summary.Exports[2].IsType)

	assert.Equal(t, "default", summary.Exports[3].Name)
	assert.Equal(t, "helper", summary.Exports[3].Identifier)
	assert.Equal(t, "function", summary.Exports[3].SymbolType)
}

func TestParser_DestructuredExport(t *testing.T) {
	t.Parallel()

	summary := parseSource(t, "src/destructure.ts", `
const config = { x: 1, y: 2 };
export const { x: renamed, y } = config;
`)

	require.Len(t, summary.Exports, 2)
	assert.Equal(t, "renamed", summary.Exports[0].Name)
	assert.Equal(t, "const", summary.Exports[0].SymbolType)
	assert.Equal(t, "y", summary.Exports[1].Name)
}

func TestParser_ReExports(t *testing.T) {
	t.Parallel()

	summary := parseSource(t, "src/barrel.ts", `
export { a, b } from "./a";
export * from "./b";
export * as utils from "./c";
`)

	require.Len(t, summary.Imports, 3)
	assert.Equal(t, Import{Specifier: "./a", Kind: ReExportNamed, Names: []string{"a", "b"}, Line: 2}, summary.Imports[0])
	assert.Equal(t, Import{Specifier: "./b", Kind: ReExportAll, Line: 3}, summary.Imports[1])
	assert.Equal(t, Import{Specifier: "./c", Kind: ReExportNamespace, Alias: "utils", Line: 4}, summary.Imports[2])

	// `export * as ns` introduces a local exported binding.
	require.Len(t, summary.Exports, 1)
	assert.Equal(t, "utils", summary.Exports[0].Name)
	assert.Equal(t, "namespace", summary.Exports[0].SymbolType)
}

func TestParser_ReferenceCounting(t *testing.T) {
	t.Parallel()

	summary := parseSource(t, "src/refs.ts", `
import * as ns from "./m";
export const used = 1;
export const unused = 2;
const total = used + ns.helper(used);
`)

	// Declaration sites bind, uses reference.
	assert.Equal(t, 2, summary.IdentRefs["used"])
	assert.Zero(t, summary.IdentRefs["unused"])
	assert.Zero(t, summary.IdentRefs["total"])

	assert.Contains(t, summary.NamespaceRefs, NamespaceRef{Alias: "ns", Member: "helper"})
}

func TestParser_ReExportNamesAreNotReferences(t *testing.T) {
	t.Parallel()

	summary := parseSource(t, "src/passthrough.ts", `
export { helper } from "./util";
`)

	// The name belongs to the target file, not this one.
	assert.Zero(t, summary.IdentRefs["helper"])
	assert.Empty(t, summary.Exports)
}

func TestParser_PublicTag(t *testing.T) {
	t.Parallel()

	summary := parseSource(t, "src/tagged.ts", `
/** @public */
export const keep = 1;
export const drop = 2;
`)

	require.Len(t, summary.Exports, 2)
	assert.True(t, summary.Exports[0].HasPublicTag)
	assert.False(t, summary.Exports[1].HasPublicTag)
}

func TestParser_TSX(t *testing.T) {
	t.Parallel()

	summary := parseSource(t, "src/App.tsx", `
export function App() {
  return <div>hello</div>;
}
`)

	require.True(t, summary.Parsed)
	require.Len(t, summary.Exports, 1)
	assert.Equal(t, "App", summary.Exports[0].Name)
	assert.Equal(t, "function", summary.Exports[0].SymbolType)
}

func TestParser_SummaryMetadata(t *testing.T) {
	t.Parallel()

	src := "export const v = 1;\n"
	summary := parseSource(t, "src/meta.ts", src)

	assert.Equal(t, "src/meta.ts", summary.Path)
	assert.Equal(t, ContentHash([]byte(src)), summary.Hash)
	assert.True(t, summary.Parsed)
}
