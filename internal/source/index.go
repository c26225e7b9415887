package source

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/dominikbraun/graph"
	"golang.org/x/sync/errgroup"

	"github.com/deadwoodhq/deadwood/internal/scan"
)

// SummaryCache persists parse summaries keyed by path and content hash.
// A hash miss means the file changed and must be re-parsed.
type SummaryCache interface {
	Get(path, hash string) (*FileSummary, bool)
	Put(path, hash string, summary *FileSummary) error
}

// Index holds the parsed view of a project: per-file summaries, the module
// graph, and reverse reference tables. It implements the scanner's source
// model. All lookups are read-only after construction.
type Index struct {
	rootDir   string
	files     []string
	fileSet   map[string]struct{}
	summaries map[string]*FileSummary
	resolved  map[string]map[string]string
	refs      map[string]map[string]map[string]struct{}
	nsTargets map[string]struct{}
	g         graph.Graph[string, string]
}

type indexOptions struct {
	cache       SummaryCache
	concurrency int
}

// IndexOption configures BuildIndex.
type IndexOption func(*indexOptions)

// WithSummaryCache reuses cached summaries for unchanged files.
func WithSummaryCache(cache SummaryCache) IndexOption {
	return func(o *indexOptions) {
		o.cache = cache
	}
}

// WithConcurrency bounds the parallel parse workers.
func WithConcurrency(n int) IndexOption {
	return func(o *indexOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// BuildIndex parses every file (relative to rootDir) and links the results
// into an Index. Parsing runs in parallel; linking is single-threaded so
// the produced tables are deterministic. Unparseable files are skipped with
// a warning. Unreadable files abort the build.
func BuildIndex(ctx context.Context, rootDir string, files []string, opts ...IndexOption) (*Index, error) {
	options := &indexOptions{concurrency: runtime.NumCPU()}
	for _, opt := range opts {
		opt(options)
	}

	parser := NewParser()
	summaries := make([]*FileSummary, len(files))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(options.concurrency)
	for i, file := range files {
		group.Go(func() error {
			data, err := os.ReadFile(filepath.Join(rootDir, filepath.FromSlash(file)))
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			hash := ContentHash(data)
			if options.cache != nil {
				if cached, ok := options.cache.Get(file, hash); ok {
					summaries[i] = cached
					return nil
				}
			}
			summary, err := parser.ParseFile(ctx, file, data)
			if err != nil {
				if errors.Is(err, ErrUnparseable) {
					log.Printf("Warning: skipping unparseable file %s", file)
					summaries[i] = &FileSummary{Path: file, Hash: hash}
					return nil
				}
				return err
			}
			if options.cache != nil {
				if err := options.cache.Put(file, hash, summary); err != nil {
					log.Printf("Warning: could not cache summary for %s: %v", file, err)
				}
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	idx := &Index{
		rootDir:   rootDir,
		files:     append([]string(nil), files...),
		fileSet:   make(map[string]struct{}, len(files)),
		summaries: make(map[string]*FileSummary, len(files)),
		resolved:  make(map[string]map[string]string, len(files)),
		refs:      make(map[string]map[string]map[string]struct{}),
		nsTargets: make(map[string]struct{}),
	}
	for i, file := range files {
		idx.fileSet[file] = struct{}{}
		idx.summaries[file] = summaries[i]
	}
	idx.link()
	return idx, nil
}

// link resolves relative imports, builds the module graph, and fills the
// reverse reference tables.
func (idx *Index) link() {
	idx.g = graph.New(graph.StringHash, graph.Directed())
	for _, f := range idx.files {
		_ = idx.g.AddVertex(f)
	}

	for _, f := range idx.files {
		summary := idx.summaries[f]
		resolved := make(map[string]string)
		nsAliases := make(map[string]string)

		for _, imp := range summary.Imports {
			if !IsRelative(imp.Specifier) {
				continue
			}
			target, ok := idx.resolveInternal(f, imp.Specifier)
			if !ok {
				continue
			}
			resolved[imp.Specifier] = target
			_ = idx.g.AddEdge(f, target)

			switch imp.Kind {
			case ImportNamed, ReExportNamed:
				for _, name := range imp.Names {
					idx.addRef(target, name, f)
				}
			case ImportDefault:
				idx.addRef(target, "default", f)
			case ImportNamespace:
				idx.nsTargets[target] = struct{}{}
				nsAliases[imp.Alias] = target
			case ReExportNamespace, ReExportAll:
				idx.nsTargets[target] = struct{}{}
			}
		}

		for _, nsRef := range summary.NamespaceRefs {
			if target, ok := nsAliases[nsRef.Alias]; ok {
				idx.addRef(target, nsRef.Member, f)
			}
		}

		idx.resolved[f] = resolved
	}
}

func (idx *Index) addRef(target, name, from string) {
	byName, ok := idx.refs[target]
	if !ok {
		byName = make(map[string]map[string]struct{})
		idx.refs[target] = byName
	}
	froms, ok := byName[name]
	if !ok {
		froms = make(map[string]struct{})
		byName[name] = froms
	}
	froms[from] = struct{}{}
}

// resolveInternal probes a relative specifier against the indexed file set.
func (idx *Index) resolveInternal(fromFile, specifier string) (string, bool) {
	for _, candidate := range resolveCandidates(fromFile, specifier) {
		if _, ok := idx.fileSet[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

// Files returns the indexed file list in input order.
func (idx *Index) Files() []string {
	return idx.files
}

// Summary returns the parse summary for a file, nil if unknown.
func (idx *Index) Summary(filePath string) *FileSummary {
	return idx.summaries[filePath]
}

// UnresolvedRelative returns the file's relative specifiers that resolve to
// no indexed file, in source order.
func (idx *Index) UnresolvedRelative(filePath string) []string {
	summary := idx.summaries[filePath]
	if summary == nil {
		return nil
	}
	var out []string
	resolved := idx.resolved[filePath]
	for _, imp := range summary.Imports {
		if !IsRelative(imp.Specifier) {
			continue
		}
		if _, ok := resolved[imp.Specifier]; !ok {
			out = append(out, imp.Specifier)
		}
	}
	return out
}

// BareImports returns the file's bare (package) specifiers in source order.
func (idx *Index) BareImports(filePath string) []string {
	summary := idx.summaries[filePath]
	if summary == nil {
		return nil
	}
	var out []string
	for _, imp := range summary.Imports {
		if IsRelative(imp.Specifier) {
			continue
		}
		out = append(out, imp.Specifier)
	}
	return out
}

// ReachableFrom returns every indexed file reachable from the entry files
// over resolved imports, entries included, sorted.
func (idx *Index) ReachableFrom(entries []string) ([]string, error) {
	adjacency, err := idx.g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("module graph adjacency: %w", err)
	}

	visited := make(map[string]struct{})
	var queue []string
	for _, entry := range entries {
		if _, ok := idx.fileSet[entry]; !ok {
			continue
		}
		if _, seen := visited[entry]; seen {
			continue
		}
		visited[entry] = struct{}{}
		queue = append(queue, entry)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		neighbors := make([]string, 0, len(adjacency[current]))
		for neighbor := range adjacency[current] {
			neighbors = append(neighbors, neighbor)
		}
		sort.Strings(neighbors)

		for _, neighbor := range neighbors {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			visited[neighbor] = struct{}{}
			queue = append(queue, neighbor)
		}
	}

	out := make([]string, 0, len(visited))
	for f := range visited {
		out = append(out, f)
	}
	sort.Strings(out)
	return out, nil
}

// ExportedDeclarations implements scan.SourceModel.
func (idx *Index) ExportedDeclarations(filePath string) []scan.Export {
	summary := idx.summaries[filePath]
	if summary == nil {
		return nil
	}
	exports := make([]scan.Export, 0, len(summary.Exports))
	for _, d := range summary.Exports {
		exports = append(exports, scan.Export{Name: d.Name, Decl: &declaration{d: d}})
	}
	return exports
}

// References implements scan.SourceModel: the declaring file when the
// identifier occurs there, plus every file importing one of the identifier's
// exported names, sorted.
func (idx *Index) References(filePath, identifier string) []string {
	summary := idx.summaries[filePath]
	if summary == nil {
		return nil
	}

	var out []string
	if summary.IdentRefs[identifier] > 0 {
		out = append(out, filePath)
	}

	external := make(map[string]struct{})
	byName := idx.refs[filePath]
	for _, d := range summary.Exports {
		if d.Identifier != identifier {
			continue
		}
		for from := range byName[d.Name] {
			if from != filePath {
				external[from] = struct{}{}
			}
		}
	}

	externalSorted := make([]string, 0, len(external))
	for f := range external {
		externalSorted = append(externalSorted, f)
	}
	sort.Strings(externalSorted)
	return append(out, externalSorted...)
}

// IsNamespaceTarget implements scan.SourceModel.
func (idx *Index) IsNamespaceTarget(filePath string) bool {
	_, ok := idx.nsTargets[filePath]
	return ok
}

// DuplicateExportGroups implements scan.SourceModel: export names grouped by
// bound identifier, groups of two or more, in first-seen order.
func (idx *Index) DuplicateExportGroups(filePath string) [][]string {
	summary := idx.summaries[filePath]
	if summary == nil {
		return nil
	}

	byIdent := make(map[string][]string)
	var order []string
	for _, d := range summary.Exports {
		if d.Identifier == "" {
			continue
		}
		if _, seen := byIdent[d.Identifier]; !seen {
			order = append(order, d.Identifier)
		}
		byIdent[d.Identifier] = append(byIdent[d.Identifier], d.Name)
	}

	var groups [][]string
	for _, ident := range order {
		names := dedupStrings(byIdent[ident])
		if len(names) >= 2 {
			groups = append(groups, names)
		}
	}
	return groups
}

func dedupStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

var _ scan.SourceModel = (*Index)(nil)
