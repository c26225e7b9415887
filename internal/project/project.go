package project

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoEntryFiles indicates no file matched the entry patterns. Without an
// entry point there is no reachable set and every result would be noise.
var ErrNoEntryFiles = errors.New("no entry files found")

// Options selects which files belong to the project.
type Options struct {
	// EntryPatterns match the designated entry points.
	EntryPatterns []string

	// ProjectPatterns match the production file set.
	ProjectPatterns []string

	// IgnorePatterns exclude files from discovery entirely.
	IgnorePatterns []string
}

// Project is the loaded view of one source tree: the discovered file sets
// and the dependency manifest. All paths are root-relative slash paths.
type Project struct {
	RootDir string

	// Files is every discovered source file (entry and production merged).
	Files []string

	// ProductionFiles match the project patterns.
	ProductionFiles []string

	// EntryFiles match the entry patterns, plus the manifest main field
	// when it points at an existing source file.
	EntryFiles []string

	// Manifest is nil when the project has no package.json.
	Manifest *Manifest
}

// sourceExtensions are the file types the analyzer understands.
var sourceExtensions = map[string]struct{}{
	".ts": {}, ".tsx": {}, ".js": {}, ".jsx": {}, ".mjs": {}, ".cjs": {},
}

// Load discovers the project's file sets and manifest. A missing manifest is
// logged and tolerated; finding zero entry files is an error.
func Load(rootDir string, opts Options) (*Project, error) {
	discovery, err := NewDiscovery(rootDir, opts.EntryPatterns, opts.ProjectPatterns, opts.IgnorePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to compile file patterns: %w", err)
	}

	entryFiles, productionFiles, err := discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}

	manifest, err := LoadManifest(rootDir)
	if err != nil {
		if !errors.Is(err, ErrNoManifest) {
			return nil, err
		}
		log.Printf("Note: %v, dependency reporting disabled", err)
		manifest = nil
	}

	// The manifest main field designates an entry point the globs may miss.
	if manifest != nil && manifest.Main != "" {
		if main, ok := manifestMainFile(rootDir, manifest.Main); ok {
			entryFiles = append(entryFiles, main)
		}
	}

	entryFiles = dedupSorted(entryFiles)
	productionFiles = dedupSorted(productionFiles)

	if len(entryFiles) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoEntryFiles, rootDir)
	}

	return &Project{
		RootDir:         rootDir,
		Files:           dedupSorted(append(append([]string{}, entryFiles...), productionFiles...)),
		ProductionFiles: productionFiles,
		EntryFiles:      entryFiles,
		Manifest:        manifest,
	}, nil
}

// manifestMainFile normalizes the manifest main field to a root-relative
// source file, false when it does not point at one.
func manifestMainFile(rootDir, main string) (string, bool) {
	rel := path.Clean(filepath.ToSlash(main))
	rel = strings.TrimPrefix(rel, "./")
	if strings.HasPrefix(rel, "../") {
		return "", false
	}
	if _, ok := sourceExtensions[path.Ext(rel)]; !ok {
		return "", false
	}
	if _, err := os.Stat(filepath.Join(rootDir, filepath.FromSlash(rel))); err != nil {
		return "", false
	}
	return rel, true
}

func dedupSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
