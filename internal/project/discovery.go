package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery walks a project tree and classifies source files into entry and
// production sets by glob patterns, honoring .gitignore and ignore patterns.
type Discovery struct {
	rootDir         string
	entryPatterns   []compiledPattern
	projectPatterns []compiledPattern
	ignorePatterns  []compiledPattern
	gitignore       *ignore.GitIgnore
}

// skippedDirs are never descended into, regardless of configuration.
var skippedDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".deadwood":    {},
}

// NewDiscovery creates a discovery instance for rootDir. Patterns use '/' as
// the separator; a .gitignore at the root is applied when present.
func NewDiscovery(rootDir string, entryPatterns, projectPatterns, ignorePatterns []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}

	var err error
	if d.entryPatterns, err = compilePatterns(entryPatterns); err != nil {
		return nil, err
	}
	if d.projectPatterns, err = compilePatterns(projectPatterns); err != nil {
		return nil, err
	}
	if d.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}

	// Missing .gitignore is fine; any other error means an unreadable file.
	gitignorePath := filepath.Join(rootDir, ".gitignore")
	if _, statErr := os.Stat(gitignorePath); statErr == nil {
		gi, compileErr := ignore.CompileIgnoreFile(gitignorePath)
		if compileErr != nil {
			return nil, compileErr
		}
		d.gitignore = gi
	}

	return d, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// Discover walks the tree and returns entry and production files as sorted
// root-relative slash paths. A file matching both pattern sets appears in
// both outputs.
func (d *Discovery) Discover() (entryFiles, productionFiles []string, err error) {
	entryFiles = []string{}
	productionFiles = []string{}

	err = filepath.Walk(d.rootDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		relPath, relErr := filepath.Rel(d.rootDir, path)
		if relErr != nil {
			return relErr
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath == "." {
				return nil
			}
			if _, skip := skippedDirs[info.Name()]; skip {
				return filepath.SkipDir
			}
			if strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			if d.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.shouldIgnore(relPath) {
			return nil
		}

		if matchesAnyPattern(relPath, d.entryPatterns) {
			entryFiles = append(entryFiles, relPath)
		}
		if matchesAnyPattern(relPath, d.projectPatterns) {
			productionFiles = append(productionFiles, relPath)
		}
		return nil
	})

	return entryFiles, productionFiles, err
}

// shouldIgnore checks the ignore patterns and .gitignore for a path.
func (d *Discovery) shouldIgnore(relPath string) bool {
	if d.gitignore != nil && d.gitignore.MatchesPath(relPath) {
		return true
	}
	if matchesAnyPattern(relPath, d.ignorePatterns) {
		return true
	}
	// A directory should also match patterns written with a /** suffix, so
	// "dist" is pruned by the pattern "dist/**".
	return matchesAnyPattern(relPath+"/**", d.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Root-level files have no slash, so "**/*.ts" would miss "index.ts".
	// Retry those against the pattern with the **/ prefix removed.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
