package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoManifest indicates the project has no package.json. Dependency
// reporting is impossible without one; file and export scanning still work.
var ErrNoManifest = errors.New("no package.json found")

// Manifest is the subset of package.json the analyzer consumes.
type Manifest struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Main                 string            `json:"main"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
	Scripts              map[string]string `json:"scripts"`
}

// LoadManifest reads and decodes package.json from rootDir. A missing file
// returns ErrNoManifest; a malformed file is a hard error.
func LoadManifest(rootDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(rootDir, "package.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrNoManifest, rootDir)
		}
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}
	return &m, nil
}

// DependencyNames returns the names in the dependencies section, sorted.
func (m *Manifest) DependencyNames() []string {
	return sortedKeys(m.Dependencies)
}

// DevDependencyNames returns the names in the devDependencies section, sorted.
func (m *Manifest) DevDependencyNames() []string {
	return sortedKeys(m.DevDependencies)
}

// HasDependency reports whether name appears in any dependency section,
// including peer and optional dependencies.
func (m *Manifest) HasDependency(name string) bool {
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	if _, ok := m.DevDependencies[name]; ok {
		return true
	}
	if _, ok := m.PeerDependencies[name]; ok {
		return true
	}
	_, ok := m.OptionalDependencies[name]
	return ok
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
