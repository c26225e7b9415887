package cli

// Test Plan for Clean Command:
// - cleanCache removes the cache database
// - cleanCache handles a missing cache gracefully
// - cleanCache preserves the configuration file
// - cleanCache honors a configured cache path

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCache_RemovesDatabase(t *testing.T) {
	root := t.TempDir()
	cachePath := filepath.Join(root, ".deadwood", "cache.db")
	require.NoError(t, os.MkdirAll(filepath.Dir(cachePath), 0755))
	require.NoError(t, os.WriteFile(cachePath, []byte("stale summaries"), 0644))

	require.NoError(t, cleanCache(root))

	_, err := os.Stat(cachePath)
	assert.True(t, os.IsNotExist(err))
}

func TestCleanCache_MissingCacheIsFine(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, cleanCache(root))
}

func TestCleanCache_PreservesConfigFile(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, ".deadwood")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configPath := filepath.Join(configDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("entry:\n  - \"src/app.ts\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "cache.db"), []byte("stale"), 0644))

	require.NoError(t, cleanCache(root))

	_, err := os.Stat(configPath)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(configDir, "cache.db"))
	assert.True(t, os.IsNotExist(err))
}

func TestCleanCache_HonorsConfiguredPath(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, ".deadwood")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"),
		[]byte("cache:\n  path: tmp/summaries.db\n"), 0644))

	customPath := filepath.Join(root, "tmp", "summaries.db")
	require.NoError(t, os.MkdirAll(filepath.Dir(customPath), 0755))
	require.NoError(t, os.WriteFile(customPath, []byte("stale"), 0644))

	require.NoError(t, cleanCache(root))

	_, err := os.Stat(customPath)
	assert.True(t, os.IsNotExist(err))
}
