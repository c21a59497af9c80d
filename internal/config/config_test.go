package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points discovery at an empty temp tree.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)
	require.NoError(t, Initialize(""))

	assert.Equal(t, "text", GetString("format"))
	assert.Equal(t, 4, GetInt("precision"))
	assert.Equal(t, 4, GetInt("workers"))
	assert.Equal(t, "term", GetString("term-column"))
	assert.Equal(t, 500*time.Millisecond, GetDuration("watch.debounce"))
	assert.False(t, GetBool("no-color"))
	assert.Empty(t, ConfigFileUsed())
}

func TestProjectConfigFoundFromSubdirectory(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".modelscore"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".modelscore", "config.yaml"),
		[]byte("format: json\nprecision: 2\nwatch:\n  debounce: 2s\n"), 0o644))

	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	require.NoError(t, Initialize(""))
	assert.Equal(t, "json", GetString("format"))
	assert.Equal(t, 2, GetInt("precision"))
	assert.Equal(t, 2*time.Second, GetDuration("watch.debounce"))
	assert.Contains(t, ConfigFileUsed(), ".modelscore")
}

func TestEnvAndSetOverride(t *testing.T) {
	isolate(t)
	t.Setenv("MODELSCORE_TERM_COLUMN", "name")
	require.NoError(t, Initialize(""))

	assert.Equal(t, "name", GetString("term-column"))

	Set("term-column", "label")
	assert.Equal(t, "label", GetString("term-column"))
}

func TestExplicitConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 9\n"), 0o644))

	require.NoError(t, Initialize(path))
	assert.Equal(t, 9, GetInt("workers"))

	assert.Error(t, Initialize(filepath.Join(dir, "missing.yaml")))
}
