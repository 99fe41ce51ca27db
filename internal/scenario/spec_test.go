package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	// Two complete scenarios plus one without a model and one stray file
	touch(t, filepath.Join(dir, "beta_history_events.csv"))
	touch(t, filepath.Join(dir, "beta_model.pkl"))
	touch(t, filepath.Join(dir, "alpha_history_events.csv"))
	touch(t, filepath.Join(dir, "alpha_model.pkl"))
	touch(t, filepath.Join(dir, "orphan_history_events.csv"))
	touch(t, filepath.Join(dir, "notes.txt"))

	specs, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, specs, 3)

	// Lexicographic by scenario name
	assert.Equal(t, "alpha", specs[0].Name)
	assert.Equal(t, "beta", specs[1].Name)
	assert.Equal(t, "orphan", specs[2].Name)

	assert.Equal(t, filepath.Join(dir, "alpha_history_events.csv"), specs[0].EventsPath)
	assert.Equal(t, filepath.Join(dir, "alpha_model.pkl"), specs[0].ModelPath)

	assert.True(t, specs[0].HasModel())
	assert.True(t, specs[1].HasModel())
	assert.False(t, specs[2].HasModel())
}

func TestDiscoverEmptyDir(t *testing.T) {
	specs, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, specs)
}
