package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alpha_model.pkl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLogistic(t *testing.T) {
	path := writeArtifact(t, `{"kind":"logistic","weight":10,"bias":0}`)

	clf, err := Load(path)
	require.NoError(t, err)

	labels, err := clf.Classify([]float64{0.5, -0.5, 0.0})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, labels) // sigmoid(0) = 0.5 >= default threshold
}

func TestLoadThreshold(t *testing.T) {
	path := writeArtifact(t, `{"kind":"threshold","cutoff":0.02}`)

	clf, err := Load(path)
	require.NoError(t, err)

	labels, err := clf.Classify([]float64{0.05, 0.02, -0.01})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 0}, labels)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope_model.pkl"))
	require.Error(t, err)
}

func TestLoadCorruptArtifact(t *testing.T) {
	path := writeArtifact(t, `not json at all`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadUnknownKind(t *testing.T) {
	path := writeArtifact(t, `{"kind":"forest"}`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestClassifyAlignment(t *testing.T) {
	clf := &ThresholdModel{Cutoff: 0}

	features := []float64{1, -1, 2, -2, 3}
	labels, err := clf.Classify(features)
	require.NoError(t, err)
	require.Len(t, labels, len(features))
	assert.Equal(t, []int{1, 0, 1, 0, 1}, labels)
}
