package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwswcopt/spotlight/shape"
)

func writeLayersFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "layers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadShapes_ParsesEntries(t *testing.T) {
	path := writeLayersFile(t, `
- name: conv1
  n: 1
  k: 64
  c: 3
  x: 224
  y: 224
  r: 7
  s: 7
  stride: 2
`)
	shapes, err := LoadShapes(path, false, false)
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, "conv1", shapes[0].Name)
	assert.Equal(t, 224, shapes[0].Get(shape.X))
	assert.Equal(t, 109, shapes[0].OutputDims[shape.X]) // (224-7)/2+1 = 217/2+1 = 108+1 = 109
}

func TestLoadShapes_IgnoreStrideTreatsStrideAsOne(t *testing.T) {
	path := writeLayersFile(t, `
- name: conv1
  n: 1
  k: 64
  c: 3
  x: 10
  y: 10
  r: 3
  s: 3
  stride: 2
`)
	shapes, err := LoadShapes(path, true, false)
	require.NoError(t, err)
	assert.Equal(t, 8, shapes[0].OutputDims[shape.X]) // (10-3)/1+1 = 8
}

func TestLoadShapes_RemoveDuplicateLayersKeepsFirstOccurrence(t *testing.T) {
	path := writeLayersFile(t, `
- name: conv1
  n: 1
  k: 64
  c: 3
  x: 10
  y: 10
  r: 3
  s: 3
  stride: 1
- name: conv1_dup
  n: 1
  k: 64
  c: 3
  x: 10
  y: 10
  r: 3
  s: 3
  stride: 1
- name: conv2
  n: 1
  k: 128
  c: 64
  x: 5
  y: 5
  r: 3
  s: 3
  stride: 1
`)
	shapes, err := LoadShapes(path, false, true)
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	assert.Equal(t, "conv1", shapes[0].Name)
	assert.Equal(t, "conv2", shapes[1].Name)
}

func TestLoadShapes_EmptyFileErrors(t *testing.T) {
	path := writeLayersFile(t, `[]`)
	_, err := LoadShapes(path, false, false)
	assert.Error(t, err)
}

func TestLoadShapes_MissingFileErrors(t *testing.T) {
	_, err := LoadShapes("/nonexistent/path.yaml", false, false)
	assert.Error(t, err)
}
