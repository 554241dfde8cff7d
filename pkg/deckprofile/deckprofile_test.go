package deckprofile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProfile writes a small profile with one image and returns its path.
func writeProfile(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "icons"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "icons", "0.png"), []byte("png"), 0644))
	path := filepath.Join(dir, "deck-profile.yaml")
	content := `name: Test
keys:
  0-2:
    pattern: icons/{index}.png
    missing: clear
  default:
    color: gray
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewWithModel(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir)

	client, err := New(Options{ProfilePath: path, Model: "mini"})
	require.NoError(t, err)
	assert.Equal(t, "Test", client.Document().Name)
	assert.Equal(t, 6, client.Geometry().KeyCount)

	plan := client.Plan()
	assert.Equal(t, 6, plan.Assigned())

	actions, err := client.Expand(context.Background())
	require.NoError(t, err)
	require.Len(t, actions, 6)
	assert.Equal(t, ActionKind("image"), actions[0].Kind)
	assert.Equal(t, ActionKind("clear"), actions[1].Kind)
	assert.Equal(t, ActionKind("color"), actions[3].Kind)
}

func TestNewDefaultModel(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir)

	client, err := New(Options{ProfilePath: path})
	require.NoError(t, err)
	assert.Equal(t, 32, client.Geometry().KeyCount)
}

func TestNewDiscoversProfile(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir)

	client, err := New(Options{Dir: dir, Geometry: &Geometry{KeyCount: 4, Rows: 2, Cols: 2}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "deck-profile.yaml"), client.Document().Path)
}

func TestNewCustomModel(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir)

	client, err := New(Options{
		ProfilePath:  path,
		Model:        "strip",
		CustomModels: []ModelDefinition{{Name: "strip", Rows: 1, Cols: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, client.Geometry().KeyCount)
}

func TestNewErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir)

	_, err := New(Options{ProfilePath: path, Model: "nope"})
	assert.ErrorContains(t, err, "unknown device model 'nope'")

	_, err = New(Options{ProfilePath: path, Geometry: &Geometry{KeyCount: 9, Rows: 2, Cols: 2}})
	assert.ErrorContains(t, err, "do not fit")

	_, err = New(Options{ProfilePath: filepath.Join(dir, "missing.yaml")})
	var pe *Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, KindNotFound, pe.Kind)
}

func TestPackageFunctions(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir)

	doc, err := Load(path)
	require.NoError(t, err)

	m, err := Model("original")
	require.NoError(t, err)

	plan := Resolve(doc, m.Geometry)
	actions, err := Expand(context.Background(), plan)
	require.NoError(t, err)
	assert.Len(t, actions, 15)

	_, err = Parse([]byte("keys:\n  row-x:\n    clear: true\n"), FormatYAML, dir)
	var pe *Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, KindInvalidSelector, pe.Kind)
}
