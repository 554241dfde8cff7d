package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/directive"
)

func TestInitCreatesProfile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "deck-profile.yaml")

	_, err := run(t, "init", outPath)
	require.NoError(t, err)

	doc, err := config.Load(outPath)
	require.NoError(t, err, "template must validate")
	assert.Equal(t, "My Profile", doc.Name)
	assert.Len(t, doc.Entries, 3)
}

func TestInitCreatesTOMLProfile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "deck-profile.toml")

	_, err := run(t, "init", outPath)
	require.NoError(t, err)

	doc, err := (&config.Loader{Strict: true}).Load(outPath)
	require.NoError(t, err, "template must validate")
	assert.Equal(t, []string{"0", "row-1", "default"}, []string{doc.Entries[0].Raw, doc.Entries[1].Raw, doc.Entries[2].Raw})
}

func TestInitDefaultPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, err := run(t, "init")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, defaultProfileName))
	assert.NoError(t, err)
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "deck-profile.yaml")
	require.NoError(t, os.WriteFile(outPath, []byte("existing"), 0644))

	_, err := run(t, "init", outPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestInitForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "deck-profile.yaml")
	require.NoError(t, os.WriteFile(outPath, []byte("old content"), 0644))

	_, err := run(t, "init", "--force", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotEqual(t, "old content", string(data))
}

func TestInitRejectsUnknownExtension(t *testing.T) {
	_, err := run(t, "init", filepath.Join(t.TempDir(), "profile.json"))
	assert.Equal(t, config.KindParse, config.KindOf(err))
}

func TestInitFromDir(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	writeFile(t, dir, "icons/key-0.png", "a")
	writeFile(t, dir, "icons/key-03.png", "b")
	writeFile(t, dir, "icons/key-9.png", "out of range on a mini")
	writeFile(t, dir, "icons/notes.txt", "")
	outPath := filepath.Join(dir, "deck-profile.yaml")

	_, err = run(t, "init", outPath,
		"--from-dir", filepath.Join(dir, "icons"),
		"--pattern", "key-{index}.png",
		"--model", "mini",
		"--name", "Scanned")
	require.NoError(t, err)

	doc, err := config.Load(outPath)
	require.NoError(t, err)
	assert.Equal(t, "Scanned", doc.Name)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "0", doc.Entries[0].Raw)
	assert.Equal(t, "3", doc.Entries[1].Raw)

	img, ok := doc.Entries[1].Directive.(directive.Image)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "icons", "key-03.png"), img.Path.Path)
	assert.Equal(t, "icons/key-03.png", img.Path.Raw)
}

func TestInitFromDirNoMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "icons/readme.txt", "")

	_, err := run(t, "init", filepath.Join(dir, "p.yaml"), "--from-dir", filepath.Join(dir, "icons"))
	assert.ErrorContains(t, err, "match pattern")
}
