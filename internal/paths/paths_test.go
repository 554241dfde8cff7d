package paths

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func realDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestResolveRelativeToBaseDir(t *testing.T) {
	base := realDir(t)
	touch(t, filepath.Join(base, "icons", "a.png"))

	r := NewResolver(base)
	for _, raw := range []string{"./icons/a.png", "icons/a.png", "icons/../icons/a.png"} {
		got, err := r.Resolve(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, filepath.Join(base, "icons", "a.png"), got.Path, raw)
		assert.Equal(t, raw, got.Raw)
		assert.Equal(t, base, got.BaseDir)
	}
}

func TestResolveHomeIgnoresBaseDir(t *testing.T) {
	home := realDir(t)
	base := realDir(t)
	touch(t, filepath.Join(home, "icons", "a.png"))
	touch(t, filepath.Join(base, "icons", "a.png"))

	r := &Resolver{BaseDir: base, HomeDir: func() (string, error) { return home, nil }}
	got, err := r.Resolve("~/icons/a.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "icons", "a.png"), got.Path)
}

func TestResolveHomeFromEnvironment(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME is not consulted on Windows")
	}
	home := realDir(t)
	t.Setenv("HOME", home)
	touch(t, filepath.Join(home, "a.png"))

	got, err := NewResolver("/nonexistent").Resolve("~/a.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "a.png"), got.Path)
}

func TestResolveAbsoluteUnchanged(t *testing.T) {
	dir := realDir(t)
	abs := filepath.Join(dir, "a.png")
	touch(t, abs)

	got, err := NewResolver(realDir(t)).Resolve(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got.Path)
}

func TestResolveMissing(t *testing.T) {
	base := realDir(t)
	_, err := NewResolver(base).Resolve("missing.png")
	require.Error(t, err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing.png", nf.Raw)
	assert.Equal(t, filepath.Join(base, "missing.png"), nf.Resolved)
	assert.Equal(t, base, nf.BaseDir)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.png")
	assert.Contains(t, nf.Hint(), ".webp")
}

func TestResolveDirectoryRejected(t *testing.T) {
	base := realDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(base, "icons"), 0755))

	_, err := NewResolver(base).Resolve("icons")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "is a directory", nf.Reason)

	home := &Resolver{BaseDir: base, HomeDir: func() (string, error) { return base, nil }}
	_, err = home.Resolve("~")
	require.True(t, errors.As(err, &nf))
}

func TestResolveEmpty(t *testing.T) {
	_, err := NewResolver(realDir(t)).Resolve("")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "path is empty", nf.Reason)
}

func TestResolveHomeLookupFailure(t *testing.T) {
	r := &Resolver{BaseDir: "/", HomeDir: func() (string, error) { return "", errors.New("no home") }}
	_, err := r.Resolve("~/a.png")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Contains(t, nf.Reason, "no home")
}

func TestTildeUserIsRelative(t *testing.T) {
	base := realDir(t)
	r := &Resolver{BaseDir: base, HomeDir: func() (string, error) { return "/home/someone", nil }}
	got, err := r.Expand("~bob/a.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "~bob", "a.png"), got)
}

func TestResolveUsesInjectedStat(t *testing.T) {
	var seen string
	r := &Resolver{
		BaseDir: "/profiles",
		Stat: func(p string) (fs.FileInfo, error) {
			seen = p
			return nil, fs.ErrNotExist
		},
	}
	_, err := r.Resolve("a.png")
	require.Error(t, err)
	assert.Equal(t, filepath.Join("/profiles", "a.png"), seen)
	assert.False(t, r.Exists("/profiles/a.png"))
}

func TestIsSupportedImage(t *testing.T) {
	assert.True(t, IsSupportedImage("a.png"))
	assert.True(t, IsSupportedImage("A.JPEG"))
	assert.True(t, IsSupportedImage("dir/x.webp"))
	assert.False(t, IsSupportedImage("a.svg"))
	assert.False(t, IsSupportedImage("png"))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "profile.yaml")

	require.NoError(t, WriteFileAtomic(path, []byte("one"), 0644))
	require.NoError(t, WriteFileAtomic(path, []byte("two"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}
