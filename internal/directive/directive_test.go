package directive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bianoble/deck-profile/internal/paths"
)

func resolverWithFile(t *testing.T, name string) *paths.Resolver {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	if name != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("png"), 0644))
	}
	return paths.NewResolver(dir)
}

func fieldError(t *testing.T, err error) *FieldError {
	t.Helper()
	require.Error(t, err)
	var fe *FieldError
	require.True(t, errors.As(err, &fe), "expected *FieldError, got %T: %v", err, err)
	return fe
}

func TestImage(t *testing.T) {
	r := resolverWithFile(t, "a.png")

	d, err := FromFields(map[string]any{"image": "a.png", "label": "Mute"}, r)
	require.NoError(t, err)

	img, ok := d.(Image)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(r.BaseDir, "a.png"), img.Path.Path)
	assert.Equal(t, "Mute", img.Label)
	assert.Equal(t, KindImage, d.Kind())
}

func TestImageInvalid(t *testing.T) {
	r := resolverWithFile(t, "a.png")

	fe := fieldError(t, func() error { _, err := FromFields(map[string]any{"image": ""}, r); return err }())
	assert.Equal(t, "image", fe.Field)

	fe = fieldError(t, func() error { _, err := FromFields(map[string]any{"image": 5}, r); return err }())
	assert.Contains(t, fe.Reason, "must be a string")

	fe = fieldError(t, func() error { _, err := FromFields(map[string]any{"image": "a.png", "label": 3}, r); return err }())
	assert.Equal(t, "label", fe.Field)

	_, err := FromFields(map[string]any{"image": "missing.png"}, r)
	var nf *paths.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing.png", nf.Raw)
}

func TestPattern(t *testing.T) {
	r := resolverWithFile(t, "")

	d, err := FromFields(map[string]any{"pattern": "./row2/{index}.png", "missing": "skip"}, r)
	require.NoError(t, err)
	p := d.(Pattern)
	assert.Equal(t, MissingSkip, p.Missing)
	assert.Equal(t, r.BaseDir, p.BaseDir)
	assert.Equal(t, "./row2/12.png", p.Expand(12))

	d, err = FromFields(map[string]any{"pattern": "{index}/{index}.png"}, r)
	require.NoError(t, err)
	assert.Equal(t, MissingError, d.(Pattern).Missing)
	assert.Equal(t, "3/3.png", d.(Pattern).Expand(3))
}

func TestPatternInvalid(t *testing.T) {
	r := resolverWithFile(t, "")

	fe := fieldError(t, func() error { _, err := FromFields(map[string]any{"pattern": "icons/{idx}.png"}, r); return err }())
	assert.Equal(t, "pattern", fe.Field)
	assert.Contains(t, fe.Error(), "icons/{idx}.png")

	fe = fieldError(t, func() error {
		_, err := FromFields(map[string]any{"pattern": "{index}.png", "missing": "ignore"}, r)
		return err
	}())
	assert.Equal(t, "missing", fe.Field)
	assert.Contains(t, fe.Error(), `"ignore"`)

	fe = fieldError(t, func() error {
		_, err := FromFields(map[string]any{"pattern": "{index}.png", "missing": true}, r)
		return err
	}())
	assert.Equal(t, "missing", fe.Field)
}

func TestColorEquivalence(t *testing.T) {
	want := RGB{R: 255, G: 85, B: 0}
	for _, v := range []any{"#FF5500", "FF5500", "#ff5500", "ff5500", []any{255, 85, 0}, []any{int64(255), int64(85), int64(0)}} {
		d, err := FromFields(map[string]any{"color": v}, nil)
		require.NoError(t, err, "%v", v)
		assert.Equal(t, Color{Value: want}, d, "%v", v)
	}
}

func TestNamedColors(t *testing.T) {
	for _, name := range ColorNames() {
		_, err := ParseColor(name)
		require.NoError(t, err, name)
	}
	c, err := ParseColor("Orange")
	require.NoError(t, err)
	assert.Equal(t, RGB{255, 165, 0}, c)

	gray, _ := ParseColor("gray")
	grey, _ := ParseColor("GREY")
	assert.Equal(t, gray, grey)
}

func TestColorInvalid(t *testing.T) {
	for _, v := range []any{"not-a-color", "#FF55", "#GG5500", "#FF5500AA", "FF550Z", "", []any{1, 2}, []any{1, 2, 256}, []any{1, 2, -1}, []any{1.5, 2, 3}, []any{"1", 2, 3}, 7, true, nil} {
		_, err := FromFields(map[string]any{"color": v}, nil)
		fe := fieldError(t, err)
		assert.Equal(t, "color", fe.Field, "%v", v)
	}

	_, err := FromFields(map[string]any{"color": "not-a-color"}, nil)
	assert.Contains(t, err.Error(), `"not-a-color"`)
}

func TestRGBHex(t *testing.T) {
	assert.Equal(t, "#ff5500", RGB{255, 85, 0}.Hex())
	assert.Equal(t, "#000000", RGB{}.String())

	text, err := RGB{1, 2, 3}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#010203", string(text))
}

func TestClear(t *testing.T) {
	d, err := FromFields(map[string]any{"clear": true}, nil)
	require.NoError(t, err)
	assert.Equal(t, Clear{}, d)

	fe := fieldError(t, func() error { _, err := FromFields(map[string]any{"clear": false}, nil); return err }())
	assert.Equal(t, "clear", fe.Field)

	fe = fieldError(t, func() error { _, err := FromFields(map[string]any{"clear": "yes"}, nil); return err }())
	assert.Contains(t, fe.Reason, "a string")
}

func TestExactlyOneDirective(t *testing.T) {
	fe := fieldError(t, func() error { _, err := FromFields(map[string]any{"label": "x"}, nil); return err }())
	assert.Contains(t, fe.Reason, "is required")

	fe = fieldError(t, func() error {
		_, err := FromFields(map[string]any{"color": "red", "clear": true}, nil)
		return err
	}())
	assert.Contains(t, fe.Reason, "color, clear")
}

func TestUnknownFieldsIgnored(t *testing.T) {
	d, err := FromFields(map[string]any{"color": "red", "brightness": 50, "action": "mute"}, nil)
	require.NoError(t, err)
	assert.Equal(t, Color{Value: RGB{255, 0, 0}}, d)
}

func TestParseMissingPolicy(t *testing.T) {
	for _, s := range []string{"error", "skip", "clear"} {
		p, err := ParseMissingPolicy(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(p))
	}
	_, err := ParseMissingPolicy("Skip")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "color #ff0000", Describe(Color{Value: RGB{255, 0, 0}}))
	assert.Equal(t, "clear", Describe(Clear{}))
	assert.Equal(t, "pattern {index}.png (missing: skip)", Describe(Pattern{Template: "{index}.png", Missing: MissingSkip}))
	assert.Equal(t, "image /a.png", Describe(Image{Path: paths.Resolved{Path: "/a.png"}}))
}
