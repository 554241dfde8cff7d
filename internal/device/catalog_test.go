package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinModelLookup(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		want Geometry
	}{
		{"mini", Geometry{KeyCount: 6, Rows: 2, Cols: 3}},
		{"original", Geometry{KeyCount: 15, Rows: 3, Cols: 5}},
		{"mk2", Geometry{KeyCount: 15, Rows: 3, Cols: 5}},
		{"xl", Geometry{KeyCount: 32, Rows: 4, Cols: 8}},
		{"XL", Geometry{KeyCount: 32, Rows: 4, Cols: 8}},
		{"plus", Geometry{KeyCount: 8, Rows: 2, Cols: 4}},
		{"pedal", Geometry{KeyCount: 3, Rows: 1, Cols: 3}},
	}
	for _, tt := range tests {
		m, err := c.Lookup(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, m.Geometry, tt.name)
		assert.NoError(t, m.Validate(), tt.name)
	}
}

func TestLookupUnknownModel(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)

	_, err = c.Lookup("jumbo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown device model 'jumbo'")
	assert.Contains(t, err.Error(), "xl")
}

func TestCustomDefinition(t *testing.T) {
	c, err := NewCatalog([]Definition{
		{Name: "Wall", Rows: 6, Cols: 10},
		{Name: "xl", Rows: 4, Cols: 8, Keys: 30},
	})
	require.NoError(t, err)

	m, err := c.Lookup("wall")
	require.NoError(t, err)
	assert.Equal(t, Geometry{KeyCount: 60, Rows: 6, Cols: 10}, m.Geometry)
	assert.True(t, c.IsCustom("wall"))

	xl, err := c.Lookup("xl")
	require.NoError(t, err)
	assert.Equal(t, 30, xl.KeyCount)
	assert.True(t, c.IsCustom("xl"))
	assert.False(t, c.IsCustom("mini"))
	assert.False(t, c.IsCustom("nope"))
}

func TestCustomDefinitionInvalid(t *testing.T) {
	_, err := NewCatalog([]Definition{{Name: "", Rows: 1, Cols: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'name' is required")

	_, err = NewCatalog([]Definition{{Name: "tiny", Rows: 1, Cols: 2, Keys: 3}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not fit")
}

func TestNamesSorted(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)

	names := c.Names()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	assert.Len(t, c.Models(), len(names))
}

func TestGeometryValidate(t *testing.T) {
	assert.NoError(t, Grid(4, 8).Validate())
	assert.NoError(t, Geometry{KeyCount: 5, Rows: 2, Cols: 3}.Validate())
	assert.Error(t, Geometry{KeyCount: 0, Rows: 2, Cols: 3}.Validate())
	assert.Error(t, Geometry{KeyCount: 6, Rows: 0, Cols: 3}.Validate())
	assert.Error(t, Geometry{KeyCount: 7, Rows: 2, Cols: 3}.Validate())
	assert.Equal(t, "32 keys (8x4)", Grid(4, 8).String())
}
