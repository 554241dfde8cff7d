package device

import "fmt"

// Geometry describes the key grid of a device. Keys are numbered left to
// right, top to bottom, starting at 0.
type Geometry struct {
	KeyCount int `json:"key_count" yaml:"key_count"`
	Rows     int `json:"rows" yaml:"rows"`
	Cols     int `json:"cols" yaml:"cols"`
}

// Grid returns a geometry with every cell of a rows x cols grid populated.
func Grid(rows, cols int) Geometry {
	return Geometry{KeyCount: rows * cols, Rows: rows, Cols: cols}
}

// Validate checks that the geometry describes a usable key grid.
func (g Geometry) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("invalid geometry %dx%d: rows and cols must be positive", g.Cols, g.Rows)
	}
	if g.KeyCount <= 0 {
		return fmt.Errorf("invalid geometry: key count %d must be positive", g.KeyCount)
	}
	if g.KeyCount > g.Rows*g.Cols {
		return fmt.Errorf("invalid geometry: %d keys do not fit a %dx%d grid", g.KeyCount, g.Cols, g.Rows)
	}
	return nil
}

// String renders the geometry as "<keys> keys (<cols>x<rows>)".
func (g Geometry) String() string {
	return fmt.Sprintf("%d keys (%dx%d)", g.KeyCount, g.Cols, g.Rows)
}
