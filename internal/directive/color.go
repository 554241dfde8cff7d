package directive

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// namedColors is the fixed palette accepted by name.
var namedColors = map[string]RGB{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 255, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"pink":    {255, 192, 203},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
}

// ColorNames returns the accepted color names in a stable order.
func ColorNames() []string {
	return []string{"black", "white", "red", "green", "blue", "yellow", "cyan", "magenta", "orange", "purple", "pink", "gray", "grey"}
}

// Colorful converts c for color math.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex renders c as "#rrggbb".
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

func (c RGB) String() string { return c.Hex() }

// MarshalText renders c as hex so reports show "#rrggbb" rather than a
// byte triple.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// ParseColor accepts "#RRGGBB", "RRGGBB", a color name, or a three element
// array of integers in 0..255.
func ParseColor(value any) (RGB, error) {
	switch v := value.(type) {
	case string:
		return parseColorString(v)
	case []any:
		return parseColorArray(v)
	case []int:
		items := make([]any, len(v))
		for i, n := range v {
			items[i] = n
		}
		return parseColorArray(items)
	default:
		return RGB{}, fmt.Errorf("expected a hex string, a color name or [r, g, b], got %s", typeName(value))
	}
}

func parseColorString(s string) (RGB, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 || !isHex(digits) {
		return RGB{}, fmt.Errorf("expected #RRGGBB, RRGGBB or one of: %s", strings.Join(ColorNames(), ", "))
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return RGB{}, err
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func parseColorArray(items []any) (RGB, error) {
	if len(items) != 3 {
		return RGB{}, fmt.Errorf("color array must have exactly 3 elements, got %d", len(items))
	}
	var out [3]uint8
	for i, item := range items {
		n, ok := toInt(item)
		if !ok {
			return RGB{}, fmt.Errorf("color array element %d must be an integer, got %s", i, typeName(item))
		}
		if n < 0 || n > 255 {
			return RGB{}, fmt.Errorf("color array element %d is %d, must be in 0..255", i, n)
		}
		out[i] = uint8(n)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// toInt accepts the integer shapes produced by the YAML and TOML decoders.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	default:
		return 0, false
	}
}

// ToInt exposes the integer coercion used for directive values so
// top-level fields follow the same rules.
func ToInt(v any) (int64, bool) { return toInt(v) }

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int, int64, int32, uint64, uint8:
		return "an integer"
	case float64, float32:
		return "a float"
	case []any:
		return "an array"
	case map[string]any:
		return "a table"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// TypeName describes the shape of a decoded value for error messages.
func TypeName(v any) string { return typeName(v) }
