// Package selector parses key selectors and matches them against a device
// geometry.
//
// A selector names one or more keys:
//
//	"5"        a single key
//	"8-15"     an inclusive range
//	"row-1"    every key in a row
//	"col-0"    every key in a column
//	"default"  every key not claimed by something more specific
//
// Selectors carry no device state. Row and column selectors beyond the
// device bounds simply match nothing, so one document can target devices of
// different sizes.
package selector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bianoble/deck-profile/internal/device"
)

// maxIndex bounds every number in a selector.
const maxIndex = 255

// Priority ranks selector specificity. Higher values win.
type Priority int

const (
	PriorityDefault Priority = iota + 1
	PriorityLine             // row or column
	PriorityRange
	PrioritySingle
)

func (p Priority) String() string {
	switch p {
	case PrioritySingle:
		return "single"
	case PriorityRange:
		return "range"
	case PriorityLine:
		return "line"
	case PriorityDefault:
		return "default"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Selector is one of Single, Range, Row, Column or Default.
type Selector interface {
	// Priority returns the specificity used to break ties between matches.
	Priority() Priority
	// Matches reports whether key falls under the selector on geometry g.
	Matches(key int, g device.Geometry) bool
	// String renders the canonical selector text.
	String() string

	isSelector()
}

// Single selects one key by index.
type Single struct{ Index int }

// Range selects keys Start through End inclusive.
type Range struct{ Start, End int }

// Row selects every key of one row.
type Row struct{ Row int }

// Column selects every key of one column.
type Column struct{ Column int }

// Default selects every key.
type Default struct{}

func (Single) isSelector()  {}
func (Range) isSelector()   {}
func (Row) isSelector()     {}
func (Column) isSelector()  {}
func (Default) isSelector() {}

func (Single) Priority() Priority  { return PrioritySingle }
func (Range) Priority() Priority   { return PriorityRange }
func (Row) Priority() Priority     { return PriorityLine }
func (Column) Priority() Priority  { return PriorityLine }
func (Default) Priority() Priority { return PriorityDefault }

func (s Single) Matches(key int, _ device.Geometry) bool { return key == s.Index }
func (r Range) Matches(key int, _ device.Geometry) bool  { return r.Start <= key && key <= r.End }
func (Default) Matches(int, device.Geometry) bool         { return true }

func (r Row) Matches(key int, g device.Geometry) bool {
	if g.Cols <= 0 || key < 0 {
		return false
	}
	return key/g.Cols == r.Row
}

func (c Column) Matches(key int, g device.Geometry) bool {
	if g.Cols <= 0 || key < 0 {
		return false
	}
	return key%g.Cols == c.Column
}

func (s Single) String() string { return strconv.Itoa(s.Index) }
func (r Range) String() string  { return fmt.Sprintf("%d-%d", r.Start, r.End) }
func (r Row) String() string    { return fmt.Sprintf("row-%d", r.Row) }
func (c Column) String() string { return fmt.Sprintf("col-%d", c.Column) }
func (Default) String() string  { return "default" }

// ParseError reports selector text that matches no selector grammar.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid key selector '%s'", e.Text)
	}
	return fmt.Sprintf("invalid key selector '%s': %s", e.Text, e.Reason)
}

// Hint describes the accepted selector shapes.
func (e *ParseError) Hint() string {
	return `use a key index ("5"), a range ("8-15"), a row ("row-1"), a column ("col-0") or "default"`
}

// Parse parses selector text. The text is matched exactly: no whitespace
// trimming and no case folding.
func Parse(text string) (Selector, error) {
	if text == "default" {
		return Default{}, nil
	}

	if rest, ok := strings.CutPrefix(text, "row-"); ok {
		n, err := parseIndex(rest)
		if err != nil {
			return nil, &ParseError{Text: text, Reason: "row " + err.Error()}
		}
		return Row{Row: n}, nil
	}

	if rest, ok := strings.CutPrefix(text, "col-"); ok {
		n, err := parseIndex(rest)
		if err != nil {
			return nil, &ParseError{Text: text, Reason: "column " + err.Error()}
		}
		return Column{Column: n}, nil
	}

	if startText, endText, ok := strings.Cut(text, "-"); ok {
		if !isDigits(startText) || !isDigits(endText) {
			return nil, &ParseError{Text: text}
		}
		start, err := parseIndex(startText)
		if err != nil {
			return nil, &ParseError{Text: text, Reason: "range start " + err.Error()}
		}
		end, err := parseIndex(endText)
		if err != nil {
			return nil, &ParseError{Text: text, Reason: "range end " + err.Error()}
		}
		if start > end {
			return nil, &ParseError{Text: text, Reason: fmt.Sprintf("range start (%d) must be <= end (%d)", start, end)}
		}
		return Range{Start: start, End: end}, nil
	}

	if !isDigits(text) {
		return nil, &ParseError{Text: text}
	}
	n, err := parseIndex(text)
	if err != nil {
		return nil, &ParseError{Text: text, Reason: "key " + err.Error()}
	}
	return Single{Index: n}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level tables.
func MustParse(text string) Selector {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

func parseIndex(s string) (int, error) {
	if !isDigits(s) {
		return 0, fmt.Errorf("'%s' is not a non-negative integer", s)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n > maxIndex {
		return 0, fmt.Errorf("%s exceeds the maximum index %d", s, maxIndex)
	}
	return int(n), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Keys lists the keys of g matched by s, in ascending order.
func Keys(s Selector, g device.Geometry) []int {
	var keys []int
	for k := 0; k < g.KeyCount; k++ {
		if s.Matches(k, g) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Describe returns a short human label for s, such as "keys 8-15".
func Describe(s Selector) string {
	switch v := s.(type) {
	case Single:
		return fmt.Sprintf("key %d", v.Index)
	case Range:
		return fmt.Sprintf("keys %d-%d", v.Start, v.End)
	case Row:
		return fmt.Sprintf("row %d", v.Row)
	case Column:
		return fmt.Sprintf("column %d", v.Column)
	case Default:
		return "all other keys"
	default:
		panic(fmt.Sprintf("selector: unhandled variant %T", s))
	}
}
