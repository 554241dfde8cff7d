package engine

import "github.com/bianoble/deck-profile/internal/directive"

// ActionKind is what the apply side does to a key.
type ActionKind string

const (
	ActionImage ActionKind = "image"
	ActionColor ActionKind = "color"
	ActionClear ActionKind = "clear"
	ActionSkip  ActionKind = "skip" // leave the key as it is
	ActionNone  ActionKind = "none" // no entry matched
)

// Action is the concrete instruction for one key.
type Action struct {
	Key      int            `json:"key" yaml:"key"`
	Kind     ActionKind     `json:"action" yaml:"action"`
	Path     string         `json:"path,omitempty" yaml:"path,omitempty"`         // image file, for ActionImage
	Color    *directive.RGB `json:"color,omitempty" yaml:"color,omitempty"`       // for ActionColor
	SHA256   string         `json:"sha256,omitempty" yaml:"sha256,omitempty"`     // image digest, when requested
	Selector string         `json:"selector,omitempty" yaml:"selector,omitempty"` // winning selector, empty for ActionNone
	Reason   string         `json:"reason,omitempty" yaml:"reason,omitempty"`     // why a pattern key was skipped or cleared
}

// Summary counts actions by kind.
type Summary struct {
	Image int `json:"image" yaml:"image"`
	Color int `json:"color" yaml:"color"`
	Clear int `json:"clear" yaml:"clear"`
	Skip  int `json:"skip" yaml:"skip"`
	None  int `json:"none" yaml:"none"`
}

// Total is the number of keys summarized.
func (s Summary) Total() int {
	return s.Image + s.Color + s.Clear + s.Skip + s.None
}

// Summarize counts actions by kind.
func Summarize(actions []Action) Summary {
	var s Summary
	for _, a := range actions {
		switch a.Kind {
		case ActionImage:
			s.Image++
		case ActionColor:
			s.Color++
		case ActionClear:
			s.Clear++
		case ActionSkip:
			s.Skip++
		case ActionNone:
			s.None++
		default:
			panic("engine: unhandled action kind " + string(a.Kind))
		}
	}
	return s
}
