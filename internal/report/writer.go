package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/device"
	"github.com/bianoble/deck-profile/internal/directive"
	"github.com/bianoble/deck-profile/internal/engine"
	"github.com/bianoble/deck-profile/internal/scan"
)

// Writer renders results in one format.
type Writer struct {
	Out    io.Writer
	Format Format // FormatAuto is treated as FormatHuman
	Color  bool   // ANSI color in human output
}

// DocumentView is the machine form of a profile.
type DocumentView struct {
	Path       string      `json:"path,omitempty" yaml:"path,omitempty"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Device     string      `json:"device,omitempty" yaml:"device,omitempty"`
	Brightness *int        `json:"brightness,omitempty" yaml:"brightness,omitempty"`
	Keys       []EntryView `json:"keys" yaml:"keys"`
}

// EntryView is the machine form of one key entry.
type EntryView struct {
	Selector string `json:"selector" yaml:"selector"`
	Priority int    `json:"priority" yaml:"priority"`
	Kind     string `json:"kind" yaml:"kind"`
	Image    string `json:"image,omitempty" yaml:"image,omitempty"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Pattern  string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Missing  string `json:"missing,omitempty" yaml:"missing,omitempty"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
}

// PlanView is the machine form of a resolved plan.
type PlanView struct {
	Geometry  device.Geometry `json:"geometry" yaml:"geometry"`
	Assigned  int             `json:"assigned" yaml:"assigned"`
	Keys      []KeyView       `json:"keys" yaml:"keys"`
	Unmatched []string        `json:"unmatched_selectors,omitempty" yaml:"unmatched_selectors,omitempty"`
}

// KeyView is the machine form of one key of a plan.
type KeyView struct {
	Key      int        `json:"key" yaml:"key"`
	Selector string     `json:"selector,omitempty" yaml:"selector,omitempty"`
	Entry    *EntryView `json:"directive,omitempty" yaml:"directive,omitempty"`
	Shadowed []string   `json:"shadowed,omitempty" yaml:"shadowed,omitempty"`
}

// ActionsView is the machine form of an expanded plan.
type ActionsView struct {
	Geometry  device.Geometry `json:"geometry" yaml:"geometry"`
	Summary   engine.Summary  `json:"summary" yaml:"summary"`
	Actions   []engine.Action `json:"actions" yaml:"actions"`
	Unmatched []string        `json:"unmatched_selectors,omitempty" yaml:"unmatched_selectors,omitempty"`
}

// ErrorView is the machine form of a failure.
type ErrorView struct {
	Error       bool   `json:"error" yaml:"error"`
	Kind        string `json:"kind" yaml:"kind"`
	Message     string `json:"message" yaml:"message"`
	Suggestion  string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Recoverable bool   `json:"recoverable" yaml:"recoverable"`
}

// MessageView is the machine form of a status line.
type MessageView struct {
	Success bool   `json:"success,omitempty" yaml:"success,omitempty"`
	Warning bool   `json:"warning,omitempty" yaml:"warning,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// ModelView is the machine form of a device model.
type ModelView struct {
	device.Model `yaml:",inline"`
	Custom       bool `json:"custom" yaml:"custom"`
}

// NewDocumentView builds the machine form of doc.
func NewDocumentView(doc *config.Document) DocumentView {
	v := DocumentView{
		Path:       doc.Path,
		Name:       doc.Name,
		Device:     doc.Device,
		Brightness: doc.Brightness,
		Keys:       make([]EntryView, 0, len(doc.Entries)),
	}
	for _, e := range doc.Entries {
		v.Keys = append(v.Keys, newEntryView(e))
	}
	return v
}

func newEntryView(e config.Entry) EntryView {
	v := EntryView{Selector: e.Raw, Priority: int(e.Selector.Priority()), Kind: string(e.Directive.Kind())}
	switch d := e.Directive.(type) {
	case directive.Image:
		v.Image = d.Path.Path
		v.Label = d.Label
	case directive.Pattern:
		v.Pattern = d.Template
		v.Missing = string(d.Missing)
	case directive.Color:
		v.Color = d.Value.Hex()
	case directive.Clear:
	default:
		panic(fmt.Sprintf("report: unhandled directive %T", e.Directive))
	}
	return v
}

// NewPlanView builds the machine form of p. Entries are looked up in doc
// for their directive details.
func NewPlanView(doc *config.Document, p *engine.Plan) PlanView {
	v := PlanView{
		Geometry:  p.Geometry,
		Assigned:  p.Assigned(),
		Keys:      make([]KeyView, 0, len(p.Keys)),
		Unmatched: p.Unmatched,
	}
	for _, kp := range p.Keys {
		kv := KeyView{Key: kp.Index, Selector: kp.Selector, Shadowed: kp.Shadowed}
		if kp.Matched() && doc != nil && kp.Entry < len(doc.Entries) {
			ev := newEntryView(doc.Entries[kp.Entry])
			kv.Entry = &ev
		}
		v.Keys = append(v.Keys, kv)
	}
	return v
}

// NewErrorView builds the machine form of err.
func NewErrorView(err error) ErrorView {
	v := ErrorView{Error: true, Kind: "error", Message: err.Error()}
	var ce *config.Error
	if errors.As(err, &ce) {
		v.Kind = string(ce.Kind)
		v.Suggestion = ce.Suggestion()
		v.Recoverable = ce.Recoverable()
	}
	return v
}

// Document renders a validated profile.
func (w *Writer) Document(doc *config.Document) error {
	if w.machine() {
		return w.encode(NewDocumentView(doc))
	}
	return w.humanDocument(doc)
}

// Plan renders a resolved plan.
func (w *Writer) Plan(doc *config.Document, p *engine.Plan) error {
	if w.machine() {
		return w.encode(NewPlanView(doc, p))
	}
	return w.humanPlan(p)
}

// Actions renders an expanded plan.
func (w *Writer) Actions(p *engine.Plan, actions []engine.Action) error {
	if w.machine() {
		return w.encode(ActionsView{
			Geometry:  p.Geometry,
			Summary:   engine.Summarize(actions),
			Actions:   actions,
			Unmatched: p.Unmatched,
		})
	}
	return w.humanActions(p, actions)
}

// Models renders the device catalog.
func (w *Writer) Models(c *device.Catalog) error {
	models := c.Models()
	if w.machine() {
		views := make([]ModelView, len(models))
		for i, m := range models {
			views[i] = ModelView{Model: m, Custom: c.IsCustom(m.Name)}
		}
		return w.encode(views)
	}
	return w.humanModels(c, models)
}

// Scan renders a directory scan.
func (w *Writer) Scan(r *scan.Result) error {
	if w.machine() {
		return w.encode(r)
	}
	return w.humanScan(r)
}

// Info renders tool information.
func (w *Writer) Info(r *engine.InfoResult) error {
	if w.machine() {
		return w.encode(r)
	}
	return w.humanInfo(r)
}

// Success renders a completion message.
func (w *Writer) Success(msg string) error {
	if w.machine() {
		return w.encode(MessageView{Success: true, Message: msg})
	}
	_, err := fmt.Fprintln(w.Out, w.paint(msg, ansiGreen))
	return err
}

// Warning renders a warning message.
func (w *Writer) Warning(msg string) error {
	if w.machine() {
		return w.encode(MessageView{Warning: true, Message: msg})
	}
	_, err := fmt.Fprintln(w.Out, w.paint("warning: ", ansiYellow)+msg)
	return err
}

// Error renders err with its suggestion.
func (w *Writer) Error(err error) error {
	v := NewErrorView(err)
	if w.machine() {
		return w.encode(v)
	}
	if _, werr := fmt.Fprintf(w.Out, "%s%s\n", w.paint("error: ", ansiRed), v.Message); werr != nil {
		return werr
	}
	if v.Suggestion != "" {
		_, werr := fmt.Fprintf(w.Out, "  %s%s\n", w.paint("hint: ", ansiGray), v.Suggestion)
		return werr
	}
	return nil
}

func (w *Writer) machine() bool { return w.Format.Machine() }

func (w *Writer) encode(v any) error {
	switch w.Format {
	case FormatJSON:
		enc := json.NewEncoder(w.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatJSONCompact:
		return json.NewEncoder(w.Out).Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		panic("report: encode called for format " + string(w.Format))
	}
}
