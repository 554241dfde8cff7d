package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/device"
	"github.com/bianoble/deck-profile/internal/directive"
	"github.com/bianoble/deck-profile/internal/engine"
	"github.com/bianoble/deck-profile/internal/scan"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiGray   = "\033[90m"
	ansiBold   = "\033[1m"
)

func (w *Writer) paint(text, code string) string {
	if !w.Color {
		return text
	}
	return code + text + ansiReset
}

func (w *Writer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(w.Out, 0, 0, 2, ' ', 0)
}

//nolint:errcheck // best-effort terminal output, errors surface on Flush
func (w *Writer) humanDocument(doc *config.Document) error {
	title := doc.Name
	if title == "" {
		title = "(unnamed)"
	}
	fmt.Fprintf(w.Out, "Profile: %s\n", w.paint(title, ansiBold))
	if doc.Path != "" {
		fmt.Fprintf(w.Out, "File:       %s\n", doc.Path)
	}
	if doc.Device != "" {
		fmt.Fprintf(w.Out, "Device:     %s\n", doc.Device)
	}
	if doc.Brightness != nil {
		fmt.Fprintf(w.Out, "Brightness: %d%%\n", *doc.Brightness)
	}
	if len(doc.Entries) == 0 {
		fmt.Fprintln(w.Out, "No keys configured.")
		return nil
	}

	fmt.Fprintf(w.Out, "\nKeys (%d):\n", len(doc.Entries))
	tw := w.table()
	for _, e := range doc.Entries {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Raw, w.paint(e.Selector.Priority().String(), ansiGray), w.describe(e.Directive))
	}
	return tw.Flush()
}

//nolint:errcheck // best-effort terminal output, errors surface on Flush
func (w *Writer) humanPlan(p *engine.Plan) error {
	fmt.Fprintf(w.Out, "Device: %s, %d assigned\n\n", p.Geometry, p.Assigned())
	w.grid(p.Geometry, func(k int) string {
		kp := p.Keys[k]
		if !kp.Matched() {
			return w.paint(" . ", ansiGray)
		}
		return w.cell(kp.Directive)
	})
	fmt.Fprintln(w.Out)

	tw := w.table()
	for _, kp := range p.Keys {
		if !kp.Matched() {
			continue
		}
		line := fmt.Sprintf("  %d\t%s\t%s", kp.Index, kp.Selector, w.describe(kp.Directive))
		if len(kp.Shadowed) > 0 {
			line += w.paint(" (overrides "+strings.Join(kp.Shadowed, ", ")+")", ansiGray)
		}
		fmt.Fprintln(tw, line)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	w.unmatched(p.Unmatched)
	return nil
}

//nolint:errcheck // best-effort terminal output, errors surface on Flush
func (w *Writer) humanActions(p *engine.Plan, actions []engine.Action) error {
	tw := w.table()
	for _, a := range actions {
		var detail string
		switch a.Kind {
		case engine.ActionImage:
			detail = a.Path
			if a.SHA256 != "" {
				detail += w.paint(" sha256:"+a.SHA256[:12], ansiGray)
			}
		case engine.ActionColor:
			detail = w.swatch(*a.Color) + a.Color.Hex()
		case engine.ActionClear, engine.ActionSkip:
			detail = a.Reason
		case engine.ActionNone:
			detail = w.paint("unchanged", ansiGray)
		default:
			panic("report: unhandled action kind " + string(a.Kind))
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", a.Key, a.Kind, a.Selector, detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := engine.Summarize(actions)
	fmt.Fprintf(w.Out, "\n%d keys: %d image, %d color, %d clear, %d skip, %d unchanged\n",
		s.Total(), s.Image, s.Color, s.Clear, s.Skip, s.None)
	w.unmatched(p.Unmatched)
	return nil
}

//nolint:errcheck // best-effort terminal output, errors surface on Flush
func (w *Writer) humanModels(c *device.Catalog, models []device.Model) error {
	tw := w.table()
	fmt.Fprintln(tw, "MODEL\tNAME\tKEYS\tLAYOUT\tKEY SIZE\t")
	for _, m := range models {
		size := "-"
		if m.KeyWidth > 0 {
			size = fmt.Sprintf("%dx%d", m.KeyWidth, m.KeyHeight)
		}
		name := m.DisplayName
		if c.IsCustom(m.Name) {
			name += " (custom)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%dx%d\t%s\t\n", m.Name, name, m.KeyCount, m.Cols, m.Rows, size)
	}
	return tw.Flush()
}

//nolint:errcheck // best-effort terminal output, errors surface on Flush
func (w *Writer) humanScan(r *scan.Result) error {
	fmt.Fprintf(w.Out, "Scanned %s: %d matched, %d unmatched, %d invalid\n",
		r.Dir, len(r.Mappings), len(r.Unmatched), len(r.Invalid))
	tw := w.table()
	for _, m := range r.Mappings {
		fmt.Fprintf(tw, "  %d\t%s\t%d bytes\n", m.Key, m.Path, m.Size)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, inv := range r.Invalid {
		fmt.Fprintf(w.Out, "%s%s: %s\n", w.paint("warning: ", ansiYellow), inv.Path, inv.Reason)
	}
	return nil
}

//nolint:errcheck // best-effort terminal output
func (w *Writer) humanInfo(r *engine.InfoResult) error {
	fmt.Fprintf(w.Out, "deck-profile %s\n\n", r.Version)
	fmt.Fprintf(w.Out, "Settings: %s\n", orNone(r.SettingsPath))
	fmt.Fprintf(w.Out, "Schema:   %s\n\n", r.SchemaURL)

	fmt.Fprintln(w.Out, "Profile search order:")
	for _, p := range r.Profiles {
		mark := "  "
		if p.Active {
			mark = w.paint("* ", ansiGreen)
		}
		state := "not found"
		if p.Exists {
			state = "found"
		}
		fmt.Fprintf(w.Out, "  %s%-8s %s (%s)\n", mark, p.Level, p.Path, state)
	}

	custom := 0
	for _, m := range r.Models {
		if m.IsCustom {
			custom++
		}
	}
	fmt.Fprintf(w.Out, "\nDevice models: %d (%d custom)\n", len(r.Models), custom)
	return nil
}

//nolint:errcheck // best-effort terminal output
func (w *Writer) unmatched(selectors []string) {
	for _, s := range selectors {
		fmt.Fprintf(w.Out, "%sselector '%s' matches no key on this device\n", w.paint("warning: ", ansiYellow), s)
	}
}

// grid prints the key layout, one cell per key, each three columns wide.
//
//nolint:errcheck // best-effort terminal output
func (w *Writer) grid(g device.Geometry, cell func(k int) string) {
	if g.Cols <= 0 {
		return
	}
	for k := 0; k < g.KeyCount; k++ {
		io.WriteString(w.Out, cell(k))
		if (k+1)%g.Cols == 0 || k == g.KeyCount-1 {
			io.WriteString(w.Out, "\n")
		}
	}
}

// cell renders a directive as a three column grid cell.
func (w *Writer) cell(d directive.Directive) string {
	switch v := d.(type) {
	case directive.Image:
		return " I "
	case directive.Pattern:
		return " P "
	case directive.Color:
		if w.Color {
			return swatchCell(v.Value, " C ")
		}
		return " C "
	case directive.Clear:
		return " - "
	default:
		panic(fmt.Sprintf("report: unhandled directive %T", d))
	}
}

func (w *Writer) describe(d directive.Directive) string {
	if c, ok := d.(directive.Color); ok && w.Color {
		return w.swatch(c.Value) + directive.Describe(d)
	}
	return directive.Describe(d)
}

func (w *Writer) swatch(c directive.RGB) string {
	if !w.Color {
		return ""
	}
	return swatchCell(c, "  ") + " "
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
