package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/directive"
	"github.com/bianoble/deck-profile/internal/paths"
)

// Expander turns a plan into one action per key, resolving pattern files
// and applying their missing-file policy.
type Expander struct {
	// Digest adds the SHA-256 of every image so the apply side can skip
	// keys whose image has not changed.
	Digest bool

	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger

	// HomeDir overrides home lookup for "~" in pattern results.
	HomeDir func() (string, error)
}

// Expand returns the actions for p in key order. A pattern file that is
// missing under the "error" policy fails the whole expansion.
func (e *Expander) Expand(ctx context.Context, p *Plan) ([]Action, error) {
	actions := make([]Action, 0, len(p.Keys))
	for _, kp := range p.Keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, err := e.expandKey(kp)
		if err != nil {
			return nil, err
		}
		if e.Digest && a.Kind == ActionImage {
			sum, err := hashFile(a.Path)
			if err != nil {
				return nil, fmt.Errorf("key %d: hashing %s: %w", kp.Index, a.Path, err)
			}
			a.SHA256 = sum
		}
		actions = append(actions, a)
	}

	s := Summarize(actions)
	e.logger().Debug("expanded plan",
		"keys", len(actions),
		"image", s.Image,
		"color", s.Color,
		"clear", s.Clear,
		"skip", s.Skip,
		"none", s.None)
	return actions, nil
}

func (e *Expander) expandKey(kp KeyPlan) (Action, error) {
	a := Action{Key: kp.Index, Selector: kp.Selector}

	switch d := kp.Directive.(type) {
	case nil:
		a.Kind = ActionNone
	case directive.Image:
		a.Kind = ActionImage
		a.Path = d.Path.Path
	case directive.Color:
		c := d.Value
		a.Kind = ActionColor
		a.Color = &c
	case directive.Clear:
		a.Kind = ActionClear
	case directive.Pattern:
		raw := d.Expand(kp.Index)
		r := &paths.Resolver{BaseDir: d.BaseDir, HomeDir: e.HomeDir}
		resolved, err := r.Resolve(raw)
		if err == nil {
			a.Kind = ActionImage
			a.Path = resolved.Path
			return a, nil
		}

		switch d.Missing {
		case directive.MissingSkip:
			a.Kind = ActionSkip
		case directive.MissingClear:
			a.Kind = ActionClear
		case directive.MissingError:
			return Action{}, &config.Error{
				Kind:     config.KindPathNotFound,
				Selector: kp.Selector,
				Field:    directive.FieldPattern,
				Value:    raw,
				Err:      err,
			}
		default:
			panic("engine: unhandled missing policy " + string(d.Missing))
		}
		a.Reason = fmt.Sprintf("no file for key %d (%s)", kp.Index, raw)
		e.logger().Debug("pattern file missing", "key", kp.Index, "path", raw, "policy", d.Missing)
	default:
		panic(fmt.Sprintf("engine: unhandled directive %T", kp.Directive))
	}
	return a, nil
}

func (e *Expander) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}
