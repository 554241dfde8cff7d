// Package engine resolves profiles against a device geometry and expands
// the result into per-key actions.
package engine

import (
	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/device"
	"github.com/bianoble/deck-profile/internal/directive"
	"github.com/bianoble/deck-profile/internal/selector"
)

// Candidate is an entry competing for a key.
type Candidate struct {
	Order    int // position of the entry in the document
	Priority selector.Priority
}

// Outranks reports whether a beats b: higher priority wins, and between
// equal priorities the entry declared later wins.
func Outranks(a, b Candidate) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Order > b.Order
}

// KeyPlan is the outcome for one key.
type KeyPlan struct {
	Index     int
	Entry     int    // winning entry position, -1 when nothing matched
	Selector  string // winning selector text
	Directive directive.Directive
	Shadowed  []string // other selectors that matched but lost
}

// Matched reports whether any entry claimed the key.
func (k KeyPlan) Matched() bool { return k.Directive != nil }

// Plan holds one KeyPlan per key, in key order.
type Plan struct {
	Geometry device.Geometry
	Keys     []KeyPlan

	// Unmatched lists selectors that match no key on this geometry, such
	// as a row beyond the last row.
	Unmatched []string
}

// Resolve computes the winning directive for every key of g. The document
// is not modified and equal inputs give equal plans.
func Resolve(doc *config.Document, g device.Geometry) *Plan {
	var entries []config.Entry
	if doc != nil {
		entries = doc.Entries
	}

	p := &Plan{Geometry: g}
	if g.KeyCount > 0 {
		p.Keys = make([]KeyPlan, 0, g.KeyCount)
	}
	hits := make([]bool, len(entries))

	for k := 0; k < g.KeyCount; k++ {
		kp := KeyPlan{Index: k, Entry: -1}
		var best Candidate
		var matched []int
		for i, e := range entries {
			if !e.Selector.Matches(k, g) {
				continue
			}
			hits[i] = true
			c := Candidate{Order: i, Priority: e.Selector.Priority()}
			if len(matched) == 0 || Outranks(c, best) {
				best = c
			}
			matched = append(matched, i)
		}

		if len(matched) > 0 {
			winner := entries[best.Order]
			kp.Entry = best.Order
			kp.Selector = winner.Raw
			kp.Directive = winner.Directive
			for _, i := range matched {
				if i != best.Order {
					kp.Shadowed = append(kp.Shadowed, entries[i].Raw)
				}
			}
		}
		p.Keys = append(p.Keys, kp)
	}

	for i, hit := range hits {
		if !hit {
			p.Unmatched = append(p.Unmatched, entries[i].Raw)
		}
	}
	return p
}

// Key returns the plan for key index k.
func (p *Plan) Key(k int) (KeyPlan, bool) {
	if k < 0 || k >= len(p.Keys) {
		return KeyPlan{}, false
	}
	return p.Keys[k], true
}

// Assigned counts keys with a directive.
func (p *Plan) Assigned() int {
	n := 0
	for _, k := range p.Keys {
		if k.Matched() {
			n++
		}
	}
	return n
}
