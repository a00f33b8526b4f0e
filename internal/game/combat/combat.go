// Package combat implements the combat and life-state rules for battlefield
// characters: attack targeting, the damage absorb chain, healing and armor.
//
// Rules never return errors. Every blocked or invalid action is reported as a
// false return plus one diagnostic entry on the sink the Rules were built with.
// Rules mutate entity state in place and are not safe for concurrent use; each
// simulated match builds its own Rules around its own sink.
package combat

import (
	"github.com/cory-johannsen/stonesim/internal/game/diag"
	"github.com/cory-johannsen/stonesim/internal/game/entity"
)

// Rules applies combat rules and records its decisions to a diagnostic sink.
type Rules struct {
	sink diag.Sink
}

// NewRules creates Rules that record to sink. A nil sink discards diagnostics.
//
// Postcondition: Returns a non-nil Rules.
func NewRules(sink diag.Sink) *Rules {
	if sink == nil {
		sink = diag.Discard
	}
	return &Rules{sink: sink}
}

// IsDead reports whether c should be removed by the zone engine.
func (r *Rules) IsDead(c entity.Character) bool {
	return c.IsDead()
}

func (r *Rules) record(level diag.Level, location, format string, args ...any) {
	diag.Recordf(r.sink, level, location, format, args...)
}

func describe(c entity.Character) string {
	if c == nil {
		return "<none>"
	}
	return c.String()
}
