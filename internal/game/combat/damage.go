package combat

import (
	"github.com/cory-johannsen/stonesim/internal/game/diag"
	"github.com/cory-johannsen/stonesim/internal/game/entity"
)

// TakeDamage runs amount through target's absorb chain and applies what is left.
//
// Order: a hero damaged by itself records amount as fatigue and carries on; a
// minion's divine shield is consumed and blocks everything; an immune minion
// blocks everything; a hero's armor absorbs first; the rest is added to
// accumulated damage. Negative amounts are treated as zero.
//
// Postcondition: Returns false iff the damage was fully blocked by divine
// shield or immunity, in which case armor and damage are unchanged.
func (r *Rules) TakeDamage(target, source entity.Character, amount int) bool {
	amount = max(amount, 0)

	switch t := target.(type) {
	case *entity.Hero:
		if source == target {
			t.SetFatigue(amount)
		}
	case *entity.Minion:
		if t.HasDivineShield() {
			t.SetDivineShield(false)
			r.record(diag.Info, "TakeDamage",
				"%s divine shield absorbed %d damage from %s", t, amount, describe(source))
			return false
		}
		if t.IsImmune() {
			r.record(diag.Info, "TakeDamage",
				"%s is immune, %d damage from %s blocked", t, amount, describe(source))
			return false
		}
	}

	if h, ok := target.(*entity.Hero); ok {
		amount = absorbWithArmor(h, amount)
	}

	target.SetDamage(target.Damage() + amount)
	r.record(diag.Info, "TakeDamage",
		"%s took %d damage from %s, health now %d", describe(target), amount, describe(source), target.Health())
	return true
}

// absorbWithArmor consumes h's armor against amount and returns what remains.
func absorbWithArmor(h *entity.Hero, amount int) int {
	armor := h.Armor()
	if armor <= 0 {
		return amount
	}
	if armor < amount {
		h.SetArmor(0)
		return amount - armor
	}
	h.SetArmor(armor - amount)
	return 0
}
