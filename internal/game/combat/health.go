package combat

import (
	"github.com/cory-johannsen/stonesim/internal/game/diag"
	"github.com/cory-johannsen/stonesim/internal/game/entity"
)

// TakeHeal removes up to amount accumulated damage from target.
// Undamaged targets and non-positive amounts are left untouched and unrecorded.
//
// Postcondition: 0 <= Damage() <= the damage before the call.
func (r *Rules) TakeHeal(target, source entity.Character, amount int) {
	damage := target.Damage()
	if damage == 0 {
		return
	}
	applied := min(damage, amount)
	if applied <= 0 {
		return
	}
	target.SetDamage(damage - applied)
	r.record(diag.Info, "TakeHeal",
		"%s healed %s for %d, health now %d", describe(source), describe(target), applied, target.Health())
}

// TakeFullHeal removes all accumulated damage from target.
//
// Postcondition: Damage() == 0.
func (r *Rules) TakeFullHeal(target, source entity.Character) {
	r.TakeHeal(target, source, target.Damage())
}
