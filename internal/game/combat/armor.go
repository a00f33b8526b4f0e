package combat

import (
	"github.com/cory-johannsen/stonesim/internal/game/diag"
	"github.com/cory-johannsen/stonesim/internal/game/entity"
)

// GainArmor adds amount to target's armor. Any character may hold armor, but
// only heroes consume it in TakeDamage; armor granted to a minion is inert and
// recorded at warning level.
func (r *Rules) GainArmor(target, source entity.Character, amount int) {
	target.SetArmor(target.Armor() + amount)
	if _, ok := target.(*entity.Minion); ok {
		r.record(diag.Warning, "GainArmor",
			"%s gave %d armor to minion %s, armor is only consumed by heroes", describe(source), amount, describe(target))
		return
	}
	r.record(diag.Info, "GainArmor",
		"%s gained %d armor from %s, armor now %d", describe(target), amount, describe(source), target.Armor())
}
