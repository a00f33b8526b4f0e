package combat

import (
	"slices"

	"github.com/cory-johannsen/stonesim/internal/game/diag"
	"github.com/cory-johannsen/stonesim/internal/game/entity"
)

// ValidAttackTargets returns the characters attacker may legally attack.
//
// Stealthed minions are never targets. If any remaining opposing minion has
// taunt, only taunt minions are returned; otherwise every remaining opposing
// minion is returned followed by the opposing hero.
//
// Postcondition: Returns an empty slice when attacker has no opponent.
func (r *Rules) ValidAttackTargets(attacker entity.Character) []entity.Character {
	opp := attacker.Controller().Opponent()
	if opp == nil {
		return nil
	}

	var all, taunts []entity.Character
	for _, m := range opp.Board() {
		if m.HasStealth() {
			continue
		}
		all = append(all, m)
		if m.HasTaunt() {
			taunts = append(taunts, m)
		}
	}
	if len(taunts) > 0 {
		return taunts
	}
	if h := opp.Hero(); h != nil {
		all = append(all, h)
	}
	return all
}

// IsValidAttackTarget reports whether attacker may attack target. Each
// rejection is recorded.
func (r *Rules) IsValidAttackTarget(attacker, target entity.Character) bool {
	if !slices.Contains(r.ValidAttackTargets(attacker), target) {
		r.record(diag.Info, "IsValidAttackTarget",
			"%s is not a valid attack target for %s", describe(target), describe(attacker))
		return false
	}
	if _, isHero := target.(*entity.Hero); isHero && attacker.CantAttackHeroes() {
		r.record(diag.Info, "IsValidAttackTarget",
			"%s can't attack heroes, so %s is not a valid target", describe(attacker), describe(target))
		return false
	}
	return true
}

// CanAttack reports whether attacker is able to attack at all this turn.
func (r *Rules) CanAttack(attacker entity.Character) bool {
	return !attacker.CantAttack() &&
		!attacker.IsExhausted() &&
		!attacker.IsFrozen() &&
		len(r.ValidAttackTargets(attacker)) > 0
}
