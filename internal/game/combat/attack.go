package combat

import (
	"github.com/cory-johannsen/stonesim/internal/game/diag"
	"github.com/cory-johannsen/stonesim/internal/game/entity"
)

// AttacksPerTurn returns how many attacks c may make in one turn.
func AttacksPerTurn(c entity.Character) int {
	if c.HasWindfury() {
		return 2
	}
	return 1
}

// Attack resolves one attack exchange between attacker and defender.
//
// The attacker loses stealth, deals its attack to the defender, and takes the
// defender's attack back when the defender is a minion. A freezing minion
// freezes any character it damages. The attacker's attack counter increases
// and it is exhausted once it reaches AttacksPerTurn.
//
// Postcondition: Returns false, with state unchanged, if the attacker cannot
// attack or the defender is not a valid target.
func (r *Rules) Attack(attacker, defender entity.Character) bool {
	if !r.CanAttack(attacker) {
		r.record(diag.Info, "Attack", "%s can't attack", describe(attacker))
		return false
	}
	if !r.IsValidAttackTarget(attacker, defender) {
		return false
	}

	r.record(diag.Info, "Attack", "%s attacks %s", attacker, defender)

	if m, ok := attacker.(*entity.Minion); ok {
		m.SetStealth(false)
	}

	r.strike(attacker, defender)
	if _, ok := defender.(*entity.Minion); ok {
		r.strike(defender, attacker)
	}

	n := attacker.NumAttacksThisTurn() + 1
	attacker.SetNumAttacksThisTurn(n)
	if n >= AttacksPerTurn(attacker) {
		attacker.SetExhausted(true)
	}
	return true
}

// strike deals from's attack to to, freezing to when from is a freezing minion.
func (r *Rules) strike(from, to entity.Character) {
	atk := from.AttackDamage()
	if atk <= 0 {
		return
	}
	if !r.TakeDamage(to, from, atk) {
		return
	}
	if m, ok := from.(*entity.Minion); ok && m.HasFreeze() {
		to.SetFrozen(true)
		r.record(diag.Info, "Attack", "%s froze %s", from, to)
	}
}
