// Package entity implements battlefield entities: the attribute-backed state
// shared by heroes and minions, the invariants enforced at its write boundary,
// and the Controller that owns a hero, a board and a deck.
package entity

import (
	"fmt"

	"github.com/cory-johannsen/stonesim/internal/game/card"
	"github.com/cory-johannsen/stonesim/internal/game/tag"
)

// Entity is the state shared by every character. All derived properties are
// computed from the tag store; nothing is cached.
//
// Invariant: Damage() >= 0.
// Invariant: Health() == MaxHealth() - Damage().
// Invariant: once ToBeDestroyed() is true it stays true.
type Entity struct {
	id         int
	card       *card.Card
	controller *Controller
	tags       tag.Store
}

func newEntity(id int, c *card.Card, ctl *Controller) Entity {
	return Entity{id: id, card: c, controller: ctl, tags: c.Tags()}
}

// ID returns the match-unique entity ID.
func (e *Entity) ID() int { return e.id }

// Name returns the card name.
func (e *Entity) Name() string { return e.card.Name }

// Card returns the template the entity was instantiated from.
func (e *Entity) Card() *card.Card { return e.card }

// Controller returns the owning controller.
func (e *Entity) Controller() *Controller { return e.controller }

// String returns "Name[id]".
func (e *Entity) String() string { return fmt.Sprintf("%s[%d]", e.card.Name, e.id) }

// Tag returns the raw value of t.
func (e *Entity) Tag(t tag.Tag) int { return e.tags.Get(t) }

// Zone returns the zone the entity currently occupies.
func (e *Entity) Zone() tag.ZoneValue { return tag.ZoneValue(e.tags.Get(tag.Zone)) }

func (e *Entity) setZone(z tag.ZoneValue) { e.tags.Set(tag.Zone, int(z)) }

// AttackDamage returns the current attack value.
func (e *Entity) AttackDamage() int { return e.tags.Get(tag.Attack) }

// SetAttackDamage writes the attack value, flooring at zero.
func (e *Entity) SetAttackDamage(v int) { e.tags.Set(tag.Attack, max(v, 0)) }

// Damage returns the accumulated damage.
func (e *Entity) Damage() int { return e.tags.Get(tag.Damage) }

// SetDamage writes accumulated damage. Negative values clamp to zero. Writing a
// value that reaches MaxHealth latches ToBeDestroyed.
func (e *Entity) SetDamage(v int) {
	e.settle(max(v, 0), e.MaxHealth())
}

// MaxHealth returns the raw health attribute.
func (e *Entity) MaxHealth() int { return e.tags.Get(tag.Health) }

// SetMaxHealth writes the raw health attribute. Writing 0 (or less) is a health
// reset: Damage returns to 0 and ToBeDestroyed is latched.
func (e *Entity) SetMaxHealth(v int) {
	if v <= 0 {
		e.settle(0, 0)
		return
	}
	e.tags.Set(tag.Health, v)
}

// BaseHealth returns the template's default health.
func (e *Entity) BaseHealth() int { return e.card.Tag(tag.Health) }

// SetBaseHealth is an alias for SetMaxHealth; the template itself is never written.
func (e *Entity) SetBaseHealth(v int) { e.SetMaxHealth(v) }

// Health returns MaxHealth - Damage.
func (e *Entity) Health() int { return e.MaxHealth() - e.Damage() }

// settle is the single write path for the damage/health pair. It latches
// ToBeDestroyed whenever damage reaches health.
func (e *Entity) settle(damage, health int) {
	e.tags.Set(tag.Health, health)
	e.tags.Set(tag.Damage, damage)
	if damage >= health {
		e.tags.SetFlag(tag.ToBeDestroyed, true)
	}
}

// ToBeDestroyed reports whether the entity has been marked for removal.
func (e *Entity) ToBeDestroyed() bool { return e.tags.Flag(tag.ToBeDestroyed) }

// Destroy latches ToBeDestroyed without touching damage or health.
func (e *Entity) Destroy() { e.tags.SetFlag(tag.ToBeDestroyed, true) }

// IsDead reports Health() <= 0 || ToBeDestroyed().
func (e *Entity) IsDead() bool { return e.Health() <= 0 || e.ToBeDestroyed() }

// Armor returns the accumulated armor. Only heroes consume it.
func (e *Entity) Armor() int { return e.tags.Get(tag.Armor) }

// SetArmor writes armor, flooring at zero.
func (e *Entity) SetArmor(v int) { e.tags.Set(tag.Armor, max(v, 0)) }

func (e *Entity) CantAttack() bool        { return e.tags.Flag(tag.CantAttack) }
func (e *Entity) CantAttackHeroes() bool  { return e.tags.Flag(tag.CantAttackHeroes) }
func (e *Entity) IsExhausted() bool       { return e.tags.Flag(tag.Exhausted) }
func (e *Entity) SetExhausted(on bool)    { e.tags.SetFlag(tag.Exhausted, on) }
func (e *Entity) IsFrozen() bool          { return e.tags.Flag(tag.Frozen) }
func (e *Entity) SetFrozen(on bool)       { e.tags.SetFlag(tag.Frozen, on) }
func (e *Entity) IsSilenced() bool        { return e.tags.Flag(tag.Silenced) }
func (e *Entity) HasWindfury() bool       { return e.tags.Flag(tag.Windfury) }
func (e *Entity) NumAttacksThisTurn() int { return e.tags.Get(tag.NumAttacksThisTurn) }

// SetNumAttacksThisTurn writes the per-turn attack counter.
func (e *Entity) SetNumAttacksThisTurn(v int) { e.tags.Set(tag.NumAttacksThisTurn, max(v, 0)) }

// CantBeTargetedByOpponents reports whether opposing spells and powers may not target the entity.
func (e *Entity) CantBeTargetedByOpponents() bool {
	return e.tags.Flag(tag.CantBeTargetedByOpponents)
}
