package entity

import (
	"fmt"

	"github.com/cory-johannsen/stonesim/internal/game/card"
	"github.com/cory-johannsen/stonesim/internal/game/tag"
)

// Kind distinguishes the two character variants.
type Kind int

const (
	KindHero Kind = iota
	KindMinion
)

// String returns a lower-case label for the kind.
func (k Kind) String() string {
	if k == KindHero {
		return "hero"
	}
	return "minion"
}

// Character is a hero or a minion. The set of implementations is closed:
// callers switch on the concrete type (*Hero or *Minion) to reach
// variant-specific state.
type Character interface {
	ID() int
	Name() string
	String() string
	Card() *card.Card
	Controller() *Controller
	Kind() Kind
	Zone() tag.ZoneValue
	Tag(t tag.Tag) int

	AttackDamage() int
	Damage() int
	SetDamage(v int)
	MaxHealth() int
	SetMaxHealth(v int)
	BaseHealth() int
	SetBaseHealth(v int)
	Health() int
	Armor() int
	SetArmor(v int)
	ToBeDestroyed() bool
	Destroy()
	IsDead() bool

	CantAttack() bool
	CantAttackHeroes() bool
	IsExhausted() bool
	SetExhausted(on bool)
	IsFrozen() bool
	SetFrozen(on bool)
	IsSilenced() bool
	HasWindfury() bool
	NumAttacksThisTurn() int
	SetNumAttacksThisTurn(v int)
	CantBeTargetedByOpponents() bool

	isCharacter()
}

// Hero is the controller's single hero entity. Only heroes consume armor
// during damage resolution and track fatigue.
type Hero struct {
	Entity
}

// NewHero instantiates a hero from c.
//
// Precondition: c must be a validated hero card; ctl must be non-nil.
// Postcondition: Damage() == 0, MaxHealth() == c.Health, Zone() == ZonePlay.
func NewHero(id int, c *card.Card, ctl *Controller) (*Hero, error) {
	if c.CardType() != tag.TypeHero {
		return nil, fmt.Errorf("card %q is a %s, not a hero", c.ID, c.CardType())
	}
	h := &Hero{Entity: newEntity(id, c, ctl)}
	h.setZone(tag.ZonePlay)
	return h, nil
}

func (h *Hero) isCharacter() {}

// Kind returns KindHero.
func (h *Hero) Kind() Kind { return KindHero }

// Fatigue returns the last fatigue damage recorded on the hero.
func (h *Hero) Fatigue() int { return h.tags.Get(tag.Fatigue) }

// SetFatigue writes the fatigue counter.
func (h *Hero) SetFatigue(v int) { h.tags.Set(tag.Fatigue, max(v, 0)) }

// Power returns the hero power defined on the hero card, or nil.
func (h *Hero) Power() *card.Power { return h.card.Power }

// HeroPowerUsed reports whether the power has been used this turn.
func (h *Hero) HeroPowerUsed() bool { return h.tags.Flag(tag.HeroPowerUsed) }

// SetHeroPowerUsed marks the power as used or available.
func (h *Hero) SetHeroPowerUsed(on bool) { h.tags.SetFlag(tag.HeroPowerUsed, on) }

// Minion is a board unit. Only minions carry taunt, stealth, divine shield
// and immunity.
type Minion struct {
	Entity
}

// NewMinion instantiates a minion from c. The minion is not on a board until
// its controller summons it.
//
// Precondition: c must be a validated minion card; ctl must be non-nil.
// Postcondition: Damage() == 0, MaxHealth() == c.Health.
func NewMinion(id int, c *card.Card, ctl *Controller) (*Minion, error) {
	if c.CardType() != tag.TypeMinion {
		return nil, fmt.Errorf("card %q is a %s, not a minion", c.ID, c.CardType())
	}
	m := &Minion{Entity: newEntity(id, c, ctl)}
	m.setZone(tag.ZoneSetAside)
	return m, nil
}

func (m *Minion) isCharacter() {}

// Kind returns KindMinion.
func (m *Minion) Kind() Kind { return KindMinion }

// Race returns the minion's race.
func (m *Minion) Race() tag.RaceValue { return tag.RaceValue(m.tags.Get(tag.Race)) }

func (m *Minion) HasTaunt() bool            { return m.tags.Flag(tag.Taunt) }
func (m *Minion) HasStealth() bool          { return m.tags.Flag(tag.Stealth) }
func (m *Minion) SetStealth(on bool)        { m.tags.SetFlag(tag.Stealth, on) }
func (m *Minion) HasDivineShield() bool     { return m.tags.Flag(tag.DivineShield) }
func (m *Minion) SetDivineShield(on bool)   { m.tags.SetFlag(tag.DivineShield, on) }
func (m *Minion) IsImmune() bool            { return m.tags.Flag(tag.Immune) }
func (m *Minion) SetImmune(on bool)         { m.tags.SetFlag(tag.Immune, on) }
func (m *Minion) HasCharge() bool           { return m.tags.Flag(tag.Charge) }
func (m *Minion) HasFreeze() bool           { return m.tags.Flag(tag.Freeze) }
func (m *Minion) IsJustPlayed() bool        { return m.tags.Flag(tag.JustPlayed) }
func (m *Minion) setJustPlayed(on bool)     { m.tags.SetFlag(tag.JustPlayed, on) }

// silencedTags are the keywords a silence removes.
var silencedTags = []tag.Tag{
	tag.Taunt, tag.DivineShield, tag.Stealth, tag.Windfury, tag.Frozen,
	tag.Immune, tag.Charge, tag.Freeze, tag.CantAttack, tag.CantAttackHeroes,
	tag.CantBeTargetedByOpponents,
}

// Silence removes the minion's keywords and marks it silenced. Damage, health
// and attack are untouched.
func (m *Minion) Silence() {
	for _, t := range silencedTags {
		m.tags.SetFlag(t, false)
	}
	m.tags.SetFlag(tag.Silenced, true)
}
