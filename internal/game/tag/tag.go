// Package tag defines the enumerated attribute keys carried by every game entity
// and the sparse store that backs them.
package tag

import "fmt"

// Tag is an enumerated attribute key.
type Tag int

const (
	Health Tag = iota + 1
	Damage
	Attack
	Armor
	Fatigue
	CardType
	Race
	Zone
	Cost
	Exhausted
	Frozen
	Silenced
	Taunt
	Windfury
	Stealth
	DivineShield
	Immune
	Charge
	Freeze
	CantAttack
	CantAttackHeroes
	CantBeTargetedByOpponents
	ToBeDestroyed
	NumAttacksThisTurn
	JustPlayed
	HeroPowerUsed
)

var tagNames = map[Tag]string{
	Health:                    "HEALTH",
	Damage:                    "DAMAGE",
	Attack:                    "ATK",
	Armor:                     "ARMOR",
	Fatigue:                   "FATIGUE",
	CardType:                  "CARDTYPE",
	Race:                      "CARDRACE",
	Zone:                      "ZONE",
	Cost:                      "COST",
	Exhausted:                 "EXHAUSTED",
	Frozen:                    "FROZEN",
	Silenced:                  "SILENCED",
	Taunt:                     "TAUNT",
	Windfury:                  "WINDFURY",
	Stealth:                   "STEALTH",
	DivineShield:              "DIVINE_SHIELD",
	Immune:                    "IMMUNE",
	Charge:                    "CHARGE",
	Freeze:                    "FREEZE",
	CantAttack:                "CANT_ATTACK",
	CantAttackHeroes:          "CANNOT_ATTACK_HEROES",
	CantBeTargetedByOpponents: "CANT_BE_TARGETED_BY_OPPONENTS",
	ToBeDestroyed:             "TO_BE_DESTROYED",
	NumAttacksThisTurn:        "NUM_ATTACKS_THIS_TURN",
	JustPlayed:                "JUST_PLAYED",
	HeroPowerUsed:             "HERO_POWER_USED",
}

// String returns the canonical upper-case name of the tag.
func (t Tag) String() string {
	if n, ok := tagNames[t]; ok {
		return n
	}
	return fmt.Sprintf("TAG(%d)", int(t))
}

// Keywords maps the lower-case keyword names used in card definitions to the
// boolean tags they set.
var Keywords = map[string]Tag{
	"taunt":                         Taunt,
	"windfury":                      Windfury,
	"stealth":                       Stealth,
	"divine_shield":                 DivineShield,
	"immune":                        Immune,
	"charge":                        Charge,
	"freeze":                        Freeze,
	"cant_attack":                   CantAttack,
	"cant_attack_heroes":            CantAttackHeroes,
	"cant_be_targeted_by_opponents": CantBeTargetedByOpponents,
}
