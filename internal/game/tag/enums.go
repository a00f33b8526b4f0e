package tag

import (
	"fmt"
	"strings"
)

// CardTypeValue is the value stored under the CardType tag.
type CardTypeValue int

const (
	TypeInvalid CardTypeValue = iota
	TypeHero
	TypeMinion
)

// String returns a lower-case label for the card type.
func (c CardTypeValue) String() string {
	switch c {
	case TypeHero:
		return "hero"
	case TypeMinion:
		return "minion"
	default:
		return "invalid"
	}
}

// ParseCardType maps a card definition label to a CardTypeValue.
//
// Postcondition: Returns TypeHero or TypeMinion, or an error for any other label.
func ParseCardType(s string) (CardTypeValue, error) {
	switch strings.ToLower(s) {
	case "hero":
		return TypeHero, nil
	case "minion":
		return TypeMinion, nil
	}
	return TypeInvalid, fmt.Errorf("unknown card type %q", s)
}

// RaceValue is the closed enumeration stored under the Race tag.
type RaceValue int

const (
	RaceInvalid RaceValue = iota
	RaceBeast
	RaceDemon
	RaceDragon
	RaceElemental
	RaceMech
	RaceMurloc
	RacePirate
	RaceTotem
	RaceAll
)

var raceNames = []string{
	RaceInvalid:   "none",
	RaceBeast:     "beast",
	RaceDemon:     "demon",
	RaceDragon:    "dragon",
	RaceElemental: "elemental",
	RaceMech:      "mech",
	RaceMurloc:    "murloc",
	RacePirate:    "pirate",
	RaceTotem:     "totem",
	RaceAll:       "all",
}

// String returns a lower-case label for the race.
func (r RaceValue) String() string {
	if r < 0 || int(r) >= len(raceNames) {
		return fmt.Sprintf("race(%d)", int(r))
	}
	return raceNames[r]
}

// ParseRace maps a card definition label to a RaceValue. The empty string is RaceInvalid.
func ParseRace(s string) (RaceValue, error) {
	if s == "" {
		return RaceInvalid, nil
	}
	for i, n := range raceNames {
		if strings.EqualFold(n, s) {
			return RaceValue(i), nil
		}
	}
	return RaceInvalid, fmt.Errorf("unknown race %q", s)
}

// ZoneValue is the value stored under the Zone tag.
type ZoneValue int

const (
	ZoneInvalid ZoneValue = iota
	ZonePlay
	ZoneDeck
	ZoneHand
	ZoneGraveyard
	ZoneSetAside
)

// String returns a lower-case label for the zone.
func (z ZoneValue) String() string {
	switch z {
	case ZonePlay:
		return "play"
	case ZoneDeck:
		return "deck"
	case ZoneHand:
		return "hand"
	case ZoneGraveyard:
		return "graveyard"
	case ZoneSetAside:
		return "setaside"
	default:
		return "invalid"
	}
}
