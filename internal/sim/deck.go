// Package sim plays simulated matches between two decks by driving the combat
// rules, and runs many isolated matches concurrently.
package sim

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/stonesim/internal/game/card"
	"github.com/cory-johannsen/stonesim/internal/game/tag"
)

// ErrUnknownDeck is returned when a deck name is not defined.
var ErrUnknownDeck = errors.New("unknown deck")

// DeckDef is a deck as written in the decks file.
type DeckDef struct {
	Hero  string   `yaml:"hero"`
	Cards []string `yaml:"cards"`
}

// decksFile is the top-level layout of the decks file.
type decksFile struct {
	Decks map[string]DeckDef `yaml:"decks"`
}

// Deck is a deck whose hero and cards have been resolved against a registry.
type Deck struct {
	Name  string
	Hero  *card.Card
	Cards []*card.Card
}

// LoadDeckDefs reads the decks file at path.
//
// Postcondition: Returns a non-empty map of deck definitions or an error.
func LoadDeckDefs(path string) (map[string]DeckDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading decks file %q: %w", path, err)
	}
	var f decksFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing decks file %q: %w", path, err)
	}
	if len(f.Decks) == 0 {
		return nil, fmt.Errorf("decks file %q defines no decks", path)
	}
	return f.Decks, nil
}

// ResolveDeck looks up the named deck in defs and resolves its cards in reg.
//
// Postcondition: Returns ErrUnknownDeck for an undefined name; otherwise the
// deck's hero is a hero card and every deck card is a minion card.
func ResolveDeck(name string, defs map[string]DeckDef, reg *card.Registry) (Deck, error) {
	def, ok := defs[name]
	if !ok {
		return Deck{}, fmt.Errorf("%w: %q", ErrUnknownDeck, name)
	}
	hero, err := reg.Get(def.Hero)
	if err != nil {
		return Deck{}, fmt.Errorf("deck %q hero: %w", name, err)
	}
	if hero.CardType() != tag.TypeHero {
		return Deck{}, fmt.Errorf("deck %q hero %q is not a hero card", name, def.Hero)
	}
	d := Deck{Name: name, Hero: hero, Cards: make([]*card.Card, 0, len(def.Cards))}
	for _, id := range def.Cards {
		c, err := reg.Get(id)
		if err != nil {
			return Deck{}, fmt.Errorf("deck %q: %w", name, err)
		}
		if c.CardType() != tag.TypeMinion {
			return Deck{}, fmt.Errorf("deck %q card %q is not a minion card", name, id)
		}
		d.Cards = append(d.Cards, c)
	}
	return d, nil
}
