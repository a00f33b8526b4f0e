// Package card provides card template definitions loaded from YAML and the
// registry the match simulator instantiates entities from.
package card

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/stonesim/internal/game/dice"
	"github.com/cory-johannsen/stonesim/internal/game/tag"
	"github.com/cory-johannsen/stonesim/internal/scripting"
)

// ErrUnknownCard is returned when a registry lookup names an unregistered card.
var ErrUnknownCard = errors.New("unknown card")

// Power kinds a hero card may define.
const (
	PowerArmor = "armor"
	PowerHeal  = "heal"
	PowerPing  = "ping"
	// PowerScript runs the power's Lua on_power(amount) hook.
	PowerScript = "script"
)

// Power is a hero's once-per-turn ability.
type Power struct {
	Kind   string `yaml:"kind"`
	Amount string `yaml:"amount"`
	// Script is Lua source defining on_power(amount); only for PowerScript.
	Script string `yaml:"script"`
	// parsed is filled by Validate.
	parsed dice.Amount
}

// ParsedAmount returns the amount expression parsed during validation.
func (p *Power) ParsedAmount() dice.Amount { return p.parsed }

// Card is the static, read-only template a game entity is instantiated from.
type Card struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"` // "hero" | "minion"
	Cost     int      `yaml:"cost"`
	Attack   int      `yaml:"attack"`
	Health   int      `yaml:"health"`
	Race     string   `yaml:"race"`
	Keywords []string `yaml:"keywords"`
	Power    *Power   `yaml:"power"`

	tags tag.Store
}

// Validate checks the template's invariants and builds its tag set.
//
// Precondition: c must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Type is hero or minion,
// Health >= 1, Attack and Cost are >= 0, Race and every keyword are known, and a
// power (heroes only) has a known kind and a parseable amount.
func (c *Card) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("card: id must not be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("card %q: name must not be empty", c.ID)
	}
	ct, err := tag.ParseCardType(c.Type)
	if err != nil {
		return fmt.Errorf("card %q: %w", c.ID, err)
	}
	if c.Health < 1 {
		return fmt.Errorf("card %q: health must be >= 1", c.ID)
	}
	if c.Attack < 0 {
		return fmt.Errorf("card %q: attack must be >= 0", c.ID)
	}
	if c.Cost < 0 {
		return fmt.Errorf("card %q: cost must be >= 0", c.ID)
	}
	race, err := tag.ParseRace(c.Race)
	if err != nil {
		return fmt.Errorf("card %q: %w", c.ID, err)
	}

	tags := tag.NewStore()
	tags.Set(tag.CardType, int(ct))
	tags.Set(tag.Health, c.Health)
	tags.Set(tag.Attack, c.Attack)
	tags.Set(tag.Cost, c.Cost)
	tags.Set(tag.Race, int(race))
	for _, kw := range c.Keywords {
		t, ok := tag.Keywords[strings.ToLower(kw)]
		if !ok {
			return fmt.Errorf("card %q: unknown keyword %q", c.ID, kw)
		}
		tags.SetFlag(t, true)
	}

	if c.Power != nil {
		if ct != tag.TypeHero {
			return fmt.Errorf("card %q: only heroes may define a power", c.ID)
		}
		switch c.Power.Kind {
		case PowerArmor, PowerHeal, PowerPing:
			if c.Power.Script != "" {
				return fmt.Errorf("card %q: only script powers may define a script", c.ID)
			}
		case PowerScript:
			if strings.TrimSpace(c.Power.Script) == "" {
				return fmt.Errorf("card %q: script power needs a script", c.ID)
			}
			if err := scripting.Check(c.ID, c.Power.Script); err != nil {
				return fmt.Errorf("card %q: %w", c.ID, err)
			}
		default:
			return fmt.Errorf("card %q: unknown power kind %q", c.ID, c.Power.Kind)
		}
		amt, err := dice.ParseAmount(c.Power.Amount)
		if err != nil {
			return fmt.Errorf("card %q: power amount: %w", c.ID, err)
		}
		if amt.Min() < 0 {
			return fmt.Errorf("card %q: power amount %q can roll below zero", c.ID, c.Power.Amount)
		}
		c.Power.parsed = amt
	}

	c.tags = tags
	return nil
}

// CardType returns the parsed card type. Only meaningful after Validate.
func (c *Card) CardType() tag.CardTypeValue {
	return tag.CardTypeValue(c.tags.Get(tag.CardType))
}

// Tag returns the template's value for t. Only meaningful after Validate.
func (c *Card) Tag(t tag.Tag) int {
	return c.tags.Get(t)
}

// Tags returns a fresh copy of the template's tags for seeding an entity.
func (c *Card) Tags() tag.Store {
	return c.tags.Clone()
}

// LoadFromBytes parses and validates a single card from raw YAML bytes.
// Unknown fields are rejected.
func LoadFromBytes(data []byte) (*Card, error) {
	var c Card
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing card YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Registry holds all known cards keyed by ID.
type Registry struct {
	cards map[string]*Card
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{cards: make(map[string]*Card)}
}

// Register adds c, rejecting duplicate IDs.
//
// Precondition: c must have passed Validate.
func (r *Registry) Register(c *Card) error {
	if _, exists := r.cards[c.ID]; exists {
		return fmt.Errorf("card %q already registered", c.ID)
	}
	r.cards[c.ID] = c
	return nil
}

// Get returns the card for id, or ErrUnknownCard.
func (r *Registry) Get(id string) (*Card, error) {
	c, ok := r.cards[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, id)
	}
	return c, nil
}

// Len returns the number of registered cards.
func (r *Registry) Len() int { return len(r.cards) }

// IDs returns all registered IDs in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.cards))
	for id := range r.cards {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// LoadDirectory reads every *.yaml file in dir, parses each as a Card, and
// returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error on the first file that
// fails to read, parse, validate or register.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading card dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		c, err := LoadFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
	}
	return reg, nil
}
