package combat_test

import (
	"github.com/cory-johannsen/stonesim/internal/game/card"
	"github.com/cory-johannsen/stonesim/internal/game/combat"
	"github.com/cory-johannsen/stonesim/internal/game/diag"
	"github.com/cory-johannsen/stonesim/internal/game/entity"
)

// fatalfer is satisfied by both *testing.T and *rapid.T.
type fatalfer interface {
	Fatalf(format string, args ...any)
}

// table is a two-controller board with a hero each and a shared diagnostic buffer.
type table struct {
	t      fatalfer
	rules  *combat.Rules
	log    *diag.Buffer
	me     *entity.Controller
	them   *entity.Controller
	nextID int
}

func newTable(t fatalfer) *table {
	tb := &table{
		t:    t,
		log:  diag.NewBuffer(),
		me:   entity.NewController("me"),
		them: entity.NewController("them"),
	}
	tb.rules = combat.NewRules(tb.log)
	entity.Pair(tb.me, tb.them)
	tb.me.SetHero(tb.hero(tb.me, 30))
	tb.them.SetHero(tb.hero(tb.them, 30))
	return tb
}

func (tb *table) id() int {
	tb.nextID++
	return tb.nextID
}

func (tb *table) hero(ctl *entity.Controller, health int) *entity.Hero {
	c := &card.Card{ID: "HERO", Name: "Hero-" + ctl.Name, Type: "hero", Health: health}
	if err := c.Validate(); err != nil {
		tb.t.Fatalf("hero card: %v", err)
	}
	h, err := entity.NewHero(tb.id(), c, ctl)
	if err != nil {
		tb.t.Fatalf("new hero: %v", err)
	}
	return h
}

// minion creates a minion for ctl and summons it ready to attack.
func (tb *table) minion(ctl *entity.Controller, name string, attack, health int, keywords ...string) *entity.Minion {
	c := &card.Card{ID: name, Name: name, Type: "minion", Attack: attack, Health: health, Keywords: keywords}
	if err := c.Validate(); err != nil {
		tb.t.Fatalf("minion card: %v", err)
	}
	m, err := entity.NewMinion(tb.id(), c, ctl)
	if err != nil {
		tb.t.Fatalf("new minion: %v", err)
	}
	if err := ctl.Summon(m); err != nil {
		tb.t.Fatalf("summon: %v", err)
	}
	m.SetExhausted(false)
	return m
}
