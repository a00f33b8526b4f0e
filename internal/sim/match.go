package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/stonesim/internal/game/card"
	"github.com/cory-johannsen/stonesim/internal/game/combat"
	"github.com/cory-johannsen/stonesim/internal/game/diag"
	"github.com/cory-johannsen/stonesim/internal/game/dice"
	"github.com/cory-johannsen/stonesim/internal/game/entity"
	"github.com/cory-johannsen/stonesim/internal/observability"
	"github.com/cory-johannsen/stonesim/internal/scripting"
)

// Match is one isolated two-player game. A Match owns every entity, its
// diagnostic log and its rules; nothing is shared with other matches.
type Match struct {
	ID       string
	players  [2]*entity.Controller
	decks    [2]string
	rules    *combat.Rules
	log      *diag.Buffer
	roller   *dice.Roller
	logger   *zap.Logger
	maxTurns int
	turn     int
	nextID   int
	// scripts is nil unless a hero has a script power.
	scripts *scripting.Manager
	// caster is the player whose script power is running.
	caster *entity.Controller
}

// MatchOptions configures NewMatch.
type MatchOptions struct {
	MaxTurns int
	Source   dice.Source
	Logger   *zap.Logger
	// MirrorDiagnostics also sends every diagnostic entry to Logger.
	MirrorDiagnostics bool
	// ScriptLimit caps Lua opcodes per script power call (0 = scripting default).
	ScriptLimit int
}

// NewMatch builds a match between decks a and b. Each deck is shuffled with
// opts.Source.
//
// Precondition: opts.MaxTurns >= 1; opts.Source and opts.Logger must be non-nil.
// Postcondition: Both controllers have a hero in play and a shuffled deck.
func NewMatch(a, b Deck, opts MatchOptions) (*Match, error) {
	m := &Match{
		ID:       uuid.NewString(),
		decks:    [2]string{a.Name, b.Name},
		log:      diag.NewBuffer(),
		maxTurns: opts.MaxTurns,
	}
	m.logger = observability.MatchLogger(opts.Logger, m.ID, a.Name, b.Name)
	m.roller = dice.NewLoggedRoller(opts.Source, m.logger)

	var sink diag.Sink = m.log
	if opts.MirrorDiagnostics {
		sink = diag.Tee{m.log, diag.NewZapSink(m.logger)}
	}
	m.rules = combat.NewRules(sink)

	for i, d := range []Deck{a, b} {
		ctl := entity.NewController(d.Name)
		hero, err := entity.NewHero(m.allocID(), d.Hero, ctl)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", d.Name, err)
		}
		ctl.SetHero(hero)
		ctl.SetDeck(m.shuffle(d.Cards))
		m.players[i] = ctl

		if p := d.Hero.Power; p != nil && p.Kind == card.PowerScript {
			if err := m.loadScript(d.Hero.ID, p.Script, opts.ScriptLimit); err != nil {
				return nil, fmt.Errorf("deck %q: %w", d.Name, err)
			}
		}
	}
	entity.Pair(m.players[0], m.players[1])
	return m, nil
}

func (m *Match) loadScript(key, src string, limit int) error {
	if m.scripts == nil {
		m.scripts = scripting.NewManager(m.roller, m.logger, limit)
		m.scripts.Characters = m.scriptCharacters
		m.scripts.ApplyDamage = m.scriptEffect(func(t, src entity.Character, n int) { m.rules.TakeDamage(t, src, n) })
		m.scripts.ApplyHeal = m.scriptEffect(func(t, src entity.Character, n int) { m.rules.TakeHeal(t, src, n) })
		m.scripts.GainArmor = m.scriptEffect(func(t, src entity.Character, n int) { m.rules.GainArmor(t, src, n) })
	}
	if m.scripts.Loaded(key) {
		return nil
	}
	return m.scripts.Load(key, src)
}

func (m *Match) allocID() int {
	m.nextID++
	return m.nextID
}

func (m *Match) shuffle(cards []*card.Card) []*card.Card {
	out := append([]*card.Card(nil), cards...)
	for i := len(out) - 1; i > 0; i-- {
		j := m.roller.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Players returns both controllers, first player first.
func (m *Match) Players() [2]*entity.Controller { return m.players }

// Log returns the match's diagnostic log.
func (m *Match) Log() *diag.Buffer { return m.log }

// Play runs turns until a hero dies, MaxTurns is reached or ctx is cancelled.
//
// Postcondition: Returns a Result, or ctx.Err() if cancelled between turns.
func (m *Match) Play(ctx context.Context) (Result, error) {
	start := time.Now()
	if m.scripts != nil {
		defer m.scripts.Close()
	}
	for m.turn < m.maxTurns && !m.over() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		m.playTurn(m.players[m.turn%2])
		m.turn++
	}

	res := Result{
		MatchID:     m.ID,
		Decks:       m.decks,
		Winner:      m.winner(),
		Turns:       m.turn,
		Diagnostics: m.log.Len(),
		StartedAt:   start,
		Duration:    time.Since(start),
	}
	for i, p := range m.players {
		res.HeroHealth[i] = p.Hero().Health()
		res.HeroArmor[i] = p.Hero().Armor()
	}
	m.logger.Debug("match finished",
		zap.Int("turns", res.Turns),
		zap.String("winner", res.WinnerName()),
		zap.Int("diagnostics", res.Diagnostics),
	)
	return res, nil
}

func (m *Match) over() bool {
	return m.players[0].Hero().IsDead() || m.players[1].Hero().IsDead()
}

func (m *Match) winner() int {
	dead0, dead1 := m.players[0].Hero().IsDead(), m.players[1].Hero().IsDead()
	switch {
	case dead0 && !dead1:
		return 1
	case dead1 && !dead0:
		return 0
	default:
		return Draw
	}
}

func (m *Match) playTurn(p *entity.Controller) {
	p.StartTurn()
	m.draw(p)
	if !m.over() {
		m.useHeroPower(p)
	}
	if !m.over() {
		m.attackWithBoard(p)
	}
	p.EndTurn()
}

// draw summons the top card of p's deck, or deals increasing fatigue damage
// to p's hero when the deck is empty.
func (m *Match) draw(p *entity.Controller) {
	c, ok := p.Draw()
	if !ok {
		hero := p.Hero()
		m.rules.TakeDamage(hero, hero, hero.Fatigue()+1)
		return
	}
	minion, err := entity.NewMinion(m.allocID(), c, p)
	if err != nil {
		// decks are resolved to minion cards before a match is built
		m.logger.Error("instantiating minion", zap.Error(err))
		return
	}
	if err := p.Summon(minion); err != nil {
		diag.Recordf(m.log, diag.Info, "Summon", "%s could not summon %s: %v", p.Name, minion, err)
	}
}

func (m *Match) useHeroPower(p *entity.Controller) {
	hero := p.Hero()
	power := hero.Power()
	if power == nil || hero.HeroPowerUsed() {
		return
	}
	amount := m.roller.Roll(power.ParsedAmount())

	switch power.Kind {
	case card.PowerArmor:
		m.rules.GainArmor(hero, hero, amount)
	case card.PowerHeal:
		m.rules.TakeHeal(hero, hero, amount)
	case card.PowerPing:
		targets := m.pingTargets(p)
		if len(targets) == 0 {
			return
		}
		m.rules.TakeDamage(targets[m.roller.Pick("ping", len(targets))], hero, amount)
		m.sweep()
	case card.PowerScript:
		m.caster = p
		m.scripts.CallHook(hero.Card().ID, "on_power", lua.LNumber(amount)) //nolint:errcheck
		m.caster = nil
		m.sweep()
	}
	hero.SetHeroPowerUsed(true)
}

// pingTargets returns the opposing characters a hero power may target.
func (m *Match) pingTargets(p *entity.Controller) []entity.Character {
	var out []entity.Character
	for _, c := range p.Opponent().Characters() {
		if !hiddenFromOpponents(c) {
			out = append(out, c)
		}
	}
	return out
}

// hiddenFromOpponents reports whether the opposing player's powers may not
// pick c as a target.
func hiddenFromOpponents(c entity.Character) bool {
	if c.CantBeTargetedByOpponents() {
		return true
	}
	mn, ok := c.(*entity.Minion)
	return ok && mn.HasStealth()
}

// scriptCharacters lists every living character as seen by the caster.
func (m *Match) scriptCharacters() []scripting.CharacterInfo {
	var out []scripting.CharacterInfo
	for _, p := range m.players {
		friendly := p == m.caster
		for _, c := range p.Characters() {
			if c.IsDead() {
				continue
			}
			out = append(out, scripting.CharacterInfo{
				ID:         c.ID(),
				Name:       c.Name(),
				Kind:       c.Kind().String(),
				Friendly:   friendly,
				Targetable: friendly || !hiddenFromOpponents(c),
				Attack:     c.AttackDamage(),
				Health:     c.Health(),
				MaxHealth:  c.MaxHealth(),
				Armor:      c.Armor(),
			})
		}
	}
	return out
}

// scriptEffect adapts a rules call to a script callback that resolves the
// target by entity ID and uses the caster's hero as source. Enemy characters
// hidden from opponents are refused.
func (m *Match) scriptEffect(apply func(target, source entity.Character, amount int)) func(id, amount int) error {
	return func(id, amount int) error {
		if m.caster == nil {
			return fmt.Errorf("no script power is running")
		}
		target := m.character(id)
		if target == nil {
			return fmt.Errorf("no living character with id %d", id)
		}
		if target.Controller() != m.caster && hiddenFromOpponents(target) {
			return fmt.Errorf("character %d is not targetable", id)
		}
		apply(target, m.caster.Hero(), amount)
		return nil
	}
}

// character finds a living character in play by entity ID.
func (m *Match) character(id int) entity.Character {
	for _, p := range m.players {
		for _, c := range p.Characters() {
			if c.ID() == id && !c.IsDead() {
				return c
			}
		}
	}
	return nil
}

// attackWithBoard lets each of p's minions attack random valid targets until
// it can no longer attack.
func (m *Match) attackWithBoard(p *entity.Controller) {
	for _, attacker := range p.Board() {
		for !attacker.IsDead() && attacker.AttackDamage() > 0 && m.rules.CanAttack(attacker) {
			targets := m.attackTargets(attacker)
			if len(targets) == 0 {
				break
			}
			target := targets[m.roller.Pick("attack", len(targets))]
			if !m.rules.Attack(attacker, target) {
				break
			}
			m.sweep()
			if m.over() {
				return
			}
		}
	}
}

// attackTargets narrows the valid targets to those attacker is allowed to hit.
func (m *Match) attackTargets(attacker entity.Character) []entity.Character {
	targets := m.rules.ValidAttackTargets(attacker)
	if !attacker.CantAttackHeroes() {
		return targets
	}
	out := targets[:0]
	for _, t := range targets {
		if _, isHero := t.(*entity.Hero); !isHero {
			out = append(out, t)
		}
	}
	return out
}

// sweep removes dead minions from both boards, as the zone engine does after
// every combat step.
func (m *Match) sweep() {
	for _, p := range m.players {
		for _, dead := range p.Sweep() {
			diag.Recordf(m.log, diag.Info, "Sweep", "%s died", dead)
		}
	}
}
