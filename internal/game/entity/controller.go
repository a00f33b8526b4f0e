package entity

import (
	"errors"

	"github.com/cory-johannsen/stonesim/internal/game/card"
	"github.com/cory-johannsen/stonesim/internal/game/tag"
)

// MaxBoardSize is the number of minions a controller may have in play.
const MaxBoardSize = 7

// ErrBoardFull is returned when summoning onto a full board.
var ErrBoardFull = errors.New("board is full")

// Controller owns a hero, an ordered board of minions, a deck and a graveyard.
// It is not safe for concurrent use; each simulated match owns its controllers.
type Controller struct {
	Name string

	hero      *Hero
	board     []*Minion
	graveyard []Character
	deck      []*card.Card
	opponent  *Controller
}

// NewController creates an empty controller.
func NewController(name string) *Controller {
	return &Controller{Name: name}
}

// Pair makes a and b each other's opponent.
func Pair(a, b *Controller) {
	a.opponent = b
	b.opponent = a
}

// Opponent returns the opposing controller, or nil before Pair.
func (c *Controller) Opponent() *Controller { return c.opponent }

// Hero returns the controller's hero.
func (c *Controller) Hero() *Hero { return c.hero }

// SetHero installs h as the controller's hero.
func (c *Controller) SetHero(h *Hero) { c.hero = h }

// Board returns the minions in play in board order. The returned slice is a copy.
func (c *Controller) Board() []*Minion {
	out := make([]*Minion, len(c.board))
	copy(out, c.board)
	return out
}

// Characters returns the hero (if any) followed by the board.
func (c *Controller) Characters() []Character {
	out := make([]Character, 0, len(c.board)+1)
	if c.hero != nil {
		out = append(out, c.hero)
	}
	for _, m := range c.board {
		out = append(out, m)
	}
	return out
}

// Graveyard returns the characters removed from play, oldest first.
func (c *Controller) Graveyard() []Character {
	out := make([]Character, len(c.graveyard))
	copy(out, c.graveyard)
	return out
}

// Summon places m at the right end of the board. A minion without charge is
// exhausted until its controller's next turn.
//
// Postcondition: Returns ErrBoardFull when the board already holds MaxBoardSize minions.
func (c *Controller) Summon(m *Minion) error {
	if len(c.board) >= MaxBoardSize {
		return ErrBoardFull
	}
	m.setZone(tag.ZonePlay)
	m.setJustPlayed(true)
	m.SetExhausted(!m.HasCharge())
	c.board = append(c.board, m)
	return nil
}

// Sweep moves every dead minion from the board to the graveyard, preserving
// the order of the survivors.
//
// Postcondition: no minion left on the board reports IsDead.
func (c *Controller) Sweep() []*Minion {
	var removed []*Minion
	kept := c.board[:0]
	for _, m := range c.board {
		if m.IsDead() {
			m.setZone(tag.ZoneGraveyard)
			c.graveyard = append(c.graveyard, m)
			removed = append(removed, m)
			continue
		}
		kept = append(kept, m)
	}
	clear(c.board[len(kept):])
	c.board = kept
	return removed
}

// SetDeck replaces the deck. The first element is drawn first.
func (c *Controller) SetDeck(cards []*card.Card) {
	c.deck = append([]*card.Card(nil), cards...)
}

// DeckSize returns the number of cards left in the deck.
func (c *Controller) DeckSize() int { return len(c.deck) }

// Draw removes and returns the top card of the deck, or false when it is empty.
func (c *Controller) Draw() (*card.Card, bool) {
	if len(c.deck) == 0 {
		return nil, false
	}
	top := c.deck[0]
	c.deck = c.deck[1:]
	return top, true
}

// StartTurn readies the controller's characters: attack counters reset,
// exhaustion clears and summoning sickness ends. The hero power becomes
// available again.
func (c *Controller) StartTurn() {
	for _, ch := range c.Characters() {
		ch.SetNumAttacksThisTurn(0)
		ch.SetExhausted(false)
	}
	for _, m := range c.board {
		m.setJustPlayed(false)
	}
	if c.hero != nil {
		c.hero.SetHeroPowerUsed(false)
	}
}

// EndTurn thaws the controller's frozen characters that did not attack this
// turn. A character frozen while attacking stays frozen through its next turn.
func (c *Controller) EndTurn() {
	for _, ch := range c.Characters() {
		if ch.NumAttacksThisTurn() == 0 {
			ch.SetFrozen(false)
		}
	}
}
