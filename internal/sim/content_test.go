package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/stonesim/internal/game/card"
	"github.com/cory-johannsen/stonesim/internal/game/dice"
)

func TestShippedContent_AllDecksPlay(t *testing.T) {
	reg, err := card.LoadDirectory("../../content/cards")
	require.NoError(t, err)
	defs, err := LoadDeckDefs("../../content/decks.yaml")
	require.NoError(t, err)

	decks := make([]Deck, 0, len(defs))
	for name := range defs {
		d, err := ResolveDeck(name, defs, reg)
		require.NoError(t, err, name)
		decks = append(decks, d)
	}

	for i, a := range decks {
		for _, b := range decks {
			m, err := NewMatch(a, b, MatchOptions{
				MaxTurns: 60,
				Source:   dice.NewSeededSource(uint64(i + 1)),
				Logger:   zap.NewNop(),
			})
			require.NoError(t, err)
			res, err := m.Play(context.Background())
			require.NoError(t, err)
			assert.Greater(t, res.Turns, 0, "%s vs %s", a.Name, b.Name)
			assert.Greater(t, res.Diagnostics, 0, "%s vs %s", a.Name, b.Name)
		}
	}
}
