package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/stonesim/internal/game/dice"
)

// fixedSource always returns v (clamped to n-1).
type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func TestParseAmount_Flat(t *testing.T) {
	a, err := dice.ParseAmount("3")
	require.NoError(t, err)
	assert.Equal(t, 0, a.Count)
	assert.Equal(t, 3, a.Modifier)
	assert.Equal(t, 3, a.Roll(fixedSource{}))
}

func TestParseAmount_Dice(t *testing.T) {
	tests := []struct {
		expr           string
		count, sides   int
		modifier       int
		minVal, maxVal int
	}{
		{"d4", 1, 4, 0, 1, 4},
		{"2d3+1", 2, 3, 1, 3, 7},
		{"1D6-1", 1, 6, -1, 0, 5},
	}
	for _, tc := range tests {
		a, err := dice.ParseAmount(tc.expr)
		require.NoError(t, err, tc.expr)
		assert.Equal(t, tc.count, a.Count, tc.expr)
		assert.Equal(t, tc.sides, a.Sides, tc.expr)
		assert.Equal(t, tc.modifier, a.Modifier, tc.expr)
		assert.Equal(t, tc.minVal, a.Min(), tc.expr)
		assert.Equal(t, tc.maxVal, a.Max(), tc.expr)
		assert.Equal(t, tc.expr, a.String())
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, expr := range []string{"", "abc", "0d6", "d1", "2d", "d6+x"} {
		_, err := dice.ParseAmount(expr)
		assert.Error(t, err, "expr %q", expr)
	}
}

func TestMustParseAmount_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParseAmount("nope") })
}

func TestAmount_Property_RollWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 5).Draw(rt, "count")
		sides := rapid.IntRange(2, 10).Draw(rt, "sides")
		mod := rapid.IntRange(-3, 3).Draw(rt, "mod")
		seed := rapid.Uint64().Draw(rt, "seed")
		a := dice.Amount{Raw: "x", Count: count, Sides: sides, Modifier: mod}
		v := a.Roll(dice.NewSeededSource(seed))
		assert.GreaterOrEqual(rt, v, a.Min())
		assert.LessOrEqual(rt, v, a.Max())
	})
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for range 50 {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestSources_PanicOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(-1) })
}

func TestCryptoSource_Property_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 1000).Draw(rt, "n")
		v := src.Intn(n)
		assert.GreaterOrEqual(rt, v, 0)
		assert.Less(rt, v, n)
	})
}

func TestRoller_LogsRollsAndPicks(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(fixedSource{v: 1}, zap.New(core))

	assert.Equal(t, 3, r.Roll(dice.MustParseAmount("d4+1")))
	assert.Equal(t, 1, r.Pick("target", 3))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "amount roll", entries[0].Message)
	assert.Equal(t, "pick", entries[1].Message)
	assert.Equal(t, "target", entries[1].ContextMap()["purpose"])
}
