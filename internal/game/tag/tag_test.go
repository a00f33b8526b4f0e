package tag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/stonesim/internal/game/tag"
)

func TestStore_AbsentTagReadsZero(t *testing.T) {
	s := tag.NewStore()
	assert.Equal(t, 0, s.Get(tag.Damage))
	assert.False(t, s.Flag(tag.Taunt))
}

func TestStore_SetZeroRemovesEntry(t *testing.T) {
	s := tag.NewStore()
	s.Set(tag.Armor, 4)
	require.Len(t, s, 1)
	s.Set(tag.Armor, 0)
	assert.Empty(t, s)
}

func TestStore_SetFlag(t *testing.T) {
	s := tag.NewStore()
	s.SetFlag(tag.Stealth, true)
	assert.Equal(t, 1, s.Get(tag.Stealth))
	s.SetFlag(tag.Stealth, false)
	assert.False(t, s.Flag(tag.Stealth))
}

func TestStore_CloneIsIndependent(t *testing.T) {
	s := tag.NewStore()
	s.Set(tag.Health, 30)
	c := s.Clone()
	c.Set(tag.Health, 1)
	assert.Equal(t, 30, s.Get(tag.Health))
	assert.Equal(t, 1, c.Get(tag.Health))
}

func TestStore_Property_AddAccumulates(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		deltas := rapid.SliceOf(rapid.IntRange(-50, 50)).Draw(rt, "deltas")
		s := tag.NewStore()
		want := 0
		for _, d := range deltas {
			want += d
			assert.Equal(rt, want, s.Add(tag.Armor, d))
		}
		assert.Equal(rt, want, s.Get(tag.Armor))
	})
}

func TestTag_String(t *testing.T) {
	assert.Equal(t, "DIVINE_SHIELD", tag.DivineShield.String())
	assert.Equal(t, "TAG(999)", tag.Tag(999).String())
}

func TestParseCardType(t *testing.T) {
	ct, err := tag.ParseCardType("Minion")
	require.NoError(t, err)
	assert.Equal(t, tag.TypeMinion, ct)

	_, err = tag.ParseCardType("spell")
	assert.Error(t, err)
}

func TestParseRace(t *testing.T) {
	r, err := tag.ParseRace("murloc")
	require.NoError(t, err)
	assert.Equal(t, tag.RaceMurloc, r)
	assert.Equal(t, "murloc", r.String())

	r, err = tag.ParseRace("")
	require.NoError(t, err)
	assert.Equal(t, tag.RaceInvalid, r)

	_, err = tag.ParseRace("goblin")
	assert.Error(t, err)
}

func TestKeywords_MapToBooleanTags(t *testing.T) {
	assert.Equal(t, tag.Taunt, tag.Keywords["taunt"])
	assert.Equal(t, tag.CantAttackHeroes, tag.Keywords["cant_attack_heroes"])
	_, ok := tag.Keywords["battlecry"]
	assert.False(t, ok)
}
