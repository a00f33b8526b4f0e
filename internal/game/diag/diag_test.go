package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/stonesim/internal/game/diag"
)

func TestBuffer_AppendsInOrder(t *testing.T) {
	b := diag.NewBuffer()
	diag.Recordf(b, diag.Info, "TakeDamage", "%s took %d damage", "Yeti", 3)
	diag.Recordf(b, diag.Warning, "IsValidAttackTarget", "blocked")

	entries := b.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Yeti took 3 damage", entries[0].Text)
	assert.Equal(t, diag.Warning, entries[1].Level)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "[INFO] TakeDamage: Yeti took 3 damage\n[WARNING] IsValidAttackTarget: blocked\n", b.String())
}

func TestBuffer_EntriesIsSnapshot(t *testing.T) {
	b := diag.NewBuffer()
	diag.Recordf(b, diag.Info, "x", "one")
	snap := b.Entries()
	diag.Recordf(b, diag.Info, "x", "two")
	assert.Len(t, snap, 1)
	assert.Equal(t, 2, b.Len())
}

func TestRecordf_NilSinkIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		diag.Recordf(nil, diag.Info, "x", "y")
	})
}

func TestZapSink_MapsLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := diag.NewZapSink(zap.New(core))

	s.Record(diag.Entry{Level: diag.Debug, Location: "a", Text: "d"})
	s.Record(diag.Entry{Level: diag.Info, Location: "b", Text: "i"})
	s.Record(diag.Entry{Level: diag.Warning, Location: "c", Text: "w"})

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level, "info diagnostics stay at debug")
	assert.Equal(t, "INFO", entries[1].ContextMap()["diag_level"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "c", entries[2].ContextMap()["location"])
}

func TestZapSink_InfoHiddenAtInfoLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := diag.NewZapSink(zap.New(core))

	s.Record(diag.Entry{Level: diag.Info, Location: "TakeDamage", Text: "Yeti took 3 damage"})
	s.Record(diag.Entry{Level: diag.Warning, Location: "GainArmor", Text: "minion armor"})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "minion armor", logs.All()[0].Message)
}

func TestTee_FansOut(t *testing.T) {
	a, b := diag.NewBuffer(), diag.NewBuffer()
	tee := diag.Tee{a, nil, b, diag.Discard}
	diag.Recordf(tee, diag.Info, "x", "hello")
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", diag.Debug.String())
	assert.Equal(t, "UNKNOWN", diag.Level(9).String())
}
