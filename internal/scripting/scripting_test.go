package scripting_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/stonesim/internal/game/dice"
	"github.com/cory-johannsen/stonesim/internal/scripting"
)

func newTestManager(t testing.TB, limit int) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := dice.NewLoggedRoller(dice.NewSeededSource(42), logger)
	mgr := scripting.NewManager(roller, logger, limit)
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func hasLevel(logs *observer.ObservedLogs, level zapcore.Level) bool {
	for _, e := range logs.All() {
		if e.Level == level {
			return true
		}
	}
	return false
}

// --- Sandbox ---

func TestNewSandboxedState_UnsafeLibsNil(t *testing.T) {
	L := scripting.NewSandboxedState()
	defer L.Close()
	for _, name := range []string{"os", "io", "debug", "dofile", "loadfile", "load", "collectgarbage", "require"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "expected %s to be nil", name)
	}
}

func TestNewSandboxedState_SafeLibsAvailable(t *testing.T) {
	L := scripting.NewSandboxedState()
	defer L.Close()
	assert.NoError(t, L.DoString(`
		assert(math.max(1, 2) == 2, "math.max failed")
		assert(string.upper("hi") == "HI", "string.upper failed")
		local t = {}
		table.insert(t, 1)
		assert(#t == 1, "table.insert failed")
	`))
}

func TestCheck(t *testing.T) {
	assert.NoError(t, scripting.Check("ok", `function on_power(amount) return amount end`))
	assert.Error(t, scripting.Check("bad", `function on_power(`))
}

// --- Manager ---

func TestManager_LoadAndCallHook(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	require.NoError(t, mgr.Load("add", `function add(a, b) return a + b end`))
	assert.True(t, mgr.Loaded("add"))

	ret, err := mgr.CallHook("add", "add", lua.LNumber(3), lua.LNumber(4))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(7), ret)
}

func TestManager_Load_InvalidLua(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	assert.Error(t, mgr.Load("bad", `this is not lua @@@`))
	assert.False(t, mgr.Loaded("bad"))
}

func TestManager_Load_ReplacesVM(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	require.NoError(t, mgr.Load("k", `function v() return 1 end`))
	require.NoError(t, mgr.Load("k", `function v() return 2 end`))
	ret, err := mgr.CallHook("k", "v")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(2), ret)
}

func TestManager_CallHook_MissingHookAndScript(t *testing.T) {
	mgr, logs := newTestManager(t, 0)
	require.NoError(t, mgr.Load("k", `-- nothing`))

	ret, err := mgr.CallHook("k", "missing")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)

	ret, err = mgr.CallHook("unknown", "missing")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zap.InfoLevel))
}

func TestManager_CallHook_RuntimeErrorLogsWarn(t *testing.T) {
	mgr, logs := newTestManager(t, 0)
	require.NoError(t, mgr.Load("k", `function boom() error("intentional") end`))
	ret, err := mgr.CallHook("k", "boom")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zap.WarnLevel))
}

func TestManager_InstructionBudgetIsPerCall(t *testing.T) {
	mgr, logs := newTestManager(t, 1000)
	require.NoError(t, mgr.Load("k", `
		function spin() while true do end end
		function small() local x = 0 for i = 1, 10 do x = x + i end return x end
	`))

	ret, err := mgr.CallHook("k", "spin")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zap.WarnLevel))

	for range 5 {
		ret, err = mgr.CallHook("k", "small")
		require.NoError(t, err)
		assert.Equal(t, lua.LNumber(55), ret)
	}
}

func TestManager_Load_InfiniteTopLevelFails(t *testing.T) {
	mgr, _ := newTestManager(t, 100)
	assert.Error(t, mgr.Load("k", `while true do end`))
}

func TestManager_Close(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	require.NoError(t, mgr.Load("k", `function v() return 1 end`))
	mgr.Close()
	assert.False(t, mgr.Loaded("k"))
	ret, err := mgr.CallHook("k", "v")
	assert.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_ConcurrentCalls(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	require.NoError(t, mgr.Load("k", `function add(a, b) return a + b end`))

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 5 {
				ret, err := mgr.CallHook("k", "add", lua.LNumber(1), lua.LNumber(2))
				assert.NoError(t, err)
				assert.Equal(t, lua.LNumber(3), ret)
			}
		})
	}
	wg.Wait()
}

func TestNewManager_PanicsOnNil(t *testing.T) {
	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), zap.NewNop())
	assert.Panics(t, func() { scripting.NewManager(nil, zap.NewNop(), 0) })
	assert.Panics(t, func() { scripting.NewManager(roller, nil, 0) })
}

// --- engine.* modules ---

func TestEngineLog_AllLevels(t *testing.T) {
	mgr, logs := newTestManager(t, 0)
	require.NoError(t, mgr.Load("k", `
		function logs()
			engine.log.debug("d")
			engine.log.info("i")
			engine.log.warn("w")
			engine.log.error("e")
		end
	`))
	_, err := mgr.CallHook("k", "logs")
	require.NoError(t, err)

	for _, msg := range []string{"d", "i", "w", "e"} {
		assert.Equal(t, 1, logs.FilterMessage(msg).Len(), msg)
	}
}

func TestEngineDice_RollAndPick(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	require.NoError(t, mgr.Load("k", `
		function roll(expr)
			local r = engine.dice.roll(expr)
			assert(r.total == r.dice + r.modifier, "total mismatch")
			return r.total
		end
		function pick(n) return engine.dice.pick(n) end
	`))

	ret, err := mgr.CallHook("k", "roll", lua.LString("2d3+1"))
	require.NoError(t, err)
	n, ok := ret.(lua.LNumber)
	require.True(t, ok)
	assert.GreaterOrEqual(t, int(n), 3)
	assert.LessOrEqual(t, int(n), 7)

	ret, err = mgr.CallHook("k", "roll", lua.LString("nonsense"))
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret, "bad expression raises a Lua error")

	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(1, 10).Draw(rt, "n")
		ret, err := mgr.CallHook("k", "pick", lua.LNumber(size))
		if err != nil {
			rt.Fatalf("pick: %v", err)
		}
		i := int(ret.(lua.LNumber))
		if i < 1 || i > size {
			rt.Fatalf("pick(%d) = %d, want [1, %d]", size, i, size)
		}
	})
}

func TestEngineBoard_Callbacks(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	type call struct {
		kind       string
		id, amount int
	}
	var calls []call
	mgr.Characters = func() []scripting.CharacterInfo {
		return []scripting.CharacterInfo{
			{ID: 1, Name: "Malfurion", Kind: "hero", Friendly: true, Health: 30, MaxHealth: 30},
			{ID: 2, Name: "Jaina", Kind: "hero", Targetable: true, Health: 30, MaxHealth: 30},
			{ID: 3, Name: "Worgen", Kind: "minion", Attack: 2, Health: 1, MaxHealth: 1},
		}
	}
	mgr.ApplyDamage = func(id, amount int) error { calls = append(calls, call{"damage", id, amount}); return nil }
	mgr.ApplyHeal = func(id, amount int) error { calls = append(calls, call{"heal", id, amount}); return nil }
	mgr.GainArmor = func(id, amount int) error { calls = append(calls, call{"armor", id, amount}); return nil }

	require.NoError(t, mgr.Load("k", `
		function on_power(amount)
			local hit = 0
			for _, c in ipairs(engine.board.characters()) do
				if c.friendly then
					engine.board.armor(c.id, amount)
					engine.board.heal(c.id, amount)
				elseif c.targetable then
					engine.board.damage(c.id, amount)
					hit = hit + 1
				end
			end
			return hit
		end
	`))

	ret, err := mgr.CallHook("k", "on_power", lua.LNumber(2))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(1), ret)
	assert.Equal(t, []call{{"armor", 1, 2}, {"heal", 1, 2}, {"damage", 2, 2}}, calls)
}

func TestEngineBoard_CallbackErrorAbortsScript(t *testing.T) {
	mgr, logs := newTestManager(t, 0)
	mgr.ApplyDamage = func(id, amount int) error { return errors.New("no such character") }
	require.NoError(t, mgr.Load("k", `
		function on_power(amount)
			engine.board.damage(99, amount)
			return "unreachable"
		end
	`))
	ret, err := mgr.CallHook("k", "on_power", lua.LNumber(1))
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zap.WarnLevel))
}

func TestEngineBoard_NilCallbacksAreNoOps(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	require.NoError(t, mgr.Load("k", `
		function on_power(amount)
			engine.board.damage(1, amount)
			return #engine.board.characters()
		end
	`))
	ret, err := mgr.CallHook("k", "on_power", lua.LNumber(1))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(0), ret)
}
