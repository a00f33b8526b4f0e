package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/stonesim/internal/game/dice"
)

// RegisterModules registers the engine.log, engine.dice and engine.board
// tables into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetField(engine, "board", m.boardModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	logAt := func(fn func(string, ...zap.Field)) lua.LGFunction {
		return func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}
	}
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"debug": logAt(m.logger.Debug),
		"info":  logAt(m.logger.Info),
		"warn":  logAt(m.logger.Warn),
		"error": logAt(m.logger.Error),
	})
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		// roll(expr) -> {dice, modifier, total}
		"roll": func(L *lua.LState) int {
			amt, err := dice.ParseAmount(L.CheckString(1))
			if err != nil {
				L.ArgError(1, err.Error())
				return 0
			}
			total := m.roller.Roll(amt)
			t := L.NewTable()
			L.SetField(t, "dice", lua.LNumber(total-amt.Modifier))
			L.SetField(t, "modifier", lua.LNumber(amt.Modifier))
			L.SetField(t, "total", lua.LNumber(total))
			L.Push(t)
			return 1
		},
		// pick(n) -> 1-based index in [1, n]
		"pick": func(L *lua.LState) int {
			n := L.CheckInt(1)
			if n <= 0 {
				L.ArgError(1, "n must be positive")
				return 0
			}
			L.Push(lua.LNumber(m.roller.Pick("script", n) + 1))
			return 1
		},
	})
}

func (m *Manager) boardModule(L *lua.LState) *lua.LTable {
	apply := func(fn *func(id, amount int) error) lua.LGFunction {
		return func(L *lua.LState) int {
			id, amount := L.CheckInt(1), L.CheckInt(2)
			if *fn == nil {
				return 0
			}
			if err := (*fn)(id, amount); err != nil {
				L.RaiseError("%s", err.Error())
			}
			return 0
		}
	}
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"characters": func(L *lua.LState) int {
			list := L.NewTable()
			if m.Characters != nil {
				for _, c := range m.Characters() {
					list.Append(characterTable(L, c))
				}
			}
			L.Push(list)
			return 1
		},
		"damage": apply(&m.ApplyDamage),
		"heal":   apply(&m.ApplyHeal),
		"armor":  apply(&m.GainArmor),
	})
}

func characterTable(L *lua.LState, c CharacterInfo) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "id", lua.LNumber(c.ID))
	L.SetField(t, "name", lua.LString(c.Name))
	L.SetField(t, "kind", lua.LString(c.Kind))
	L.SetField(t, "friendly", lua.LBool(c.Friendly))
	L.SetField(t, "targetable", lua.LBool(c.Targetable))
	L.SetField(t, "attack", lua.LNumber(c.Attack))
	L.SetField(t, "health", lua.LNumber(c.Health))
	L.SetField(t, "max_health", lua.LNumber(c.MaxHealth))
	L.SetField(t, "armor", lua.LNumber(c.Armor))
	return t
}
