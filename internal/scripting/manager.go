package scripting

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/stonesim/internal/game/dice"
)

// CharacterInfo is a snapshot of a character's state passed to Lua callbacks.
// Friendly is relative to the player whose script is running.
type CharacterInfo struct {
	ID       int
	Name     string
	Kind     string // "hero" | "minion"
	Friendly bool
	// Targetable is false for enemy characters that hide from powers.
	Targetable bool
	Attack     int
	Health     int
	MaxHealth  int
	Armor      int
}

// Manager owns one sandboxed LState per script key and dispatches hooks.
//
// Manager is safe for concurrent use; calls into the same or different
// scripts are serialized.
type Manager struct {
	mu     sync.Mutex
	states map[string]*lua.LState
	limit  int
	roller *dice.Roller
	logger *zap.Logger

	// Injected after construction. nil = no-op in engine.board.
	Characters  func() []CharacterInfo
	ApplyDamage func(id, amount int) error
	ApplyHeal   func(id, amount int) error
	GainArmor   func(id, amount int) error
}

// NewManager creates a Manager whose scripts may run at most instLimit opcodes
// per call (0 = DefaultInstructionLimit).
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no scripts loaded.
func NewManager(roller *dice.Roller, logger *zap.Logger, instLimit int) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		states: make(map[string]*lua.LState),
		limit:  instLimit,
		roller: roller,
		logger: logger,
	}
}

// Load creates a sandboxed VM for key, registers the engine.* modules and
// executes src in it. Loading an existing key replaces its VM.
//
// Precondition: key must be non-empty.
// Postcondition: The VM is registered, or an error is returned and nothing changes.
func (m *Manager) Load(key, src string) error {
	L := NewSandboxedState()
	m.RegisterModules(L)

	if err := withBudget(L, m.limit, func() error { return L.DoString(src) }); err != nil {
		L.Close()
		return fmt.Errorf("scripting: loading %q: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.states[key]; ok {
		old.Close()
	}
	m.states[key] = L
	return nil
}

// Loaded reports whether a VM exists for key.
func (m *Manager) Loaded(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.states[key]
	return ok
}

// CallHook calls the named Lua global function in key's VM. Returns (LNil, nil)
// if the hook is not defined or no VM exists. Lua runtime errors, including an
// exhausted instruction budget, are logged at Warn level and never propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(key, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	L, ok := m.states[key]
	if !ok {
		m.logger.Info("scripting: no VM for script",
			zap.String("script", key),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	err := withBudget(L, m.limit, func() error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("script", key),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// Close releases every VM.
//
// Postcondition: No scripts are loaded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, L := range m.states {
		L.Close()
		delete(m.states, key)
	}
}
