package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/deckbound/internal/game/enemy"
)

// Manager owns one sandboxed LState holding all behavior precondition
// functions and implements enemy.PreconditionEvaluator.
//
// The LState is single-threaded; the mutex serialises concurrent evaluations.
type Manager struct {
	mu     sync.Mutex
	state  *lua.LState
	cancel context.CancelFunc
	logger *zap.Logger
}

// NewManager creates a Manager with no scripts loaded. Evaluating any
// precondition before LoadDirectory returns an error.
//
// Precondition: logger must be non-nil.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// LoadDirectory creates a sandboxed VM and executes every *.lua file in dir
// in lexicographic order, replacing any previously loaded VM.
//
// Precondition: dir must be a readable directory.
// Postcondition: The VM is registered; returns error on Lua load failure, in
// which case any previous VM is retained.
func (m *Manager) LoadDirectory(dir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)

	entries, err := os.ReadDir(dir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.state != nil {
		m.cancel()
		m.state.Close()
	}
	m.state = L
	m.cancel = cancel
	m.mu.Unlock()
	return nil
}

// EvalPrecondition calls the named Lua global function with a snapshot table
// carrying hp, max_hp, block, and turn, and returns its boolean result.
// A missing function or Lua runtime error is returned as an error; the
// intent generator treats errored rows as ineligible.
//
// Postcondition: Returns (true, nil) only when the function exists and
// returns Lua true.
func (m *Manager) EvalPrecondition(name string, snap enemy.Snapshot) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		return false, fmt.Errorf("scripting: no scripts loaded")
	}
	L := m.state

	fn := L.GetGlobal(name)
	if fn == lua.LNil {
		return false, fmt.Errorf("scripting: precondition %q is not defined", name)
	}

	tbl := L.NewTable()
	L.SetField(tbl, "hp", lua.LNumber(snap.HP))
	L.SetField(tbl, "max_hp", lua.LNumber(snap.MaxHP))
	L.SetField(tbl, "block", lua.LNumber(snap.Block))
	L.SetField(tbl, "turn", lua.LNumber(snap.Turn))

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, tbl); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("precondition", name),
			zap.Error(err),
		)
		return false, fmt.Errorf("scripting: precondition %q: %w", name, err)
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret == lua.LTrue, nil
}

// Close releases the VM. The Manager is unusable afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.cancel()
		m.state.Close()
		m.state = nil
	}
}
