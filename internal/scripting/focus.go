package scripting

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// SelectTargetFunc is the Lua global a focus script must define.
const SelectTargetFunc = "select_target"

// ErrNoSelectTarget is returned when a focus script does not define select_target.
var ErrNoSelectTarget = errors.New("scripting: focus script must define select_target(enemies)")

// EnemyView is the read-only snapshot of a living enemy handed to a focus script.
type EnemyView struct {
	// Index is the enemy's position in the encounter, 0-based.
	Index int
	Name  string
	HP    int
	MaxHP int
	AC    int
}

// FocusVM runs one focus script for the lifetime of an encounter.
// A FocusVM is not safe for concurrent use.
type FocusVM struct {
	L         *lua.LState
	fn        *lua.LFunction
	instLimit int
	cancel    func()
	logger    *zap.Logger
}

// NewFocusVM compiles src inside a fresh sandbox and checks that it defines
// select_target.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: On success the returned VM owns its LState; the caller must Close it.
func NewFocusVM(src string, instLimit int, roller Roller, logger *zap.Logger) (*FocusVM, error) {
	L := NewSandboxedState(instLimit)
	RegisterModules(L, roller, logger)

	cancel := setBudget(L, instLimit)
	if err := L.DoString(src); err != nil {
		cancel()
		L.Close()
		return nil, fmt.Errorf("scripting: loading focus script: %w", err)
	}
	fn, ok := L.GetGlobal(SelectTargetFunc).(*lua.LFunction)
	if !ok {
		cancel()
		L.Close()
		return nil, ErrNoSelectTarget
	}
	return &FocusVM{L: L, fn: fn, instLimit: instLimit, cancel: cancel, logger: logger}, nil
}

// SelectTarget calls select_target with the living enemies as a 1-based Lua
// array of tables {index, name, hp, max_hp, ac} and returns the chosen
// position in enemies.
//
// Precondition: enemies must be non-empty.
// Postcondition: On success 0 <= result < len(enemies).
func (vm *FocusVM) SelectTarget(enemies []EnemyView) (int, error) {
	if len(enemies) == 0 {
		return 0, errors.New("scripting: select_target called with no enemies")
	}
	vm.cancel()
	vm.cancel = setBudget(vm.L, vm.instLimit)

	arr := vm.L.NewTable()
	for _, e := range enemies {
		t := vm.L.NewTable()
		t.RawSetString("index", lua.LNumber(e.Index+1))
		t.RawSetString("name", lua.LString(e.Name))
		t.RawSetString("hp", lua.LNumber(e.HP))
		t.RawSetString("max_hp", lua.LNumber(e.MaxHP))
		t.RawSetString("ac", lua.LNumber(e.AC))
		arr.Append(t)
	}

	if err := vm.L.CallByParam(lua.P{Fn: vm.fn, NRet: 1, Protect: true}, arr); err != nil {
		return 0, fmt.Errorf("scripting: %s: %w", SelectTargetFunc, err)
	}
	ret := vm.L.Get(-1)
	vm.L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("scripting: %s returned %s, want a number", SelectTargetFunc, ret.Type())
	}
	pos := int(n)
	if lua.LNumber(pos) != n || pos < 1 || pos > len(enemies) {
		return 0, fmt.Errorf("scripting: %s returned %v, want 1..%d", SelectTargetFunc, n, len(enemies))
	}
	vm.logger.Debug("focus script selected target",
		zap.Int("position", pos),
		zap.String("name", enemies[pos-1].Name),
	)
	return pos - 1, nil
}

// Close releases the VM's LState.
func (vm *FocusVM) Close() {
	if vm.cancel != nil {
		vm.cancel()
	}
	vm.L.Close()
}
