package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ErrNoDecide is returned when a script does not define decide(state).
var ErrNoDecide = errors.New("script: decide(state) is not defined")

// LuaPilot calls a Lua decide(state) function every tick.
// Single-goroutine access only.
type LuaPilot struct {
	vm     *lua.LState
	decide lua.LValue
	state  *lua.LTable
}

// LoadLuaPilot loads a pilot script from a file.
func LoadLuaPilot(path string) (*LuaPilot, error) {
	vm := newVM()
	if err := vm.DoFile(path); err != nil {
		vm.Close()
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return newLuaPilot(vm)
}

// NewLuaPilot loads a pilot from Lua source.
func NewLuaPilot(source string) (*LuaPilot, error) {
	vm := newVM()
	if err := vm.DoString(source); err != nil {
		vm.Close()
		return nil, fmt.Errorf("script: load: %w", err)
	}
	return newLuaPilot(vm)
}

func newVM() *lua.LState {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return vm
}

func newLuaPilot(vm *lua.LState) (*LuaPilot, error) {
	fn := vm.GetGlobal("decide")
	if fn.Type() != lua.LTFunction {
		vm.Close()
		return nil, ErrNoDecide
	}
	return &LuaPilot{vm: vm, decide: fn, state: vm.NewTable()}, nil
}

// Decide implements Pilot. Lua truthiness applies: nil and false do not hold.
func (p *LuaPilot) Decide(s State) (bool, error) {
	t := p.state
	t.RawSetString("tick", lua.LNumber(s.Tick))
	t.RawSetString("speed", lua.LNumber(s.Speed))
	t.RawSetString("score", lua.LNumber(s.Score))
	t.RawSetString("streak", lua.LNumber(s.Streak))
	t.RawSetString("multiplier", lua.LNumber(s.Multiplier))
	t.RawSetString("holding", lua.LBool(s.Holding))
	t.RawSetString("has_next", lua.LBool(s.HasNext))
	t.RawSetString("next_gap", lua.LNumber(s.NextGap))
	t.RawSetString("next_offset", lua.LNumber(s.NextOffset))
	t.RawSetString("next_dx", lua.LNumber(s.NextDX))
	t.RawSetString("next_dy", lua.LNumber(s.NextDY))

	if err := p.vm.CallByParam(lua.P{
		Fn:      p.decide,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return false, fmt.Errorf("script: decide: %w", err)
	}

	result := p.vm.Get(-1)
	p.vm.Pop(1)
	return lua.LVAsBool(result), nil
}

// Close shuts down the Lua VM.
func (p *LuaPilot) Close() {
	p.vm.Close()
}
