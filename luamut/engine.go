package luamut

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/jeffm24/meteor-reactive-store/reactive"
)

// Errors for engine operations.
var (
	// ErrEngineClosed is returned when compiling on a closed engine.
	ErrEngineClosed = errors.New("luamut: engine is closed")

	// ErrNotAFunction is returned when a chunk does not evaluate to a function.
	ErrNotAFunction = errors.New("luamut: chunk must return a function")
)

// cancelMarker and deletedMarker back the CANCEL and DELETED globals.
// Scripts return them to abort a write or delete a path.
type (
	cancelMarker  struct{}
	deletedMarker struct{}
)

// Engine owns a sandboxed Lua state and compiles chunks into store funcs.
type Engine struct {
	L      *lua.LState
	closed bool
}

// New creates an engine with a fresh sandboxed Lua state.
func New() (*Engine, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	e := &Engine{L: L}

	cancel := L.NewUserData()
	cancel.Value = cancelMarker{}
	L.SetGlobal("CANCEL", cancel)

	deleted := L.NewUserData()
	deleted.Value = deletedMarker{}
	L.SetGlobal("DELETED", deleted)

	return e, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
// io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// Close releases the Lua state. Funcs compiled by this engine must not be
// invoked after Close.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}

// compile runs a chunk and takes its result, which must be a function.
func (e *Engine) compile(code string) (*lua.LFunction, error) {
	if e.closed {
		return nil, ErrEngineClosed
	}

	top := e.L.GetTop()
	if err := e.L.DoString(code); err != nil {
		return nil, fmt.Errorf("luamut: compiling chunk: %w", err)
	}
	nRet := e.L.GetTop() - top
	if nRet < 1 {
		return nil, ErrNotAFunction
	}
	v := e.L.Get(top + 1)
	e.L.Pop(nRet)

	fn, ok := v.(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w (got %s)", ErrNotAFunction, v.Type())
	}
	return fn, nil
}

// Mutator compiles a chunk into a mutator. The chunk must evaluate to a
// function of one value; its result becomes the assigned value. Lua errors
// cancel the write.
func (e *Engine) Mutator(code string) (reactive.MutatorFunc, error) {
	fn, err := e.compile(code)
	if err != nil {
		return nil, err
	}

	return func(value any, s *reactive.Store) any {
		results, err := e.call(fn, toLua(e.L, value))
		if err != nil {
			return reactive.Canceled
		}
		if len(results) == 0 {
			return reactive.Canceled
		}
		return fromLuaSentinel(results[0])
	}, nil
}

// Method compiles a chunk into a store method. The chunk must evaluate to
// a function; when invoked it receives a store handle followed by the call
// arguments, and its first result becomes the method's return value.
func (e *Engine) Method(code string) (reactive.MethodFunc, error) {
	fn, err := e.compile(code)
	if err != nil {
		return nil, err
	}

	return func(s *reactive.Store, args ...any) (any, error) {
		luaArgs := make([]lua.LValue, 0, len(args)+1)
		luaArgs = append(luaArgs, e.storeHandle(s))
		for _, a := range args {
			luaArgs = append(luaArgs, toLua(e.L, a))
		}

		results, err := e.call(fn, luaArgs...)
		if err != nil {
			return nil, fmt.Errorf("luamut: method: %w", err)
		}
		if len(results) == 0 {
			return nil, nil
		}
		return fromLuaSentinel(results[0]), nil
	}, nil
}

// call invokes a compiled function with panic recovery.
func (e *Engine) call(fn *lua.LFunction, args ...lua.LValue) (results []lua.LValue, err error) {
	if e.closed {
		return nil, ErrEngineClosed
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("luamut: lua panic: %v", r)
		}
	}()

	top := e.L.GetTop()
	e.L.Push(fn)
	for _, a := range args {
		e.L.Push(a)
	}
	if err := e.L.PCall(len(args), lua.MultRet, nil); err != nil {
		return nil, err
	}

	nRet := e.L.GetTop() - top
	if nRet <= 0 {
		return nil, nil
	}
	results = make([]lua.LValue, nRet)
	for i := range results {
		results[i] = e.L.Get(top + i + 1)
	}
	e.L.Pop(nRet)
	return results, nil
}

// storeHandle builds the table of store operations passed to methods.
func (e *Engine) storeHandle(s *reactive.Store) *lua.LTable {
	t := e.L.NewTable()

	t.RawSetString("get", e.L.NewFunction(func(L *lua.LState) int {
		path := L.CheckString(1)
		L.Push(toLua(L, s.Get(path)))
		return 1
	}))
	t.RawSetString("has", e.L.NewFunction(func(L *lua.LState) int {
		path := L.CheckString(1)
		L.Push(lua.LBool(s.Has(path)))
		return 1
	}))
	t.RawSetString("set", e.L.NewFunction(func(L *lua.LState) int {
		s.Set(fromLuaSentinel(L.CheckAny(1)))
		return 0
	}))
	t.RawSetString("assign", e.L.NewFunction(func(L *lua.LState) int {
		path := L.CheckString(1)
		s.Assign(path, fromLuaSentinel(L.CheckAny(2)))
		return 0
	}))
	t.RawSetString("delete", e.L.NewFunction(func(L *lua.LState) int {
		path := L.CheckString(1)
		s.Delete(path)
		return 0
	}))

	return t
}

// fromLuaSentinel converts a Lua value, mapping the CANCEL and DELETED
// markers to their store sentinels.
func fromLuaSentinel(lv lua.LValue) any {
	if ud, ok := lv.(*lua.LUserData); ok {
		switch ud.Value.(type) {
		case cancelMarker:
			return reactive.Canceled
		case deletedMarker:
			return reactive.Deleted
		}
	}
	return fromLua(lv)
}
