// Package luamut scripts store mutators and methods in Lua.
//
// An Engine owns one sandboxed gopher-lua state. Lua chunks are compiled
// into reactive.MutatorFunc and reactive.MethodFunc values that can be
// registered on a store like any host Go function:
//
//	eng, _ := luamut.New()
//	defer eng.Close()
//
//	clamp, _ := eng.Mutator(`return function(v)
//	    if v < 0 then return CANCEL end
//	    return math.min(v, 100)
//	end`)
//	store.SetMutator("volume", clamp)
//
// Mutator chunks must evaluate to a function of one value. Returning the
// CANCEL global aborts the write; returning DELETED removes the path.
// Method chunks evaluate to a function whose first argument is a store
// handle with get, has, set, assign and delete operations.
//
// The Lua state is opened with only the base, table, string and math
// libraries; io, os, debug and package are unavailable to scripts.
//
// Like the store itself, an Engine is confined to a single goroutine.
// gopher-lua's LState is not goroutine-safe, and the compiled funcs run on
// whatever goroutine drives the store.
package luamut
