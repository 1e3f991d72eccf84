package luamut

import (
	"errors"
	"testing"

	"github.com/jeffm24/meteor-reactive-store/reactive"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func TestMutatorTransform(t *testing.T) {
	eng := newTestEngine(t)
	s := reactive.NewStore()

	double, err := eng.Mutator(`return function(v) return v * 2 end`)
	if err != nil {
		t.Fatalf("Mutator() error = %v", err)
	}
	s.SetMutator("n", double)

	s.Assign("n", 21)
	if got := s.Get("n"); got != int64(42) {
		t.Errorf("n = %v (%T), want 42", got, got)
	}
}

func TestMutatorCancel(t *testing.T) {
	eng := newTestEngine(t)
	s := reactive.NewStore()

	clamp, err := eng.Mutator(`return function(v)
		if v < 0 then return CANCEL end
		return v
	end`)
	if err != nil {
		t.Fatalf("Mutator() error = %v", err)
	}
	s.SetMutator("volume", clamp)

	s.Assign("volume", 5)
	s.Assign("volume", -1)
	if got := s.Get("volume"); got != int64(5) {
		t.Errorf("volume = %v, want 5 (negative write canceled)", got)
	}
}

func TestMutatorDeleted(t *testing.T) {
	eng := newTestEngine(t)
	s := reactive.NewStore()
	s.Set(map[string]any{"tmp": 1})

	drop, err := eng.Mutator(`return function(v) return DELETED end`)
	if err != nil {
		t.Fatalf("Mutator() error = %v", err)
	}
	s.SetMutator("tmp", drop)

	s.Assign("tmp", "anything")
	if s.Has("tmp") {
		t.Error("tmp should be deleted by mutator")
	}
}

func TestMutatorLuaErrorCancels(t *testing.T) {
	eng := newTestEngine(t)
	s := reactive.NewStore()
	s.Set(map[string]any{"n": 1})

	boom, err := eng.Mutator(`return function(v) error("nope") end`)
	if err != nil {
		t.Fatalf("Mutator() error = %v", err)
	}
	s.SetMutator("n", boom)

	s.Assign("n", 2)
	if got := s.Get("n"); got != 1 {
		t.Errorf("n = %v, want 1 (erroring mutator cancels the write)", got)
	}
}

func TestMutatorTableValues(t *testing.T) {
	eng := newTestEngine(t)
	s := reactive.NewStore()

	tag, err := eng.Mutator(`return function(v)
		v.tagged = true
		return v
	end`)
	if err != nil {
		t.Fatalf("Mutator() error = %v", err)
	}
	s.SetMutator("user", tag)

	s.Assign("user", map[string]any{"name": "ada"})
	if got := s.Get("user.name"); got != "ada" {
		t.Errorf("user.name = %v, want ada", got)
	}
	if got := s.Get("user.tagged"); got != true {
		t.Errorf("user.tagged = %v, want true", got)
	}
}

func TestMethodReadsAndWrites(t *testing.T) {
	eng := newTestEngine(t)
	s := reactive.NewStore()
	s.Set(map[string]any{"count": int64(1)})

	incr, err := eng.Method(`return function(store, by)
		store.assign("count", store.get("count") + by)
		return store.get("count")
	end`)
	if err != nil {
		t.Fatalf("Method() error = %v", err)
	}
	s.RegisterMethod("incr", incr)

	got, err := s.Call("incr", 4)
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got != int64(5) {
		t.Errorf("Call(incr, 4) = %v, want 5", got)
	}
	if s.Get("count") != int64(5) {
		t.Errorf("count = %v, want 5", s.Get("count"))
	}
}

func TestMethodHasAndDelete(t *testing.T) {
	eng := newTestEngine(t)
	s := reactive.NewStore()
	s.Set(map[string]any{"a": 1, "b": 2})

	prune, err := eng.Method(`return function(store, path)
		if store.has(path) then
			store.delete(path)
			return true
		end
		return false
	end`)
	if err != nil {
		t.Fatalf("Method() error = %v", err)
	}
	s.RegisterMethod("prune", prune)

	got, err := s.Call("prune", "a")
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got != true {
		t.Errorf("prune(a) = %v, want true", got)
	}
	if s.Has("a") {
		t.Error("a should be deleted")
	}

	got, err = s.Call("prune", "missing")
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got != false {
		t.Errorf("prune(missing) = %v, want false", got)
	}
}

func TestMethodLuaError(t *testing.T) {
	eng := newTestEngine(t)
	s := reactive.NewStore()

	boom, err := eng.Method(`return function(store) error("bad method") end`)
	if err != nil {
		t.Fatalf("Method() error = %v", err)
	}
	s.RegisterMethod("boom", boom)

	if _, err := s.Call("boom"); err == nil {
		t.Error("Call(boom) error = nil, want lua error")
	}
}

func TestCompileErrors(t *testing.T) {
	eng := newTestEngine(t)

	tests := []struct {
		name string
		code string
	}{
		{"syntax error", `return function(`},
		{"no return", `local x = 1`},
		{"non-function return", `return 42`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := eng.Mutator(tt.code); err == nil {
				t.Errorf("Mutator(%q) error = nil, want error", tt.code)
			}
		})
	}
}

func TestSandboxExcludesOSAndIO(t *testing.T) {
	eng := newTestEngine(t)

	probe, err := eng.Mutator(`return function(v)
		if os ~= nil or io ~= nil then return "open" end
		return "sealed"
	end`)
	if err != nil {
		t.Fatalf("Mutator() error = %v", err)
	}

	s := reactive.NewStore()
	s.SetMutator("probe", probe)
	s.Assign("probe", 0)
	if got := s.Get("probe"); got != "sealed" {
		t.Errorf("probe = %v, want sealed", got)
	}
}

func TestClosedEngine(t *testing.T) {
	eng, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := eng.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := eng.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}

	if _, err := eng.Mutator(`return function(v) return v end`); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Mutator() after close error = %v, want ErrEngineClosed", err)
	}
}
