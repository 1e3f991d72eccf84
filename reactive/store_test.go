package reactive

import (
	"reflect"
	"testing"

	"github.com/jeffm24/meteor-reactive-store/tracker"
)

func newTestStore(opts ...Option) (*Store, *tracker.Tracker) {
	tr := tracker.New()
	opts = append([]Option{WithTracker(tr)}, opts...)
	return NewStore(opts...), tr
}

func TestAssignGetRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value any
	}{
		{"top level", "name", "gopher"},
		{"nested", "profile.age", 42},
		{"deep", "a.b.c.d", true},
		{"sequence index", "tags.0", "first"},
		{"nil", "nothing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore()
			s.Assign(tt.path, tt.value)
			if got := s.Get(tt.path); got != tt.value {
				t.Errorf("Get(%q) = %v, want %v", tt.path, got, tt.value)
			}
		})
	}
}

func TestAssign_CreatesIntermediateContainers(t *testing.T) {
	s, _ := newTestStore()
	s.Assign("a.b.c", 1)

	m, ok := s.Get("a").(map[string]any)
	if !ok {
		t.Fatalf("Get(a) = %T, want map", s.Get("a"))
	}
	if _, ok := m["b"].(map[string]any); !ok {
		t.Fatalf("intermediate b is %T, want map", m["b"])
	}
}

func TestAssign_SequenceCreationAndGrowth(t *testing.T) {
	s, _ := newTestStore()
	s.Assign("list.2", "x")

	list, ok := s.Get("list").([]any)
	if !ok {
		t.Fatalf("Get(list) = %T, want []any", s.Get("list"))
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	if list[0] != nil || list[1] != nil || list[2] != "x" {
		t.Errorf("list = %v, want [nil nil x]", list)
	}
}

func TestAssign_CanceledLeavesPriorValue(t *testing.T) {
	s, _ := newTestStore()
	s.Assign("p", "before")
	s.Assign("p", Canceled)

	if got := s.Get("p"); got != "before" {
		t.Errorf("Get(p) = %v, want prior value", got)
	}
}

func TestDelete_RoundTrip(t *testing.T) {
	s, _ := newTestStore()
	s.Assign("p", "v")
	s.Delete("p")

	if s.Has("p") {
		t.Error("Has(p) = true after delete")
	}
	if got := s.Get("p"); got != nil {
		t.Errorf("Get(p) = %v after delete, want nil", got)
	}
}

func TestDelete_NonexistentIsNoOp(t *testing.T) {
	s, tr := newTestStore(WithValue(map[string]any{"a": 1}))

	runs := 0
	tr.Autorun(func(*tracker.Computation) {
		s.Get("a")
		runs++
	})

	s.Delete("missing")
	s.Delete("a.b.c")
	if runs != 1 {
		t.Errorf("runs = %d, deleting nonexistent paths must not notify", runs)
	}
}

func TestDelete_RootNotTraversable(t *testing.T) {
	s, _ := newTestStore(WithValue("scalar"))
	s.Delete("anything")
	if got := s.Get(Root); got != "scalar" {
		t.Errorf("root = %v, want untouched scalar", got)
	}
}

func TestDelete_SequenceLeavesHole(t *testing.T) {
	s, _ := newTestStore(WithValue(map[string]any{
		"list": []any{"a", "b", "c"},
	}))
	s.Delete("list.1")

	list := s.Get("list").([]any)
	if len(list) != 3 {
		t.Fatalf("len = %d, deletion must not shift siblings", len(list))
	}
	if list[1] != nil {
		t.Errorf("list[1] = %v, want nil hole", list[1])
	}
	if s.Has("list.1") {
		t.Error("Has(list.1) = true, want false for hole")
	}
}

func TestGet_Root(t *testing.T) {
	root := map[string]any{"a": 1}
	s, _ := newTestStore(WithValue(root))

	if got := s.Get(Root); !reflect.DeepEqual(got, root) {
		t.Errorf("Get(Root) = %v, want %v", got, root)
	}
	if got := s.Get(""); !reflect.DeepEqual(got, root) {
		t.Errorf("Get(\"\") = %v, want root", got)
	}
}

func TestGet_Idempotent(t *testing.T) {
	s, tr := newTestStore(WithValue(map[string]any{"a": map[string]any{"b": 7}}))

	var first, second Dependency
	tr.Autorun(func(*tracker.Computation) {
		s.Get("a.b")
		first = s.rootNode.children["a"].children["b"].valueDep
		s.Get("a.b")
		second = s.rootNode.children["a"].children["b"].valueDep
	})

	if first == nil || first != second {
		t.Error("repeated reads must reuse the same interest handle")
	}
	if got := s.Get("a.b"); got != 7 {
		t.Errorf("Get(a.b) = %v, want 7", got)
	}
}

func TestBatching_OneRerunForTwoPaths(t *testing.T) {
	s, tr := newTestStore()

	runs := 0
	tr.Autorun(func(*tracker.Computation) {
		s.Get("x")
		s.Get("y")
		runs++
	})

	s.AssignAll(map[string]any{"x": 1, "y": 2})
	if runs != 2 {
		t.Fatalf("runs = %d, want 2 (initial + one coalesced rerun)", runs)
	}

	s.Batch(func() {
		s.Assign("x", 10)
		s.Assign("y", 20)
	})
	if runs != 3 {
		t.Fatalf("runs = %d, want 3 (batched writes coalesce)", runs)
	}

	// Unbatched writes notify separately.
	s.Assign("x", 100)
	s.Assign("y", 200)
	if runs != 5 {
		t.Fatalf("runs = %d, want 5", runs)
	}
}

func TestExistenceValueIndependence(t *testing.T) {
	s, tr := newTestStore()
	s.Assign("p", map[string]any{"a": 1})

	valueRuns, existsRuns := 0, 0
	tr.Autorun(func(*tracker.Computation) {
		s.Get("p")
		valueRuns++
	})
	tr.Autorun(func(*tracker.Computation) {
		s.Has("p")
		existsRuns++
	})

	// Deep-equal but reference-distinct: no structural change.
	s.Assign("p", map[string]any{"a": 1})
	if valueRuns != 1 {
		t.Errorf("valueRuns = %d, deep-equal assign must not notify", valueRuns)
	}
	if existsRuns != 1 {
		t.Errorf("existsRuns = %d, existence must not flip", existsRuns)
	}

	// A real change wakes the value interest but not existence.
	s.Assign("p", map[string]any{"a": 2})
	if valueRuns != 2 {
		t.Errorf("valueRuns = %d, want 2", valueRuns)
	}
	if existsRuns != 1 {
		t.Errorf("existsRuns = %d, existence did not flip", existsRuns)
	}

	s.Delete("p")
	if existsRuns != 2 {
		t.Errorf("existsRuns = %d after delete, want 2", existsRuns)
	}
}

func TestNewKeyTolerance_NilAssign(t *testing.T) {
	s, tr := newTestStore(WithValue(map[string]any{}))

	existsRuns := 0
	tr.Autorun(func(*tracker.Computation) {
		s.Has("k")
		existsRuns++
	})

	s.Assign("k", nil)
	if existsRuns != 1 {
		t.Errorf("existsRuns = %d, assigning nil under an absent key must not notify", existsRuns)
	}
	if s.Has("k") {
		t.Error("Has(k) = true, a nil value does not exist")
	}
}

func TestCycleSafety(t *testing.T) {
	s, tr := newTestStore(WithValue(map[string]any{}))

	runs := 0
	tr.Autorun(func(*tracker.Computation) {
		s.Get("self")
		runs++
	})

	m := map[string]any{}
	m["self"] = m
	s.Set(m) // must terminate

	if runs != 2 {
		t.Fatalf("runs = %d, cyclic assign must conservatively notify once", runs)
	}

	// Replacing one cycle with another must also terminate and report changed.
	m2 := map[string]any{}
	m2["self"] = m2
	s.Set(m2)
	if runs != 3 {
		t.Fatalf("runs = %d, want 3", runs)
	}
}

func TestSameReferenceAssumedChanged(t *testing.T) {
	s, tr := newTestStore()
	m := map[string]any{"a": 1}
	s.Assign("p", m)

	runs := 0
	tr.Autorun(func(*tracker.Computation) {
		s.Get("p")
		runs++
	})

	// Caller mutated in place and reassigned the same reference: the store
	// cannot inspect, so it must notify.
	m["a"] = 2
	s.Assign("p", m)
	if runs != 2 {
		t.Fatalf("runs = %d, same-reference assign must notify", runs)
	}
}

func TestScenario_AssignThenDelete(t *testing.T) {
	s, tr := newTestStore(WithValue(map[string]any{}))

	fires := 0
	tr.Autorun(func(*tracker.Computation) {
		s.Get("a")
		fires++
	})

	s.AssignAll(map[string]any{"a.b": 1, "c.d.e": true})

	if got := s.Get("a.b"); got != 1 {
		t.Errorf("Get(a.b) = %v, want 1", got)
	}
	want := map[string]any{"d": map[string]any{"e": true}}
	if got := s.Get("c"); !reflect.DeepEqual(got, want) {
		t.Errorf("Get(c) = %v, want %v", got, want)
	}
	if fires != 2 {
		t.Fatalf("fires = %d, interest on a must fire exactly once", fires)
	}

	s.Delete("a.b", "c.d.e")

	wantRoot := map[string]any{
		"a": map[string]any{},
		"c": map[string]any{"d": map[string]any{}},
	}
	if got := s.Get(Root); !reflect.DeepEqual(got, wantRoot) {
		t.Errorf("root = %v, want %v", got, wantRoot)
	}
	if fires != 3 {
		t.Fatalf("fires = %d, interest on a must fire exactly once more", fires)
	}
}

func TestDormantInterestWakesOnExistence(t *testing.T) {
	s, tr := newTestStore(WithValue(map[string]any{}))

	var seen []any
	tr.Autorun(func(*tracker.Computation) {
		seen = append(seen, s.Get("deep.leaf"))
	})

	// The whole subtree comes into existence at once; the dormant interest
	// registered before it existed must wake.
	s.Set(map[string]any{"deep": map[string]any{"leaf": "here"}})

	if len(seen) != 2 || seen[1] != "here" {
		t.Fatalf("seen = %v, want [nil here]", seen)
	}
}

func TestClear(t *testing.T) {
	tests := []struct {
		name string
		root any
		want any
	}{
		{"map", map[string]any{"a": 1}, map[string]any{}},
		{"sequence", []any{1, 2}, []any{}},
		{"scalar", "x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(WithValue(tt.root))
			s.Clear()
			if got := s.Get(Root); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("root after Clear = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSet_RootReplacementPreciseDiff(t *testing.T) {
	s, tr := newTestStore(WithValue(map[string]any{"a": 1, "b": 2}))

	aRuns, bRuns := 0, 0
	tr.Autorun(func(*tracker.Computation) {
		s.Get("a")
		aRuns++
	})
	tr.Autorun(func(*tracker.Computation) {
		s.Get("b")
		bRuns++
	})

	s.Set(map[string]any{"a": 1, "b": 3})

	if aRuns != 1 {
		t.Errorf("aRuns = %d, a did not change", aRuns)
	}
	if bRuns != 2 {
		t.Errorf("bRuns = %d, b changed", bRuns)
	}
}

func TestShallowTreatedAsLeaf(t *testing.T) {
	s, tr := newTestStore()
	s.Assign("p", Shallow{Value: map[string]any{"a": 1}})

	runs := 0
	tr.Autorun(func(*tracker.Computation) {
		s.Get("p")
		runs++
	})

	// No equality check registered for Shallow: any reassign is a change,
	// even a structurally identical one.
	s.Assign("p", Shallow{Value: map[string]any{"a": 1}})
	if runs != 2 {
		t.Fatalf("runs = %d, shallow leaves always assume changed", runs)
	}

	if _, ok := s.Get("p").(Shallow); !ok {
		t.Errorf("Get(p) = %T, want Shallow", s.Get("p"))
	}
}
