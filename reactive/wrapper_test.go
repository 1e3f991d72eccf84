package reactive

import (
	"reflect"
	"testing"
)

func TestPathRef_Delegation(t *testing.T) {
	s, _ := newTestStore(WithValue(map[string]any{
		"user": map[string]any{"name": "ada", "tags": []any{"x"}},
	}))

	user := s.At("user")

	if got := user.Get("name"); got != "ada" {
		t.Errorf("Get(name) = %v, want ada", got)
	}
	if !user.Has("name") {
		t.Error("Has(name) = false, want true")
	}
	if !user.Equals("name", "ada") {
		t.Error("Equals(name, ada) = false, want true")
	}

	user.Assign("age", 36)
	if got := s.Get("user.age"); got != 36 {
		t.Errorf("store Get(user.age) = %v, want 36", got)
	}

	user.Delete("name")
	if s.Has("user.name") {
		t.Error("Has(user.name) = true after wrapper delete")
	}

	user.AssignAll(map[string]any{"a": 1, "b": 2})
	if s.Get("user.a") != 1 || s.Get("user.b") != 2 {
		t.Error("AssignAll did not write under the base path")
	}
}

func TestPathRef_SetReplacesBase(t *testing.T) {
	s, _ := newTestStore(WithValue(map[string]any{
		"cfg": map[string]any{"old": true},
	}))

	s.At("cfg").Set(map[string]any{"new": true})

	want := map[string]any{"new": true}
	if got := s.Get("cfg"); !reflect.DeepEqual(got, want) {
		t.Errorf("Get(cfg) = %v, want %v", got, want)
	}
}

func TestPathRef_EmptySubAddressesBase(t *testing.T) {
	s, _ := newTestStore(WithValue(map[string]any{"k": "v"}))

	ref := s.At("k")
	if got := ref.Get(""); got != "v" {
		t.Errorf("Get(\"\") = %v, want base value", got)
	}
}

func TestPathRef_Nesting(t *testing.T) {
	s, _ := newTestStore(WithValue(map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 9}},
	}))

	if got := s.At("a").At("b").Get("c"); got != 9 {
		t.Errorf("nested wrapper Get(c) = %v, want 9", got)
	}
}

func TestPathRef_CachedPerPath(t *testing.T) {
	s, _ := newTestStore()
	if s.At("x") != s.At("x") {
		t.Error("At must return the cached wrapper for a path")
	}
}

func TestPathRef_RootBase(t *testing.T) {
	s, _ := newTestStore(WithValue(map[string]any{"k": 1}))

	root := s.At(Root)
	if got := root.Get("k"); got != 1 {
		t.Errorf("root wrapper Get(k) = %v, want 1", got)
	}
}
