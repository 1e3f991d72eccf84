// Package eqcheck provides a registry of equality predicates keyed by value
// type.
//
// The diff engine in the reactive package consults a registry when it reaches
// a leaf value that is neither a primitive nor a plain container: a time, a
// compiled pattern, a set. Such values cannot be compared by identity or
// walked structurally, so each type supplies its own two-argument predicate.
// A value whose type has no registered check is conservatively treated as
// always changed.
package eqcheck

import (
	"reflect"
	"regexp"
	"time"
)

// Check reports whether old and new are equal. Implementations may assume
// both arguments have the registered type.
type Check func(old, new any) bool

// Registry maps value types to equality checks. Each store owns its own
// registry, so registering a check never affects other store instances.
// A Registry is confined to the goroutine owning its store.
type Registry struct {
	checks map[reflect.Type]Check
}

// New creates a registry with the built-in checks for time.Time,
// *regexp.Regexp, and string sets.
func New() *Registry {
	r := NewEmpty()
	r.registerBuiltins()
	return r
}

// NewEmpty creates a registry with no checks registered.
func NewEmpty() *Registry {
	return &Registry{checks: make(map[reflect.Type]Check)}
}

// Register adds or replaces the check for the type of sample. It panics if
// check is nil; a nil predicate is caller misuse, not a runtime condition.
func (r *Registry) Register(sample any, check Check) {
	if check == nil {
		panic("eqcheck: nil check registered for " + typeName(sample))
	}
	r.checks[reflect.TypeOf(sample)] = check
}

// Lookup returns the check registered for v's type, or nil.
func (r *Registry) Lookup(v any) Check {
	if v == nil {
		return nil
	}
	return r.checks[reflect.TypeOf(v)]
}

// Equal compares old and new using the check registered for old's type.
// It returns false when no check is registered or when the types differ,
// which callers treat as "assume changed".
func (r *Registry) Equal(old, new any) bool {
	check := r.Lookup(old)
	if check == nil {
		return false
	}
	if reflect.TypeOf(old) != reflect.TypeOf(new) {
		return false
	}
	return check(old, new)
}

// registerBuiltins installs the date-like, regex-like, and set-like checks.
func (r *Registry) registerBuiltins() {
	r.Register(time.Time{}, func(old, new any) bool {
		return old.(time.Time).Equal(new.(time.Time))
	})
	r.Register(&regexp.Regexp{}, func(old, new any) bool {
		oldRe, newRe := old.(*regexp.Regexp), new.(*regexp.Regexp)
		if oldRe == nil || newRe == nil {
			return oldRe == newRe
		}
		return oldRe.String() == newRe.String()
	})
	r.Register(map[string]struct{}{}, func(old, new any) bool {
		oldSet, newSet := old.(map[string]struct{}), new.(map[string]struct{})
		if len(oldSet) != len(newSet) {
			return false
		}
		for k := range oldSet {
			if _, ok := newSet[k]; !ok {
				return false
			}
		}
		return true
	})
}

// typeName returns a printable type name for panic messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
