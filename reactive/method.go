package reactive

import "fmt"

// MethodFunc is a named operation invoked through Call, bound to the store.
type MethodFunc func(s *Store, args ...any) (any, error)

// SetMutator registers a mutator for path, replacing any existing one.
// The mutator runs at assign time, before diffing.
func (s *Store) SetMutator(path string, fn MutatorFunc) {
	s.pathData(path).mutator = fn
}

// RemoveMutator unregisters the mutator for path.
func (s *Store) RemoveMutator(path string) {
	s.pathData(path).mutator = nil
}

// RegisterMethod registers a named method, replacing any existing one.
func (s *Store) RegisterMethod(name string, fn MethodFunc) {
	s.methods[name] = fn
}

// Call invokes a registered method by name.
func (s *Store) Call(name string, args ...any) (any, error) {
	fn := s.methods[name]
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	return fn(s, args...)
}
