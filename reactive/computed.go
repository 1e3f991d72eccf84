package reactive

// ComputeFunc derives a path's value. Reads it performs against any
// reactive source, including this store, are tracked; the value is
// re-derived when they change.
type ComputeFunc func(s *Store) any

// SetComputed binds path to a derived value. fn runs immediately inside a
// new computation and re-runs whenever its dependencies change; each result
// is fed back through Assign. Binding a path that already has a computation
// stops the old one first.
func (s *Store) SetComputed(path string, fn ComputeFunc) {
	pd := s.pathData(path)
	if pd.comp != nil {
		pd.comp.Stop()
	}
	pd.comp = s.runtime.Autorun(func() {
		v := fn(s)
		// The feedback write must not register the computation against its
		// own output path.
		s.runtime.Nonreactive(func() {
			s.Assign(path, v)
		})
	})
}

// StopComputation stops the derived-value computation bound to path, if any.
func (s *Store) StopComputation(path string) {
	pd := s.paths[path]
	if pd != nil && pd.comp != nil {
		pd.comp.Stop()
		pd.comp = nil
	}
}

// StopComputations stops every derived-value computation on the store. It
// returns once all have stopped; the runtime is synchronous, so no re-runs
// are in flight afterwards.
func (s *Store) StopComputations() {
	for _, pd := range s.paths {
		if pd.comp != nil {
			pd.comp.Stop()
			pd.comp = nil
		}
	}
}
