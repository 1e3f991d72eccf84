package reactive

// PathRef is a convenience handle bound to one base path, delegating every
// operation to the store with the sub-path joined on. It holds no state of
// its own beyond a cache of joined path strings.
type PathRef struct {
	store  *Store
	base   string
	joined map[string]string
}

// At returns the path wrapper for base, cached per path for the store's
// lifetime. Root (or the empty string) wraps the whole value.
func (s *Store) At(base string) *PathRef {
	pd := s.pathData(base)
	if pd.wrapper == nil {
		pd.wrapper = &PathRef{store: s, base: base, joined: make(map[string]string)}
	}
	return pd.wrapper
}

// Path returns the wrapper's base path.
func (r *PathRef) Path() string {
	return r.base
}

// At returns a wrapper for a sub-path beneath this one.
func (r *PathRef) At(sub string) *PathRef {
	return r.store.At(r.path(sub))
}

// Get returns the value at the sub-path. An empty sub-path reads the base.
func (r *PathRef) Get(sub string) any {
	return r.store.Get(r.path(sub))
}

// Has reports whether the sub-path exists.
func (r *PathRef) Has(sub string) bool {
	return r.store.Has(r.path(sub))
}

// Equals reports whether the sub-path's value equals cmp.
func (r *PathRef) Equals(sub string, cmp any) bool {
	return r.store.Equals(r.path(sub), cmp)
}

// Set replaces the value at the base path itself.
func (r *PathRef) Set(value any) {
	r.store.Assign(r.base, value)
}

// Assign writes value at the sub-path.
func (r *PathRef) Assign(sub string, value any, opts ...AssignOption) {
	r.store.Assign(r.path(sub), value, opts...)
}

// AssignAll writes every sub-path→value entry in one batched operation.
func (r *PathRef) AssignAll(changes map[string]any, opts ...AssignOption) {
	joined := make(map[string]any, len(changes))
	for sub, v := range changes {
		joined[r.path(sub)] = v
	}
	r.store.AssignAll(joined, opts...)
}

// Delete removes the given sub-paths.
func (r *PathRef) Delete(subs ...string) {
	paths := make([]string, len(subs))
	for i, sub := range subs {
		paths[i] = r.path(sub)
	}
	r.store.Delete(paths...)
}

// path joins a sub-path onto the base, caching the joined string.
func (r *PathRef) path(sub string) string {
	if sub == "" || sub == Root {
		return r.base
	}
	if full, ok := r.joined[sub]; ok {
		return full
	}
	full := sub
	if r.base != "" && r.base != Root {
		full = r.base + "." + sub
	}
	r.joined[sub] = full
	return full
}
