package tracker

// Dependency is an invalidation handle linking a piece of reactive data to
// the computations that have read it.
type Dependency struct {
	tracker    *Tracker
	dependents map[uint64]*Computation
}

// NewDependency creates a Dependency bound to this tracker.
func (t *Tracker) NewDependency() *Dependency {
	return &Dependency{
		tracker:    t,
		dependents: make(map[uint64]*Computation),
	}
}

// Depend registers the currently running computation as depending on this
// dependency. It returns true if a new link was created, false if there is
// no active computation or the link already existed.
func (d *Dependency) Depend() bool {
	c := d.tracker.current
	if c == nil {
		return false
	}
	if _, ok := d.dependents[c.id]; ok {
		return false
	}
	d.dependents[c.id] = c
	c.OnInvalidate(func(c *Computation) {
		delete(d.dependents, c.id)
	})
	return true
}

// Changed invalidates every computation depending on this dependency. The
// computations re-run on the next flush, not immediately.
func (d *Dependency) Changed() {
	// Invalidation unlinks dependents via their OnInvalidate callbacks,
	// which mutates d.dependents. Snapshot first.
	deps := make([]*Computation, 0, len(d.dependents))
	for _, c := range d.dependents {
		deps = append(deps, c)
	}
	for _, c := range deps {
		c.Invalidate()
	}
}

// HasDependents reports whether any computation currently depends on this
// dependency.
func (d *Dependency) HasDependents() bool {
	return len(d.dependents) > 0
}
