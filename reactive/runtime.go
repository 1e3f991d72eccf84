package reactive

import "github.com/jeffm24/meteor-reactive-store/tracker"

// Dependency is an interest handle supplied by the reactive-computation
// runtime. The store calls Depend during tracked reads and Changed when a
// flush determines the interest was affected.
type Dependency interface {
	// Depend registers the currently tracked computation against this
	// dependency. Returns false when no computation is being tracked.
	Depend() bool

	// Changed marks every registered computation stale.
	Changed()
}

// Computation is a handle to a running reactive computation.
type Computation interface {
	Stop()
}

// Runtime is the reactive-computation runtime a store collaborates with.
// The store never schedules re-runs itself; it only creates dependencies,
// fires Changed on them, and asks the runtime to flush after a batch.
type Runtime interface {
	// Active reports whether a read happening now is being tracked.
	Active() bool

	// NewDependency creates a fresh interest handle.
	NewDependency() Dependency

	// Autorun runs fn immediately under tracking and re-runs it when its
	// dependencies change, until the computation is stopped.
	Autorun(fn func()) Computation

	// Nonreactive runs fn with tracking suspended.
	Nonreactive(fn func())

	// Flush re-runs computations invalidated since the last flush.
	Flush()
}

// trackerRuntime adapts a *tracker.Tracker to the Runtime interface.
type trackerRuntime struct {
	t *tracker.Tracker
}

// NewTrackerRuntime wraps a tracker as a store runtime.
func NewTrackerRuntime(t *tracker.Tracker) Runtime {
	return trackerRuntime{t: t}
}

func (r trackerRuntime) Active() bool {
	return r.t.Active()
}

func (r trackerRuntime) NewDependency() Dependency {
	return r.t.NewDependency()
}

func (r trackerRuntime) Autorun(fn func()) Computation {
	return r.t.Autorun(func(*tracker.Computation) { fn() })
}

func (r trackerRuntime) Nonreactive(fn func()) {
	r.t.Nonreactive(fn)
}

func (r trackerRuntime) Flush() {
	r.t.Flush()
}
