// Package tracker provides the reactive-computation runtime that reactive
// stores register their interests with.
//
// The tracker implements transparent dependency tracking: a computation runs
// a function while recording which dependencies it reads, and re-runs the
// function whenever one of those dependencies changes.
//
// # Core Components
//
//   - [Tracker]: owns the currently-running computation and the flush queue
//   - [Computation]: one reactive function plus its invalidation state
//   - [Dependency]: an invalidation handle linking data to computations
//
// # Usage
//
// Create a tracker and run a computation:
//
//	t := tracker.New()
//	dep := t.NewDependency()
//
//	comp := t.Autorun(func(c *tracker.Computation) {
//	    dep.Depend()
//	    // ... read reactive data ...
//	})
//
//	dep.Changed() // marks comp invalidated
//	t.Flush()     // re-runs comp
//	comp.Stop()
//
// # Flush Model
//
// Changed never re-runs computations directly; it marks them invalidated and
// queues them. Flush drains the queue, so any number of Changed calls between
// flushes re-run a computation exactly once. A data layer that batches writes
// calls Flush once at the end of its outermost operation.
//
// # Concurrency
//
// A Tracker and everything attached to it are confined to a single goroutine.
// There is no internal locking. Callers coordinating with other goroutines
// must marshal calls onto the owning goroutine themselves.
package tracker
