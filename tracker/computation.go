package tracker

// Computation is one reactive function together with its invalidation state.
// It re-runs via [Tracker.Flush] after being invalidated, until stopped.
type Computation struct {
	id      uint64
	tracker *Tracker
	fn      func(*Computation)

	invalidated bool
	stopped     bool
	firstRun    bool

	// Callbacks fired on the next invalidation, then cleared. Dependencies
	// use these to unlink a computation that is about to re-run or stop.
	onInvalidate []func(*Computation)
}

// ID returns the computation's unique identifier within its Tracker.
func (c *Computation) ID() uint64 {
	return c.id
}

// FirstRun reports whether the computation is inside its initial run.
func (c *Computation) FirstRun() bool {
	return c.firstRun
}

// Stopped reports whether the computation has been stopped.
func (c *Computation) Stopped() bool {
	return c.stopped
}

// OnInvalidate registers fn to run the next time the computation is
// invalidated or stopped. The callback fires at most once.
func (c *Computation) OnInvalidate(fn func(*Computation)) {
	if c.stopped {
		return
	}
	c.onInvalidate = append(c.onInvalidate, fn)
}

// Invalidate marks the computation stale and queues it for the next flush.
func (c *Computation) Invalidate() {
	// Stopped computations fired their callbacks in Stop; already-invalid
	// ones fired theirs on the first Invalidate.
	if c.stopped || c.invalidated {
		return
	}
	c.invalidated = true
	c.runInvalidateCallbacks()
	c.tracker.schedule(c)
}

// Stop permanently stops the computation. It will not re-run, and pending
// invalidation callbacks fire so dependencies can unlink it.
func (c *Computation) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	c.runInvalidateCallbacks()
}

// compute runs the computation's function with tracking active.
func (c *Computation) compute() {
	c.invalidated = false

	prev := c.tracker.current
	c.tracker.current = c
	defer func() { c.tracker.current = prev }()

	c.fn(c)
}

// runInvalidateCallbacks fires and clears the one-shot callbacks.
func (c *Computation) runInvalidateCallbacks() {
	callbacks := c.onInvalidate
	c.onInvalidate = nil
	for _, fn := range callbacks {
		fn(c)
	}
}
