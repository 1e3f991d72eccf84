package tracker

// DefaultMaxFlushPasses bounds how many times Flush re-scans its queue when
// re-running computations keeps invalidating more of them.
const DefaultMaxFlushPasses = 1000

// Tracker owns a set of reactive computations and schedules their re-runs.
// All methods must be called from a single goroutine.
type Tracker struct {
	// Currently running computation, nil outside of a compute
	current *Computation

	// Invalidated computations awaiting re-run
	pending []*Computation

	// Guards against reentrant Flush
	inFlush bool

	// Next computation ID
	nextID uint64

	maxFlushPasses int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithMaxFlushPasses sets the re-scan bound for Flush.
func WithMaxFlushPasses(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.maxFlushPasses = n
		}
	}
}

// New creates a new Tracker.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		nextID:         1,
		maxFlushPasses: DefaultMaxFlushPasses,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Active reports whether a computation is currently running, i.e. whether
// reads happening now are being tracked.
func (t *Tracker) Active() bool {
	return t.current != nil
}

// Current returns the currently running computation, or nil.
func (t *Tracker) Current() *Computation {
	return t.current
}

// Autorun runs fn immediately inside a new computation and re-runs it on
// every Flush after the computation has been invalidated. The computation
// keeps re-running until stopped.
func (t *Tracker) Autorun(fn func(*Computation)) *Computation {
	c := &Computation{
		id:      t.nextID,
		tracker: t,
		fn:      fn,
	}
	t.nextID++

	c.firstRun = true
	c.compute()
	c.firstRun = false

	return c
}

// Nonreactive runs fn with dependency tracking suspended. Reads inside fn
// register no interests even when called from within a computation.
func (t *Tracker) Nonreactive(fn func()) {
	prev := t.current
	t.current = nil
	defer func() { t.current = prev }()
	fn()
}

// Flush re-runs every invalidated computation until none remain. Stopped
// computations are skipped. Calling Flush while a flush is already running
// is a no-op; the outer flush picks up newly invalidated computations.
func (t *Tracker) Flush() {
	if t.inFlush || t.current != nil {
		return
	}
	t.inFlush = true
	defer func() { t.inFlush = false }()

	for pass := 0; pass < t.maxFlushPasses; pass++ {
		if len(t.pending) == 0 {
			return
		}
		queue := t.pending
		t.pending = nil
		for _, c := range queue {
			if c.stopped || !c.invalidated {
				continue
			}
			c.compute()
		}
	}
	panic("tracker: flush did not settle; computations keep invalidating each other")
}

// schedule queues an invalidated computation for the next flush.
func (t *Tracker) schedule(c *Computation) {
	t.pending = append(t.pending, c)
}
