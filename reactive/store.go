package reactive

import (
	"github.com/jeffm24/meteor-reactive-store/eqcheck"
	"github.com/jeffm24/meteor-reactive-store/tracker"
)

// Store is a reactive store over one mutable nested value. It is confined
// to a single goroutine together with its runtime; see the package docs.
type Store struct {
	runtime Runtime
	eq      *eqcheck.Registry

	// The stored value. The store owns the root reference exclusively;
	// nested containers are owned transitively and mutated in place.
	root any

	// Mirror tree of registered interests. The root node exists for the
	// store's whole lifetime.
	rootNode *depNode

	// Per-path metadata, keyed by the raw path string.
	paths map[string]*pathData

	// Named method registry.
	methods map[string]MethodFunc

	// Batch coordinator: operation nesting depth and the deduplicated set
	// of interests queued during the current outermost operation.
	opDepth int
	pending map[Dependency]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithValue sets the initial root value.
func WithValue(v any) Option {
	return func(s *Store) {
		s.root = v
	}
}

// WithRuntime sets the reactive-computation runtime. The default is a fresh
// tracker owned by the store.
func WithRuntime(rt Runtime) Option {
	return func(s *Store) {
		s.runtime = rt
	}
}

// WithTracker is shorthand for WithRuntime(NewTrackerRuntime(t)).
func WithTracker(t *tracker.Tracker) Option {
	return func(s *Store) {
		s.runtime = NewTrackerRuntime(t)
	}
}

// WithEqualityRegistry replaces the store's equality-check registry.
func WithEqualityRegistry(r *eqcheck.Registry) Option {
	return func(s *Store) {
		s.eq = r
	}
}

// WithMutator registers a mutator for path at construction.
func WithMutator(path string, fn MutatorFunc) Option {
	return func(s *Store) {
		s.pathData(path).mutator = fn
	}
}

// WithMethod registers a named method at construction.
func WithMethod(name string, fn MethodFunc) Option {
	return func(s *Store) {
		s.methods[name] = fn
	}
}

// WithTeardown invokes register once with the store's StopComputations so a
// host view lifecycle can tear down derived values when the view goes away.
func WithTeardown(register func(stop func())) Option {
	return func(s *Store) {
		register(s.StopComputations)
	}
}

// NewStore creates a store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		rootNode: &depNode{},
		paths:    make(map[string]*pathData),
		methods:  make(map[string]MethodFunc),
		pending:  make(map[Dependency]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runtime == nil {
		s.runtime = NewTrackerRuntime(tracker.New())
	}
	if s.eq == nil {
		s.eq = eqcheck.New()
	}
	s.rootNode.exists = s.root != nil
	return s
}

// Runtime returns the store's reactive-computation runtime.
func (s *Store) Runtime() Runtime {
	return s.runtime
}

// Equality returns the store's equality-check registry, for registering
// host-specific leaf types.
func (s *Store) Equality() *eqcheck.Registry {
	return s.eq
}

// Get returns the current value at path, or nil if the path does not exist.
// Inside a tracked computation it registers a value interest at the path.
func (s *Store) Get(path string) any {
	v, node := s.read(path)
	if node != nil {
		if node.valueDep == nil {
			node.valueDep = s.runtime.NewDependency()
		}
		node.valueDep.Depend()
	}
	return v.val
}

// Has reports whether path currently exists with a non-nil value. Inside a
// tracked computation it registers an existence interest at the path.
func (s *Store) Has(path string) bool {
	v, node := s.read(path)
	exists := existence(v)
	if node != nil {
		if node.existsDep == nil {
			node.existsDep = s.runtime.NewDependency()
			node.exists = exists
		}
		node.existsDep.Depend()
	}
	return exists
}

// Equals reports whether the value at path equals cmp. cmp must be an
// identity-comparable scalar (nil, bool, string, integer or float); deep
// values cannot be held across time safely, so anything else panics. Inside
// a tracked computation it registers an equality interest for cmp, woken
// only when "value == cmp" flips.
func (s *Store) Equals(path string, cmp any) bool {
	if !comparableScalar(cmp) {
		panic("reactive: Equals comparison value must be an identity-comparable scalar")
	}

	v, node := s.read(path)
	key, _ := eqKey(present(cmp))
	cur, scalar := eqKey(v)
	equal := scalar && cur == key

	if node != nil {
		if node.eqDeps == nil {
			node.eqDeps = make(map[any]Dependency)
		}
		d := node.eqDeps[key]
		if d == nil {
			d = s.runtime.NewDependency()
			node.eqDeps[key] = d
		}
		if equal {
			node.activeEq = d
		}
		d.Depend()
	}
	return equal
}

// read walks the value tree for path and, inside a tracked computation,
// walks the mirror in lockstep, materializing DepNodes as it goes. The walk
// continues past missing segments so deeper interests still materialize,
// ready for when the path starts existing.
func (s *Store) read(path string) (maybe, *depNode) {
	tokens := s.pathData(path).tokens

	cur := present(s.root)
	for _, tok := range tokens {
		if cur.present {
			cur = childValue(cur.val, tok)
		}
	}

	if !s.runtime.Active() {
		return cur, nil
	}
	node := s.rootNode
	for _, tok := range tokens {
		node = node.ensureChild(tok)
	}
	return cur, node
}

// queue adds a dependency to the pending-notification set.
func (s *Store) queue(d Dependency) {
	s.pending[d] = struct{}{}
}

// Batch runs fn as one logical operation: writes performed inside it, at
// any nesting depth, coalesce into a single flush when fn returns.
func (s *Store) Batch(fn func()) {
	s.batch(fn)
}

// batch runs fn inside a nesting-counted operation. When the outermost
// operation completes, every distinct queued interest fires exactly once
// and the runtime is asked to flush.
func (s *Store) batch(fn func()) {
	s.opDepth++
	defer func() {
		s.opDepth--
		if s.opDepth == 0 {
			s.flush()
		}
	}()
	fn()
}

// flush fires the pending set and hands control to the runtime. Changed
// only marks computations stale; re-runs happen inside runtime.Flush, so a
// computation woken by several paths in one batch re-runs once.
func (s *Store) flush() {
	queue := s.pending
	s.pending = make(map[Dependency]struct{})
	for d := range queue {
		d.Changed()
	}
	s.runtime.Flush()
}
