package reactive

// depNode is a node of the mirror tree. The mirror is isomorphic in shape to
// the observed portions of the value tree: a node exists only where a
// tracked read has been, and holds the interest handles registered there.
// Nodes are never removed; interests are keyed by static path strings in
// application code, so the mirror stays bounded regardless of data volume.
type depNode struct {
	// Interest in the current value, created on first tracked Get.
	valueDep Dependency

	// Interest in existence plus the last-known answer, created on first
	// tracked Has.
	existsDep Dependency
	exists    bool

	// Equality interests keyed by comparison value. activeEq is the handle
	// whose comparison value the path currently holds; at most one is
	// active since equality is exclusive.
	eqDeps   map[any]Dependency
	activeEq Dependency

	// Child nodes by path token.
	children map[string]*depNode
}

// child returns the child node for token, or nil. It never allocates:
// the write path looks up but must not extend the mirror.
func (n *depNode) child(token string) *depNode {
	if n == nil {
		return nil
	}
	return n.children[token]
}

// ensureChild returns the child node for token, materializing it if needed.
func (n *depNode) ensureChild(token string) *depNode {
	if n.children == nil {
		n.children = make(map[string]*depNode)
	}
	c := n.children[token]
	if c == nil {
		c = &depNode{}
		n.children[token] = c
	}
	return c
}

// registerChange queues the node's affected interests for the node's new
// value: the value interest unconditionally, the existence interest when
// the answer flipped, and the pair of equality interests entering and
// leaving the active position.
func (s *Store) registerChange(n *depNode, v maybe) {
	if n.valueDep != nil {
		s.queue(n.valueDep)
	}

	if n.existsDep != nil {
		exists := existence(v)
		if exists != n.exists {
			n.exists = exists
			s.queue(n.existsDep)
		}
	}

	if len(n.eqDeps) > 0 || n.activeEq != nil {
		var match Dependency
		if key, ok := eqKey(v); ok {
			match = n.eqDeps[key]
		}
		if match != n.activeEq {
			// The old holder must learn it no longer holds, the new one
			// that it now does.
			if n.activeEq != nil {
				s.queue(n.activeEq)
			}
			if match != nil {
				s.queue(match)
			}
			n.activeEq = match
		}
	}
}
