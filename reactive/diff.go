package reactive

// diffState carries one top-level diff invocation's cycle guard: the set of
// containers already visited on the old side. The guard is per invocation,
// not per store, so one write's conservative verdicts never leak into the
// next.
type diffState struct {
	s       *Store
	visited map[uintptr]struct{}
}

// diff compares old and new at node n, queueing every affected interest in
// n's subtree, and reports whether anything changed.
func (s *Store) diff(n *depNode, old, new maybe) bool {
	st := &diffState{s: s, visited: make(map[uintptr]struct{})}
	return st.compare(n, old, new)
}

// compare implements the structural-diff policy. n may be nil: recursion
// descends into unobserved subtrees whenever the parent's verdict is still
// unresolved, it just has no interests to queue there.
func (st *diffState) compare(n *depNode, old, new maybe) bool {
	var changed, fullyWalked bool

	switch {
	case !old.present || old.val == nil || isPrimitive(old.val):
		changed = !scalarEqual(old, new)

	case new.present && sameRef(old.val, new.val):
		// The caller may have mutated a value it shares with the store;
		// the engine cannot see inside, so assume changed.
		changed = true

	case traversable(old.val):
		if st.seen(old.val) || (new.present && st.seen(new.val)) {
			// Reference cycle: deep equality is undecidable, fail safe.
			changed = true
			fullyWalked = true
		} else {
			st.mark(old.val)
			changed, fullyWalked = st.compareContainers(n, old.val, new)
		}

	default:
		// Leaf instance with its own equality semantics (time, pattern,
		// set, Shallow). No registered check means assume changed.
		changed = !new.present || !st.s.eq.Equal(old.val, new.val)
	}

	// A subtree that came into existence was never diffed above: wake the
	// dormant interests under this node that now have values.
	if new.present && traversable(new.val) && !fullyWalked {
		st.sweep(n, new.val)
	}

	if changed && n != nil {
		st.s.registerChange(n, new)
	}
	return changed
}

// compareContainers diffs two container-shaped sides key by key. The second
// result reports whether every key of a traversable new side was covered,
// which makes the caller's sweep redundant.
func (st *diffState) compareContainers(n *depNode, oldC any, new maybe) (bool, bool) {
	changed := false

	newTrav := new.present && traversable(new.val)
	switch {
	case !newTrav:
		changed = true
	case !sameKind(oldC, new.val), containerLen(oldC) != containerLen(new.val):
		changed = true
	}

	keys := make(map[string]struct{})
	containerKeys(keys, oldC)
	if newTrav {
		containerKeys(keys, new.val)
	}

	for key := range keys {
		sub := n.child(key)
		if changed && sub == nil {
			// The parent's verdict is settled and nothing is registered
			// below this key; recursion would notify no one.
			continue
		}

		oldSub := childValue(oldC, key)
		newSub := absent
		if newTrav {
			newSub = childValue(new.val, key)
		}
		if st.compare(sub, oldSub, newSub) {
			changed = true
		}
	}

	// Every key with a registered sub-node was recursed, so a traversable
	// new side is fully covered even when unobserved keys were skipped.
	return changed, newTrav
}

// sweep notifies every registered interest under n that has a value in newC
// and recurses into its subtree. Recursion is bounded by the mirror tree,
// which is finite, but a shared reference between the new value and an
// already-visited container still terminates it early.
func (st *diffState) sweep(n *depNode, newC any) {
	if n == nil {
		return
	}
	for key, sub := range n.children {
		v := childValue(newC, key)
		if !v.present {
			continue
		}
		st.s.registerChange(sub, v)
		if traversable(v.val) && !st.seen(v.val) {
			st.mark(v.val)
			st.sweep(sub, v.val)
		}
	}
}

func (st *diffState) seen(c any) bool {
	id, ok := containerID(c)
	if !ok {
		return false
	}
	_, seen := st.visited[id]
	return seen
}

func (st *diffState) mark(c any) {
	if id, ok := containerID(c); ok {
		st.visited[id] = struct{}{}
	}
}
