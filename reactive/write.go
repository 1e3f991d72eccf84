package reactive

import "sort"

// MutatorFunc transforms a value on its way into a path. Returning Canceled
// aborts the write for that path.
type MutatorFunc func(value any, s *Store) any

// assignConfig carries per-operation write options.
type assignConfig struct {
	skipMutators bool
}

// AssignOption configures one assign operation.
type AssignOption func(*assignConfig)

// SkipMutators suppresses registered mutators for this operation.
func SkipMutators() AssignOption {
	return func(c *assignConfig) {
		c.skipMutators = true
	}
}

// Set replaces the whole stored value, diffing old against new so every
// affected interest anywhere in the tree is notified.
func (s *Store) Set(value any) {
	s.batch(func() {
		old := s.root
		s.root = value
		s.diff(s.rootNode, present(old), present(value))
	})
}

// Assign writes value at path, creating intermediate containers as needed.
func (s *Store) Assign(path string, value any, opts ...AssignOption) {
	s.AssignAll(map[string]any{path: value}, opts...)
}

// AssignAll writes every path→value entry in one batched operation. Entries
// apply in lexicographic path order, so a parent path applies before paths
// beneath it. A value of Deleted removes the path; Canceled skips the entry.
func (s *Store) AssignAll(changes map[string]any, opts ...AssignOption) {
	var cfg assignConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	paths := make([]string, 0, len(changes))
	for p := range changes {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	s.batch(func() {
		for _, p := range paths {
			s.assignOne(p, changes[p], cfg)
		}
	})
}

// Delete removes the given paths. It is a no-op when the root is not a
// container. Deleting a nonexistent path is a silent no-op.
func (s *Store) Delete(paths ...string) {
	if !traversable(s.root) {
		return
	}
	changes := make(map[string]any, len(paths))
	for _, p := range paths {
		changes[p] = Deleted
	}
	s.AssignAll(changes)
}

// Clear replaces the root with a fresh empty container of the same kind, or
// nil when the root is not a container.
func (s *Store) Clear() {
	switch s.root.(type) {
	case map[string]any:
		s.Set(map[string]any{})
	case []any:
		s.Set([]any{})
	default:
		s.Set(nil)
	}
}

// assignOne applies a single path→value entry: mutator, cancellation check,
// then the token walk.
func (s *Store) assignOne(path string, value any, cfg assignConfig) {
	pd := s.pathData(path)

	if pd.mutator != nil && !cfg.skipMutators {
		value = pd.mutator(value, s)
	}
	if sentinel, ok := value.(Sentinel); ok && sentinel == Canceled {
		return
	}

	if len(pd.tokens) == 0 {
		// Root path: whole-value replacement or removal.
		if sentinel, ok := value.(Sentinel); ok && sentinel == Deleted {
			s.Set(nil)
		} else {
			s.Set(value)
		}
		return
	}
	s.setAtPath(pd.tokens, value)
}

// setAtPath walks the value tree to the write site, creating intermediate
// containers on the way down (unless deleting), applies the set or delete,
// diffs old against new at the target, and wakes traversed ancestors when
// anything changed: a reader holding an ancestor container sees the same
// reference but different content.
func (s *Store) setAtPath(tokens []string, value any) {
	sentinel, isSentinel := value.(Sentinel)
	deleting := isSentinel && sentinel == Deleted

	created := false

	// Containers along the walk, for writing grown sequences back into
	// their parents. containers[i] holds the container at depth i.
	containers := make([]any, 0, len(tokens))

	if !traversable(s.root) {
		if deleting {
			return
		}
		s.root = emptyContainerFor(tokens[0])
		created = true
	}
	containers = append(containers, s.root)
	cur := s.root

	for i := 0; i < len(tokens)-1; i++ {
		next := childValue(cur, tokens[i])
		if !next.present || !traversable(next.val) {
			if deleting {
				// Nothing beneath to delete.
				return
			}
			child := emptyContainerFor(tokens[i+1])
			if !s.storeChild(containers, tokens, i, child) {
				return
			}
			next = present(child)
			created = true
		}
		cur = next.val
		containers = append(containers, cur)
	}

	last := tokens[len(tokens)-1]
	old := childValue(cur, last)

	// Write path looks up mirror nodes but never allocates them.
	node := s.rootNode
	for _, tok := range tokens {
		node = node.child(tok)
	}

	var changed bool
	if deleting {
		if !old.present {
			return
		}
		deleteChild(cur, last)
		changed = s.diff(node, old, absent)
	} else {
		if !s.storeChild(containers, tokens, len(tokens)-1, value) {
			return
		}
		changed = s.diff(node, old, present(value))
	}

	if changed || created {
		s.notifyAncestors(tokens)
	}
}

// storeChild writes v at tokens[depth] inside containers[depth]. When the
// write grows a sequence, the new slice header is written back up through
// the ancestor chain. Returns false when the write cannot apply (non-index
// token on a sequence).
func (s *Store) storeChild(containers []any, tokens []string, depth int, v any) bool {
	child, ok := setChild(containers[depth], tokens[depth], v)
	if !ok {
		return false
	}
	for i := depth; !sameRef(child, containers[i]); i-- {
		containers[i] = child
		if i == 0 {
			s.root = child
			break
		}
		child, _ = setChild(containers[i-1], tokens[i-1], child)
	}
	return true
}

// notifyAncestors re-walks the mirror from the root toward the write site,
// queueing each traversed node's interests against its current container
// value. The target node itself was handled by the diff.
func (s *Store) notifyAncestors(tokens []string) {
	node := s.rootNode
	cur := present(s.root)
	s.registerChange(node, cur)

	for _, tok := range tokens[:len(tokens)-1] {
		node = node.child(tok)
		if node == nil {
			return
		}
		if cur.present {
			cur = childValue(cur.val, tok)
		}
		s.registerChange(node, cur)
	}
}
