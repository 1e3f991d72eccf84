package reactive

import "github.com/huandu/go-clone"

// Snapshot returns a deep copy of the stored value. Callers who need to
// inspect or hold structure outside the write path use this instead of Get:
// the diff engine assumes the store performed the last mutation, and a
// shared reference handed back to Assign is always conservatively treated
// as changed. Snapshot does not register any interest.
func (s *Store) Snapshot() any {
	return clone.Clone(s.root)
}
