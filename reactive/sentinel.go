package reactive

// Sentinel is a distinguished marker value understood by the write path.
// Sentinels never appear in the stored value tree and are never returned
// from reads.
type Sentinel uint8

const (
	// Deleted signals "remove this path" when used as an assign value.
	Deleted Sentinel = iota + 1

	// Canceled signals "abort this write" when returned from a mutator or
	// passed as an assign value. The entry is skipped with no notification.
	Canceled
)

// String returns the sentinel name.
func (s Sentinel) String() string {
	switch s {
	case Deleted:
		return "deleted"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Root addresses the whole stored value. The empty path is equivalent.
const Root = "@"

// Shallow wraps a container so the diff engine treats it as an opaque leaf.
// Changes inside a Shallow value are never walked; a Shallow leaf compares
// through the equality-check registry like any other non-primitive leaf.
type Shallow struct {
	Value any
}
