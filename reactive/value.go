package reactive

import (
	"reflect"
	"strconv"
)

// maybe is a tagged (value, present) pair. The write and diff paths pass
// these instead of a magic "absent" marker so no real value can collide
// with the absence signal.
type maybe struct {
	val     any
	present bool
}

var absent = maybe{}

func present(v any) maybe {
	return maybe{val: v, present: true}
}

// existence is the Has answer for a looked-up value. A key holding nil is
// treated the same as a missing key, symmetric with the diff engine's
// nil/absent tie-break.
func existence(m maybe) bool {
	return m.present && m.val != nil
}

// traversable reports whether v is a plain container the diff engine may
// walk into. Shallow-wrapped values are leaves regardless of content.
func traversable(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

// sameKind reports whether a and b are the same container kind.
func sameKind(a, b any) bool {
	switch a.(type) {
	case map[string]any:
		_, ok := b.(map[string]any)
		return ok
	case []any:
		_, ok := b.([]any)
		return ok
	default:
		return false
	}
}

// containerLen returns the number of keys in a container.
func containerLen(c any) int {
	switch cc := c.(type) {
	case map[string]any:
		return len(cc)
	case []any:
		return len(cc)
	default:
		return 0
	}
}

// childValue looks up the child of container c at the given path token.
// Sequence tokens must be decimal indexes in range.
func childValue(c any, token string) maybe {
	switch cc := c.(type) {
	case map[string]any:
		if v, ok := cc[token]; ok {
			return present(v)
		}
	case []any:
		if i, err := strconv.Atoi(token); err == nil && i >= 0 && i < len(cc) {
			return present(cc[i])
		}
	}
	return absent
}

// setChild writes v at token inside container c, growing a sequence with
// nils when the index is past the end. It returns the container, which is a
// new slice header when growth occurred, and whether the write applied.
// A non-index token on a sequence is a silent no-op.
func setChild(c any, token string, v any) (any, bool) {
	switch cc := c.(type) {
	case map[string]any:
		cc[token] = v
		return cc, true
	case []any:
		i, err := strconv.Atoi(token)
		if err != nil || i < 0 {
			return cc, false
		}
		for len(cc) <= i {
			cc = append(cc, nil)
		}
		cc[i] = v
		return cc, true
	default:
		return c, false
	}
}

// deleteChild removes token from container c. Maps drop the key; sequences
// nil the element in place, leaving a hole, so sibling indexes stay stable.
func deleteChild(c any, token string) {
	switch cc := c.(type) {
	case map[string]any:
		delete(cc, token)
	case []any:
		if i, err := strconv.Atoi(token); err == nil && i >= 0 && i < len(cc) {
			cc[i] = nil
		}
	}
}

// emptyContainerFor returns the container created for a missing intermediate
// segment: a sequence when the next token is a decimal index, else a map.
func emptyContainerFor(nextToken string) any {
	if i, err := strconv.Atoi(nextToken); err == nil && i >= 0 {
		return make([]any, 0, i+1)
	}
	return make(map[string]any)
}

// containerKeys collects the tokens of every key in c into dst.
func containerKeys(dst map[string]struct{}, c any) {
	switch cc := c.(type) {
	case map[string]any:
		for k := range cc {
			dst[k] = struct{}{}
		}
	case []any:
		for i := range cc {
			dst[strconv.Itoa(i)] = struct{}{}
		}
	}
}

// isPrimitive reports whether v has reliable value semantics under ==.
func isPrimitive(v any) bool {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128,
		Sentinel:
		return true
	default:
		return false
	}
}

// scalarEqual compares two maybe values under primitive semantics, with
// absent and nil identified. Callers guarantee old is primitive or absent.
func scalarEqual(old, new maybe) bool {
	oldNil := !old.present || old.val == nil
	newNil := !new.present || new.val == nil
	if oldNil || newNil {
		return oldNil && newNil
	}
	if !isPrimitive(new.val) {
		return false
	}
	return old.val == new.val
}

// sameRef reports whether a and b are the same map, slice, or pointer.
// Two slices sharing a backing array but differing in length are distinct.
func sameRef(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Pointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	default:
		return false
	}
}

// containerID returns a stable identity for a non-empty container, used by
// the diff engine's per-invocation cycle guard. Empty containers need no
// identity: a reference cycle always passes through a non-empty one.
func containerID(c any) (uintptr, bool) {
	if containerLen(c) == 0 {
		return 0, false
	}
	return reflect.ValueOf(c).Pointer(), true
}

// eqKey normalizes a comparison value to an equality-interest map key.
// Absent and nil identify. Non-scalar values have no key.
func eqKey(m maybe) (any, bool) {
	if !m.present || m.val == nil {
		return nil, true
	}
	if comparableScalar(m.val) {
		return m.val, true
	}
	return nil, false
}

// comparableScalar reports whether v may serve as an equality-interest
// comparison value. Equality interests need values comparable by identity:
// containers and other deep values cannot be held across time safely, and
// Go cannot hash or compare funcs at all.
func comparableScalar(v any) bool {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return true
	default:
		return false
	}
}
