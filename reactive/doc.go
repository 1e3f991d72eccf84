// Package reactive provides a fine-grained change-notification store over an
// arbitrary, mutable, deeply nested value.
//
// A Store holds one root value: any mix of maps (map[string]any), sequences
// ([]any), and leaf values, nested to arbitrary depth. Readers address into
// the value with dot-separated paths ("profile.tags.0"). When a read happens
// inside a tracked computation, the store registers an interest at that path;
// when a write mutates the value, the store diffs the affected subtree
// against its mirror of registered interests and wakes exactly the readers
// whose answer changed.
//
// # Architecture
//
//	              ┌───────────────────────────────┐
//	  writes ───▶ │       Batch coordinator        │  nesting counter +
//	              │   Set / Assign / Delete        │  pending-interest set
//	              └──────────────┬────────────────┘
//	                             ▼
//	              ┌───────────────────────────────┐
//	              │          Write path            │  token walk, mutators,
//	              │                                │  ancestor tracking
//	              └──────────────┬────────────────┘
//	                             ▼
//	              ┌───────────────────────────────┐
//	              │    Diff / invalidation engine  │  structural diff over
//	              │                                │  the DepNode mirror
//	              └──────────────┬────────────────┘
//	                             ▼
//	              ┌───────────────────────────────┐
//	  reads ────▶ │         DepNode mirror         │  per-path value /
//	              │   Get / Has / Equals           │  existence / equality
//	              └───────────────────────────────┘  interests
//
// # Interests
//
// Three kinds of interest can attach to a path:
//
//   - value: woken whenever the value at the path changes, including any
//     change anywhere inside a container at the path
//   - existence: woken when Has(path) flips
//   - equality: woken when "value at path == X" flips, for a specific
//     identity-comparable X
//
// The mirror tree is lazy: a DepNode exists only where a tracked read has
// been, and writes below unobserved paths allocate nothing.
//
// # Batching
//
// Every write runs inside a nesting-counted operation. Interests affected by
// the write are queued, deduplicated, and fired once when the outermost
// operation completes, so a computation watching two changed paths re-runs
// once, not twice.
//
// # Change detection policy
//
// Primitives compare by value. A container assigned over itself (same
// reference) is conservatively treated as changed: the store cannot know
// what an outside caller did inside a value it shares. Reference cycles in
// caller-provided structures are detected per diff invocation and likewise
// resolve to "assume changed" rather than recursing forever. Leaf instances
// that are neither primitives nor plain containers (times, compiled
// patterns, sets) are compared through the eqcheck registry.
//
// # Concurrency
//
// A Store and its runtime are confined to a single goroutine, like a Lua
// state: all reads and writes run to completion before control returns. The
// watcher package shows how another goroutine hands work to the store's
// goroutine over a channel.
package reactive
