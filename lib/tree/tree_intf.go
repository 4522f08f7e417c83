package tree

import "github.com/benz9527/xtreemap/lib/infra"

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

// RBNode is the read-only view of a tree node. It is what the map
// hands out to collaborators (e.g. a drawing harness) so they can
// reconstruct the current shape without being able to touch the
// structural links.
type RBNode[K infra.OrderedKey, V any] interface {
	Key() K
	Val() V
	Color() RBColor
	Left() RBNode[K, V]
	Right() RBNode[K, V]
	Parent() RBNode[K, V]
}

// TreeMapListener receives mutation events. Each hook fires after the
// mutation has completed and the red-black invariants are restored,
// so the receiver may immediately re-read the shape through Root()
// and the RBNode view. Hooks must not mutate the map re-entrantly.
type TreeMapListener[K infra.OrderedKey, V any] interface {
	OnPut(node RBNode[K, V])
	OnRemove(key K, val V)
	OnClear()
}

// TreeMap is an ordered key-value map backed by a red-black tree.
// O(log n) lookup, insert and remove; in-order key sequence under
// the configured comparator.
//
// Not safe for concurrent mutation. Callers that share a map across
// goroutines must serialize Put/Remove/Clear externally; read-only
// calls are safe only while no mutation is in flight.
type TreeMap[K infra.OrderedKey, V any] interface {
	Len() int64
	IsEmpty() bool
	Root() RBNode[K, V]
	// Put stores val under key, returning the prior value when the
	// key was already present (value replaced in place, structure
	// untouched). A key that does not participate in the total order
	// (a float NaN) is rejected with ErrKeyInvalid.
	Put(key K, val V) (old V, replaced bool, err error)
	// Get returns the stored value. The bool result distinguishes an
	// absent key from a stored zero value.
	Get(key K) (V, bool)
	ContainsKey(key K) bool
	// Remove deletes the key and returns its value. An absent key is
	// a no-op returning (zero, false).
	Remove(key K) (V, bool)
	// Clear drops the whole tree in O(1).
	Clear()
	Min() RBNode[K, V]
	Max() RBNode[K, V]
	Predecessor(node RBNode[K, V]) RBNode[K, V]
	Successor(node RBNode[K, V]) RBNode[K, V]
	Search(x RBNode[K, V], fn func(RBNode[K, V]) int64) RBNode[K, V]
	// Foreach runs an in-order traversal until action returns false.
	Foreach(action func(idx int64, color RBColor, key K, val V) bool)
}
