package tree

import (
	"errors"

	"go.uber.org/multierr"

	"github.com/benz9527/xtreemap/lib/infra"
)

func isNilLeaf[K infra.OrderedKey, V any](node RBNode[K, V]) bool {
	return node == nil
}

func isRedNode[K infra.OrderedKey, V any](node RBNode[K, V]) bool {
	return node != nil && node.Color() == Red
}

func isRootNode[K infra.OrderedKey, V any](node RBNode[K, V]) bool {
	return node != nil && node.Parent() == nil
}

func isBlackNode[K infra.OrderedKey, V any](node RBNode[K, V]) bool {
	return isNilLeaf[K, V](node) || node.Color() == Black
}

func blackDepthTo[K infra.OrderedKey, V any](target, to RBNode[K, V]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.Parent() {
		if isBlackNode[K, V](aux) {
			depth++
		}
	}
	return depth
}

// rbtree rule validation utilities.

// RedViolationValidate walks the whole tree in order and reports any
// red node carrying a red child, or a red root.
func RedViolationValidate[K infra.OrderedKey, V any](m TreeMap[K, V]) error {
	size := m.Len()
	var aux RBNode[K, V] = m.Root()
	if size <= 0 || isNilLeaf[K, V](aux) {
		return nil
	}
	if isRedNode[K, V](aux) {
		return errors.New("rbtree red violation: red root")
	}

	stack := make([]RBNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !isNilLeaf[K, V](aux); aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; isRedNode[K, V](aux) {
			if isRedNode[K, V](aux.Parent()) ||
				isRedNode[K, V](aux.Left()) || isRedNode[K, V](aux.Right()) {
				return errors.New("rbtree red violation")
			}
		}

		stack = stack[:size-1]
		if aux.Right() != nil {
			for aux = aux.Right(); aux != nil; aux = aux.Left() {
				stack = append(stack, aux)
			}
		}
	}
	return nil
}

// BFS traversal to load all nodes that own at least one nil leaf.
func bfsLeaves[K infra.OrderedKey, V any](m TreeMap[K, V]) []RBNode[K, V] {
	size := m.Len()
	var aux RBNode[K, V] = m.Root()
	if size <= 0 || isNilLeaf[K, V](aux) {
		return nil
	}

	leaves := make([]RBNode[K, V], 0, size>>1+1)
	stack := make([]RBNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, aux)

	for len(stack) > 0 {
		aux = stack[0]
		l, r := aux.Left(), aux.Right()
		if isNilLeaf[K, V](l) || isNilLeaf[K, V](r) {
			leaves = append(leaves, aux)
		}
		if !isNilLeaf[K, V](l) {
			stack = append(stack, l)
		}
		if !isNilLeaf[K, V](r) {
			stack = append(stack, r)
		}
		stack = stack[1:]
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

Every node holding a nil child must sit at the same black depth from
the root, otherwise some root-to-nil path violates p4.
*/
func BlackViolationValidate[K infra.OrderedKey, V any](m TreeMap[K, V]) error {
	leaves := bfsLeaves[K, V](m)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo[K, V](leaves[0], m.Root())
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo[K, V](leaves[i], m.Root()) != blackDepth {
			return errors.New("rbtree black violation")
		}
	}
	return nil
}

// OrderViolationValidate checks that the in-order key sequence is
// strictly increasing under cmp, natural ascending order when cmp is
// nil. Duplicate keys are a violation as well.
func OrderViolationValidate[K infra.OrderedKey, V any](m TreeMap[K, V], cmp infra.OrderedKeyComparator[K]) error {
	if cmp == nil {
		cmp = func(i, j K) int64 {
			if i == j {
				return 0
			} else if i < j {
				return -1
			}
			return 1
		}
	}

	var (
		prev    K
		started bool
		err     error
	)
	m.Foreach(func(idx int64, color RBColor, key K, val V) bool {
		if started && cmp(prev, key) >= 0 {
			err = errors.New("rbtree order violation")
			return false
		}
		prev, started = key, true
		return true
	})
	return err
}

// Validate aggregates every invariant check.
func Validate[K infra.OrderedKey, V any](m TreeMap[K, V], cmp infra.OrderedKeyComparator[K]) error {
	return multierr.Combine(
		RedViolationValidate[K, V](m),
		BlackViolationValidate[K, V](m),
		OrderViolationValidate[K, V](m, cmp),
	)
}
