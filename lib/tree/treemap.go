package tree

import (
	"errors"
	"sync/atomic"

	"github.com/benz9527/xtreemap/lib/infra"
)

// ErrKeyInvalid reports a key that does not participate in the total
// order, i.e. a float NaN. Such a key could never be located again
// and is rejected before it reaches the tree.
var ErrKeyInvalid = errors.New("[treemap] key without a total order")

type treeMap[K infra.OrderedKey, V any] struct {
	root           *rbNode[K, V]
	count          int64
	compare        infra.OrderedKeyComparator[K]
	listener       TreeMapListener[K, V]
	isDesc         bool
	isRmBorrowPred bool
}

func (m *treeMap[K, V]) Len() int64 {
	return atomic.LoadInt64(&m.count)
}

func (m *treeMap[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

func (m *treeMap[K, V]) Root() RBNode[K, V] {
	if m.root == nil {
		return nil
	}
	return m.root
}

// i1: Empty tree, the new node becomes the black root directly.
// i2: Key already present, swap the value in place, no fixup.
// i3: New red leaf under the last visited node, then rebalance.
func (m *treeMap[K, V]) Put(key K, val V) (old V, replaced bool, err error) {
	if key != key { // NaN is the only key unequal to itself
		return old, false, infra.WrapErrorStackWithMessage(ErrKeyInvalid, "[treemap] put rejected")
	}

	if /* i1 */ m.root == nil {
		m.root = &rbNode[K, V]{
			key: key,
			val: val,
		}
		atomic.AddInt64(&m.count, 1)
		if m.listener != nil {
			m.listener.OnPut(m.root)
		}
		return old, false, nil
	}

	var x, y *rbNode[K, V] = m.root, nil
	for x != nil {
		y = x
		res := m.keyCompare(key, x.key)
		if /* i2 */ res == 0 {
			old, x.val = x.val, val
			if m.listener != nil {
				m.listener.OnPut(x)
			}
			return old, true, nil
		} else if res < 0 {
			x = x.left
		} else {
			x = x.right
		}
	}

	/* i3 */
	z := &rbNode[K, V]{
		key:    key,
		val:    val,
		color:  Red,
		parent: y,
	}
	if m.keyCompare(key, y.key) < 0 {
		y.left = z
	} else {
		y.right = z
	}
	atomic.AddInt64(&m.count, 1)
	m.insertRebalance(z)
	if m.listener != nil {
		m.listener.OnPut(z)
	}
	return old, false, nil
}

func (m *treeMap[K, V]) Get(key K) (V, bool) {
	if node := m.findNode(key); node != nil {
		return node.val, true
	}
	var zero V
	return zero, false
}

func (m *treeMap[K, V]) ContainsKey(key K) bool {
	return m.findNode(key) != nil
}

func (m *treeMap[K, V]) Remove(key K) (V, bool) {
	var zero V
	if atomic.LoadInt64(&m.count) <= 0 {
		return zero, false
	}
	z := m.findNode(key)
	if z == nil {
		return zero, false
	}

	val := z.val
	atomic.AddInt64(&m.count, -1)
	m.removeNode(z)
	if m.listener != nil {
		m.listener.OnRemove(key, val)
	}
	return val, true
}

// Clear drops the whole tree at once. The nodes form an isolated
// cyclic-free graph afterwards and are collected together.
func (m *treeMap[K, V]) Clear() {
	m.root = nil
	atomic.StoreInt64(&m.count, 0)
	if m.listener != nil {
		m.listener.OnClear()
	}
}

func (m *treeMap[K, V]) Min() RBNode[K, V] {
	if m.root == nil {
		return nil
	}
	return m.root.minimum()
}

func (m *treeMap[K, V]) Max() RBNode[K, V] {
	if m.root == nil {
		return nil
	}
	return m.root.maximum()
}

func (m *treeMap[K, V]) Predecessor(node RBNode[K, V]) RBNode[K, V] {
	x, ok := node.(*rbNode[K, V])
	if !ok || x == nil {
		return nil
	}
	if p := x.pred(); p != nil {
		return p
	}
	return nil
}

func (m *treeMap[K, V]) Successor(node RBNode[K, V]) RBNode[K, V] {
	x, ok := node.(*rbNode[K, V])
	if !ok || x == nil {
		return nil
	}
	if s := x.succ(); s != nil {
		return s
	}
	return nil
}

func (m *treeMap[K, V]) Search(x RBNode[K, V], fn func(RBNode[K, V]) int64) RBNode[K, V] {
	if x == nil {
		return nil
	}

	for aux := x; aux != nil; {
		res := fn(aux)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.Right()
		} else {
			aux = aux.Left()
		}
	}
	return nil
}

// Inorder traversal to implement the DFS.
func (m *treeMap[K, V]) Foreach(action func(idx int64, color RBColor, key K, val V) bool) {
	size := atomic.LoadInt64(&m.count)
	aux := m.root
	if size <= 0 || aux == nil {
		return
	}

	stack := make([]*rbNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key, aux.val) {
			return
		}
		idx++
		stack = stack[:size-1]
		if aux.right != nil {
			for aux = aux.right; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
}

type TreeMapOpt[K infra.OrderedKey, V any] func(*treeMap[K, V])

// WithTreeMapDesc flips the natural key order to descending.
func WithTreeMapDesc[K infra.OrderedKey, V any]() TreeMapOpt[K, V] {
	return func(m *treeMap[K, V]) {
		m.isDesc = true
	}
}

// WithTreeMapComparator replaces the natural key order entirely.
func WithTreeMapComparator[K infra.OrderedKey, V any](cmp infra.OrderedKeyComparator[K]) TreeMapOpt[K, V] {
	return func(m *treeMap[K, V]) {
		m.compare = cmp
	}
}

// WithTreeMapBorrowPred makes the two-children removal borrow the
// in-order predecessor instead of the successor.
func WithTreeMapBorrowPred[K infra.OrderedKey, V any]() TreeMapOpt[K, V] {
	return func(m *treeMap[K, V]) {
		m.isRmBorrowPred = true
	}
}

// WithTreeMapListener installs the mutation event listener.
func WithTreeMapListener[K infra.OrderedKey, V any](l TreeMapListener[K, V]) TreeMapOpt[K, V] {
	return func(m *treeMap[K, V]) {
		m.listener = l
	}
}

func NewTreeMap[K infra.OrderedKey, V any](opts ...TreeMapOpt[K, V]) TreeMap[K, V] {
	m := &treeMap[K, V]{
		count: 0,
	}

	for _, o := range opts {
		o(m)
	}
	return m
}
