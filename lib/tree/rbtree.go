package tree

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.

/*
		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (m *treeMap[K, V]) leftRotate(x *rbNode[K, V]) {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	p, y := x.parent, x.right
	dir := x.Direction()
	x.right, y.left = y.left, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		m.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	}
	y.parent = p
}

/*
			 |                         |
			 X                         S
			/ \     rightRotate(S)    / \
	       L   S    <============    X   R
			  / \                   / \
			Sc   Sd               Sc   Sd
*/
func (m *treeMap[K, V]) rightRotate(x *rbNode[K, V]) {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	p, y := x.parent, x.left
	dir := x.Direction()
	x.left, y.right = y.right, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		m.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	}
	y.parent = p
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).

im1: X's parent P is black, p3 and p4 hold already.

im2: X's parent P is red and P is root. Repaint P into black, done.

im3: Both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
G repainted into red may still be a red-violation one level up, so
loop with G as the new current node.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im4: The parent P is red but the uncle U is black. (red-violation)
X is the opposite direction to P. Rotate P to the opposite direction,
then enter im5 with the former P as the current node.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im5: Current node is the same direction as its parent. One rotation
of G plus a repaint finishes the repair.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (m *treeMap[K, V]) insertRebalance(x *rbNode[K, V]) {
	for x != nil {
		if x.isRoot() {
			x.color = Black
			return
		}

		if /* im1 */ x.parent.isBlack() {
			return
		}

		if /* im2 */ x.parent.isRoot() {
			x.parent.color = Black
			return
		}

		if /* im3 */ x.hasUncle() && x.uncle().isRed() {
			x.parent.color = Black
			x.uncle().color = Black
			gp := x.grandpa()
			gp.color = Red
			x = gp
			continue
		}

		dir := x.Direction()
		if /* im4 */ dir != x.parent.Direction() {
			p := x.parent
			switch dir {
			case Left:
				m.rightRotate(p)
			case Right:
				m.leftRotate(p)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] insert rebalance violate (im4)")
			}
			x = p // enter im5 to fix
		}

		switch /* im5 */ x.parent.Direction() {
		case Left:
			m.rightRotate(x.grandpa())
		case Right:
			m.leftRotate(x.grandpa())
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] insert rebalance violate (im5)")
		}

		x.parent.color = Black
		x.sibling().color = Red
		return
	}
}

/*
r1: Only a root node, remove directly.

r2: Target node Z holds both children. Find Z's pred or succ Y to be
removed in its place: copy Y's key and value onto Z, then continue
removing Y. Y has at most one child, so r3 or r4 applies to it.

r3: (1) Y is a red leaf, unlink directly.
r3: (2) Y is a black leaf. Rebalance first (the fixup needs Y's
position to reason about its sibling), then unlink. (black-violation)

r4: Y holds exactly one child. That child must be red (see the
conclusion above), so splicing it in and repainting it black keeps p4.
*/
func (m *treeMap[K, V]) removeNode(z *rbNode[K, V]) {
	if /* r1 */ z.isRoot() && z.isLeaf() {
		m.root = nil
		return
	}

	y := z
	if /* r2 */ z.left != nil && z.right != nil {
		if m.isRmBorrowPred {
			y = z.pred() // enter r3-r4
		} else {
			y = z.succ() // enter r3-r4
		}
		z.key, z.val = y.key, y.val
	}

	if /* r3 */ y.isLeaf() {
		if y.isBlack() {
			// r3 (2), fixup before the node leaves the tree
			m.removeRebalance(y)
		}
		switch y.Direction() {
		case Left:
			y.parent.left = nil
		case Right:
			y.parent.right = nil
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] y should be a non-root leaf node, violate (r3)")
		}
	} else /* r4 */ {
		replace := y.left
		if replace == nil {
			replace = y.right
		}

		switch y.Direction() {
		case Root:
			m.root = replace
			replace.parent = nil
		case Left:
			y.parent.left = replace
			replace.parent = y.parent
		case Right:
			y.parent.right = replace
			replace.parent = y.parent
		}

		if y.isBlack() {
			if replace.isRed() {
				replace.color = Black
			} else {
				m.removeRebalance(replace)
			}
		}
	}

	y.parent, y.left, y.right = nil, nil, nil
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

X carries a deficit of one black unit on its path. Sc is the nephew on
the same side as X, Sd the nephew on the opposite side.

rm1: X's sibling S is red, so P, Sc and Sd must be black.
Rotate P toward X's side and swap S/P colors. X's new sibling is the
former Sc, which is black, so one of rm2-rm5 follows.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: P is red, S, Sc and Sd are black. Swapping P and S colors pays
the deficit off locally.

	  <P>             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: P, S, Sc and Sd are all black. Repaint S red to fix p4 locally,
then the whole subtree under P is one black unit short: loop with P.

	  [P]             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: S is black, the near nephew Sc is red, the far nephew Sd is
black. Rotate S away from X's side and swap S/Sc colors; the far
nephew of the new sibling is red, entering rm5.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm5: S is black, the far nephew Sd is red. Rotate P toward X's side,
give S P's color, repaint P and Sd black. Deficit resolved.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (m *treeMap[K, V]) removeRebalance(x *rbNode[K, V]) {
	for {
		if x.isRoot() {
			return
		}

		sibling := x.sibling()
		dir := x.Direction()
		if /* rm1 */ sibling.isRed() {
			switch dir {
			case Left:
				m.leftRotate(x.parent)
			case Right:
				m.rightRotate(x.parent)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove rebalance violate (rm1)")
			}
			sibling.color = Black
			x.parent.color = Red
			sibling = x.sibling()
		}

		var sc, sd *rbNode[K, V]
		switch dir {
		case Left:
			sc, sd = sibling.left, sibling.right
		case Right:
			sc, sd = sibling.right, sibling.left
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove rebalance without direction")
		}

		if sc.isBlack() && sd.isBlack() {
			if /* rm2 */ x.parent.isRed() {
				sibling.color = Red
				x.parent.color = Black
				return
			}
			/* rm3 */
			sibling.color = Red
			x = x.parent
			continue
		}

		if /* rm4 */ sc.isRed() {
			switch dir {
			case Left:
				m.rightRotate(sibling)
			case Right:
				m.leftRotate(sibling)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove rebalance violate (rm4)")
			}
			sc.color = Black
			sibling.color = Red
			sibling = x.sibling()
			switch dir {
			case Left:
				sd = sibling.right
			case Right:
				sd = sibling.left
			}
		}

		switch /* rm5 */ dir {
		case Left:
			m.leftRotate(x.parent)
		case Right:
			m.rightRotate(x.parent)
		}
		sibling.color = x.parent.color
		x.parent.color = Black
		if sd != nil {
			sd.color = Black
		}
		return
	}
}

func (m *treeMap[K, V]) findNode(key K) *rbNode[K, V] {
	for aux := m.root; aux != nil; {
		res := m.keyCompare(key, aux.key)
		if res == 0 {
			return aux
		} else if res < 0 {
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	return nil
}

func (m *treeMap[K, V]) keyCompare(k1, k2 K) int64 {
	if m.compare != nil {
		return m.compare(k1, k2)
	}
	if k1 == k2 {
		return 0
	} else if k1 < k2 {
		if !m.isDesc {
			return -1
		}
		return 1
	} else {
		if !m.isDesc {
			return 1
		}
		return -1
	}
}
