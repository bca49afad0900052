package tree

import (
	"errors"

	"github.com/benz9527/xmap/lib/infra"
)

var (
	ErrRBTreeKeyNotFound  = errors.New("[rbtree] key not found")
	ErrRBTreeEmpty        = errors.New("[rbtree] empty element to remove")
	ErrRBTreeInvalidNode  = errors.New("[rbtree] nil node or sentinel to erase")
	ErrRBTreeNotOwnedNode = errors.New("[rbtree] node does not belong to the tree")
)

var _ RBTree[uint8, struct{}] = (*rbTree[uint8, struct{}])(nil)

type rbTree[K any, V any] struct {
	sentinel       *rbNode[K, V]
	less           infra.LessComparator[K]
	cmp            infra.OrderedKeyComparator[K]
	stats          *rbtreeStats
	count          int64
	isDesc         bool
	isRmBorrowPred bool
}

// The three-way form is cached next to less. Equality is derived from
// less, never from ==.
func (tree *rbTree[K, V]) setComparator(less infra.LessComparator[K]) {
	tree.less = less
	tree.cmp = less.Comparator()
}

func (tree *rbTree[K, V]) Len() int64 {
	return tree.count
}

func (tree *rbTree[K, V]) Root() RBNode[K, V] {
	if tree.sentinel.left == nil {
		return nil
	}
	return tree.sentinel.left
}

func (tree *rbTree[K, V]) Comparator() infra.LessComparator[K] {
	return tree.less
}

// Red-black rules kept after every public mutation:
//  1. nodes are red or black, nil leaves count as black;
//  2. the root is black;
//  3. no red node owns a red child (red-violation);
//  4. every path down to a nil leaf passes the same number of
//     black nodes (black-violation).
// A node with a single child therefore owns a red leaf. The height
// is bounded by 2*log2(n+1).
//
// The root hangs on the left slot of a sentinel, so the root has a parent
// as all the other nodes. The sentinel is the end of iteration as well.
// Reference: https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c

func (tree *rbTree[K, V]) linkChild(parent *rbNode[K, V], dir RBDirection, child *rbNode[K, V]) {
	switch dir {
	case Root:
		tree.sentinel.left = child
	case Left:
		parent.left = child
	case Right:
		parent.right = child
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to link")
	}
}

// leftRotate lifts x's right child y into x's slot; y's left
// subtree becomes x's right subtree.
//
//	  x                y
//	 / \              / \
//	a   y     =>     x   c
//	   / \          / \
//	  b   c        a   b
func (tree *rbTree[K, V]) leftRotate(x *rbNode[K, V]) {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	p, y := x.parent, x.right
	dir := x.Direction()
	x.right, y.left = y.left, x

	x.fixLink()
	y.fixLink()

	tree.linkChild(p, dir, y)
	y.parent = p
	tree.stats.IncreaseRotateCount(Left)
}

// rightRotate is the mirror of leftRotate.
func (tree *rbTree[K, V]) rightRotate(x *rbNode[K, V]) {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	p, y := x.parent, x.left
	dir := x.Direction()
	x.left, y.right = y.right, x

	x.fixLink()
	y.fixLink()

	tree.linkChild(p, dir, y)
	y.parent = p
	tree.stats.IncreaseRotateCount(Right)
}

// rotate moves x down toward dir.
func (tree *rbTree[K, V]) rotate(x *rbNode[K, V], dir RBDirection) {
	switch dir {
	case Left:
		tree.leftRotate(x)
	case Right:
		tree.rightRotate(x)
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown direction to rotate")
	}
}

// i1: Empty rbtree, the new node becomes the root and is painted to black
// by the rebalance.
// An equal key returns the present node without replacing its value.
func (tree *rbTree[K, V]) Insert(key K, val V) (RBNode[K, V], bool) {
	var (
		y   = tree.sentinel
		x   = tree.sentinel.left
		res int64
	)
	for x != nil {
		y = x
		if res = tree.cmp(key, x.Key()); /* equal */ res == 0 {
			return x, false
		} else /* less */ if res < 0 {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}

	z := &rbNode[K, V]{
		pair:   infra.NewPair[K, V](key, val),
		color:  Red,
		parent: y,
		hasKV:  true,
	}
	if /* i1 */ y == tree.sentinel || res < 0 {
		y.left = z
	} else {
		y.right = z
	}

	tree.count++
	tree.stats.IncreaseInsertCount()
	tree.insertRebalance(z)
	return z, true
}

// insertRebalance fixes the red-violation caused by the new red node x.
// B(n) is black, R(n) is red.
//
// im1: x is the root, paint it black.
// im2: the parent is black, nothing is violated.
// im3: the parent and the uncle are red, the grandpa must be black.
// Push the blackness down from the grandpa and retry at the grandpa.
//
//	      B(g)              R(g)
//	     /    \            /    \
//	  R(p)    R(u)  =>  B(p)    B(u)
//	  /                 /
//	R(x)              R(x)
//
// im4: the uncle is black and x hangs on the other side of its parent.
// Rotate the parent away from x, the old parent becomes x for im5.
// im5: the uncle is black and x hangs on the same side as its parent.
// Rotate the grandpa toward the uncle and swap the colors.
//
//	      B(g)              B(p)
//	     /    \            /    \
//	  R(p)    B(u)  =>  R(x)    R(g)
//	  /                            \
//	R(x)                           B(u)
func (tree *rbTree[K, V]) insertRebalance(x *rbNode[K, V]) {
	for x != nil {
		if /* im1 */ x.isRoot() {
			x.color = Black
			return
		}

		if /* im2 */ x.parent.isBlack() {
			return
		}

		// The parent is red, so it is not the root and the grandpa exists.
		if /* im3 */ uncle := x.uncle(); uncle.isRed() {
			x.parent.color = Black
			uncle.color = Black
			gp := x.grandpa()
			gp.color = Red
			x = gp
			continue
		}

		if /* im4 */ dir := x.Direction(); dir != x.parent.Direction() {
			p := x.parent
			tree.rotate(p, dir.opposite())
			x = p // enter im5 to fix
		}

		/* im5 */
		tree.rotate(x.grandpa(), x.parent.Direction().opposite())
		x.parent.color = Black
		x.sibling().color = Red
		return
	}
}

// swapNode exchanges the positions of x and y in the tree, links and
// colors included. The pairs are not moved: y still carries its own key
// after the swap, so the iterators of y stay valid while x is moved down
// into y's old position (one child at most) to be removed.
func (tree *rbTree[K, V]) swapNode(x, y *rbNode[K, V]) {
	if x == y {
		return
	}

	xDir, yDir := x.Direction(), y.Direction()
	xp, xl, xr := x.parent, x.left, x.right
	yp, yl, yr := y.parent, y.left, y.right
	// y may be the direct child of x.
	exchange := func(node *rbNode[K, V]) *rbNode[K, V] {
		switch node {
		case x:
			return y
		case y:
			return x
		default:
		}
		return node
	}
	x.parent, x.left, x.right = exchange(yp), exchange(yl), exchange(yr)
	y.parent, y.left, y.right = exchange(xp), exchange(xl), exchange(xr)
	x.fixLink()
	y.fixLink()
	tree.linkChild(y.parent, xDir, y)
	tree.linkChild(x.parent, yDir, x)
	x.color, y.color = y.color, x.color
}

// Replaces the node in its parent's child slot.
func (tree *rbTree[K, V]) transplant(node, replace *rbNode[K, V]) {
	tree.linkChild(node.parent, node.Direction(), replace)
	if replace != nil {
		replace.parent = node.parent
	}
}

// removeNode unlinks z and keeps the red-black rules.
//
// r1: z is the only node, a black root leaf. The rebalance returns at once.
// r2: z owns two children. Swap z with its succ (or pred), both of them own
// one child at most, then continue with r3 or r4.
// r3: z is a leaf. A red leaf is dropped directly. A black leaf leaves a
// black hole behind, so rebalance around z first and unlink it after.
// r4: z owns a single child, which must be a red leaf. Splice the child into
// z's slot and paint it black.
func (tree *rbTree[K, V]) removeNode(z *rbNode[K, V]) {
	if /* r2 */ z.left != nil && z.right != nil {
		var y *rbNode[K, V]
		if tree.isRmBorrowPred {
			y = z.left.maximum()
		} else {
			y = z.right.minimum()
		}
		tree.swapNode(z, y) // enter r3-r4
	}

	if /* r3 */ z.isLeaf() {
		if /* r3 (2) */ z.isBlack() {
			tree.removeRebalance(z)
		}
		tree.transplant(z, nil)
	} else /* r4 */ {
		replace := z.left
		if replace == nil {
			replace = z.right
		}
		tree.transplant(z, replace)
		if z.isBlack() {
			if replace.isRed() {
				replace.color = Black
			} else {
				tree.removeRebalance(replace)
			}
		}
	}

	// Unlink node
	z.parent = nil
	z.left = nil
	z.right = nil
	tree.count--
	tree.stats.IncreaseEraseCount()
}

// removeRebalance fixes the black-violation of x, whose path is short of
// one black node. s is x's sibling, sc is s's child on x's side and sd is
// the one on the far side. B(n) is black, R(n) is red, ?(n) is either.
//
// rm1: s is red, so the parent, sc and sd are black. Rotate the parent
// toward x, paint s black and the parent red. x gets a black sibling.
// rm2: s, sc and sd are black and the parent is red. Swap the colors of
// s and the parent, the missing black is given back.
//
//	     R(p)                B(p)
//	    /    \              /    \
//	 B(x)    B(s)    =>  B(x)    R(s)
//	         /  \                /  \
//	     B(sc)  B(sd)        B(sc)  B(sd)
//
// rm3: all of them are black. Paint s red, the whole parent subtree is
// short of one black node now, retry at the parent.
// rm4: sc is red and sd is black. Rotate s away from x and swap the colors
// of s and sc, the red nephew moves to the far side for rm5.
// rm5: sd is red. Rotate the parent toward x, s takes the parent's color,
// the parent and sd are painted black.
//
//	     ?(p)                     ?(s)
//	    /    \                   /    \
//	 B(x)    B(s)      =>     B(p)    B(sd)
//	         /  \             /  \
//	     ?(sc)  R(sd)      B(x)  ?(sc)
func (tree *rbTree[K, V]) removeRebalance(x *rbNode[K, V]) {
	for !x.isRoot() {
		dir := x.Direction()
		sibling := x.sibling()
		if sibling == nil {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove rebalance on a node without sibling")
		}

		if /* rm1 */ sibling.isRed() {
			tree.rotate(x.parent, dir)
			sibling.color = Black
			x.parent.color = Red // ready to enter rm2
			sibling = x.sibling()
		}

		sc, sd := sibling.child(dir), sibling.child(dir.opposite())
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

		if /* rm4 */ sd.isBlack() {
			tree.rotate(sibling, dir.opposite())
			sc.color = Black
			sibling.color = Red
			sibling = x.sibling()
			sd = sibling.child(dir.opposite())
		}

		/* rm5 */
		tree.rotate(x.parent, dir)
		sibling.color = x.parent.color
		x.parent.color = Black
		sd.color = Black
		return
	}
}

func (tree *rbTree[K, V]) search(key K) *rbNode[K, V] {
	for aux := tree.sentinel.left; aux != nil; {
		res := tree.cmp(key, aux.Key())
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return nil
}

func (tree *rbTree[K, V]) Search(key K) RBNode[K, V] {
	if node := tree.search(key); node != nil {
		return node
	}
	return nil
}

// Walks up to the top ancestor, which is the sentinel of the tree that owns the node.
// O(log(n)) since the height is bounded.
func (tree *rbTree[K, V]) owns(node *rbNode[K, V]) bool {
	if node == nil || !node.hasKV {
		return false
	}
	aux := node
	for ; aux.parent != nil; aux = aux.parent {
	}
	return aux == tree.sentinel
}

func (tree *rbTree[K, V]) Owns(node RBNode[K, V]) bool {
	n, ok := node.(*rbNode[K, V])
	return ok && tree.owns(n)
}

func (tree *rbTree[K, V]) Erase(node RBNode[K, V]) error {
	z, ok := node.(*rbNode[K, V])
	if !ok || z == nil || z == tree.sentinel {
		return ErrRBTreeInvalidNode
	}
	if !tree.owns(z) {
		return ErrRBTreeNotOwnedNode
	}
	tree.removeNode(z)
	return nil
}

func (tree *rbTree[K, V]) Remove(key K) (RBNode[K, V], error) {
	if tree.count <= 0 {
		return nil, ErrRBTreeEmpty
	}
	z := tree.search(key)
	if z == nil {
		return nil, ErrRBTreeKeyNotFound
	}
	tree.removeNode(z)
	return z, nil
}

func (tree *rbTree[K, V]) Begin() RBNode[K, V] {
	if tree.sentinel.left == nil {
		return tree.sentinel
	}
	return tree.sentinel.left.minimum()
}

func (tree *rbTree[K, V]) End() RBNode[K, V] {
	return tree.sentinel
}

func (tree *rbTree[K, V]) Succ(node RBNode[K, V]) RBNode[K, V] {
	n, ok := node.(*rbNode[K, V])
	if !ok || n == nil || n == tree.sentinel {
		return nil
	}
	if succ := n.succ(); succ != nil {
		return succ
	}
	return nil
}

func (tree *rbTree[K, V]) Pred(node RBNode[K, V]) RBNode[K, V] {
	n, ok := node.(*rbNode[K, V])
	if !ok || n == nil {
		return nil
	}
	if pred := n.pred(); pred != nil && pred != tree.sentinel {
		return pred
	}
	return nil
}

// Inorder traversal to implement the DFS.
func (tree *rbTree[K, V]) Foreach(action func(idx int64, color RBColor, key K, val V) bool) {
	size := tree.count
	aux := tree.sentinel.left
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
		if aux = stack[size-1]; !action(idx, aux.color, aux.Key(), aux.Val()) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

// The recursion depth is bounded by the tree height, 2*log2(n+1).
func cloneSubtree[K any, V any](src, parent *rbNode[K, V]) *rbNode[K, V] {
	if src == nil {
		return nil
	}
	node := &rbNode[K, V]{
		parent: parent,
		pair:   src.pair,
		color:  src.color,
		hasKV:  true,
	}
	node.left = cloneSubtree(src.left, node)
	node.right = cloneSubtree(src.right, node)
	return node
}

func (tree *rbTree[K, V]) Clone() RBTree[K, V] {
	dst := &rbTree[K, V]{
		sentinel:       newSentinel[K, V](),
		less:           tree.less,
		cmp:            tree.cmp,
		stats:          tree.stats,
		isDesc:         tree.isDesc,
		isRmBorrowPred: tree.isRmBorrowPred,
	}
	dst.sentinel.left = cloneSubtree(tree.sentinel.left, dst.sentinel)
	dst.count = tree.count
	dst.stats.RecordSize(dst.count)
	return dst
}

func (tree *rbTree[K, V]) Assign(src RBTree[K, V]) {
	that, ok := src.(*rbTree[K, V])
	if !ok || that == nil || that == tree {
		return
	}
	tree.Release()
	// The cloned shape is ordered by the source comparator.
	tree.less, tree.cmp = that.less, that.cmp
	tree.isDesc = that.isDesc
	tree.isRmBorrowPred = that.isRmBorrowPred
	tree.sentinel.left = cloneSubtree(that.sentinel.left, tree.sentinel)
	tree.count = that.count
	tree.stats.RecordSize(tree.count)
}

// Release detaches all nodes, so the handles held outside are
// recognized as not owned by the tree.
func (tree *rbTree[K, V]) Release() {
	size := tree.count
	aux := tree.sentinel.left
	tree.sentinel.left = nil
	tree.count = 0
	tree.stats.RecordSize(-size)
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

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		aux = stack[size-1]
		r := aux.right
		aux.left, aux.right, aux.parent = nil, nil, nil
		stack = stack[:size-1]
		for aux = r; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

type RBTreeOpt[K any, V any] func(*rbTree[K, V])

// WithRBTreeDesc reverses the order of the comparator.
func WithRBTreeDesc[K any, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isDesc = true
	}
}

// WithRBTreeRemoveBorrowPred swaps a two-children node with its pred
// instead of its succ while removing.
func WithRBTreeRemoveBorrowPred[K any, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isRmBorrowPred = true
	}
}

func WithRBTreeComparator[K any, V any](less infra.LessComparator[K]) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		if less != nil {
			tree.less = less
		}
	}
}

// WithRBTreeStats records the size, insert, erase and rotate counters
// by the global otel meter provider.
func WithRBTreeStats[K any, V any](name string) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.stats = newRBTreeStats(name)
	}
}

func NewRBTree[K infra.OrderedKey, V any](opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	return NewRBTreeFunc[K, V](infra.Less[K], opts...)
}

// NewRBTreeFunc builds a tree ordered by an arbitrary strict weak ordering.
func NewRBTreeFunc[K any, V any](less infra.LessComparator[K], opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	if less == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] nil less comparator")
	}
	tree := &rbTree[K, V]{
		sentinel:       newSentinel[K, V](),
		less:           less,
		count:          0,
		isDesc:         false,
		isRmBorrowPred: false,
	}

	for _, o := range opts {
		o(tree)
	}
	if tree.isDesc {
		tree.less = tree.less.Reverse()
	}
	tree.setComparator(tree.less)
	return tree
}
