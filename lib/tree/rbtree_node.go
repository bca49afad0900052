package tree

import "github.com/benz9527/xmap/lib/infra"

var _ RBNode[uint8, struct{}] = (*rbNode[uint8, struct{}])(nil)

// The sentinel is a node without pair and parent. Its left child is the
// root, so the root's parent is never nil and the end of iteration is
// the sentinel itself.
type rbNode[K any, V any] struct {
	parent *rbNode[K, V]
	left   *rbNode[K, V]
	right  *rbNode[K, V]
	pair   infra.Pair[K, V]
	color  RBColor
	hasKV  bool
}

func newSentinel[K any, V any]() *rbNode[K, V] {
	return &rbNode[K, V]{
		color: Black,
	}
}

func (node *rbNode[K, V]) Color() RBColor {
	return node.color
}

func (node *rbNode[K, V]) Key() K {
	return node.pair.First()
}

func (node *rbNode[K, V]) Val() V {
	return node.pair.Second
}

func (node *rbNode[K, V]) Pair() *infra.Pair[K, V] {
	if !node.HasKeyVal() {
		return nil
	}
	return &node.pair
}

func (node *rbNode[K, V]) HasKeyVal() bool {
	if node == nil {
		return false
	}
	return node.hasKV
}

func (node *rbNode[K, V]) Left() RBNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[K, V]) Right() RBNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *rbNode[K, V]) Parent() RBNode[K, V] {
	if node == nil || node.parent == nil || node.parent.isSentinel() {
		return nil
	}
	return node.parent
}

func (node *rbNode[K, V]) isSentinel() bool {
	return node != nil && !node.hasKV && node.parent == nil
}

func (node *rbNode[K, V]) isRed() bool {
	return node != nil && node.color == Red
}

// Nil leaves are black.
func (node *rbNode[K, V]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *rbNode[K, V]) isRoot() bool {
	return node != nil && node.parent.isSentinel()
}

func (node *rbNode[K, V]) isLeaf() bool {
	return node != nil && node.left == nil && node.right == nil
}

// The sentinel stands above the root, so it reports Root as well.
func (node *rbNode[K, V]) Direction() RBDirection {
	if node.isSentinel() {
		return Root
	}
	if node == nil || node.parent == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] detached node without direction")
	}

	if node.isRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[K, V]) child(dir RBDirection) *rbNode[K, V] {
	switch dir {
	case Left:
		return node.left
	case Right:
		return node.right
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] root direction has no child")
	}
}

func (node *rbNode[K, V]) sibling() *rbNode[K, V] {
	switch node.Direction() {
	case Left:
		return node.parent.right
	case Right:
		return node.parent.left
	default:
	}
	return nil
}

func (node *rbNode[K, V]) uncle() *rbNode[K, V] {
	return node.parent.sibling()
}

func (node *rbNode[K, V]) grandpa() *rbNode[K, V] {
	return node.parent.parent
}

func (node *rbNode[K, V]) fixLink() {
	if node.left != nil {
		node.left.parent = node
	}
	if node.right != nil {
		node.right.parent = node
	}
}

func (node *rbNode[K, V]) minimum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *rbNode[K, V]) maximum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
// The pred of the sentinel is the maximum node.
// Nil means that there is no pred (before begin).
func (node *rbNode[K, V]) pred() *rbNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	if x.left != nil {
		return x.left.maximum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's pred.
	// The root is the left child of the sentinel, the
	// leftmost node backtracks through the sentinel.
	for aux != nil && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
// The succ of the maximum node is the sentinel.
func (node *rbNode[K, V]) succ() *rbNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	if x.right != nil {
		return x.right.minimum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's succ.
	for aux != nil && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}
