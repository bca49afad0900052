package tree

import "github.com/benz9527/xmap/lib/infra"

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

func (dir RBDirection) opposite() RBDirection {
	return -dir
}

// RBNode is the read view of a tree node.
// The sentinel (End) is a node without key and value.
type RBNode[K any, V any] interface {
	Key() K
	Val() V
	// Pair returns the stored pair, the value is able to be modified
	// through it. Nil for the sentinel.
	Pair() *infra.Pair[K, V]
	HasKeyVal() bool
	Color() RBColor
	// Direction is the side of the parent the node hangs on. The root and
	// End report Root. It panics on an erased node.
	Direction() RBDirection
	Left() RBNode[K, V]
	Right() RBNode[K, V]
	// Parent returns nil for the root, the sentinel is never exposed as a parent.
	Parent() RBNode[K, V]
}

type RBTree[K any, V any] interface {
	Len() int64
	Root() RBNode[K, V]
	Comparator() infra.LessComparator[K]
	// Insert returns the node holding the key and whether it was inserted.
	// An existing value is never replaced.
	Insert(key K, val V) (RBNode[K, V], bool)
	// Erase removes the node from the tree, the node is detached afterward.
	Erase(node RBNode[K, V]) error
	Remove(key K) (RBNode[K, V], error)
	Search(key K) RBNode[K, V]
	// Owns reports whether node is an element of this tree.
	Owns(node RBNode[K, V]) bool
	// Begin returns the minimum node, or End if the tree is empty.
	Begin() RBNode[K, V]
	// End returns the sentinel.
	End() RBNode[K, V]
	// Succ returns the next node in sorted order, End after the maximum.
	Succ(node RBNode[K, V]) RBNode[K, V]
	// Pred returns the previous node in sorted order, the maximum before End
	// and nil before Begin.
	Pred(node RBNode[K, V]) RBNode[K, V]
	Foreach(action func(idx int64, color RBColor, key K, val V) bool)
	// Clone deep copies the shape, colors and pairs into an independent tree.
	Clone() RBTree[K, V]
	// Assign releases all nodes then clones src along with its ordering.
	// Assigning itself is a no-op.
	Assign(src RBTree[K, V])
	Release()
}
