package tree

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	ErrRBTreeRedViolation   = errors.New("rbtree red violation")
	ErrRBTreeBlackViolation = errors.New("rbtree black violation")
	ErrRBTreeRootViolation  = errors.New("rbtree root violation")
	ErrRBTreeOrderViolation = errors.New("rbtree order violation")
	ErrRBTreeLinkViolation  = errors.New("rbtree link violation")
	ErrRBTreeSizeViolation  = errors.New("rbtree size violation")
)

func isBlack[K any, V any](node RBNode[K, V]) bool {
	return node == nil || node.Color() == Black
}

func isRed[K any, V any](node RBNode[K, V]) bool {
	return node != nil && node.Color() == Red
}

func blackDepthTo[K any, V any](target, to RBNode[K, V]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.Parent() {
		if isBlack[K, V](aux) {
			depth++
		}
	}
	return depth
}

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

// Inorder traversal, the action returns false to stop.
func inorder[K any, V any](tree RBTree[K, V], action func(node RBNode[K, V]) bool) {
	size := tree.Len()
	var aux RBNode[K, V] = tree.Root()
	if size < 0 || aux == nil {
		return
	}

	stack := make([]RBNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		aux = stack[size-1]
		if !action(aux) {
			return
		}
		stack = stack[:size-1]
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
}

// Inorder traversal to validate the rbtree properties.
func RedViolationValidate[K any, V any](tree RBTree[K, V]) error {
	var err error
	inorder[K, V](tree, func(node RBNode[K, V]) bool {
		if isRed[K, V](node) && (isRed[K, V](node.Left()) || isRed[K, V](node.Right())) {
			err = fmt.Errorf("red node %v owns a red child, %w", node.Key(), ErrRBTreeRedViolation)
			return false
		}
		return true
	})
	return err
}

// BFS traversal to load all nodes owning at least one nil child.
func bfsLeaves[K any, V any](tree RBTree[K, V]) []RBNode[K, V] {
	size := tree.Len()
	var aux RBNode[K, V] = tree.Root()
	if size < 0 || aux == nil {
		return nil
	}

	leaves := make([]RBNode[K, V], 0, size>>1+1)
	queue := make([]RBNode[K, V], 0, size>>1)
	defer func() {
		clear(queue)
	}()
	queue = append(queue, aux)

	for len(queue) > 0 {
		aux = queue[0]
		l, r := aux.Left(), aux.Right()
		if /* nil leaves, keep one */ l == nil || r == nil {
			leaves = append(leaves, aux)
		}
		if l != nil {
			queue = append(queue, l)
		}
		if r != nil {
			queue = append(queue, r)
		}
		queue = queue[1:]
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

2-3-4 tree like:

	       <8> --- [13] --- <15>
		  /  \             /    \
		 /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[K any, V any](tree RBTree[K, V]) error {
	leaves := bfsLeaves[K, V](tree)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo[K, V](leaves[0], nil)
	for i := 1; i < len(leaves); i++ {
		if depth := blackDepthTo[K, V](leaves[i], nil); depth != blackDepth {
			return fmt.Errorf("black depth of %v is %d, expected %d, %w",
				leaves[i].Key(), depth, blackDepth, ErrRBTreeBlackViolation)
		}
	}
	return nil
}

func RootViolationValidate[K any, V any](tree RBTree[K, V]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if root.Color() != Black {
		return fmt.Errorf("root %v is %s, %w", root.Key(), root.Color(), ErrRBTreeRootViolation)
	}
	if root.Direction() != Root || root.Parent() != nil {
		return fmt.Errorf("root %v is not linked to the sentinel, %w", root.Key(), ErrRBTreeRootViolation)
	}
	return nil
}

// The keys must be strictly increasing by the tree's comparator.
func OrderViolationValidate[K any, V any](tree RBTree[K, V]) error {
	var (
		err  error
		prev RBNode[K, V]
		less = tree.Comparator()
	)
	inorder[K, V](tree, func(node RBNode[K, V]) bool {
		if prev == nil {
			prev = node
			return true
		}
		if less.Equivalent(prev.Key(), node.Key()) {
			err = fmt.Errorf("duplicate key %v, %w", node.Key(), ErrRBTreeOrderViolation)
			return false
		}
		if !less(prev.Key(), node.Key()) {
			err = fmt.Errorf("key %v is not less than %v, %w", prev.Key(), node.Key(), ErrRBTreeOrderViolation)
			return false
		}
		prev = node
		return true
	})
	return err
}

// The parent of each child must be the node itself.
func LinkViolationValidate[K any, V any](tree RBTree[K, V]) error {
	var err error
	inorder[K, V](tree, func(node RBNode[K, V]) bool {
		for _, child := range []RBNode[K, V]{node.Left(), node.Right()} {
			if child != nil && child.Parent() != node {
				err = fmt.Errorf("child %v of %v links to another parent, %w", child.Key(), node.Key(), ErrRBTreeLinkViolation)
				return false
			}
		}
		return true
	})
	return err
}

func SizeViolationValidate[K any, V any](tree RBTree[K, V]) error {
	count := int64(0)
	inorder[K, V](tree, func(RBNode[K, V]) bool {
		count++
		return true
	})
	if count != tree.Len() {
		return fmt.Errorf("traversed %d nodes, length is %d, %w", count, tree.Len(), ErrRBTreeSizeViolation)
	}
	return nil
}

// Validate checks all the rbtree properties and the links.
func Validate[K any, V any](tree RBTree[K, V]) error {
	return multierr.Combine(
		RootViolationValidate[K, V](tree),
		RedViolationValidate[K, V](tree),
		BlackViolationValidate[K, V](tree),
		OrderViolationValidate[K, V](tree),
		LinkViolationValidate[K, V](tree),
		SizeViolationValidate[K, V](tree),
	)
}
