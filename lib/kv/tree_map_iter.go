package kv

import (
	"iter"

	"github.com/samber/lo"

	"github.com/benz9527/xmap/lib/infra"
	"github.com/benz9527/xmap/lib/tree"
)

// Iterator points to an element of the tree map, or the end of it.
// It does not own the element. Erasing the element makes it dangling.
type Iterator[K any, V any] struct {
	owner *treeMap[K, V]
	node  tree.RBNode[K, V]
}

func (it *Iterator[K, V]) valid() bool {
	return it != nil && it.owner != nil && it.node != nil
}

func (it *Iterator[K, V]) IsEnd() bool {
	return it.valid() && it.node == it.owner.tree.End()
}

// Next moves to the next element. Advancing End returns ErrInvalidIterator
// and leaves the iterator unchanged.
func (it *Iterator[K, V]) Next() error {
	if !it.valid() {
		return infra.WrapErrorStackWithMessage(ErrInvalidIterator, "next of a detached iterator")
	}
	succ := it.owner.tree.Succ(it.node)
	if succ == nil {
		return it.owner.misuse(ErrInvalidIterator, "next of end")
	}
	it.node = succ
	return nil
}

// Prev moves to the previous element. Retreating Begin returns
// ErrInvalidIterator and leaves the iterator unchanged.
func (it *Iterator[K, V]) Prev() error {
	if !it.valid() {
		return infra.WrapErrorStackWithMessage(ErrInvalidIterator, "prev of a detached iterator")
	}
	pred := it.owner.tree.Pred(it.node)
	if pred == nil {
		return it.owner.misuse(ErrInvalidIterator, "prev of begin")
	}
	it.node = pred
	return nil
}

// Entry returns the pair of the element. The second field of the
// pair is able to be modified in place.
func (it *Iterator[K, V]) Entry() (*infra.Pair[K, V], error) {
	if !it.valid() {
		return nil, infra.WrapErrorStackWithMessage(ErrInvalidIterator, "dereference a detached iterator")
	}
	if it.IsEnd() {
		return nil, it.owner.misuse(ErrInvalidIterator, "dereference end")
	}
	return it.node.Pair(), nil
}

// Key panics on End.
func (it *Iterator[K, V]) Key() K {
	return lo.Must(it.Entry()).First()
}

// Val panics on End.
func (it *Iterator[K, V]) Val() V {
	return lo.Must(it.Entry()).Second
}

// Equal reports whether both iterators point to the same element
// of the same map.
func (it *Iterator[K, V]) Equal(other *Iterator[K, V]) bool {
	if it == nil || other == nil {
		return it == other
	}
	return it.owner == other.owner && it.node == other.node
}

// All visits the elements in ascending order. The visiting element
// is allowed to be erased by the yield.
func (m *treeMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		end := m.tree.End()
		for node := m.tree.Begin(); node != nil && node != end; {
			next := m.tree.Succ(node)
			if !yield(node.Key(), node.Val()) {
				return
			}
			node = next
		}
	}
}

// Backward visits the elements in descending order.
func (m *treeMap[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for node := m.tree.Pred(m.tree.End()); node != nil; {
			prev := m.tree.Pred(node)
			if !yield(node.Key(), node.Val()) {
				return
			}
			node = prev
		}
	}
}
