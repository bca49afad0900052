package kv

import (
	"errors"
	"iter"

	"github.com/benz9527/xmap/lib/infra"
)

var (
	ErrInvalidIterator = errors.New("[tree-map] invalid iterator")
	ErrIndexOutOfBound = errors.New("[tree-map] index out of bound")
)

// OrderedMapReader is the read-only view of an ordered map.
// The absent key is never inserted through the reader.
type OrderedMapReader[K any, V any] interface {
	Len() int64
	Empty() bool
	// At returns ErrIndexOutOfBound if the key is absent.
	At(key K) (V, error)
	// Count returns 1 if the key is present, otherwise 0.
	Count(key K) int
	// Find returns the iterator of the key, or End if it is absent.
	Find(key K) *Iterator[K, V]
	Begin() *Iterator[K, V]
	End() *Iterator[K, V]
	Keys() []K
	Values() []V
	All() iter.Seq2[K, V]
	Backward() iter.Seq2[K, V]
}

type OrderedMap[K any, V any] interface {
	OrderedMapReader[K, V]
	// Index returns the reference of the value. The zero value is
	// inserted first if the key is absent.
	Index(key K) *V
	// Insert returns the iterator of the new element, or the element
	// that prevented the insertion with false.
	Insert(pair infra.Pair[K, V]) (*Iterator[K, V], bool)
	Set(key K, val V) (*Iterator[K, V], bool)
	// Erase returns ErrInvalidIterator if the iterator is End, belongs
	// to another map or has been erased.
	Erase(it *Iterator[K, V]) error
	// EraseKey returns the number of erased elements, 1 or 0.
	EraseKey(key K) int
	Clone() OrderedMap[K, V]
	Assign(src OrderedMapReader[K, V])
	Clear()
}
