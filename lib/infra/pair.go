package infra

import "fmt"

// Pair is the element type stored by the ordered containers.
// The first field is fixed at construction, only the second
// field is able to be modified by the holder.
type Pair[K any, V any] struct {
	first  K
	Second V
}

func NewPair[K any, V any](first K, second V) Pair[K, V] {
	return Pair[K, V]{
		first:  first,
		Second: second,
	}
}

func (p Pair[K, V]) First() K {
	return p.first
}

func (p Pair[K, V]) String() string {
	return fmt.Sprintf("(%v, %v)", p.first, p.Second)
}
