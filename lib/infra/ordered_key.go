package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
// Complex numbers are excluded, they have no natural order.
type OrderedKey interface {
	Integer | Float | ~string
}

// LessComparator is a strict weak ordering over K.
// It reports whether i must be placed before j.
type LessComparator[K any] func(i, j K) bool

// OrderedKeyComparator
// Assume i is the new key.
//  1. i == j (return 0)
//  2. i > j (return 1), turn to right part.
//  3. i < j (return -1), turn to left part.
type OrderedKeyComparator[K any] func(i, j K) int64

// Less is the default comparator of the ordered keys.
// NaN is not ordered, so float keys must not contain NaN.
func Less[K OrderedKey](i, j K) bool {
	return i < j
}

// Equivalent derives the key equality from the less comparator only,
// !(i < j) && !(j < i). The == operator is never consulted, so custom
// comparators stay consistent.
func (less LessComparator[K]) Equivalent(i, j K) bool {
	return !less(i, j) && !less(j, i)
}

// Reverse swaps the arguments to get the descending order.
func (less LessComparator[K]) Reverse() LessComparator[K] {
	return func(i, j K) bool {
		return less(j, i)
	}
}

// Comparator converts the less comparator into the three-way form.
func (less LessComparator[K]) Comparator() OrderedKeyComparator[K] {
	return func(i, j K) int64 {
		if less(i, j) {
			return -1
		} else if less(j, i) {
			return 1
		}
		return 0
	}
}
