package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexCompare(t *testing.T) {
	var c1 complex128 = complex(1.0, 2.0) // 1.0+2.0i
	var c2 complex128 = complex(1.1, 2.0) // 1.1+2.0i
	_c1 := math.Hypot(real(c1), imag(c1))
	_c2 := math.Hypot(real(c2), imag(c2))
	assert.Greater(t, _c2, _c1)
}

func TestLessComparator(t *testing.T) {
	less := LessComparator[int](Less[int])
	require.True(t, less(1, 2))
	require.False(t, less(2, 1))
	require.False(t, less(2, 2))

	require.True(t, less.Equivalent(3, 3))
	require.False(t, less.Equivalent(3, 4))

	desc := less.Reverse()
	require.True(t, desc(2, 1))
	require.False(t, desc(1, 2))

	cmp := less.Comparator()
	require.Equal(t, int64(-1), cmp(1, 2))
	require.Equal(t, int64(0), cmp(2, 2))
	require.Equal(t, int64(1), cmp(3, 2))
}

func TestLessComparator_CustomEquivalence(t *testing.T) {
	// Case-insensitive on the first byte only, so "apple" and "Avocado" are equivalent.
	lower := func(b byte) byte {
		if b >= 'A' && b <= 'Z' {
			return b + 'a' - 'A'
		}
		return b
	}
	less := LessComparator[string](func(i, j string) bool {
		return lower(i[0]) < lower(j[0])
	})
	require.True(t, less.Equivalent("apple", "Avocado"))
	require.False(t, less.Equivalent("apple", "banana"))
	require.Equal(t, int64(0), less.Comparator()("apple", "Avocado"))
}

func TestPair(t *testing.T) {
	p := NewPair(1, "a")
	require.Equal(t, 1, p.First())
	require.Equal(t, "a", p.Second)
	p.Second = "b"
	require.Equal(t, "b", p.Second)
	require.Equal(t, "(1, b)", p.String())
}
