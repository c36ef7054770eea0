package uhash

import (
	"testing"

	"github.com/pstable/lshindex/internal/randsrc"
	"github.com/pstable/lshindex/internal/ulsh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDeterministic(t *testing.T) {
	c := Build(randsrc.NewMathRand(1), 4)
	tuple := ulsh.Tuple{1, 2, 3, 4}

	m1, c1 := c.Hash(tuple)
	m2, c2 := c.Hash(tuple)
	assert.Equal(t, m1, m2)
	assert.Equal(t, c1, c2)
}

func TestCombinePairSymmetricUnderXor(t *testing.T) {
	m, c := CombinePair(5, 9, 5, 9)
	assert.Equal(t, uint32(0), m)
	assert.Equal(t, uint32(0), c)
}

func TestTableSizeIsPow2AtOrAboveN(t *testing.T) {
	assert.Equal(t, 16, TableSize(1))
	assert.Equal(t, 16, TableSize(16))
	assert.Equal(t, 32, TableSize(17))
	assert.Equal(t, 1024, TableSize(1000))
}

func TestPairIterLexOrder(t *testing.T) {
	it := NewPairIter(4)
	var got [][2]int
	for {
		i1, i2, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, [2]int{i1, i2})
	}
	want := [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i], got[i])
	}
}

func TestPairDirect(t *testing.T) {
	i1, i2 := Pair(4, 5)
	assert.Equal(t, 2, i1)
	assert.Equal(t, 3, i2)
}
