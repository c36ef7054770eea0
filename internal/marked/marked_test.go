package marked

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAndReset(t *testing.T) {
	s := New(16)

	assert.False(t, s.IsMarked(3))
	s.Mark(3)
	assert.True(t, s.IsMarked(3))
	assert.Equal(t, 1, s.Touched())

	s.Mark(3) // idempotent
	assert.Equal(t, 1, s.Touched())

	s.Mark(7)
	assert.Equal(t, 2, s.Touched())

	s.Reset()
	assert.False(t, s.IsMarked(3))
	assert.False(t, s.IsMarked(7))
	assert.Equal(t, 0, s.Touched())
}

func TestTestAndMark(t *testing.T) {
	s := New(4)
	require.False(t, s.TestAndMark(0))
	require.True(t, s.TestAndMark(0))
	s.Reset()
	require.False(t, s.TestAndMark(0))
}

func TestGrowPreservesMarks(t *testing.T) {
	s := New(4)
	s.Mark(1)
	s.Grow(100)
	assert.Equal(t, 100, s.Cap())
	assert.True(t, s.IsMarked(1))
	assert.False(t, s.IsMarked(50))
}

func TestGrowNoopWhenSufficient(t *testing.T) {
	s := New(64)
	s.Grow(10)
	assert.Equal(t, 64, s.Cap())
}
