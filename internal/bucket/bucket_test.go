package bucket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkedChainInsertAndWalk(t *testing.T) {
	t1 := NewLinkedChain(16)
	t1.Insert(3, 9, 100)
	t1.Insert(3, 9, 101)
	t1.Insert(3, 9, 102)

	var got []uint32
	t1.Walk(3, 9, func(p uint32) bool { got = append(got, p); return true })

	assert.ElementsMatch(t, []uint32{100, 101, 102}, got)
}

func TestLinkedChainDistinctCtlSameSlot(t *testing.T) {
	t1 := NewLinkedChain(16)
	t1.Insert(3, 1, 10)
	t1.Insert(3, 2, 20)

	var a, b []uint32
	t1.Walk(3, 1, func(p uint32) bool { a = append(a, p); return true })
	t1.Walk(3, 2, func(p uint32) bool { b = append(b, p); return true })

	assert.Equal(t, []uint32{10}, a)
	assert.Equal(t, []uint32{20}, b)
}

func TestLinkedChainResetClearsBuckets(t *testing.T) {
	t1 := NewLinkedChain(16)
	t1.Insert(3, 9, 100)
	t1.Reset()

	_, ok := t1.Find(3, 9)
	assert.False(t, ok)
	assert.Empty(t, t1.Buckets())
}

func TestHybridChainPackSmallBucket(t *testing.T) {
	model := NewLinkedChain(16)
	for i := uint32(0); i < 3; i++ {
		model.Insert(5, 7, i)
	}

	h := PackFromLinkedChain(model)

	var got []uint32
	h.Walk(5, 7, func(p uint32) bool {
		got = append(got, p)
		return true
	})
	assert.Len(t, got, 3)
}

func TestHybridChainPackOverflowBucket(t *testing.T) {
	model := NewLinkedChain(16)
	const n = 20
	for i := uint32(0); i < n; i++ {
		model.Insert(5, 7, i)
	}
	require.Greater(t, n, MaxNonoverflowPointsPerBucket)

	h := PackFromLinkedChain(model)

	var got []uint32
	h.Walk(5, 7, func(p uint32) bool {
		got = append(got, p)
		return true
	})
	assert.Len(t, got, n)
}

func TestHybridChainWalkEarlyStop(t *testing.T) {
	model := NewLinkedChain(16)
	for i := uint32(0); i < 20; i++ {
		model.Insert(5, 7, i)
	}
	h := PackFromLinkedChain(model)

	count := 0
	h.Walk(5, 7, func(p uint32) bool {
		count++
		return count < 5
	})
	assert.Equal(t, 5, count)
}

func TestHybridChainPackEquivalenceWithModel(t *testing.T) {
	model := NewLinkedChain(16)
	for i := uint32(0); i < 50; i++ {
		model.Insert(uint32(i%4), uint32(i%3), i)
	}
	h := PackFromLinkedChain(model)

	for _, ref := range model.Buckets() {
		want := model.PointsFor(ref)
		var got []uint32
		h.Walk(uint32(ref.Slot), ref.Ctl, func(p uint32) bool {
			got = append(got, p)
			return true
		})
		assert.ElementsMatch(t, want, got)
	}
}

func TestStatisticsWalkUnsupported(t *testing.T) {
	s := NewStatistics(16)
	s.Insert(1, 2, 3)
	assert.Equal(t, uint64(1), s.BucketSize(1, 2))

	err := s.Walk(1, 2, func(uint32) bool { return true })
	assert.ErrorIs(t, err, ErrUnsupportedQuery)
}

func TestLayoutString(t *testing.T) {
	assert.Equal(t, "LinkedChain", LayoutLinkedChain.String())
	assert.Equal(t, "Statistics", LayoutStatistics.String())
	assert.Equal(t, "HybridChain", LayoutHybridChain.String())
}
