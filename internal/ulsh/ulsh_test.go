package ulsh

import (
	"testing"

	"github.com/pstable/lshindex/distance"
	"github.com/pstable/lshindex/internal/randsrc"
	"github.com/pstable/lshindex/projection"
	"github.com/stretchr/testify/require"
)

func TestComputeDeterministic(t *testing.T) {
	f, err := projection.Build(randsrc.NewMathRand(7), 2, 4, 8, 4.0, distance.L2)
	require.NoError(t, err)

	x := make([]float64, 8)
	for i := range x {
		x[i] = float64(i) * 0.1
	}

	a := Compute(f, 0, x)
	b := Compute(f, 0, x)
	require.Equal(t, a, b)
	require.Len(t, a, 4)
}

func TestComputeSubsampledReturnsTupleLength(t *testing.T) {
	f, err := projection.Build(randsrc.NewMathRand(7), 1, 2, 8, 4.0, distance.L2)
	require.NoError(t, err)

	x := make([]float64, 8)
	for i := range x {
		x[i] = float64(i)
	}

	out := ComputeSubsampled(f, 0, x, 8)
	require.Len(t, out, 2)
}

func TestQuantizeFloorsTowardNegativeInfinity(t *testing.T) {
	require.Equal(t, ^uint32(0), quantize(-0.5, 0, 1))
	require.Equal(t, uint32(0), quantize(0.5, 0, 1))
}
