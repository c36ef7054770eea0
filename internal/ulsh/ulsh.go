// Package ulsh computes the per-point, per-tuple integer hash vector
// that every downstream bucket hash is built from: for each scalar
// function in a tuple, the floored, W-quantized projection of the
// point.
//
// Grounded on projection.Family for the coefficients and on the
// teacher's scalar-loop style in distance.go (pre-port) for the inner
// product — no SIMD here, the tuples are short (k or k/2 scalar
// functions) so a plain loop is the right shape, not an optimization
// target.
package ulsh

import (
	"math"

	"github.com/pstable/lshindex/projection"
)

// Tuple is the integer hash vector produced for one point under one
// hash-function tuple. Values are the mathematical floor of the
// quantized projection, wrapped to uint32 — the U-hash component
// treats them as ring residues, so the wrap itself carries no
// information loss relevant to bucket hashing.
type Tuple []uint32

// Compute hashes point x (length f.Dim()) through tuple i of family f
// using every one of its d coordinates (the "dense" mode).
func Compute(f *projection.Family, i int, x []float64) Tuple {
	n := f.HFTuplesLength()
	out := make(Tuple, n)
	for j := 0; j < n; j++ {
		out[j] = quantize(dot(f.A(i, j), x), f.B(i, j), f.W())
	}
	return out
}

// ComputeSubsampled hashes a preconditioned point x (length
// NextPow2(d), already Hadamard-transformed with the diagonal sign
// applied) through tuple i of family f, using only the first subdim
// coordinates of x as addressed through each function's ran_dim
// permutation.
func ComputeSubsampled(f *projection.Family, i int, x []float64, subdim int) Tuple {
	n := f.HFTuplesLength()
	out := make(Tuple, n)
	for j := 0; j < n; j++ {
		a := f.A(i, j)
		perm := f.RanDim(i, j)
		var value float64
		for d := 0; d < subdim; d++ {
			value += x[perm[d]] * a[d]
		}
		out[j] = quantize(value, f.B(i, j), f.W())
	}
	return out
}

func dot(a []float64, x []float64) float64 {
	var sum float64
	for i, v := range a {
		sum += v * x[i]
	}
	return sum
}

func quantize(proj, b, w float64) uint32 {
	v := math.Floor((proj + b) / w)
	return uint32(int64(v))
}
