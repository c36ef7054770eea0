// Package randsrc provides the random primitives the LSH-function
// family and ACHash preconditioning are built from: uniform reals,
// standard Gaussian and Cauchy draws, and a Rademacher (+-1) diagonal
// generator. A struct-held *rand.Rand backs the default implementation
// so identically-seeded families produce identical output.
package randsrc

import (
	"math"
	"math/rand"
)

// Source is the random-primitive surface required to build an LSH
// index deterministically from a seed.
type Source interface {
	UniformReal(a, b float64) float64
	StandardGaussian() float64
	StandardCauchy() float64
	CreateDiagonal(out []int8)
}

// MathRand is a Source backed by a struct-held *rand.Rand, seeded once
// at construction. Two MathRand values constructed with the same seed
// and driven through the same sequence of calls produce identical
// output, which is what lets a test rebuild an identical family twice.
type MathRand struct {
	rng *rand.Rand
}

// NewMathRand creates a MathRand seeded with seed.
func NewMathRand(seed int64) *MathRand {
	return &MathRand{rng: rand.New(rand.NewSource(seed))} //nolint:gosec
}

// UniformReal returns a value uniformly distributed in [a, b).
func (m *MathRand) UniformReal(a, b float64) float64 {
	return a + m.rng.Float64()*(b-a)
}

// StandardGaussian returns a draw from N(0,1).
func (m *MathRand) StandardGaussian() float64 {
	return m.rng.NormFloat64()
}

// StandardCauchy returns a draw from the standard Cauchy distribution,
// obtained by the inverse-CDF transform of a uniform draw on (0,1).
func (m *MathRand) StandardCauchy() float64 {
	// tan(pi*(u-0.5)) is the standard inverse-CDF construction; u is
	// kept strictly inside (0,1) to avoid the poles at u=0 or u=1.
	u := m.rng.Float64()
	for u == 0 {
		u = m.rng.Float64()
	}
	return math.Tan(math.Pi * (u - 0.5))
}

// CreateDiagonal fills out with i.i.d. +-1 values (a Rademacher diagonal).
func (m *MathRand) CreateDiagonal(out []int8) {
	for i := range out {
		if m.rng.Intn(2) == 0 {
			out[i] = -1
		} else {
			out[i] = 1
		}
	}
}

// Permutation returns a uniformly random permutation of 0..n-1.
func (m *MathRand) Permutation(n int) []int {
	p := m.rng.Perm(n)
	out := make([]int, n)
	copy(out, p)
	return out
}
