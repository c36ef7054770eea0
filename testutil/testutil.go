package testutil

import "math/rand"

// RNG wraps a struct-held *rand.Rand so tests can reproduce an
// identical point set across runs from the same seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates an RNG seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec
		seed: seed,
	}
}

// Reset rewinds the RNG back to its initial seed.
func (r *RNG) Reset() {
	r.rand.Seed(r.seed)
}

// Seed returns the RNG's initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// UniformPoints generates num points of the given dimension with
// coordinates drawn uniformly from [lo, hi).
func (r *RNG) UniformPoints(num, dim int, lo, hi float64) [][]float64 {
	span := hi - lo
	pts := make([][]float64, num)
	for i := range pts {
		p := make([]float64, dim)
		for j := range p {
			p[j] = lo + r.rand.Float64()*span
		}
		pts[i] = p
	}
	return pts
}

// GaussianPoints generates num points of the given dimension with
// coordinates drawn from N(0,1).
func (r *RNG) GaussianPoints(num, dim int) [][]float64 {
	pts := make([][]float64, num)
	for i := range pts {
		p := make([]float64, dim)
		for j := range p {
			p[j] = r.rand.NormFloat64()
		}
		pts[i] = p
	}
	return pts
}

// distL2 returns the squared Euclidean distance between a and b.
func distL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// BruteForceWithinR returns the indices into pts of every point whose
// L2 distance to q is at most r — the ground truth a recall test
// compares an index's results against.
func BruteForceWithinR(pts [][]float64, q []float64, r float64) []int {
	var out []int
	r2 := r * r
	for i, p := range pts {
		if distL2(p, q) <= r2 {
			out = append(out, i)
		}
	}
	return out
}
