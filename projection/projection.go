// Package projection builds and holds the p-stable projection family
// the LSH index hashes points through: one projection vector and
// offset per scalar hash function, plus the auxiliary permutation and
// Rademacher diagonal each function needs when run in ACHash mode.
//
// The family is addressed as Family[tuple][hf], each entry built from
// a seeded source the same way a fixed-size nested float slice is
// filled coordinate by coordinate elsewhere in this codebase's
// ancestry: draw the source once, then fill every level of the
// [tuple][hf][d] shape from it in order.
package projection

import (
	"fmt"

	"github.com/pstable/lshindex/distance"
	"github.com/pstable/lshindex/internal/randsrc"
)

// Family holds the immutable projection vectors, offsets, and ACHash
// auxiliary arrays for every scalar hash function in an index. It is
// addressed as Family[tuple][hf], tuple in [0, nHFTuples) and hf in
// [0, hfTuplesLength).
type Family struct {
	nHFTuples      int
	hfTuplesLength int
	d              int
	w              float64
	mode           distance.Mode

	a        [][][]float64 // [tuple][hf][d]
	b        [][]float64   // [tuple][hf]
	ranDim   [][][]int     // [tuple][hf][d], permutation of 0..d-1
	diagonal [][][]int8    // [tuple][hf][d], +-1
}

// Build draws a fresh projection family: nHFTuples tuples of
// hfTuplesLength scalar hash functions each, over dimension d, with
// bucket width w. mode selects Gaussian (L2) or Cauchy (L1)
// projection coefficients. src supplies every random draw, so two
// Families built from identically-seeded sources are identical.
func Build(src randsrc.Source, nHFTuples, hfTuplesLength, d int, w float64, mode distance.Mode) (*Family, error) {
	if nHFTuples <= 0 || hfTuplesLength <= 0 || d <= 0 {
		return nil, fmt.Errorf("projection: invalid shape (nHFTuples=%d hfTuplesLength=%d d=%d)", nHFTuples, hfTuplesLength, d)
	}
	if w <= 0 {
		return nil, fmt.Errorf("projection: W must be positive, got %v", w)
	}

	f := &Family{
		nHFTuples:      nHFTuples,
		hfTuplesLength: hfTuplesLength,
		d:              d,
		w:              w,
		mode:           mode,
		a:              make([][][]float64, nHFTuples),
		b:              make([][]float64, nHFTuples),
		ranDim:         make([][][]int, nHFTuples),
		diagonal:       make([][][]int8, nHFTuples),
	}

	for i := 0; i < nHFTuples; i++ {
		f.a[i] = make([][]float64, hfTuplesLength)
		f.b[i] = make([]float64, hfTuplesLength)
		f.ranDim[i] = make([][]int, hfTuplesLength)
		f.diagonal[i] = make([][]int8, hfTuplesLength)

		for j := 0; j < hfTuplesLength; j++ {
			a := make([]float64, d)
			for k := 0; k < d; k++ {
				if mode == distance.L1 {
					a[k] = src.StandardCauchy()
				} else {
					a[k] = src.StandardGaussian()
				}
			}
			f.a[i][j] = a
			f.b[i][j] = src.UniformReal(0, w)

			if perm, ok := src.(interface{ Permutation(int) []int }); ok {
				f.ranDim[i][j] = perm.Permutation(d)
			} else {
				p := make([]int, d)
				for k := range p {
					p[k] = k
				}
				f.ranDim[i][j] = p
			}

			diag := make([]int8, d)
			src.CreateDiagonal(diag)
			f.diagonal[i][j] = diag
		}
	}

	return f, nil
}

// NHFTuples returns the number of hash-function tuples in the family.
func (f *Family) NHFTuples() int { return f.nHFTuples }

// HFTuplesLength returns the number of scalar functions per tuple.
func (f *Family) HFTuplesLength() int { return f.hfTuplesLength }

// Dim returns the point dimension the family was built for.
func (f *Family) Dim() int { return f.d }

// W returns the projection bucket width.
func (f *Family) W() float64 { return f.w }

// Mode returns the distance mode (and thus the projection coefficient
// distribution) the family was built with.
func (f *Family) Mode() distance.Mode { return f.mode }

// A returns the projection vector for tuple i, function j.
func (f *Family) A(i, j int) []float64 { return f.a[i][j] }

// B returns the scalar offset for tuple i, function j.
func (f *Family) B(i, j int) float64 { return f.b[i][j] }

// RanDim returns the coordinate permutation for tuple i, function j,
// used by ACHash subsampling.
func (f *Family) RanDim(i, j int) []int { return f.ranDim[i][j] }

// Diagonal returns the Rademacher sign diagonal for tuple i, function
// j, used by ACHash preconditioning.
func (f *Family) Diagonal(i, j int) []int8 { return f.diagonal[i][j] }
