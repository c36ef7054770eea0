// Package uhash implements the second-level bucket hash: it folds an
// integer hash tuple down to a (main, ctl) pair over a prime modulus,
// shared across every one of an index's L tables so each point's pair
// can be precomputed once and reused while packing every table.
//
// UHPrime is the largest prime below 2^32, the modulus classic E2LSH
// bucket hashing used; recorded in DESIGN.md as a standalone numeric
// constant, not a library choice.
package uhash

import "github.com/pstable/lshindex/internal/ulsh"

// UHPrime is the modulus the main and control hashes are reduced
// against.
const UHPrime uint64 = 4294967291

// Coeffs holds one pair of independent random coefficient vectors —
// mainHashA and controlHash1 — used to fold a k-length integer tuple
// into a (main, ctl) pair. A single Coeffs value is shared across all
// L tables of an index, so each point's pair can be precomputed once
// and reused while packing every table.
type Coeffs struct {
	mainHashA    []uint64
	controlHash1 []uint64
}

// RandSource is the subset of randsrc.Source this package draws
// coefficients from.
type RandSource interface {
	UniformReal(a, b float64) float64
}

// Build draws a fresh Coeffs of length k. Coefficients are drawn
// uniformly from [1, UHPrime) — zero coefficients would let a tuple
// position vanish entirely, which the original construction avoids.
func Build(src RandSource, k int) Coeffs {
	c := Coeffs{
		mainHashA:    make([]uint64, k),
		controlHash1: make([]uint64, k),
	}
	for i := 0; i < k; i++ {
		c.mainHashA[i] = 1 + uint64(src.UniformReal(0, float64(UHPrime-1)))
		c.controlHash1[i] = 1 + uint64(src.UniformReal(0, float64(UHPrime-1)))
	}
	return c
}

// Hash folds tuple into a (main, ctl) pair modulo UHPrime.
func (c Coeffs) Hash(tuple ulsh.Tuple) (main, ctl uint32) {
	var m, t uint64
	for j, v := range tuple {
		vv := uint64(v) % UHPrime
		m = (m + c.mainHashA[j]*vv) % UHPrime
		t = (t + c.controlHash1[j]*vv) % UHPrime
	}
	return uint32(m), uint32(t)
}

// CombinePair folds two u-function (main, ctl) pairs into the single
// g-function pair a table actually buckets on. The combination must
// be identical at build and at query time; XOR is a fixed, associative
// choice that satisfies that.
func CombinePair(main1, ctl1, main2, ctl2 uint32) (main, ctl uint32) {
	return main1 ^ main2, ctl1 ^ ctl2
}

// TableSize returns the bucket-directory size to use for an estimated
// point count n: the next power of two at or above n, floored at a
// small minimum so tiny indexes don't degenerate to a single bucket.
func TableSize(n int) int {
	const min = 16
	size := min
	for size < n {
		size <<= 1
	}
	return size
}

// Slot returns the directory slot a main hash falls into for a
// directory of the given size (a power of two).
func Slot(main uint32, size int) int {
	return int(main) & (size - 1)
}
