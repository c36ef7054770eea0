// Package hadamard implements the in-place, unnormalized Walsh-Hadamard
// transform used to precondition points for the ACHash variant, plus
// the sign-diagonal application that must run before it.
//
// The butterfly is the standard iterative radix-2 construction, kept
// as flat, allocation-light scalar loops.
package hadamard

import "fmt"

// NextPow2 returns the smallest power of two that is >= n.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Transform computes the unnormalized Walsh-Hadamard transform of buf
// in place. len(buf) must be a power of two. The transform is its own
// inverse up to a scale of len(buf): Transform(Transform(x)) == len(x)*x.
func Transform(buf []float64) error {
	n := len(buf)
	if n == 0 || n&(n-1) != 0 {
		return fmt.Errorf("hadamard: length %d is not a power of two", n)
	}
	for size := 1; size < n; size <<= 1 {
		for start := 0; start < n; start += size * 2 {
			for i := start; i < start+size; i++ {
				x, y := buf[i], buf[i+size]
				buf[i] = x + y
				buf[i+size] = x - y
			}
		}
	}
	return nil
}

// Precondition applies the ACHash preconditioning: zero-pads x up to
// NextPow2(len(x)), flips the sign of each coordinate by the
// corresponding diagonal entry, then runs Transform over the padded
// buffer. diagonal must have at least len(x) entries. The returned
// slice is always freshly allocated and safe for the caller to mutate
// or retain.
func Precondition(x []float64, diagonal []int8) ([]float64, error) {
	n := NextPow2(len(x))
	buf := make([]float64, n)
	for i, v := range x {
		sign := float64(diagonal[i])
		buf[i] = v * sign
	}
	if err := Transform(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
