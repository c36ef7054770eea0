// Package testutil provides testing helpers shared across the LSH
// index test suites: seeded random point generation and brute-force
// ground truth for recall/soundness checks.
//
// This package is intended for use in tests and benchmarks only.
//
//	rng := testutil.NewRNG(4711)
//	pts := rng.UniformPoints(1000, 32, 0, 1)
//	truth := testutil.BruteForceWithinR(pts, query, 1.5)
package testutil
