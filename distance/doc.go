// Package distance implements the short-circuiting R-near-neighbor filter.
//
// A Filter holds a radius threshold and a Mode (L1 or L2) and decides,
// for a candidate point against a query, whether the candidate lies
// within the radius — stopping the running sum as soon as it can no
// longer matter.
package distance
