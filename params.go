package lshindex

import (
	"fmt"

	"github.com/pstable/lshindex/distance"
	"github.com/pstable/lshindex/internal/bucket"
)

// Layout re-exports internal/bucket's storage-kind enum at the public
// API surface, since Parameters.StorageKind is part of the public
// contract and callers need to be able to name a kind without
// reaching into an internal package.
type Layout = bucket.Layout

const (
	LinkedChain = bucket.LayoutLinkedChain
	Statistics  = bucket.LayoutStatistics
	HybridChain = bucket.LayoutHybridChain
)

// Parameters is the build-time parameter record an Index is built or
// grown from.
type Parameters struct {
	R                  float64
	R2                 float64
	SuccessProbability float64
	Dimension          int
	UseU               bool
	K                  int
	M                  int // independent u-tuples, only meaningful when UseU
	L                  int // tables
	W                  float64
	T                  int
	StorageKind        Layout
	Mode               distance.Mode
}

// NHFTuples returns the number of independent hash-function tuples
// the projection family must hold: m when UseU, else L.
func (p Parameters) NHFTuples() int {
	if p.UseU {
		return p.M
	}
	return p.L
}

// HFTuplesLength returns the length of each hash-function tuple: k/2
// when UseU, else k.
func (p Parameters) HFTuplesLength() int {
	if p.UseU {
		return p.K / 2
	}
	return p.K
}

// Validate checks Parameters' invariants, returning an
// *InvalidParameterError describing the first violation found.
func (p Parameters) Validate() error {
	if p.Dimension <= 0 {
		return &InvalidParameterError{Reason: "dimension must be positive"}
	}
	if p.K <= 0 {
		return &InvalidParameterError{Reason: "k must be positive"}
	}
	if p.L <= 0 {
		return &InvalidParameterError{Reason: "L must be positive"}
	}
	if p.W <= 0 {
		return &InvalidParameterError{Reason: "W must be positive"}
	}
	if p.UseU {
		if p.K%2 != 0 {
			return &InvalidParameterError{Reason: fmt.Sprintf("k must be even when UseU is set, got k=%d", p.K)}
		}
		if p.M <= 1 {
			return &InvalidParameterError{Reason: fmt.Sprintf("m must be > 1 when UseU is set, got m=%d", p.M)}
		}
		maxL := p.M * (p.M - 1) / 2
		if p.L > maxL {
			return &InvalidParameterError{Reason: fmt.Sprintf("L=%d exceeds m(m-1)/2=%d for m=%d", p.L, maxL, p.M)}
		}
	}
	switch p.StorageKind {
	case bucket.LayoutLinkedChain, bucket.LayoutStatistics, bucket.LayoutHybridChain:
	default:
		return &InvalidParameterError{Reason: fmt.Sprintf("unknown storage kind %d", p.StorageKind)}
	}
	return nil
}
