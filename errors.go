package lshindex

import "errors"

// ErrAllocationFailure is returned when a build or grow operation
// cannot allocate the backing storage it needs. It is fatal: the
// index is left unusable and should be dropped.
var ErrAllocationFailure = errors.New("lshindex: allocation failure")

// ErrUnsupportedLayout is returned by Query against a Statistics-backed
// index; Statistics tracks occupancy only and was never meant to serve
// queries.
var ErrUnsupportedLayout = errors.New("lshindex: query unsupported on this storage layout")

// InvalidParameterError reports a build-time parameter violation, e.g.
// an odd k with UseU set, or L exceeding m(m-1)/2.
type InvalidParameterError struct {
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return "lshindex: invalid parameter: " + e.Reason
}

// PreconditionViolatedError reports a call made against an index in
// the wrong state, or with a nil argument that must not be nil.
type PreconditionViolatedError struct {
	Reason string
}

func (e *PreconditionViolatedError) Error() string {
	return "lshindex: precondition violated: " + e.Reason
}
