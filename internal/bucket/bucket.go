// Package bucket implements the three second-level storage layouts an
// index table can use: LinkedChain (the mutable "model" table used
// during incremental insert and during the HybridChain build pass),
// Statistics (occupancy-only, unsupported for query), and HybridChain
// (the packed, read-mostly layout used by a fully built index).
//
// The packed cell layout constants below (MaxNonoverflowPointsPerBucket,
// NFieldsPerIndexOfOverflow, NBitsForBucketLength) are implementer
// choices, recorded as such in DESIGN.md.
package bucket

// Layout identifies a bucket-store storage kind.
type Layout int

const (
	LayoutLinkedChain Layout = iota + 1
	LayoutStatistics
	LayoutHybridChain
)

func (l Layout) String() string {
	switch l {
	case LayoutLinkedChain:
		return "LinkedChain"
	case LayoutStatistics:
		return "Statistics"
	case LayoutHybridChain:
		return "HybridChain"
	default:
		return "Unknown"
	}
}

// Packed-cell layout constants for HybridChain. The header cell (cell
// index 0 of a bucket) stores the bucket length in its BucketLength
// field, or 0 once the bucket exceeds MaxNonoverflowPointsPerBucket
// points; the following NFieldsPerIndexOfOverflow cells then double as
// overflow-offset storage in their otherwise-unused BucketLength field.
// PointIndex/IsLastPoint fields remain live point data throughout.
const (
	MaxNonoverflowPointsPerBucket = 8
	NFieldsPerIndexOfOverflow     = 4
	NBitsForBucketLength          = 6
)

// Key identifies one bucket by its folded (main, ctl) hash pair.
type Key struct {
	Main uint32
	Ctl  uint32
}

// Store is the common query surface every layout's back-end
// implements: enumerate the candidates of bucket (main, ctl) until
// visit says to stop. LinkedChain, HybridChain, and Statistics all
// satisfy it; Statistics always returns ErrUnsupportedQuery.
type Store interface {
	Walk(main, ctl uint32, visit func(pointIndex uint32) (cont bool)) error
}

var (
	_ Store = (*LinkedChain)(nil)
	_ Store = (*HybridChain)(nil)
	_ Store = (*Statistics)(nil)
)
