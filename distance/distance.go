package distance

import "fmt"

// Mode selects the norm used by the LSH-function family and the
// distance filter. The same Mode must be used for both.
type Mode int

const (
	L2 Mode = iota
	L1
)

func (m Mode) String() string {
	switch m {
	case L2:
		return "L2"
	case L1:
		return "L1"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Filter decides whether a candidate point lies within a fixed radius
// of a query point, short-circuiting the running sum as soon as the
// threshold can no longer be satisfied.
type Filter struct {
	mode      Mode
	threshold float64 // R^2 for L2, R for L1
}

// NewFilter builds a Filter for the given mode and radius. threshold is
// R for Mode L1 and R*R for Mode L2 — callers pass the squared radius
// for L2 because that is what the running sum accumulates.
func NewFilter(mode Mode, threshold float64) Filter {
	return Filter{mode: mode, threshold: threshold}
}

// Mode returns the filter's distance mode.
func (f Filter) Mode() Mode {
	return f.mode
}

// Threshold returns the filter's comparison threshold (R^2 for L2, R for L1).
func (f Filter) Threshold() float64 {
	return f.threshold
}

// Within reports whether q and c are within the filter's radius,
// stopping the accumulation as soon as the partial sum exceeds the
// threshold. q and c must have equal length.
func (f Filter) Within(q, c []float64) bool {
	switch f.mode {
	case L1:
		return withinL1(q, c, f.threshold)
	default:
		return withinL2(q, c, f.threshold)
	}
}

func withinL2(q, c []float64, r2 float64) bool {
	var sum float64
	for i := range q {
		d := q[i] - c[i]
		sum += d * d
		if sum > r2 {
			return false
		}
	}
	return true
}

func withinL1(q, c []float64, r float64) bool {
	var sum float64
	for i := range q {
		d := q[i] - c[i]
		if d < 0 {
			d = -d
		}
		sum += d
		if sum > r {
			return false
		}
	}
	return true
}
