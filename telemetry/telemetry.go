// Package telemetry defines the process-wide timing counters an index
// reports build/insert/query activity to, and two implementations: a
// zero-overhead no-op used by default, and a Prometheus-backed one
// wired into cmd/lshbench.
package telemetry

import "time"

// Counters is the timing/accounting surface an Index reports against.
type Counters interface {
	// AddDistanceComps records n additional distance-filter evaluations,
	// whether or not they resulted in an accepted candidate.
	AddDistanceComps(n int)
	// ObserveBuildDuration records the wall-clock time of one full
	// Build/BuildAC call.
	ObserveBuildDuration(d time.Duration)
	// ObserveQueryDuration records the wall-clock time of one Query/QueryAC call.
	ObserveQueryDuration(d time.Duration)
	// ObserveCandidates records the number of points the marked-set
	// walk touched during one query, before dedup.
	ObserveCandidates(n int)
}

// NoopCounters implements Counters with no-ops; it is the default
// used when no Counters is configured.
type NoopCounters struct{}

func (NoopCounters) AddDistanceComps(int)             {}
func (NoopCounters) ObserveBuildDuration(time.Duration) {}
func (NoopCounters) ObserveQueryDuration(time.Duration) {}
func (NoopCounters) ObserveCandidates(int)             {}

var _ Counters = NoopCounters{}
