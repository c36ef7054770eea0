package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestNoopCountersDoNothing(t *testing.T) {
	var c Counters = NoopCounters{}
	c.AddDistanceComps(10)
	c.ObserveBuildDuration(time.Millisecond)
	c.ObserveQueryDuration(time.Millisecond)
	c.ObserveCandidates(5)
}

func TestPrometheusCountersRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCounters(reg)

	c.AddDistanceComps(3)
	c.ObserveBuildDuration(10 * time.Millisecond)
	c.ObserveQueryDuration(5 * time.Millisecond)
	c.ObserveCandidates(7)

	mfs, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, mfs)
}
