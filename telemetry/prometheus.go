package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCounters implements Counters against a prometheus.Registerer,
// grouping every metric under the "lshindex" namespace.
type PrometheusCounters struct {
	distanceComps    prometheus.Counter
	buildDuration    prometheus.Histogram
	queryDuration    prometheus.Histogram
	candidatesPerQry prometheus.Histogram
}

// NewPrometheusCounters registers and returns a PrometheusCounters on reg.
func NewPrometheusCounters(reg prometheus.Registerer) *PrometheusCounters {
	factory := promauto.With(reg)

	return &PrometheusCounters{
		distanceComps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lshindex",
			Name:      "distance_comparisons_total",
			Help:      "Total number of distance-filter evaluations across all queries.",
		}),
		buildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lshindex",
			Name:      "build_duration_seconds",
			Help:      "Duration of Build/BuildAC calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		queryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lshindex",
			Name:      "query_duration_seconds",
			Help:      "Duration of Query/QueryAC calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		candidatesPerQry: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lshindex",
			Name:      "query_candidates",
			Help:      "Number of candidates visited per query, repeats across tables included, before distance filtering.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}),
	}
}

func (p *PrometheusCounters) AddDistanceComps(n int) {
	p.distanceComps.Add(float64(n))
}

func (p *PrometheusCounters) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusCounters) ObserveQueryDuration(d time.Duration) {
	p.queryDuration.Observe(d.Seconds())
}

func (p *PrometheusCounters) ObserveCandidates(n int) {
	p.candidatesPerQry.Observe(float64(n))
}

var _ Counters = (*PrometheusCounters)(nil)
