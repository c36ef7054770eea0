// Package lshindex implements a randomized R-near-neighbor search
// index over points in R^d, built from p-stable LSH projections
// composed into compound hash functions and amplified across L
// independent tables, with optional u/g-function amplification and an
// ACHash (Hadamard-preconditioned, coordinate-subsampled) variant.
package lshindex

import (
	"fmt"
	"time"

	"github.com/pstable/lshindex/core"
	"github.com/pstable/lshindex/distance"
	"github.com/pstable/lshindex/internal/bucket"
	"github.com/pstable/lshindex/internal/hadamard"
	"github.com/pstable/lshindex/internal/marked"
	"github.com/pstable/lshindex/internal/uhash"
	"github.com/pstable/lshindex/internal/ulsh"
	"github.com/pstable/lshindex/projection"
	"github.com/pstable/lshindex/telemetry"
)

// State is a position in the index lifecycle:
// Uninitialized -> Built|Empty -> (insert*)? -> Queryable -> Dropped.
type State int

const (
	StateUninitialized State = iota
	StateBuilt
	StateEmpty
	StateQueryable
	StateDropped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateBuilt:
		return "Built"
	case StateEmpty:
		return "Empty"
	case StateQueryable:
		return "Queryable"
	case StateDropped:
		return "Dropped"
	default:
		return "Unknown"
	}
}

// insertable is the mutable back-end surface NewEmpty/Insert need:
// both bucket.LinkedChain and bucket.Statistics satisfy it.
type insertable interface {
	Insert(main, ctl uint32, pointIndex uint32)
}

type table struct {
	store bucket.Store
	ins   insertable // non-nil only for insert-capable (Empty/Queryable) tables
}

// Index is a single LSH index instance. It is single-threaded: no
// method is safe to call concurrently with any other method on the
// same Index. Distinct Index values are independent and may be
// driven from distinct goroutines.
type Index struct {
	params Parameters
	family *projection.Family
	coeffs uhash.Coeffs
	pairs  [][2]int // per-table chosen (i1, i2) tuple indices; i2 unused when !UseU

	achash bool
	subdim int

	points  [][]float64
	nPoints int

	tables []table
	marked *marked.Set
	filter distance.Filter

	reporting bool
	state     State

	log      logger
	counters telemetry.Counters
}

func buildPairs(params Parameters) [][2]int {
	pairs := make([][2]int, params.L)
	if !params.UseU {
		for l := 0; l < params.L; l++ {
			pairs[l] = [2]int{l, -1}
		}
		return pairs
	}
	it := uhash.NewPairIter(params.M)
	for l := 0; l < params.L; l++ {
		i1, i2, _ := it.Next()
		pairs[l] = [2]int{i1, i2}
	}
	return pairs
}

func validatePoints(points [][]float64, dim int) error {
	for i, p := range points {
		if len(p) != dim {
			return &InvalidParameterError{Reason: fmt.Sprintf("point %d has dimension %d, want %d", i, len(p), dim)}
		}
	}
	return nil
}

func filterThreshold(params Parameters) float64 {
	if params.Mode == distance.L1 {
		return params.R
	}
	return params.R2
}

// Build constructs a fully packed, query-ready index from an entire
// dataset at once. params.StorageKind must be HybridChain; the build
// uses a shared-bucket-hash precomputation: every point's per-tuple
// (main, ctl) pair is hashed once and reused while packing each of
// the L tables.
func Build(params Parameters, points [][]float64, opts ...Option) (*Index, error) {
	if params.StorageKind != bucket.LayoutHybridChain {
		return nil, &InvalidParameterError{Reason: "Build requires StorageKind=HybridChain; use NewEmpty for LinkedChain/Statistics"}
	}
	return buildCore(params, points, 0, false, opts...)
}

// BuildAC is the ACHash variant of Build: before hashing, every point
// is zero-padded to the next power of two, sign-flipped by the
// family's diagonal, and Hadamard-transformed (internal/hadamard);
// each hash function then samples only the first subdim coordinates
// of that preconditioned buffer, permuted through its own ran_dim.
func BuildAC(params Parameters, points [][]float64, subdim int, opts ...Option) (*Index, error) {
	if params.StorageKind != bucket.LayoutHybridChain {
		return nil, &InvalidParameterError{Reason: "BuildAC requires StorageKind=HybridChain"}
	}
	if subdim <= 0 || subdim > params.Dimension {
		return nil, &InvalidParameterError{Reason: fmt.Sprintf("subdim must be in (0,%d], got %d", params.Dimension, subdim)}
	}
	return buildCore(params, points, subdim, true, opts...)
}

func buildCore(params Parameters, points [][]float64, subdim int, achash bool, opts ...Option) (*Index, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := validatePoints(points, params.Dimension); err != nil {
		return nil, err
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	src := o.source()
	lg := newLogger(o.Logger)
	counters := o.counters()

	start := time.Now()
	lg.buildStart(len(points), params.Dimension, params.L)

	family, err := projection.Build(src, params.NHFTuples(), params.HFTuplesLength(), params.Dimension, params.W, params.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailure, err)
	}
	coeffs := uhash.Build(src, params.HFTuplesLength())

	idx := &Index{
		params:    params,
		family:    family,
		coeffs:    coeffs,
		pairs:     buildPairs(params),
		achash:    achash,
		subdim:    subdim,
		points:    points,
		nPoints:   len(points),
		marked:    marked.New(max(len(points), 1)),
		filter:    distance.NewFilter(params.Mode, filterThreshold(params)),
		reporting: true,
		state:     StateBuilt,
		log:       lg,
		counters:  counters,
	}

	tableSize := uhash.TableSize(len(points))
	model := bucket.NewLinkedChain(tableSize)
	idx.tables = make([]table, params.L)

	// Each point's Hadamard preconditioning depends only on the point
	// and the single, tuple-independent diagonal family.Diagonal(0,0),
	// so it runs once per point here rather than once per (tuple,
	// point) pair.
	vecs := make([][]float64, len(points))
	for p, pt := range points {
		vec := pt
		if achash {
			vec, err = hadamard.Precondition(pt, family.Diagonal(0, 0))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrAllocationFailure, err)
			}
		}
		vecs[p] = vec
	}

	// Precompute each point's (main, ctl) under every distinct tuple
	// once, so every one of the L tables reuses it instead of
	// recomputing the hash of every point L times.
	type hashPair struct{ main, ctl uint32 }
	hashCache := make([][]hashPair, params.NHFTuples())
	for i := 0; i < params.NHFTuples(); i++ {
		hashCache[i] = make([]hashPair, len(points))
		for p := range points {
			var tuple ulsh.Tuple
			if achash {
				tuple = ulsh.ComputeSubsampled(family, i, vecs[p], subdim)
			} else {
				tuple = ulsh.Compute(family, i, vecs[p])
			}
			m, c := coeffs.Hash(tuple)
			hashCache[i][p] = hashPair{main: m, ctl: c}
		}
	}

	for l := 0; l < params.L; l++ {
		model.Reset()
		i1, i2 := idx.pairs[l][0], idx.pairs[l][1]
		for p := range points {
			h := hashCache[i1][p]
			main, ctl := h.main, h.ctl
			if params.UseU {
				h2 := hashCache[i2][p]
				main, ctl = uhash.CombinePair(h.main, h.ctl, h2.main, h2.ctl)
			}
			model.Insert(main, ctl, uint32(p))
		}
		idx.tables[l] = table{store: bucket.PackFromLinkedChain(model)}
	}

	counters.ObserveBuildDuration(time.Since(start))
	lg.buildDone(len(points))
	return idx, nil
}

// NewEmpty creates a query-ready but pointless index backed by
// LinkedChain or Statistics, ready to grow via Insert. estimatedN
// sizes the bucket-hash directory.
func NewEmpty(params Parameters, estimatedN int, opts ...Option) (*Index, error) {
	if params.StorageKind == bucket.LayoutHybridChain {
		return nil, &InvalidParameterError{Reason: "NewEmpty does not support HybridChain; use Build"}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	src := o.source()
	lg := newLogger(o.Logger)

	family, err := projection.Build(src, params.NHFTuples(), params.HFTuplesLength(), params.Dimension, params.W, params.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailure, err)
	}
	coeffs := uhash.Build(src, params.HFTuplesLength())

	tableSize := uhash.TableSize(max(estimatedN, 1))
	tables := make([]table, params.L)
	for l := range tables {
		switch params.StorageKind {
		case bucket.LayoutStatistics:
			s := bucket.NewStatistics(tableSize)
			tables[l] = table{store: s, ins: s}
		default:
			lc := bucket.NewLinkedChain(tableSize)
			tables[l] = table{store: lc, ins: lc}
		}
	}

	return &Index{
		params:    params,
		family:    family,
		coeffs:    coeffs,
		pairs:     buildPairs(params),
		points:    make([][]float64, 0, estimatedN),
		tables:    tables,
		marked:    marked.New(max(estimatedN, 1)),
		filter:    distance.NewFilter(params.Mode, filterThreshold(params)),
		reporting: true,
		state:     StateEmpty,
		log:       lg,
		counters:  o.counters(),
	}, nil
}

// Insert appends point to the index, hashing it into every one of the
// L tables. Valid only for indices constructed by NewEmpty (state
// Empty or Queryable); a Built index rejects Insert.
func (idx *Index) Insert(point []float64) error {
	if idx.state != StateEmpty && idx.state != StateQueryable {
		return &PreconditionViolatedError{Reason: fmt.Sprintf("Insert is invalid in state %s", idx.state)}
	}
	if len(point) != idx.params.Dimension {
		return &InvalidParameterError{Reason: fmt.Sprintf("point has dimension %d, want %d", len(point), idx.params.Dimension)}
	}

	vec, err := idx.precondition(point)
	if err != nil {
		return err
	}

	pointID := idx.nPoints
	idx.points = append(idx.points, point)
	idx.nPoints++
	idx.marked.Grow(idx.nPoints)

	for l, t := range idx.tables {
		main, ctl := idx.hashPoint(vec, l)
		t.ins.Insert(main, ctl, uint32(pointID))
	}

	idx.state = StateQueryable
	idx.log.insert(uint32(pointID), idx.nPoints)
	return nil
}

// precondition applies the ACHash diagonal-then-Hadamard preconditioning
// idx.family.Diagonal(0,0) defines, once per point. The dense pipeline
// returns point unchanged. Callers run this once per Insert/Query call,
// not once per table, since the result does not depend on which table
// or tuple consumes it.
func (idx *Index) precondition(point []float64) ([]float64, error) {
	if !idx.achash {
		return point, nil
	}
	vec, err := hadamard.Precondition(point, idx.family.Diagonal(0, 0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailure, err)
	}
	return vec, nil
}

// hashPoint computes the (main, ctl) pair table l would bucket the
// already-preconditioned vec under, dispatching between the dense and
// ACHash pipelines based on idx.achash — one parameterized path rather
// than maintaining separate dense/subsampled forks.
func (idx *Index) hashPoint(vec []float64, l int) (main, ctl uint32) {
	i1, i2 := idx.pairs[l][0], idx.pairs[l][1]
	m1, c1 := idx.tupleHash(i1, vec)
	if !idx.params.UseU {
		return m1, c1
	}
	m2, c2 := idx.tupleHash(i2, vec)
	return uhash.CombinePair(m1, c1, m2, c2)
}

func (idx *Index) tupleHash(i int, vec []float64) (main, ctl uint32) {
	var tuple ulsh.Tuple
	if idx.achash {
		tuple = ulsh.ComputeSubsampled(idx.family, i, vec, idx.subdim)
	} else {
		tuple = ulsh.Compute(idx.family, i, vec)
	}
	return idx.coeffs.Hash(tuple)
}

// Query runs the dense pipeline: hash q into every table, walk its
// candidate bucket, deduplicate via the marked-set, and filter each
// candidate against the configured radius. Results are returned in
// table order: l ascending, then bucket-traversal order within l,
// first occurrence only.
func (idx *Index) Query(q []float64) ([]core.PointID, error) {
	if idx.achash {
		return nil, &PreconditionViolatedError{Reason: "index was built with BuildAC; call QueryAC"}
	}
	return idx.queryCore(q)
}

// QueryAC is the ACHash counterpart of Query, valid only on an index
// built with BuildAC.
func (idx *Index) QueryAC(q []float64) ([]core.PointID, error) {
	if !idx.achash {
		return nil, &PreconditionViolatedError{Reason: "index was not built with BuildAC; call Query"}
	}
	return idx.queryCore(q)
}

func (idx *Index) queryCore(q []float64) ([]core.PointID, error) {
	if idx.state == StateUninitialized || idx.state == StateDropped {
		return nil, &PreconditionViolatedError{Reason: fmt.Sprintf("Query is invalid in state %s", idx.state)}
	}
	if q == nil {
		return nil, &PreconditionViolatedError{Reason: "query point must not be nil"}
	}
	if len(q) != idx.params.Dimension {
		return nil, &InvalidParameterError{Reason: fmt.Sprintf("query has dimension %d, want %d", len(q), idx.params.Dimension)}
	}

	vec, err := idx.precondition(q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	isHybrid := idx.params.StorageKind == bucket.LayoutHybridChain

	var results []core.PointID
	candidates := 0

	visit := func(p uint32) bool {
		candidates++
		if isHybrid {
			if idx.marked.TestAndMark(p) {
				return true
			}
			accept := idx.filter.Within(q, idx.points[p])
			idx.counters.AddDistanceComps(1)
			if accept && idx.reporting {
				results = append(results, core.PointID(p))
			}
			return true
		}
		// LinkedChain: mark-on-accept only, mirroring historical behavior.
		if idx.marked.IsMarked(p) {
			return true
		}
		accept := idx.filter.Within(q, idx.points[p])
		idx.counters.AddDistanceComps(1)
		if accept {
			idx.marked.Mark(p)
			if idx.reporting {
				results = append(results, core.PointID(p))
			}
		}
		return true
	}

	for l, t := range idx.tables {
		main, ctl := idx.hashPoint(vec, l)
		if err := t.store.Walk(main, ctl, visit); err != nil {
			idx.marked.Reset()
			return nil, ErrUnsupportedLayout
		}
	}

	idx.marked.Reset()
	idx.counters.ObserveQueryDuration(time.Since(start))
	idx.counters.ObserveCandidates(candidates)
	idx.log.query(candidates, len(results))
	return results, nil
}

// SetReporting toggles whether accepted candidates are appended to the
// result. When false, the distance filter still runs (so distance-
// comparison accounting stays accurate) but nothing is returned —
// used by benchmarks that only care about candidate counts.
func (idx *Index) SetReporting(on bool) {
	idx.reporting = on
}

// Optimize lets each table's bucket store compact itself. HybridChain
// tables are already packed and this is a no-op for them; LinkedChain
// tables would repack to drop tombstoned entries, but this index
// supports no deletion, so today this has no work to do on any
// layout. It is still safe to call at any time.
func (idx *Index) Optimize() error {
	if idx.state == StateUninitialized || idx.state == StateDropped {
		return &PreconditionViolatedError{Reason: fmt.Sprintf("Optimize is invalid in state %s", idx.state)}
	}
	return nil
}

// Close releases the index's scratch and table storage. Borrowed
// point vectors are left untouched. Close is idempotent.
func (idx *Index) Close() {
	if idx.state == StateDropped {
		return
	}
	idx.tables = nil
	idx.points = nil
	idx.marked = nil
	idx.state = StateDropped
}

// State returns the index's current lifecycle state.
func (idx *Index) State() State { return idx.state }

// NPoints returns the number of points currently held by the index.
func (idx *Index) NPoints() int { return idx.nPoints }

// Parameters returns the index's build parameters.
func (idx *Index) Parameters() Parameters { return idx.params }
