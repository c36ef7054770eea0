package lshindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstable/lshindex/core"
	"github.com/pstable/lshindex/distance"
	"github.com/pstable/lshindex/testutil"
)

func denseParams(dim int, r, w float64, k, l int) Parameters {
	return Parameters{
		R:           r,
		R2:          r * r,
		Dimension:   dim,
		K:           k,
		L:           l,
		W:           w,
		T:           1,
		StorageKind: HybridChain,
		Mode:        distance.L2,
	}
}

func TestBuildRejectsNonHybridChainLayout(t *testing.T) {
	params := denseParams(4, 1, 4, 2, 4)
	params.StorageKind = LinkedChain

	_, err := Build(params, [][]float64{{0, 0, 0, 0}})
	require.Error(t, err)
	var invalid *InvalidParameterError
	assert.ErrorAs(t, err, &invalid)
}

func TestBuildACRejectsInvalidSubdim(t *testing.T) {
	params := denseParams(8, 1, 4, 2, 4)

	_, err := BuildAC(params, [][]float64{make([]float64, 8)}, 0)
	assert.Error(t, err)

	_, err = BuildAC(params, [][]float64{make([]float64, 8)}, 100)
	assert.Error(t, err)
}

func TestParametersValidateUseUPairBound(t *testing.T) {
	params := Parameters{
		Dimension: 16, UseU: true, K: 4, M: 4, L: 6, W: 4, StorageKind: HybridChain,
	}
	assert.NoError(t, params.Validate())

	params.L = 7
	err := params.Validate()
	require.Error(t, err)
	var invalid *InvalidParameterError
	assert.ErrorAs(t, err, &invalid)
}

func TestParametersValidateOddKWithUseU(t *testing.T) {
	params := Parameters{Dimension: 8, UseU: true, K: 3, M: 4, L: 2, W: 4, StorageKind: HybridChain}
	assert.Error(t, params.Validate())
}

// A point always collides with itself in every table, for every hash
// function family: h_i(x) == h_i(x) is an identity, not a probabilistic
// event. A self-query at R=0 must therefore always find the point,
// regardless of seed, k, L, or useU.
func TestBuildSelfQueryAlwaysMatches(t *testing.T) {
	rng := testutil.NewRNG(7)
	points := rng.GaussianPoints(50, 8)

	for _, useU := range []bool{false, true} {
		params := Parameters{
			Dimension:   8,
			W:           4,
			T:           1,
			StorageKind: HybridChain,
			Mode:        distance.L2,
		}
		if useU {
			params.UseU = true
			params.K = 4
			params.M = 4
			params.L = 6
		} else {
			params.K = 4
			params.L = 8
		}

		idx, err := Build(params, points, WithSeed(42))
		require.NoError(t, err)

		for i, p := range points {
			got, err := idx.Query(p)
			require.NoError(t, err)
			assert.Contains(t, toInts(got), i, "point %d should always self-match", i)
		}
	}
}

func TestBuildACSelfQueryAlwaysMatches(t *testing.T) {
	rng := testutil.NewRNG(11)
	points := rng.GaussianPoints(20, 10)

	params := denseParams(10, 0, 4, 4, 6)
	idx, err := BuildAC(params, points, 6, WithSeed(3))
	require.NoError(t, err)

	for i, p := range points {
		got, err := idx.QueryAC(p)
		require.NoError(t, err)
		assert.Contains(t, toInts(got), i)
	}

	_, err = idx.Query(points[0])
	assert.Error(t, err, "Query must reject an index built with BuildAC")
}

// Soundness holds structurally: the distance filter runs before any
// candidate is reported, regardless of how the hash families landed.
func TestQuerySoundnessIsStructural(t *testing.T) {
	rng := testutil.NewRNG(99)
	points := rng.UniformPoints(200, 4, 0, 1)
	params := denseParams(4, 0.2, 2, 4, 20)

	idx, err := Build(params, points, WithSeed(5))
	require.NoError(t, err)

	q := rng.UniformPoints(1, 4, 0, 1)[0]
	got, err := idx.Query(q)
	require.NoError(t, err)

	for _, id := range got {
		d := squaredL2(q, points[id])
		assert.LessOrEqual(t, d, params.R2+1e-9)
	}
}

func TestQueryDeduplicatesResults(t *testing.T) {
	rng := testutil.NewRNG(13)
	points := rng.UniformPoints(100, 4, 0, 1)
	params := denseParams(4, 0.5, 2, 2, 12)

	idx, err := Build(params, points, WithSeed(5))
	require.NoError(t, err)

	got, err := idx.Query(points[0])
	require.NoError(t, err)

	seen := make(map[uint32]bool)
	for _, id := range got {
		assert.False(t, seen[uint32(id)], "duplicate point %d in result", id)
		seen[uint32(id)] = true
	}
}

// A second, identical query must return the same result as the first:
// if the marked-set reset at the end of Query failed to clear every
// touched slot, the second call would see stale marks and lose hits.
func TestQueryMarkedSetResetIsIdempotent(t *testing.T) {
	rng := testutil.NewRNG(21)
	points := rng.UniformPoints(50, 4, 0, 1)
	params := denseParams(4, 0.3, 2, 3, 10)

	idx, err := Build(params, points, WithSeed(5))
	require.NoError(t, err)

	first, err := idx.Query(points[0])
	require.NoError(t, err)
	second, err := idx.Query(points[0])
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second)
}

func TestNewEmptyInsertThenQueryFindsSelf(t *testing.T) {
	params := denseParams(3, 0, 100, 1, 2)
	params.StorageKind = LinkedChain

	idx, err := NewEmpty(params, 4, WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, idx.State())

	require.NoError(t, idx.Insert([]float64{0, 0, 0}))
	assert.Equal(t, StateQueryable, idx.State())
	require.NoError(t, idx.Insert([]float64{3, 4, 0}))

	got, err := idx.Query([]float64{0, 0, 0})
	require.NoError(t, err)
	assert.Contains(t, toInts(got), 0)
}

func TestInsertRejectedOnBuiltIndex(t *testing.T) {
	params := denseParams(3, 1, 4, 2, 2)
	idx, err := Build(params, [][]float64{{0, 0, 0}}, WithSeed(1))
	require.NoError(t, err)

	err = idx.Insert([]float64{1, 1, 1})
	var precond *PreconditionViolatedError
	assert.ErrorAs(t, err, &precond)
}

func TestQueryRejectedBeforeBuild(t *testing.T) {
	idx := &Index{}
	_, err := idx.Query([]float64{0})
	var precond *PreconditionViolatedError
	assert.ErrorAs(t, err, &precond)
}

func TestCloseIsIdempotentAndDropsState(t *testing.T) {
	params := denseParams(3, 1, 4, 2, 2)
	idx, err := Build(params, [][]float64{{0, 0, 0}}, WithSeed(1))
	require.NoError(t, err)

	idx.Close()
	assert.Equal(t, StateDropped, idx.State())
	idx.Close() // idempotent, must not panic

	_, err = idx.Query([]float64{0, 0, 0})
	assert.Error(t, err)
}

func TestQueryRejectsWrongDimension(t *testing.T) {
	params := denseParams(3, 1, 4, 2, 2)
	idx, err := Build(params, [][]float64{{0, 0, 0}}, WithSeed(1))
	require.NoError(t, err)

	_, err = idx.Query([]float64{0, 0})
	var invalid *InvalidParameterError
	assert.ErrorAs(t, err, &invalid)
}

// TestNearNeighborScenarioReturnsExactlyTheThreeClosePoints pins the
// d=2, n=4 scenario: points at (0,0), (1,0), (0,1), and a far outlier
// at (10,10), queried at the origin with R=1.5. (0,0) is the query
// itself and always self-matches; W is chosen generously relative to
// the point spread so the two other near points collide with the
// query in at least one of the four tables with overwhelming
// probability, while the filter deterministically excludes the
// outlier regardless of any hash collision it happens to land in.
func TestNearNeighborScenarioReturnsExactlyTheThreeClosePoints(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 0}, {0, 1}, {10, 10}}
	params := denseParams(2, 1.5, 500, 2, 4)

	idx, err := Build(params, points, WithSeed(17))
	require.NoError(t, err)

	got, err := idx.Query([]float64{0, 0})
	require.NoError(t, err)

	assert.ElementsMatch(t, []int{0, 1, 2}, toInts(got))
}

// TestFarQueryScenarioReturnsEmpty pins the same four-point dataset
// queried far from every point (R=0.1 at (5,5)): every point is more
// than 6 units away, so the distance filter rejects every candidate
// no matter which buckets the hash draws land them in. Deterministic
// regardless of seed.
func TestFarQueryScenarioReturnsEmpty(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 0}, {0, 1}, {10, 10}}
	params := denseParams(2, 0.1, 4, 2, 4)

	idx, err := Build(params, points, WithSeed(17))
	require.NoError(t, err)

	got, err := idx.Query([]float64{5, 5})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestHighDimensionSelfMatchScenario pins the d=8, n=1 self-match case
// at R=0: a single point is its own nearest neighbor at zero distance,
// an identity that holds regardless of seed.
func TestHighDimensionSelfMatchScenario(t *testing.T) {
	point := make([]float64, 8)
	point[0] = 1
	params := denseParams(8, 0, 4, 2, 4)

	idx, err := Build(params, [][]float64{point}, WithSeed(17))
	require.NoError(t, err)

	got, err := idx.Query(point)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, toInts(got))
}

// TestUniformDatasetScenarioSoundness pins the d=4, n=100 uniform
// [0,1]^4 scenario (R=0.2, k=4, L=20): every returned candidate must
// satisfy the radius, which the distance filter guarantees
// structurally regardless of which buckets the hash draws produce.
func TestUniformDatasetScenarioSoundness(t *testing.T) {
	rng := testutil.NewRNG(23)
	points := rng.UniformPoints(100, 4, 0, 1)
	params := denseParams(4, 0.2, 2, 4, 20)

	idx, err := Build(params, points, WithSeed(17))
	require.NoError(t, err)

	q := rng.UniformPoints(1, 4, 0, 1)[0]
	got, err := idx.Query(q)
	require.NoError(t, err)

	for _, id := range got {
		assert.LessOrEqual(t, squaredL2(q, points[id]), params.R2+1e-9)
	}
}

// TestInsertBoundaryRadiusScenario pins the d=3 insert-then-query
// boundary sequence: (0,0,0) then (3,4,0), a 3-4-5 triangle, queried
// at (0,0,0). (0,0,0) is the query itself and always self-matches.
// (3,4,0) is exactly distance 5 away, so R=5.0 must include it
// (inclusive boundary) and R=4.99 must exclude it — both deterministic
// distance-filter outcomes once (3,4,0) is a candidate, which a large
// W relative to the point spread makes overwhelmingly likely.
func TestInsertBoundaryRadiusScenario(t *testing.T) {
	cases := []struct {
		name    string
		r       float64
		wantFar bool
	}{
		{"R=5.0 includes the boundary point", 5.0, true},
		{"R=4.99 excludes the boundary point", 4.99, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := denseParams(3, tc.r, 500, 1, 8)
			params.StorageKind = LinkedChain

			idx, err := NewEmpty(params, 4, WithSeed(17))
			require.NoError(t, err)
			require.NoError(t, idx.Insert([]float64{0, 0, 0}))
			require.NoError(t, idx.Insert([]float64{3, 4, 0}))

			got, err := idx.Query([]float64{0, 0, 0})
			require.NoError(t, err)

			ids := toInts(got)
			assert.Contains(t, ids, 0)
			if tc.wantFar {
				assert.Contains(t, ids, 1)
			} else {
				assert.NotContains(t, ids, 1)
			}
		})
	}
}

// TestUseUPairBoundScenarioAtBuild pins the useU=true, k=4, m=4, L=6
// case: L=6 <= m(m-1)/2=6 so Build must succeed, while L=7 exceeds
// that bound and must be rejected at Build, not just at
// Parameters.Validate in isolation.
func TestUseUPairBoundScenarioAtBuild(t *testing.T) {
	params := Parameters{
		Dimension: 8, UseU: true, K: 4, M: 4, L: 6, W: 4,
		StorageKind: HybridChain, Mode: distance.L2,
	}
	_, err := Build(params, [][]float64{make([]float64, 8)}, WithSeed(17))
	require.NoError(t, err)

	params.L = 7
	_, err = Build(params, [][]float64{make([]float64, 8)}, WithSeed(17))
	require.Error(t, err)
	var invalid *InvalidParameterError
	assert.ErrorAs(t, err, &invalid)
}

// TestRecallFloorOverIndependentBuilds checks the recall floor: for a
// fixed dataset and query with a true R-neighbor, the empirical
// probability that an independently seeded Build/Query recovers it is at
// least successProbability-epsilon over a run of independent builds.
// Follows the d=32, n=1000, R=1 scale: one designated point
// sits exactly R=1 from the query, the remaining 999 are Gaussian noise
// that the distance filter excludes regardless of which buckets
// they land in. W is generous relative to R so that a single table's
// collision probability is high and L=16 tables amplify it further,
// giving an empirical recall far above the asserted floor.
func TestRecallFloorOverIndependentBuilds(t *testing.T) {
	const (
		dim     = 32
		n       = 1000
		rounds  = 20
		target  = 0.9
		epsilon = 0.15
	)

	rng := testutil.NewRNG(31)
	points := rng.GaussianPoints(n-1, dim)
	q := make([]float64, dim)
	neighbor := make([]float64, dim)
	copy(neighbor, q)
	neighbor[0] = 1 // exactly R=1 from q
	points = append(points, neighbor)
	neighborID := len(points) - 1

	params := denseParams(dim, 1, 50, 2, 16)
	params.SuccessProbability = target

	hits := 0
	for round := 0; round < rounds; round++ {
		idx, err := Build(params, points, WithSeed(int64(1000+round)))
		require.NoError(t, err)
		got, err := idx.Query(q)
		require.NoError(t, err)
		if containsID(got, neighborID) {
			hits++
		}
	}

	empirical := float64(hits) / float64(rounds)
	assert.GreaterOrEqual(t, empirical, params.SuccessProbability-epsilon)
}

func containsID(ids []core.PointID, want int) bool {
	for _, id := range ids {
		if int(id) == want {
			return true
		}
	}
	return false
}

func toInts(ids []core.PointID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

func squaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
