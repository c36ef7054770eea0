package main

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pstable/lshindex"
	"github.com/pstable/lshindex/distance"
)

// autotuneCandidate records one trial L value's empirical recall
// against a brute-force ground truth.
type autotuneCandidate struct {
	L      int
	recall float64
}

// runAutotune grid-searches the table count L, building one candidate
// index per value concurrently, and reports the smallest L whose
// empirical recall meets targetRecall.
func runAutotune(ctx context.Context, logger *slog.Logger, cfg Config, pointsPath, queryPath string, targetRecall float64, mode distance.Mode) error {
	if pointsPath == "" || queryPath == "" {
		return fmt.Errorf("autotune requires -points and -query")
	}

	points, dim, err := loadPoints(pointsPath)
	if err != nil {
		return err
	}
	queries, qdim, err := loadPoints(queryPath)
	if err != nil {
		return err
	}
	if qdim != dim {
		return fmt.Errorf("query dimension %d does not match point dimension %d", qdim, dim)
	}

	const radius = 1.0
	base := lshindex.Parameters{
		R:           radius,
		R2:          radius * radius,
		Dimension:   dim,
		K:           4,
		W:           4.0,
		T:           1,
		StorageKind: lshindex.HybridChain,
		Mode:        mode,
	}

	truth := make([][]int, len(queries))
	for i, q := range queries {
		truth[i] = bruteForceWithinR(points, q, radius)
	}

	candidateLs := []int{2, 4, 8, 16, 32, 64}
	results := make([]autotuneCandidate, len(candidateLs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, l := range candidateLs {
		i, l := i, l
		g.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}
			params := base
			params.L = l
			idx, err := lshindex.Build(params, points, lshindex.WithSeed(cfg.Seed))
			if err != nil {
				return fmt.Errorf("L=%d: %w", l, err)
			}
			results[i] = autotuneCandidate{L: l, recall: evaluateRecall(idx, queries, truth)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	best := -1
	for i, r := range results {
		logger.Info("autotune candidate", "L", r.L, "recall", r.recall)
		if r.recall >= targetRecall && (best == -1 || r.L < results[best].L) {
			best = i
		}
	}
	if best == -1 {
		return fmt.Errorf("no candidate reached target recall %.3f", targetRecall)
	}
	logger.Info("autotune chose", "L", results[best].L, "recall", results[best].recall)
	return nil
}

func evaluateRecall(idx *lshindex.Index, queries [][]float64, truth [][]int) float64 {
	var hitTotal, wantTotal int
	for i, q := range queries {
		if len(truth[i]) == 0 {
			continue
		}
		got, err := idx.Query(q)
		if err != nil {
			continue
		}
		gotSet := make(map[uint32]bool, len(got))
		for _, p := range got {
			gotSet[uint32(p)] = true
		}
		for _, want := range truth[i] {
			wantTotal++
			if gotSet[uint32(want)] {
				hitTotal++
			}
		}
	}
	if wantTotal == 0 {
		return 1
	}
	return float64(hitTotal) / float64(wantTotal)
}

func bruteForceWithinR(points [][]float64, q []float64, r float64) []int {
	var out []int
	r2 := r * r
	for i, p := range points {
		var sum float64
		for j := range q {
			d := p[j] - q[j]
			sum += d * d
		}
		if sum <= r2 {
			out = append(out, i)
		}
	}
	return out
}
