package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/pstable/lshindex"
	"github.com/pstable/lshindex/distance"
	"github.com/pstable/lshindex/telemetry"
)

func runQuery(logger *slog.Logger, counters telemetry.Counters, cfg Config, pointsPath, paramsPath, queryPath string, subdim int, mode distance.Mode) error {
	if pointsPath == "" || paramsPath == "" || queryPath == "" {
		return fmt.Errorf("query requires -points, -params and -query")
	}

	points, dim, err := loadPoints(pointsPath)
	if err != nil {
		return err
	}
	params, err := loadParameters(paramsPath, mode)
	if err != nil {
		return err
	}
	if params.Dimension != dim {
		return fmt.Errorf("parameter dimension %d does not match point dimension %d", params.Dimension, dim)
	}
	queries, qdim, err := loadPoints(queryPath)
	if err != nil {
		return err
	}
	if qdim != dim {
		return fmt.Errorf("query dimension %d does not match point dimension %d", qdim, dim)
	}

	opts := []lshindex.Option{lshindex.WithSeed(cfg.Seed), lshindex.WithLogger(logger), lshindex.WithCounters(counters)}

	var idx *lshindex.Index
	if subdim > 0 {
		idx, err = lshindex.BuildAC(params, points, subdim, opts...)
	} else {
		idx, err = lshindex.Build(params, points, opts...)
	}
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.QueryRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.QueryRPS), cfg.QueryBurst)
	}
	ctx := context.Background()

	var totalResults int
	for i, q := range queries {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return fmt.Errorf("query %d: rate limiter: %w", i, err)
			}
		}
		start := time.Now()
		results, err := queryIndex(idx, subdim, q)
		if err != nil {
			return fmt.Errorf("query %d: %w", i, err)
		}
		totalResults += len(results)
		logger.Debug("query", "i", i, "results", len(results), "elapsed", time.Since(start))
	}

	logger.Info("query pass complete", "queries", len(queries), "totalResults", totalResults)
	return nil
}

func queryIndex(idx *lshindex.Index, subdim int, q []float64) ([]uint32, error) {
	if subdim > 0 {
		ids, err := idx.QueryAC(q)
		return pointIDsToUint32(ids), err
	}
	ids, err := idx.Query(q)
	return pointIDsToUint32(ids), err
}
