package main

import (
	"fmt"
	"log/slog"

	"github.com/pstable/lshindex"
	"github.com/pstable/lshindex/distance"
	"github.com/pstable/lshindex/telemetry"
)

func runBuild(logger *slog.Logger, counters telemetry.Counters, cfg Config, pointsPath, paramsPath string, subdim int, mode distance.Mode) error {
	if pointsPath == "" || paramsPath == "" {
		return fmt.Errorf("build requires -points and -params")
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

	logger.Info("build complete", "points", idx.NPoints(), "L", params.L, "k", params.K, "storageKind", params.StorageKind.String())
	return nil
}
