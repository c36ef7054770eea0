package main

import (
	"fmt"
	"os"

	"github.com/pstable/lshindex"
	"github.com/pstable/lshindex/core"
	"github.com/pstable/lshindex/distance"
	"github.com/pstable/lshindex/paramio"
	"github.com/pstable/lshindex/pointio"
)

func loadPoints(path string) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open points: %w", err)
	}
	defer f.Close()
	return pointio.Read(f)
}

func loadParameters(path string, mode distance.Mode) (lshindex.Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return lshindex.Parameters{}, fmt.Errorf("open params: %w", err)
	}
	defer f.Close()

	rec, err := paramio.Read(f)
	if err != nil {
		return lshindex.Parameters{}, fmt.Errorf("parse params: %w", err)
	}

	storageKind, err := layoutFromTypeHT(rec.TypeHT)
	if err != nil {
		return lshindex.Parameters{}, err
	}

	return lshindex.Parameters{
		R:                  rec.R,
		R2:                 rec.R2,
		SuccessProbability: rec.SuccessProbability,
		Dimension:          rec.Dimension,
		UseU:               rec.UseU,
		K:                  rec.K,
		M:                  rec.M,
		L:                  rec.L,
		W:                  rec.W,
		T:                  rec.T,
		StorageKind:        storageKind,
		Mode:               mode,
	}, nil
}

func pointIDsToUint32(ids []core.PointID) []uint32 {
	out := make([]uint32, len(ids))
	for i, id := range ids {
		out[i] = uint32(id)
	}
	return out
}

func layoutFromTypeHT(t int) (lshindex.Layout, error) {
	switch t {
	case 1:
		return lshindex.LinkedChain, nil
	case 2:
		return lshindex.Statistics, nil
	case 3:
		return lshindex.HybridChain, nil
	default:
		return 0, fmt.Errorf("unknown typeHT %d", t)
	}
}
