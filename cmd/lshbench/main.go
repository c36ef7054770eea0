// Command lshbench drives build, query, and autotune passes against
// an lshindex.Index from point files on disk, exposing Prometheus
// counters over HTTP while it runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pstable/lshindex/distance"
	"github.com/pstable/lshindex/telemetry"
)

func main() {
	cmd := flag.String("cmd", "build", "build | query | autotune")
	pointsPath := flag.String("points", "", "path to the base point file")
	paramsPath := flag.String("params", "", "path to the LSH parameter file")
	queryPath := flag.String("query", "", "path to the query point file (query, autotune)")
	subdim := flag.Int("subdim", 0, "ACHash subsample dimension; 0 disables ACHash")
	mode := flag.String("mode", "L2", "distance mode: L2 or L1")
	targetRecall := flag.Float64("target-recall", 0.9, "autotune: minimum acceptable recall")
	flag.Parse()

	var cfg Config
	if err := envconfig.Process("LSHBENCH", &cfg); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	distMode := distance.L2
	if *mode == "L1" {
		distMode = distance.L1
	}

	reg := prometheus.NewRegistry()
	counters := telemetry.NewPrometheusCounters(reg)

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		logger.Info("starting metrics server", "address", cfg.MetricsAddr)
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	var err error
	switch *cmd {
	case "build":
		err = runBuild(logger, counters, cfg, *pointsPath, *paramsPath, *subdim, distMode)
	case "query":
		err = runQuery(logger, counters, cfg, *pointsPath, *paramsPath, *queryPath, *subdim, distMode)
	case "autotune":
		err = runAutotune(ctx, logger, cfg, *pointsPath, *queryPath, *targetRecall, distMode)
	default:
		err = fmt.Errorf("unknown -cmd %q", *cmd)
	}
	if err != nil {
		logger.Error("lshbench failed", "error", err)
		os.Exit(1)
	}
}
