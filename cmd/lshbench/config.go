package main

import "time"

// Config holds the ambient settings lshbench reads from its
// environment (prefixed LSHBENCH_), separate from the per-invocation
// flags that name which files to operate on.
type Config struct {
	MetricsAddr string        `envconfig:"METRICS_ADDR" default:"0.0.0.0:9090"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	Seed        int64         `envconfig:"SEED" default:"0"`
	QueryRPS    float64       `envconfig:"QUERY_RPS" default:"0"` // 0 disables throttling
	QueryBurst  int           `envconfig:"QUERY_BURST" default:"1"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"5m"`
}
