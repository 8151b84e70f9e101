package app

import "errors"

// Config holds everything an App instance needs to run one simulation.
type Config struct {
	DAGPath      string
	TopologyPath string
	SchedulePath string
	// OutputDir is the directory for the JSON/CSV result files; empty means
	// no files are written.
	OutputDir string

	// BaseComputeSpeed is the global base speed every node's multiplier
	// scales. Must be positive.
	BaseComputeSpeed float64

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DAGPath == "" {
		return nil, errors.New("DAG file path is required")
	}
	if cfg.TopologyPath == "" {
		return nil, errors.New("topology file path is required")
	}
	if cfg.SchedulePath == "" {
		return nil, errors.New("schedule file path is required")
	}
	if cfg.BaseComputeSpeed <= 0 {
		return nil, errors.New("base compute speed must be positive")
	}
	return &cfg, nil
}
