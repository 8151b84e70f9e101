package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/dagreplay/internal/app"
	"github.com/vk/dagreplay/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments and the optional config file. It
// returns a validated app.Config, a boolean indicating the program should
// exit cleanly (help requested), or an ExitError.
func Parse(ctx context.Context, args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("dagreplay", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
dagreplay - replays a precomputed DAG task schedule against a simulated
network topology and compares actual timings with the scheduler's
predictions.

Options:
`)
		flagSet.PrintDefaults()
	}

	dagFlag := flagSet.String("dag", "", "Path to the DAG definition file.")
	topologyFlag := flagSet.String("topology", "", "Path to the network topology file.")
	scheduleFlag := flagSet.String("schedule", "", "Path to the schedule file.")
	outputFlag := flagSet.String("output", "", "Output directory for JSON/CSV results. Empty disables export.")
	baseSpeedFlag := flagSet.Float64("base-compute-speed", 0, "Base compute speed for all nodes (higher = faster).")
	configFlag := flagSet.String("config", "", "Optional HCL config file carrying the same settings.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	fileCfg := &config.Simulation{}
	if *configFlag != "" {
		var err error
		fileCfg, err = config.Load(ctx, *configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
	}

	// Explicit flags win over the config file; built-in defaults fill the
	// rest.
	merged := app.Config{
		DAGPath:          pick(*dagFlag, fileCfg.DAG, "dag.json"),
		TopologyPath:     pick(*topologyFlag, fileCfg.Topology, "network_topology.json"),
		SchedulePath:     pick(*scheduleFlag, fileCfg.Schedule, ""),
		OutputDir:        pick(*outputFlag, fileCfg.Output, ""),
		BaseComputeSpeed: *baseSpeedFlag,
		LogFormat:        pick(strings.ToLower(*logFormatFlag), fileCfg.LogFormat, "text"),
		LogLevel:         pick(strings.ToLower(*logLevelFlag), fileCfg.LogLevel, "info"),
	}
	if merged.BaseComputeSpeed == 0 {
		if fileCfg.BaseComputeSpeed != nil {
			merged.BaseComputeSpeed = *fileCfg.BaseComputeSpeed
		} else {
			merged.BaseComputeSpeed = 1.0
		}
	}

	if merged.SchedulePath == "" {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "a schedule file is required (-schedule)"}
	}

	switch merged.LogFormat {
	case "text", "json":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	switch merged.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg, err := app.NewConfig(merged)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, false, nil
}

// pick returns the first non-empty value.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
