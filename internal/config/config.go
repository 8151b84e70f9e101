package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/dagreplay/internal/ctxlog"
)

// Simulation is the decoded `simulation` block. Zero values mean "not set";
// the CLI layer fills the gaps from flags and defaults.
type Simulation struct {
	DAG              string   `hcl:"dag,optional"`
	Topology         string   `hcl:"topology,optional"`
	Schedule         string   `hcl:"schedule,optional"`
	Output           string   `hcl:"output,optional"`
	BaseComputeSpeed *float64 `hcl:"base_compute_speed,optional"`
	LogFormat        string   `hcl:"log_format,optional"`
	LogLevel         string   `hcl:"log_level,optional"`
}

// fileRoot is the top-level shape of a config file.
type fileRoot struct {
	Simulation *Simulation `hcl:"simulation,block"`
}

// Load parses and decodes a config file. A file without a `simulation`
// block yields an empty Simulation.
func Load(ctx context.Context, path string) (*Simulation, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	if root.Simulation == nil {
		logger.Debug("Config file has no simulation block.", "path", path)
		return &Simulation{}, nil
	}
	logger.Debug("Config file loaded.", "path", path)
	return root.Simulation, nil
}

// evalContext exposes the process environment as an `env` object.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}
