package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/dagreplay/internal/export"
	"github.com/vk/dagreplay/internal/testutil"
)

func scenarioConfig(t *testing.T) Config {
	t.Helper()
	dagPath, topoPath, schedPath := testutil.WriteScenario(t)
	return Config{
		DAGPath:          dagPath,
		TopologyPath:     topoPath,
		SchedulePath:     schedPath,
		BaseComputeSpeed: 1,
		LogFormat:        "text",
		LogLevel:         "error",
	}
}

func TestRunEndToEnd(t *testing.T) {
	raw := scenarioConfig(t)
	raw.OutputDir = filepath.Join(t.TempDir(), "results")
	cfg, err := NewConfig(raw)
	require.NoError(t, err)

	var out, logs bytes.Buffer
	require.NoError(t, NewApp(&out, &logs, cfg).Run(context.Background()))

	t.Run("summary output", func(t *testing.T) {
		text := out.String()
		assert.Contains(t, text, "DAG SIMULATION RESULTS")
		assert.Contains(t, text, "Tasks executed: 2")
		assert.Contains(t, text, "HEFT predicted:  16.00")
		assert.Contains(t, text, "Simulated:       16.00")
		assert.Contains(t, text, "All task dependencies respected.")
		// T1's one-unit uplink is outside its recorded actual span.
		assert.Contains(t, text, "Timing mismatch for T1")
	})

	t.Run("exported results", func(t *testing.T) {
		rawJSON, err := os.ReadFile(filepath.Join(raw.OutputDir, export.JSONFileName))
		require.NoError(t, err)

		var results export.Results
		require.NoError(t, json.Unmarshal(rawJSON, &results))
		assert.Equal(t, 2, results.Summary.NumTasks)
		assert.InDelta(t, 16.0, results.Summary.SimulatedMakespan, 1e-9)
		assert.Equal(t, raw.SchedulePath, results.Summary.InputFiles.Schedule)
		require.Len(t, results.Tasks, 2)

		_, err = os.Stat(filepath.Join(raw.OutputDir, export.CSVFileName))
		assert.NoError(t, err)
	})
}

func TestRunWithoutOutputDirWritesNothing(t *testing.T) {
	cfg, err := NewConfig(scenarioConfig(t))
	require.NoError(t, err)

	var out, logs bytes.Buffer
	require.NoError(t, NewApp(&out, &logs, cfg).Run(context.Background()))

	_, statErr := os.Stat(export.JSONFileName)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMissingInputFile(t *testing.T) {
	raw := scenarioConfig(t)
	raw.DAGPath = filepath.Join(t.TempDir(), "absent.json")
	cfg, err := NewConfig(raw)
	require.NoError(t, err)

	var out, logs bytes.Buffer
	err = NewApp(&out, &logs, cfg).Run(context.Background())
	assert.ErrorContains(t, err, "reading DAG file")
}

func TestRunRejectsCyclicDAG(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"dag.json": `{
		  "node_weights": {"T0": 1, "T1": 1},
		  "dag_structure": {"edges": {"T0": ["T1"], "T1": ["T0"]}},
		  "edge_weights": {}
		}`,
		"topology.json": testutil.TwoNodeTopology,
		"schedule.json": testutil.TwoTaskSchedule,
	})
	cfg, err := NewConfig(Config{
		DAGPath:          filepath.Join(dir, "dag.json"),
		TopologyPath:     filepath.Join(dir, "topology.json"),
		SchedulePath:     filepath.Join(dir, "schedule.json"),
		BaseComputeSpeed: 1,
		LogFormat:        "text",
		LogLevel:         "error",
	})
	require.NoError(t, err)

	var out, logs bytes.Buffer
	err = NewApp(&out, &logs, cfg).Run(context.Background())
	assert.ErrorContains(t, err, "cycle detected")
}

func TestRunRejectsUnknownNodeAssignment(t *testing.T) {
	dagPath, topoPath, _ := testutil.WriteScenario(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"schedule.json": `{
		  "task_to_node": {"T0": "ghost"},
		  "schedule": [{"task": "T0", "node": "ghost", "start": 0, "end": 10, "duration": 10}],
		  "metadata": {"makespan": 10, "scheduler": "HEFT"}
		}`,
	})
	cfg, err := NewConfig(Config{
		DAGPath:          dagPath,
		TopologyPath:     topoPath,
		SchedulePath:     filepath.Join(dir, "schedule.json"),
		BaseComputeSpeed: 1,
		LogFormat:        "text",
		LogLevel:         "error",
	})
	require.NoError(t, err)

	var out, logs bytes.Buffer
	err = NewApp(&out, &logs, cfg).Run(context.Background())
	assert.ErrorContains(t, err, "assigned to unknown node ghost")
}

func TestNewConfigValidation(t *testing.T) {
	base := Config{
		DAGPath:          "d.json",
		TopologyPath:     "t.json",
		SchedulePath:     "s.json",
		BaseComputeSpeed: 1,
	}

	t.Run("valid", func(t *testing.T) {
		_, err := NewConfig(base)
		assert.NoError(t, err)
	})

	t.Run("missing paths", func(t *testing.T) {
		for _, mutate := range []func(*Config){
			func(c *Config) { c.DAGPath = "" },
			func(c *Config) { c.TopologyPath = "" },
			func(c *Config) { c.SchedulePath = "" },
		} {
			cfg := base
			mutate(&cfg)
			_, err := NewConfig(cfg)
			assert.Error(t, err)
		}
	})

	t.Run("non-positive base speed", func(t *testing.T) {
		cfg := base
		cfg.BaseComputeSpeed = 0
		_, err := NewConfig(cfg)
		assert.ErrorContains(t, err, "must be positive")
	})
}
