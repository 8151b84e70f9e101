// Package testutil provides shared fixtures for tests: a canonical
// two-task, two-node scenario and helpers for materializing input files.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TwoTaskDAG is a minimal DAG document: T0 (cost 10) feeds T1 (cost 5) one
// megabyte of data.
const TwoTaskDAG = `{
  "node_weights": {"T0": 10, "T1": 5},
  "dag_structure": {"edges": {"T0": ["T1"], "T1": []}},
  "edge_weights": {"('T0', 'T1')": 1000000},
  "metadata": {"name": "two-task"}
}`

// TwoNodeTopology connects two unit-speed nodes with a single link of
// 8,000,000 bits (1,000,000 bytes) per time unit.
const TwoNodeTopology = `{
  "nodes": [
    {"id": "node_0", "weight": 1, "type": "DU"},
    {"id": "node_1", "weight": 1, "type": "DU"}
  ],
  "edges": [
    {"source": "node_0", "target": "node_1", "weight": 8000000, "type": "fronthaul"}
  ]
}`

// TwoTaskSchedule places T0 on node_0 and T1 on node_1. With base speed 1
// the replay yields makespan 16: 10 compute + 1 transfer + 5 compute.
const TwoTaskSchedule = `{
  "task_to_node": {"T0": "node_0", "T1": "node_1"},
  "schedule": [
    {"task": "T0", "node": "node_0", "start": 0, "end": 10, "duration": 10},
    {"task": "T1", "node": "node_1", "start": 10, "end": 16, "duration": 6}
  ],
  "metadata": {"makespan": 16, "scheduler": "HEFT"}
}`

// WriteFiles materializes the given name -> content map under a fresh
// temporary directory and returns its path.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

// WriteScenario writes the canonical two-task scenario and returns the
// paths of the three input files.
func WriteScenario(t *testing.T) (dagPath, topoPath, schedPath string) {
	t.Helper()
	dir := WriteFiles(t, map[string]string{
		"dag.json":      TwoTaskDAG,
		"topology.json": TwoNodeTopology,
		"schedule.json": TwoTaskSchedule,
	})
	return filepath.Join(dir, "dag.json"), filepath.Join(dir, "topology.json"), filepath.Join(dir, "schedule.json")
}
