package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/vk/dagreplay/internal/ctxlog"
	"github.com/vk/dagreplay/internal/model"
)

// DAGMeta carries the opaque passthrough blocks of the DAG file, echoed
// into the results export without interpretation.
type DAGMeta struct {
	Configuration map[string]any `json:"configuration"`
	Metadata      map[string]any `json:"metadata"`
}

// dagFile mirrors the on-disk shape of dag.json.
type dagFile struct {
	NodeWeights  map[string]float64 `json:"node_weights"`
	DAGStructure struct {
		Edges map[string][]string `json:"edges"`
	} `json:"dag_structure"`
	EdgeWeights   map[string]float64 `json:"edge_weights"`
	Configuration map[string]any     `json:"configuration"`
	Metadata      map[string]any     `json:"metadata"`
}

// LoadDAG reads the task definitions from a DAG file. Predecessor lists are
// built as the exact inverse of the successor relation and sorted for
// stable iteration.
func LoadDAG(ctx context.Context, path string) (map[string]*model.TaskDefinition, *DAGMeta, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading DAG file: %w", err)
	}

	var doc dagFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing DAG file %s: %w", path, err)
	}

	// Edge weights are keyed by a serialized pair, e.g. "('T0', 'T1')".
	edgeWeights := make(map[string]map[string]float64)
	for key, bytes := range doc.EdgeWeights {
		src, dst, err := parsePairKey(key)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing DAG file %s: %w", path, err)
		}
		if edgeWeights[src] == nil {
			edgeWeights[src] = make(map[string]float64)
		}
		edgeWeights[src][dst] = bytes
	}

	predecessors := make(map[string][]string)
	for src, successors := range doc.DAGStructure.Edges {
		for _, dst := range successors {
			predecessors[dst] = append(predecessors[dst], src)
		}
	}

	defs := make(map[string]*model.TaskDefinition, len(doc.NodeWeights))
	for id, cost := range doc.NodeWeights {
		preds := predecessors[id]
		slices.Sort(preds)
		defs[id] = &model.TaskDefinition{
			ID:           id,
			ComputeCost:  cost,
			Successors:   doc.DAGStructure.Edges[id],
			Predecessors: preds,
			EdgeWeights:  edgeWeights[id],
		}
	}

	meta := &DAGMeta{Configuration: doc.Configuration, Metadata: doc.Metadata}
	ctxlog.FromContext(ctx).Debug("DAG file loaded.", "path", path, "tasks", len(defs))
	return defs, meta, nil
}

// parsePairKey decodes a "('T0', 'T1')"-style edge weight key.
func parsePairKey(key string) (src, dst string, err error) {
	clean := strings.Trim(key, "()")
	clean = strings.ReplaceAll(clean, "'", "")
	clean = strings.ReplaceAll(clean, " ", "")
	parts := strings.Split(clean, ",")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed edge weight key %q", key)
	}
	return parts[0], parts[1], nil
}
