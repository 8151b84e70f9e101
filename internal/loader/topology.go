package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vk/dagreplay/internal/ctxlog"
	"github.com/vk/dagreplay/internal/model"
)

// topologyFile mirrors the on-disk shape of network_topology.json. Weights
// default to 1 and types to "unknown" when absent.
type topologyFile struct {
	Nodes []struct {
		ID     string   `json:"id"`
		Weight *float64 `json:"weight"`
		Type   string   `json:"type"`
	} `json:"nodes"`
	Edges []struct {
		Source string   `json:"source"`
		Target string   `json:"target"`
		Weight *float64 `json:"weight"`
		Type   string   `json:"type"`
	} `json:"edges"`
}

// LoadTopology reads the compute nodes and network links from a topology
// file. Node weights are speed multipliers; edge weights are bandwidths in
// bits per simulated time unit.
func LoadTopology(ctx context.Context, path string) (map[string]*model.ComputeNode, []*model.NetworkLink, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading topology file: %w", err)
	}

	var doc topologyFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing topology file %s: %w", path, err)
	}

	nodes := make(map[string]*model.ComputeNode, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n.ID == "" {
			return nil, nil, fmt.Errorf("parsing topology file %s: node without id", path)
		}
		if _, dup := nodes[n.ID]; dup {
			return nil, nil, fmt.Errorf("parsing topology file %s: duplicate node id %s", path, n.ID)
		}
		nodes[n.ID] = &model.ComputeNode{
			ID:              n.ID,
			SpeedMultiplier: valueOr(n.Weight, 1),
			NodeType:        typeOr(n.Type),
		}
	}

	links := make([]*model.NetworkLink, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		links = append(links, &model.NetworkLink{
			Source:    e.Source,
			Target:    e.Target,
			Bandwidth: valueOr(e.Weight, 1),
			LinkType:  typeOr(e.Type),
		})
	}

	ctxlog.FromContext(ctx).Debug("Topology file loaded.", "path", path, "nodes", len(nodes), "links", len(links))
	return nodes, links, nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func typeOr(t string) string {
	if t == "" {
		return "unknown"
	}
	return t
}
