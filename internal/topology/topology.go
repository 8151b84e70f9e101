package topology

import (
	"errors"
	"fmt"

	"github.com/vk/dagreplay/internal/model"
)

// ErrNodeNotFound is returned when a queried node id is not part of the
// topology.
var ErrNodeNotFound = errors.New("node not found in topology")

// ErrNoPath is returned when two nodes are not connected by any sequence of
// links.
var ErrNoPath = errors.New("no path between nodes")

// linkKey addresses a directed ordering of a link's endpoints.
type linkKey struct {
	from, to string
}

// edge is one adjacency entry; weight is the inverse of the link bandwidth,
// so Dijkstra prefers high-bandwidth routes.
type edge struct {
	to     string
	weight float64
}

// Topology is the immutable network graph built once from the loaded nodes
// and links.
type Topology struct {
	nodes map[string]*model.ComputeNode
	adj   map[string][]edge
	links map[linkKey]*model.NetworkLink
}

// New builds a topology from compute nodes and network links. Self-loop
// links are kept for local-transfer lookups but never become graph edges.
// A link with non-positive bandwidth or an unknown endpoint is a fatal
// input inconsistency.
func New(nodes map[string]*model.ComputeNode, links []*model.NetworkLink) (*Topology, error) {
	t := &Topology{
		nodes: nodes,
		adj:   make(map[string][]edge, len(nodes)),
		links: make(map[linkKey]*model.NetworkLink, 2*len(links)),
	}

	for _, link := range links {
		if link.Bandwidth <= 0 {
			return nil, fmt.Errorf("link %s->%s has invalid bandwidth %v", link.Source, link.Target, link.Bandwidth)
		}
		if _, ok := nodes[link.Source]; !ok {
			return nil, fmt.Errorf("link references %w: %s", ErrNodeNotFound, link.Source)
		}
		if _, ok := nodes[link.Target]; !ok {
			return nil, fmt.Errorf("link references %w: %s", ErrNodeNotFound, link.Target)
		}

		if link.IsSelfLoop() {
			t.links[linkKey{link.Source, link.Target}] = link
			continue
		}

		w := 1.0 / link.Bandwidth
		t.adj[link.Source] = append(t.adj[link.Source], edge{to: link.Target, weight: w})
		t.adj[link.Target] = append(t.adj[link.Target], edge{to: link.Source, weight: w})
		t.links[linkKey{link.Source, link.Target}] = link
		t.links[linkKey{link.Target, link.Source}] = link
	}

	return t, nil
}

// Node returns the compute node with the given id, if present.
func (t *Topology) Node(id string) (*model.ComputeNode, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Link returns the link between two nodes (in either direction), if one
// exists. For source == target it returns the self-loop link.
func (t *Topology) Link(source, target string) (*model.NetworkLink, bool) {
	l, ok := t.links[linkKey{source, target}]
	return l, ok
}

// PathLinks returns the links along the minimum-weight path between two
// nodes. For source == target it returns the self-loop link when one
// exists, else an empty slice.
func (t *Topology) PathLinks(source, target string) ([]*model.NetworkLink, error) {
	if source == target {
		if l, ok := t.Link(source, target); ok {
			return []*model.NetworkLink{l}, nil
		}
		return nil, nil
	}

	path, err := t.Path(source, target)
	if err != nil {
		return nil, err
	}

	links := make([]*model.NetworkLink, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		l, ok := t.Link(path[i], path[i+1])
		if !ok {
			return nil, fmt.Errorf("missing link metadata for hop %s->%s", path[i], path[i+1])
		}
		links = append(links, l)
	}
	return links, nil
}

// TransferTime returns the total time to move dataBytes from source to
// target: the self-loop delay (or zero) for a local transfer, otherwise the
// sum of every hop's serialization delay along the shortest path.
func (t *Topology) TransferTime(source, target string, dataBytes float64) (float64, error) {
	if source == target {
		if l, ok := t.Link(source, target); ok {
			return l.TransferTime(dataBytes)
		}
		// No self-loop configured: local transfer is instantaneous.
		return 0, nil
	}

	links, err := t.PathLinks(source, target)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, l := range links {
		d, err := l.TransferTime(dataBytes)
		if err != nil {
			return 0, err
		}
		total += d
	}
	return total, nil
}

// ComputeTime returns the time to execute computeCost work units on the
// given node at the given base speed.
func (t *Topology) ComputeTime(nodeID string, computeCost, baseSpeed float64) (float64, error) {
	n, ok := t.nodes[nodeID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	return n.ComputeTime(computeCost, baseSpeed)
}
