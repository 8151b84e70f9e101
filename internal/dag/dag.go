package dag

import (
	"fmt"
	"slices"

	"github.com/vk/dagreplay/internal/model"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node,
// meaning `toID` depends on `fromID`. An error is returned if either node
// does not exist or if the edge would create a self-reference.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode

	return nil
}

// FromDefinitions builds a graph from the loaded task definitions and
// verifies that the stored predecessor lists are exactly the inverse of the
// successor relation.
func FromDefinitions(defs map[string]*model.TaskDefinition) (*Graph, error) {
	g := New()
	for id := range defs {
		g.AddNode(id)
	}

	for id, def := range defs {
		for _, succ := range def.Successors {
			if _, ok := defs[succ]; !ok {
				return nil, fmt.Errorf("task %s lists unknown successor %s", id, succ)
			}
			if err := g.AddEdge(id, succ); err != nil {
				return nil, err
			}
		}
	}

	for id, def := range defs {
		n := g.nodes[id]
		if len(def.Predecessors) != len(n.deps) {
			return nil, fmt.Errorf("task %s predecessor list does not invert the successor relation", id)
		}
		for _, pred := range def.Predecessors {
			if _, ok := n.deps[pred]; !ok {
				return nil, fmt.Errorf("task %s lists predecessor %s, but %s does not list %s as successor", id, pred, pred, id)
			}
		}
	}

	return g, nil
}

// Dependencies returns a sorted slice of node IDs that the given node
// depends on.
func (g *Graph) Dependencies(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	deps := make([]string, 0, len(n.deps))
	for depID := range n.deps {
		deps = append(deps, depID)
	}
	slices.Sort(deps)
	return deps, nil
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, indicating the first node involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search with three sets of nodes:
	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			// A node already on the recursion stack means we closed a loop.
			return fmt.Errorf("cycle detected involving task '%s'", n.id)
		}

		temporary[n.id] = true

		for _, dependent := range n.dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}

		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, n := range g.nodes {
		if !permanent[n.id] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}

	return nil
}

// Validate runs the full pre-replay validation: definition/graph consistency
// plus acyclicity.
func Validate(defs map[string]*model.TaskDefinition) error {
	g, err := FromDefinitions(defs)
	if err != nil {
		return err
	}
	if err := g.DetectCycles(); err != nil {
		return fmt.Errorf("invalid task graph: %w", err)
	}
	return nil
}
