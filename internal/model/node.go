package model

import "fmt"

// ComputeNode is a vertex of the network topology that can execute tasks.
type ComputeNode struct {
	ID string
	// SpeedMultiplier scales the global base compute speed; effective
	// capacity = base speed * multiplier.
	SpeedMultiplier float64
	// NodeType is an informational tag (e.g. DU, aggregation, cloud).
	NodeType string
}

// Capacity returns the effective compute capacity of the node for the given
// base speed.
func (n *ComputeNode) Capacity(baseSpeed float64) float64 {
	return baseSpeed * n.SpeedMultiplier
}

// ComputeTime returns the simulated time needed to execute computeCost work
// units on this node. It fails when the effective capacity is not positive.
func (n *ComputeNode) ComputeTime(computeCost, baseSpeed float64) (float64, error) {
	capacity := n.Capacity(baseSpeed)
	if capacity <= 0 {
		return 0, fmt.Errorf("node %s has invalid capacity %v", n.ID, capacity)
	}
	return computeCost / capacity, nil
}
