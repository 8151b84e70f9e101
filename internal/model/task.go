package model

// TaskDefinition describes a single task in the loaded DAG. The predecessor
// list must be the structural inverse of the successor relation across all
// tasks; the loader builds it that way and internal/dag re-checks it.
type TaskDefinition struct {
	ID          string
	ComputeCost float64
	Successors   []string
	Predecessors []string
	// EdgeWeights maps a successor id to the data volume, in bytes, owed to
	// that successor.
	EdgeWeights map[string]float64
}

// DataToSuccessor returns the byte volume this task owes to the given
// successor, or zero when no edge weight is recorded.
func (t *TaskDefinition) DataToSuccessor(successorID string) float64 {
	return t.EdgeWeights[successorID]
}
