package topology

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/addrummond/heap"
)

// pathStep is a frontier entry for Dijkstra's algorithm.
type pathStep struct {
	node string
	dist float64
	seq  int64
}

func (a *pathStep) Cmp(b *pathStep) int {
	if c := cmp.Compare(a.dist, b.dist); c != 0 {
		return c
	}
	// Tie-break on insertion order so path selection is deterministic.
	return cmp.Compare(a.seq, b.seq)
}

// Path returns the minimum-weight path from source to target, both
// endpoints included, using inverse-bandwidth edge weights. For
// source == target it returns the trivial single-node path.
func (t *Topology) Path(source, target string) ([]string, error) {
	if _, ok := t.nodes[source]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, source)
	}
	if _, ok := t.nodes[target]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, target)
	}
	if source == target {
		return []string{source}, nil
	}

	dist := map[string]float64{source: 0}
	prev := make(map[string]string)
	done := make(map[string]bool)

	var seq int64
	var frontier heap.Heap[pathStep, heap.Min]
	heap.PushOrderable(&frontier, pathStep{node: source, dist: 0, seq: seq})

	for {
		step, ok := heap.PopOrderable(&frontier)
		if !ok {
			return nil, fmt.Errorf("%w: %s and %s", ErrNoPath, source, target)
		}
		if done[step.node] {
			continue
		}
		done[step.node] = true
		if step.node == target {
			break
		}

		for _, e := range t.adj[step.node] {
			if done[e.to] {
				continue
			}
			next := step.dist + e.weight
			if best, seen := dist[e.to]; !seen || next < best {
				dist[e.to] = next
				prev[e.to] = step.node
				seq++
				heap.PushOrderable(&frontier, pathStep{node: e.to, dist: next, seq: seq})
			}
		}
	}

	path := []string{target}
	for at := target; at != source; {
		at = prev[at]
		path = append(path, at)
	}
	slices.Reverse(path)
	return path, nil
}
