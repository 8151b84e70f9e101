package model

import "fmt"

// NetworkLink is an undirected, bandwidth-limited connection between two
// compute nodes. A self-loop (Source == Target) models local, intra-node
// data movement.
type NetworkLink struct {
	Source string
	Target string
	// Bandwidth is expressed in bits per simulated time unit.
	Bandwidth float64
	// LinkType is an informational tag (e.g. fronthaul, core, self-loop).
	LinkType string
}

// IsSelfLoop reports whether the link connects a node to itself.
func (l *NetworkLink) IsSelfLoop() bool {
	return l.Source == l.Target
}

// TransferTime returns the time needed to serialize dataBytes over this
// link. It fails when the bandwidth is not positive.
func (l *NetworkLink) TransferTime(dataBytes float64) (float64, error) {
	if l.Bandwidth <= 0 {
		return 0, fmt.Errorf("link %s->%s has invalid bandwidth %v", l.Source, l.Target, l.Bandwidth)
	}
	bytesPerUnit := l.Bandwidth / 8
	return dataBytes / bytesPerUnit, nil
}
