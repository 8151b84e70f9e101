package taskid

import "strings"

// Marker is the reserved first character of a partition tag.
const Marker = 'c'

// ID is the structured form of a scheduled task identifier.
type ID struct {
	// Base is the TaskDefinition identity the instance derives from.
	Base string
	// Partition is the partition tag including the marker ("c6"), or empty
	// for an undecomposed id.
	Partition string
}

// Parse splits a scheduled task id into its base id and optional partition
// tag. Unrecognized suffix shapes leave the whole id as the base.
func Parse(scheduledID string) ID {
	i := strings.LastIndexByte(scheduledID, '_')
	if i <= 0 || i == len(scheduledID)-1 {
		return ID{Base: scheduledID}
	}
	suffix := scheduledID[i+1:]
	if suffix[0] != Marker {
		return ID{Base: scheduledID}
	}
	return ID{Base: scheduledID[:i], Partition: suffix}
}

// Base is shorthand for Parse(id).Base.
func Base(scheduledID string) string {
	return Parse(scheduledID).Base
}

// HasPartition reports whether the id carries a partition tag.
func (id ID) HasPartition() bool {
	return id.Partition != ""
}

// Sibling returns the scheduled id of the given base task within the same
// partition: the bare base id when no partition is in play, otherwise
// base_<tag>.
func (id ID) Sibling(base string) string {
	if id.Partition == "" {
		return base
	}
	return base + "_" + id.Partition
}

// String reassembles the canonical scheduled id.
func (id ID) String() string {
	return id.Sibling(id.Base)
}
