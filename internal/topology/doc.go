// Package topology models the compute/network substrate the schedule runs
// on: an undirected graph of compute nodes weighted by inverse link
// bandwidth. It answers shortest-path queries (Dijkstra), multi-hop transfer
// time queries, and per-node compute time queries.
//
// Transfer time over a path is the sum of each hop's full serialization
// delay, not the delay of the bottleneck link. The additive model is a
// deliberate modeling choice and the rest of the system depends on it.
package topology
