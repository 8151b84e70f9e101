// Package dag validates the loaded task graph before replay begins: the
// predecessor relation must be the exact inverse of the successor relation,
// every referenced task must exist, and the graph must be acyclic. A cyclic
// input would leave replay processes suspended forever, so it is rejected
// here as a configuration error instead.
package dag
