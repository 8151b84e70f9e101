// Package replay is the execution engine of the simulator. It spawns one
// simclock process per scheduled task instance and walks each through
// Pending -> WaitingForPredecessors -> Transferring -> Computing ->
// Completed, producing actual timings for the metrics collector and the
// overall simulated makespan.
//
// Two modeling choices are deliberate and must not be "fixed": transfers
// from distinct predecessors run concurrently, so a task's uplink duration
// is the maximum of the individual transfer times; and a compute node may
// run any number of tasks at overlapping simulated instants, with no
// capacity constraint.
package replay
