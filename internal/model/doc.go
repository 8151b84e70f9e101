// Package model defines the shared data records for the replay simulation:
// task definitions loaded from the DAG file, scheduled task instances from
// the schedule file, and compute nodes / network links from the topology
// file. All records are created once at load time and are read-only during
// a run, except for the actual-* timing fields of ScheduledTask, which the
// replay engine writes exactly once each.
package model
