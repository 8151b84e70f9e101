// Package taskid parses scheduled task identifiers. A schedule may decompose
// a base task into data-parallel instances by appending a partition suffix,
// e.g. "T0_c6" is the instance of base task "T0" for partition "c6". The
// suffix is everything after the last underscore when it starts with the
// reserved partition marker; identifiers with any other shape are treated as
// already-base ids.
package taskid
