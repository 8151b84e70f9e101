// Package verify runs the post-replay consistency checks: no task may start
// before a resolved predecessor finished, and each task's phase durations
// are compared against its recorded actual duration. Findings are collected
// into a report rather than aborting, since the simulation has already
// produced a result worth inspecting.
package verify

import (
	"fmt"
	"math"
	"slices"

	"github.com/vk/dagreplay/internal/metrics"
	"github.com/vk/dagreplay/internal/model"
	"github.com/vk/dagreplay/internal/replay"
)

// timingTolerance absorbs floating point drift when comparing phase sums.
const timingTolerance = 1e-3

// DependencyViolation records a task that began before one of its resolved
// predecessors ended.
type DependencyViolation struct {
	TaskID         string
	PredecessorID  string
	TaskStart      float64
	PredecessorEnd float64
}

func (v DependencyViolation) String() string {
	return fmt.Sprintf("task %s started at %.2f before predecessor %s ended at %.2f",
		v.TaskID, v.TaskStart, v.PredecessorID, v.PredecessorEnd)
}

// TimingMismatch records a task whose phase durations do not sum to its
// recorded actual duration. The recorded actual span covers the compute
// phase only, so tasks with a non-zero uplink show up here; the report
// makes that charge explicit instead of hiding it.
type TimingMismatch struct {
	TaskID         string
	PhaseSum       float64
	ActualDuration float64
}

func (m TimingMismatch) String() string {
	return fmt.Sprintf("task %s phases sum to %.2f, actual duration is %.2f",
		m.TaskID, m.PhaseSum, m.ActualDuration)
}

// Report is the outcome of the verification pass.
type Report struct {
	DependencyViolations []DependencyViolation
	TimingMismatches     []TimingMismatch
}

// Clean reports whether no inconsistency was found.
func (r *Report) Clean() bool {
	return len(r.DependencyViolations) == 0 && len(r.TimingMismatches) == 0
}

// Check inspects a finished replay. Tasks are visited in sorted id order so
// the report is stable.
func Check(defs map[string]*model.TaskDefinition, tasks map[string]*model.ScheduledTask, collector *metrics.Collector) *Report {
	report := &Report{}

	ids := make([]string, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		task := tasks[id]
		if task.ActualStart == nil {
			continue
		}
		for _, predID := range replay.ResolvePredecessors(defs, tasks, id) {
			pred := tasks[predID]
			if pred.ActualEnd == nil {
				continue
			}
			if *task.ActualStart < *pred.ActualEnd {
				report.DependencyViolations = append(report.DependencyViolations, DependencyViolation{
					TaskID:         id,
					PredecessorID:  predID,
					TaskStart:      *task.ActualStart,
					PredecessorEnd: *pred.ActualEnd,
				})
			}
		}
	}

	for _, m := range collector.Tasks() {
		phaseSum := m.UplinkTime + m.ComputeTime + m.DownlinkTime
		if math.Abs(phaseSum-m.ActualDuration) > timingTolerance {
			report.TimingMismatches = append(report.TimingMismatches, TimingMismatch{
				TaskID:         m.TaskID,
				PhaseSum:       phaseSum,
				ActualDuration: m.ActualDuration,
			})
		}
	}

	return report
}
