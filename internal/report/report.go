// Package report renders the human-readable run summary and verification
// findings to a writer.
package report

import (
	"fmt"
	"io"

	"github.com/vk/dagreplay/internal/metrics"
	"github.com/vk/dagreplay/internal/verify"
)

// maxFindings caps how many individual findings a section prints.
const maxFindings = 5

// WriteSummary prints the makespan comparison, the cumulative timing
// breakdown, and the average schedule deltas.
func WriteSummary(w io.Writer, schedulerName string, s metrics.Summary) {
	line := "============================================================"
	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintln(w, "DAG SIMULATION RESULTS")
	fmt.Fprintln(w, line)

	fmt.Fprintf(w, "\nTasks executed: %d\n", s.NumTasks)

	fmt.Fprintln(w, "\nMAKESPAN COMPARISON:")
	fmt.Fprintf(w, "  %s predicted:  %.2f\n", schedulerName, s.PredictedMakespan)
	fmt.Fprintf(w, "  Simulated:       %.2f\n", s.SimulatedMakespan)
	fmt.Fprintf(w, "  Difference:      %+.2f (%+.2f%%)\n", s.MakespanDifference, s.MakespanDifferencePct)

	fmt.Fprintln(w, "\nTIMING BREAKDOWN (cumulative across all tasks):")
	fmt.Fprintf(w, "  Total uplink time:   %.2f\n", s.TimingBreakdown.TotalUplinkTime)
	fmt.Fprintf(w, "  Total compute time:  %.2f\n", s.TimingBreakdown.TotalComputeTime)
	fmt.Fprintf(w, "  Total downlink time: %.2f\n", s.TimingBreakdown.TotalDownlinkTime)

	fmt.Fprintln(w, "\nAVERAGE SCHEDULE DELTAS:")
	fmt.Fprintf(w, "  Start delta:    %+.2f\n", s.AverageDeltas.StartDelta)
	fmt.Fprintf(w, "  End delta:      %+.2f\n", s.AverageDeltas.EndDelta)
	fmt.Fprintf(w, "  Duration delta: %+.2f\n", s.AverageDeltas.DurationDelta)

	fmt.Fprintf(w, "\n%s\n", line)
}

// WriteVerification prints the post-replay consistency findings, truncating
// each section after maxFindings entries.
func WriteVerification(w io.Writer, r *verify.Report) {
	fmt.Fprintln(w, "\nVERIFICATION:")

	if n := len(r.DependencyViolations); n > 0 {
		fmt.Fprintf(w, "  WARNING: %d dependency violation(s) found!\n", n)
		for i, v := range r.DependencyViolations {
			if i == maxFindings {
				fmt.Fprintf(w, "    ... and %d more\n", n-maxFindings)
				break
			}
			fmt.Fprintf(w, "    - %s\n", v)
		}
	} else {
		fmt.Fprintln(w, "  All task dependencies respected.")
	}

	if n := len(r.TimingMismatches); n > 0 {
		for i, m := range r.TimingMismatches {
			if i == maxFindings {
				fmt.Fprintf(w, "  ... and %d more timing mismatches\n", n-maxFindings)
				break
			}
			fmt.Fprintf(w, "  Timing mismatch for %s: components sum to %.2f, actual duration is %.2f\n", m.TaskID, m.PhaseSum, m.ActualDuration)
		}
	} else {
		fmt.Fprintln(w, "  Timing breakdown sums correctly for all tasks.")
	}
}
