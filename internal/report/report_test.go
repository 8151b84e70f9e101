package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/dagreplay/internal/metrics"
	"github.com/vk/dagreplay/internal/verify"
)

func TestWriteSummary(t *testing.T) {
	s := metrics.Summary{
		NumTasks:              2,
		PredictedMakespan:     16,
		SimulatedMakespan:     16,
		MakespanDifference:    0,
		MakespanDifferencePct: 0,
		TimingBreakdown: metrics.TimingBreakdown{
			TotalUplinkTime:  1,
			TotalComputeTime: 15,
		},
		AverageDeltas: metrics.AverageDeltas{StartDelta: 0.5, DurationDelta: -0.5},
	}

	var buf bytes.Buffer
	WriteSummary(&buf, "HEFT", s)
	out := buf.String()

	assert.Contains(t, out, "DAG SIMULATION RESULTS")
	assert.Contains(t, out, "Tasks executed: 2")
	assert.Contains(t, out, "HEFT predicted:  16.00")
	assert.Contains(t, out, "Simulated:       16.00")
	assert.Contains(t, out, "Difference:      +0.00 (+0.00%)")
	assert.Contains(t, out, "Total uplink time:   1.00")
	assert.Contains(t, out, "Total compute time:  15.00")
	assert.Contains(t, out, "Start delta:    +0.50")
	assert.Contains(t, out, "Duration delta: -0.50")
}

func TestWriteVerificationClean(t *testing.T) {
	var buf bytes.Buffer
	WriteVerification(&buf, &verify.Report{})
	out := buf.String()

	assert.Contains(t, out, "VERIFICATION:")
	assert.Contains(t, out, "All task dependencies respected.")
	assert.Contains(t, out, "Timing breakdown sums correctly for all tasks.")
}

func TestWriteVerificationFindings(t *testing.T) {
	r := &verify.Report{
		DependencyViolations: []verify.DependencyViolation{
			{TaskID: "T1", PredecessorID: "T0", TaskStart: 8, PredecessorEnd: 10},
		},
		TimingMismatches: []verify.TimingMismatch{
			{TaskID: "T1", PhaseSum: 6, ActualDuration: 5},
		},
	}

	var buf bytes.Buffer
	WriteVerification(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "WARNING: 1 dependency violation(s) found!")
	assert.Contains(t, out, "task T1 started at 8.00 before predecessor T0 ended at 10.00")
	assert.Contains(t, out, "Timing mismatch for T1: components sum to 6.00, actual duration is 5.00")
}

func TestWriteVerificationTruncation(t *testing.T) {
	r := &verify.Report{}
	for i := 0; i < 8; i++ {
		r.DependencyViolations = append(r.DependencyViolations, verify.DependencyViolation{
			TaskID: fmt.Sprintf("T%d", i), PredecessorID: "P",
		})
		r.TimingMismatches = append(r.TimingMismatches, verify.TimingMismatch{
			TaskID: fmt.Sprintf("T%d", i),
		})
	}

	var buf bytes.Buffer
	WriteVerification(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "... and 3 more\n")
	assert.Contains(t, out, "... and 3 more timing mismatches")
	assert.Equal(t, 5, strings.Count(out, "    - task"))
	assert.Equal(t, 5, strings.Count(out, "Timing mismatch for"))
}
