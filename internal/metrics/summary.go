package metrics

// TimingBreakdown is the cumulative phase time across all tasks.
type TimingBreakdown struct {
	TotalUplinkTime   float64 `json:"total_uplink_time"`
	TotalComputeTime  float64 `json:"total_compute_time"`
	TotalDownlinkTime float64 `json:"total_downlink_time"`
}

// AverageDeltas is the mean actual-minus-scheduled delta across all tasks.
type AverageDeltas struct {
	StartDelta    float64 `json:"start_delta"`
	EndDelta      float64 `json:"end_delta"`
	DurationDelta float64 `json:"duration_delta"`
}

// Summary compares the scheduler's predicted makespan against the simulated
// one and aggregates the per-task records.
type Summary struct {
	NumTasks              int             `json:"num_tasks"`
	PredictedMakespan     float64         `json:"predicted_makespan"`
	SimulatedMakespan     float64         `json:"simulated_makespan"`
	MakespanDifference    float64         `json:"makespan_difference"`
	MakespanDifferencePct float64         `json:"makespan_difference_pct"`
	TimingBreakdown       TimingBreakdown `json:"timing_breakdown"`
	AverageDeltas         AverageDeltas   `json:"average_deltas"`
}

// Summary aggregates the collected records against the scheduler-predicted
// makespan.
func (c *Collector) Summary(predictedMakespan, simulatedMakespan float64) Summary {
	s := Summary{
		NumTasks:           len(c.order),
		PredictedMakespan:  predictedMakespan,
		SimulatedMakespan:  simulatedMakespan,
		MakespanDifference: simulatedMakespan - predictedMakespan,
	}
	if predictedMakespan > 0 {
		s.MakespanDifferencePct = s.MakespanDifference / predictedMakespan * 100
	}
	if len(c.order) == 0 {
		return s
	}

	for _, id := range c.order {
		m := c.byTask[id]
		s.TimingBreakdown.TotalUplinkTime += m.UplinkTime
		s.TimingBreakdown.TotalComputeTime += m.ComputeTime
		s.TimingBreakdown.TotalDownlinkTime += m.DownlinkTime
		s.AverageDeltas.StartDelta += m.StartDelta
		s.AverageDeltas.EndDelta += m.EndDelta
		s.AverageDeltas.DurationDelta += m.DurationDelta
	}
	n := float64(len(c.order))
	s.AverageDeltas.StartDelta /= n
	s.AverageDeltas.EndDelta /= n
	s.AverageDeltas.DurationDelta /= n
	return s
}
