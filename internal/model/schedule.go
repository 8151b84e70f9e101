package model

// ScheduledTask is one task instance of the externally produced schedule.
// The scheduled_* fields come from the schedule file and never change. The
// actual-* fields start unset and are written once each by the replay engine
// while the instance executes.
type ScheduledTask struct {
	ID     string
	NodeID string

	ScheduledStart    float64
	ScheduledEnd      float64
	ScheduledDuration float64

	// ActualStart is written twice during replay: once when predecessor
	// waiting ends and again when data arrival completes; the final value is
	// the post-transfer one.
	ActualStart *float64
	ActualEnd   *float64

	UplinkTime   float64
	ComputeTime  float64
	DownlinkTime float64
}

// SetActualStart records (or overwrites) the instant the task left a waiting
// phase.
func (t *ScheduledTask) SetActualStart(at float64) {
	v := at
	t.ActualStart = &v
}

// SetActualEnd records the instant the task finished computing.
func (t *ScheduledTask) SetActualEnd(at float64) {
	v := at
	t.ActualEnd = &v
}

// ActualDuration returns actual_end - actual_start. It reports false until
// both endpoints have been recorded.
func (t *ScheduledTask) ActualDuration() (float64, bool) {
	if t.ActualStart == nil || t.ActualEnd == nil {
		return 0, false
	}
	return *t.ActualEnd - *t.ActualStart, true
}

// Completed reports whether the task reached its terminal state during
// replay.
func (t *ScheduledTask) Completed() bool {
	return t.ActualEnd != nil
}
