// Package metrics collects per-task actual-vs-scheduled timings during
// replay and aggregates them into a run summary. It is append-only: one
// record per completed task, captured in completion order.
package metrics

import "github.com/vk/dagreplay/internal/model"

// TaskMetrics is the full per-task record: scheduled and actual timings,
// the three phase durations, and the actual-minus-scheduled deltas.
type TaskMetrics struct {
	TaskID            string  `json:"task_id"`
	NodeID            string  `json:"node_id"`
	ScheduledStart    float64 `json:"scheduled_start"`
	ScheduledEnd      float64 `json:"scheduled_end"`
	ScheduledDuration float64 `json:"scheduled_duration"`
	ActualStart       float64 `json:"actual_start"`
	ActualEnd         float64 `json:"actual_end"`
	ActualDuration    float64 `json:"actual_duration"`
	UplinkTime        float64 `json:"uplink_time"`
	ComputeTime       float64 `json:"compute_time"`
	DownlinkTime      float64 `json:"downlink_time"`
	StartDelta        float64 `json:"start_delta"`
	EndDelta          float64 `json:"end_delta"`
	DurationDelta     float64 `json:"duration_delta"`
}

// Collector accumulates TaskMetrics records as tasks complete.
type Collector struct {
	byTask map[string]TaskMetrics
	order  []string
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{byTask: make(map[string]TaskMetrics)}
}

// Record captures the metrics of a completed task. Recording the same task
// id again overwrites the earlier entry but keeps its completion-order
// position; under correct replay that never happens.
func (c *Collector) Record(task *model.ScheduledTask) {
	actualStart := 0.0
	if task.ActualStart != nil {
		actualStart = *task.ActualStart
	}
	actualEnd := 0.0
	if task.ActualEnd != nil {
		actualEnd = *task.ActualEnd
	}
	actualDuration, _ := task.ActualDuration()

	m := TaskMetrics{
		TaskID:            task.ID,
		NodeID:            task.NodeID,
		ScheduledStart:    task.ScheduledStart,
		ScheduledEnd:      task.ScheduledEnd,
		ScheduledDuration: task.ScheduledDuration,
		ActualStart:       actualStart,
		ActualEnd:         actualEnd,
		ActualDuration:    actualDuration,
		UplinkTime:        task.UplinkTime,
		ComputeTime:       task.ComputeTime,
		DownlinkTime:      task.DownlinkTime,
		StartDelta:        actualStart - task.ScheduledStart,
		EndDelta:          actualEnd - task.ScheduledEnd,
		DurationDelta:     actualDuration - task.ScheduledDuration,
	}

	if _, seen := c.byTask[task.ID]; !seen {
		c.order = append(c.order, task.ID)
	}
	c.byTask[task.ID] = m
}

// Task returns the record for the given task id, if one was captured.
func (c *Collector) Task(id string) (TaskMetrics, bool) {
	m, ok := c.byTask[id]
	return m, ok
}

// Tasks returns all records in completion order.
func (c *Collector) Tasks() []TaskMetrics {
	out := make([]TaskMetrics, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byTask[id])
	}
	return out
}

// Len returns the number of captured records.
func (c *Collector) Len() int {
	return len(c.order)
}
