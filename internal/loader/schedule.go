package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/vk/dagreplay/internal/ctxlog"
	"github.com/vk/dagreplay/internal/model"
)

// durationTolerance bounds the accepted drift between a schedule entry's
// end-start span and its stated duration.
const durationTolerance = 1e-6

// ScheduleMeta is the schedule file's metadata block. Makespan and
// Scheduler are required; they drive the prediction-vs-simulation
// comparison and the report labels.
type ScheduleMeta struct {
	Makespan  float64
	Scheduler string
}

// scheduleFile mirrors the on-disk shape of a schedule JSON file.
type scheduleFile struct {
	TaskToNode map[string]string `json:"task_to_node"`
	Schedule   []struct {
		Task     string  `json:"task"`
		Node     string  `json:"node"`
		Start    float64 `json:"start"`
		End      float64 `json:"end"`
		Duration float64 `json:"duration"`
	} `json:"schedule"`
	Metadata struct {
		Makespan  *float64 `json:"makespan"`
		Scheduler string   `json:"scheduler"`
	} `json:"metadata"`
}

// LoadSchedule reads the scheduled task instances, the task-to-node map,
// and the schedule metadata. Each entry's timing must be internally
// consistent (end - start == duration within tolerance).
func LoadSchedule(ctx context.Context, path string) (map[string]*model.ScheduledTask, map[string]string, *ScheduleMeta, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading schedule file: %w", err)
	}

	var doc scheduleFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, nil, fmt.Errorf("parsing schedule file %s: %w", path, err)
	}

	if doc.Metadata.Makespan == nil {
		return nil, nil, nil, fmt.Errorf("parsing schedule file %s: metadata is missing the predicted makespan", path)
	}
	if doc.Metadata.Scheduler == "" {
		return nil, nil, nil, fmt.Errorf("parsing schedule file %s: metadata is missing the scheduler name", path)
	}

	tasks := make(map[string]*model.ScheduledTask, len(doc.Schedule))
	for _, entry := range doc.Schedule {
		if entry.Task == "" {
			return nil, nil, nil, fmt.Errorf("parsing schedule file %s: schedule entry without task id", path)
		}
		span := entry.End - entry.Start
		if math.Abs(span-entry.Duration) > durationTolerance*max(1, math.Abs(entry.Duration)) {
			return nil, nil, nil, fmt.Errorf("parsing schedule file %s: task %s spans %v but states duration %v", path, entry.Task, span, entry.Duration)
		}
		tasks[entry.Task] = &model.ScheduledTask{
			ID:                entry.Task,
			NodeID:            entry.Node,
			ScheduledStart:    entry.Start,
			ScheduledEnd:      entry.End,
			ScheduledDuration: entry.Duration,
		}
	}

	meta := &ScheduleMeta{Makespan: *doc.Metadata.Makespan, Scheduler: doc.Metadata.Scheduler}
	ctxlog.FromContext(ctx).Debug("Schedule file loaded.", "path", path, "tasks", len(tasks), "scheduler", meta.Scheduler, "predicted_makespan", meta.Makespan)
	return tasks, doc.TaskToNode, meta, nil
}
