package replay

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/dagreplay/internal/ctxlog"
	"github.com/vk/dagreplay/internal/metrics"
	"github.com/vk/dagreplay/internal/model"
	"github.com/vk/dagreplay/internal/simclock"
	"github.com/vk/dagreplay/internal/taskid"
	"github.com/vk/dagreplay/internal/topology"
)

// Engine replays a fixed schedule against simulated time. An Engine is
// single-use: construct, Run once, inspect results.
type Engine struct {
	topo      *topology.Topology
	defs      map[string]*model.TaskDefinition
	tasks     map[string]*model.ScheduledTask
	collector *metrics.Collector
	baseSpeed float64

	env        *simclock.Env
	completion map[string]*simclock.Signal
	runErr     error
}

// New creates an engine over the loaded inputs. baseSpeed is the global
// base compute speed every node's multiplier scales.
func New(topo *topology.Topology, defs map[string]*model.TaskDefinition, tasks map[string]*model.ScheduledTask, collector *metrics.Collector, baseSpeed float64) *Engine {
	return &Engine{
		topo:      topo,
		defs:      defs,
		tasks:     tasks,
		collector: collector,
		baseSpeed: baseSpeed,
	}
}

// Run executes the replay to quiescence and returns the makespan, the
// maximum actual end time over all scheduled tasks. It fails up front when
// any scheduled task has no task definition, and after the run when any
// task failed a model calculation or never reached its terminal state.
func (e *Engine) Run(ctx context.Context) (float64, error) {
	logger := ctxlog.FromContext(ctx)

	ids := make([]string, 0, len(e.tasks))
	for id := range e.tasks {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if _, ok := e.defs[taskid.Base(id)]; !ok {
			return 0, fmt.Errorf("no task definition for scheduled task %s (base id %s)", id, taskid.Base(id))
		}
	}

	e.env = simclock.NewEnv()
	e.completion = make(map[string]*simclock.Signal, len(ids))
	for _, id := range ids {
		e.completion[id] = e.env.NewSignal(id)
	}
	for _, id := range ids {
		task := e.tasks[id]
		e.env.Spawn(id, func(p *simclock.Proc) {
			e.executeTask(ctx, p, task)
		})
	}
	logger.Debug("Replay processes spawned.", "count", len(ids))

	err := e.env.Run()
	if e.runErr != nil {
		return 0, e.runErr
	}
	if err != nil {
		return 0, err
	}

	var makespan float64
	for _, id := range ids {
		task := e.tasks[id]
		if !task.Completed() {
			// The clock reached quiescence but the task has no terminal
			// actual_end; surface it instead of reporting a bogus makespan.
			return 0, fmt.Errorf("task %s never completed", id)
		}
		makespan = max(makespan, *task.ActualEnd)
	}
	logger.Debug("Replay finished.", "makespan", makespan)
	return makespan, nil
}

// executeTask is the per-instance simulation process: wait for the resolved
// predecessor set, hold for the slowest incoming transfer, hold for the
// compute time, then signal completion and emit metrics.
func (e *Engine) executeTask(ctx context.Context, p *simclock.Proc, task *model.ScheduledTask) {
	logger := ctxlog.FromContext(ctx).With("task", task.ID, "node", task.NodeID)

	preds := ResolvePredecessors(e.defs, e.tasks, task.ID)
	if len(preds) > 0 {
		sigs := make([]*simclock.Signal, 0, len(preds))
		for _, id := range preds {
			sigs = append(sigs, e.completion[id])
		}
		logger.Debug("Waiting for predecessors.", "count", len(sigs))
		p.WaitAll(sigs...)
	}
	task.SetActualStart(p.Now())

	var uplink float64
	for _, predID := range preds {
		pred := e.tasks[predID]
		data := dataFromPredecessor(e.defs, predID, task.ID)
		if data <= 0 {
			continue
		}
		d, err := e.topo.TransferTime(pred.NodeID, task.NodeID, data)
		if err != nil {
			e.fail(task, fmt.Errorf("transfer %s -> %s for task %s: %w", pred.NodeID, task.NodeID, task.ID, err))
			return
		}
		// Transfers from distinct predecessors run concurrently over their
		// own paths; the slowest one gates this task.
		uplink = max(uplink, d)
	}
	task.UplinkTime = uplink
	if uplink > 0 {
		p.Hold(uplink)
	}
	// Overwrites the pre-transfer value; the recorded actual_start is the
	// instant data arrival completed.
	task.SetActualStart(p.Now())

	def := e.defs[taskid.Base(task.ID)]
	computeTime, err := e.topo.ComputeTime(task.NodeID, def.ComputeCost, e.baseSpeed)
	if err != nil {
		e.fail(task, fmt.Errorf("compute time for task %s: %w", task.ID, err))
		return
	}
	task.ComputeTime = computeTime
	p.Hold(computeTime)
	task.SetActualEnd(p.Now())

	e.completion[task.ID].Fire()
	e.collector.Record(task)
	logger.Debug("Task completed.", "start", *task.ActualStart, "end", *task.ActualEnd, "uplink", task.UplinkTime, "compute", task.ComputeTime)
}

// fail records the first model error and fires the task's completion signal
// so downstream processes drain instead of stalling the clock.
func (e *Engine) fail(task *model.ScheduledTask, err error) {
	if e.runErr == nil {
		e.runErr = err
	}
	e.completion[task.ID].Fire()
}
