package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/dagreplay/internal/ctxlog"
	"github.com/vk/dagreplay/internal/dag"
	"github.com/vk/dagreplay/internal/export"
	"github.com/vk/dagreplay/internal/loader"
	"github.com/vk/dagreplay/internal/metrics"
	"github.com/vk/dagreplay/internal/model"
	"github.com/vk/dagreplay/internal/replay"
	"github.com/vk/dagreplay/internal/report"
	"github.com/vk/dagreplay/internal/topology"
	"github.com/vk/dagreplay/internal/verify"
)

// Run executes the full simulation pipeline: load the three inputs,
// validate the task graph, build the topology, replay the schedule, print
// the summary and verification report, and export results when an output
// directory is configured.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	cfg := a.config

	defs, _, err := loader.LoadDAG(ctx, cfg.DAGPath)
	if err != nil {
		return err
	}
	nodes, links, err := loader.LoadTopology(ctx, cfg.TopologyPath)
	if err != nil {
		return err
	}
	tasks, taskToNode, schedMeta, err := loader.LoadSchedule(ctx, cfg.SchedulePath)
	if err != nil {
		return err
	}
	a.logger.Info("Inputs loaded.",
		"tasks", len(defs), "nodes", len(nodes), "links", len(links),
		"scheduled", len(tasks), "assignments", len(taskToNode),
		"scheduler", schedMeta.Scheduler)

	// A cyclic task graph would suspend replay processes forever; reject it
	// before the clock starts.
	if err := dag.Validate(defs); err != nil {
		return err
	}

	topo, err := topology.New(nodes, links)
	if err != nil {
		return err
	}
	if err := checkAssignments(tasks, topo); err != nil {
		return err
	}

	collector := metrics.NewCollector()
	engine := replay.New(topo, defs, tasks, collector, cfg.BaseComputeSpeed)

	a.logger.Info("🚀 Starting replay...")
	makespan, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}
	a.logger.Info("🏁 Replay finished.", "makespan", makespan, "predicted", schedMeta.Makespan)

	summary := collector.Summary(schedMeta.Makespan, makespan)
	report.WriteSummary(a.outW, schedMeta.Scheduler, summary)

	rep := verify.Check(defs, tasks, collector)
	report.WriteVerification(a.outW, rep)

	if cfg.OutputDir != "" {
		results := &export.Results{
			Summary: export.Summary{
				Summary: summary,
				InputFiles: export.InputFiles{
					DAG:      cfg.DAGPath,
					Topology: cfg.TopologyPath,
					Schedule: cfg.SchedulePath,
				},
				Configuration: export.RunConfig{BaseComputeSpeed: cfg.BaseComputeSpeed},
			},
			Tasks: collector.Tasks(),
		}
		jsonPath, csvPath, err := export.Write(cfg.OutputDir, results)
		if err != nil {
			return err
		}
		a.logger.Info("Results exported.", "json", jsonPath, "csv", csvPath)
	}

	return nil
}

// checkAssignments verifies every scheduled task runs on a node the
// topology knows about; a dangling assignment is a fatal input error.
func checkAssignments(tasks map[string]*model.ScheduledTask, topo *topology.Topology) error {
	ids := make([]string, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if _, ok := topo.Node(tasks[id].NodeID); !ok {
			return fmt.Errorf("scheduled task %s is assigned to unknown node %s", id, tasks[id].NodeID)
		}
	}
	return nil
}
