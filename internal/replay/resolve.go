package replay

import (
	"github.com/vk/dagreplay/internal/model"
	"github.com/vk/dagreplay/internal/taskid"
)

// ResolvePredecessors maps the base-task predecessors of a scheduled
// instance back to scheduled ids carrying the same partition tag (or the
// bare base id when no tag is in play). A mapped id absent from the
// schedule is dropped: decoupled instances have no simulated dependency.
func ResolvePredecessors(defs map[string]*model.TaskDefinition, tasks map[string]*model.ScheduledTask, scheduledID string) []string {
	id := taskid.Parse(scheduledID)
	def, ok := defs[id.Base]
	if !ok {
		return nil
	}

	var preds []string
	for _, predBase := range def.Predecessors {
		predID := id.Sibling(predBase)
		if _, scheduled := tasks[predID]; scheduled {
			preds = append(preds, predID)
		}
	}
	return preds
}

// dataFromPredecessor returns the byte volume the predecessor instance owes
// the current instance, looked up on the base-task edge weights.
func dataFromPredecessor(defs map[string]*model.TaskDefinition, predID, currentID string) float64 {
	predDef, ok := defs[taskid.Base(predID)]
	if !ok {
		return 0
	}
	return predDef.DataToSuccessor(taskid.Base(currentID))
}
