// Package progress derives completion figures from a project's tasks.
package progress

import "synergysphere/internal/entities"

// Aggregate counts tasks and those in Done. Pct is 100*done/total rounded
// half up, and 0 for an empty set. The result does not depend on order.
func Aggregate(tasks []entities.Task) entities.Progress {
	res := entities.Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == entities.StatusDone {
			res.Done++
		}
	}
	res.Pct = percent(res.Done, res.Total)
	return res
}

// Summarize returns Aggregate plus a count for every status, in workflow order.
func Summarize(tasks []entities.Task) entities.Summary {
	counts := make(map[entities.TaskStatus]int, len(entities.TaskStatuses))
	for _, t := range tasks {
		counts[t.Status]++
	}

	byStatus := make([]entities.StatusCount, 0, len(entities.TaskStatuses))
	for _, s := range entities.TaskStatuses {
		byStatus = append(byStatus, entities.StatusCount{Status: s, Count: counts[s]})
	}

	return entities.Summary{
		Progress: Aggregate(tasks),
		ByStatus: byStatus,
	}
}

// GroupByProject splits a task list into per-project slices.
func GroupByProject(tasks []entities.Task) map[string][]entities.Task {
	res := make(map[string][]entities.Task)
	for _, t := range tasks {
		res[t.ProjectID] = append(res[t.ProjectID], t)
	}
	return res
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	// floor((100*done)/total + 1/2) without floating point
	return (200*done + total) / (2 * total)
}
