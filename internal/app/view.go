package app

import "github.com/hylla/taskboard/internal/domain"

// Stats holds derived task counts.
type Stats struct {
	Total     int
	Active    int
	Completed int
}

// FilterTasks returns the tasks matching mode in their original order.
func FilterTasks(tasks []domain.Task, mode domain.FilterMode) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if mode.Matches(task) {
			out = append(out, task)
		}
	}
	return out
}

// ComputeStats counts tasks by completion state.
func ComputeStats(tasks []domain.Task) Stats {
	stats := Stats{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
			continue
		}
		stats.Active++
	}
	return stats
}
