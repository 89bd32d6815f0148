package app

import (
	"slices"

	"github.com/hylla/taskboard/internal/domain"
)

// Add appends a new active task. A blank title or unknown category leaves the
// board unchanged.
func (b Board) Add(title string, category domain.Category) (Board, Result) {
	id, err := b.nextID()
	if err != nil {
		return b, Result{Err: err}
	}
	task, err := domain.NewTask(domain.TaskInput{
		ID:       id,
		Title:    title,
		Category: category,
	})
	if err != nil {
		return b, Result{Err: err}
	}
	b.tasks = append(slices.Clip(b.tasks), task)
	return b, Result{Changed: true, ClearInput: true, TaskID: task.ID}
}

// Remove deletes the task with the given id. Removing the task under edit
// also closes the edit session.
func (b Board) Remove(id string) (Board, Result) {
	idx, ok := b.indexOf(id)
	if !ok {
		return b, Result{TaskID: id, Err: ErrNotFound}
	}
	b.tasks = slices.Delete(slices.Clone(b.tasks), idx, idx+1)
	if b.edit.Editing(id) {
		b.edit = EditSession{}
	}
	return b, Result{Changed: true, TaskID: id}
}

// ToggleCompleted flips the completed flag of one task.
func (b Board) ToggleCompleted(id string) (Board, Result) {
	idx, ok := b.indexOf(id)
	if !ok {
		return b, Result{TaskID: id, Err: ErrNotFound}
	}
	b.tasks = slices.Clone(b.tasks)
	b.tasks[idx].ToggleCompleted()
	return b, Result{Changed: true, TaskID: id}
}

// UpdateTitle renames one task. A blank title is discarded.
func (b Board) UpdateTitle(id, title string) (Board, Result) {
	idx, ok := b.indexOf(id)
	if !ok {
		return b, Result{TaskID: id, Err: ErrNotFound}
	}
	tasks := slices.Clone(b.tasks)
	if err := tasks[idx].Rename(title); err != nil {
		return b, Result{TaskID: id, Err: err}
	}
	b.tasks = tasks
	return b, Result{Changed: true, TaskID: id}
}
