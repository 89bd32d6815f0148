package app

import (
	"slices"

	"github.com/hylla/taskboard/internal/domain"
)

// SeedTask describes one task loaded when a board is created.
type SeedTask struct {
	Title     string
	Category  domain.Category
	Completed bool
}

// DefaultSeed returns the tasks every new process starts with.
func DefaultSeed() []SeedTask {
	return []SeedTask{
		{Title: "Build portfolio website", Category: domain.CategoryWork},
		{Title: "Buy groceries", Category: domain.CategoryPersonal, Completed: true},
	}
}

// BoardConfig holds configuration for a new board.
type BoardConfig struct {
	Filter domain.FilterMode
	Seed   []SeedTask
}

// Board is the full task board state: the ordered task store, the selected
// filter mode, and the edit session. Every transition returns a new Board and
// leaves the receiver untouched.
type Board struct {
	tasks  []domain.Task
	filter domain.FilterMode
	edit   EditSession
	idGen  IDGenerator
}

// Result reports what one transition did.
type Result struct {
	// Changed is true when any part of the board state changed.
	Changed bool
	// ClearInput asks the caller to reset its title input after an add.
	ClearInput bool
	// TaskID names the task the transition targeted, if any.
	TaskID string
	// Err carries the reason a transition was ignored; it is never fatal.
	Err error
}

// NewBoard constructs a board and loads cfg.Seed in order.
func NewBoard(idGen IDGenerator, cfg BoardConfig) Board {
	if idGen == nil {
		idGen = newCounterIDGenerator()
	}
	if !cfg.Filter.Valid() {
		cfg.Filter = domain.FilterAll
	}
	b := Board{
		tasks:  make([]domain.Task, 0, len(cfg.Seed)),
		filter: cfg.Filter,
		idGen:  idGen,
	}
	for _, seed := range cfg.Seed {
		next, res := b.Add(seed.Title, seed.Category)
		if res.Err != nil {
			continue
		}
		if seed.Completed {
			next, _ = next.ToggleCompleted(res.TaskID)
		}
		b = next
	}
	return b
}

// Tasks returns a copy of every task in insertion order.
func (b Board) Tasks() []domain.Task {
	return slices.Clone(b.tasks)
}

// Task returns the task with the given id.
func (b Board) Task(id string) (domain.Task, bool) {
	idx, ok := b.indexOf(id)
	if !ok {
		return domain.Task{}, false
	}
	return b.tasks[idx], true
}

// Len returns the number of stored tasks.
func (b Board) Len() int {
	return len(b.tasks)
}

// Filter returns the selected filter mode.
func (b Board) Filter() domain.FilterMode {
	return b.filter
}

// Edit returns the current edit session.
func (b Board) Edit() EditSession {
	return b.edit
}

// Visible returns the tasks shown under the selected filter mode.
func (b Board) Visible() []domain.Task {
	return FilterTasks(b.tasks, b.filter)
}

// Stats returns counts computed from the current tasks.
func (b Board) Stats() Stats {
	return ComputeStats(b.tasks)
}

// SetFilter selects a filter mode.
func (b Board) SetFilter(mode domain.FilterMode) (Board, Result) {
	if !mode.Valid() {
		return b, Result{Err: domain.ErrInvalidFilter}
	}
	if mode == b.filter {
		return b, Result{}
	}
	b.filter = mode
	return b, Result{Changed: true}
}

func (b Board) indexOf(id string) (int, bool) {
	idx := slices.IndexFunc(b.tasks, func(t domain.Task) bool {
		return t.ID == id
	})
	return idx, idx >= 0
}
