package app

import (
	"fmt"

	"github.com/hylla/taskboard/internal/domain"
)

// Event is one user intent applied to a board.
type Event interface {
	event()
}

// AddTask appends a task built from the input fields.
type AddTask struct {
	Title    string
	Category domain.Category
}

// RemoveTask deletes a task.
type RemoveTask struct{ ID string }

// ToggleTask flips a task's completed flag.
type ToggleTask struct{ ID string }

// StartEdit opens the inline editor on a task.
type StartEdit struct{ ID string }

// SetEditDraft tracks the inline editor text.
type SetEditDraft struct{ Text string }

// SaveEdit commits the inline editor.
type SaveEdit struct{}

// CancelEdit discards the inline editor.
type CancelEdit struct{}

// SetFilter selects the visible subset.
type SetFilter struct{ Mode domain.FilterMode }

func (AddTask) event()      {}
func (RemoveTask) event()   {}
func (ToggleTask) event()   {}
func (StartEdit) event()    {}
func (SetEditDraft) event() {}
func (SaveEdit) event()     {}
func (CancelEdit) event()   {}
func (SetFilter) event()    {}

// Apply runs one event against the board and returns the next state.
func (b Board) Apply(ev Event) (Board, Result) {
	switch ev := ev.(type) {
	case AddTask:
		return b.Add(ev.Title, ev.Category)
	case RemoveTask:
		return b.Remove(ev.ID)
	case ToggleTask:
		return b.ToggleCompleted(ev.ID)
	case StartEdit:
		return b.StartEdit(ev.ID)
	case SetEditDraft:
		return b.SetEditDraft(ev.Text)
	case SaveEdit:
		return b.SaveEdit()
	case CancelEdit:
		return b.CancelEdit()
	case SetFilter:
		return b.SetFilter(ev.Mode)
	default:
		return b, Result{Err: fmt.Errorf("%w: %T", ErrUnknownEvent, ev)}
	}
}

// EventName returns a short label for logging.
func EventName(ev Event) string {
	switch ev.(type) {
	case AddTask:
		return "add_task"
	case RemoveTask:
		return "remove_task"
	case ToggleTask:
		return "toggle_task"
	case StartEdit:
		return "start_edit"
	case SetEditDraft:
		return "set_edit_draft"
	case SaveEdit:
		return "save_edit"
	case CancelEdit:
		return "cancel_edit"
	case SetFilter:
		return "set_filter"
	default:
		return "unknown"
	}
}
