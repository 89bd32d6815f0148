package app

// EditSession holds the inline rename in progress. The zero value is idle.
type EditSession struct {
	TaskID string
	Draft  string
}

// Active reports whether a task is being edited.
func (s EditSession) Active() bool {
	return s.TaskID != ""
}

// Editing reports whether the session targets the given task.
func (s EditSession) Editing(id string) bool {
	return s.Active() && s.TaskID == id
}

// StartEdit opens an edit session on one task with its title as the draft.
// An open session on another task is dropped without saving.
func (b Board) StartEdit(id string) (Board, Result) {
	task, ok := b.Task(id)
	if !ok {
		return b, Result{TaskID: id, Err: ErrNotFound}
	}
	b.edit = EditSession{TaskID: task.ID, Draft: task.Title}
	return b, Result{Changed: true, TaskID: id}
}

// SetEditDraft replaces the draft text of the open session.
func (b Board) SetEditDraft(text string) (Board, Result) {
	if !b.edit.Active() {
		return b, Result{}
	}
	if b.edit.Draft == text {
		return b, Result{TaskID: b.edit.TaskID}
	}
	b.edit.Draft = text
	return b, Result{Changed: true, TaskID: b.edit.TaskID}
}

// SaveEdit writes the draft to the task and closes the session, whether or
// not the draft was accepted.
func (b Board) SaveEdit() (Board, Result) {
	if !b.edit.Active() {
		return b, Result{}
	}
	session := b.edit
	next, res := b.UpdateTitle(session.TaskID, session.Draft)
	next.edit = EditSession{}
	res.Changed = true
	return next, res
}

// CancelEdit closes the session without touching the task.
func (b Board) CancelEdit() (Board, Result) {
	if !b.edit.Active() {
		return b, Result{}
	}
	id := b.edit.TaskID
	b.edit = EditSession{}
	return b, Result{Changed: true, TaskID: id}
}
