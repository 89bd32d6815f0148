package tui

import (
	"fmt"
	"io"
	"slices"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	charmLog "github.com/charmbracelet/log"

	"github.com/hylla/taskboard/internal/app"
	"github.com/hylla/taskboard/internal/domain"
)

// inputMode represents which control owns the keyboard.
type inputMode int

// modeNone and related constants define the focus states.
const (
	modeNone inputMode = iota
	modeAddTask
	modeEditTask
	modeHelp
)

// Model is the bubbletea model for the task board.
type Model struct {
	board  app.Board
	logger Logger

	ready  bool
	width  int
	height int
	status string

	help help.Model
	keys keyMap
	md   *markdownRenderer

	mode     inputMode
	selected int

	titleInput textinput.Model
	editInput  textinput.Model
	category   domain.Category

	showStats bool
	copyText  ClipboardWriter
}

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	title string
	err   error
}

// NewModel constructs a model over an initial board.
func NewModel(board app.Board, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		board:      board,
		logger:     charmLog.New(io.Discard),
		status:     "ready",
		help:       h,
		keys:       newKeyMap(),
		md:         &markdownRenderer{},
		titleInput: newFormInput("", "Add a new task...", ""),
		editInput:  newFormInput("", "", ""),
		category:   domain.CategoryWork,
		showStats:  true,
		copyText:   defaultClipboard,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// newFormInput constructs a single-line text input.
func newFormInput(prompt, placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	// Zero disables the input length limit.
	in.CharLimit = 0
	if value != "" {
		in.SetValue(value)
	}
	return in
}

// Board returns the current board state.
func (m Model) Board() app.Board {
	return m.board
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update routes one message to the matching handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(max(0, m.width-2))
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
			m.logger.Warn("clipboard write failed", "err", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("copied %q", truncate(msg.title, 40))
		return m, nil

	case tea.KeyPressMsg:
		// Forms would otherwise swallow ctrl+c as text input.
		if key.Matches(msg, m.keys.interrupt) {
			return m, tea.Quit
		}
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		return m.handleNormalModeKey(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	default:
		return m.updateFocusedInput(msg)
	}
}

// apply runs one board event and logs the outcome.
func (m *Model) apply(ev app.Event) app.Result {
	next, res := m.board.Apply(ev)
	m.board = next
	name := app.EventName(ev)
	switch {
	case res.Err != nil:
		m.logger.Debug("board event ignored", "event", name, "task_id", res.TaskID, "err", res.Err)
	case res.Changed:
		m.logger.Debug("board event applied", "event", name, "task_id", res.TaskID, "tasks", m.board.Len())
	}
	m.clampSelection()
	return res
}

// handleNormalModeKey handles keys while the task list has focus.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.mode = modeHelp
		m.status = "help"
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		if m.selected < len(m.board.Visible())-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.moveUp):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.addTask):
		m.mode = modeAddTask
		m.status = "new task"
		return m, m.titleInput.Focus()
	case key.Matches(msg, m.keys.editTask):
		task, ok := m.selectedTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		return m.startEdit(task.ID)
	case key.Matches(msg, m.keys.toggleTask):
		task, ok := m.selectedTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		m.apply(app.ToggleTask{ID: task.ID})
		if updated, ok := m.board.Task(task.ID); ok && updated.Completed {
			m.status = fmt.Sprintf("completed %q", truncate(task.Title, 40))
		} else {
			m.status = fmt.Sprintf("reopened %q", truncate(task.Title, 40))
		}
		return m, nil
	case key.Matches(msg, m.keys.deleteTask):
		task, ok := m.selectedTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		m.apply(app.RemoveTask{ID: task.ID})
		m.status = fmt.Sprintf("deleted %q", truncate(task.Title, 40))
		return m, nil
	case key.Matches(msg, m.keys.nextFilter):
		return m.setFilter(m.board.Filter().Next())
	case key.Matches(msg, m.keys.filterAll):
		return m.setFilter(domain.FilterAll)
	case key.Matches(msg, m.keys.filterActive):
		return m.setFilter(domain.FilterActive)
	case key.Matches(msg, m.keys.filterCompleted):
		return m.setFilter(domain.FilterCompleted)
	case key.Matches(msg, m.keys.copyTitle):
		task, ok := m.selectedTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.copyTitleCmd(task)
	default:
		return m, nil
	}
}

// handleInputModeKey handles keys while a form or overlay has focus.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeHelp:
		switch {
		case key.Matches(msg, m.keys.cancel), key.Matches(msg, m.keys.toggleHelp):
			m.mode = modeNone
			m.status = "ready"
			return m, nil
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		default:
			return m, nil
		}

	case modeAddTask:
		switch {
		case key.Matches(msg, m.keys.cancel):
			m.mode = modeNone
			m.titleInput.Blur()
			m.status = "ready"
			return m, nil
		case key.Matches(msg, m.keys.submit):
			return m.submitAddTask()
		case key.Matches(msg, m.keys.nextCategory):
			m.category = m.category.Next()
			return m, nil
		case key.Matches(msg, m.keys.prevCategory):
			m.category = m.category.Prev()
			return m, nil
		}
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd

	case modeEditTask:
		switch {
		case key.Matches(msg, m.keys.cancel):
			m.apply(app.CancelEdit{})
			m.closeEditor()
			m.status = "edit cancelled"
			return m, nil
		case key.Matches(msg, m.keys.submit):
			return m.submitEdit()
		}
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		m.apply(app.SetEditDraft{Text: m.editInput.Value()})
		return m, cmd
	}
	return m, nil
}

// updateFocusedInput forwards non-key messages such as cursor blinks.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeAddTask:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case modeEditTask:
		m.editInput, cmd = m.editInput.Update(msg)
	}
	return m, cmd
}

// submitAddTask adds a task from the title input and selected category.
func (m Model) submitAddTask() (tea.Model, tea.Cmd) {
	res := m.apply(app.AddTask{Title: m.titleInput.Value(), Category: m.category})
	if res.Err != nil {
		m.status = "title required"
		return m, nil
	}
	if res.ClearInput {
		m.titleInput.Reset()
	}
	m.focusTask(res.TaskID)
	if task, ok := m.board.Task(res.TaskID); ok {
		m.status = fmt.Sprintf("added %q", truncate(task.Title, 40))
	}
	return m, nil
}

// startEdit opens the inline editor on a task, dropping any open draft.
func (m Model) startEdit(id string) (tea.Model, tea.Cmd) {
	if m.board.Edit().Active() && !m.board.Edit().Editing(id) {
		m.logger.Debug("edit target switched", "from", m.board.Edit().TaskID, "to", id)
	}
	res := m.apply(app.StartEdit{ID: id})
	if res.Err != nil {
		m.status = "task not found"
		return m, nil
	}
	m.mode = modeEditTask
	m.editInput.SetValue(m.board.Edit().Draft)
	m.editInput.CursorEnd()
	m.focusTask(id)
	m.status = "editing"
	return m, m.editInput.Focus()
}

// submitEdit saves the editor draft and closes the editor.
func (m Model) submitEdit() (tea.Model, tea.Cmd) {
	m.apply(app.SetEditDraft{Text: m.editInput.Value()})
	res := m.apply(app.SaveEdit{})
	m.closeEditor()
	if res.Err != nil {
		m.status = "title required; edit discarded"
		return m, nil
	}
	m.status = "saved"
	return m, nil
}

// closeEditor returns focus to the task list.
func (m *Model) closeEditor() {
	m.mode = modeNone
	m.editInput.Blur()
	m.editInput.Reset()
}

// setFilter selects a filter mode and keeps the cursor in range.
func (m Model) setFilter(mode domain.FilterMode) (tea.Model, tea.Cmd) {
	m.apply(app.SetFilter{Mode: mode})
	m.status = "filter: " + string(m.board.Filter())
	return m, nil
}

// copyTitleCmd copies a task title off the update loop.
func (m Model) copyTitleCmd(task domain.Task) tea.Cmd {
	write := m.copyText
	title := task.Title
	return func() tea.Msg {
		return copiedMsg{title: title, err: write(title)}
	}
}

// handleMouseClick selects the clicked row; while editing it moves the
// editor to that row.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeHelp || m.mode == modeAddTask {
		return m, nil
	}
	visible := m.board.Visible()
	start, _ := windowBounds(len(visible), m.selected, m.listHeight())
	row := msg.Y - m.listTop()
	if row < 0 {
		return m, nil
	}
	idx := start + row
	if idx >= len(visible) {
		return m, nil
	}
	task := visible[idx]
	if m.mode == modeEditTask {
		if m.board.Edit().Editing(task.ID) {
			return m, nil
		}
		return m.startEdit(task.ID)
	}
	m.selected = idx
	return m, nil
}

// selectedTask returns the task under the cursor.
func (m Model) selectedTask() (domain.Task, bool) {
	visible := m.board.Visible()
	if m.selected < 0 || m.selected >= len(visible) {
		return domain.Task{}, false
	}
	return visible[m.selected], true
}

// focusTask moves the cursor to a task when it is visible.
func (m *Model) focusTask(id string) {
	idx := slices.IndexFunc(m.board.Visible(), func(t domain.Task) bool {
		return t.ID == id
	})
	if idx >= 0 {
		m.selected = idx
	}
}

// clampSelection keeps the cursor inside the visible list.
func (m *Model) clampSelection() {
	m.selected = clamp(m.selected, 0, len(m.board.Visible())-1)
}

// windowBounds returns an inclusive-exclusive list window that keeps selected visible.
func windowBounds(total, selected, windowSize int) (int, int) {
	if total <= 0 || windowSize <= 0 {
		return 0, 0
	}
	if total <= windowSize {
		return 0, total
	}
	selected = clamp(selected, 0, total-1)
	start := max(0, selected-windowSize/2)
	end := start + windowSize
	if end > total {
		end = total
		start = max(0, end-windowSize)
	}
	return start, end
}

// clamp bounds v to [minV, maxV], preferring minV when the range is empty.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	return min(max(v, minV), maxV)
}

// truncate shortens s to at most n runes with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	if n == 1 {
		return string(rs[:1])
	}
	return string(rs[:n-1]) + "…"
}
