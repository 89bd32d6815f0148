package tui

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hylla/taskboard/internal/domain"
)

// board layout line counts used by rendering and mouse hit testing.
const (
	headerLines = 3
	statsLines  = 2
	formLines   = 3
	footerLines = 3
)

var (
	accentColor = lipgloss.Color("62")
	mutedColor  = lipgloss.Color("241")
	dimColor    = lipgloss.Color("239")
	doneColor   = lipgloss.Color("34")
	activeColor = lipgloss.Color("208")
	totalColor  = lipgloss.Color("33")
)

// categoryColors mirrors the badge palette: Work blue, Personal purple, Shopping orange.
var categoryColors = map[domain.Category]color.Color{
	domain.CategoryWork:     lipgloss.Color("33"),
	domain.CategoryPersonal: lipgloss.Color("135"),
	domain.CategoryShopping: lipgloss.Color("208"),
}

// View renders the board or the help overlay.
func (m Model) View() tea.View {
	var content string
	switch {
	case !m.ready:
		content = "loading..."
	case m.mode == modeHelp:
		content = m.renderHelp()
	default:
		content = m.renderBoard()
	}
	v := tea.NewView(content)
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	return v
}

// listTop returns the screen row of the first task line.
func (m Model) listTop() int {
	top := headerLines + formLines
	if m.showStats {
		top += statsLines
	}
	return top
}

// listHeight returns how many task rows fit on screen.
func (m Model) listHeight() int {
	if m.height <= 0 {
		return len(m.board.Visible())
	}
	return max(1, m.height-m.listTop()-footerLines)
}

// renderBoard renders the full board screen.
func (m Model) renderBoard() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)

	lines := []string{
		titleStyle.Render("Task Manager"),
		mutedStyle.Render("Organize your daily tasks efficiently"),
		"",
	}
	if m.showStats {
		lines = append(lines, m.renderStats(), "")
	}
	lines = append(lines, m.renderAddRow(), m.renderFilterTabs(), "")

	list := m.renderTaskList()
	if m.height > 0 {
		list = fitLines(list, m.listHeight())
	}
	lines = append(lines, list)

	statusStyle := lipgloss.NewStyle().Foreground(dimColor)
	lines = append(lines, "", statusStyle.Render(m.status), m.renderHelpLine())
	return strings.Join(lines, "\n")
}

// renderStats renders the total/active/completed counters.
func (m Model) renderStats() string {
	stats := m.board.Stats()
	label := lipgloss.NewStyle().Foreground(mutedColor)
	count := func(c color.Color, n int) string {
		return lipgloss.NewStyle().Bold(true).Foreground(c).Render(fmt.Sprintf("%d", n))
	}
	return strings.Join([]string{
		count(totalColor, stats.Total) + " " + label.Render("Total Tasks"),
		count(activeColor, stats.Active) + " " + label.Render("Active"),
		count(doneColor, stats.Completed) + " " + label.Render("Completed"),
	}, "   ")
}

// renderAddRow renders the title input and category selector.
func (m Model) renderAddRow() string {
	prefix := lipgloss.NewStyle().Foreground(mutedColor).Render("Add:")
	if m.mode == modeAddTask {
		prefix = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Add:")
	}
	in := m.titleInput
	in.SetWidth(max(20, min(60, m.width-32)))
	return prefix + " " + in.View() + "  " + categoryBadge(m.category)
}

// renderFilterTabs renders one tab per filter mode.
func (m Model) renderFilterTabs() string {
	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(accentColor).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(mutedColor).Padding(0, 1)
	tabs := make([]string, 0, len(domain.FilterModes()))
	for _, mode := range domain.FilterModes() {
		if mode == m.board.Filter() {
			tabs = append(tabs, selected.Render(string(mode)))
			continue
		}
		tabs = append(tabs, idle.Render(string(mode)))
	}
	return lipgloss.NewStyle().Foreground(mutedColor).Render("Filter:") + " " + strings.Join(tabs, " ")
}

// renderTaskList renders the visible window of tasks or the empty state.
func (m Model) renderTaskList() string {
	visible := m.board.Visible()
	if len(visible) == 0 {
		muted := lipgloss.NewStyle().Foreground(mutedColor)
		return strings.Join([]string{
			muted.Render("No tasks found"),
			muted.Render("Add a task to get started!"),
		}, "\n")
	}
	start, end := windowBounds(len(visible), m.selected, m.listHeight())
	rows := make([]string, 0, end-start)
	for idx := start; idx < end; idx++ {
		rows = append(rows, m.renderTaskRow(visible[idx], idx == m.selected))
	}
	return strings.Join(rows, "\n")
}

// renderTaskRow renders one task, or the inline editor for the edited task.
func (m Model) renderTaskRow(task domain.Task, selected bool) string {
	cursor := "  "
	if selected && m.mode != modeAddTask {
		cursor = lipgloss.NewStyle().Foreground(accentColor).Render("> ")
	}
	check := "[ ]"
	if task.Completed {
		check = lipgloss.NewStyle().Foreground(doneColor).Render("[x]")
	}

	if m.board.Edit().Editing(task.ID) {
		in := m.editInput
		in.SetWidth(max(20, min(60, m.width-30)))
		hint := lipgloss.NewStyle().Foreground(mutedColor).Render("enter save • esc cancel")
		return cursor + check + " " + in.View() + "  " + hint
	}

	titleWidth := 60
	if m.width > 0 {
		titleWidth = max(8, m.width-24)
	}
	titleStyle := lipgloss.NewStyle()
	if task.Completed {
		titleStyle = titleStyle.Strikethrough(true).Foreground(mutedColor)
	}
	return cursor + check + " " + titleStyle.Render(truncate(task.Title, titleWidth)) + "  " + categoryBadge(task.Category)
}

// renderHelpLine renders the short help for the focused control.
func (m Model) renderHelpLine() string {
	hb := m.help
	hb.ShowAll = false
	style := lipgloss.NewStyle().Foreground(mutedColor)
	switch m.mode {
	case modeAddTask:
		return style.Render(hb.View(formKeys{keys: m.keys, add: true}))
	case modeEditTask:
		return style.Render(hb.View(formKeys{keys: m.keys}))
	default:
		return style.Render(hb.View(m.keys))
	}
}

// renderHelp renders the markdown help overlay.
func (m Model) renderHelp() string {
	width := 76
	if m.width > 0 {
		width = min(width, m.width-4)
	}
	body := m.md.render(helpMarkdown(m.keys), width)
	hb := m.help
	hb.ShowAll = true
	footer := lipgloss.NewStyle().Foreground(mutedColor).Render("esc/? close • q quit")
	content := body + "\n\n" + hb.View(m.keys) + "\n\n" + footer
	if m.height > 0 {
		content = fitLines(content, m.height)
	}
	return content
}

// categoryBadge renders a category label in its palette color.
func categoryBadge(c domain.Category) string {
	fg, ok := categoryColors[c]
	if !ok {
		fg = mutedColor
	}
	return lipgloss.NewStyle().Foreground(fg).Bold(true).Render(string(c))
}

// fitLines pads or trims content to exactly maxLines lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		lines = append(lines, make([]string, maxLines-len(lines))...)
	}
	return strings.Join(lines, "\n")
}
