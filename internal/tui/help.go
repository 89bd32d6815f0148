package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"github.com/charmbracelet/glamour"
)

// markdownRenderer caches a glamour renderer per wrap width.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// render converts markdown into terminal text, falling back to the raw input.
func (r *markdownRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}
	wrapWidth := max(width, 24)
	if r.renderer == nil || r.width != wrapWidth {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
	}
	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}

// helpMarkdown documents the active key map.
func helpMarkdown(k keyMap) string {
	var b strings.Builder
	b.WriteString("# Task Manager Help\n\n")
	b.WriteString("Tasks live in memory for this session only.\n\n")
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Tasks", []key.Binding{k.addTask, k.editTask, k.toggleTask, k.deleteTask, k.copyTitle}},
		{"Navigation", []key.Binding{k.moveUp, k.moveDown, k.nextFilter, k.filterAll, k.filterActive, k.filterCompleted}},
		{"Forms", []key.Binding{k.submit, k.cancel, k.nextCategory, k.prevCategory}},
		{"General", []key.Binding{k.toggleHelp, k.quit}},
	}
	for _, section := range sections {
		fmt.Fprintf(&b, "## %s\n\n", section.title)
		for _, binding := range section.bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "- `%s` %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString("Clicking another task while editing starts editing that task; the unsaved text is dropped.\n")
	return b.String()
}
