package tui

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// KeyConfig holds user overrides for the rebindable board keys.
type KeyConfig struct {
	AddTask    string
	EditTask   string
	ToggleTask string
	DeleteTask string
	NextFilter string
	CopyTitle  string
}

// keyMap represents the board key bindings.
type keyMap struct {
	quit            key.Binding
	interrupt       key.Binding
	toggleHelp      key.Binding
	moveUp          key.Binding
	moveDown        key.Binding
	addTask         key.Binding
	editTask        key.Binding
	toggleTask      key.Binding
	deleteTask      key.Binding
	nextFilter      key.Binding
	filterAll       key.Binding
	filterActive    key.Binding
	filterCompleted key.Binding
	copyTitle       key.Binding
	nextCategory    key.Binding
	prevCategory    key.Binding
	submit          key.Binding
	cancel          key.Binding
}

// newKeyMap constructs the default key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		interrupt:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit from anywhere")),
		toggleHelp:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveUp:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "task up")),
		moveDown:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "task down")),
		addTask:         key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new task")),
		editTask:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
		toggleTask:      key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space/x", "toggle done")),
		deleteTask:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		nextFilter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		filterAll:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		filterActive:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		filterCompleted: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		copyTitle:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy title")),
		nextCategory:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next category")),
		prevCategory:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev category")),
		submit:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		cancel:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// applyConfig rebinds the configurable keys, keeping defaults for blanks.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.addTask, cfg.AddTask, "n", "new task", "a")
	configureBinding(&k.editTask, cfg.EditTask, "e", "edit title")
	configureBinding(&k.toggleTask, cfg.ToggleTask, "space", "toggle done", "x")
	configureBinding(&k.deleteTask, cfg.DeleteTask, "d", "delete task")
	configureBinding(&k.nextFilter, cfg.NextFilter, "f", "next filter")
	configureBinding(&k.copyTitle, cfg.CopyTitle, "y", "copy title")
}

// configureBinding replaces one binding's keys and help text. Aliases stay
// bound alongside the configured key.
func configureBinding(b *key.Binding, raw, fallback, desc string, aliases ...string) {
	keys, help := parseBindingKeys(raw, fallback)
	for _, alias := range aliases {
		if !slices.Contains(keys, alias) {
			keys = append(keys, alias)
		}
	}
	b.SetKeys(keys...)
	b.SetHelp(help, desc)
}

// parseBindingKeys turns a configured key into matcher keys and a help label.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	value := raw
	if strings.TrimSpace(value) == "" && value != " " {
		value = fallback
	}
	if value == " " || strings.EqualFold(strings.TrimSpace(value), "space") {
		return []string{" ", "space"}, "space"
	}
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) == 1 {
		r, _ := utf8.DecodeRuneInString(value)
		if unicode.IsUpper(r) {
			return []string{value, "shift+" + string(unicode.ToLower(r))}, value
		}
		return []string{value}, value
	}
	return []string{strings.ToLower(value)}, value
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addTask, k.editTask, k.toggleTask, k.deleteTask, k.nextFilter, k.toggleHelp, k.quit,
	}
}

// FullHelp returns every binding grouped by concern.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addTask, k.editTask, k.toggleTask, k.deleteTask, k.copyTitle},
		{k.moveUp, k.moveDown, k.nextFilter, k.filterAll, k.filterActive, k.filterCompleted},
		{k.nextCategory, k.prevCategory, k.submit, k.cancel, k.toggleHelp, k.quit},
	}
}

// formKeys is the footer key map while an input field has focus.
type formKeys struct {
	keys keyMap
	add  bool
}

// ShortHelp returns the bindings for the focused form.
func (f formKeys) ShortHelp() []key.Binding {
	if f.add {
		return []key.Binding{f.keys.submit, f.keys.nextCategory, f.keys.prevCategory, f.keys.cancel}
	}
	return []key.Binding{f.keys.submit, f.keys.cancel}
}

// FullHelp returns the form bindings as one group.
func (f formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{f.ShortHelp()}
}
