package tui

import (
	"github.com/atotto/clipboard"

	"github.com/hylla/taskboard/internal/domain"
)

// Option configures a Model.
type Option func(*Model)

// ClipboardWriter copies text to the system clipboard.
type ClipboardWriter func(string) error

// Logger receives board event logs. *log.Logger from charmbracelet/log
// satisfies it.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
}

// WithLogger routes board events to logger.
func WithLogger(logger Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDefaultCategory preselects the category for new tasks.
func WithDefaultCategory(category domain.Category) Option {
	return func(m *Model) {
		if category.Valid() {
			m.category = category
		}
	}
}

// WithShowStats toggles the stats row.
func WithShowStats(show bool) Option {
	return func(m *Model) {
		m.showStats = show
	}
}

// WithKeyConfig applies key overrides.
func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyConfig(cfg)
	}
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(write ClipboardWriter) Option {
	return func(m *Model) {
		if write != nil {
			m.copyText = write
		}
	}
}

// defaultClipboard writes through the OS clipboard.
func defaultClipboard(text string) error {
	return clipboard.WriteAll(text)
}
