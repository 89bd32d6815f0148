package domain

import (
	"slices"
	"strings"
)

// FilterMode restricts which tasks are visible on the board.
type FilterMode string

const (
	FilterAll       FilterMode = "All"
	FilterActive    FilterMode = "Active"
	FilterCompleted FilterMode = "Completed"
)

var validFilters = []FilterMode{FilterAll, FilterActive, FilterCompleted}

// FilterModes returns the filter modes in tab order.
func FilterModes() []FilterMode {
	return slices.Clone(validFilters)
}

func (f FilterMode) Valid() bool {
	return slices.Contains(validFilters, f)
}

// Next returns the following filter mode, wrapping to All.
func (f FilterMode) Next() FilterMode {
	idx := slices.Index(validFilters, f)
	if idx < 0 {
		return FilterAll
	}
	return validFilters[(idx+1)%len(validFilters)]
}

// Matches reports whether a task is visible under the filter mode.
func (f FilterMode) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// ParseFilterMode matches a filter name case-insensitively.
func ParseFilterMode(raw string) (FilterMode, error) {
	raw = strings.TrimSpace(raw)
	for _, f := range validFilters {
		if strings.EqualFold(string(f), raw) {
			return f, nil
		}
	}
	return "", ErrInvalidFilter
}
