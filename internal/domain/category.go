package domain

import (
	"slices"
	"strings"
)

// Category groups tasks into a fixed set chosen at creation time.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Shopping"
)

var validCategories = []Category{CategoryWork, CategoryPersonal, CategoryShopping}

// Categories returns the selectable categories in display order.
func Categories() []Category {
	return slices.Clone(validCategories)
}

func (c Category) Valid() bool {
	return slices.Contains(validCategories, c)
}

// Next returns the category after c, wrapping around.
func (c Category) Next() Category {
	return c.step(1)
}

// Prev returns the category before c, wrapping around.
func (c Category) Prev() Category {
	return c.step(-1)
}

func (c Category) step(delta int) Category {
	idx := slices.Index(validCategories, c)
	if idx < 0 {
		return validCategories[0]
	}
	n := len(validCategories)
	return validCategories[((idx+delta)%n+n)%n]
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(raw string) (Category, error) {
	raw = strings.TrimSpace(raw)
	for _, c := range validCategories {
		if strings.EqualFold(string(c), raw) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}
