package app

import (
	"strconv"
	"strings"
)

// IDGenerator returns unique identifiers for new tasks.
type IDGenerator func() string

// maxIDAttempts bounds regeneration when an id collides with a stored task.
const maxIDAttempts = 8

// newCounterIDGenerator returns a monotonic counter-backed generator.
func newCounterIDGenerator() IDGenerator {
	var n int
	return func() string {
		n++
		return strconv.Itoa(n)
	}
}

// nextID draws ids until one is non-empty and unused by the board.
func (b Board) nextID() (string, error) {
	for range maxIDAttempts {
		id := strings.TrimSpace(b.idGen())
		if id == "" {
			continue
		}
		if _, ok := b.indexOf(id); ok {
			continue
		}
		return id, nil
	}
	return "", ErrIDExhausted
}
