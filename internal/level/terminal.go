package level

import (
	"errors"
	"fmt"
)

// ErrTerminalSet is returned when a run's terminal value is written twice.
var ErrTerminalSet = errors.New("level: terminal outcome already recorded")

// Terminal is a single-assignment cell. The zero value is empty.
type Terminal[T any] struct {
	value T
	set   bool
}

// Set stores v if the cell is empty.
func (t *Terminal[T]) Set(v T) error {
	if t.set {
		return fmt.Errorf("%w: have %v, got %v", ErrTerminalSet, t.value, v)
	}
	t.value = v
	t.set = true
	return nil
}

// Get returns the stored value and whether one was stored.
func (t *Terminal[T]) Get() (T, bool) {
	return t.value, t.set
}

// IsSet reports whether a value was stored.
func (t *Terminal[T]) IsSet() bool {
	return t.set
}
