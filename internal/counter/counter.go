// Package counter implements bounded ±1 mutation of named counter fields.
// Every count field in the system (post likes/views/comments, comment likes,
// tag and category post counts) goes through this package so the non-negative
// invariant holds everywhere.
package counter

import "fmt"

// Direction selects between incrementing and decrementing a counter.
type Direction int

const (
	Increment Direction = iota
	Decrement
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Increment:
		return "increment"
	case Decrement:
		return "decrement"
	}
	return "unknown"
}

// Mutable is implemented by entities that expose named counter fields.
type Mutable interface {
	// Counter returns the current value of the named field, false if the
	// entity has no such counter.
	Counter(field string) (int64, bool)
	// SetCounter sets the named field, false if the entity has no such
	// counter.
	SetCounter(field string, v int64) bool
}

// Apply returns v adjusted by one in the given direction. Decrements clamp
// at zero, never going negative.
func Apply(v int64, d Direction) int64 {
	switch d {
	case Increment:
		return v + 1
	case Decrement:
		if v <= 0 {
			return 0
		}
		return v - 1
	}
	return v
}

// Adjust applies a single increment or decrement to the named counter field
// of m and returns the new value. The caller is responsible for persisting m.
func Adjust(m Mutable, field string, d Direction) (int64, error) {
	v, ok := m.Counter(field)
	if !ok {
		return 0, fmt.Errorf("unknown counter field: %s", field)
	}
	next := Apply(v, d)
	if !m.SetCounter(field, next) {
		return 0, fmt.Errorf("unknown counter field: %s", field)
	}
	return next, nil
}
