// Package journal records temporary overrides of shared state so they can
// be undone after a test, in reverse order, whether the test passed or not.
package journal

import (
	"errors"
	"fmt"
)

// DefaultCapacity is the number of overrides a single test may record when
// no capacity is configured.
const DefaultCapacity = 5

// ErrCapacityExceeded is matched by every CapacityError.
var ErrCapacityExceeded = errors.New("too many overrides recorded")

// CapacityError is returned when an override is recorded on a full journal.
type CapacityError struct {
	// Capacity is the journal's fixed size.
	Capacity int

	// Location is the storage location that could not be recorded.
	Location any
}

// Error implements the error interface.
func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s (capacity %d)", ErrCapacityExceeded.Error(), e.Capacity)
}

// Unwrap lets errors.Is match ErrCapacityExceeded.
func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

// IsCapacityError reports whether err is, or wraps, a CapacityError.
func IsCapacityError(err error) bool {
	var ce *CapacityError
	return errors.As(err, &ce)
}

// entry pairs a location with the action that puts its previous value back.
type entry struct {
	location any
	undo     func()
}

// Journal is a bounded LIFO of undo actions.
//
// The zero value is not usable; create one with New. A Journal is owned by
// a single runner and is not safe for concurrent use.
type Journal struct {
	entries  []entry
	capacity int
}

// New creates an empty journal. A capacity <= 0 selects DefaultCapacity.
func New(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Journal{
		entries:  make([]entry, 0, capacity),
		capacity: capacity,
	}
}

// Init empties the journal without restoring anything.
func (j *Journal) Init() {
	clear(j.entries)
	j.entries = j.entries[:0]
}

// Len returns the number of recorded entries.
func (j *Journal) Len() int {
	return len(j.entries)
}

// Cap returns the journal's fixed capacity.
func (j *Journal) Cap() int {
	return j.capacity
}

// Push appends an undo action for location. On a full journal nothing is
// appended and a *CapacityError is returned.
func (j *Journal) Push(location any, undo func()) error {
	if len(j.entries) >= j.capacity {
		return &CapacityError{Capacity: j.capacity, Location: location}
	}
	j.entries = append(j.entries, entry{location: location, undo: undo})
	return nil
}

// RestoreAll runs the recorded undo actions last-first until the journal is
// empty. Each entry is popped before its undo runs, so if an undo panics the
// journal is left holding only the entries that have not been attempted yet
// and RestoreAll can be called again to continue.
func (j *Journal) RestoreAll() {
	for len(j.entries) > 0 {
		last := len(j.entries) - 1
		e := j.entries[last]
		j.entries[last] = entry{}
		j.entries = j.entries[:last]
		if e.undo != nil {
			e.undo()
		}
	}
}

// Record captures the current value of *location so RestoreAll writes it
// back. The caller is free to modify *location afterwards.
func Record[T any](j *Journal, location *T) error {
	previous := *location
	return j.Push(location, func() { *location = previous })
}

// Set records *location and then assigns value to it. If the journal is
// full the location is left untouched.
func Set[T any](j *Journal, location *T, value T) error {
	if err := Record(j, location); err != nil {
		return err
	}
	*location = value
	return nil
}
