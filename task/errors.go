package task

import "fmt"

var (
	// ErrNotFound is returned when no task with the given id exists in the
	// registry.
	ErrNotFound = fmt.Errorf("task not found")

	// ErrNotCancelable is returned when cancellation is requested for a task
	// already in a terminal state (completed, failed or canceled).
	ErrNotCancelable = fmt.Errorf("task not cancelable")

	// ErrTerminal is returned when a state transition is requested for a task
	// that has already settled.
	ErrTerminal = fmt.Errorf("task already terminal")
)
