package analysis

import "errors"

// Status is the analysis lifecycle state. The progression is strictly
// forward-only: pending → processing → {completed | failed}. Terminal states
// admit no further transition; a failed analysis is never retried in place.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ErrInvalidTransition is returned when an update would move an analysis
// backwards or out of a terminal state.
var ErrInvalidTransition = errors.New("invalid analysis status transition")

// CanTransition reports whether moving from s to next is legal.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
