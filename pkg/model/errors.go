package model

import (
	"errors"
	"fmt"
)

// ErrNoSolution is matched by every search failure, whatever the strategy
var ErrNoSolution = errors.New("no timetable found")

// NoSolutionError reports a failed generation together with the statistics gathered up to the failure.
// A failure of the backtracking strategy does not prove that no timetable exists.
type NoSolutionError struct {
	Statistics     Statistics
	BudgetExceeded bool
	Cause          error

	// Warnings lists the mapping entries skipped before the search
	Warnings []string
}

func (err *NoSolutionError) Error() string {
	var reason string
	switch {
	case err.BudgetExceeded:
		reason = fmt.Sprintf("attempt budget exhausted after %d attempts", err.Statistics.Attempts)
	case err.Cause != nil:
		reason = err.Cause.Error()
	default:
		reason = fmt.Sprintf("search space exhausted after %d attempts and %d backtracks", err.Statistics.Attempts, err.Statistics.Backtracks)
	}
	return fmt.Sprintf("%v: %v", ErrNoSolution, reason)
}

func (err *NoSolutionError) Is(target error) bool {
	return target == ErrNoSolution
}

func (err *NoSolutionError) Unwrap() error {
	return err.Cause
}

// AuditError is returned when a produced timetable fails the post-generation conflict audit
type AuditError struct {
	Report   ConflictReport
	Warnings []string
}

func (err *AuditError) Error() string {
	return fmt.Sprintf("timetable audit found %d conflicts", err.Report.Count())
}

type unassignableError struct {
	slot TimeSlot
}

func (err unassignableError) Error() string {
	return fmt.Sprintf("not all classes at %v can be assigned a room", err.slot)
}
