package model

import (
	"slices"

	"github.com/limaJavier/timetabling/pkg/sat"

	"go.uber.org/zap"
)

// isolatedRoomTimetabler postpones rooms: the SAT instance only places requests in slots and rooms
// are matched per slot afterwards. A slot whose classes cannot all be matched yields no timetable.
type isolatedRoomTimetabler struct {
	solver sat.SATSolver
	logger *zap.Logger
}

func NewIsolatedRoomTimetabler(solver sat.SATSolver, logger *zap.Logger) Timetabler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &isolatedRoomTimetabler{
		solver: solver,
		logger: logger,
	}
}

func (timetabler *isolatedRoomTimetabler) Build(input Input) ([]ClassAssignment, Statistics, error) {
	requests, _ := BuildRequests(input, nil)
	return timetabler.Schedule(requests, input)
}

func (timetabler *isolatedRoomTimetabler) Schedule(requests []ScheduleRequest, input Input) ([]ClassAssignment, Statistics, error) {
	requests = PrioritizeRequests(slices.Clone(requests))

	//** Initialize dependencies
	state := newConstraintState(requests, input, false)
	statistics := Statistics{Requests: len(requests)}
	if done, err := degenerate(state); done {
		if err != nil {
			return nil, statistics, err
		}
		return []ClassAssignment{}, statistics, nil
	}

	// Constraints functions
	constraints := []func(state constraintState) [][]int64{
		teacherConstraints,
		sectionConstraints,
		completenessConstraints,
		uniquenessConstraints,
		negationConstraints,
	}

	//** Solve SAT instance
	variables, err := solveSat(timetabler.solver, constraints, state, &statistics, timetabler.logger)
	if err != nil {
		return nil, statistics, err
	}

	timetable, err := roomAssignment(variables, state, timetabler.logger)
	if _, ok := err.(unassignableError); ok {
		return nil, statistics, &NoSolutionError{Statistics: statistics, Cause: err}
	} else if err != nil {
		return nil, statistics, err
	}
	statistics.Assignments = len(timetable)

	return timetable, statistics, nil
}

func (timetabler *isolatedRoomTimetabler) Verify(timetable []ClassAssignment, input Input) bool {
	return verify(timetable, input)
}
