package model

import (
	"slices"

	"github.com/limaJavier/timetabling/pkg/sat"

	"go.uber.org/zap"
)

// embeddedRoomTimetabler encodes rooms inside the SAT variables, which makes it complete:
// an unsatisfiable instance proves that no timetable exists.
type embeddedRoomTimetabler struct {
	solver sat.SATSolver
	logger *zap.Logger
}

func NewEmbeddedRoomTimetabler(solver sat.SATSolver, logger *zap.Logger) Timetabler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &embeddedRoomTimetabler{
		solver: solver,
		logger: logger,
	}
}

func (timetabler *embeddedRoomTimetabler) Build(input Input) ([]ClassAssignment, Statistics, error) {
	requests, _ := BuildRequests(input, nil)
	return timetabler.Schedule(requests, input)
}

func (timetabler *embeddedRoomTimetabler) Schedule(requests []ScheduleRequest, input Input) ([]ClassAssignment, Statistics, error) {
	requests = PrioritizeRequests(slices.Clone(requests))

	//** Initialize dependencies
	state := newConstraintState(requests, input, true)
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
		roomConstraints,
		completenessConstraints,
		uniquenessConstraints,
		negationConstraints,
	}

	//** Solve SAT instance
	variables, err := solveSat(timetabler.solver, constraints, state, &statistics, timetabler.logger)
	if err != nil {
		return nil, statistics, err
	}

	timetable := make([]ClassAssignment, 0, len(variables))
	for _, variable := range variables {
		request, slot, room := state.indexer.Attributes(variable)
		timetable = append(timetable, ClassAssignment{
			Course:   requests[request].Course,
			Section:  requests[request].Section,
			Teacher:  requests[request].Teacher,
			Room:     input.Rooms[room],
			TimeSlot: input.Slots[slot],
		})
	}
	statistics.Assignments = len(timetable)

	return timetable, statistics, nil
}

func (timetabler *embeddedRoomTimetabler) Verify(timetable []ClassAssignment, input Input) bool {
	return verify(timetable, input)
}
