package model

import (
	"slices"

	"github.com/limaJavier/timetabling/pkg/sat"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

func verify(timetable []ClassAssignment, input Input) bool {
	//** Conflicts
	if !FindAllConflicts(timetable).Empty() {
		return false
	}

	//** Slot universe
	universe := lo.SliceToMap(input.Slots, func(slot TimeSlot) (SlotKey, bool) { return slot.Key(), true })

	//** Derived sessions
	expected := expectedSessions(input)
	derivedSessions := make(map[CourseSectionKey]int)

	for _, assignment := range timetable {
		key := CourseSectionKey{Course: assignment.Course.ID, Section: assignment.Section.ID}
		request, ok := expected[key]

		// Check that:
		// - The (course, section) pair is part of the mapping
		// - The teacher is the one assigned to the pair
		// - The slot belongs to the configured universe
		if !ok ||
			request.Teacher.ID != assignment.Teacher.ID ||
			(len(universe) > 0 && !universe[assignment.TimeSlot.Key()]) {
			return false
		}

		derivedSessions[key]++
	}

	// Check whether the number of sessions of each pair is equal to its weekly hours
	for key, request := range expected {
		if derivedSessions[key] != request.Course.HoursPerWeek {
			return false
		}
	}
	return true
}

func buildSat(variables uint64, constraints []func(state constraintState) [][]int64, state constraintState) (satInstance sat.SAT, explicitVariables map[int64]bool) {
	satInstance = sat.SAT{
		Variables: variables,
		Clauses:   [][]int64{},
	}

	explicitVariables = make(map[int64]bool)   // Variables that are explicitly stated in the clauses
	constraintsChannel := make(chan [][]int64) // Channel to collect constraints

	// Execute constraints functions on different goroutines
	for _, constraint := range constraints {
		go func(constraint func(state constraintState) [][]int64) {
			constraintsChannel <- constraint(state)
		}(constraint)
	}

	// Collect generated constraints
	for range constraints {
		clauses := <-constraintsChannel
		for _, clause := range clauses {
			for _, variable := range clause {
				// Check whether the variable is positive, since required explicit variables ought to be positive
				if variable > 0 {
					explicitVariables[variable] = true
				}
			}
		}
		satInstance.Clauses = append(satInstance.Clauses, clauses...)
	}

	return satInstance, explicitVariables
}

// solveSat builds the instance out of the given constraint families and returns the true, explicit variables
func solveSat(solver sat.SATSolver, constraints []func(state constraintState) [][]int64, state constraintState, statistics *Statistics, logger *zap.Logger) ([]uint64, error) {
	satInstance, explicitVariables := buildSat(state.indexer.Variables(), constraints, state)
	statistics.Variables = satInstance.Variables
	statistics.Clauses = uint64(len(satInstance.Clauses))
	statistics.Attempts = 1

	logger.Debug("solving SAT instance",
		zap.Uint64("variables", statistics.Variables),
		zap.Uint64("clauses", statistics.Clauses),
	)

	solution, err := solver.Solve(satInstance)
	if err != nil {
		return nil, err
	} else if solution == nil { // The SAT instance is not satisfiable
		return nil, &NoSolutionError{Statistics: *statistics}
	}

	positives := make([]uint64, 0, len(state.requests))
	for _, variable := range solution {
		// Acknowledge only positive variables that are explicitly stated in the clauses
		if variable > 0 && explicitVariables[variable] {
			positives = append(positives, uint64(variable))
		}
	}
	slices.Sort(positives)
	return positives, nil
}

// degenerate reports inputs a SAT instance cannot be built for: no requests is a trivial success, no slots or rooms is a failure
func degenerate(state constraintState) (bool, error) {
	if len(state.requests) == 0 {
		return true, nil
	}
	if len(state.slots) == 0 || len(state.rooms) == 0 {
		return true, &NoSolutionError{Statistics: Statistics{Requests: len(state.requests)}}
	}
	return false, nil
}

func newConstraintState(requests []ScheduleRequest, input Input, embeddedRoom bool) constraintState {
	roomsDomain := uint64(len(input.Rooms))
	if !embeddedRoom {
		roomsDomain = 1
	}
	requestsDomain, slotsDomain := uint64(len(requests)), uint64(len(input.Slots))

	return constraintState{
		evaluator:    newPredicateEvaluator(),
		indexer:      newIndexer(requestsDomain, slotsDomain, roomsDomain),
		generator:    newPermutationGenerator(requestsDomain, slotsDomain, roomsDomain),
		requests:     requests,
		slots:        input.Slots,
		rooms:        input.Rooms,
		embeddedRoom: embeddedRoom,
	}
}

// roomAssignment gives a room to every placed request, one maximum bipartite matching per slot
func roomAssignment(variables []uint64, state constraintState, logger *zap.Logger) ([]ClassAssignment, error) {
	simultaneousRequests := make(map[uint64][]uint64)
	slotOrder := make([]uint64, 0)

	for _, variable := range variables {
		request, slot, _ := state.indexer.Attributes(variable)
		if _, ok := simultaneousRequests[slot]; !ok {
			slotOrder = append(slotOrder, slot)
		}
		simultaneousRequests[slot] = append(simultaneousRequests[slot], request)
	}
	slices.Sort(slotOrder)

	timetable := make([]ClassAssignment, 0, len(variables))
	for _, slot := range slotOrder {
		requests := simultaneousRequests[slot]

		assignments, err := assignRooms(requests, state)
		if err != nil {
			if _, ok := err.(unassignableError); ok {
				err = unassignableError{slot: state.slots[slot]}
				logger.Debug("cannot assign rooms",
					zap.Stringer("slot", state.slots[slot]),
					zap.Strings("requests", lo.Map(requests, func(request uint64, _ int) string { return state.requests[request].String() })),
				)
			}
			return nil, err
		}

		for _, assignment := range assignments {
			request, room := state.requests[assignment[0]], state.rooms[assignment[1]]
			timetable = append(timetable, ClassAssignment{
				Course:   request.Course,
				Section:  request.Section,
				Teacher:  request.Teacher,
				Room:     room,
				TimeSlot: state.slots[slot],
			})
		}
	}

	return timetable, nil
}

func assignRooms(requests []uint64, state constraintState) ([][2]uint64, error) {
	assignments := make([][2]uint64, 0, len(requests))
	rooms := lo.Range(len(state.rooms))

	// Build neighbors predicate based on room suitability
	neighbors := func(requestAny any, roomAny any) (bool, error) {
		request := state.requests[requestAny.(uint64)]
		room := state.rooms[roomAny.(int)]

		return state.evaluator.Suitable(request.Course, request.Section, room), nil
	}

	// Transform requests and rooms to slices of any
	requestsAny, roomsAny := lo.Map(requests, func(request uint64, _ int) any { return request }), lo.Map(rooms, func(room int, _ int) any { return room })

	graph, err := bipartitegraph.NewBipartiteGraph(requestsAny, roomsAny, neighbors)
	if err != nil {
		return nil, err
	}

	matching := graph.LargestMatching()

	// Check the matching is a maximum one
	if len(matching) < len(requests) {
		return nil, unassignableError{}
	}

	for _, edge := range matching {
		requestIndex, roomIndex := edge.Node1, edge.Node2-len(requests)
		assignments = append(assignments, [2]uint64{requests[requestIndex], uint64(rooms[roomIndex])})
	}

	// Keep the timetable in request order
	slices.SortFunc(assignments, func(a, b [2]uint64) int { return int(a[0]) - int(b[0]) })

	return assignments, nil
}
