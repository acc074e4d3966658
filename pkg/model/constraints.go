package model

import (
	"math"

	"github.com/samber/lo"
)

// constraintState is shared read-only by every constraint family while the SAT instance is built
type constraintState struct {
	evaluator predicateEvaluator
	indexer   indexer
	generator permutationGenerator

	requests []ScheduleRequest
	slots    []TimeSlot
	rooms    []*Room

	// When false the room attribute has a single value standing for "some suitable room"
	embeddedRoom bool
}

// feasibility returns the partial predicates a placement (request, slot, room) must satisfy
func (state constraintState) feasibility() []func(permutation []uint64) bool {
	return []func(permutation []uint64) bool{
		// TeacherAvailable(m, s) = 1
		func(permutation []uint64) bool {
			request, slot := permutation[0], permutation[1]

			return request == math.MaxUint64 ||
				slot == math.MaxUint64 ||

				// Actual predicate
				state.evaluator.TeacherAvailable(state.requests[request].Teacher, state.slots[slot])
		},
		// Suitable(m, r) = 1
		func(permutation []uint64) bool {
			request, room := permutation[0], permutation[2]

			return request == math.MaxUint64 ||
				room == math.MaxUint64 ||

				// Actual predicate
				state.suitable(request, room)
		},
	}
}

func (state constraintState) suitable(request, room uint64) bool {
	course, section := state.requests[request].Course, state.requests[request].Section
	if state.embeddedRoom {
		return state.evaluator.Suitable(course, section, state.rooms[room])
	}
	return lo.SomeBy(state.rooms, func(room *Room) bool {
		return state.evaluator.Suitable(course, section, room)
	})
}

func (state constraintState) feasible(permutation []uint64) bool {
	return lo.EveryBy(state.feasibility(), func(predicate func(permutation []uint64) bool) bool {
		return predicate(permutation)
	})
}

func (state constraintState) index(permutation []uint64) int64 {
	return int64(state.indexer.Index(permutation[0], permutation[1], permutation[2]))
}

// Every request is placed at least once
func completenessConstraints(state constraintState) [][]int64 {
	permutations := state.generator.ConstrainedPermutations(state.feasibility())
	byRequest := lo.GroupBy(permutations, func(permutation []uint64) uint64 { return permutation[0] })

	clauses := make([][]int64, 0, len(state.requests))
	for request := range uint64(len(state.requests)) {
		placements := byRequest[request]
		if len(placements) == 0 {
			// The placement (m, 0, 0) is infeasible hence negated, which makes the instance unsatisfiable
			clauses = append(clauses, []int64{int64(state.indexer.Index(request, 0, 0))})
			continue
		}
		clauses = append(clauses, lo.Map(placements, func(permutation []uint64, _ int) int64 {
			return state.index(permutation)
		}))
	}
	return clauses
}

// Every request is placed at most once
func uniquenessConstraints(state constraintState) [][]int64 {
	permutations := state.generator.ConstrainedPermutations(state.feasibility())
	byRequest := lo.GroupBy(permutations, func(permutation []uint64) uint64 { return permutation[0] })

	clauses := make([][]int64, 0)
	for _, placements := range byRequest {
		for i := range len(placements) - 1 {
			for j := i + 1; j < len(placements); j++ {
				clauses = append(clauses, []int64{-state.index(placements[i]), -state.index(placements[j])})
			}
		}
	}
	return clauses
}

// SameTeacher(m, m') = 1, s = s'
func teacherConstraints(state constraintState) [][]int64 {
	return exclusivityClauses(state, func(permutation []uint64) [2]any {
		return [2]any{permutation[1], state.requests[permutation[0]].Teacher.ID}
	})
}

// SameSection(m, m') = 1, s = s'
func sectionConstraints(state constraintState) [][]int64 {
	return exclusivityClauses(state, func(permutation []uint64) [2]any {
		return [2]any{permutation[1], state.requests[permutation[0]].Section.ID}
	})
}

// r = r', s = s'
func roomConstraints(state constraintState) [][]int64 {
	return exclusivityClauses(state, func(permutation []uint64) [2]any {
		return [2]any{permutation[1], permutation[2]}
	})
}

// Infeasible placements are false
func negationConstraints(state constraintState) [][]int64 {
	permutations := state.generator.ConstrainedPermutations(nil)

	clauses := make([][]int64, 0)
	for _, permutation := range permutations {
		if !state.feasible(permutation) {
			clauses = append(clauses, []int64{-state.index(permutation)})
		}
	}
	return clauses
}

// exclusivityClauses forbids any two placements of different requests sharing the same key
func exclusivityClauses(state constraintState, key func(permutation []uint64) [2]any) [][]int64 {
	permutations := state.generator.ConstrainedPermutations(state.feasibility())
	groups := lo.GroupBy(permutations, key)

	clauses := make([][]int64, 0)
	for _, group := range groups {
		for i := range len(group) - 1 {
			for j := i + 1; j < len(group); j++ {
				if group[i][0] == group[j][0] {
					continue
				}
				clauses = append(clauses, []int64{-state.index(group[i]), -state.index(group[j])})
			}
		}
	}
	return clauses
}
