package main

import (
	"fmt"
	"strings"

	"github.com/limaJavier/timetabling/pkg/config"
	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/limaJavier/timetabling/pkg/sat"
	"go.uber.org/zap"
)

const (
	backtracking = "backtracking"
	pure         = "pure"
	postponed    = "postponed"
)

// newTimetabler builds the engine named by the generation settings:
// - "backtracking" (prioritized randomized search bounded by the attempt budget; the default),
// - "pure" (rooms are part of the SAT instance, therefore a timetable is found whenever one exists) and
// - "postponed" (rooms are matched after solving; a solution may be missed).
func newTimetabler(generation config.GenerationConfig, solvers config.SolverPaths, logger *zap.Logger) (model.Timetabler, error) {
	strategy := strings.ToLower(generation.Strategy)
	if strategy == backtracking {
		return model.NewBacktrackingTimetabler(generation.MaxAttempts, generation.Seed, logger), nil
	}

	var executablePath string
	switch strings.ToLower(generation.Solver) {
	case sat.Kissat:
		executablePath = solvers.Kissat
	case sat.Minisat:
		executablePath = solvers.Minisat
	}
	solver, err := sat.NewSolver(strings.ToLower(generation.Solver), executablePath)
	if err != nil {
		return nil, err
	}

	switch strategy {
	case pure:
		return model.NewEmbeddedRoomTimetabler(solver, logger), nil
	case postponed:
		return model.NewIsolatedRoomTimetabler(solver, logger), nil
	default:
		return nil, fmt.Errorf("%v is not a valid strategy", generation.Strategy)
	}
}
