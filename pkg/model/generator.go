package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result is the outcome of a successful generation run
type Result struct {
	RunID      string
	Timetable  []ClassAssignment
	Statistics Statistics
	Warnings   []string
	Report     ConflictReport
	Duration   time.Duration
}

// Optimizer may rearrange a conflict-free timetable, it must keep it conflict-free
type Optimizer func(timetable []ClassAssignment) []ClassAssignment

type Generator struct {
	timetabler Timetabler
	slots      []TimeSlot
	logger     *zap.Logger
	optimizer  Optimizer
}

func NewGenerator(timetabler Timetabler, slots []TimeSlot, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		timetabler: timetabler,
		slots:      slots,
		logger:     logger,
	}
}

// WithOptimizer replaces the default no-op optimization pass
func (generator *Generator) WithOptimizer(optimizer Optimizer) *Generator {
	generator.optimizer = optimizer
	return generator
}

// Generate builds a timetable for the given entities, audits it and runs the optimization hook.
// Unresolvable mapping entries are skipped and reported in Result.Warnings, or in the Warnings of a returned
// NoSolutionError or AuditError.
func (generator *Generator) Generate(
	courses []*Course,
	sections []*Section,
	teachers []*Teacher,
	rooms []*Room,
	courseAssignments CourseAssignments,
) (*Result, error) {
	runID := uuid.NewString()
	logger := generator.logger.With(zap.String("run_id", runID))
	start := time.Now()

	input := Input{
		Courses:           courses,
		Sections:          sections,
		Teachers:          teachers,
		Rooms:             rooms,
		CourseAssignments: courseAssignments,
		Slots:             generator.slots,
	}

	requests, warnings := BuildRequests(input, logger)
	logger.Info("generating timetable",
		zap.Int("requests", len(requests)),
		zap.Int("slots", len(generator.slots)),
		zap.Int("rooms", len(rooms)),
	)

	//** Search
	var (
		timetable  []ClassAssignment
		statistics Statistics
		err        error
	)
	if scheduler, ok := generator.timetabler.(RequestScheduler); ok {
		timetable, statistics, err = scheduler.Schedule(requests, input)
	} else {
		timetable, statistics, err = generator.timetabler.Build(input)
	}
	if err != nil {
		var noSolution *NoSolutionError
		if errors.As(err, &noSolution) {
			noSolution.Warnings = warnings
			logger.Info("no timetable found",
				zap.Int("attempts", noSolution.Statistics.Attempts),
				zap.Int("backtracks", noSolution.Statistics.Backtracks),
				zap.Bool("budget_exceeded", noSolution.BudgetExceeded),
			)
		}
		return nil, err
	}

	//** Audit
	report := FindAllConflicts(timetable)
	if !report.Empty() {
		logger.Error("generated timetable has conflicts", zap.Int("conflicts", report.Count()))
		return nil, &AuditError{Report: report, Warnings: warnings}
	}

	//** Optimize
	timetable = generator.optimize(timetable, logger)

	result := &Result{
		RunID:      runID,
		Timetable:  timetable,
		Statistics: statistics,
		Warnings:   warnings,
		Report:     report,
		Duration:   time.Since(start),
	}
	logger.Info("timetable generated",
		zap.Int("assignments", statistics.Assignments),
		zap.Int("attempts", statistics.Attempts),
		zap.Int("backtracks", statistics.Backtracks),
		zap.Uint64("variables", statistics.Variables),
		zap.Uint64("clauses", statistics.Clauses),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

func (generator *Generator) optimize(timetable []ClassAssignment, logger *zap.Logger) []ClassAssignment {
	if generator.optimizer == nil {
		logger.Debug("optimization pass skipped", zap.Int("assignments", len(timetable)))
		return timetable
	}

	optimized := generator.optimizer(timetable)
	if report := FindAllConflicts(optimized); !report.Empty() {
		logger.Warn("optimization introduced conflicts, keeping the original timetable", zap.Int("conflicts", report.Count()))
		return timetable
	}
	return optimized
}
