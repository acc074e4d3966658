package model

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fixedTimetabler returns a canned timetable regardless of the input
type fixedTimetabler struct {
	timetable []ClassAssignment
	err       error
}

func (timetabler fixedTimetabler) Build(input Input) ([]ClassAssignment, Statistics, error) {
	return timetabler.timetable, Statistics{Assignments: len(timetabler.timetable)}, timetabler.err
}

func (timetabler fixedTimetabler) Verify(timetable []ClassAssignment, input Input) bool {
	return verify(timetable, input)
}

func TestGenerate(t *testing.T) {
	//** Arrange
	core, logs := observer.New(zapcore.DebugLevel)
	input := smallInput()
	input.CourseAssignments = append(input.CourseAssignments, CourseAssignment{Course: "C9", Section: "S1", Teacher: "T1"})
	generator := NewGenerator(NewBacktrackingTimetabler(DefaultMaxAttempts, seed(11), nil), input.Slots, zap.New(core))

	//** Act
	result, err := generator.Generate(input.Courses, input.Sections, input.Teachers, input.Rooms, input.CourseAssignments)

	//** Assert
	require.NoError(t, err)
	_, err = uuid.Parse(result.RunID)
	assert.NoError(t, err)
	assert.Len(t, result.Timetable, 7)
	assert.Equal(t, 7, result.Statistics.Assignments)
	assert.Equal(t, 7, result.Statistics.Requests)
	assert.GreaterOrEqual(t, result.Statistics.Attempts, 7)
	assert.Equal(t, []string{"Invalid assignment: course C9, section S1, teacher T1"}, result.Warnings)
	assert.True(t, result.Report.Empty())

	assert.Equal(t, 1, logs.FilterMessage("timetable generated").Len())
	assert.Equal(t, 1, logs.FilterMessage("optimization pass skipped").Len())
	for _, entry := range logs.All() {
		assert.Equal(t, result.RunID, entry.ContextMap()["run_id"])
	}
}

func TestGenerateNoSolution(t *testing.T) {
	//** Arrange
	input := singleSlotInput()
	input.CourseAssignments = append(input.CourseAssignments,
		input.CourseAssignments[0],
		CourseAssignment{Course: "C1", Section: "S9", Teacher: "T1"},
	)
	generator := NewGenerator(NewBacktrackingTimetabler(DefaultMaxAttempts, seed(1), nil), input.Slots, nil)

	//** Act
	result, err := generator.Generate(input.Courses, input.Sections, input.Teachers, input.Rooms, input.CourseAssignments)

	//** Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoSolution)
	var noSolution *NoSolutionError
	require.True(t, errors.As(err, &noSolution))
	assert.Equal(t, []string{"Invalid assignment: course C1, section S9, teacher T1"}, noSolution.Warnings)
}

func TestGenerateAuditFailure(t *testing.T) {
	//** Arrange
	input := singleSlotInput()
	booked := assignment(input, "C1", "S1", "T1", "R1", input.Slots[0])
	generator := NewGenerator(fixedTimetabler{timetable: []ClassAssignment{booked, booked}}, input.Slots, nil)

	//** Act
	result, err := generator.Generate(input.Courses, input.Sections, input.Teachers, input.Rooms, input.CourseAssignments)

	//** Assert
	assert.Nil(t, result)
	var auditErr *AuditError
	require.True(t, errors.As(err, &auditErr))
	assert.Equal(t, 3, auditErr.Report.Count())
	assert.NotErrorIs(t, err, ErrNoSolution)
}

// schedulingTimetabler records the prepared requests it is handed and refuses to expand its own
type schedulingTimetabler struct {
	fixedTimetabler
	received []ScheduleRequest
	built    bool
}

func (timetabler *schedulingTimetabler) Build(input Input) ([]ClassAssignment, Statistics, error) {
	timetabler.built = true
	return timetabler.fixedTimetabler.Build(input)
}

func (timetabler *schedulingTimetabler) Schedule(requests []ScheduleRequest, input Input) ([]ClassAssignment, Statistics, error) {
	timetabler.received = requests
	return timetabler.fixedTimetabler.Build(input)
}

func TestGenerateSchedulesPreparedRequests(t *testing.T) {
	//** Arrange
	input := singleSlotInput()
	input.CourseAssignments = append(input.CourseAssignments, CourseAssignment{Course: "C9", Section: "S1", Teacher: "T1"})
	timetabler := &schedulingTimetabler{
		fixedTimetabler: fixedTimetabler{timetable: []ClassAssignment{assignment(input, "C1", "S1", "T1", "R1", input.Slots[0])}},
	}
	generator := NewGenerator(timetabler, input.Slots, nil)

	//** Act
	result, err := generator.Generate(input.Courses, input.Sections, input.Teachers, input.Rooms, input.CourseAssignments)

	//** Assert
	require.NoError(t, err)
	assert.False(t, timetabler.built)
	require.Len(t, timetabler.received, 1)
	assert.Equal(t, CourseID("C1"), timetabler.received[0].Course.ID)
	assert.Equal(t, 1, timetabler.received[0].Instance)
	assert.Len(t, result.Warnings, 1)
}

func TestBacktrackingScheduleKeepsCallerOrder(t *testing.T) {
	//** Arrange
	input := smallInput()
	requests, _ := BuildRequests(input, nil)
	before := slices.Clone(requests)
	scheduler := NewBacktrackingTimetabler(DefaultMaxAttempts, seed(3), nil).(RequestScheduler)

	//** Act
	timetable, statistics, err := scheduler.Schedule(requests, input)

	//** Assert
	require.NoError(t, err)
	assert.Len(t, timetable, len(requests))
	assert.Equal(t, len(requests), statistics.Requests)
	assert.Equal(t, before, requests)
}

func TestGenerateOptimizer(t *testing.T) {
	input := singleSlotInput()
	booked := assignment(input, "C1", "S1", "T1", "R1", input.Slots[0])

	t.Run("Conflict-free result is kept", func(t *testing.T) {
		moved := booked
		moved.TimeSlot = NewTimeSlot(Monday, 1, "08:00", "09:00")
		generator := NewGenerator(fixedTimetabler{timetable: []ClassAssignment{booked}}, input.Slots, nil).
			WithOptimizer(func(timetable []ClassAssignment) []ClassAssignment { return []ClassAssignment{moved} })

		result, err := generator.Generate(input.Courses, input.Sections, input.Teachers, input.Rooms, input.CourseAssignments)

		require.NoError(t, err)
		assert.Equal(t, "08:00", result.Timetable[0].TimeSlot.Start)
	})

	t.Run("Conflicting result is discarded", func(t *testing.T) {
		generator := NewGenerator(fixedTimetabler{timetable: []ClassAssignment{booked}}, input.Slots, nil).
			WithOptimizer(func(timetable []ClassAssignment) []ClassAssignment { return append(timetable, booked) })

		result, err := generator.Generate(input.Courses, input.Sections, input.Teachers, input.Rooms, input.CourseAssignments)

		require.NoError(t, err)
		assert.Len(t, result.Timetable, 1)
	})
}
