package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/limaJavier/timetabling/pkg/config"
	"github.com/limaJavier/timetabling/pkg/input"
	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleDataset(t *testing.T) {
	//** Arrange
	sample := input.Sample()

	//** Act
	scaled := scaleDataset(sample, 3)

	//** Assert
	assert.Len(t, scaled.Courses, len(sample.Courses))
	assert.Len(t, scaled.Teachers, 3*len(sample.Teachers))
	assert.Len(t, scaled.Rooms, 3*len(sample.Rooms))
	assert.Len(t, scaled.Sections, 3*len(sample.Sections))
	assert.Len(t, scaled.CourseAssignments, 3*len(sample.CourseAssignments))

	assert.Equal(t, model.TeacherID("T001#2"), scaled.Teachers[len(sample.Teachers)].ID)
	assert.Len(t, scaled.Teachers[len(sample.Teachers)].UnavailableSlots(), 2)
	teacher, ok := scaled.CourseAssignments.Lookup("CS101", "S001#3")
	assert.True(t, ok)
	assert.Equal(t, model.TeacherID("T001#3"), teacher)

	// The sample is left untouched
	assert.Equal(t, model.RoomID("R001"), sample.Rooms[0].ID)
}

func TestSeedsOf(t *testing.T) {
	backtrackingSeeds := seedsOf(backtracking)
	require.Len(t, backtrackingSeeds, 3)
	assert.Equal(t, uint64(1), *backtrackingSeeds[0])
	assert.Equal(t, uint64(3), *backtrackingSeeds[2])

	assert.Equal(t, []*uint64{nil}, seedsOf(pure))
}

func TestMeasure(t *testing.T) {
	//** Arrange
	slots, err := config.Default().TimeSlots()
	require.NoError(t, err)
	dataset := input.Sample()
	test := metadata(dataset, slots, 1)
	seed := uint64(4)

	//** Act
	backtrackingResult := measure(backtracking, &seed, dataset.Input(slots), test)
	postponedResult := measure(postponed, nil, dataset.Input(slots), test)

	//** Assert
	assert.Equal(t, 42, test.Requests)
	assert.Equal(t, "solved", backtrackingResult.Result)
	assert.Equal(t, "4", backtrackingResult.Seed)
	assert.GreaterOrEqual(t, backtrackingResult.Attempts, 42)
	assert.Equal(t, "solved", postponedResult.Result)
	assert.Equal(t, "gini", postponedResult.Solver)
	assert.Positive(t, postponedResult.Clauses)
}

func TestClassify(t *testing.T) {
	engine := model.NewBacktrackingTimetabler(model.DefaultMaxAttempts, nil, nil)

	assert.Equal(t, budgetExceeded, classify(&model.NoSolutionError{BudgetExceeded: true}, nil, engine, model.Input{}))
	assert.Equal(t, unsatisfiable, classify(&model.NoSolutionError{}, nil, engine, model.Input{}))
	assert.Equal(t, solved, classify(nil, nil, engine, model.Input{}))
}

func TestToCsv(t *testing.T) {
	path := filepath.Join(t.TempDir(), resultsFile)

	require.NoError(t, toCsv([]BenchmarkResult{{Timetabler: "pure", Solver: "gini", Scale: 2, Seed: "-", Result: "solved"}}, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Timetabler,Solver,Scale,Seed,Requests"))
	assert.True(t, strings.HasPrefix(lines[1], "pure,gini,2,-,"))
}
