package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/timetabling/pkg/config"
	"github.com/limaJavier/timetabling/pkg/input"
	"github.com/limaJavier/timetabling/pkg/logging"
	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/limaJavier/timetabling/pkg/sat"
	"go.uber.org/zap"
)

const (
	resultsFile         = "benchmark_results.csv"
	MB          float64 = 1024 * 1024
)

type TimetablerType int

const (
	backtracking TimetablerType = iota
	pure
	postponed
)

type ResultType int

const (
	solved ResultType = iota
	unsatisfiable
	budgetExceeded
	failed
)

var (
	timetablerTypes = map[TimetablerType]string{
		backtracking: "backtracking",
		pure:         "pure",
		postponed:    "postponed",
	}
	resultTypes = map[ResultType]string{
		solved:         "solved",
		unsatisfiable:  "unsatisfiable",
		budgetExceeded: "budget exceeded",
		failed:         "failed",
	}
	scales = []int{1, 2, 3}
	seeds  = []uint64{1, 2, 3}
)

type TestMetadata struct {
	Scale    int
	Requests int
	Teachers int
	Rooms    int
	Sections int
}

type BenchmarkResult struct {
	Timetabler string  `csv:"Timetabler"`
	Solver     string  `csv:"Solver"`
	Scale      int     `csv:"Scale"`
	Seed       string  `csv:"Seed"`
	Requests   int     `csv:"Requests"`
	Teachers   int     `csv:"Teachers"`
	Rooms      int     `csv:"Rooms"`
	Sections   int     `csv:"Sections"`
	Duration   int64   `csv:"Duration(ms)"`
	Memory     float64 `csv:"Memory(MB)"`
	Attempts   int     `csv:"Attempts"`
	Backtracks int     `csv:"Backtracks"`
	Variables  uint64  `csv:"Variables"`
	Clauses    uint64  `csv:"Clauses"`
	Result     string  `csv:"Result"`
}

func main() {
	logger, err := logging.New(config.LogConfig{Level: "info", Format: "console"})
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer logger.Sync()

	slots, err := config.Default().TimeSlots()
	if err != nil {
		logger.Fatal("cannot derive time slots", zap.Error(err))
	}

	results := make([]BenchmarkResult, 0)
	for _, scale := range scales {
		dataset := scaleDataset(input.Sample(), scale)
		test := metadata(dataset, slots, scale)

		for _, timetabler := range []TimetablerType{backtracking, pure, postponed} {
			for _, seed := range seedsOf(timetabler) {
				logger.Info("benchmarking",
					zap.String("strategy", timetablerTypes[timetabler]),
					zap.Int("scale", scale),
					zap.Any("seed", seed),
				)
				results = append(results, measure(timetabler, seed, dataset.Input(slots), test))
			}
		}
	}

	if err := toCsv(results, resultsFile); err != nil {
		logger.Fatal("cannot write benchmark results", zap.Error(err))
	}
	logger.Info("benchmark finished", zap.Int("runs", len(results)), zap.String("file", resultsFile))
}

// seedsOf returns the seeds worth running, SAT strategies do not depend on a seed
func seedsOf(timetabler TimetablerType) []*uint64 {
	if timetabler != backtracking {
		return []*uint64{nil}
	}
	pointers := make([]*uint64, 0, len(seeds))
	for _, seed := range seeds {
		pointers = append(pointers, &seed)
	}
	return pointers
}

func newTimetabler(timetabler TimetablerType, seed *uint64) model.Timetabler {
	switch timetabler {
	case pure:
		return model.NewEmbeddedRoomTimetabler(sat.NewGiniSolver(), nil)
	case postponed:
		return model.NewIsolatedRoomTimetabler(sat.NewGiniSolver(), nil)
	default:
		return model.NewBacktrackingTimetabler(model.DefaultMaxAttempts, seed, nil)
	}
}

func measure(timetabler TimetablerType, seed *uint64, instance model.Input, test TestMetadata) BenchmarkResult {
	engine := newTimetabler(timetabler, seed)

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	start := time.Now()

	timetable, statistics, err := engine.Build(instance)

	duration := time.Since(start)
	runtime.ReadMemStats(&after)

	result := BenchmarkResult{
		Timetabler: timetablerTypes[timetabler],
		Solver:     "-",
		Scale:      test.Scale,
		Seed:       "-",
		Requests:   test.Requests,
		Teachers:   test.Teachers,
		Rooms:      test.Rooms,
		Sections:   test.Sections,
		Duration:   duration.Milliseconds(),
		Memory:     float64(after.TotalAlloc-before.TotalAlloc) / MB,
		Attempts:   statistics.Attempts,
		Backtracks: statistics.Backtracks,
		Variables:  statistics.Variables,
		Clauses:    statistics.Clauses,
		Result:     resultTypes[classify(err, timetable, engine, instance)],
	}
	if timetabler != backtracking {
		result.Solver = sat.Gini
	}
	if seed != nil {
		result.Seed = fmt.Sprint(*seed)
	}
	return result
}

func classify(err error, timetable []model.ClassAssignment, engine model.Timetabler, instance model.Input) ResultType {
	var noSolution *model.NoSolutionError
	switch {
	case errors.As(err, &noSolution) && noSolution.BudgetExceeded:
		return budgetExceeded
	case errors.Is(err, model.ErrNoSolution):
		return unsatisfiable
	case err != nil || !engine.Verify(timetable, instance):
		return failed
	default:
		return solved
	}
}

func metadata(dataset *input.Dataset, slots []model.TimeSlot, scale int) TestMetadata {
	requests, _ := model.BuildRequests(dataset.Input(slots), nil)
	return TestMetadata{
		Scale:    scale,
		Requests: len(requests),
		Teachers: len(dataset.Teachers),
		Rooms:    len(dataset.Rooms),
		Sections: len(dataset.Sections),
	}
}

// scaleDataset replicates teachers, rooms, sections and the mapping factor times. Courses are shared by every copy.
func scaleDataset(dataset *input.Dataset, factor int) *input.Dataset {
	scaled := &input.Dataset{Courses: dataset.Courses}
	for replica := 1; replica <= factor; replica++ {
		suffix := fmt.Sprintf("#%d", replica)
		for _, teacher := range dataset.Teachers {
			clone := model.NewTeacher(teacher.ID+model.TeacherID(suffix), teacher.Name+suffix, teacher.Department, teacher.Specializations...)
			for _, key := range teacher.UnavailableSlots() {
				clone.AddUnavailableSlot(model.NewTimeSlot(key.Day, key.Period, "", ""))
			}
			scaled.Teachers = append(scaled.Teachers, clone)
		}
		for _, room := range dataset.Rooms {
			clone := *room
			clone.ID += model.RoomID(suffix)
			clone.Name += suffix
			scaled.Rooms = append(scaled.Rooms, &clone)
		}
		for _, section := range dataset.Sections {
			clone := *section
			clone.ID += model.SectionID(suffix)
			clone.Name += suffix
			scaled.Sections = append(scaled.Sections, &clone)
		}
		for _, entry := range dataset.CourseAssignments {
			scaled.CourseAssignments.Set(entry.Course, entry.Section+model.SectionID(suffix), entry.Teacher+model.TeacherID(suffix))
		}
	}
	return scaled
}

func toCsv(results []BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		return fmt.Errorf("cannot write CSV records: %w", err)
	}
	return nil
}
