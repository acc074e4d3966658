package model

// Statistics accumulates counters of a single generation run. Variables and Clauses are only filled by SAT-based timetablers.
type Statistics struct {
	Requests    int    `json:"requests"`
	Attempts    int    `json:"attempts"`
	Backtracks  int    `json:"backtracks"`
	Assignments int    `json:"assignments"`
	Variables   uint64 `json:"variables"`
	Clauses     uint64 `json:"clauses"`
}

type Timetabler interface {
	// Build returns a conflict-free timetable or an error matching ErrNoSolution
	Build(
		input Input,
	) (timetable []ClassAssignment, statistics Statistics, err error)

	// Verify checks the timetable has no conflicts and that every (course, section) pair got exactly HoursPerWeek sessions
	Verify(
		timetable []ClassAssignment,
		input Input,
	) bool
}

// RequestScheduler is implemented by timetablers that can search over requests expanded by the caller,
// so a generation runs BuildRequests once
type RequestScheduler interface {
	Schedule(requests []ScheduleRequest, input Input) ([]ClassAssignment, Statistics, error)
}
