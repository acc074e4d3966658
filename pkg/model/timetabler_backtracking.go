package model

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"
)

const DefaultMaxAttempts = 10000

type backtrackingTimetabler struct {
	maxAttempts int
	seed        *uint64
	logger      *zap.Logger
	evaluator   predicateEvaluator
	validator   ConstraintValidator
}

// NewBacktrackingTimetabler returns the prioritized backtracking search.
// A nil seed draws a fresh random seed on every Build; a fixed seed makes Build deterministic.
func NewBacktrackingTimetabler(maxAttempts int, seed *uint64, logger *zap.Logger) Timetabler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &backtrackingTimetabler{
		maxAttempts: maxAttempts,
		seed:        seed,
		logger:      logger,
		evaluator:   newPredicateEvaluator(),
		validator:   NewConstraintValidator(),
	}
}

func (timetabler *backtrackingTimetabler) Build(input Input) ([]ClassAssignment, Statistics, error) {
	requests, _ := BuildRequests(input, nil)
	return timetabler.Schedule(requests, input)
}

func (timetabler *backtrackingTimetabler) Schedule(requests []ScheduleRequest, input Input) ([]ClassAssignment, Statistics, error) {
	requests = PrioritizeRequests(slices.Clone(requests))

	seed := rand.Uint64()
	if timetabler.seed != nil {
		seed = *timetabler.seed
	}
	timetabler.logger.Debug("starting backtracking search",
		zap.Int("requests", len(requests)),
		zap.Int("max_attempts", timetabler.maxAttempts),
		zap.Uint64("seed", seed),
	)

	return timetabler.search(requests, input.Rooms, input.Slots, newRandom(seed))
}

func newRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func (timetabler *backtrackingTimetabler) Verify(timetable []ClassAssignment, input Input) bool {
	return verify(timetable, input)
}

// searchFrame holds the ordered candidates of one request index and the cursor of the next one to try
type searchFrame struct {
	candidates []ClassAssignment
	cursor     int
}

// search runs as an explicit stack machine. Invariant: while searching, len(frames) == len(committed)+1.
func (timetabler *backtrackingTimetabler) search(requests []ScheduleRequest, rooms []*Room, slots []TimeSlot, random *rand.Rand) ([]ClassAssignment, Statistics, error) {
	statistics := Statistics{Requests: len(requests)}
	committed := make([]ClassAssignment, 0, len(requests))
	frames := make([]searchFrame, 0, len(requests))

	descend := true
	for {
		index := len(committed)
		if index == len(requests) {
			statistics.Assignments = len(committed)
			return committed, statistics, nil
		}

		//** Enter a new request index
		if descend {
			if statistics.Attempts >= timetabler.maxAttempts {
				timetabler.logger.Debug("attempt budget exhausted", zap.Int("depth", index))
				return nil, statistics, &NoSolutionError{Statistics: statistics, BudgetExceeded: true}
			}
			statistics.Attempts++
			frames = append(frames, searchFrame{
				candidates: timetabler.candidates(requests[index], rooms, slots, random),
			})
		}

		//** Try the remaining candidates of the current index
		frame := &frames[len(frames)-1]
		placed := false
		for frame.cursor < len(frame.candidates) {
			candidate := frame.candidates[frame.cursor]
			frame.cursor++
			if ok, _ := timetabler.validator.Validate(candidate, committed); ok {
				committed = append(committed, candidate)
				placed = true
				break
			}
		}
		if placed {
			descend = true
			continue
		}

		//** Dead end
		frames = frames[:len(frames)-1]
		if len(committed) == 0 {
			return nil, statistics, &NoSolutionError{Statistics: statistics}
		}
		committed = committed[:len(committed)-1]
		statistics.Backtracks++
		descend = false
	}
}

// candidates returns the cross product of suitable rooms and teacher-available slots.
// Candidates are grouped into tiers of equal room slack (capacity minus students), tiers ascending,
// and each tier is shuffled so the tightest rooms are still tried first.
func (timetabler *backtrackingTimetabler) candidates(request ScheduleRequest, rooms []*Room, slots []TimeSlot, random *rand.Rand) []ClassAssignment {
	suitableRooms := make([]*Room, 0, len(rooms))
	for _, room := range rooms {
		if timetabler.evaluator.Suitable(request.Course, request.Section, room) {
			suitableRooms = append(suitableRooms, room)
		}
	}
	availableSlots := make([]TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if timetabler.evaluator.TeacherAvailable(request.Teacher, slot) {
			availableSlots = append(availableSlots, slot)
		}
	}

	slices.SortStableFunc(suitableRooms, func(a, b *Room) int {
		return cmp.Compare(a.Capacity, b.Capacity)
	})

	candidates := make([]ClassAssignment, 0, len(suitableRooms)*len(availableSlots))
	for tierStart := 0; tierStart < len(suitableRooms); {
		tierEnd := tierStart + 1
		for tierEnd < len(suitableRooms) && suitableRooms[tierEnd].Capacity == suitableRooms[tierStart].Capacity {
			tierEnd++
		}

		tier := make([]ClassAssignment, 0, (tierEnd-tierStart)*len(availableSlots))
		for _, room := range suitableRooms[tierStart:tierEnd] {
			for _, slot := range availableSlots {
				tier = append(tier, ClassAssignment{
					Course:   request.Course,
					Section:  request.Section,
					Teacher:  request.Teacher,
					Room:     room,
					TimeSlot: slot,
				})
			}
		}
		random.Shuffle(len(tier), func(i, j int) { tier[i], tier[j] = tier[j], tier[i] })

		candidates = append(candidates, tier...)
		tierStart = tierEnd
	}

	return candidates
}
