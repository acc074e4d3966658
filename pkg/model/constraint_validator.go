package model

import "fmt"

type ConflictKind string

const (
	TeacherConflict      ConflictKind = "teacher"
	RoomConflict         ConflictKind = "room"
	SectionConflict      ConflictKind = "section"
	CapacityConflict     ConflictKind = "capacity"
	AvailabilityConflict ConflictKind = "availability"
	RoomTypeConflict     ConflictKind = "room_type"
)

// Violation describes one hard constraint broken by a candidate assignment
type Violation struct {
	Kind    ConflictKind
	Message string
}

func (violation Violation) String() string {
	return violation.Message
}

// ConstraintValidator evaluates every hard constraint for a candidate against the committed assignments.
// All checks run on every call so that a single call reports every violation at once.
type ConstraintValidator interface {
	Validate(candidate ClassAssignment, committed []ClassAssignment) (bool, []Violation)
}

type constraintValidator struct {
	evaluator predicateEvaluator
}

func NewConstraintValidator() ConstraintValidator {
	return &constraintValidator{evaluator: newPredicateEvaluator()}
}

// ValidateAssignment is a shorthand for NewConstraintValidator().Validate
func ValidateAssignment(candidate ClassAssignment, committed []ClassAssignment) (bool, []Violation) {
	return NewConstraintValidator().Validate(candidate, committed)
}

func (validator *constraintValidator) Validate(candidate ClassAssignment, committed []ClassAssignment) (bool, []Violation) {
	violations := make([]Violation, 0)

	violations = append(violations, validator.teacherConflicts(candidate, committed)...)
	violations = append(violations, validator.roomConflicts(candidate, committed)...)
	violations = append(violations, validator.sectionConflicts(candidate, committed)...)
	violations = append(violations, validator.capacity(candidate)...)
	violations = append(violations, validator.availability(candidate)...)
	violations = append(violations, validator.roomType(candidate)...)

	return len(violations) == 0, violations
}

func (validator *constraintValidator) teacherConflicts(candidate ClassAssignment, committed []ClassAssignment) []Violation {
	var violations []Violation
	for _, existing := range committed {
		if validator.evaluator.SameTeacherSlot(existing, candidate) {
			violations = append(violations, Violation{
				Kind:    TeacherConflict,
				Message: fmt.Sprintf("Teacher conflict: %v is already scheduled at %v", candidate.Teacher.Name, candidate.TimeSlot),
			})
		}
	}
	return violations
}

func (validator *constraintValidator) roomConflicts(candidate ClassAssignment, committed []ClassAssignment) []Violation {
	var violations []Violation
	for _, existing := range committed {
		if validator.evaluator.SameRoomSlot(existing, candidate) {
			violations = append(violations, Violation{
				Kind:    RoomConflict,
				Message: fmt.Sprintf("Room conflict: %v is already occupied at %v", candidate.Room.Name, candidate.TimeSlot),
			})
		}
	}
	return violations
}

func (validator *constraintValidator) sectionConflicts(candidate ClassAssignment, committed []ClassAssignment) []Violation {
	var violations []Violation
	for _, existing := range committed {
		if validator.evaluator.SameSectionSlot(existing, candidate) {
			violations = append(violations, Violation{
				Kind:    SectionConflict,
				Message: fmt.Sprintf("Section conflict: %v already has a class at %v", candidate.Section.Name, candidate.TimeSlot),
			})
		}
	}
	return violations
}

func (validator *constraintValidator) capacity(candidate ClassAssignment) []Violation {
	if validator.evaluator.Fits(candidate.Section, candidate.Room) {
		return nil
	}
	return []Violation{{
		Kind: CapacityConflict,
		Message: fmt.Sprintf("Capacity conflict: Room %v (capacity: %d) is too small for section %v (students: %d)",
			candidate.Room.Name, candidate.Room.Capacity, candidate.Section.Name, candidate.Section.StudentCount),
	}}
}

func (validator *constraintValidator) availability(candidate ClassAssignment) []Violation {
	if validator.evaluator.TeacherAvailable(candidate.Teacher, candidate.TimeSlot) {
		return nil
	}
	return []Violation{{
		Kind:    AvailabilityConflict,
		Message: fmt.Sprintf("Availability conflict: %v is not available at %v", candidate.Teacher.Name, candidate.TimeSlot),
	}}
}

func (validator *constraintValidator) roomType(candidate ClassAssignment) []Violation {
	if validator.evaluator.Compatible(candidate.Course, candidate.Room) {
		return nil
	}
	return []Violation{{
		Kind: RoomTypeConflict,
		Message: fmt.Sprintf("Room type conflict: Course %v requires a lab but %v is a %v",
			candidate.Course.Name, candidate.Room.Name, candidate.Room.Type),
	}}
}
