package model

type predicateEvaluator interface {
	// Checks whether the section's size is smaller than or equal to the room's capacity (i.e. the section fits in the room)
	Fits(section *Section, room *Room) bool

	// Checks whether the teacher is available at the given time slot
	TeacherAvailable(teacher *Teacher, slot TimeSlot) bool

	// Checks whether the room satisfies the course's room requirement (lab courses need a lab)
	Compatible(course *Course, room *Room) bool

	// Checks whether the room is a candidate for the course-section pair: it fits, and it is a lab if and only if the course is a lab
	Suitable(course *Course, section *Section, room *Room) bool

	// Checks whether two assignments compete for the same teacher at the same time slot
	SameTeacherSlot(assignment1, assignment2 ClassAssignment) bool

	// Checks whether two assignments compete for the same room at the same time slot
	SameRoomSlot(assignment1, assignment2 ClassAssignment) bool

	// Checks whether two assignments compete for the same section at the same time slot
	SameSectionSlot(assignment1, assignment2 ClassAssignment) bool
}

func newPredicateEvaluator() predicateEvaluator {
	return predicateEvaluatorStandard{}
}
