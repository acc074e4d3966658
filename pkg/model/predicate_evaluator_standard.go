package model

type predicateEvaluatorStandard struct{}

func (evaluator predicateEvaluatorStandard) Fits(section *Section, room *Room) bool {
	return room.Capacity >= section.StudentCount
}

func (evaluator predicateEvaluatorStandard) TeacherAvailable(teacher *Teacher, slot TimeSlot) bool {
	return teacher.IsAvailable(slot)
}

func (evaluator predicateEvaluatorStandard) Compatible(course *Course, room *Room) bool {
	return course.Type != Lab || room.Type == LabRoom
}

func (evaluator predicateEvaluatorStandard) Suitable(course *Course, section *Section, room *Room) bool {
	return evaluator.Fits(section, room) && (room.Type == LabRoom) == (course.Type == Lab)
}

func (evaluator predicateEvaluatorStandard) SameTeacherSlot(assignment1, assignment2 ClassAssignment) bool {
	return assignment1.Teacher.ID == assignment2.Teacher.ID && assignment1.TimeSlot.Equal(assignment2.TimeSlot)
}

func (evaluator predicateEvaluatorStandard) SameRoomSlot(assignment1, assignment2 ClassAssignment) bool {
	return assignment1.Room.ID == assignment2.Room.ID && assignment1.TimeSlot.Equal(assignment2.TimeSlot)
}

func (evaluator predicateEvaluatorStandard) SameSectionSlot(assignment1, assignment2 ClassAssignment) bool {
	return assignment1.Section.ID == assignment2.Section.ID && assignment1.TimeSlot.Equal(assignment2.TimeSlot)
}
