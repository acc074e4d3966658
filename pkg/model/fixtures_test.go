package model

func weekSlots(days []Weekday, periods int) []TimeSlot {
	slots := make([]TimeSlot, 0, len(days)*periods)
	for _, day := range days {
		for period := 1; period <= periods; period++ {
			slots = append(slots, NewTimeSlot(day, period, "", ""))
		}
	}
	return slots
}

// smallInput is a feasible instance: 7 requests over 6 slots, one teacher blocked on Monday period 1
func smallInput() Input {
	teacher1 := NewTeacher("T1", "Ada", "CS")
	teacher1.AddUnavailableSlot(NewTimeSlot(Monday, 1, "", ""))
	teacher2 := NewTeacher("T2", "Grace", "MA")

	return Input{
		Courses: []*Course{
			{ID: "C1", Name: "Algorithms", Department: "CS", HoursPerWeek: 2, Type: Theory},
			{ID: "C2", Name: "Calculus", Department: "MA", HoursPerWeek: 1, Type: Theory},
			{ID: "LAB", Name: "Programming Lab", Department: "CS", HoursPerWeek: 2, Type: Lab},
		},
		Sections: []*Section{
			{ID: "S1", Name: "CS-A", Department: "CS", Semester: 1, StudentCount: 30},
			{ID: "S2", Name: "MA-A", Department: "MA", Semester: 1, StudentCount: 50},
		},
		Teachers: []*Teacher{teacher1, teacher2},
		Rooms: []*Room{
			{ID: "R1", Name: "Room 1", Capacity: 40, Type: Classroom},
			{ID: "R2", Name: "Room 2", Capacity: 60, Type: Classroom},
			{ID: "L1", Name: "Lab 1", Capacity: 40, Type: LabRoom},
		},
		CourseAssignments: CourseAssignments{
			{Course: "C1", Section: "S1", Teacher: "T1"},
			{Course: "C2", Section: "S2", Teacher: "T2"},
			{Course: "LAB", Section: "S1", Teacher: "T2"},
			{Course: "C1", Section: "S2", Teacher: "T1"},
		},
		Slots: weekSlots([]Weekday{Monday, Tuesday}, 3),
	}
}

// singleSlotInput is the minimal instance: one one-hour course, a room that fits exactly and a single slot
func singleSlotInput() Input {
	return Input{
		Courses:           []*Course{{ID: "C1", Name: "Algorithms", Department: "CS", HoursPerWeek: 1, Type: Theory}},
		Sections:          []*Section{{ID: "S1", Name: "CS-A", Department: "CS", Semester: 1, StudentCount: 10}},
		Teachers:          []*Teacher{NewTeacher("T1", "Ada", "CS")},
		Rooms:             []*Room{{ID: "R1", Name: "Room 1", Capacity: 10, Type: Classroom}},
		CourseAssignments: CourseAssignments{{Course: "C1", Section: "S1", Teacher: "T1"}},
		Slots:             []TimeSlot{NewTimeSlot(Monday, 1, "09:00", "10:00")},
	}
}

func assignment(input Input, course CourseID, section SectionID, teacher TeacherID, room RoomID, slot TimeSlot) ClassAssignment {
	result := ClassAssignment{TimeSlot: slot}
	for _, c := range input.Courses {
		if c.ID == course {
			result.Course = c
		}
	}
	for _, s := range input.Sections {
		if s.ID == section {
			result.Section = s
		}
	}
	for _, t := range input.Teachers {
		if t.ID == teacher {
			result.Teacher = t
		}
	}
	for _, r := range input.Rooms {
		if r.ID == room {
			result.Room = r
		}
	}
	return result
}

// smallRoomTrapInput can only be solved with one of the small sections in the large room.
// Sections are prioritized A, B, C, D by department and the tightest room is always tried first,
// so A and B both start in the small room and leave nothing for C and D on Monday period 1.
func smallRoomTrapInput() Input {
	teacherC := NewTeacher("TC", "Barbara", "C")
	teacherC.AddUnavailableSlot(NewTimeSlot(Monday, 2, "", ""))
	teacherD := NewTeacher("TD", "Edsger", "D")
	teacherD.AddUnavailableSlot(NewTimeSlot(Monday, 2, "", ""))

	return Input{
		Courses: []*Course{{ID: "C1", Name: "Algorithms", Department: "CS", HoursPerWeek: 1, Type: Theory}},
		Sections: []*Section{
			{ID: "SA", Name: "A-1", Department: "A", Semester: 1, StudentCount: 10},
			{ID: "SB", Name: "B-1", Department: "B", Semester: 1, StudentCount: 10},
			{ID: "SC", Name: "C-1", Department: "C", Semester: 1, StudentCount: 10},
			{ID: "SD", Name: "D-1", Department: "D", Semester: 1, StudentCount: 50},
		},
		Teachers: []*Teacher{NewTeacher("TA", "Ada", "A"), NewTeacher("TB", "Grace", "B"), teacherC, teacherD},
		Rooms: []*Room{
			{ID: "SMALL", Name: "Small", Capacity: 10, Type: Classroom},
			{ID: "BIG", Name: "Big", Capacity: 50, Type: Classroom},
		},
		CourseAssignments: CourseAssignments{
			{Course: "C1", Section: "SA", Teacher: "TA"},
			{Course: "C1", Section: "SB", Teacher: "TB"},
			{Course: "C1", Section: "SC", Teacher: "TC"},
			{Course: "C1", Section: "SD", Teacher: "TD"},
		},
		Slots: weekSlots([]Weekday{Monday}, 2),
	}
}
