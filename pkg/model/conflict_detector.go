package model

import (
	"fmt"
	"strings"
)

// SlotConflict records two assignments competing for the same resource at the same time slot
type SlotConflict struct {
	Resource string    `json:"resource"`
	TimeSlot string    `json:"time_slot"`
	Courses  [2]string `json:"courses"`
}

type CapacityIssue struct {
	Room         string `json:"room"`
	Capacity     int    `json:"capacity"`
	Section      string `json:"section"`
	StudentCount int    `json:"student_count"`
	TimeSlot     string `json:"time_slot"`
}

type AvailabilityIssue struct {
	Teacher  string `json:"teacher"`
	TimeSlot string `json:"time_slot"`
}

type RoomTypeIssue struct {
	Course       string   `json:"course"`
	Room         string   `json:"room"`
	RoomType     RoomType `json:"room_type"`
	RequiredType RoomType `json:"required_type"`
}

// ConflictReport is the categorized result of a full timetable audit
type ConflictReport struct {
	TeacherConflicts   []SlotConflict      `json:"teacher_conflicts"`
	RoomConflicts      []SlotConflict      `json:"room_conflicts"`
	SectionConflicts   []SlotConflict      `json:"section_conflicts"`
	CapacityIssues     []CapacityIssue     `json:"capacity_issues"`
	AvailabilityIssues []AvailabilityIssue `json:"availability_issues"`
	RoomTypeIssues     []RoomTypeIssue     `json:"room_type_issues"`
}

func (report ConflictReport) Count() int {
	return len(report.TeacherConflicts) +
		len(report.RoomConflicts) +
		len(report.SectionConflicts) +
		len(report.CapacityIssues) +
		len(report.AvailabilityIssues) +
		len(report.RoomTypeIssues)
}

func (report ConflictReport) Empty() bool {
	return report.Count() == 0
}

// FindAllConflicts audits a complete assignment list. It is independent from the ConstraintValidator:
// a single pass fills teacher, room and section occupancy maps and records every second assignment landing on an occupied (resource, slot) pair.
func FindAllConflicts(assignments []ClassAssignment) ConflictReport {
	evaluator := newPredicateEvaluator()
	report := ConflictReport{}

	//** Initialize occupancy
	teacherOccupancy := make(map[TeacherID]map[SlotKey]ClassAssignment)
	roomOccupancy := make(map[RoomID]map[SlotKey]ClassAssignment)
	sectionOccupancy := make(map[SectionID]map[SlotKey]ClassAssignment)

	for _, assignment := range assignments {
		key := assignment.TimeSlot.Key()
		slot := assignment.TimeSlot.String()

		//** Teacher occupancy
		if _, ok := teacherOccupancy[assignment.Teacher.ID]; !ok {
			teacherOccupancy[assignment.Teacher.ID] = make(map[SlotKey]ClassAssignment)
		}
		if previous, ok := teacherOccupancy[assignment.Teacher.ID][key]; ok {
			report.TeacherConflicts = append(report.TeacherConflicts, SlotConflict{
				Resource: assignment.Teacher.Name,
				TimeSlot: slot,
				Courses:  [2]string{previous.Course.Name, assignment.Course.Name},
			})
		}
		teacherOccupancy[assignment.Teacher.ID][key] = assignment

		//** Room occupancy
		if _, ok := roomOccupancy[assignment.Room.ID]; !ok {
			roomOccupancy[assignment.Room.ID] = make(map[SlotKey]ClassAssignment)
		}
		if previous, ok := roomOccupancy[assignment.Room.ID][key]; ok {
			report.RoomConflicts = append(report.RoomConflicts, SlotConflict{
				Resource: assignment.Room.Name,
				TimeSlot: slot,
				Courses:  [2]string{previous.Course.Name, assignment.Course.Name},
			})
		}
		roomOccupancy[assignment.Room.ID][key] = assignment

		//** Section occupancy
		if _, ok := sectionOccupancy[assignment.Section.ID]; !ok {
			sectionOccupancy[assignment.Section.ID] = make(map[SlotKey]ClassAssignment)
		}
		if previous, ok := sectionOccupancy[assignment.Section.ID][key]; ok {
			report.SectionConflicts = append(report.SectionConflicts, SlotConflict{
				Resource: assignment.Section.Name,
				TimeSlot: slot,
				Courses:  [2]string{previous.Course.Name, assignment.Course.Name},
			})
		}
		sectionOccupancy[assignment.Section.ID][key] = assignment

		//** Per-assignment rules
		if !evaluator.Fits(assignment.Section, assignment.Room) {
			report.CapacityIssues = append(report.CapacityIssues, CapacityIssue{
				Room:         assignment.Room.Name,
				Capacity:     assignment.Room.Capacity,
				Section:      assignment.Section.Name,
				StudentCount: assignment.Section.StudentCount,
				TimeSlot:     slot,
			})
		}
		if !evaluator.TeacherAvailable(assignment.Teacher, assignment.TimeSlot) {
			report.AvailabilityIssues = append(report.AvailabilityIssues, AvailabilityIssue{
				Teacher:  assignment.Teacher.Name,
				TimeSlot: slot,
			})
		}
		if !evaluator.Compatible(assignment.Course, assignment.Room) {
			report.RoomTypeIssues = append(report.RoomTypeIssues, RoomTypeIssue{
				Course:       assignment.Course.Name,
				Room:         assignment.Room.Name,
				RoomType:     assignment.Room.Type,
				RequiredType: LabRoom,
			})
		}
	}

	return report
}

func CountConflicts(report ConflictReport) int {
	return report.Count()
}

// FormatConflictReport renders the report for humans, one block per non-empty category
func FormatConflictReport(report ConflictReport) string {
	var builder strings.Builder
	total := report.Count()

	builder.WriteString("\n=== Conflict Detection Report ===\n")
	fmt.Fprintf(&builder, "Total conflicts found: %d\n", total)

	writeSlotConflicts := func(title, verb string, conflicts []SlotConflict) {
		if len(conflicts) == 0 {
			return
		}
		fmt.Fprintf(&builder, "\n%v (%d):\n", title, len(conflicts))
		for _, conflict := range conflicts {
			fmt.Fprintf(&builder, "  - %v %v at %v\n", conflict.Resource, verb, conflict.TimeSlot)
			fmt.Fprintf(&builder, "    Courses: %v\n", strings.Join(conflict.Courses[:], ", "))
		}
	}

	writeSlotConflicts("Teacher Conflicts", "has overlapping classes", report.TeacherConflicts)
	writeSlotConflicts("Room Conflicts", "is double-booked", report.RoomConflicts)
	writeSlotConflicts("Section Conflicts", "has overlapping classes", report.SectionConflicts)

	if len(report.CapacityIssues) > 0 {
		fmt.Fprintf(&builder, "\nCapacity Issues (%d):\n", len(report.CapacityIssues))
		for _, issue := range report.CapacityIssues {
			fmt.Fprintf(&builder, "  - Room %v (capacity: %d) is too small for section %v (%d students)\n",
				issue.Room, issue.Capacity, issue.Section, issue.StudentCount)
		}
	}

	if len(report.AvailabilityIssues) > 0 {
		fmt.Fprintf(&builder, "\nAvailability Issues (%d):\n", len(report.AvailabilityIssues))
		for _, issue := range report.AvailabilityIssues {
			fmt.Fprintf(&builder, "  - %v is not available at %v\n", issue.Teacher, issue.TimeSlot)
		}
	}

	if len(report.RoomTypeIssues) > 0 {
		fmt.Fprintf(&builder, "\nRoom Type Issues (%d):\n", len(report.RoomTypeIssues))
		for _, issue := range report.RoomTypeIssues {
			fmt.Fprintf(&builder, "  - Course %v requires %v but assigned %v (%v)\n",
				issue.Course, issue.RequiredType, issue.Room, issue.RoomType)
		}
	}

	if total == 0 {
		builder.WriteString("No conflicts detected! Timetable is valid.\n")
	}

	return builder.String()
}
