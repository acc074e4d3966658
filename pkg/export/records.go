package export

import (
	"cmp"
	"slices"

	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/samber/lo"
)

// Record is the flat, id-carrying form of a ClassAssignment used by every export format
type Record struct {
	Day         string `json:"day" csv:"Day"`
	Period      int    `json:"period" csv:"Period"`
	StartTime   string `json:"start_time" csv:"Start Time"`
	EndTime     string `json:"end_time" csv:"End Time"`
	CourseID    string `json:"course_id" csv:"Course ID"`
	CourseName  string `json:"course_name" csv:"Course Name"`
	SectionID   string `json:"section_id" csv:"Section ID"`
	SectionName string `json:"section_name" csv:"Section"`
	TeacherID   string `json:"teacher_id" csv:"Teacher ID"`
	TeacherName string `json:"teacher_name" csv:"Teacher"`
	RoomID      string `json:"room_id" csv:"Room ID"`
	RoomName    string `json:"room_name" csv:"Room"`
}

func NewRecord(assignment model.ClassAssignment) Record {
	return Record{
		Day:         assignment.TimeSlot.Day.String(),
		Period:      assignment.TimeSlot.Period,
		StartTime:   assignment.TimeSlot.Start,
		EndTime:     assignment.TimeSlot.End,
		CourseID:    string(assignment.Course.ID),
		CourseName:  assignment.Course.Name,
		SectionID:   string(assignment.Section.ID),
		SectionName: assignment.Section.Name,
		TeacherID:   string(assignment.Teacher.ID),
		TeacherName: assignment.Teacher.Name,
		RoomID:      string(assignment.Room.ID),
		RoomName:    assignment.Room.Name,
	}
}

func Records(assignments []model.ClassAssignment) []Record {
	return lo.Map(assignments, func(assignment model.ClassAssignment, _ int) Record {
		return NewRecord(assignment)
	})
}

// chronological returns a copy of assignments ordered by weekday then period, ties keep their relative order
func chronological(assignments []model.ClassAssignment) []model.ClassAssignment {
	sorted := slices.Clone(assignments)
	slices.SortStableFunc(sorted, func(a, b model.ClassAssignment) int {
		return cmp.Or(
			cmp.Compare(a.TimeSlot.Day, b.TimeSlot.Day),
			cmp.Compare(a.TimeSlot.Period, b.TimeSlot.Period),
		)
	})
	return sorted
}
