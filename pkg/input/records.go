package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/limaJavier/timetabling/pkg/model"
)

type CourseRecord struct {
	CourseID     string `mapstructure:"course_id" csv:"course_id" validate:"required"`
	Name         string `mapstructure:"name" csv:"name" validate:"required"`
	Department   string `mapstructure:"department" csv:"department"`
	HoursPerWeek int    `mapstructure:"hours_per_week" csv:"hours_per_week" validate:"min=1"`
	CourseType   string `mapstructure:"course_type" csv:"course_type" validate:"omitempty,oneof=theory lab"`
}

type TeacherRecord struct {
	TeacherID        string     `mapstructure:"teacher_id" csv:"teacher_id" validate:"required"`
	Name             string     `mapstructure:"name" csv:"name" validate:"required"`
	Department       string     `mapstructure:"department" csv:"department"`
	Specializations  StringList `mapstructure:"specializations" csv:"specializations"`
	UnavailableSlots SlotList   `mapstructure:"unavailable_slots" csv:"unavailable_slots" validate:"dive"`
}

type RoomRecord struct {
	RoomID   string `mapstructure:"room_id" csv:"room_id" validate:"required"`
	Name     string `mapstructure:"name" csv:"name" validate:"required"`
	Capacity int    `mapstructure:"capacity" csv:"capacity" validate:"min=1"`
	RoomType string `mapstructure:"room_type" csv:"room_type" validate:"omitempty,oneof=classroom lab"`
}

type SectionRecord struct {
	SectionID    string `mapstructure:"section_id" csv:"section_id" validate:"required"`
	Name         string `mapstructure:"name" csv:"name" validate:"required"`
	Department   string `mapstructure:"department" csv:"department"`
	Semester     int    `mapstructure:"semester" csv:"semester"`
	StudentCount int    `mapstructure:"student_count" csv:"student_count" validate:"min=1"`
}

type AssignmentRecord struct {
	CourseID  string `mapstructure:"course_id" csv:"course_id" validate:"required"`
	SectionID string `mapstructure:"section_id" csv:"section_id" validate:"required"`
	TeacherID string `mapstructure:"teacher_id" csv:"teacher_id" validate:"required"`
}

type SlotRecord struct {
	Day       string `mapstructure:"day" validate:"required,weekday"`
	Period    int    `mapstructure:"period" validate:"min=1"`
	StartTime string `mapstructure:"start_time"`
	EndTime   string `mapstructure:"end_time"`
}

// StringList is a list in JSON and a ';' separated cell in CSV
type StringList []string

func (list *StringList) UnmarshalCSV(cell string) error {
	*list = nil
	for _, item := range strings.Split(cell, ";") {
		if item = strings.TrimSpace(item); item != "" {
			*list = append(*list, item)
		}
	}
	return nil
}

func (list StringList) MarshalCSV() (string, error) {
	return strings.Join(list, ";"), nil
}

// SlotList is a list of objects in JSON and a cell such as "Monday:1;Friday:6" in CSV
type SlotList []SlotRecord

func (list *SlotList) UnmarshalCSV(cell string) error {
	*list = nil
	for _, item := range strings.Split(cell, ";") {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		day, period, found := strings.Cut(item, ":")
		if !found {
			return fmt.Errorf("unavailable slot %q is not formatted as Day:Period", item)
		}
		number, err := strconv.Atoi(strings.TrimSpace(period))
		if err != nil {
			return fmt.Errorf("unavailable slot %q has an invalid period: %w", item, err)
		}
		*list = append(*list, SlotRecord{Day: strings.TrimSpace(day), Period: number})
	}
	return nil
}

func (list SlotList) MarshalCSV() (string, error) {
	items := make([]string, 0, len(list))
	for _, slot := range list {
		items = append(items, fmt.Sprintf("%v:%d", slot.Day, slot.Period))
	}
	return strings.Join(items, ";"), nil
}

func (record CourseRecord) toModel() *model.Course {
	courseType := model.Theory
	if record.CourseType != "" {
		courseType = model.CourseType(record.CourseType)
	}
	return &model.Course{
		ID:           model.CourseID(record.CourseID),
		Name:         record.Name,
		Department:   record.Department,
		HoursPerWeek: record.HoursPerWeek,
		Type:         courseType,
	}
}

func (record TeacherRecord) toModel() (*model.Teacher, error) {
	teacher := model.NewTeacher(model.TeacherID(record.TeacherID), record.Name, record.Department, record.Specializations...)
	for _, slot := range record.UnavailableSlots {
		day, err := model.ParseWeekday(slot.Day)
		if err != nil {
			return nil, fmt.Errorf("teacher %v: %w", record.TeacherID, err)
		}
		teacher.AddUnavailableSlot(model.NewTimeSlot(day, slot.Period, slot.StartTime, slot.EndTime))
	}
	return teacher, nil
}

func (record RoomRecord) toModel() *model.Room {
	roomType := model.Classroom
	if record.RoomType != "" {
		roomType = model.RoomType(record.RoomType)
	}
	return &model.Room{
		ID:       model.RoomID(record.RoomID),
		Name:     record.Name,
		Capacity: record.Capacity,
		Type:     roomType,
	}
}

func (record SectionRecord) toModel() *model.Section {
	return &model.Section{
		ID:           model.SectionID(record.SectionID),
		Name:         record.Name,
		Department:   record.Department,
		Semester:     record.Semester,
		StudentCount: record.StudentCount,
	}
}
