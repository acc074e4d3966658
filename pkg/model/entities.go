package model

import (
	"fmt"
	"slices"
	"strings"
)

type (
	CourseID  string
	SectionID string
	TeacherID string
	RoomID    string
)

type CourseType string

const (
	Theory CourseType = "theory"
	Lab    CourseType = "lab"
)

type RoomType string

const (
	Classroom RoomType = "classroom"
	LabRoom   RoomType = "lab"
)

type Weekday uint8

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (day Weekday) String() string {
	if int(day) < len(weekdayNames) {
		return weekdayNames[day]
	}
	return fmt.Sprintf("Weekday(%d)", day)
}

// ParseWeekday accepts full english day names regardless of case
func ParseWeekday(name string) (Weekday, error) {
	for i, dayName := range weekdayNames {
		if strings.EqualFold(dayName, strings.TrimSpace(name)) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %q", name)
}

// SlotKey is the identity of a TimeSlot, display times are not part of it
type SlotKey struct {
	Day    Weekday
	Period int
}

func (key SlotKey) String() string {
	return fmt.Sprintf("%v Period %d", key.Day, key.Period)
}

func compareSlotKeys(a, b SlotKey) int {
	if a.Day != b.Day {
		return int(a.Day) - int(b.Day)
	}
	return a.Period - b.Period
}

type TimeSlot struct {
	Day    Weekday
	Period int
	Start  string
	End    string
}

func NewTimeSlot(day Weekday, period int, start, end string) TimeSlot {
	return TimeSlot{Day: day, Period: period, Start: start, End: end}
}

func (slot TimeSlot) Key() SlotKey {
	return SlotKey{Day: slot.Day, Period: slot.Period}
}

func (slot TimeSlot) Equal(other TimeSlot) bool {
	return slot.Key() == other.Key()
}

func (slot TimeSlot) String() string {
	return fmt.Sprintf("%v Period %d (%v-%v)", slot.Day, slot.Period, slot.Start, slot.End)
}

// CompareTimeSlots orders slots by weekday and then by period
func CompareTimeSlots(a, b TimeSlot) int {
	return compareSlotKeys(a.Key(), b.Key())
}

type Room struct {
	ID       RoomID
	Name     string
	Capacity int
	Type     RoomType
}

func (room *Room) Key() RoomID { return room.ID }

func (room *Room) String() string {
	return fmt.Sprintf("%v (Cap: %d)", room.Name, room.Capacity)
}

type Teacher struct {
	ID              TeacherID
	Name            string
	Department      string
	Specializations []string
	unavailable     map[SlotKey]bool
}

func NewTeacher(id TeacherID, name, department string, specializations ...string) *Teacher {
	return &Teacher{
		ID:              id,
		Name:            name,
		Department:      department,
		Specializations: specializations,
		unavailable:     make(map[SlotKey]bool),
	}
}

func (teacher *Teacher) Key() TeacherID { return teacher.ID }

// AddUnavailableSlot must only be called before the teacher is handed to a timetabler
func (teacher *Teacher) AddUnavailableSlot(slot TimeSlot) {
	if teacher.unavailable == nil {
		teacher.unavailable = make(map[SlotKey]bool)
	}
	teacher.unavailable[slot.Key()] = true
}

func (teacher *Teacher) IsAvailable(slot TimeSlot) bool {
	return !teacher.unavailable[slot.Key()]
}

// UnavailableSlots returns the blocked slots ordered by weekday and period
func (teacher *Teacher) UnavailableSlots() []SlotKey {
	keys := make([]SlotKey, 0, len(teacher.unavailable))
	for key := range teacher.unavailable {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, compareSlotKeys)
	return keys
}

func (teacher *Teacher) String() string {
	return fmt.Sprintf("%v (%v)", teacher.Name, teacher.Department)
}

type Course struct {
	ID           CourseID
	Name         string
	Department   string
	HoursPerWeek int
	Type         CourseType
}

func (course *Course) Key() CourseID { return course.ID }

func (course *Course) String() string {
	return fmt.Sprintf("%v (%v)", course.Name, course.ID)
}

type Section struct {
	ID           SectionID
	Name         string
	Department   string
	Semester     int
	StudentCount int
}

func (section *Section) Key() SectionID { return section.ID }

func (section *Section) String() string {
	return fmt.Sprintf("%v (Sem %d)", section.Name, section.Semester)
}

// ClassAssignment is a committed scheduling decision, its identity is the tuple itself
type ClassAssignment struct {
	Course   *Course
	Section  *Section
	Teacher  *Teacher
	Room     *Room
	TimeSlot TimeSlot
}

func (assignment ClassAssignment) Equal(other ClassAssignment) bool {
	return assignment.Course.ID == other.Course.ID &&
		assignment.Section.ID == other.Section.ID &&
		assignment.Teacher.ID == other.Teacher.ID &&
		assignment.Room.ID == other.Room.ID &&
		assignment.TimeSlot.Equal(other.TimeSlot)
}

func (assignment ClassAssignment) String() string {
	return fmt.Sprintf("%v | %v | %v | %v | %v",
		assignment.Course.Name,
		assignment.Section.Name,
		assignment.Teacher.Name,
		assignment.Room.Name,
		assignment.TimeSlot,
	)
}

// ScheduleRequest is one of the HoursPerWeek weekly occurrences of a course-section pairing
type ScheduleRequest struct {
	Course   *Course
	Section  *Section
	Teacher  *Teacher
	Instance int // 1-based
}

func (request ScheduleRequest) String() string {
	return fmt.Sprintf("%v~%v~%v #%d", request.Course.ID, request.Section.ID, request.Teacher.ID, request.Instance)
}

type CourseSectionKey struct {
	Course  CourseID
	Section SectionID
}

type CourseAssignment struct {
	Course  CourseID
	Section SectionID
	Teacher TeacherID
}

func (entry CourseAssignment) Key() CourseSectionKey {
	return CourseSectionKey{Course: entry.Course, Section: entry.Section}
}

// CourseAssignments keeps mapping entries in insertion order so that generation is reproducible
type CourseAssignments []CourseAssignment

// Set behaves like a map assignment: an existing pair keeps its position and takes the new teacher
func (assignments *CourseAssignments) Set(course CourseID, section SectionID, teacher TeacherID) {
	key := CourseSectionKey{Course: course, Section: section}
	for i, entry := range *assignments {
		if entry.Key() == key {
			(*assignments)[i].Teacher = teacher
			return
		}
	}
	*assignments = append(*assignments, CourseAssignment{Course: course, Section: section, Teacher: teacher})
}

func (assignments CourseAssignments) Lookup(course CourseID, section SectionID) (TeacherID, bool) {
	key := CourseSectionKey{Course: course, Section: section}
	for _, entry := range assignments {
		if entry.Key() == key {
			return entry.Teacher, true
		}
	}
	return "", false
}

// Input gathers everything a Timetabler needs for a single generation run
type Input struct {
	Courses           []*Course
	Sections          []*Section
	Teachers          []*Teacher
	Rooms             []*Room
	CourseAssignments CourseAssignments
	Slots             []TimeSlot
}
