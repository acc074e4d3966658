package input

import (
	"errors"

	"github.com/limaJavier/timetabling/pkg/model"
)

// Dataset gathers the entity collections and the mapping of one institution
type Dataset struct {
	Courses           []*model.Course
	Teachers          []*model.Teacher
	Rooms             []*model.Room
	Sections          []*model.Section
	CourseAssignments model.CourseAssignments
}

// Paths locates the data files of a Dataset, each file may be JSON or CSV
type Paths struct {
	Courses     string
	Teachers    string
	Rooms       string
	Sections    string
	Assignments string
}

var ErrMissingDataFiles = errors.New("all data files must be specified: courses, teachers, rooms, sections and assignments")

func (paths Paths) Complete() bool {
	return paths.Courses != "" && paths.Teachers != "" && paths.Rooms != "" && paths.Sections != "" && paths.Assignments != ""
}

func LoadDataset(paths Paths) (*Dataset, error) {
	if !paths.Complete() {
		return nil, ErrMissingDataFiles
	}

	var (
		dataset Dataset
		err     error
	)
	if dataset.Courses, err = LoadCourses(paths.Courses); err != nil {
		return nil, err
	}
	if dataset.Teachers, err = LoadTeachers(paths.Teachers); err != nil {
		return nil, err
	}
	if dataset.Rooms, err = LoadRooms(paths.Rooms); err != nil {
		return nil, err
	}
	if dataset.Sections, err = LoadSections(paths.Sections); err != nil {
		return nil, err
	}
	if dataset.CourseAssignments, err = LoadCourseAssignments(paths.Assignments); err != nil {
		return nil, err
	}
	return &dataset, nil
}

// Input binds the dataset to a slot universe
func (dataset *Dataset) Input(slots []model.TimeSlot) model.Input {
	return model.Input{
		Courses:           dataset.Courses,
		Sections:          dataset.Sections,
		Teachers:          dataset.Teachers,
		Rooms:             dataset.Rooms,
		CourseAssignments: dataset.CourseAssignments,
		Slots:             slots,
	}
}

// Sample returns a small computer science, mathematics and physics faculty used for demonstrations
func Sample() *Dataset {
	courses := []*model.Course{
		{ID: "CS101", Name: "Data Structures", Department: "Computer Science", HoursPerWeek: 3, Type: model.Theory},
		{ID: "CS102", Name: "Algorithms", Department: "Computer Science", HoursPerWeek: 3, Type: model.Theory},
		{ID: "CS103", Name: "Database Systems", Department: "Computer Science", HoursPerWeek: 3, Type: model.Theory},
		{ID: "CS104", Name: "Programming Lab", Department: "Computer Science", HoursPerWeek: 2, Type: model.Lab},
		{ID: "MA101", Name: "Calculus I", Department: "Mathematics", HoursPerWeek: 4, Type: model.Theory},
		{ID: "MA102", Name: "Linear Algebra", Department: "Mathematics", HoursPerWeek: 3, Type: model.Theory},
		{ID: "PH101", Name: "Physics I", Department: "Physics", HoursPerWeek: 3, Type: model.Theory},
		{ID: "PH102", Name: "Physics Lab", Department: "Physics", HoursPerWeek: 2, Type: model.Lab},
	}

	teachers := []*model.Teacher{
		model.NewTeacher("T001", "Dr. Sharma", "Computer Science", "Data Structures", "Algorithms"),
		model.NewTeacher("T002", "Dr. Patel", "Computer Science", "Database", "Programming"),
		model.NewTeacher("T003", "Dr. Kumar", "Computer Science", "Programming", "Software Engineering"),
		model.NewTeacher("T004", "Dr. Singh", "Mathematics", "Calculus", "Algebra"),
		model.NewTeacher("T005", "Dr. Gupta", "Mathematics", "Linear Algebra", "Statistics"),
		model.NewTeacher("T006", "Dr. Verma", "Physics", "Mechanics", "Thermodynamics"),
	}
	// Faculty meetings
	teachers[0].AddUnavailableSlot(model.NewTimeSlot(model.Monday, 1, "09:00", "10:00"))
	teachers[0].AddUnavailableSlot(model.NewTimeSlot(model.Friday, 6, "15:00", "16:00"))

	rooms := []*model.Room{
		{ID: "R001", Name: "Room 101", Capacity: 60, Type: model.Classroom},
		{ID: "R002", Name: "Room 102", Capacity: 60, Type: model.Classroom},
		{ID: "R003", Name: "Room 103", Capacity: 50, Type: model.Classroom},
		{ID: "R004", Name: "Room 104", Capacity: 50, Type: model.Classroom},
		{ID: "R005", Name: "Room 105", Capacity: 40, Type: model.Classroom},
		{ID: "L001", Name: "Lab 201", Capacity: 60, Type: model.LabRoom},
		{ID: "L002", Name: "Lab 202", Capacity: 60, Type: model.LabRoom},
	}

	sections := []*model.Section{
		{ID: "S001", Name: "CS-A", Department: "Computer Science", Semester: 3, StudentCount: 55},
		{ID: "S002", Name: "CS-B", Department: "Computer Science", Semester: 3, StudentCount: 50},
		{ID: "S003", Name: "MA-A", Department: "Mathematics", Semester: 3, StudentCount: 45},
	}

	assignments := model.CourseAssignments{
		{Course: "CS101", Section: "S001", Teacher: "T001"},
		{Course: "CS101", Section: "S002", Teacher: "T001"},
		{Course: "CS102", Section: "S001", Teacher: "T002"},
		{Course: "CS102", Section: "S002", Teacher: "T002"},
		{Course: "CS103", Section: "S001", Teacher: "T003"},
		{Course: "CS103", Section: "S002", Teacher: "T003"},
		{Course: "CS104", Section: "S001", Teacher: "T002"},
		{Course: "CS104", Section: "S002", Teacher: "T003"},
		{Course: "MA101", Section: "S001", Teacher: "T004"},
		{Course: "MA101", Section: "S002", Teacher: "T004"},
		{Course: "MA101", Section: "S003", Teacher: "T004"},
		{Course: "MA102", Section: "S003", Teacher: "T005"},
		{Course: "PH101", Section: "S001", Teacher: "T006"},
		{Course: "PH102", Section: "S001", Teacher: "T006"},
	}

	return &Dataset{
		Courses:           courses,
		Teachers:          teachers,
		Rooms:             rooms,
		Sections:          sections,
		CourseAssignments: assignments,
	}
}
