package input

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/limaJavier/timetabling/pkg/export"
	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, directory, name, content string) string {
	path := filepath.Join(directory, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func seeded(value uint64) model.Timetabler {
	return model.NewBacktrackingTimetabler(model.DefaultMaxAttempts, &value, nil)
}

func weekSlots() []model.TimeSlot {
	times := [][2]string{{"09:00", "10:00"}, {"10:00", "11:00"}, {"11:00", "12:00"}, {"12:00", "13:00"}, {"14:00", "15:00"}, {"15:00", "16:00"}}
	slots := make([]model.TimeSlot, 0, 30)
	for day := model.Monday; day <= model.Friday; day++ {
		for period, time := range times {
			slots = append(slots, model.NewTimeSlot(day, period+1, time[0], time[1]))
		}
	}
	return slots
}

func TestLoadJSON(t *testing.T) {
	//** Arrange
	directory := t.TempDir()
	paths := Paths{
		Courses: writeFile(t, directory, "courses.json", `[
			{"course_id": "CS101", "name": "Data Structures", "department": "CS", "hours_per_week": 3},
			{"course_id": "CS104", "name": "Programming Lab", "department": "CS", "hours_per_week": 2, "course_type": "lab"}
		]`),
		Teachers: writeFile(t, directory, "teachers.json", `[
			{"teacher_id": "T001", "name": "Dr. Sharma", "department": "CS", "specializations": ["Algorithms"],
			 "unavailable_slots": [{"day": "Monday", "period": 1, "start_time": "09:00", "end_time": "10:00"}, {"day": "friday", "period": 6}]}
		]`),
		Rooms: writeFile(t, directory, "rooms.json", `[
			{"room_id": "R001", "name": "Room 101", "capacity": 60},
			{"room_id": "L001", "name": "Lab 201", "capacity": 60, "room_type": "lab"}
		]`),
		Sections: writeFile(t, directory, "sections.json", `[
			{"section_id": "S001", "name": "CS-A", "department": "CS", "semester": 3, "student_count": 55}
		]`),
		Assignments: writeFile(t, directory, "assignments.json", `[
			{"course_id": "CS101", "section_id": "S001", "teacher_id": "T001"},
			{"course_id": "CS104", "section_id": "S001", "teacher_id": "T002"},
			{"course_id": "CS101", "section_id": "S001", "teacher_id": "T003"}
		]`),
	}

	//** Act
	dataset, err := LoadDataset(paths)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, model.Theory, dataset.Courses[0].Type)
	assert.Equal(t, model.Lab, dataset.Courses[1].Type)
	assert.Equal(t, model.Classroom, dataset.Rooms[0].Type)
	assert.Equal(t, model.LabRoom, dataset.Rooms[1].Type)
	assert.Equal(t, 55, dataset.Sections[0].StudentCount)

	teacher := dataset.Teachers[0]
	assert.Equal(t, []string{"Algorithms"}, teacher.Specializations)
	assert.Equal(t, []model.SlotKey{{Day: model.Monday, Period: 1}, {Day: model.Friday, Period: 6}}, teacher.UnavailableSlots())

	assert.Equal(t, model.CourseAssignments{
		{Course: "CS101", Section: "S001", Teacher: "T003"},
		{Course: "CS104", Section: "S001", Teacher: "T002"},
	}, dataset.CourseAssignments)
}

func TestLoadCSV(t *testing.T) {
	//** Arrange
	directory := t.TempDir()
	courses := writeFile(t, directory, "courses.csv", "course_id,name,department,hours_per_week,course_type\nMA101,Calculus I,Mathematics,4,\nPH102,Physics Lab,Physics,2,lab\n")
	teachers := writeFile(t, directory, "teachers.csv", "teacher_id,name,department,specializations,unavailable_slots\nT001,Dr. Sharma,CS,Data Structures;Algorithms,Monday:1;Friday:6\nT004,Dr. Singh,Mathematics,,\n")

	//** Act
	loadedCourses, err := LoadCourses(courses)
	require.NoError(t, err)
	loadedTeachers, err := LoadTeachers(teachers)
	require.NoError(t, err)

	//** Assert
	require.Len(t, loadedCourses, 2)
	assert.Equal(t, model.Theory, loadedCourses[0].Type)
	assert.Equal(t, 4, loadedCourses[0].HoursPerWeek)
	assert.Equal(t, model.Lab, loadedCourses[1].Type)

	require.Len(t, loadedTeachers, 2)
	assert.Equal(t, []string{"Data Structures", "Algorithms"}, loadedTeachers[0].Specializations)
	assert.False(t, loadedTeachers[0].IsAvailable(model.NewTimeSlot(model.Friday, 6, "", "")))
	assert.True(t, loadedTeachers[0].IsAvailable(model.NewTimeSlot(model.Friday, 5, "", "")))
	assert.Empty(t, loadedTeachers[1].Specializations)
	assert.Empty(t, loadedTeachers[1].UnavailableSlots())
}

func TestLoadInvalid(t *testing.T) {
	directory := t.TempDir()
	scenarios := map[string]func() error{
		"missing required key": func() error {
			_, err := LoadCourses(writeFile(t, directory, "missing.json", `[{"course_id": "C1", "name": "A", "department": "CS"}]`))
			return err
		},
		"unknown course type": func() error {
			_, err := LoadCourses(writeFile(t, directory, "type.json", `[{"course_id": "C1", "name": "A", "department": "CS", "hours_per_week": 1, "course_type": "seminar"}]`))
			return err
		},
		"negative capacity": func() error {
			_, err := LoadRooms(writeFile(t, directory, "rooms.json", `[{"room_id": "R1", "name": "A", "capacity": -1}]`))
			return err
		},
		"zero capacity": func() error {
			_, err := LoadRooms(writeFile(t, directory, "empty_rooms.json", `[{"room_id": "R1", "name": "A", "capacity": 0}]`))
			return err
		},
		"zero capacity csv": func() error {
			_, err := LoadRooms(writeFile(t, directory, "empty_rooms.csv", "room_id,name,capacity,room_type\nR1,A,0,classroom\n"))
			return err
		},
		"zero weekly hours": func() error {
			_, err := LoadCourses(writeFile(t, directory, "idle.json", `[{"course_id": "C1", "name": "A", "department": "CS", "hours_per_week": 0}]`))
			return err
		},
		"zero weekly hours csv": func() error {
			_, err := LoadCourses(writeFile(t, directory, "idle.csv", "course_id,name,department,hours_per_week\nC1,A,CS,0\n"))
			return err
		},
		"zero students": func() error {
			_, err := LoadSections(writeFile(t, directory, "empty_sections.json", `[{"section_id": "S1", "name": "A", "department": "CS", "semester": 1, "student_count": 0}]`))
			return err
		},
		"zero students csv": func() error {
			_, err := LoadSections(writeFile(t, directory, "empty_sections.csv", "section_id,name,department,semester,student_count\nS1,A,CS,1,0\n"))
			return err
		},
		"unknown weekday": func() error {
			_, err := LoadTeachers(writeFile(t, directory, "teachers.json", `[{"teacher_id": "T1", "name": "A", "department": "CS", "unavailable_slots": [{"day": "Someday", "period": 1}]}]`))
			return err
		},
		"malformed slot cell": func() error {
			_, err := LoadTeachers(writeFile(t, directory, "teachers.csv", "teacher_id,name,department,unavailable_slots\nT1,A,CS,Monday\n"))
			return err
		},
		"unsupported extension": func() error {
			_, err := LoadSections(writeFile(t, directory, "sections.xml", `<sections/>`))
			return err
		},
		"not an array": func() error {
			_, err := LoadSections(writeFile(t, directory, "sections.json", `{"section_id": "S1"}`))
			return err
		},
		"missing file": func() error {
			_, err := LoadCourseAssignments(filepath.Join(directory, "absent.json"))
			return err
		},
	}

	for name, load := range scenarios {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, load())
		})
	}

	t.Run("incomplete paths", func(t *testing.T) {
		_, err := LoadDataset(Paths{Courses: "courses.json"})
		assert.ErrorIs(t, err, ErrMissingDataFiles)
	})
}

func TestSample(t *testing.T) {
	//** Arrange
	dataset := Sample()
	input := dataset.Input(weekSlots())

	//** Act
	timetable, statistics, err := seeded(5).Build(input)

	//** Assert
	assert.Len(t, dataset.Courses, 8)
	assert.Len(t, dataset.Teachers, 6)
	assert.Len(t, dataset.Rooms, 7)
	assert.Len(t, dataset.Sections, 3)
	assert.Len(t, dataset.CourseAssignments, 14)

	require.NoError(t, err)
	assert.Equal(t, 42, statistics.Requests)
	assert.Len(t, timetable, 42)
	assert.True(t, model.FindAllConflicts(timetable).Empty())
}

func TestLoadTimetable(t *testing.T) {
	//** Arrange
	dataset := Sample()
	slots := weekSlots()
	timetable, _, err := seeded(9).Build(dataset.Input(slots))
	require.NoError(t, err)
	directory := t.TempDir()

	for _, format := range []export.Format{export.CSV, export.JSON} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(directory, "timetable."+string(format))
			require.NoError(t, export.ExportFile(path, format, timetable))

			//** Act
			loaded, err := LoadTimetable(path, dataset, slots)

			//** Assert
			require.NoError(t, err)
			require.Len(t, loaded, len(timetable))
			for _, assignment := range timetable {
				assert.True(t, containsAssignment(loaded, assignment), "missing %v", assignment)
			}
		})
	}

	t.Run("unknown room", func(t *testing.T) {
		var buffer bytes.Buffer
		require.NoError(t, export.WriteJSON(&buffer, timetable[:1]))
		content := strings.ReplaceAll(buffer.String(), `"room_id": "`+string(timetable[0].Room.ID)+`"`, `"room_id": "R999"`)
		path := writeFile(t, directory, "unknown.json", content)

		_, err := LoadTimetable(path, dataset, slots)

		assert.ErrorContains(t, err, "unknown room")
	})
}

func containsAssignment(timetable []model.ClassAssignment, wanted model.ClassAssignment) bool {
	for _, assignment := range timetable {
		if assignment.Equal(wanted) && assignment.TimeSlot.Start == wanted.TimeSlot.Start {
			return true
		}
	}
	return false
}
