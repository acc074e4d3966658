package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timetable() []model.ClassAssignment {
	algorithms := &model.Course{ID: "C1", Name: "Algorithms", Department: "CS", HoursPerWeek: 2, Type: model.Theory}
	calculus := &model.Course{ID: "C2", Name: "Calculus", Department: "MA", HoursPerWeek: 1, Type: model.Theory}
	csA := &model.Section{ID: "S1", Name: "CS-A", Department: "CS", Semester: 3, StudentCount: 30}
	maA := &model.Section{ID: "S2", Name: "MA-A", Department: "MA", Semester: 1, StudentCount: 20}
	ada := model.NewTeacher("T1", "Ada", "CS")
	grace := model.NewTeacher("T2", "Grace", "MA")
	r1 := &model.Room{ID: "R1", Name: "Room 1", Capacity: 40, Type: model.Classroom}
	r2 := &model.Room{ID: "R2", Name: "Room 2", Capacity: 60, Type: model.Classroom}

	return []model.ClassAssignment{
		{Course: algorithms, Section: csA, Teacher: ada, Room: r1, TimeSlot: model.NewTimeSlot(model.Tuesday, 2, "10:00", "11:00")},
		{Course: calculus, Section: maA, Teacher: grace, Room: r2, TimeSlot: model.NewTimeSlot(model.Monday, 3, "11:00", "12:00")},
		{Course: algorithms, Section: csA, Teacher: ada, Room: r2, TimeSlot: model.NewTimeSlot(model.Monday, 1, "09:00", "10:00")},
	}
}

func TestWriteCSV(t *testing.T) {
	//** Arrange
	var buffer bytes.Buffer

	//** Act
	err := WriteCSV(&buffer, timetable())

	//** Assert
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Day,Period,Start Time,End Time,Course ID,Course Name,Section ID,Section,Teacher ID,Teacher,Room ID,Room", lines[0])
	assert.Equal(t, "Monday,1,09:00,10:00,C1,Algorithms,S1,CS-A,T1,Ada,R2,Room 2", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Monday,3,"))
	assert.True(t, strings.HasPrefix(lines[3], "Tuesday,2,"))

	var records []Record
	require.NoError(t, gocsv.UnmarshalString(buffer.String(), &records))
	assert.Equal(t, NewRecord(timetable()[2]), records[0])
}

func TestWriteJSON(t *testing.T) {
	//** Arrange
	var buffer bytes.Buffer

	//** Act
	err := WriteJSON(&buffer, timetable())

	//** Assert
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, map[string]any{
		"day":          "Tuesday",
		"period":       float64(2),
		"start_time":   "10:00",
		"end_time":     "11:00",
		"course_id":    "C1",
		"course_name":  "Algorithms",
		"section_id":   "S1",
		"section_name": "CS-A",
		"teacher_id":   "T1",
		"teacher_name": "Ada",
		"room_id":      "R1",
		"room_name":    "Room 1",
	}, decoded[0])
}

func TestExportFile(t *testing.T) {
	directory := t.TempDir()

	t.Run("Creates parent directories", func(t *testing.T) {
		path := filepath.Join(directory, "out", "nested", "timetable.json")

		require.NoError(t, ExportFile(path, JSON, timetable()))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"course_name": "Calculus"`)
	})

	t.Run("Format is case insensitive", func(t *testing.T) {
		path := filepath.Join(directory, "timetable.csv")

		require.NoError(t, ExportFile(path, Format("CSV"), timetable()))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "Day,Period"))
	})

	t.Run("Unknown format", func(t *testing.T) {
		assert.Error(t, ExportFile(filepath.Join(directory, "timetable.xml"), Format("xml"), timetable()))
	})
}

func TestFormatAsText(t *testing.T) {
	t.Run("Empty timetable", func(t *testing.T) {
		assert.Equal(t, "No assignments to display", FormatAsText(nil, BySection))
	})

	t.Run("Grouped by section", func(t *testing.T) {
		//** Act
		text := FormatAsText(timetable(), BySection)

		//** Assert
		csBlock := strings.Index(text, "CS-A (Sem 3)")
		maBlock := strings.Index(text, "MA-A (Sem 1)")
		require.NotEqual(t, -1, csBlock)
		require.NotEqual(t, -1, maBlock)
		assert.Less(t, csBlock, maBlock)
		assert.Contains(t, text, "Monday       | Period 1 (09:00-10:00) | Algorithms                     | Ada                  | Room 2")
		assert.Less(t, strings.Index(text, "Period 1 (09:00"), strings.Index(text, "Period 2 (10:00"))
	})

	t.Run("Grouped by teacher", func(t *testing.T) {
		text := FormatAsText(timetable(), ByTeacher)

		assert.Contains(t, text, "Ada (CS)")
		assert.Contains(t, text, "Grace (MA)")
		assert.Contains(t, text, "| Calculus                       | MA-A            | Room 2")
	})

	t.Run("Grouped by room", func(t *testing.T) {
		text := FormatAsText(timetable(), ByRoom)

		assert.Contains(t, text, "Room 1 (Cap: 40)")
		assert.Contains(t, text, "| Algorithms                     | CS-A            | Ada")
	})

	t.Run("Namesakes keep separate blocks", func(t *testing.T) {
		//** Arrange
		assignments := timetable()
		namesake := &model.Section{ID: "S9", Name: "CS-A", Department: "CS", Semester: 3, StudentCount: 25}
		evening := assignments[0]
		evening.Section = namesake
		evening.TimeSlot = model.NewTimeSlot(model.Friday, 6, "15:00", "16:00")
		assignments = append(assignments, evening)

		//** Act
		text := FormatAsText(assignments, BySection)

		//** Assert
		assert.Equal(t, 2, strings.Count(text, "CS-A (Sem 3)"))
		first := strings.Index(text, "CS-A (Sem 3)")
		second := strings.LastIndex(text, "CS-A (Sem 3)")
		assert.NotContains(t, text[first:second], "Friday")
		assert.Contains(t, text[second:], "Friday       | Period 6 (15:00-16:00)")
	})
}

func TestParseGroupBy(t *testing.T) {
	groupBy, err := ParseGroupBy(" Teacher ")
	require.NoError(t, err)
	assert.Equal(t, ByTeacher, groupBy)

	_, err = ParseGroupBy("day")
	assert.Error(t, err)
}
