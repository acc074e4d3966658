package input

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/timetabling/pkg/export"
	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/samber/lo"
)

// LoadTimetable reads a timetable written by the export package and resolves its ids against the dataset.
// Display times come from the slot universe when the slot belongs to it, and from the file otherwise.
func LoadTimetable(path string, dataset *Dataset, slots []model.TimeSlot) ([]model.ClassAssignment, error) {
	records, err := readTimetableRecords(path)
	if err != nil {
		return nil, err
	}

	courses := lo.KeyBy(dataset.Courses, (*model.Course).Key)
	sections := lo.KeyBy(dataset.Sections, (*model.Section).Key)
	teachers := lo.KeyBy(dataset.Teachers, (*model.Teacher).Key)
	rooms := lo.KeyBy(dataset.Rooms, (*model.Room).Key)
	universe := lo.KeyBy(slots, model.TimeSlot.Key)

	timetable := make([]model.ClassAssignment, 0, len(records))
	for i, record := range records {
		course, ok := courses[model.CourseID(record.CourseID)]
		if !ok {
			return nil, fmt.Errorf("%v: record %d: unknown course %q", path, i+1, record.CourseID)
		}
		section, ok := sections[model.SectionID(record.SectionID)]
		if !ok {
			return nil, fmt.Errorf("%v: record %d: unknown section %q", path, i+1, record.SectionID)
		}
		teacher, ok := teachers[model.TeacherID(record.TeacherID)]
		if !ok {
			return nil, fmt.Errorf("%v: record %d: unknown teacher %q", path, i+1, record.TeacherID)
		}
		room, ok := rooms[model.RoomID(record.RoomID)]
		if !ok {
			return nil, fmt.Errorf("%v: record %d: unknown room %q", path, i+1, record.RoomID)
		}
		day, err := model.ParseWeekday(record.Day)
		if err != nil {
			return nil, fmt.Errorf("%v: record %d: %w", path, i+1, err)
		}

		slot := model.NewTimeSlot(day, record.Period, record.StartTime, record.EndTime)
		if known, ok := universe[slot.Key()]; ok {
			slot = known
		}

		timetable = append(timetable, model.ClassAssignment{
			Course:   course,
			Section:  section,
			Teacher:  teacher,
			Room:     room,
			TimeSlot: slot,
		})
	}
	return timetable, nil
}

func readTimetableRecords(path string) ([]export.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read timetable file: %w", err)
	}
	defer file.Close()

	var records []export.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.NewDecoder(file).Decode(&records)
	case ".csv":
		err = gocsv.UnmarshalFile(file, &records)
	default:
		return nil, fmt.Errorf("unsupported timetable file %v: expected a .json or .csv extension", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse %v: %w", path, err)
	}
	return records, nil
}
