package input

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/mitchellh/mapstructure"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, err := model.ParseWeekday(fl.Field().String())
		return err == nil
	})
	return v
}

// Keys a JSON record must carry, the remaining ones fall back to their defaults
var (
	courseKeys     = []string{"course_id", "name", "department", "hours_per_week"}
	teacherKeys    = []string{"teacher_id", "name", "department"}
	roomKeys       = []string{"room_id", "name", "capacity"}
	sectionKeys    = []string{"section_id", "name", "department", "semester", "student_count"}
	assignmentKeys = []string{"course_id", "section_id", "teacher_id"}
)

func LoadCourses(path string) ([]*model.Course, error) {
	records, err := loadRecords[CourseRecord](path, courseKeys)
	if err != nil {
		return nil, err
	}
	courses := make([]*model.Course, 0, len(records))
	for _, record := range records {
		courses = append(courses, record.toModel())
	}
	return courses, nil
}

func LoadTeachers(path string) ([]*model.Teacher, error) {
	records, err := loadRecords[TeacherRecord](path, teacherKeys)
	if err != nil {
		return nil, err
	}
	teachers := make([]*model.Teacher, 0, len(records))
	for _, record := range records {
		teacher, err := record.toModel()
		if err != nil {
			return nil, fmt.Errorf("%v: %w", path, err)
		}
		teachers = append(teachers, teacher)
	}
	return teachers, nil
}

func LoadRooms(path string) ([]*model.Room, error) {
	records, err := loadRecords[RoomRecord](path, roomKeys)
	if err != nil {
		return nil, err
	}
	rooms := make([]*model.Room, 0, len(records))
	for _, record := range records {
		rooms = append(rooms, record.toModel())
	}
	return rooms, nil
}

func LoadSections(path string) ([]*model.Section, error) {
	records, err := loadRecords[SectionRecord](path, sectionKeys)
	if err != nil {
		return nil, err
	}
	sections := make([]*model.Section, 0, len(records))
	for _, record := range records {
		sections = append(sections, record.toModel())
	}
	return sections, nil
}

// LoadCourseAssignments reads the (course, section) -> teacher mapping. A repeated pair keeps its first position and takes the last teacher.
func LoadCourseAssignments(path string) (model.CourseAssignments, error) {
	records, err := loadRecords[AssignmentRecord](path, assignmentKeys)
	if err != nil {
		return nil, err
	}
	assignments := make(model.CourseAssignments, 0, len(records))
	for _, record := range records {
		assignments.Set(model.CourseID(record.CourseID), model.SectionID(record.SectionID), model.TeacherID(record.TeacherID))
	}
	return assignments, nil
}

// loadRecords decodes a JSON array of objects or a CSV file with a header row, depending on the file extension
func loadRecords[T any](path string, requiredKeys []string) ([]T, error) {
	var (
		records []T
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		records, err = loadJSONRecords[T](path, requiredKeys)
	case ".csv":
		records, err = loadCSVRecords[T](path)
	default:
		return nil, fmt.Errorf("unsupported data file %v: expected a .json or .csv extension", path)
	}
	if err != nil {
		return nil, err
	}

	for i, record := range records {
		if err := validate.Struct(record); err != nil {
			return nil, fmt.Errorf("%v: record %d: %w", path, i+1, err)
		}
	}
	return records, nil
}

func loadJSONRecords[T any](path string, requiredKeys []string) ([]T, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read data file: %w", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse %v: %w", path, err)
	}

	records := make([]T, 0, len(raw))
	for i, item := range raw {
		var (
			record   T
			metadata mapstructure.Metadata
		)
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Metadata:         &metadata,
			WeaklyTypedInput: true,
			Result:           &record,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(item); err != nil {
			return nil, fmt.Errorf("%v: record %d: %w", path, i+1, err)
		}
		for _, key := range requiredKeys {
			if slices.Contains(metadata.Unset, key) {
				return nil, fmt.Errorf("%v: record %d: missing field %q", path, i+1, key)
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func loadCSVRecords[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read data file: %w", err)
	}
	defer file.Close()

	var records []T
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("cannot parse %v: %w", path, err)
	}
	return records, nil
}
