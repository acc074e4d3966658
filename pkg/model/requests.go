package model

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// BuildRequests expands every resolvable mapping entry into HoursPerWeek schedule requests.
// Entries referencing an unknown course, section or teacher are skipped and reported as warnings.
func BuildRequests(input Input, logger *zap.Logger) ([]ScheduleRequest, []string) {
	if logger == nil {
		logger = zap.NewNop()
	}

	courses := lo.KeyBy(input.Courses, func(course *Course) CourseID { return course.ID })
	sections := lo.KeyBy(input.Sections, func(section *Section) SectionID { return section.ID })
	teachers := lo.KeyBy(input.Teachers, func(teacher *Teacher) TeacherID { return teacher.ID })

	requests := make([]ScheduleRequest, 0)
	warnings := make([]string, 0)

	for _, entry := range input.CourseAssignments {
		course, courseOk := courses[entry.Course]
		section, sectionOk := sections[entry.Section]
		teacher, teacherOk := teachers[entry.Teacher]

		if !courseOk || !sectionOk || !teacherOk {
			warning := fmt.Sprintf("Invalid assignment: course %v, section %v, teacher %v", entry.Course, entry.Section, entry.Teacher)
			logger.Warn("skipping unresolved course assignment",
				zap.String("course_id", string(entry.Course)),
				zap.String("section_id", string(entry.Section)),
				zap.String("teacher_id", string(entry.Teacher)),
				zap.Bool("course_found", courseOk),
				zap.Bool("section_found", sectionOk),
				zap.Bool("teacher_found", teacherOk),
			)
			warnings = append(warnings, warning)
			continue
		}

		for instance := 1; instance <= course.HoursPerWeek; instance++ {
			requests = append(requests, ScheduleRequest{
				Course:   course,
				Section:  section,
				Teacher:  teacher,
				Instance: instance,
			})
		}
	}

	return requests, warnings
}

// PrioritizeRequests sorts in place: lab courses first, then more weekly hours, then section department.
// The sort is stable so equal keys keep their mapping order.
func PrioritizeRequests(requests []ScheduleRequest) []ScheduleRequest {
	slices.SortStableFunc(requests, func(a, b ScheduleRequest) int {
		if aLab, bLab := a.Course.Type == Lab, b.Course.Type == Lab; aLab != bLab {
			if aLab {
				return -1
			}
			return 1
		}
		if a.Course.HoursPerWeek != b.Course.HoursPerWeek {
			return b.Course.HoursPerWeek - a.Course.HoursPerWeek
		}
		return cmp.Compare(a.Section.Department, b.Section.Department)
	})
	return requests
}

// expectedSessions maps every resolvable (course, section) pair to its teacher and weekly hours
func expectedSessions(input Input) map[CourseSectionKey]ScheduleRequest {
	requests, _ := BuildRequests(input, nil)
	expected := make(map[CourseSectionKey]ScheduleRequest)
	for _, request := range requests {
		expected[CourseSectionKey{Course: request.Course.ID, Section: request.Section.ID}] = request
	}
	return expected
}
