package export

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/samber/lo"
)

type GroupBy string

const (
	BySection GroupBy = "section"
	ByTeacher GroupBy = "teacher"
	ByRoom    GroupBy = "room"
)

func ParseGroupBy(value string) (GroupBy, error) {
	groupBy := GroupBy(strings.ToLower(strings.TrimSpace(value)))
	if !slices.Contains([]GroupBy{BySection, ByTeacher, ByRoom}, groupBy) {
		return "", fmt.Errorf("cannot group by %q: allowed values are section, teacher and room", value)
	}
	return groupBy, nil
}

var ruler = strings.Repeat("=", 80)

// block identifies a group by entity id, distinct entities may share a title
type block struct {
	title string
	id    string
}

// FormatAsText renders the timetable as blocks, one per section, teacher or room, ordered by block title then id.
// Rows inside a block are ordered by weekday then period.
func FormatAsText(assignments []model.ClassAssignment, groupBy GroupBy) string {
	if len(assignments) == 0 {
		return "No assignments to display"
	}

	var (
		key    func(model.ClassAssignment) block
		detail func(model.ClassAssignment) string
	)
	switch groupBy {
	case ByTeacher:
		key = func(a model.ClassAssignment) block { return block{a.Teacher.String(), string(a.Teacher.ID)} }
		detail = func(a model.ClassAssignment) string { return fmt.Sprintf("%-15v | %v", a.Section.Name, a.Room.Name) }
	case ByRoom:
		key = func(a model.ClassAssignment) block { return block{a.Room.String(), string(a.Room.ID)} }
		detail = func(a model.ClassAssignment) string { return fmt.Sprintf("%-15v | %v", a.Section.Name, a.Teacher.Name) }
	default:
		key = func(a model.ClassAssignment) block { return block{a.Section.String(), string(a.Section.ID)} }
		detail = func(a model.ClassAssignment) string { return fmt.Sprintf("%-20v | %v", a.Teacher.Name, a.Room.Name) }
	}

	var builder strings.Builder
	builder.WriteString("\n" + ruler + "\n")
	builder.WriteString("TIMETABLE\n")
	builder.WriteString(ruler + "\n")

	grouped := lo.GroupBy(assignments, key)
	blocks := lo.Keys(grouped)
	slices.SortFunc(blocks, func(a, b block) int {
		return cmp.Or(cmp.Compare(a.title, b.title), cmp.Compare(a.id, b.id))
	})
	for _, group := range blocks {
		builder.WriteString("\n" + group.title + "\n")
		builder.WriteString(strings.Repeat("-", 80) + "\n")
		for _, class := range chronological(grouped[group]) {
			slot := class.TimeSlot
			fmt.Fprintf(&builder, "%-12v | Period %d (%v-%v) | %-30v | %v\n",
				slot.Day, slot.Period, slot.Start, slot.End, class.Course.Name, detail(class))
		}
	}

	return strings.TrimSuffix(builder.String(), "\n")
}
