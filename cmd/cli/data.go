package main

import (
	"fmt"
	"io"

	"github.com/limaJavier/timetabling/pkg/input"
	"github.com/spf13/cobra"
)

// dataFlags selects the dataset of a command, either the sample or a full set of files
type dataFlags struct {
	paths  input.Paths
	sample bool
}

func (flags *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flags.paths.Courses, "courses", "", "Path to the courses file (JSON or CSV)")
	cmd.Flags().StringVar(&flags.paths.Teachers, "teachers", "", "Path to the teachers file (JSON or CSV)")
	cmd.Flags().StringVar(&flags.paths.Rooms, "rooms", "", "Path to the rooms file (JSON or CSV)")
	cmd.Flags().StringVar(&flags.paths.Sections, "sections", "", "Path to the sections file (JSON or CSV)")
	cmd.Flags().StringVar(&flags.paths.Assignments, "assignments", "", "Path to the course assignments file (JSON or CSV)")
	cmd.Flags().BoolVar(&flags.sample, "sample", false, "Use the built-in sample data set")
}

func (flags *dataFlags) load(out io.Writer) (*input.Dataset, error) {
	if flags.sample {
		fmt.Fprintln(out, "Using sample data...")
		return input.Sample(), nil
	}

	fmt.Fprintln(out, "Loading data from files...")
	dataset, err := input.LoadDataset(flags.paths)
	if err != nil {
		return nil, fmt.Errorf("cannot load data: %w", err)
	}
	fmt.Fprintln(out, "All data loaded successfully")
	return dataset, nil
}

func printDataSummary(out io.Writer, dataset *input.Dataset) {
	fmt.Fprintln(out, "\nData Summary:")
	fmt.Fprintf(out, "  Courses: %d\n", len(dataset.Courses))
	fmt.Fprintf(out, "  Teachers: %d\n", len(dataset.Teachers))
	fmt.Fprintf(out, "  Rooms: %d\n", len(dataset.Rooms))
	fmt.Fprintf(out, "  Sections: %d\n", len(dataset.Sections))
	fmt.Fprintf(out, "  Course Assignments: %d\n", len(dataset.CourseAssignments))
}
