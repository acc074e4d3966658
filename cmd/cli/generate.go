package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/limaJavier/timetabling/pkg/export"
	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var banner = strings.Repeat("=", 80)

type generateFlags struct {
	data        dataFlags
	strategy    string
	solver      string
	maxAttempts int
	seed        uint64
	groupBy     string
	exportCSV   string
	exportJSON  string
}

func newGenerateCommand(app *application) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a timetable from data files or the sample data set",
		Example: `  timetable generate --sample
  timetable generate --courses data/courses.json --teachers data/teachers.json \
                     --rooms data/rooms.json --sections data/sections.json \
                     --assignments data/assignments.json
  timetable generate --sample --export-csv output/timetable.csv
  timetable generate --sample --group-by teacher`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.generate(cmd, flags)
		},
	}

	flags.data.register(cmd)
	cmd.Flags().StringVar(&flags.strategy, "strategy", "", `Strategy to build the timetable: "backtracking" (default), "pure" or "postponed"`)
	cmd.Flags().StringVar(&flags.solver, "solver", "", `SAT solver used by the "pure" and "postponed" strategies: "gini" (default), "kissat" or "minisat"`)
	cmd.Flags().IntVar(&flags.maxAttempts, "max-attempts", 0, "Maximum scheduling attempts of the backtracking strategy (default 10000)")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "Random seed for reproducible backtracking")
	cmd.Flags().StringVar(&flags.groupBy, "group-by", string(export.BySection), "Group the printed timetable by section, teacher or room")
	cmd.Flags().StringVar(&flags.exportCSV, "export-csv", "", "Export the timetable to a CSV file")
	cmd.Flags().StringVar(&flags.exportJSON, "export-json", "", "Export the timetable to a JSON file")
	return cmd
}

func (app *application) generate(cmd *cobra.Command, flags *generateFlags) error {
	out := cmd.OutOrStdout()

	//** Apply flag overrides
	generation := &app.cfg.Generation
	if cmd.Flags().Changed("strategy") {
		generation.Strategy = strings.ToLower(flags.strategy)
	}
	if cmd.Flags().Changed("solver") {
		generation.Solver = strings.ToLower(flags.solver)
	}
	if cmd.Flags().Changed("max-attempts") {
		generation.MaxAttempts = flags.maxAttempts
	}
	if cmd.Flags().Changed("seed") {
		generation.Seed = &flags.seed
	}
	if err := app.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid generation settings: %w", err)
	}
	groupBy, err := export.ParseGroupBy(flags.groupBy)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%v\nTIMETABLE GENERATOR\n%v\n\n", banner, banner)
	if generation.Seed != nil {
		fmt.Fprintf(out, "Using random seed: %d\n", *generation.Seed)
	}
	fmt.Fprintf(out, "Configuration: %v\n\n", app.cfg)

	//** Load data
	dataset, err := flags.data.load(out)
	if err != nil {
		return err
	}
	printDataSummary(out, dataset)

	slots, err := app.cfg.TimeSlots()
	if err != nil {
		return err
	}
	timetabler, err := newTimetabler(*generation, app.cfg.Solvers, app.logger)
	if err != nil {
		return err
	}

	//** Generate
	fmt.Fprintf(out, "\n%v\n", strings.Repeat("-", 80))
	generator := model.NewGenerator(timetabler, slots, app.logger)
	result, err := generator.Generate(dataset.Courses, dataset.Sections, dataset.Teachers, dataset.Rooms, dataset.CourseAssignments)

	for _, warning := range warningsOf(result, err) {
		fmt.Fprintf(out, "Warning: %v\n", warning)
	}

	var auditErr *model.AuditError
	switch {
	case errors.Is(err, model.ErrNoSolution):
		printFailureHints(out, err)
		return &exitStatus{code: exitNoSolution}
	case errors.As(err, &auditErr):
		fmt.Fprintln(out, model.FormatConflictReport(auditErr.Report))
		return &exitStatus{code: exitUnverified}
	case err != nil:
		return err
	}

	printStatistics(out, result)

	//** Validate
	fmt.Fprintln(out, "\nValidating timetable...")
	if !timetabler.Verify(result.Timetable, dataset.Input(slots)) {
		fmt.Fprintln(out, model.FormatConflictReport(result.Report))
		fmt.Fprintln(out, "Timetable verification failed: some course sessions are missing or misplaced")
		app.logger.Error("timetable verification failed", zap.String("run_id", result.RunID))
		return &exitStatus{code: exitUnverified}
	}
	fmt.Fprintln(out, "Timetable validation passed - no conflicts detected!")

	//** Display and export
	fmt.Fprintf(out, "\n%v\n", strings.Repeat("-", 80))
	fmt.Fprintln(out, export.FormatAsText(result.Timetable, groupBy))

	exports := []struct {
		path   string
		format export.Format
	}{
		{flags.exportCSV, export.CSV},
		{flags.exportJSON, export.JSON},
	}
	for _, target := range exports {
		if target.path == "" {
			continue
		}
		if err := export.ExportFile(target.path, target.format, result.Timetable); err != nil {
			return err
		}
		fmt.Fprintf(out, "Timetable exported to %v\n", target.path)
	}

	fmt.Fprintf(out, "\n%v\nTimetable generation completed successfully!\n%v\n\n", banner, banner)
	return &exitStatus{code: exitSolved}
}

// warningsOf collects the skipped mapping entries of a run, successful or not
func warningsOf(result *model.Result, err error) []string {
	var (
		noSolution *model.NoSolutionError
		auditErr   *model.AuditError
	)
	switch {
	case result != nil:
		return result.Warnings
	case errors.As(err, &noSolution):
		return noSolution.Warnings
	case errors.As(err, &auditErr):
		return auditErr.Warnings
	}
	return nil
}

func printStatistics(out io.Writer, result *model.Result) {
	statistics := result.Statistics
	fmt.Fprintf(out, "\nTimetable generated successfully! (run %v, %v)\n", result.RunID, result.Duration)
	fmt.Fprintf(out, "  Total assignments: %d\n", statistics.Assignments)
	fmt.Fprintf(out, "  Attempts: %d\n", statistics.Attempts)
	fmt.Fprintf(out, "  Backtracks: %d\n", statistics.Backtracks)
	if statistics.Variables > 0 {
		fmt.Fprintf(out, "  Variables: %d\n", statistics.Variables)
		fmt.Fprintf(out, "  Clauses: %d\n", statistics.Clauses)
	}
}

func printFailureHints(out io.Writer, err error) {
	fmt.Fprintf(out, "\nFailed to generate a valid timetable: %v\n", err)
	fmt.Fprintln(out, "Try:")
	fmt.Fprintln(out, "  - Adding more rooms")
	fmt.Fprintln(out, "  - Adding more time slots")
	fmt.Fprintln(out, "  - Reducing course hours")
	fmt.Fprintln(out, "  - Checking teacher availability constraints")
}
