package main

import (
	"fmt"

	"github.com/limaJavier/timetabling/pkg/input"
	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAuditCommand(app *application) *cobra.Command {
	var (
		data          dataFlags
		timetablePath string
	)
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Report every conflict of an exported timetable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			dataset, err := data.load(out)
			if err != nil {
				return err
			}
			slots, err := app.cfg.TimeSlots()
			if err != nil {
				return err
			}
			timetable, err := input.LoadTimetable(timetablePath, dataset, slots)
			if err != nil {
				return err
			}

			report := model.FindAllConflicts(timetable)
			fmt.Fprintln(out, model.FormatConflictReport(report))

			if count := model.CountConflicts(report); count > 0 {
				app.logger.Error("timetable audit found conflicts", zap.Int("conflicts", count), zap.String("timetable", timetablePath))
				return &exitStatus{code: exitUnverified}
			}
			return nil
		},
	}

	data.register(cmd)
	cmd.Flags().StringVar(&timetablePath, "timetable", "", "Path to an exported timetable (JSON or CSV)")
	_ = cmd.MarkFlagRequired("timetable")
	return cmd
}
