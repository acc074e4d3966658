package main

import (
	"fmt"

	"github.com/limaJavier/timetabling/pkg/config"
	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the timetable configuration",
	}

	var out string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to a JSON or YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().Save(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %v\n", out)
			return nil
		},
	}
	initCmd.Flags().StringVar(&out, "out", "config.json", "Destination file, the extension selects the format")

	cmd.AddCommand(initCmd)
	return cmd
}
