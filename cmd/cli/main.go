package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/limaJavier/timetabling/pkg/config"
	"github.com/limaJavier/timetabling/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	exitFailure    = 1
	exitSolved     = 10
	exitUnverified = 15
	exitNoSolution = 20
)

// exitStatus carries the process exit code of a finished command
type exitStatus struct {
	code int
}

func (status *exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", status.code)
}

// application holds what every command shares once the root command has parsed its flags
type application struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(&application{})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()

	var status *exitStatus
	switch {
	case err == nil:
		return 0
	case errors.As(err, &status):
		return status.code
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
}

func newRootCommand(app *application) *cobra.Command {
	root := &cobra.Command{
		Use:           "timetable",
		Short:         "Generate conflict-free weekly course timetables",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "Path to a JSON or YAML configuration file; defaults are used when empty")
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&app.logFormat, "log-format", "", "Log format: console or json")

	root.AddCommand(newGenerateCommand(app), newAuditCommand(app), newConfigCommand())
	return root
}

func (app *application) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if app.configPath != "" {
		loaded, err := config.Load(app.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = app.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = app.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("cannot build logger: %w", err)
	}

	app.cfg = cfg
	app.logger = logger
	return nil
}
