package sat

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

// interpretExitCode follows the SAT competition convention: 10 stands for satisfiable and 20 for unsatisfiable
func interpretExitCode(cmd *exec.Cmd, runErr error) (satisfiable bool, err error) {
	if cmd.ProcessState == nil {
		return false, runErr
	}

	switch cmd.ProcessState.ExitCode() {
	case exitSatisfiable:
		return true, nil
	case exitUnsatisfiable:
		return false, nil
	}

	if runErr == nil {
		runErr = errors.New("solver terminated without a verdict")
	}
	return false, runErr
}

// parseSolution collects the literals of every "v" line of a competition-format output
func parseSolution(solverOutput string) (SATSolution, error) {
	var parseErr error
	values := lo.FilterMap(
		lo.FlatMap(
			lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
				return len(line) > 0 && line[0] == 'v'
			}),
			func(line string, _ int) []string {
				return strings.Fields(line[1:])
			},
		),
		func(valueStr string, _ int) (int64, bool) {
			value, err := strconv.ParseInt(valueStr, 10, 64)
			if err != nil {
				parseErr = fmt.Errorf("invalid literal in solver output: %w", err)
				return 0, false
			}
			return value, value != 0
		},
	)
	if parseErr != nil {
		return nil, parseErr
	}
	return values, nil
}
