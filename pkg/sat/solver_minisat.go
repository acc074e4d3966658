package sat

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// minisatSolver exchanges the instance and the model through temporary files
type minisatSolver struct {
	path string
}

func NewMinisatSolver(path string) SATSolver {
	if path == "" {
		path = Minisat
	}
	return &minisatSolver{path: path}
}

func (solver *minisatSolver) Solve(sat SAT) (SATSolution, error) {
	dimacs := sat.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	inputTempFile, err := os.CreateTemp("", "dimacs-*.cnf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(inputTempFile.Name())

	outputTempFile, err := os.CreateTemp("", "minisat_output-*.cnf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(outputTempFile.Name())
	defer outputTempFile.Close()

	if _, err := inputTempFile.WriteString(dimacs); err != nil {
		return nil, fmt.Errorf("failed to write DIMACS to temporary file: %w", err)
	}
	if err := inputTempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}

	cmd := exec.Command(solver.path, "-verb=0", inputTempFile.Name(), outputTempFile.Name())

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	satisfiable, err := interpretExitCode(cmd, err)
	if err != nil {
		return nil, fmt.Errorf("an error occurred during minisat execution: %w : %v", err, stderr.String())
	} else if !satisfiable {
		return nil, nil
	}

	output, err := io.ReadAll(outputTempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}
	return parseMinisatSolution(string(output))
}

// The first line of the output file is the verdict, the second one holds the model
func parseMinisatSolution(solverOutput string) (SATSolution, error) {
	lines := strings.Split(solverOutput, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "SAT" {
		return nil, fmt.Errorf("unexpected minisat output: %q", solverOutput)
	}

	var parseErr error
	solution := lo.FilterMap(strings.Fields(lines[1]), func(valueStr string, _ int) (int64, bool) {
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			parseErr = fmt.Errorf("invalid literal in solver output: %w", err)
			return 0, false
		}
		return value, value != 0
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return solution, nil
}
