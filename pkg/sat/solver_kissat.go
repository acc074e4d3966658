package sat

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

type kissatSolver struct {
	path string
}

func NewKissatSolver(path string) SATSolver {
	if path == "" {
		path = Kissat
	}
	return &kissatSolver{path: path}
}

func (solver *kissatSolver) Solve(sat SAT) (SATSolution, error) {
	dimacs := sat.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	cmd := exec.Command(solver.path, "-q", "--relaxed")
	cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into kissat's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	satisfiable, err := interpretExitCode(cmd, err)
	if err != nil {
		return nil, fmt.Errorf("an error occurred during kissat execution: %w : %v", err, stderr.String())
	} else if !satisfiable {
		return nil, nil
	}

	return parseSolution(stdOut.String())
}
