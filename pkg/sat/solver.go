package sat

import "fmt"

// SATSolver returns a nil solution (and no error) when the instance is unsatisfiable
type SATSolver interface {
	Solve(SAT) (SATSolution, error)
}

const (
	Gini    = "gini"
	Kissat  = "kissat"
	Minisat = "minisat"
)

// NewSolver builds a solver by name, executable-backed solvers need their path
func NewSolver(name string, executablePath string) (SATSolver, error) {
	switch name {
	case "", Gini:
		return NewGiniSolver(), nil
	case Kissat:
		return NewKissatSolver(executablePath), nil
	case Minisat:
		return NewMinisatSolver(executablePath), nil
	default:
		return nil, fmt.Errorf("unknown solver %q", name)
	}
}
