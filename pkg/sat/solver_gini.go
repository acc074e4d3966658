package sat

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// giniSolver runs the instance in-process, no external executable is needed
type giniSolver struct{}

func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (solver *giniSolver) Solve(sat SAT) (SATSolution, error) {
	g := gini.New()

	for _, clause := range sat.Clauses {
		for _, literal := range clause {
			variable := literal
			if variable < 0 {
				variable = -variable
			}
			if uint64(variable) > sat.Variables {
				return nil, fmt.Errorf("literal %d exceeds the declared %d variables", literal, sat.Variables)
			}
			if literal > 0 {
				g.Add(z.Var(variable).Pos())
			} else {
				g.Add(z.Var(variable).Neg())
			}
		}
		g.Add(0)
	}

	switch g.Solve() {
	case 1:
	case -1:
		return nil, nil
	default:
		return nil, fmt.Errorf("gini could not decide the instance")
	}

	solution := make(SATSolution, 0, sat.Variables)
	for variable := uint64(1); variable <= sat.Variables; variable++ {
		if g.Value(z.Var(variable).Pos()) {
			solution = append(solution, int64(variable))
		} else {
			solution = append(solution, -int64(variable))
		}
	}
	return solution, nil
}
