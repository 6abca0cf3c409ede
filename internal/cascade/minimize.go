package cascade

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

// Minimizer finds the stage pair minimizing a two-dimensional
// objective. No derivative information is assumed; any gradient-free
// search satisfies the contract. Implementations must rely on the
// objective's own penalty for infeasible (negative) stage counts.
type Minimizer interface {
	Minimize(objective func(enriching, stripping float64) float64, seed StageCount) (StageCount, error)
}

// NelderMead is the default Minimizer, a downhill-simplex search from
// gonum's optimize package.
type NelderMead struct{}

func (NelderMead) Minimize(objective func(enriching, stripping float64) float64, seed StageCount) (StageCount, error) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 { return objective(x[0], x[1]) },
	}
	settings := &optimize.Settings{
		MajorIterations: 10 * IterMax,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-12,
			Iterations: IterMax,
		},
	}
	result, err := optimize.Minimize(problem,
		[]float64{seed.Enriching, seed.Stripping}, settings, &optimize.NelderMead{})
	if err != nil {
		return StageCount{}, fmt.Errorf("nelder-mead: %w", err)
	}
	if err := result.Status.Err(); err != nil {
		return StageCount{}, fmt.Errorf("nelder-mead: %w", err)
	}
	return StageCount{Enriching: result.X[0], Stripping: result.X[1]}, nil
}
