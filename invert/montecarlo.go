package invert

import (
	"errors"
	"math"
	"math/rand"
)

// MonteCarloOptions tunes MonteCarlo. Zero-value fields pick defaults.
type MonteCarloOptions struct {
	Starts        int        // random starts, default 50
	MaxIterations int        // simplex budget per start, default 200
	Rand          *rand.Rand // nil repeats runs with a fixed seed
}

// MonteCarlo searches the box with uniform random starts, polishes each with
// the simplex and keeps the lowest misfit. Starts whose polish stops on the
// iteration budget still compete with the best point they reached. The
// returned evaluation count is the total across starts.
func MonteCarlo(o *Objective, b Bounds, opts MonteCarloOptions) (*Result, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	starts := opts.Starts
	if starts <= 0 {
		starts = 50
	}
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = 200
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	var best *Result
	evals := 0
	for i := 0; i < starts; i++ {
		res, err := NelderMead(o, o.source(b.draw(rng)), b, maxIter)
		if err != nil && !errors.Is(err, ErrNoConvergence) {
			return nil, err
		}
		if res == nil {
			continue
		}
		evals += res.Evaluations
		if better(res, best) {
			best = res
		}
	}
	if best == nil {
		return nil, ErrNoConvergence
	}
	best.Evaluations = evals
	return best, nil
}

// better reports whether res should replace the incumbent. A NaN misfit
// never beats a finite one.
func better(res, best *Result) bool {
	if best == nil || math.IsNaN(best.Misfit) {
		return true
	}
	return res.Misfit < best.Misfit
}
