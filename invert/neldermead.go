package invert

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"

	"github.com/geniusinaction/GEO244/okada"
)

// Result is a candidate source with its misfit.
type Result struct {
	Source      *okada.Source
	Misfit      float64
	Evaluations int
}

// NelderMead refines a starting source with a downhill simplex over the
// parameters the box leaves free; pinned parameters are forced to their
// pinned value first. A maxIter of zero lets the simplex run until it
// converges. When the iteration budget stops it instead, the best point
// reached is still returned, alongside ErrNoConvergence.
func NelderMead(o *Objective, start *okada.Source, b Bounds, maxIter int) (*Result, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	lo, hi := b.vectors()
	v0 := vector(start)
	for i := range v0 {
		if lo[i] == hi[i] {
			v0[i] = lo[i]
		}
	}
	if !b.contains(v0) {
		return nil, fmt.Errorf("%w: start outside the box", ErrBounds)
	}

	free := b.free()
	if len(free) == 0 {
		s := o.source(v0)
		return &Result{Source: s, Misfit: o.Misfit(s), Evaluations: 1}, nil
	}

	x0 := make([]float64, len(free))
	for k, i := range free {
		x0[k] = v0[i]
	}
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			v := make([]float64, nParams)
			copy(v, v0)
			for k, i := range free {
				v[i] = x[k]
			}
			return o.eval(v, lo, hi)
		},
	}
	settings := &optimize.Settings{}
	if maxIter > 0 {
		settings.MajorIterations = maxIter
	}

	res, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if res == nil {
		return nil, fmt.Errorf("%w: %v", ErrNoConvergence, err)
	}

	v := make([]float64, nParams)
	copy(v, v0)
	for k, i := range free {
		v[i] = res.X[k]
	}
	out := &Result{Source: o.source(v), Misfit: res.F, Evaluations: res.Stats.FuncEvaluations}
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrNoConvergence, err)
	}
	if serr := res.Status.Err(); serr != nil {
		return out, fmt.Errorf("%w after %d evaluations: %v", ErrNoConvergence, out.Evaluations, serr)
	}
	return out, nil
}
