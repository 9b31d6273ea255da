package covar

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// FitOptions tunes FitModel. Zero-value fields pick defaults scaled to the
// profile extent.
type FitOptions struct {
	Alpha0        *float64
	Beta0         *float64
	MaxIterations *int
}

// Fit is a converged covariance model with its goodness of fit.
type Fit struct {
	Params
	Residual    float64
	Evaluations int
}

// FitModel fits the named model to a radial covariance profile. The
// amplitude is pinned to the zero-lag annulus; the shape parameters start
// from the supplied or default guesses and are refined by Nelder-Mead
// simplex, minimizing the Euclidean norm of annulus residuals.
//
// The profile must not contain empty annuli (Clean drops them), must retain
// its zero-lag annulus, and needs more annuli than model parameters.
// ErrNoConvergence is returned when the optimizer stops on a budget limit
// rather than on convergence.
func FitModel(p *Profile, model ModelType, opts FitOptions) (*Fit, error) {
	fn, nfree, err := modelFunc(model)
	if err != nil {
		return nil, err
	}
	if p.HasEmpty() {
		n := 0
		for _, b := range p.Bins {
			if b.Count == 0 {
				n++
			}
		}
		return nil, fmt.Errorf("%w: %d of %d annuli", ErrEmptyBins, n, len(p.Bins))
	}
	if len(p.Bins) < nfree+1 {
		return nil, fmt.Errorf("%w: %s fit needs %d annuli, have %d",
			ErrInsufficientData, model, nfree+1, len(p.Bins))
	}

	amp := math.NaN()
	dmax := 0.0
	for _, b := range p.Bins {
		if b.Dist == 0 {
			amp = b.Cov
		}
		if b.Dist > dmax {
			dmax = b.Dist
		}
	}
	if math.IsNaN(amp) {
		return nil, fmt.Errorf("%w: no zero-lag annulus to anchor the amplitude", ErrInsufficientData)
	}

	x0 := make([]float64, nfree)
	if opts.Alpha0 != nil {
		x0[0] = *opts.Alpha0
	} else {
		x0[0] = 3 / dmax
	}
	if nfree > 1 {
		if opts.Beta0 != nil {
			x0[1] = *opts.Beta0
		} else {
			x0[1] = 2 * math.Pi / dmax
		}
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			beta := 0.0
			if len(x) > 1 {
				beta = x[1]
			}
			ss := 0.0
			for _, b := range p.Bins {
				r := fn(b.Dist, amp, x[0], beta) - b.Cov
				ss += r * r
			}
			return math.Sqrt(ss)
		},
	}
	settings := &optimize.Settings{}
	if opts.MaxIterations != nil {
		settings.MajorIterations = *opts.MaxIterations
	}

	res, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoConvergence, err)
	}
	if err := res.Status.Err(); err != nil {
		return nil, fmt.Errorf("%w after %d evaluations: %v",
			ErrNoConvergence, res.Stats.FuncEvaluations, err)
	}

	fit := &Fit{
		Params:      Params{Model: model, Amp: amp, Alpha: res.X[0]},
		Residual:    res.F,
		Evaluations: res.Stats.FuncEvaluations,
	}
	if nfree > 1 {
		fit.Beta = res.X[1]
	}
	return fit, nil
}
