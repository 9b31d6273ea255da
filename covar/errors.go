package covar

import "errors"

var (
	// ErrInsufficientData marks fits attempted with fewer samples than
	// model parameters.
	ErrInsufficientData = errors.New("covar: not enough samples")

	// ErrNoValidData marks averages over zero valid pixels.
	ErrNoValidData = errors.New("covar: no valid samples")

	// ErrEmptyBins marks profiles that still hold empty annuli.
	ErrEmptyBins = errors.New("covar: profile has empty bins")

	// ErrNoConvergence marks fits that exhausted the optimizer budget
	// without converging.
	ErrNoConvergence = errors.New("covar: fit did not converge")
)
