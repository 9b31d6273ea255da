// Package covar estimates the spatial covariance structure of noise in
// geocoded displacement fields. A detrended field is turned into a circular
// autocovariance grid by FFT, collapsed to a radial profile, fit with a
// parametric model, and expanded into a covariance matrix between arbitrary
// ground points.
package covar

import (
	"fmt"
	"math"
)

type ModelType string

const (
	// Exponential is C(h) = a exp(-alpha h).
	Exponential ModelType = "exponential"
	// ExponentialCosine is C(h) = a exp(-alpha h) cos(beta h).
	ExponentialCosine ModelType = "expcos"
)

// CovarianceModel evaluates an isotropic covariance at lag distance h.
// Models that do not use beta ignore it.
type CovarianceModel func(h, amp, alpha, beta float64) float64

func covExponential(h, amp, alpha, beta float64) float64 {
	return amp * math.Exp(-alpha*h)
}

func covExponentialCosine(h, amp, alpha, beta float64) float64 {
	return amp * math.Exp(-alpha*h) * math.Cos(beta*h)
}

// modelFunc resolves a model name to its evaluator and the number of shape
// parameters the fit adjusts. The amplitude is anchored, never fit.
func modelFunc(model ModelType) (CovarianceModel, int, error) {
	switch model {
	case Exponential:
		return covExponential, 1, nil
	case ExponentialCosine:
		return covExponentialCosine, 2, nil
	}
	return nil, 0, fmt.Errorf("covar: unknown model %q", model)
}

// Params is a fitted covariance model. Amp is the covariance at zero lag,
// Alpha the decay rate in 1/m, Beta the oscillation wavenumber in rad/m
// (zero for the plain exponential).
type Params struct {
	Model ModelType `yaml:"model" json:"model"`
	Amp   float64   `yaml:"amp" json:"amp"`
	Alpha float64   `yaml:"alpha" json:"alpha"`
	Beta  float64   `yaml:"beta" json:"beta"`
}

// Eval returns the modeled covariance at lag distance h in meters.
func (p Params) Eval(h float64) float64 {
	m, _, err := modelFunc(p.Model)
	if err != nil {
		return math.NaN()
	}
	return m(h, p.Amp, p.Alpha, p.Beta)
}
