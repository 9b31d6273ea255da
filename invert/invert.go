// Package invert estimates rectangular dislocation parameters from scattered
// line-of-sight displacements: downhill simplex inside a bounded parameter
// box, random-restart Monte Carlo around it, or plain weighted least squares
// when the geometry is held fixed and only the slip vector is unknown.
package invert

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/geniusinaction/GEO244/okada"
	"github.com/geniusinaction/GEO244/scatter"
)

var (
	ErrBounds        = errors.New("invert: bad parameter bounds")
	ErrNoConvergence = errors.New("invert: optimizer did not converge")
)

// misfit assigned to parameter vectors outside the box or describing an
// impossible fault, steep enough that the simplex retreats
const penalty = 1e20

// indices into the parameter vector
const (
	pX = iota
	pY
	pDepth
	pStrike
	pDip
	pRake
	pSlip
	pLength
	pWidth
	nParams
)

var paramNames = [nParams]string{
	"x", "y", "depth", "strike", "dip", "rake", "slip", "length", "width",
}

func vector(s *okada.Source) []float64 {
	return []float64{s.X, s.Y, s.Depth, s.Strike, s.Dip, s.Rake, s.Slip, s.Length, s.Width}
}

// Objective scores candidate sources against observed line-of-sight
// displacements. Weights is typically the pseudoinverse of the data
// covariance between the observation points; nil means unit weights.
// Opening and Nu are held fixed for every candidate.
type Objective struct {
	Points  scatter.Points
	Weights mat.Matrix
	Opening float64
	Nu      float64
}

func (o *Objective) source(v []float64) *okada.Source {
	return &okada.Source{
		X:       v[pX],
		Y:       v[pY],
		Depth:   v[pDepth],
		Strike:  v[pStrike],
		Dip:     v[pDip],
		Rake:    v[pRake],
		Slip:    v[pSlip],
		Length:  v[pLength],
		Width:   v[pWidth],
		Opening: o.Opening,
		Nu:      o.Nu,
	}
}

// Misfit returns the weighted squared residual r^T W r between the observed
// and modeled line-of-sight displacements.
func (o *Objective) Misfit(s *okada.Source) float64 {
	pred := s.PredictLOS(o.Points)
	r := make([]float64, len(pred))
	for i := range pred {
		r[i] = o.Points[i].Disp - pred[i]
	}
	if o.Weights == nil {
		ss := 0.0
		for _, ri := range r {
			ss += ri * ri
		}
		return ss
	}
	rv := mat.NewVecDense(len(r), r)
	var wr mat.VecDense
	wr.MulVec(o.Weights, rv)
	return mat.Dot(rv, &wr)
}

// eval scores a full parameter vector against the box.
func (o *Objective) eval(v, lo, hi []float64) float64 {
	for i := range v {
		if v[i] < lo[i] || v[i] > hi[i] {
			return penalty
		}
	}
	s := o.source(v)
	if s.Validate() != nil {
		return penalty
	}
	return o.Misfit(s)
}
