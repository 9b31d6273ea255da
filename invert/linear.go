package invert

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/geniusinaction/GEO244/internal/lsq"
	"github.com/geniusinaction/GEO244/okada"
)

// SlipFit is a weighted least-squares slip estimate for a fixed geometry.
// StrikeSlip is the left-lateral component, DipSlip the reverse one, both in
// meters; Source carries the combined slip and rake.
type SlipFit struct {
	StrikeSlip float64
	DipSlip    float64
	Sigmas     [2]float64
	Misfit     float64
	Source     *okada.Source
}

// LinearSlip holds the fault geometry fixed and solves for the slip vector
// that best fits the observations, using the unit strike-slip and unit
// dip-slip predictions as Green's functions. The geometry's own Slip and
// Rake are ignored; displacement is linear in slip, so no iteration is
// needed.
func LinearSlip(o *Objective, geom *okada.Source) (*SlipFit, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	n := len(o.Points)
	if n < 2 {
		return nil, fmt.Errorf("invert: %d observations for 2 slip components", n)
	}

	base := *geom
	base.Slip = 0
	base.Opening = o.Opening
	base.Nu = o.Nu
	b0 := base.PredictLOS(o.Points)

	uss := base
	uss.Slip = 1
	uss.Rake = 0
	uss.Opening = 0
	uds := uss
	uds.Rake = 90
	pss := uss.PredictLOS(o.Points)
	pds := uds.PredictLOS(o.Points)

	g := mat.NewDense(n, 2, nil)
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		g.Set(i, 0, pss[i])
		g.Set(i, 1, pds[i])
		d[i] = o.Points[i].Disp - b0[i]
	}
	x, cov, err := lsq.Solve(g, mat.NewVecDense(n, d), o.Weights)
	if err != nil {
		return nil, fmt.Errorf("invert: %w", err)
	}
	sig := lsq.Sigmas(cov)

	fit := &SlipFit{
		StrikeSlip: x.AtVec(0),
		DipSlip:    x.AtVec(1),
		Sigmas:     [2]float64{sig[0], sig[1]},
	}
	src := base
	src.Slip = math.Hypot(fit.StrikeSlip, fit.DipSlip)
	src.Rake = math.Atan2(fit.DipSlip, fit.StrikeSlip) * 180 / math.Pi
	fit.Source = &src
	fit.Misfit = o.Misfit(&src)
	return fit, nil
}
