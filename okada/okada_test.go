package okada

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Check values from Okada (1985), table 2, case 2: x=2, y=3, d=4, dip=70,
// L=3, W=2, unit slip, nu=0.25.
func TestRectangularTable2(t *testing.T) {
	a := assert.New(t)

	ux, uy, uz := Rectangular(2, 3, 4, 70, 3, 2, 1, 0, 0, 0.25)
	a.InEpsilon(-8.689e-3, ux, 1e-3)
	a.InEpsilon(-4.298e-3, uy, 1e-3)
	a.InEpsilon(-2.747e-3, uz, 1e-3)

	ux, uy, uz = Rectangular(2, 3, 4, 70, 3, 2, 0, 1, 0, 0.25)
	a.InEpsilon(-4.682e-3, ux, 1e-3)
	a.InEpsilon(-3.527e-2, uy, 1e-3)
	a.InEpsilon(-3.564e-2, uz, 1e-3)

	ux, uy, uz = Rectangular(2, 3, 4, 70, 3, 2, 0, 0, 1, 0.25)
	a.InEpsilon(-2.660e-4, ux, 1e-3)
	a.InEpsilon(1.056e-2, uy, 1e-3)
	a.InEpsilon(3.214e-3, uz, 1e-3)
}

func TestRectangularVerticalStrikeSlip(t *testing.T) {
	a := assert.New(t)

	const (
		d = 3.0
		L = 4.0
		W = 2.0
	)
	for _, y := range []float64{0.5, 1, 2.5} {
		upx, upy, upz := Rectangular(L/2, y, d, 90, L, W, 1, 0, 0, 0.25)
		umx, umy, umz := Rectangular(L/2, -y, d, 90, L, W, 1, 0, 0, 0.25)
		a.InDelta(-upx, umx, 1e-12)
		a.InDelta(upy, umy, 1e-12)
		a.InDelta(-upz, umz, 1e-12)
		a.NotZero(upx)
	}

	// on the trace the odd components vanish and nothing blows up
	ux, uy, uz := Rectangular(L/2, 0, d, 90, L, W, 1, 0, 0, 0.25)
	a.InDelta(0, ux, 1e-18)
	a.InDelta(0, uz, 1e-18)
	a.False(math.IsNaN(uy))
	a.False(math.IsInf(uy, 0))
}

func TestRectangularFarFieldDecay(t *testing.T) {
	a := assert.New(t)

	ux, uy, uz := Rectangular(500, 500, 4, 70, 3, 2, 1, 1, 0, 0.25)
	r := math.Sqrt(ux*ux + uy*uy + uz*uz)
	a.Less(r, 1e-5)
	a.Greater(r, 0.0)
}

func TestRectangularZeroSlip(t *testing.T) {
	a := assert.New(t)

	ux, uy, uz := Rectangular(2, 3, 4, 70, 3, 2, 0, 0, 0, 0.25)
	a.Zero(ux)
	a.Zero(uy)
	a.Zero(uz)
}
