package covar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geniusinaction/GEO244/raster"
)

func TestFitPlaneExact(t *testing.T) {
	a := assert.New(t)

	f := raster.New(6, 7, 1)
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			f.Set(r, c, 2+0.5*float64(c)-0.25*float64(r))
		}
	}
	f.Set(1, 1, math.NaN())
	f.Set(4, 5, math.NaN())

	p, err := FitPlane(f)
	a.NoError(err)
	a.InDelta(2, p.Offset, 1e-10)
	a.InDelta(0.5, p.XSlope, 1e-10)
	a.InDelta(-0.25, p.YSlope, 1e-10)
}

func TestDetrendPlaneLeavesZeros(t *testing.T) {
	a := assert.New(t)

	f := raster.New(5, 5, 1)
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			f.Set(r, c, -1+0.3*float64(c)+0.7*float64(r))
		}
	}
	f.Set(2, 3, math.NaN())

	_, err := Detrend(f)
	a.NoError(err)
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			if r == 2 && c == 3 {
				a.False(f.IsValid(r, c))
				continue
			}
			a.InDelta(0, f.At(r, c), 1e-9)
		}
	}
}

func TestDetrendConstantField(t *testing.T) {
	a := assert.New(t)

	f := raster.New(5, 5, 1)
	for i := range f.Data {
		f.Data[i] = 1
	}

	p, err := Detrend(f)
	a.NoError(err)
	a.InDelta(1, p.Offset, 1e-10)
	a.InDelta(0, p.XSlope, 1e-10)
	a.InDelta(0, p.YSlope, 1e-10)

	ac, err := Autocov(f)
	a.NoError(err)
	for _, v := range ac.Cov {
		a.InDelta(0, v, 1e-9)
	}
}

func TestFitPlaneInsufficient(t *testing.T) {
	a := assert.New(t)

	f := raster.New(4, 4, 1)
	f.Set(0, 0, 1)
	f.Set(3, 3, 2)
	_, err := FitPlane(f)
	a.ErrorIs(err, ErrInsufficientData)
}

func TestRemoveMean(t *testing.T) {
	a := assert.New(t)

	f := raster.New(2, 2, 1)
	f.Set(0, 0, 1)
	f.Set(0, 1, 3)
	f.Set(1, 0, 5)

	mean, err := RemoveMean(f)
	a.NoError(err)
	a.InDelta(3, mean, 1e-12)
	a.InDelta(-2, f.At(0, 0), 1e-12)
	a.InDelta(0, f.At(0, 1), 1e-12)
	a.InDelta(2, f.At(1, 0), 1e-12)
	a.False(f.IsValid(1, 1))

	empty := raster.New(2, 2, 1)
	_, err = RemoveMean(empty)
	a.ErrorIs(err, ErrNoValidData)
}
