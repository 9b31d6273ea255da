package covar

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/geniusinaction/GEO244/internal/lsq"
	"github.com/geniusinaction/GEO244/raster"
)

// Plane holds the coefficients of d = Offset + XSlope*col + YSlope*row
// fitted over a grid, in sample units per pixel.
type Plane struct {
	Offset float64
	XSlope float64
	YSlope float64
}

// Eval returns the plane value at a grid cell.
func (p Plane) Eval(row, col int) float64 {
	return p.Offset + p.XSlope*float64(col) + p.YSlope*float64(row)
}

// FitPlane fits a plane to the valid pixels of f by least squares in pixel
// coordinates. ErrInsufficientData is returned when fewer than three valid
// pixels exist.
func FitPlane(f *raster.Field) (Plane, error) {
	nvalid := f.CountValid()
	if nvalid < 3 {
		return Plane{}, fmt.Errorf("%w: plane fit needs 3 valid pixels, have %d",
			ErrInsufficientData, nvalid)
	}

	G := mat.NewDense(nvalid, 3, nil)
	d := mat.NewVecDense(nvalid, nil)
	k := 0
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			v := f.At(r, c)
			if math.IsNaN(v) {
				continue
			}
			G.Set(k, 0, 1)
			G.Set(k, 1, float64(c))
			G.Set(k, 2, float64(r))
			d.SetVec(k, v)
			k++
		}
	}

	x, _, err := lsq.Solve(G, d, nil)
	if err != nil {
		return Plane{}, fmt.Errorf("covar: plane fit: %w", err)
	}
	return Plane{Offset: x.AtVec(0), XSlope: x.AtVec(1), YSlope: x.AtVec(2)}, nil
}

// Detrend removes the best-fit plane from f in place and returns it.
// Missing pixels stay missing.
func Detrend(f *raster.Field) (Plane, error) {
	p, err := FitPlane(f)
	if err != nil {
		return Plane{}, err
	}
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			if f.IsValid(r, c) {
				f.Set(r, c, f.At(r, c)-p.Eval(r, c))
			}
		}
	}
	return p, nil
}

// RemoveMean subtracts the mean of the valid pixels in place and returns
// it. ErrNoValidData is returned for an all-missing field.
func RemoveMean(f *raster.Field) (float64, error) {
	sum, n := 0.0, 0
	for _, v := range f.Data {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: mean of %dx%d field", ErrNoValidData, f.Rows, f.Cols)
	}
	mean := sum / float64(n)
	for i, v := range f.Data {
		if !math.IsNaN(v) {
			f.Data[i] = v - mean
		}
	}
	return mean, nil
}
