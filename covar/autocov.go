package covar

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/geniusinaction/GEO244/raster"
)

// Autocovariance is the circular autocovariance of a detrended field,
// shifted so zero lag sits at (CenterRow, CenterCol). Cov and Dist are
// row-major grids of the field's shape; Dist holds the lag distance of each
// cell in meters.
type Autocovariance struct {
	Rows      int
	Cols      int
	CenterRow int
	CenterCol int
	PixelSize float64
	Cov       []float64
	Dist      []float64
}

// Autocov estimates the autocovariance of f by FFT. Missing pixels enter
// the transform as zeros and the result is normalized by the count of valid
// pixels, which biases long lags low when coverage is sparse; callers fit
// only the short-lag profile where the bias is small. The field's pixel
// size must be set. ErrNoValidData is returned for an all-missing field.
func Autocov(f *raster.Field) (*Autocovariance, error) {
	if f.PixelSize <= 0 {
		return nil, fmt.Errorf("covar: field pixel size not set")
	}
	nvalid := f.CountValid()
	if nvalid == 0 {
		return nil, fmt.Errorf("%w: autocovariance of %dx%d field", ErrNoValidData, f.Rows, f.Cols)
	}

	rows, cols := f.Rows, f.Cols
	z := make([]complex128, rows*cols)
	for i, v := range f.Data {
		if !math.IsNaN(v) {
			z[i] = complex(v, 0)
		}
	}

	transform2(z, rows, cols, false)
	for i, c := range z {
		z[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	transform2(z, rows, cols, true)

	ac := &Autocovariance{
		Rows:      rows,
		Cols:      cols,
		CenterRow: rows / 2,
		CenterCol: cols / 2,
		PixelSize: f.PixelSize,
		Cov:       make([]float64, rows*cols),
		Dist:      make([]float64, rows*cols),
	}

	// both transform passes are unnormalized, so the round trip scales by
	// rows*cols; dividing by the valid count turns the sum into an average
	norm := float64(rows*cols) * float64(nvalid)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sr := (r + ac.CenterRow) % rows
			sc := (c + ac.CenterCol) % cols
			ac.Cov[sr*cols+sc] = real(z[r*cols+c]) / norm
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			ac.Dist[r*cols+c] = math.Hypot(float64(r-ac.CenterRow), float64(c-ac.CenterCol)) * f.PixelSize
		}
	}
	return ac, nil
}

// Flatten returns the distance and covariance samples handed to radial
// binning: the shifted grids in row-major order, truncated past the center
// where the circular autocovariance repeats itself.
func (ac *Autocovariance) Flatten() (dist, cov []float64) {
	cut := ac.Rows + (ac.Rows*ac.Cols+1)/2
	if cut > len(ac.Cov) {
		cut = len(ac.Cov)
	}
	return ac.Dist[:cut], ac.Cov[:cut]
}

// transform2 applies an unnormalized 2D DFT to the row-major grid in place,
// rows first then columns. inverse selects the backward transform.
func transform2(z []complex128, rows, cols int, inverse bool) {
	rowT := fourier.NewCmplxFFT(cols)
	buf := make([]complex128, cols)
	for r := 0; r < rows; r++ {
		row := z[r*cols : (r+1)*cols]
		if inverse {
			rowT.Sequence(buf, row)
		} else {
			rowT.Coefficients(buf, row)
		}
		copy(row, buf)
	}

	colT := fourier.NewCmplxFFT(rows)
	col := make([]complex128, rows)
	cbuf := make([]complex128, rows)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			col[r] = z[r*cols+c]
		}
		if inverse {
			colT.Sequence(cbuf, col)
		} else {
			colT.Coefficients(cbuf, col)
		}
		for r := 0; r < rows; r++ {
			z[r*cols+c] = cbuf[r]
		}
	}
}
