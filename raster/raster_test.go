package raster

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/flywave/go-geo"
	vec2d "github.com/flywave/go3d/float64/vec2"
	"github.com/stretchr/testify/assert"
)

func TestNewAllMissing(t *testing.T) {
	a := assert.New(t)

	f := New(3, 4, 100)
	a.Equal(3, f.Rows)
	a.Equal(4, f.Cols)
	a.Equal(12, len(f.Data))
	a.Equal(0, f.CountValid())

	f.Set(1, 2, 7.5)
	a.Equal(7.5, f.At(1, 2))
	a.True(f.IsValid(1, 2))
	a.False(f.IsValid(0, 0))
	a.Equal(1, f.CountValid())
}

func TestApplyMaskAndThreshold(t *testing.T) {
	a := assert.New(t)

	f := New(2, 2, 1)
	for i := range f.Data {
		f.Data[i] = float64(i + 1)
	}

	mask := New(2, 2, 1)
	mask.Set(0, 0, 1)
	mask.Set(0, 1, 0)
	mask.Set(1, 0, 1)
	// (1,1) left NaN
	a.NoError(f.ApplyMask(mask))
	a.True(f.IsValid(0, 0))
	a.False(f.IsValid(0, 1))
	a.True(f.IsValid(1, 0))
	a.False(f.IsValid(1, 1))

	coh := New(2, 2, 1)
	coh.Set(0, 0, 0.9)
	coh.Set(1, 0, 0.2)
	a.NoError(f.Threshold(coh, 0.5))
	a.True(f.IsValid(0, 0))
	a.False(f.IsValid(1, 0))

	bad := New(3, 2, 1)
	a.Error(f.ApplyMask(bad))
	a.Error(f.Threshold(bad, 0.5))
}

func TestCrop(t *testing.T) {
	a := assert.New(t)

	f := New(5, 5, 1)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			f.Set(r, c, float64(10*r+c))
		}
	}
	f.SetGeoreference(geo.NewGeoReference(vec2d.Rect{
		Min: vec2d.T{0, 0}, Max: vec2d.T{5, 5},
	}, geo.NewProj(3857)))

	g, err := f.Crop(2, 1, 4, 3)
	a.NoError(err)
	a.Equal(2, g.Rows)
	a.Equal(2, g.Cols)
	a.Equal(21.0, g.At(0, 0))
	a.Equal(32.0, g.At(1, 1))

	// trimmed bounds follow the kept cells
	b := g.Bounds()
	a.InDelta(1, b.Min[0], 1e-12)
	a.InDelta(3, b.Max[0], 1e-12)
	a.InDelta(1, b.Min[1], 1e-12)
	a.InDelta(3, b.Max[1], 1e-12)

	x, y := g.XY(0, 0)
	px, py := f.XY(2, 1)
	a.InDelta(px, x, 1e-12)
	a.InDelta(py, y, 1e-12)

	_, err = f.Crop(0, 0, 6, 2)
	a.Error(err)
	_, err = f.Crop(3, 0, 3, 2)
	a.Error(err)
}

func TestScalePhase(t *testing.T) {
	a := assert.New(t)

	const wavelength = 0.0556
	f := New(1, 2, 1)
	f.Set(0, 0, 2*math.Pi)
	f.Set(0, 1, -2*math.Pi)
	f.ScalePhase(wavelength)

	// one phase cycle is half a wavelength of range change
	a.InDelta(-wavelength/2, f.At(0, 0), 1e-12)
	a.InDelta(wavelength/2, f.At(0, 1), 1e-12)
}

func TestMetricPixelSize(t *testing.T) {
	a := assert.New(t)

	f := New(20, 10, 0)
	f.SetGeoreference(geo.NewGeoReference(vec2d.Rect{
		Min: vec2d.T{0, 0}, Max: vec2d.T{1000, 2000},
	}, geo.NewProj(3857)))

	ps, err := f.MetricPixelSize()
	a.NoError(err)
	a.InDelta(100, ps, 1e-9)

	g := New(4, 4, 0)
	_, err = g.MetricPixelSize()
	a.Error(err)
}

func TestMinMax(t *testing.T) {
	a := assert.New(t)

	f := New(2, 2, 1)
	_, _, ok := f.MinMax()
	a.False(ok)

	f.Set(0, 0, -3)
	f.Set(1, 1, 8)
	min, max, ok := f.MinMax()
	a.True(ok)
	a.Equal(-3.0, min)
	a.Equal(8.0, max)
}

func TestClone(t *testing.T) {
	a := assert.New(t)

	f := New(2, 2, 5)
	f.Set(0, 0, 1)
	g := f.Clone()
	g.Set(0, 0, 9)
	a.Equal(1.0, f.At(0, 0))
	a.Equal(9.0, g.At(0, 0))
	a.Equal(f.PixelSize, g.PixelSize)
}

func TestReadErrors(t *testing.T) {
	a := assert.New(t)

	_, err := Read(filepath.Join(t.TempDir(), "missing.tif"), Options{})
	a.ErrorIs(err, ErrRead)

	band := -1
	_, err = Read(filepath.Join(t.TempDir(), "any.tif"), Options{Band: &band})
	a.ErrorIs(err, ErrBand)
}
