// Package raster holds geocoded displacement fields in memory: dense
// row-major grids with an explicit missing-value marker and an optional
// georeference. Fields are read from cloud-optimized GeoTIFFs and carry the
// ground pixel size used by the spatial statistics downstream.
package raster

import (
	"fmt"
	"math"

	"github.com/flywave/go-geo"
	vec2d "github.com/flywave/go3d/float64/vec2"
)

const noData = float64(-9999)

var (
	epsg4326 geo.Proj
	epsg3857 geo.Proj
)

func init() {
	epsg4326 = geo.NewProj(4326)
	epsg3857 = geo.NewProj(3857)
}

// Field is a 2D grid of float64 samples in row-major order. Missing pixels
// are NaN. PixelSize is the ground distance covered by one cell, in meters;
// it is zero until set from configuration or derived from the georeference.
type Field struct {
	Rows      int
	Cols      int
	PixelSize float64
	Data      []float64

	bounds vec2d.Rect
	srs    geo.Proj
	georef bool
}

// New returns an all-missing field of the given shape.
func New(rows, cols int, pixelSize float64) *Field {
	d := make([]float64, rows*cols)
	for i := range d {
		d[i] = math.NaN()
	}
	return &Field{Rows: rows, Cols: cols, PixelSize: pixelSize, Data: d}
}

func (f *Field) At(r, c int) float64     { return f.Data[r*f.Cols+c] }
func (f *Field) Set(r, c int, v float64) { f.Data[r*f.Cols+c] = v }

// IsValid reports whether the pixel holds a finite sample.
func (f *Field) IsValid(r, c int) bool {
	v := f.At(r, c)
	return !math.IsNaN(v)
}

// CountValid returns the number of finite samples.
func (f *Field) CountValid() int {
	n := 0
	for _, v := range f.Data {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

func (f *Field) Clone() *Field {
	g := *f
	g.Data = make([]float64, len(f.Data))
	copy(g.Data, f.Data)
	return &g
}

// SetGeoreference attaches the bounding box and SRS the grid maps onto.
func (f *Field) SetGeoreference(ref *geo.GeoReference) {
	f.bounds = ref.GetBBox()
	f.srs = ref.GetSrs()
	f.georef = true
}

func (f *Field) setBounds(bounds vec2d.Rect, srs geo.Proj) {
	f.bounds = bounds
	f.srs = srs
	f.georef = true
}

// HasGeoreference reports whether the grid carries a bounding box.
func (f *Field) HasGeoreference() bool { return f.georef }

// CopyGeoreference takes the bounding box and SRS of src.
func (f *Field) CopyGeoreference(src *Field) {
	f.bounds = src.bounds
	f.srs = src.srs
	f.georef = src.georef
}

// Bounds returns the georeferenced bounding box. The zero Rect is returned
// for fields without a georeference.
func (f *Field) Bounds() vec2d.Rect { return f.bounds }

// Srs returns the spatial reference of the georeference, or nil.
func (f *Field) Srs() geo.Proj { return f.srs }

// XY returns the planar coordinates of the center of cell (r, c) in the
// georeferenced frame. Row 0 is the northern edge of the bounding box.
func (f *Field) XY(r, c int) (x, y float64) {
	cw := (f.bounds.Max[0] - f.bounds.Min[0]) / float64(f.Cols)
	ch := (f.bounds.Max[1] - f.bounds.Min[1]) / float64(f.Rows)
	x = f.bounds.Min[0] + (float64(c)+0.5)*cw
	y = f.bounds.Max[1] - (float64(r)+0.5)*ch
	return x, y
}

// MetricPixelSize estimates the ground size of one cell in meters. Metric
// reference systems use the cell size directly; geographic bounds are
// reprojected to spherical mercator first, which is adequate away from high
// latitudes. An error is returned for fields without a georeference.
func (f *Field) MetricPixelSize() (float64, error) {
	if !f.georef {
		return 0, fmt.Errorf("raster: field has no georeference")
	}
	b := f.bounds
	if f.srs != nil && f.srs.Eq(epsg4326) {
		b = f.srs.TransformRectTo(epsg3857, b, 16)
	}
	w := (b.Max[0] - b.Min[0]) / float64(f.Cols)
	h := (b.Max[1] - b.Min[1]) / float64(f.Rows)
	return (math.Abs(w) + math.Abs(h)) / 2, nil
}

// ApplyMask marks pixels of f missing wherever mask is missing or zero.
// Shapes must agree.
func (f *Field) ApplyMask(mask *Field) error {
	if mask.Rows != f.Rows || mask.Cols != f.Cols {
		return fmt.Errorf("raster: mask shape %dx%d does not match field %dx%d",
			mask.Rows, mask.Cols, f.Rows, f.Cols)
	}
	for i, m := range mask.Data {
		if math.IsNaN(m) || m == 0 {
			f.Data[i] = math.NaN()
		}
	}
	return nil
}

// Threshold marks pixels of f missing wherever the auxiliary quality field
// (interferometric correlation, typically) falls below min.
func (f *Field) Threshold(aux *Field, min float64) error {
	if aux.Rows != f.Rows || aux.Cols != f.Cols {
		return fmt.Errorf("raster: quality field shape %dx%d does not match field %dx%d",
			aux.Rows, aux.Cols, f.Rows, f.Cols)
	}
	for i, q := range aux.Data {
		if math.IsNaN(q) || q < min {
			f.Data[i] = math.NaN()
		}
	}
	return nil
}

// Crop returns the subgrid with rows [r0, r1) and columns [c0, c1). The crop
// keeps the pixel size and trims the georeferenced bounds to match.
func (f *Field) Crop(r0, c0, r1, c1 int) (*Field, error) {
	if r0 < 0 || c0 < 0 || r1 > f.Rows || c1 > f.Cols || r0 >= r1 || c0 >= c1 {
		return nil, fmt.Errorf("raster: crop [%d:%d, %d:%d] outside field %dx%d",
			r0, r1, c0, c1, f.Rows, f.Cols)
	}
	g := &Field{Rows: r1 - r0, Cols: c1 - c0, PixelSize: f.PixelSize}
	g.Data = make([]float64, g.Rows*g.Cols)
	for r := r0; r < r1; r++ {
		copy(g.Data[(r-r0)*g.Cols:(r-r0+1)*g.Cols], f.Data[r*f.Cols+c0:r*f.Cols+c1])
	}
	if f.georef {
		cw := (f.bounds.Max[0] - f.bounds.Min[0]) / float64(f.Cols)
		ch := (f.bounds.Max[1] - f.bounds.Min[1]) / float64(f.Rows)
		g.setBounds(vec2d.Rect{
			Min: vec2d.T{f.bounds.Min[0] + float64(c0)*cw, f.bounds.Max[1] - float64(r1)*ch},
			Max: vec2d.T{f.bounds.Min[0] + float64(c1)*cw, f.bounds.Max[1] - float64(r0)*ch},
		}, f.srs)
	}
	return g, nil
}

// ScalePhase converts radian phase to line-of-sight displacement in meters
// for the given radar wavelength. Positive displacement is motion toward the
// satellite (range decrease).
func (f *Field) ScalePhase(wavelength float64) {
	k := -wavelength / (4 * math.Pi)
	for i, v := range f.Data {
		f.Data[i] = v * k
	}
}

// MinMax returns the extremes over valid pixels. ok is false when the field
// holds no valid pixel.
func (f *Field) MinMax() (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range f.Data {
		if math.IsNaN(v) {
			continue
		}
		ok = true
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}
