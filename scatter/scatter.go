// Package scatter handles irregular ground-displacement observations:
// downsampled InSAR pixels or GNSS offsets with a look direction each. Points
// live in a local projected frame with coordinates in meters.
package scatter

import (
	"github.com/flywave/go-geo"
	vec2d "github.com/flywave/go3d/float64/vec2"
	vec3d "github.com/flywave/go3d/float64/vec3"
)

var epsg4326 geo.Proj

func init() {
	epsg4326 = geo.NewProj(4326)
}

// Point is one displacement observation. Look is the unit pointing vector
// from the ground toward the sensor in east, north, up components; it is
// zero when the dataset carries no look information. Index identifies the
// point within its dataset; constructors number points sequentially and
// Parse keeps whatever the file says.
type Point struct {
	X     float64
	Y     float64
	Disp  float64
	Sigma float64
	Look  vec3d.T
	Index int
}

type Points []Point

// Bounds returns the planar extent of the points.
func (pts Points) Bounds() vec2d.Rect {
	r := vec2d.Rect{Min: vec2d.MaxVal, Max: vec2d.MinVal}
	for i := range pts {
		p := vec2d.T{pts[i].X, pts[i].Y}
		r.Extend(&p)
	}
	return r
}

// Positions returns the point coordinates as vectors, in input order.
func (pts Points) Positions() []vec2d.T {
	ps := make([]vec2d.T, len(pts))
	for i := range pts {
		ps[i] = vec2d.T{pts[i].X, pts[i].Y}
	}
	return ps
}

// Displacements returns the observed values, in input order.
func (pts Points) Displacements() []float64 {
	d := make([]float64, len(pts))
	for i := range pts {
		d[i] = pts[i].Disp
	}
	return d
}

// Sigmas returns the observation uncertainties, in input order.
func (pts Points) Sigmas() []float64 {
	s := make([]float64, len(pts))
	for i := range pts {
		s[i] = pts[i].Sigma
	}
	return s
}

// SetLook overwrites the look vector of every point, for datasets acquired
// with a single viewing geometry.
func (pts Points) SetLook(look vec3d.T) {
	for i := range pts {
		pts[i].Look = look
	}
}
