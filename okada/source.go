package okada

import (
	"fmt"
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
	vec3d "github.com/flywave/go3d/float64/vec3"

	"github.com/geniusinaction/GEO244/los"
	"github.com/geniusinaction/GEO244/raster"
	"github.com/geniusinaction/GEO244/scatter"
)

// Source is a rectangular dislocation in map coordinates. X, Y locate the
// surface projection of the midpoint of the up-dip edge, Depth is the depth
// of that edge. Strike is in degrees clockwise from north, Dip in degrees
// down to the right of strike, Rake in degrees counterclockwise from strike
// within the fault plane (0 left-lateral, 90 reverse). Lengths, Slip and
// Opening are in meters.
type Source struct {
	X       float64 `yaml:"x" json:"x"`
	Y       float64 `yaml:"y" json:"y"`
	Depth   float64 `yaml:"depth" json:"depth"`
	Strike  float64 `yaml:"strike" json:"strike"`
	Dip     float64 `yaml:"dip" json:"dip"`
	Rake    float64 `yaml:"rake" json:"rake"`
	Slip    float64 `yaml:"slip" json:"slip"`
	Opening float64 `yaml:"opening" json:"opening"`
	Length  float64 `yaml:"length" json:"length"`
	Width   float64 `yaml:"width" json:"width"`
	Nu      float64 `yaml:"nu" json:"nu"`
}

// Validate rejects geometries the half-space solution cannot represent.
func (s *Source) Validate() error {
	if s.Length <= 0 || s.Width <= 0 {
		return fmt.Errorf("okada: fault %gx%g m has no area", s.Length, s.Width)
	}
	if s.Dip <= 0 || s.Dip > 90 {
		return fmt.Errorf("okada: dip %g outside (0, 90]", s.Dip)
	}
	if s.Depth < 0 {
		return fmt.Errorf("okada: negative top depth %g", s.Depth)
	}
	return nil
}

func (s *Source) nu() float64 {
	if s.Nu == 0 {
		return 0.25
	}
	return s.Nu
}

// Displace returns the east, north, up surface displacement at map
// position (e, n), in meters.
func (s *Source) Displace(e, n float64) vec3d.T {
	fwd := rotator{degrees: 90 - s.Strike}
	back := rotator{degrees: s.Strike - 90}
	return s.displace(e, n, fwd, back)
}

func (s *Source) displace(e, n float64, fwd, back rotator) vec3d.T {
	f := fwd.rotateVector(vec2d.T{e - s.X, n - s.Y})

	sd := math.Sin(degToRad(s.Dip))
	cd := math.Cos(degToRad(s.Dip))
	x := f[0] + s.Length/2
	y := f[1] + s.Width*cd
	d := s.Depth + s.Width*sd

	rake := degToRad(s.Rake)
	u1 := s.Slip * math.Cos(rake)
	u2 := s.Slip * math.Sin(rake)

	ux, uy, uz := Rectangular(x, y, d, s.Dip, s.Length, s.Width, u1, u2, s.Opening, s.nu())
	h := back.rotateVector(vec2d.T{ux, uy})
	return vec3d.T{h[0], h[1], uz}
}

// DisplaceGrid evaluates the model over the cells of a georeferenced grid
// whose coordinates are in meters, returning east, north and up fields of
// the template's shape.
func (s *Source) DisplaceGrid(tpl *raster.Field) (e, n, u *raster.Field, err error) {
	if !tpl.HasGeoreference() {
		return nil, nil, nil, fmt.Errorf("okada: template grid has no georeference")
	}
	fwd := rotator{degrees: 90 - s.Strike}
	back := rotator{degrees: s.Strike - 90}

	e = raster.New(tpl.Rows, tpl.Cols, tpl.PixelSize)
	n = raster.New(tpl.Rows, tpl.Cols, tpl.PixelSize)
	u = raster.New(tpl.Rows, tpl.Cols, tpl.PixelSize)
	e.CopyGeoreference(tpl)
	n.CopyGeoreference(tpl)
	u.CopyGeoreference(tpl)

	for r := 0; r < tpl.Rows; r++ {
		for c := 0; c < tpl.Cols; c++ {
			px, py := tpl.XY(r, c)
			d := s.displace(px, py, fwd, back)
			e.Set(r, c, d[0])
			n.Set(r, c, d[1])
			u.Set(r, c, d[2])
		}
	}
	return e, n, u, nil
}

// LOSGrid evaluates the model over a georeferenced grid and projects the
// displacement onto a constant look vector.
func (s *Source) LOSGrid(tpl *raster.Field, look vec3d.T) (*raster.Field, error) {
	if !tpl.HasGeoreference() {
		return nil, fmt.Errorf("okada: template grid has no georeference")
	}
	fwd := rotator{degrees: 90 - s.Strike}
	back := rotator{degrees: s.Strike - 90}

	out := raster.New(tpl.Rows, tpl.Cols, tpl.PixelSize)
	out.CopyGeoreference(tpl)
	for r := 0; r < tpl.Rows; r++ {
		for c := 0; c < tpl.Cols; c++ {
			px, py := tpl.XY(r, c)
			out.Set(r, c, los.Project(s.displace(px, py, fwd, back), look))
		}
	}
	return out, nil
}

// PredictLOS evaluates the model at each observation point and projects the
// displacement onto the point's own look vector.
func (s *Source) PredictLOS(pts scatter.Points) []float64 {
	fwd := rotator{degrees: 90 - s.Strike}
	back := rotator{degrees: s.Strike - 90}

	pred := make([]float64, len(pts))
	for i := range pts {
		pred[i] = los.Project(s.displace(pts[i].X, pts[i].Y, fwd, back), pts[i].Look)
	}
	return pred
}
