package scatter

import (
	"errors"
	"fmt"

	"github.com/flywave/go-geo"
	"github.com/flywave/go-geom"
	"github.com/flywave/go-geom/general"
	vec2d "github.com/flywave/go3d/float64/vec2"
)

// ErrGeometry marks features whose geometry cannot carry a displacement
// observation.
var ErrGeometry = errors.New("scatter: unsupported geometry")

// FromFeatureCollection extracts observation points from GeoJSON features.
// Point and MultiPoint geometries are accepted; the third coordinate is the
// displacement. Positions arrive in longitude and latitude and are
// reprojected to target when it differs from EPSG:4326.
func FromFeatureCollection(fc *geom.FeatureCollection, target geo.Proj) (Points, error) {
	var pts Points
	add := func(x, y, d float64) {
		if target != nil && !target.Eq(epsg4326) {
			pos2 := []vec2d.T{{x, y}}
			pos2 = epsg4326.TransformTo(target, pos2)
			x, y = pos2[0][0], pos2[0][1]
		}
		pts = append(pts, Point{X: x, Y: y, Disp: d, Index: len(pts)})
	}

	for i, fea := range fc.Features {
		switch g := fea.Geometry.(type) {
		case *general.Point:
			if len(g.Data()) < 3 {
				return nil, fmt.Errorf("%w: feature %d point has no third coordinate", ErrGeometry, i)
			}
			add(g.X(), g.Y(), g.Data()[2])
		case *general.MultiPoint:
			for _, pos := range g.Points() {
				if len(pos.Data()) < 3 {
					return nil, fmt.Errorf("%w: feature %d point has no third coordinate", ErrGeometry, i)
				}
				add(pos.X(), pos.Y(), pos.Data()[2])
			}
		default:
			return nil, fmt.Errorf("%w: feature %d is %T", ErrGeometry, i, fea.Geometry)
		}
	}
	return pts, nil
}
