package gnss

import "github.com/flywave/go-geoid"

// EllipsoidalHeight lifts an orthometric height at (lon, lat) onto the
// ellipsoid through the given geoid model, for comparing GNSS vertical
// positions against leveled benchmarks. Heights already above the ellipsoid
// (HAE) or with an unknown datum pass through unchanged.
func EllipsoidalHeight(datum geoid.VerticalDatum, lon, lat, h float64) float64 {
	if datum == geoid.HAE || datum == geoid.UNKNOWN {
		return h
	}
	gid := geoid.NewGeoid(datum, false)
	return gid.ConvertHeight(lon, lat, h, geoid.GEOIDTOELLIPSOID)
}
