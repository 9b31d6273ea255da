// Package los handles radar line-of-sight geometry. Look vectors point from
// the ground to the sensor in east, north, up components; positive
// line-of-sight displacement moves the ground toward the sensor.
package los

import (
	"math"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

// Vector returns the unit pointing vector for a right-looking SAR.
// Incidence is measured from vertical and heading clockwise from north at
// the acquisition, both in degrees.
func Vector(incidence, heading float64) vec3d.T {
	inc := incidence * math.Pi / 180
	head := heading * math.Pi / 180
	return vec3d.T{
		-math.Sin(inc) * math.Cos(head),
		math.Sin(inc) * math.Sin(head),
		math.Cos(inc),
	}
}

// Project maps an east, north, up displacement onto a look direction.
func Project(disp, look vec3d.T) float64 {
	return vec3d.Dot(&disp, &look)
}
