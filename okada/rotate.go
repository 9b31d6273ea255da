package okada

import (
	"math"

	mat2d "github.com/flywave/go3d/float64/mat2"
	vec2d "github.com/flywave/go3d/float64/vec2"
)

func degToRad(angle float64) float64 {
	return angle * math.Pi / 180
}

// rotator turns map-frame horizontal vectors by a fixed angle. A rotator of
// 90-strike degrees maps east/north offsets into the fault frame (along
// strike, left of strike); the negated angle maps displacements back.
type rotator struct {
	degrees float64
}

func (r rotator) rotateVector(v vec2d.T) vec2d.T {
	v2 := v
	mat := r.rotationMatrix()
	mat.TransformVec2(&v2)
	return v2
}

func (r rotator) rotationMatrix() (m mat2d.T) {
	rad := degToRad(r.degrees)

	c := math.Cos(rad)
	s := math.Sin(rad)

	m[0][0] = c
	m[0][1] = -s
	m[1][0] = s
	m[1][1] = c

	return m
}
