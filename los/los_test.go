package los

import (
	"math"
	"testing"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/stretchr/testify/assert"
)

func TestVectorIsUnit(t *testing.T) {
	a := assert.New(t)

	for _, c := range []struct{ inc, head float64 }{
		{0, 0}, {23, 190}, {35, 348}, {41, 102},
	} {
		v := Vector(c.inc, c.head)
		a.InDelta(1, v.Length(), 1e-12)
	}
}

func TestVectorGeometry(t *testing.T) {
	a := assert.New(t)

	// vertical look: straight up regardless of heading
	v := Vector(0, 123)
	a.InDelta(0, v[0], 1e-12)
	a.InDelta(0, v[1], 1e-12)
	a.InDelta(1, v[2], 1e-12)

	// descending pass, right-looking: the sensor sits east of the target
	d := Vector(35, 190)
	a.Greater(d[0], 0.0)
	a.InDelta(math.Cos(35*math.Pi/180), d[2], 1e-12)

	// ascending pass: the sensor sits west of the target
	asc := Vector(35, 350)
	a.Less(asc[0], 0.0)
}

func TestProject(t *testing.T) {
	a := assert.New(t)

	up := vec3d.T{0, 0, 1}

	// pure uplift seen from straight above moves toward the sensor
	a.InDelta(0.05, Project(vec3d.T{0, 0, 0.05}, up), 1e-12)

	// horizontal motion is invisible to a vertical look
	a.InDelta(0, Project(vec3d.T{0.3, -0.2, 0}, up), 1e-12)

	look := Vector(30, 190)
	east := vec3d.T{0.1, 0, 0}
	a.InDelta(0.1*look[0], Project(east, look), 1e-12)
}
