package scatter

import (
	"fmt"
	"math"

	vec3d "github.com/flywave/go3d/float64/vec3"

	"github.com/geniusinaction/GEO244/raster"
)

// FromField samples the valid pixels of a raster field as observation
// points at the pixel centers, all sharing one look vector. Chain with
// BlockMean to thin a full-resolution displacement field down to an
// invertible point set. The field must carry a georeference.
func FromField(f *raster.Field, look vec3d.T) (Points, error) {
	if !f.HasGeoreference() {
		return nil, fmt.Errorf("scatter: field has no georeference")
	}
	pts := make(Points, 0, f.CountValid())
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			v := f.At(r, c)
			if math.IsNaN(v) {
				continue
			}
			x, y := f.XY(r, c)
			pts = append(pts, Point{X: x, Y: y, Disp: v, Look: look, Index: len(pts)})
		}
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("scatter: field has no valid pixels")
	}
	return pts, nil
}
