package scatter

import (
	"fmt"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

type block struct {
	x, y, disp, sigma float64
	look              vec3d.T
	num               int
}

// BlockMean downsamples the points on a square grid of the given cell size,
// replacing each occupied cell with the mean of its points. Look vectors are
// averaged and renormalized, and the output is renumbered in cell order.
// Cells follow the point extent, so the result is independent of any
// absolute origin.
func (pts Points) BlockMean(cellSize float64) (Points, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("scatter: block size %g", cellSize)
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("scatter: no points")
	}

	bounds := pts.Bounds()
	xs := int((bounds.Max[0] - bounds.Min[0]) / cellSize)
	ys := int((bounds.Max[1] - bounds.Min[1]) / cellSize)
	blocks := make([]block, (xs+1)*(ys+1))

	for i := range pts {
		p := &pts[i]
		x := int((p.X - bounds.Min[0]) / cellSize)
		y := int((p.Y - bounds.Min[1]) / cellSize)
		b := &blocks[x+(xs+1)*y]
		b.x += p.X
		b.y += p.Y
		b.disp += p.Disp
		b.sigma += p.Sigma
		b.look[0] += p.Look[0]
		b.look[1] += p.Look[1]
		b.look[2] += p.Look[2]
		b.num++
	}

	out := make(Points, 0, len(blocks))
	for i := range blocks {
		b := &blocks[i]
		if b.num == 0 {
			continue
		}
		inv := 1 / float64(b.num)
		look := vec3d.T{b.look[0] * inv, b.look[1] * inv, b.look[2] * inv}
		if l := look.Length(); l > 0 {
			look[0] /= l
			look[1] /= l
			look[2] /= l
		}
		out = append(out, Point{
			X:     b.x * inv,
			Y:     b.y * inv,
			Disp:  b.disp * inv,
			Sigma: b.sigma * inv,
			Look:  look,
			Index: len(out),
		})
	}
	return out, nil
}
