package raster

import (
	"fmt"
	"image"
	"math"

	"github.com/flywave/go-cog"
)

// Write stores the field as an LZW-compressed cloud-optimized GeoTIFF.
// NaN pixels are written as the -9999 no-data sentinel. The field must
// carry a georeference.
func Write(path string, f *Field) error {
	if !f.georef {
		return fmt.Errorf("raster: write %s: field has no georeference", path)
	}
	data := make([]float64, len(f.Data))
	for i, v := range f.Data {
		if math.IsNaN(v) {
			data[i] = noData
		} else {
			data[i] = v
		}
	}
	si := [2]uint32{uint32(f.Cols), uint32(f.Rows)}
	rect := image.Rect(0, 0, f.Cols, f.Rows)
	src := cog.NewSource(data, &rect, cog.CTLZW)
	return cog.WriteTile(path, src, f.bounds, f.srs, si, nil)
}
