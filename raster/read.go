package raster

import (
	"errors"
	"fmt"
	"math"

	"github.com/flywave/go-cog"
	"github.com/flywave/go-geo"
)

var (
	// ErrRead marks files the GeoTIFF reader could not open.
	ErrRead = errors.New("raster: unreadable file")
	// ErrBand marks band indexes outside the file and band payloads the
	// loader does not handle.
	ErrBand = errors.New("raster: bad band")
)

// Options tunes Read. The zero value reads band 0 with the conventional
// -9999 no-data sentinel and takes the SRS from the file.
type Options struct {
	Band      *int
	NoData    *float64
	SRS       *string
	PixelSize *float64
}

// Read loads one band of a cloud-optimized GeoTIFF into a Field. No-data
// sentinels become NaN. The ground pixel size is derived from the
// georeference unless the caller pins it.
func Read(path string, opts Options) (*Field, error) {
	band := 0
	if opts.Band != nil {
		band = *opts.Band
	}
	if band < 0 {
		return nil, fmt.Errorf("%w: %s band %d", ErrBand, path, band)
	}
	nodata := noData
	if opts.NoData != nil {
		nodata = *opts.NoData
	}

	rd := cog.Read(path)
	if rd == nil {
		return nil, fmt.Errorf("%w: %s", ErrRead, path)
	}
	if band >= len(rd.Data) {
		return nil, fmt.Errorf("%w: %s has %d bands, band %d requested",
			ErrBand, path, len(rd.Data), band)
	}

	si := rd.GetSize(band)
	f := &Field{Cols: int(si[0]), Rows: int(si[1])}
	f.Data = make([]float64, f.Rows*f.Cols)

	switch data := rd.Data[band].(type) {
	case []float64:
		copy(f.Data, data)
	case []float32:
		for i, v := range data {
			f.Data[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("%w: %s band %d holds %T", ErrBand, path, band, rd.Data[band])
	}
	if len(f.Data) != f.Rows*f.Cols {
		return nil, fmt.Errorf("%w: %s band %d has %d samples for %dx%d",
			ErrBand, path, band, len(f.Data), f.Rows, f.Cols)
	}
	for i, v := range f.Data {
		if v == nodata {
			f.Data[i] = math.NaN()
		}
	}

	var srs geo.Proj
	if epsg, err := rd.GetEPSGCode(band); err == nil {
		srs = geo.NewProj(epsg)
	} else if opts.SRS != nil {
		srs = geo.NewProj(opts.SRS)
	}
	if srs != nil {
		f.setBounds(rd.GetBounds(band), srs)
	}

	if opts.PixelSize != nil {
		f.PixelSize = *opts.PixelSize
	} else if f.georef {
		if ps, err := f.MetricPixelSize(); err == nil {
			f.PixelSize = ps
		}
	}
	return f, nil
}
