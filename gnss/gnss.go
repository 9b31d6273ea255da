// Package gnss reads daily GNSS position time series and decomposes them
// into secular, coseismic, postseismic and seasonal parts by weighted
// linear least squares.
package gnss

import "errors"

var (
	ErrColumns     = errors.New("gnss: wrong column count")
	ErrShortSeries = errors.New("gnss: series shorter than model")
	ErrFetch       = errors.New("gnss: fetch failed")
)

// Component selects one axis of a position series.
type Component int

const (
	East Component = iota
	North
	Up
)

func (c Component) String() string {
	switch c {
	case East:
		return "east"
	case North:
		return "north"
	case Up:
		return "up"
	}
	return "unknown"
}

// Series is a station position time series. Epochs are decimal years,
// positions and sigmas are in meters. Sigma slices may be nil when the
// source file carries no uncertainties.
type Series struct {
	Station string
	Epochs  []float64

	East  []float64
	North []float64
	Up    []float64

	SigmaE []float64
	SigmaN []float64
	SigmaU []float64
}

func (s *Series) Len() int { return len(s.Epochs) }

// Values returns the position column for one component.
func (s *Series) Values(c Component) []float64 {
	switch c {
	case East:
		return s.East
	case North:
		return s.North
	case Up:
		return s.Up
	}
	return nil
}

// Sigmas returns the uncertainty column for one component, or nil when the
// series has none.
func (s *Series) Sigmas(c Component) []float64 {
	switch c {
	case East:
		return s.SigmaE
	case North:
		return s.SigmaN
	case Up:
		return s.SigmaU
	}
	return nil
}

// Span returns the first and last epoch.
func (s *Series) Span() (t0, t1 float64) {
	if len(s.Epochs) == 0 {
		return 0, 0
	}
	return s.Epochs[0], s.Epochs[len(s.Epochs)-1]
}
