package covar

import (
	"fmt"
	"math"
)

// Bin is one annulus of a radial covariance profile. Dist is the inner edge
// of the annulus in meters. Empty annuli carry Count 0 and NaN Cov.
type Bin struct {
	Dist  float64
	Cov   float64
	Count int
}

// Profile is the autocovariance collapsed to mean covariance per distance
// annulus.
type Profile struct {
	Bins     []Bin
	BinWidth float64
}

// Profile bins the autocovariance samples by lag distance. Annuli are
// binWidth wide starting at zero; a binWidth of zero defaults to twice the
// pixel size. Lags beyond the shorter half-extent of the grid fall in
// incomplete annuli and are discarded.
func (ac *Autocovariance) Profile(binWidth float64) (*Profile, error) {
	if binWidth < 0 {
		return nil, fmt.Errorf("covar: negative bin width %g", binWidth)
	}
	if binWidth == 0 {
		binWidth = 2 * ac.PixelSize
	}
	if binWidth <= 0 {
		return nil, fmt.Errorf("covar: bin width unset and no pixel size to derive it")
	}

	rmax := math.Min(float64(ac.CenterRow), float64(ac.CenterCol)) * ac.PixelSize
	nbins := int(rmax/binWidth) + 1

	sums := make([]float64, nbins)
	counts := make([]int, nbins)
	dist, cov := ac.Flatten()
	for i, d := range dist {
		if d > rmax {
			continue
		}
		b := int(d / binWidth)
		if b >= nbins {
			b = nbins - 1
		}
		sums[b] += cov[i]
		counts[b]++
	}

	p := &Profile{Bins: make([]Bin, nbins), BinWidth: binWidth}
	for b := range p.Bins {
		p.Bins[b].Dist = float64(b) * binWidth
		p.Bins[b].Count = counts[b]
		if counts[b] > 0 {
			p.Bins[b].Cov = sums[b] / float64(counts[b])
		} else {
			p.Bins[b].Cov = math.NaN()
		}
	}
	return p, nil
}

// HasEmpty reports whether any annulus collected no samples.
func (p *Profile) HasEmpty() bool {
	for _, b := range p.Bins {
		if b.Count == 0 {
			return true
		}
	}
	return false
}

// Clean returns a copy of the profile with empty annuli dropped.
func (p *Profile) Clean() *Profile {
	q := &Profile{BinWidth: p.BinWidth}
	for _, b := range p.Bins {
		if b.Count > 0 {
			q.Bins = append(q.Bins, b)
		}
	}
	return q
}
