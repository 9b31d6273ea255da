package gnss

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/geniusinaction/GEO244/internal/lsq"
)

// Transient is a postseismic relaxation term a log(1 + dt/tau), switched on
// at Epoch, with relaxation time Tau in years. Tau is held fixed; only the
// amplitude is estimated.
type Transient struct {
	Epoch float64 `yaml:"epoch" json:"epoch"`
	Tau   float64 `yaml:"tau" json:"tau"`
}

// Model lists the terms fitted to each component of a series: an intercept
// and velocity always, a Heaviside step at each offset epoch, a logarithmic
// transient for each entry, and annual plus semiannual harmonics when
// Seasonal is set. A zero Reference epoch means the first epoch of the
// series.
type Model struct {
	Reference  float64     `yaml:"reference" json:"reference"`
	Offsets    []float64   `yaml:"offsets" json:"offsets"`
	Transients []Transient `yaml:"transients" json:"transients"`
	Seasonal   bool        `yaml:"seasonal" json:"seasonal"`
}

func (m Model) terms() int {
	n := 2 + len(m.Offsets) + len(m.Transients)
	if m.Seasonal {
		n += 4
	}
	return n
}

// Part selects one group of fitted terms.
type Part int

const (
	Trend Part = iota
	Steps
	Transients
	Seasonal
)

func (p Part) String() string {
	switch p {
	case Trend:
		return "trend"
	case Steps:
		return "steps"
	case Transients:
		return "transients"
	case Seasonal:
		return "seasonal"
	}
	return "unknown"
}

// Fit is the decomposition of one series component. Params and Sigmas are
// ordered as Names; Fitted and Residuals are at the series epochs.
type Fit struct {
	Component Component
	Names     []string
	Params    []float64
	Sigmas    []float64
	Fitted    []float64
	Residuals []float64
	RMS       float64

	kinds  []Part
	design *mat.Dense
}

// Velocity returns the secular rate estimate and its one-sigma uncertainty,
// in meters per year.
func (f *Fit) Velocity() (v, sigma float64) {
	return f.Params[1], f.Sigmas[1]
}

// Part returns the summed contribution of one group of terms at the series
// epochs, so a series can be split into trend, step, transient and seasonal
// curves.
func (f *Fit) Part(p Part) []float64 {
	rows, _ := f.design.Dims()
	out := make([]float64, rows)
	for j, k := range f.kinds {
		if k != p {
			continue
		}
		for i := 0; i < rows; i++ {
			out[i] += f.Params[j] * f.design.At(i, j)
		}
	}
	return out
}

// Decomposition groups the fits of the three components of a series.
type Decomposition struct {
	East  *Fit
	North *Fit
	Up    *Fit
}

// Fit returns the fit for one component.
func (d *Decomposition) Fit(c Component) *Fit {
	switch c {
	case East:
		return d.East
	case North:
		return d.North
	case Up:
		return d.Up
	}
	return nil
}

// Decompose fits the model to all three components.
func Decompose(s *Series, m Model) (*Decomposition, error) {
	var d Decomposition
	for _, c := range []Component{East, North, Up} {
		fit, err := DecomposeComponent(s, c, m)
		if err != nil {
			return nil, err
		}
		switch c {
		case East:
			d.East = fit
		case North:
			d.North = fit
		case Up:
			d.Up = fit
		}
	}
	return &d, nil
}

// DecomposeComponent fits the model to one component by weighted linear
// least squares. Per-epoch sigmas, when the series has them, weight the fit
// by 1/sigma^2; uncertainties come from the solution covariance.
func DecomposeComponent(s *Series, c Component, m Model) (*Fit, error) {
	vals := s.Values(c)
	if len(vals) < m.terms() {
		return nil, fmt.Errorf("%w: %d epochs for %d terms", ErrShortSeries, len(vals), m.terms())
	}
	g, names, kinds, err := designMatrix(s.Epochs, m)
	if err != nil {
		return nil, err
	}

	var w mat.Matrix
	if sig := s.Sigmas(c); sig != nil {
		d := make([]float64, len(sig))
		for i, sg := range sig {
			if sg <= 0 {
				return nil, fmt.Errorf("gnss: nonpositive sigma %g at epoch %.4f", sg, s.Epochs[i])
			}
			d[i] = 1 / (sg * sg)
		}
		w = mat.NewDiagDense(len(d), d)
	}

	x, cov, err := lsq.Solve(g, mat.NewVecDense(len(vals), vals), w)
	if err != nil {
		return nil, fmt.Errorf("gnss: %s component: %w", c, err)
	}

	fit := &Fit{
		Component: c,
		Names:     names,
		Params:    make([]float64, x.Len()),
		Sigmas:    lsq.Sigmas(cov),
		Fitted:    make([]float64, len(vals)),
		Residuals: make([]float64, len(vals)),
		kinds:     kinds,
		design:    g,
	}
	for j := range fit.Params {
		fit.Params[j] = x.AtVec(j)
	}

	var fitted mat.VecDense
	fitted.MulVec(g, x)
	ss := 0.0
	for i := range vals {
		fit.Fitted[i] = fitted.AtVec(i)
		fit.Residuals[i] = vals[i] - fit.Fitted[i]
		ss += fit.Residuals[i] * fit.Residuals[i]
	}
	fit.RMS = math.Sqrt(ss / float64(len(vals)))
	return fit, nil
}

// designMatrix builds one row per epoch with columns for the intercept,
// velocity, each step, each transient and the harmonic pairs. The harmonic
// argument counts years from the reference epoch.
func designMatrix(epochs []float64, m Model) (*mat.Dense, []string, []Part, error) {
	t0 := m.Reference
	if t0 == 0 && len(epochs) > 0 {
		t0 = epochs[0]
	}

	ncol := m.terms()
	g := mat.NewDense(len(epochs), ncol, nil)
	names := make([]string, 0, ncol)
	kinds := make([]Part, 0, ncol)

	names = append(names, "intercept", "velocity")
	kinds = append(kinds, Trend, Trend)
	for _, tk := range m.Offsets {
		names = append(names, fmt.Sprintf("offset@%.4f", tk))
		kinds = append(kinds, Steps)
	}
	for _, tr := range m.Transients {
		if tr.Tau <= 0 {
			return nil, nil, nil, fmt.Errorf("gnss: transient at %.4f has nonpositive tau %g", tr.Epoch, tr.Tau)
		}
		names = append(names, fmt.Sprintf("log@%.4f tau=%g", tr.Epoch, tr.Tau))
		kinds = append(kinds, Transients)
	}
	if m.Seasonal {
		names = append(names, "cos annual", "sin annual", "cos semiannual", "sin semiannual")
		kinds = append(kinds, Seasonal, Seasonal, Seasonal, Seasonal)
	}

	for i, t := range epochs {
		dt := t - t0
		j := 0
		g.Set(i, j, 1)
		j++
		g.Set(i, j, dt)
		j++
		for _, tk := range m.Offsets {
			if t >= tk {
				g.Set(i, j, 1)
			}
			j++
		}
		for _, tr := range m.Transients {
			if d := t - tr.Epoch; d > 0 {
				g.Set(i, j, math.Log1p(d/tr.Tau))
			}
			j++
		}
		if m.Seasonal {
			g.Set(i, j, math.Cos(2*math.Pi*dt))
			g.Set(i, j+1, math.Sin(2*math.Pi*dt))
			g.Set(i, j+2, math.Cos(4*math.Pi*dt))
			g.Set(i, j+3, math.Sin(4*math.Pi*dt))
		}
	}
	return g, names, kinds, nil
}
