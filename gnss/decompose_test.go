package gnss

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// seismic is a noiseless series with a known trend, coseismic step,
// postseismic transient and seasonal cycle on every component.
func seismic() (*Series, Model) {
	const (
		t0   = 2010.0
		teq  = 2012.1
		tau  = 0.1
		off  = -0.030
		amp  = 0.020
		icpt = 0.005
		vel  = 0.012
		c1   = 0.003
		s1   = -0.002
		c2   = 0.001
		s2   = 0.0005
	)
	s := &Series{Station: "SYNT"}
	for i := 0; i < 201; i++ {
		t := t0 + 0.02*float64(i)
		v := icpt + vel*(t-t0) +
			c1*math.Cos(2*math.Pi*(t-t0)) + s1*math.Sin(2*math.Pi*(t-t0)) +
			c2*math.Cos(4*math.Pi*(t-t0)) + s2*math.Sin(4*math.Pi*(t-t0))
		if t >= teq {
			v += off + amp*math.Log1p((t-teq)/tau)
		}
		s.Epochs = append(s.Epochs, t)
		s.East = append(s.East, v)
		s.North = append(s.North, 2*v)
		s.Up = append(s.Up, -v)
	}
	m := Model{
		Offsets:    []float64{teq},
		Transients: []Transient{{Epoch: teq, Tau: tau}},
		Seasonal:   true,
	}
	return s, m
}

func TestDecomposeComponentRecovers(t *testing.T) {
	a := assert.New(t)
	s, m := seismic()

	fit, err := DecomposeComponent(s, East, m)
	a.NoError(err)
	a.Equal(East, fit.Component)
	a.Equal([]string{
		"intercept", "velocity", "offset@2012.1000", "log@2012.1000 tau=0.1",
		"cos annual", "sin annual", "cos semiannual", "sin semiannual",
	}, fit.Names)

	want := []float64{0.005, 0.012, -0.030, 0.020, 0.003, -0.002, 0.001, 0.0005}
	for j, p := range fit.Params {
		a.InDelta(want[j], p, 1e-8, fit.Names[j])
	}
	v, sig := fit.Velocity()
	a.InDelta(0.012, v, 1e-8)
	a.Greater(sig, 0.0)
	a.Less(fit.RMS, 1e-10)

	for i := range s.Epochs {
		a.InDelta(s.East[i], fit.Fitted[i], 1e-9)
	}
}

func TestDecomposePartsSumToFit(t *testing.T) {
	a := assert.New(t)
	s, m := seismic()

	fit, err := DecomposeComponent(s, Up, m)
	a.NoError(err)

	trend := fit.Part(Trend)
	steps := fit.Part(Steps)
	trans := fit.Part(Transients)
	seas := fit.Part(Seasonal)
	for i := range fit.Fitted {
		sum := trend[i] + steps[i] + trans[i] + seas[i]
		a.InDelta(fit.Fitted[i], sum, 1e-12)
	}

	// before the event the step and transient contribute nothing
	a.Zero(steps[0])
	a.Zero(trans[0])
	// after it the step holds its amplitude
	last := len(steps) - 1
	a.InDelta(0.030, steps[last], 1e-8)
}

func TestDecomposeWeighted(t *testing.T) {
	a := assert.New(t)
	s, m := seismic()

	s.SigmaE = make([]float64, s.Len())
	s.SigmaN = make([]float64, s.Len())
	s.SigmaU = make([]float64, s.Len())
	for i := range s.SigmaE {
		s.SigmaE[i] = 0.001
		s.SigmaN[i] = 0.002
		s.SigmaU[i] = 0.005
	}

	d, err := Decompose(s, m)
	a.NoError(err)
	a.InDelta(0.012, d.East.Params[1], 1e-8)
	a.InDelta(0.024, d.North.Params[1], 1e-8)
	a.InDelta(-0.012, d.Up.Params[1], 1e-8)
	a.Equal(North, d.Fit(North).Component)

	for _, sig := range d.East.Sigmas {
		a.Greater(sig, 0.0)
		a.False(math.IsNaN(sig))
	}
	// noisier component, larger formal errors
	a.Greater(d.Up.Sigmas[1], d.East.Sigmas[1])

	s.SigmaE[3] = 0
	_, err = DecomposeComponent(s, East, m)
	a.Error(err)
}

func TestDecomposeGuards(t *testing.T) {
	a := assert.New(t)

	short := &Series{
		Epochs: []float64{2020.0, 2020.1, 2020.2},
		East:   []float64{0, 0.001, 0.002},
		North:  []float64{0, 0, 0},
		Up:     []float64{0, 0, 0},
	}
	_, err := DecomposeComponent(short, East, Model{Seasonal: true})
	a.ErrorIs(err, ErrShortSeries)

	// a plain trend still fits three epochs
	fit, err := DecomposeComponent(short, East, Model{})
	a.NoError(err)
	a.InDelta(0.01, fit.Params[1], 1e-9)

	bad := Model{Transients: []Transient{{Epoch: 2020.1, Tau: 0}}}
	s, _ := seismic()
	_, err = DecomposeComponent(s, East, bad)
	a.Error(err)
	a.Contains(err.Error(), "tau")
}

func TestPartAndComponentNames(t *testing.T) {
	a := assert.New(t)
	a.Equal("east", East.String())
	a.Equal("up", Up.String())
	a.Equal("trend", Trend.String())
	a.Equal("seasonal", Seasonal.String())
}
