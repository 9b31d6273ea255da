package covar

import (
	"math"
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestMatrixTwoPoints(t *testing.T) {
	a := assert.New(t)

	p := Params{Model: Exponential, Amp: 2, Alpha: 0.01}
	pts := []vec2d.T{{0, 0}, {100, 0}}

	E, err := Matrix(p, pts)
	a.NoError(err)
	off := 2 * math.Exp(-1)
	a.InDelta(2, E.At(0, 0), 1e-12)
	a.InDelta(2, E.At(1, 1), 1e-12)
	a.InDelta(off, E.At(0, 1), 1e-12)
	a.InDelta(off, E.At(1, 0), 1e-12)

	// full-rank pseudoinverse equals the plain inverse
	Ei, err := PInv(E)
	a.NoError(err)
	det := 4 - off*off
	a.InDelta(2/det, Ei.At(0, 0), 1e-9)
	a.InDelta(-off/det, Ei.At(0, 1), 1e-9)
	a.InDelta(2/det, Ei.At(1, 1), 1e-9)
}

func TestMatrixExponentialCosine(t *testing.T) {
	a := assert.New(t)

	p := Params{Model: ExponentialCosine, Amp: 1, Alpha: 0.02, Beta: 0.05}
	pts := []vec2d.T{{0, 0}, {30, 40}} // 50 m apart

	E, err := Matrix(p, pts)
	a.NoError(err)
	want := math.Exp(-1) * math.Cos(2.5)
	a.InDelta(want, E.At(0, 1), 1e-12)
	a.InDelta(1, E.At(0, 0), 1e-12)
}

func TestMatrixEmpty(t *testing.T) {
	a := assert.New(t)

	p := Params{Model: Exponential, Amp: 1, Alpha: 0.01}
	_, err := Matrix(p, nil)
	a.ErrorIs(err, ErrInsufficientData)
}

func TestPInvRankDeficient(t *testing.T) {
	a := assert.New(t)

	A := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	Ai, err := PInv(A)
	a.NoError(err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			a.InDelta(0.25, Ai.At(i, j), 1e-12)
		}
	}

	// Moore-Penrose identity A A+ A = A
	var t1, t2 mat.Dense
	t1.Mul(A, Ai)
	t2.Mul(&t1, A)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			a.InDelta(A.At(i, j), t2.At(i, j), 1e-12)
		}
	}
}

func TestPInvIdentity(t *testing.T) {
	a := assert.New(t)

	A := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	Ai, err := PInv(A)
	a.NoError(err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			a.InDelta(want, Ai.At(i, j), 1e-12)
		}
	}
}
