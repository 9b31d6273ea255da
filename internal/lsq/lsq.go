// Package lsq solves weighted linear least-squares problems through the
// normal equations and reports the parameter covariance alongside the
// estimate.
package lsq

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Solve estimates x from the observation equation d = G x by weighted least
// squares,
//
//	x = (G^T W G)^-1 G^T W d
//
// and returns the error covariance (G^T W G)^-1. A nil W means unit weights.
func Solve(G mat.Matrix, d mat.Vector, W mat.Matrix) (x mat.Vector, cov mat.Matrix, err error) {
	n, m := G.Dims()
	if d.Len() != n {
		return nil, nil, fmt.Errorf("lsq: G is %dx%d but d has %d rows", n, m, d.Len())
	}
	if n < m {
		return nil, nil, fmt.Errorf("lsq: %d observations for %d parameters", n, m)
	}
	if W == nil {
		W = identity(n)
	}
	wn, wm := W.Dims()
	if wn != n || wm != n {
		return nil, nil, fmt.Errorf("lsq: W is %dx%d, want %dx%d", wn, wm, n, n)
	}

	var WG mat.Dense
	WG.Mul(W, G)
	var A mat.Dense
	A.Mul(G.T(), &WG)

	var GtW mat.Dense
	GtW.Mul(G.T(), W)
	var b mat.VecDense
	b.MulVec(&GtW, d)

	var sol mat.VecDense
	if err := sol.SolveVec(&A, &b); err != nil {
		return nil, nil, fmt.Errorf("lsq: normal equations singular: %w", err)
	}

	var c mat.Dense
	if err := c.Inverse(&A); err != nil {
		return nil, nil, fmt.Errorf("lsq: covariance: %w", err)
	}
	return &sol, &c, nil
}

// Sigmas returns the one-sigma parameter uncertainties, the square roots of
// the covariance diagonal.
func Sigmas(cov mat.Matrix) []float64 {
	n, _ := cov.Dims()
	s := make([]float64, n)
	for i := range s {
		s[i] = math.Sqrt(cov.At(i, i))
	}
	return s
}

func identity(n int) mat.Matrix {
	d := make([]float64, n)
	for i := range d {
		d[i] = 1
	}
	return mat.NewDiagDense(n, d)
}
