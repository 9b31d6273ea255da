package covar

import (
	"fmt"
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"gonum.org/v1/gonum/mat"
)

// Matrix builds the model covariance between every pair of points,
//
//	E_ij = C(|p_i - p_j|)
//
// with coordinates in meters. An empty point set yields
// ErrInsufficientData.
func Matrix(p Params, pts []vec2d.T) (*mat.SymDense, error) {
	n := len(pts)
	if n == 0 {
		return nil, fmt.Errorf("%w: covariance of empty point set", ErrInsufficientData)
	}
	E := mat.NewSymDense(n, nil)
	diag := p.Eval(0)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			h := math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1])
			E.SetSym(i, j, p.Eval(h))
		}
		E.SetSym(i, i, diag)
	}
	return E, nil
}

// PInv returns the Moore-Penrose pseudoinverse by singular value
// decomposition. Singular values below max(m,n)*eps*smax are treated as
// zero, so rank-deficient covariance matrices still yield usable weights.
func PInv(a mat.Matrix) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		m, n := a.Dims()
		return nil, fmt.Errorf("covar: SVD of %dx%d matrix failed", m, n)
	}
	s := svd.Values(nil)
	if len(s) == 0 {
		return nil, fmt.Errorf("covar: pseudoinverse of empty matrix")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	m, n := a.Dims()
	eps := math.Nextafter(1, 2) - 1
	tol := float64(max(m, n)) * eps * s[0]

	inv := make([]float64, len(s))
	for i, sv := range s {
		if sv > tol {
			inv[i] = 1 / sv
		}
	}
	var vs mat.Dense
	vs.Mul(&v, mat.NewDiagDense(len(inv), inv))
	var pinv mat.Dense
	pinv.Mul(&vs, u.T())
	return &pinv, nil
}
