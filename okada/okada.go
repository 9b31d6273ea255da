// Package okada computes surface displacements of rectangular uniform-slip
// dislocations in an elastic half-space, after Okada (BSSA, 1985), and maps
// them between the fault-aligned frame and map coordinates.
package okada

import "math"

// Rectangular evaluates the free-surface displacement of a rectangular
// dislocation in the fault-aligned frame. The fault extends from 0 to
// length along x (the strike direction) with its bottom edge at depth d;
// y is horizontal, perpendicular to strike, positive on the up-dip side.
// Dip is in degrees from horizontal; u1, u2, u3 are strike-slip, dip-slip
// and tensile slip; nu is the Poisson ratio. Returns x, y and vertical
// displacement at surface position (x, y).
func Rectangular(x, y, d, dip, length, width, u1, u2, u3, nu float64) (ux, uy, uz float64) {
	delta := dip * math.Pi / 180
	sd, cd := math.Sin(delta), math.Cos(delta)
	// a dip within rounding of vertical uses the vertical-fault I terms
	if math.Abs(cd) < 1e-12 {
		cd = 0
		if sd > 0 {
			sd = 1
		} else {
			sd = -1
		}
	}

	c := corner{sd: sd, cd: cd, mu2: 1 - 2*nu, q: y*sd - d*cd}
	p := y*cd + d*sd

	for _, t := range [4]struct{ xi, eta, sign float64 }{
		{x, p, 1},
		{x, p - width, -1},
		{x - length, p, -1},
		{x - length, p - width, 1},
	} {
		cx, cy, cz := c.displace(t.xi, t.eta, u1, u2, u3)
		ux += t.sign * cx
		uy += t.sign * cy
		uz += t.sign * cz
	}
	return ux, uy, uz
}

// corner holds the observation-dependent constants shared by the four
// Chinnery corner evaluations.
type corner struct {
	sd, cd float64
	mu2    float64 // mu/(lambda+mu) = 1-2nu
	q      float64
}

func (c *corner) displace(xi, eta, u1, u2, u3 float64) (ux, uy, uz float64) {
	sd, cd, q := c.sd, c.cd, c.q
	ytil := eta*cd + q*sd
	dtil := eta*sd - q*cd
	R := math.Sqrt(xi*xi + eta*eta + q*q)
	X := math.Sqrt(xi*xi + q*q)

	// arctan term is defined as zero on the fault plane extension
	theta := 0.0
	if q != 0 {
		theta = math.Atan(xi * eta / (q * R))
	}

	// R+eta vanishes on the corner ray behind the fault; Okada substitutes
	// the mirrored logarithm and drops the 1/(R+eta) terms there
	reta := R + eta
	lnReta := 0.0
	invReta := 0.0
	if reta < 1e-14*R {
		lnReta = -math.Log(R - eta)
	} else {
		lnReta = math.Log(reta)
		invReta = 1 / reta
	}
	Rdtil := R + dtil

	var i1, i2, i3, i4, i5 float64
	if cd != 0 {
		if xi != 0 {
			i5 = c.mu2 * 2 / cd * math.Atan((eta*(X+q*cd)+X*(R+X)*sd)/(xi*(R+X)*cd))
		}
		i4 = c.mu2 / cd * (math.Log(Rdtil) - sd*lnReta)
		i3 = c.mu2*(ytil/(cd*Rdtil)-lnReta) + sd/cd*i4
		i2 = c.mu2*(-lnReta) - i3
		i1 = c.mu2*(-xi/(cd*Rdtil)) - sd/cd*i5
	} else {
		i1 = -c.mu2 / 2 * xi * q / (Rdtil * Rdtil)
		i3 = c.mu2/2*(eta/Rdtil+ytil*q/(Rdtil*Rdtil)) - c.mu2/2*lnReta
		i2 = c.mu2*(-lnReta) - i3
		i4 = -c.mu2 * q / Rdtil
		i5 = -c.mu2 * xi * sd / Rdtil
	}

	if u1 != 0 {
		f := -u1 / (2 * math.Pi)
		ux += f * (xi*q*invReta/R + theta + i1*sd)
		uy += f * (ytil*q*invReta/R + q*cd*invReta + i2*sd)
		uz += f * (dtil*q*invReta/R + q*sd*invReta + i4*sd)
	}
	if u2 != 0 {
		f := -u2 / (2 * math.Pi)
		ux += f * (q/R - i3*sd*cd)
		uy += f * (ytil*q/(R*(R+xi)) + cd*theta - i1*sd*cd)
		uz += f * (dtil*q/(R*(R+xi)) + sd*theta - i5*sd*cd)
	}
	if u3 != 0 {
		f := u3 / (2 * math.Pi)
		ux += f * (q*q*invReta/R - i3*sd*sd)
		uy += f * (-dtil*q/(R*(R+xi)) - sd*(xi*q*invReta/R-theta) - i1*sd*sd)
		uz += f * (ytil*q/(R*(R+xi)) + cd*(xi*q*invReta/R-theta) - i5*sd*sd)
	}
	return ux, uy, uz
}
