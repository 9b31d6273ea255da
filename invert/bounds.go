package invert

import (
	"fmt"
	"math/rand"

	"github.com/geniusinaction/GEO244/okada"
)

// Bounds is a box in source parameter space. A parameter whose Min and Max
// agree is pinned at that value; the optimizers only move the rest. Opening
// and Nu are not searched over and come from the Objective.
type Bounds struct {
	Min okada.Source `yaml:"min" json:"min"`
	Max okada.Source `yaml:"max" json:"max"`
}

func (b *Bounds) vectors() (lo, hi []float64) {
	return vector(&b.Min), vector(&b.Max)
}

// Validate rejects boxes whose floor exceeds their ceiling.
func (b *Bounds) Validate() error {
	lo, hi := b.vectors()
	for i := range lo {
		if hi[i] < lo[i] {
			return fmt.Errorf("%w: %s range [%g, %g]", ErrBounds, paramNames[i], lo[i], hi[i])
		}
	}
	return nil
}

// free returns the indices of the parameters the box leaves open.
func (b *Bounds) free() []int {
	lo, hi := b.vectors()
	var idx []int
	for i := range lo {
		if hi[i] > lo[i] {
			idx = append(idx, i)
		}
	}
	return idx
}

func (b *Bounds) contains(v []float64) bool {
	lo, hi := b.vectors()
	for i := range v {
		if v[i] < lo[i] || v[i] > hi[i] {
			return false
		}
	}
	return true
}

// draw samples a parameter vector uniformly within the box.
func (b *Bounds) draw(rng *rand.Rand) []float64 {
	lo, hi := b.vectors()
	v := make([]float64, nParams)
	for i := range v {
		v[i] = lo[i]
		if hi[i] > lo[i] {
			v[i] = lo[i] + rng.Float64()*(hi[i]-lo[i])
		}
	}
	return v
}
