package covar

import (
	"fmt"

	vec2d "github.com/flywave/go3d/float64/vec2"
)

func ExampleParams_Eval() {
	p := Params{Model: Exponential, Amp: 4, Alpha: 0.001}
	fmt.Printf("%.4f\n", p.Eval(0))
	fmt.Printf("%.4f\n", p.Eval(1000))
	// Output:
	// 4.0000
	// 1.4715
}

func ExampleMatrix() {
	p := Params{Model: Exponential, Amp: 2, Alpha: 0.01}
	pts := []vec2d.T{{0, 0}, {100, 0}, {200, 0}}
	E, _ := Matrix(p, pts)
	for i := 0; i < 3; i++ {
		fmt.Printf("%.4f %.4f %.4f\n", E.At(i, 0), E.At(i, 1), E.At(i, 2))
	}
	// Output:
	// 2.0000 0.7358 0.2707
	// 0.7358 2.0000 0.7358
	// 0.2707 0.7358 2.0000
}
