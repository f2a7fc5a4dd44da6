package expm_test

import (
	"fmt"

	"github.com/katalvlaran/lvlmat/expm"
	"github.com/katalvlaran/lvlmat/matrix"
)

// ExampleExp exponentiates a diagonal matrix: the result carries e and e² on
// the diagonal.
func ExampleExp() {
	a, _ := matrix.FromRows([][]float64{
		{1, 0},
		{0, 2},
	})
	e, _ := expm.Exp(a)

	v00, _ := e.At(0, 0)
	v11, _ := e.At(1, 1)
	fmt.Printf("%.6f %.6f\n", v00, v11)
	// Output: 2.718282 7.389056
}

// ExampleExp_zero shows the exact identity result for the zero matrix.
func ExampleExp_zero() {
	zero, _ := matrix.NewZeros(2, 2)
	e, _ := expm.Exp(zero)
	fmt.Print(e)
	// Output:
	// [1, 0]
	// [0, 1]
}

// ExampleOneNorm computes the maximum absolute column sum.
func ExampleOneNorm() {
	a, _ := matrix.FromRows([][]float64{
		{-3, 5, 7},
		{2, 6, 4},
		{0, 2, 8},
	})
	norm, _ := expm.OneNorm(a)
	fmt.Println(norm)
	// Output: 19
}
