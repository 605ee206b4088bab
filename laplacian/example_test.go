package laplacian_test

import (
	"fmt"

	"github.com/katalvlaran/spinodal/field"
	"github.com/katalvlaran/spinodal/laplacian"
)

// ExampleApply shows the periodic wrap: the corner cells see the opposite edges.
func ExampleApply() {
	f, _ := field.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	lap, _ := laplacian.Apply(f, 1, 1)
	fmt.Print(lap)

	// Output:
	// [12, 9, 6]
	// [3, 0, -3]
	// [-6, -9, -12]
}
