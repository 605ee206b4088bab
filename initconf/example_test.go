package initconf_test

import (
	"fmt"

	"github.com/katalvlaran/spinodal/initconf"
)

// ExampleGenerate draws a small reproducible field around c0 = 0.5.
func ExampleGenerate() {
	a, _ := initconf.Generate(4, 0.5, 0.02)
	b, _ := initconf.Generate(4, 0.5, 0.02)
	fmt.Println(a.String() == b.String())

	flat, _ := initconf.Generate(2, 0.25, 0)
	fmt.Print(flat)

	// Output:
	// true
	// [0.25, 0.25]
	// [0.25, 0.25]
}
