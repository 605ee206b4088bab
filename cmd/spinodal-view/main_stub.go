//go:build !ebiten

// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "spinodal-view needs the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/spinodal-view` or build with `-tags ebiten`.")
	os.Exit(2)
}
