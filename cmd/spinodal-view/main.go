//go:build ebiten

// SPDX-License-Identifier: MIT

// Command spinodal-view plays a stored run back in a window.
//
//	spinodal-view [-data Data] [-scale 4] [-tps 30] [-loop]
//
// Space pauses, the arrow keys step (shift: ten frames), Home rewinds and
// Q or Escape quits.
package main

import (
	"errors"
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/katalvlaran/spinodal/store"
	"github.com/katalvlaran/spinodal/viewer"
)

func main() {
	data := flag.String("data", "Data", "run directory written by spinodal")
	scale := flag.Int("scale", 4, "pixels per cell")
	tps := flag.Int("tps", 30, "frames per second")
	loop := flag.Bool("loop", false, "restart at the end instead of pausing")
	flag.Parse()

	frames, err := store.ReadConfigurations(filepath.Join(*data, store.ConfigurationsFile))
	if err != nil {
		log.Fatal(err)
	}
	player, err := viewer.NewPlayer(frames, *loop)
	if err != nil {
		log.Fatal(err)
	}
	game, err := viewer.NewGame(player, *scale)
	if err != nil {
		log.Fatal(err)
	}

	title := "spinodal-view: " + *data
	if m, err := store.ReadManifest(*data); err == nil {
		title += " (" + m.RunID + ")"
	}
	w, h := game.Size()
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(*tps)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
