// SPDX-License-Identifier: MIT

// Command spinodal-plot renders a stored run: the initial and final
// concentration grids as PNG, the whole trajectory as an MJPEG AVI and one
// line chart per diagnostics quantity.
//
//	spinodal-plot [-data Data] [-out Images] [-scale 4] [-fps 25]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/katalvlaran/spinodal/render"
	"github.com/katalvlaran/spinodal/store"
)

// Output file names inside -out.
const (
	initialImage = "initial_concentration_grid.png"
	finalImage   = "final_concentration_grid.png"
	animation    = "evolution.avi"
)

func main() {
	logger := log.New(os.Stderr, "spinodal-plot: ", log.LstdFlags)
	if err := run(os.Args[1:], logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logger.Fatal(err)
	}
}

func run(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("spinodal-plot", flag.ContinueOnError)
	fs.SetOutput(logger.Writer())
	data := fs.String("data", "Data", "run directory written by spinodal")
	out := fs.String("out", "Images", "output directory")
	scale := fs.Int("scale", 4, "pixels per cell")
	fps := fs.Int("fps", 25, "animation frame rate")
	noVideo := fs.Bool("no-video", false, "skip the AVI animation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scale < 1 {
		return fmt.Errorf("-scale %d: %w", *scale, render.ErrScale)
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}

	n, err := frames(*data, *out, *scale, *fps, !*noVideo)
	if err != nil {
		return err
	}
	logger.Printf("%d frames rendered to %s", n, *out)

	series, err := store.ReadAverages(filepath.Join(*data, store.AveragesFile))
	if err != nil {
		return err
	}
	for _, q := range render.Quantities {
		path := filepath.Join(*out, q.String()+".png")
		if err = render.SaveDiagnosticsChart(path, series, q); err != nil {
			if errors.Is(err, render.ErrTooFewPoints) {
				logger.Printf("skipping %s: %v", q, err)
				continue
			}
			return err
		}
	}

	return nil
}

// frames streams the trajectory once: the first and last frames become
// PNG snapshots and every frame goes to the animation when video is set.
func frames(data, out string, scale, fps int, video bool) (n int, err error) {
	cr, err := store.OpenConfigurations(filepath.Join(data, store.ConfigurationsFile))
	if err != nil {
		return 0, err
	}
	defer cr.Close()

	var anim *render.Animation
	if video {
		rows, cols := cr.Shape()
		if anim, err = render.NewAnimation(filepath.Join(out, animation), cols*scale, rows*scale, fps); err != nil {
			return 0, err
		}
		defer func() { err = errors.Join(err, anim.Close()) }()
	}

	var last store.Frame
	for {
		fr, err := cr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, err
		}
		if n == 0 {
			if err = snapshot(filepath.Join(out, initialImage), fr, scale); err != nil {
				return n, err
			}
		}
		if anim != nil {
			if err = anim.AddField(fr.Field, fr.T); err != nil {
				return n, err
			}
		}
		last = fr
		n++
	}
	if n == 0 {
		return 0, fmt.Errorf("%s: no frames: %w", data, store.ErrMalformed)
	}

	return n, snapshot(filepath.Join(out, finalImage), last, scale)
}

func snapshot(path string, fr store.Frame, scale int) error {
	img, err := render.FieldImage(fr.Field, scale)
	if err != nil {
		return err
	}
	render.Label(img, "Concentration grid: "+render.TimeLabel(fr.T))

	return render.SavePNG(path, img)
}
