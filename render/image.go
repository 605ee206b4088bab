// SPDX-License-Identifier: MIT

package render

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/spinodal/field"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Sentinel errors.
var (
	// ErrScale indicates a non-positive pixel scale.
	ErrScale = field.NewParameterError("render: scale must be >= 1")

	// ErrFrameSize indicates a frame that does not match the animation size.
	ErrFrameSize = field.NewParameterError("render: frame size mismatch")

	// ErrTooFewPoints indicates a chart series with fewer than two points.
	ErrTooFewPoints = field.NewParameterError("render: a chart needs at least two points")

	// ErrQuantity indicates an unknown diagnostics quantity.
	ErrQuantity = field.NewParameterError("render: unknown quantity")
)

// DefaultJPEGQuality is used by SaveJPEG and Animation.
const DefaultJPEGQuality = 90

// Colormap maps a concentration to the blue-white-red scale.
// Values outside [0,1] saturate; NaN maps to black.
func Colormap(v float64) color.RGBA {
	if math.IsNaN(v) {
		return color.RGBA{A: 0xff}
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	if v <= 0.5 {
		g := uint8(math.Round(255 * 2 * v))
		return color.RGBA{R: g, G: g, B: 0xff, A: 0xff}
	}
	g := uint8(math.Round(255 * 2 * (1 - v)))

	return color.RGBA{R: 0xff, G: g, B: g, A: 0xff}
}

// FieldImage draws f with scale×scale pixels per cell.
func FieldImage(f *field.Field, scale int) (*image.RGBA, error) {
	if err := field.ValidateNotNil(f); err != nil {
		return nil, fmt.Errorf("render.FieldImage: %w", err)
	}
	if scale < 1 {
		return nil, fmt.Errorf("render.FieldImage: scale %d: %w", scale, ErrScale)
	}
	rows, cols := f.Shape()
	img := image.NewRGBA(image.Rect(0, 0, cols*scale, rows*scale))
	f.Do(func(i, j int, v float64) bool {
		cell := image.Rect(j*scale, i*scale, (j+1)*scale, (i+1)*scale)
		draw.Draw(img, cell, &image.Uniform{C: Colormap(v)}, image.Point{}, draw.Src)
		return true
	})

	return img, nil
}

// TimeLabel formats t the way frames are captioned.
func TimeLabel(t float64) string { return fmt.Sprintf("t = %.2f", t) }

// Label draws text in the top-left corner of img on a white box.
func Label(img draw.Image, text string) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Height.Ceil()
	box := image.Rect(2, 2, 2+w+4, 2+h+4).Intersect(img.Bounds())
	draw.Draw(img, box, image.White, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(4, 4+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// EncodeJPEG writes img to w at the given quality (1..100).
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	return save(path, func(w io.Writer) error { return png.Encode(w, img) })
}

// SaveJPEG writes img to path at DefaultJPEGQuality.
func SaveJPEG(path string, img image.Image) error {
	return save(path, func(w io.Writer) error { return EncodeJPEG(w, img, DefaultJPEGQuality) })
}

func save(path string, encode func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	bw := bufio.NewWriter(f)
	if err = encode(bw); err != nil {
		return fmt.Errorf("render: encode %s: %w", path, err)
	}

	return bw.Flush()
}
