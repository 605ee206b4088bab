// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/icza/mjpeg"
	"github.com/katalvlaran/spinodal/field"
)

// ErrAnimationClosed indicates a frame added after Close.
var ErrAnimationClosed = errors.New("render: animation closed")

// Animation writes labeled field frames to an MJPEG AVI file.
type Animation struct {
	aw      mjpeg.AviWriter
	w, h    int
	quality int
	buf     bytes.Buffer
	frames  int
	closed  bool
}

// NewAnimation creates the AVI file at path for w×h frames at fps.
func NewAnimation(path string, w, h, fps int) (*Animation, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("render.NewAnimation: %dx%d: %w", w, h, ErrFrameSize)
	}
	if fps < 1 {
		fps = 1
	}
	aw, err := mjpeg.New(path, int32(w), int32(h), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("render.NewAnimation: %w", err)
	}

	return &Animation{aw: aw, w: w, h: h, quality: DefaultJPEGQuality}, nil
}

// Frames returns the number of frames written so far.
func (a *Animation) Frames() int { return a.frames }

// AddField draws f scaled to the frame size, labels it with t and appends it.
// The frame width must be a whole multiple of the field's columns and the
// same multiple of its rows.
func (a *Animation) AddField(f *field.Field, t float64) error {
	if err := field.ValidateNotNil(f); err != nil {
		return fmt.Errorf("render.AddField: %w", err)
	}
	rows, cols := f.Shape()
	scale := a.w / cols
	if scale < 1 || cols*scale != a.w || rows*scale != a.h {
		return fmt.Errorf("render.AddField: %dx%d field in %dx%d frame: %w", rows, cols, a.h, a.w, ErrFrameSize)
	}
	img, err := FieldImage(f, scale)
	if err != nil {
		return fmt.Errorf("render.AddField: %w", err)
	}
	Label(img, TimeLabel(t))

	return a.AddImage(img)
}

// AddImage appends img, which must be exactly the frame size.
func (a *Animation) AddImage(img image.Image) error {
	if a.closed {
		return ErrAnimationClosed
	}
	b := img.Bounds()
	if b.Dx() != a.w || b.Dy() != a.h {
		return fmt.Errorf("render.AddImage: %dx%d image in %dx%d frame: %w", b.Dx(), b.Dy(), a.w, a.h, ErrFrameSize)
	}
	a.buf.Reset()
	if err := EncodeJPEG(&a.buf, img, a.quality); err != nil {
		return fmt.Errorf("render.AddImage: %w", err)
	}
	if err := a.aw.AddFrame(a.buf.Bytes()); err != nil {
		return fmt.Errorf("render.AddImage: %w", err)
	}
	a.frames++

	return nil
}

// Close finalizes the AVI index and closes the file.
func (a *Animation) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	return a.aw.Close()
}
