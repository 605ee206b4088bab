//go:build ebiten

// SPDX-License-Identifier: MIT

package viewer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/katalvlaran/spinodal/render"
)

// Game adapts a Player to the ebiten.Game interface.
//
// Keys: space pauses, arrows step one frame (shift: ten), Home rewinds,
// Q or Escape quits.
type Game struct {
	player *Player
	scale  int
	cache  map[int]*ebiten.Image
	err    error
}

// NewGame draws every frame at scale pixels per cell.
func NewGame(p *Player, scale int) (*Game, error) {
	if scale < 1 {
		return nil, fmt.Errorf("viewer.NewGame: scale %d: %w", scale, render.ErrScale)
	}

	return &Game{player: p, scale: scale, cache: make(map[int]*ebiten.Image)}, nil
}

// Size returns the window size in pixels.
func (g *Game) Size() (w, h int) {
	rows, cols := g.player.Current().Field.Shape()
	return cols * g.scale, rows * g.scale
}

// Update handles input and advances playback.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	step := 1
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		step = 10
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.player.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.player.Step(step)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.player.Step(-step)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.player.Seek(0)
	default:
		g.player.Tick()
	}

	return nil
}

// Draw renders the current frame with its time label.
func (g *Game) Draw(screen *ebiten.Image) {
	idx := g.player.Index()
	img, ok := g.cache[idx]
	if !ok {
		fr := g.player.Current()
		rgba, err := render.FieldImage(fr.Field, g.scale)
		if err != nil {
			g.err = err
			return
		}
		render.Label(rgba, render.TimeLabel(fr.T))
		img = ebiten.NewImageFromImage(rgba)
		g.cache[idx] = img
	}
	screen.DrawImage(img, nil)
}

// Layout returns the logical screen size.
func (g *Game) Layout(int, int) (int, int) { return g.Size() }
