// SPDX-License-Identifier: MIT

// Package viewer plays a stored trajectory back frame by frame.
//
// Player holds the playback state and is independent of any window system;
// Game (built with the ebiten tag) drives a Player from keyboard input and
// draws the current frame.
package viewer

import (
	"github.com/katalvlaran/spinodal/field"
	"github.com/katalvlaran/spinodal/store"
)

// ErrNoFrames indicates an empty trajectory.
var ErrNoFrames = field.NewParameterError("viewer: trajectory has no frames")

// Player walks a trajectory. The zero value is not usable; call NewPlayer.
type Player struct {
	frames []store.Frame
	index  int
	paused bool
	loop   bool
}

// NewPlayer starts playback at the first frame.
func NewPlayer(frames []store.Frame, loop bool) (*Player, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	return &Player{frames: frames, loop: loop}, nil
}

// Len returns the number of frames.
func (p *Player) Len() int { return len(p.frames) }

// Index returns the current frame index.
func (p *Player) Index() int { return p.index }

// Current returns the current frame.
func (p *Player) Current() store.Frame { return p.frames[p.index] }

// Paused reports whether Tick is a no-op.
func (p *Player) Paused() bool { return p.paused }

// TogglePause flips the paused state.
func (p *Player) TogglePause() { p.paused = !p.paused }

// Tick advances one frame unless paused. At the last frame it wraps when
// looping and pauses otherwise.
func (p *Player) Tick() {
	if p.paused {
		return
	}
	if p.index == len(p.frames)-1 {
		if p.loop {
			p.index = 0
		} else {
			p.paused = true
		}
		return
	}
	p.index++
}

// Step moves by delta frames, pausing playback and stopping at either end.
func (p *Player) Step(delta int) {
	p.paused = true
	p.Seek(p.index + delta)
}

// Seek jumps to frame i, clamped to the valid range.
func (p *Player) Seek(i int) {
	switch {
	case i < 0:
		i = 0
	case i >= len(p.frames):
		i = len(p.frames) - 1
	}
	p.index = i
}
