//go:build !ebiten

// SPDX-License-Identifier: MIT

package viewer

import "errors"

// ErrNoGUI is returned by NewGame in builds without the ebiten tag.
var ErrNoGUI = errors.New("viewer: built without the 'ebiten' tag")

// Game is a placeholder for headless builds.
type Game struct{}

// NewGame reports that the GUI is not compiled in.
func NewGame(*Player, int) (*Game, error) { return nil, ErrNoGUI }
