// Package scene defines the screens the program moves through: the
// questionnaire first, then the test session.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen driven by the game loop.
//
// Update returning a non-nil Scene switches to it after the current frame.
type Scene interface {
	// Update runs one frame. A non-nil next scene replaces this one;
	// an error ends the program.
	Update() (next Scene, err error)

	// Draw renders the last state of the scene
	Draw(screen *ebiten.Image)

	// OnEnter runs when the scene becomes current
	OnEnter()

	// OnExit runs when the scene is replaced or the program ends.
	// Pending recordings are saved and sounds released here.
	OnExit()
}

// Resizer is implemented by scenes that follow the window size
type Resizer interface {
	Resize(width, height int)
}
