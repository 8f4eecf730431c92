// Package game runs the ebiten loop over the current scene.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/stm/internal/application/scene"
)

// Game is the ebiten.Game of the program. It owns the current scene and
// the logical screen size.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	frames  int
}

// New enters first at a screenW×screenH screen
func New(first scene.Scene, screenW, screenH int) *Game {
	g := &Game{screenW: screenW, screenH: screenH}
	g.enter(first)
	return g
}

// Update runs one frame of the current scene and switches scenes when
// it asks to
func (g *Game) Update() error {
	g.frames++
	next, err := g.current.Update()
	if err != nil {
		return err
	}
	if next != nil {
		g.current.OnExit()
		g.enter(next)
	}
	return nil
}

func (g *Game) enter(s scene.Scene) {
	g.current = s
	g.current.OnEnter()
	g.resize()
}

// Draw renders the current scene
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout follows the window: the logical screen is the outside size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.screenW || outsideHeight != g.screenH) {
		g.screenW, g.screenH = outsideWidth, outsideHeight
		g.resize()
	}
	return g.screenW, g.screenH
}

func (g *Game) resize() {
	if r, ok := g.current.(scene.Resizer); ok {
		r.Resize(g.screenW, g.screenH)
	}
}

// Frames returns the number of updates run so far
func (g *Game) Frames() int {
	return g.frames
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}
