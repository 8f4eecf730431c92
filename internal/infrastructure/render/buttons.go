package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/stm/internal/domain/skin"
)

// ButtonPainter draws the four quadrant buttons behind the ring
type ButtonPainter interface {
	Paint(screen *ebiten.Image, w, h, level int)
}

// Rect is a button area in screen coordinates
type Rect struct {
	X, Y, W, H float32
}

// Center returns the center of the rectangle
func (r Rect) Center() (float32, float32) {
	return r.X + r.W/2, r.Y + r.H/2
}

// QuadrantRects returns the button of each quadrant on a w×h screen
func QuadrantRects(w, h int) [4]Rect {
	w2, h2 := float32(w)/2, float32(h)/2
	return [4]Rect{
		{0, 0, w2, h2},   // 0 top left
		{0, h2, w2, h2},  // 1 bottom left
		{w2, h2, w2, h2}, // 2 bottom right
		{w2, 0, w2, h2},  // 3 top right
	}
}

// PlainButtons draws four translucent quadrants
type PlainButtons struct{}

var colorPlainFill = color.NRGBA{10, 10, 10, 127}

func (PlainButtons) Paint(screen *ebiten.Image, w, h, level int) {
	for _, r := range QuadrantRects(w, h) {
		vector.DrawFilledRect(screen, r.X, r.Y, r.W, r.H, colorPlainFill, false)
		vector.StrokeRect(screen, r.X, r.Y, r.W, r.H, 1, colorOutline, false)
	}
}

// LabeledButtons draws numbered quadrants that turn dark above DarkAbove
type LabeledButtons struct {
	DarkAbove int
}

var (
	colorLabeledFill = color.NRGBA{127, 127, 127, 127}
	colorLabeledDark = color.NRGBA{0, 0, 0, 127}
)

// FillFor returns the button color at a level
func (b LabeledButtons) FillFor(level int) color.NRGBA {
	if level > b.DarkAbove {
		return colorLabeledDark
	}
	return colorLabeledFill
}

func (b LabeledButtons) Paint(screen *ebiten.Image, w, h, level int) {
	fill := b.FillFor(level)
	for q, r := range QuadrantRects(w, h) {
		vector.DrawFilledRect(screen, r.X, r.Y, r.W, r.H, fill, false)
		vector.StrokeRect(screen, r.X, r.Y, r.W, r.H, 1, colorOutline, false)
		x, y := r.Center()
		centerText(screen, string(rune('0'+q)), int(x), int(y))
	}
}

// PainterFor returns the button painter of a skin
func PainterFor(sk *skin.Skin) ButtonPainter {
	if sk.Buttons == skin.ButtonsLabeled {
		return LabeledButtons{DarkAbove: 3}
	}
	return PlainButtons{}
}
