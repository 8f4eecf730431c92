// Package render draws the LED ring and the quadrant buttons.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/stm/internal/domain/skin"
)

// Ring geometry
const (
	RingRadius    = 100 // distance of the segment centers from the ring center
	SegmentSize   = 40
	DiscRadius    = 150
	LabelRadius   = 130
	firstAngleDeg = -15 // angle of segment 0, clockwise from the top
	stepAngleDeg  = -30
	touchRadius   = 25
)

// Debug font cell size of ebitenutil.DebugPrintAt
const (
	charW = 6
	charH = 16
)

var (
	colorBackground = color.NRGBA{10, 10, 10, 255}
	colorDisc       = color.NRGBA{10, 10, 10, 255}
	colorOutline    = color.NRGBA{127, 127, 127, 255}
	colorTouch      = color.NRGBA{255, 255, 255, 255}
)

// HUD is the text shown inside the ring
type HUD struct {
	TestID string
	Level  int
	Frame  int
}

// Ring keeps the last rendered ring. The display shows the last colors
// until the machine renders again.
type Ring struct {
	colors  [skin.RingSize]color.NRGBA
	buttons bool
	painter ButtonPainter

	touch    bool
	touchX   int
	touchY   int
	rendered bool
}

// NewRing creates a ring renderer using painter for the buttons
func NewRing(painter ButtonPainter) *Ring {
	if painter == nil {
		painter = PlainButtons{}
	}
	return &Ring{painter: painter}
}

// Set replaces the displayed colors
func (r *Ring) Set(colors [skin.RingSize]color.NRGBA, buttons bool) {
	r.colors = colors
	r.buttons = buttons
	r.touch = false
	r.rendered = true
}

// Touch marks a pointer release until the next Set
func (r *Ring) Touch(x, y int) {
	r.touch = true
	r.touchX, r.touchY = x, y
}

// Colors returns the displayed colors
func (r *Ring) Colors() [skin.RingSize]color.NRGBA {
	return r.colors
}

// SegmentCenter returns the offset of segment i from the ring center
func SegmentCenter(i int) (x, y float64) {
	a := (firstAngleDeg + stepAngleDeg*float64(i)) * math.Pi / 180
	return RingRadius * math.Sin(a), -RingRadius * math.Cos(a)
}

// Draw renders the ring centered on the screen
func (r *Ring) Draw(screen *ebiten.Image, hud HUD) {
	screen.Fill(colorBackground)
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	if r.buttons {
		r.painter.Paint(screen, w, h, hud.Level)
	}

	cx, cy := float32(w)/2, float32(h)/2
	vector.DrawFilledCircle(screen, cx, cy, DiscRadius, colorDisc, true)
	vector.StrokeCircle(screen, cx, cy, DiscRadius, 1, colorOutline, true)

	centerText(screen, hud.TestID, int(cx), int(cy))
	centerText(screen, fmt.Sprintf("level %d", hud.Level), int(cx), int(cy)-40)
	centerText(screen, fmt.Sprintf("%d", hud.Frame), int(cx), int(cy)+40)

	if r.rendered {
		for i, c := range r.colors {
			sx, sy := SegmentCenter(i)
			x := cx + float32(sx) - SegmentSize/2
			y := cy + float32(sy) - SegmentSize/2
			vector.DrawFilledRect(screen, x, y, SegmentSize, SegmentSize, c, false)
			vector.StrokeRect(screen, x, y, SegmentSize, SegmentSize, 1, colorOutline, false)

			lx, ly := SegmentCenter(i)
			scale := float64(LabelRadius) / RingRadius
			centerText(screen, fmt.Sprintf("%d", i), int(cx)+int(lx*scale), int(cy)+int(ly*scale))
		}
	}

	if r.touch {
		vector.StrokeCircle(screen, float32(r.touchX), float32(r.touchY), touchRadius, 2, colorTouch, true)
	}
}

func centerText(screen *ebiten.Image, s string, x, y int) {
	ebitenutil.DebugPrintAt(screen, s, x-len(s)*charW/2, y-charH/2)
}
