package machine

import (
	"image/color"

	"github.com/younwookim/stm/internal/application/result"
	"github.com/younwookim/stm/internal/application/state"
	"github.com/younwookim/stm/internal/domain/skin"
)

// NoButton is the input value of a frame without a press
const NoButton = -1

// Input is the edge-triggered input of one frame
type Input struct {
	Button int // quadrant 0-3, or NoButton
}

// NoInput is a frame without a press
var NoInput = Input{Button: NoButton}

// Press returns the input of a frame in which quadrant q was pressed
func Press(q int) Input {
	return Input{Button: q}
}

// Ring is a render command for the 12 ring segments
type Ring struct {
	Colors  [skin.RingSize]color.NRGBA
	Buttons bool // draw the quadrant buttons with this ring
}

// ToneCue starts the tone of a quadrant or stops the current tone
type ToneCue struct {
	Quadrant int
	Stop     bool
}

// Frame is everything the machine produced during one tick.
// Ring, Tone and Result are nil when nothing happened for them.
type Frame struct {
	Tick      int
	State     state.Activity
	Level     int
	Ring      *Ring
	Tone      *ToneCue
	Result    *result.Record
	Suspended bool
}
