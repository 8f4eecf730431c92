package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// State holds the input events of one frame
type State struct {
	Released bool // mouse button or touch released this frame
	X, Y     int  // release position
	Key      int  // quadrant chosen with keys 1-4, or NoButton
}

// Event is the result of resolving one frame of input
type Event struct {
	Button           int // quadrant, or NoButton
	ToggleFullscreen bool
	X, Y             int // position of a pointer release
	Pointer          bool
}

var quadrantKeys = [4]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// Pointer reads pointer releases and quadrant keys from ebiten
type Pointer struct {
	touches   []ebiten.TouchID
	positions map[ebiten.TouchID][2]int
}

// NewPointer creates a new pointer adapter
func NewPointer() *Pointer {
	return &Pointer{positions: make(map[ebiten.TouchID][2]int)}
}

// Read collects the input events of the current frame
func (p *Pointer) Read() State {
	st := State{Key: NoButton}

	for i, k := range quadrantKeys {
		if inpututil.IsKeyJustPressed(k) {
			st.Key = i
			break
		}
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		st.Released = true
		st.X, st.Y = ebiten.CursorPosition()
		return st
	}

	// Release positions are not reported for touches, keep the last seen
	p.touches = ebiten.AppendTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		x, y := ebiten.TouchPosition(id)
		p.positions[id] = [2]int{x, y}
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		pos, ok := p.positions[id]
		delete(p.positions, id)
		if ok && !st.Released {
			st.Released = true
			st.X, st.Y = pos[0], pos[1]
		}
	}
	return st
}

// Resolve maps the events of a frame onto the ring for a w×h screen.
// A key press wins over a pointer release in the same frame.
func Resolve(st State, w, h int) Event {
	ev := Event{Button: NoButton}
	if st.Key >= 0 && st.Key < len(quadrantKeys) {
		ev.Button = st.Key
		return ev
	}
	if !st.Released {
		return ev
	}
	ev.Pointer = true
	ev.X, ev.Y = st.X, st.Y
	if InCenter(st.X, st.Y, w, h) {
		ev.ToggleFullscreen = true
		return ev
	}
	ev.Button = Quadrant(st.X, st.Y, w, h)
	return ev
}
