// Package input turns pointer and keyboard events into quadrant presses.
package input

import "math"

const (
	// NoButton is returned for frames without a quadrant press
	NoButton = -1

	// CenterRadius is the distance from the screen center within which a
	// release toggles fullscreen instead of pressing a quadrant
	CenterRadius = 150
)

// quadrantOrder maps the raw half-plane index onto the ring quadrants
var quadrantOrder = [4]int{0, 1, 3, 2}

// Quadrant returns the quadrant under (x, y) on a w×h screen.
// The raw index is 2 for the right half plus 1 for the bottom half.
func Quadrant(x, y, w, h int) int {
	b := 0
	if x > w/2 {
		b += 2
	}
	if y > h/2 {
		b++
	}
	return quadrantOrder[b]
}

// InCenter reports whether (x, y) lies within CenterRadius of the screen center
func InCenter(x, y, w, h int) bool {
	dx := float64(x) - float64(w)/2
	dy := float64(y) - float64(h)/2
	return math.Hypot(dx, dy) < CenterRadius
}
