package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuadrant(t *testing.T) {
	tests := []struct {
		name     string
		x, y     int
		expected int
	}{
		{"top left", 10, 10, 0},
		{"bottom left", 10, 590, 1},
		{"top right", 790, 10, 3},
		{"bottom right", 790, 590, 2},
		{"on vertical midline counts as left", 400, 10, 0},
		{"on horizontal midline counts as top", 10, 300, 0},
		{"just past center", 401, 301, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Quadrant(tt.x, tt.y, 800, 600))
		})
	}
}

func TestInCenter(t *testing.T) {
	assert.True(t, InCenter(400, 300, 800, 600))
	assert.True(t, InCenter(400+149, 300, 800, 600))
	assert.False(t, InCenter(400+150, 300, 800, 600))
	assert.False(t, InCenter(400+110, 300+110, 800, 600))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		st         State
		button     int
		fullscreen bool
	}{
		{"nothing", State{Key: NoButton}, NoButton, false},
		{"key", State{Key: 2}, 2, false},
		{"key wins over release", State{Key: 1, Released: true, X: 790, Y: 10}, 1, false},
		{"release in quadrant", State{Key: NoButton, Released: true, X: 790, Y: 10}, 3, false},
		{"release in center", State{Key: NoButton, Released: true, X: 420, Y: 290}, NoButton, true},
		{"key out of range", State{Key: 7}, NoButton, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Resolve(tt.st, 800, 600)
			assert.Equal(t, tt.button, ev.Button)
			assert.Equal(t, tt.fullscreen, ev.ToggleFullscreen)
		})
	}
}

func TestResolve_ReportsPointerPosition(t *testing.T) {
	ev := Resolve(State{Key: NoButton, Released: true, X: 12, Y: 34}, 800, 600)

	assert.True(t, ev.Pointer)
	assert.Equal(t, 12, ev.X)
	assert.Equal(t, 34, ev.Y)
}
