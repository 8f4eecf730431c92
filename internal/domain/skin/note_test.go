package skin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteMIDI(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"A4", 69},
		{"C4", 60},
		{"F4", 65},
		{"Ab4", 68},
		{"Bb4", 70},
		{"C#5", 73},
		{"Eb4", 63},
		{"F5", 77},
		{"c-1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			midi, err := NoteMIDI(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, midi)
		})
	}
}

func TestNoteMIDI_Invalid(t *testing.T) {
	for _, name := range []string{"", "H4", "A", "Ax", "A10", "#4"} {
		_, err := NoteMIDI(name)
		assert.ErrorIs(t, err, ErrBadNote, name)
	}
}

func TestNoteFrequency(t *testing.T) {
	f, err := NoteFrequency("A4")
	require.NoError(t, err)
	assert.InDelta(t, 440.0, f, 1e-9)

	f, err = NoteFrequency("F4")
	require.NoError(t, err)
	assert.InDelta(t, 349.23, f, 0.01)

	assert.InDelta(t, 880.0, MIDIFrequency(81), 1e-9)
}
