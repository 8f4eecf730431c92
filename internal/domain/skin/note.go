package skin

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadNote is returned for note names that cannot be parsed
var ErrBadNote = errors.New("invalid note name")

var noteSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// NoteMIDI converts a note name such as "F4", "Ab4" or "C#5" to its MIDI
// number (A4 = 69).
func NoteMIDI(name string) (int, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return 0, fmt.Errorf("%q: %w", name, ErrBadNote)
	}
	semi, ok := noteSemitones[byte(strings.ToUpper(name[:1])[0])]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrBadNote)
	}
	rest := name[1:]
	switch rest[0] {
	case '#':
		semi++
		rest = rest[1:]
	case 'b':
		semi--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil || octave < -1 || octave > 9 {
		return 0, fmt.Errorf("%q: %w", name, ErrBadNote)
	}
	return (octave+1)*12 + semi, nil
}

// MIDIFrequency returns the equal-tempered frequency of a MIDI note
func MIDIFrequency(midi int) float64 {
	return 440 * math.Pow(2, float64(midi-69)/12)
}

// NoteFrequency converts a note name to Hz
func NoteFrequency(name string) (float64, error) {
	midi, err := NoteMIDI(name)
	if err != nil {
		return 0, err
	}
	return MIDIFrequency(midi), nil
}
