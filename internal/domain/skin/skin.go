// Package skin defines the per-deployment look and timing of the memory test.
//
// A Skin bundles the phase durations (in frames), one color table per phase,
// the rotation applied to each table between renders, and optional sound,
// button and timeout customizations. Skins are read-only once loaded.
package skin

import (
	"errors"
	"fmt"
	"image/color"
)

// RingSize is the number of segments on the ring
const RingSize = 12

// Phase indexes the per-phase tables. Phase numbers match the activity
// states of the test state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePrepare
	PhaseShowTest
	PhaseDecay
	PhaseCountdown
	PhaseTimeout
	PhaseCorrect
	PhaseIncorrect
)

// PhaseCount is the number of phases
const PhaseCount = 8

var phaseNames = [PhaseCount]string{
	"idle", "warn", "showTest", "decay", "countdown", "timeout", "correct", "incorrect",
}

// String returns the config key of the phase
func (p Phase) String() string {
	if p < 0 || int(p) >= PhaseCount {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases returns all phases in order
func Phases() []Phase {
	out := make([]Phase, PhaseCount)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

// Errors returned by Validate
var (
	ErrMissingID       = errors.New("skin id is empty")
	ErrBadDuration     = errors.New("duration must be positive")
	ErrPaletteTooShort = errors.New("palette has fewer than 12 colors")
	ErrBadSound        = errors.New("invalid sound settings")
	ErrBadTimeout      = errors.New("invalid timeout policy")
)

// Durations holds the frame count of each phase. For the idle and show-test
// phases the value is the length of one animation step.
type Durations [PhaseCount]int

// Palette is an ordered color table. Only the first RingSize entries of the
// rotated table are displayed; longer tables rotate through all entries.
type Palette []color.NRGBA

// Window returns the RingSize colors displayed when the table is rotated
// right by offset positions (segment i shows entry i-offset).
func (p Palette) Window(offset int) [RingSize]color.NRGBA {
	var out [RingSize]color.NRGBA
	n := len(p)
	if n == 0 {
		return out
	}
	for i := range out {
		idx := ((i-offset)%n + n) % n
		out[i] = p[idx]
	}
	return out
}

// SoundMode selects how sequence steps are sonified
type SoundMode string

const (
	SoundNone       SoundMode = "none"
	SoundOscillator SoundMode = "oscillator" // tone held until the decay phase
	SoundNotes      SoundMode = "notes"      // fixed-length note per step
)

// Sound configures the tone played for each quadrant
type Sound struct {
	Mode        SoundMode
	Frequencies [4]float64 // Hz, indexed by quadrant
	Volume      float64    // 0.0 - 1.0
	Sustain     int        // note length in frames (notes mode)
}

// Enabled reports whether steps produce sound
func (s Sound) Enabled() bool {
	return s.Mode == SoundOscillator || s.Mode == SoundNotes
}

// ButtonStyle selects the painter used for the four quadrant buttons
type ButtonStyle string

const (
	ButtonsPlain   ButtonStyle = "plain"
	ButtonsLabeled ButtonStyle = "labeled"
)

// TimeoutKind selects what happens when the timeout phase ends
type TimeoutKind string

const (
	TimeoutReset    TimeoutKind = "reset"    // level 0, back to idle
	TimeoutStepDown TimeoutKind = "stepdown" // level - Step, continue at Next
)

// TimeoutPolicy configures the timeout override
type TimeoutPolicy struct {
	Kind TimeoutKind
	Step int // levels removed (stepdown)
	Next int // state number to continue in (stepdown)
}

// Skin is the complete look-and-timing bundle of one deployment
type Skin struct {
	ID        string
	Durations Durations
	Palettes  [PhaseCount]Palette
	Rotation  [PhaseCount]int
	Blank     color.NRGBA
	Sound     Sound
	Buttons   ButtonStyle
	Timeout   TimeoutPolicy
}

// Duration returns the frame count of phase p
func (s *Skin) Duration(p Phase) int {
	return s.Durations[p]
}

// Palette returns the color table of phase p
func (s *Skin) Palette(p Phase) Palette {
	return s.Palettes[p]
}

// Validate rejects skins the state machine cannot run
func (s *Skin) Validate() error {
	if s.ID == "" {
		return ErrMissingID
	}
	for _, p := range Phases() {
		if s.Durations[p] <= 0 {
			return fmt.Errorf("%s: %w", p, ErrBadDuration)
		}
		if len(s.Palettes[p]) < RingSize {
			return fmt.Errorf("%s has %d colors: %w", p, len(s.Palettes[p]), ErrPaletteTooShort)
		}
	}
	switch s.Sound.Mode {
	case SoundNone, "":
	case SoundOscillator, SoundNotes:
		for q, f := range s.Sound.Frequencies {
			if f <= 0 {
				return fmt.Errorf("frequency of quadrant %d is %v: %w", q, f, ErrBadSound)
			}
		}
		if s.Sound.Volume < 0 || s.Sound.Volume > 1 {
			return fmt.Errorf("volume %v: %w", s.Sound.Volume, ErrBadSound)
		}
		if s.Sound.Mode == SoundNotes && s.Sound.Sustain <= 0 {
			return fmt.Errorf("notes need a sustain: %w", ErrBadSound)
		}
	default:
		return fmt.Errorf("mode %q: %w", s.Sound.Mode, ErrBadSound)
	}
	switch s.Timeout.Kind {
	case TimeoutReset, "":
	case TimeoutStepDown:
		if s.Timeout.Step < 0 || s.Timeout.Next < 0 || s.Timeout.Next >= PhaseCount {
			return fmt.Errorf("step %d next %d: %w", s.Timeout.Step, s.Timeout.Next, ErrBadTimeout)
		}
	default:
		return fmt.Errorf("kind %q: %w", s.Timeout.Kind, ErrBadTimeout)
	}
	return nil
}

// DefaultRotation is the per-render rotation of each phase table
func DefaultRotation() [PhaseCount]int {
	return [PhaseCount]int{
		PhaseIdle:      1,
		PhasePrepare:   -1,
		PhaseDecay:     -3,
		PhaseCountdown: 1,
		PhaseTimeout:   1,
	}
}

// DefaultDurations are the reference timings at 60 frames per second
func DefaultDurations() Durations {
	return Durations{
		PhaseIdle:      20,
		PhasePrepare:   120,
		PhaseShowTest:  40,
		PhaseDecay:     120,
		PhaseCountdown: 360,
		PhaseTimeout:   120,
		PhaseCorrect:   120,
		PhaseIncorrect: 120,
	}
}
