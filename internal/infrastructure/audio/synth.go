package audio

import (
	"bytes"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/younwookim/stm/internal/domain/skin"
)

// Tones starts and stops quadrant tones
type Tones interface {
	Start(quadrant int)
	Stop()
}

// Silent is the Tones of skins without sound and of headless runs
type Silent struct{}

func (Silent) Start(int) {}
func (Silent) Stop()     {}

// Synth plays the quadrant tones of a skin
type Synth struct {
	players [4]*audio.Player
	current *audio.Player
}

// NewSynth renders the four quadrant tones of a sound.
// Oscillator tones loop until Stop; notes last Sustain frames.
func NewSynth(sound skin.Sound, framerate int) (*Synth, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(int(SampleRate))
	}

	s := &Synth{}
	for q, freq := range sound.Frequencies {
		switch sound.Mode {
		case skin.SoundOscillator:
			pcm, err := Loop(freq, sound.Volume, SampleRate)
			if err != nil {
				return nil, err
			}
			loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
			p, err := ctx.NewPlayer(loop)
			if err != nil {
				return nil, fmt.Errorf("failed to create player for quadrant %d: %w", q, err)
			}
			s.players[q] = p
		case skin.SoundNotes:
			pcm, err := Note(freq, FramesToDuration(sound.Sustain, framerate), sound.Volume, SampleRate)
			if err != nil {
				return nil, err
			}
			s.players[q] = ctx.NewPlayerFromBytes(pcm)
		default:
			return nil, fmt.Errorf("mode %q: %w", sound.Mode, skin.ErrBadSound)
		}
	}
	return s, nil
}

// NewTones returns a synth for sounding skins and Silent otherwise.
// Audio failures are logged and fall back to silence.
func NewTones(sound skin.Sound, framerate int) Tones {
	if !sound.Enabled() {
		return Silent{}
	}
	s, err := NewSynth(sound, framerate)
	if err != nil {
		log.Printf("Audio disabled: %v", err)
		return Silent{}
	}
	return s
}

// Start replaces the current tone with the tone of a quadrant
func (s *Synth) Start(quadrant int) {
	if quadrant < 0 || quadrant >= len(s.players) {
		return
	}
	s.Stop()
	p := s.players[quadrant]
	if err := p.Rewind(); err != nil {
		log.Printf("Failed to rewind tone: %v", err)
	}
	p.Play()
	s.current = p
}

// Stop silences the current tone
func (s *Synth) Stop() {
	if s.current != nil {
		s.current.Pause()
		s.current = nil
	}
}

// Close releases the players
func (s *Synth) Close() {
	s.Stop()
	for _, p := range s.players {
		if p != nil {
			_ = p.Close()
		}
	}
}
