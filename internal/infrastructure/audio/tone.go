// Package audio renders quadrant tones with beep and plays them through
// the ebiten audio context.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate of every rendered tone
const SampleRate = beep.SampleRate(44100)

// bytesPerSample is 16-bit little endian stereo
const bytesPerSample = 4

const (
	noteAttack  = 10 * time.Millisecond
	noteRelease = 120 * time.Millisecond
)

// envelope applies a linear attack and release to a finite stream
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{streamer: s, attack: att, release: rel, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, false
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; remaining <= e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, zero volume is silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Note renders a sine note of the given length with attack and release
func Note(freq float64, d time.Duration, volume float64, rate beep.SampleRate) ([]byte, error) {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("failed to create tone %v Hz: %w", freq, err)
	}
	shaped := newEnvelope(beep.Take(rate.N(d), tone), d, noteAttack, noteRelease, rate)
	return Encode(newVolume(shaped, volume)), nil
}

// Loop renders about one second of a sine tone, cut at a whole number of
// cycles so it can be repeated without a click
func Loop(freq float64, volume float64, rate beep.SampleRate) ([]byte, error) {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("failed to create tone %v Hz: %w", freq, err)
	}
	cycles := math.Max(math.Round(freq), 1)
	n := int(math.Round(cycles * float64(rate) / freq))
	return Encode(newVolume(beep.Take(n, tone), volume)), nil
}

// Encode drains a stream into 16-bit little endian stereo PCM
func Encode(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			for _, v := range smp {
				v = math.Max(-1, math.Min(1, v))
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok {
			return out
		}
	}
}

// FramesToDuration converts a frame count to wall time at the given rate
func FramesToDuration(frames, framerate int) time.Duration {
	if framerate <= 0 {
		framerate = 60
	}
	return time.Duration(frames) * time.Second / time.Duration(framerate)
}
