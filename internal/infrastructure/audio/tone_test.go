package audio

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// peak returns the largest absolute sample value
func peak(pcm []byte) int {
	best := 0
	for i := 0; i+1 < len(pcm); i += 2 {
		v := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
		if v < 0 {
			v = -v
		}
		best = max(best, v)
	}
	return best
}

func sampleAt(pcm []byte, i int) int16 {
	return int16(binary.LittleEndian.Uint16(pcm[i*bytesPerSample:]))
}

func TestNote_Length(t *testing.T) {
	d := 400 * time.Millisecond
	pcm, err := Note(349.23, d, 0.2, SampleRate)
	require.NoError(t, err)

	assert.Equal(t, SampleRate.N(d)*bytesPerSample, len(pcm))
}

func TestNote_Volume(t *testing.T) {
	pcm, err := Note(440, 200*time.Millisecond, 0.5, SampleRate)
	require.NoError(t, err)

	p := peak(pcm)
	full := float64(math.MaxInt16)
	assert.LessOrEqual(t, p, int(0.5*full)+1)
	assert.Greater(t, p, int(0.4*full))
}

func TestNote_Envelope(t *testing.T) {
	pcm, err := Note(440, 300*time.Millisecond, 1, SampleRate)
	require.NoError(t, err)

	assert.Equal(t, int16(0), sampleAt(pcm, 0), "attack starts silent")
	last := len(pcm)/bytesPerSample - 1
	assert.InDelta(t, 0, float64(sampleAt(pcm, last)), 400, "release ends near silence")
}

func TestNote_Silent(t *testing.T) {
	pcm, err := Note(440, 100*time.Millisecond, 0, SampleRate)
	require.NoError(t, err)

	assert.NotEmpty(t, pcm)
	assert.Equal(t, 0, peak(pcm))
}

func TestNote_BadFrequency(t *testing.T) {
	_, err := Note(float64(SampleRate)/2+1, time.Second, 1, SampleRate)
	assert.Error(t, err)
}

func TestLoop_WholeCycles(t *testing.T) {
	pcm, err := Loop(220, 1, SampleRate)
	require.NoError(t, err)

	samples := len(pcm) / bytesPerSample
	assert.InDelta(t, float64(SampleRate), float64(samples), 1)
	// The sample after the last one is the first sample again
	assert.InDelta(t, float64(sampleAt(pcm, 0)), 0, 1)
	assert.Less(t, math.Abs(float64(sampleAt(pcm, samples-1))), 0.05*math.MaxInt16)
}

func TestEncode_Clamps(t *testing.T) {
	s := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		samples[0] = [2]float64{2, -2}
		return 1, false
	})

	pcm := Encode(s)
	require.Len(t, pcm, bytesPerSample)
	assert.Equal(t, int16(math.MaxInt16), int16(binary.LittleEndian.Uint16(pcm[0:])))
	assert.Equal(t, int16(-math.MaxInt16), int16(binary.LittleEndian.Uint16(pcm[2:])))
}

func TestFramesToDuration(t *testing.T) {
	assert.Equal(t, 400*time.Millisecond, FramesToDuration(24, 60))
	assert.Equal(t, 2*time.Second, FramesToDuration(120, 60))
	assert.Equal(t, time.Second, FramesToDuration(60, 0))
}

func TestSilent(t *testing.T) {
	var tones Tones = Silent{}
	tones.Start(2)
	tones.Stop()
}
