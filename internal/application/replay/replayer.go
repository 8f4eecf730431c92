package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// ErrEmpty is returned when saving a recording without frames
var ErrEmpty = errors.New("no frames to save")

// Recorder records the button edges of a session
type Recorder struct {
	data      Data
	recording bool
	frame     int
}

// NewRecorder creates a new recorder with seed for deterministic replay
func NewRecorder(seed int64, skinID, testID string) *Recorder {
	return &Recorder{
		data: Data{
			Version:   Version,
			Seed:      seed,
			Skin:      skinID,
			TestID:    testID,
			StartTime: time.Now().Format(time.RFC3339),
			Presses:   make([]FrameInput, 0, 64),
		},
		recording: true,
	}
}

// RecordFrame records one frame; button is a quadrant or negative for none
func (r *Recorder) RecordFrame(button int) {
	if !r.recording {
		return
	}
	r.frame++
	r.data.TotalFrames = r.frame
	if button >= 0 {
		r.data.Presses = append(r.data.Presses, FrameInput{F: r.frame, B: button})
	}
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return r.data.TotalFrames
}

// Data returns the recorded data
func (r *Recorder) Data() Data {
	d := r.data
	d.Presses = append([]FrameInput(nil), r.data.Presses...)
	return d
}

// Write encodes the recording as indented JSON
func (r *Recorder) Write(w io.Writer) error {
	if r.data.TotalFrames == 0 {
		return ErrEmpty
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Save writes the recording to a file
func (r *Recorder) Save(filename string) error {
	if r.data.TotalFrames == 0 {
		return ErrEmpty
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return r.Write(file)
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}

// Replayer plays back recorded presses frame by frame
type Replayer struct {
	data  Data
	frame int
	next  int // index of the next press
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data Data) *Replayer {
	return &Replayer{data: data}
}

// Decode reads replay data
func Decode(r io.Reader) (*Data, error) {
	var data Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file)
}

// Next returns the button of the next frame (-1 for none) and advances.
// ok is false once all recorded frames have been played.
func (r *Replayer) Next() (button int, ok bool) {
	if r.frame >= r.data.TotalFrames {
		return -1, false
	}
	r.frame++

	button = -1
	// Skip presses out of order or beyond the current frame
	for r.next < len(r.data.Presses) && r.data.Presses[r.next].F < r.frame {
		r.next++
	}
	if r.next < len(r.data.Presses) && r.data.Presses[r.next].F == r.frame {
		button = r.data.Presses[r.next].B
		r.next++
	}
	return button, true
}

// CurrentFrame returns the number of frames played
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return r.data.TotalFrames
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Skin returns the skin the session was played with
func (r *Replayer) Skin() string {
	return r.data.Skin
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.next = 0
}
