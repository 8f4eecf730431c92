// Package session provides the scene that runs the memory test.
package session

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/stm/internal/application/machine"
	"github.com/younwookim/stm/internal/application/replay"
	"github.com/younwookim/stm/internal/application/result"
	"github.com/younwookim/stm/internal/application/scene"
	"github.com/younwookim/stm/internal/infrastructure/audio"
	"github.com/younwookim/stm/internal/infrastructure/input"
	"github.com/younwookim/stm/internal/infrastructure/render"
)

// Scene hosts the test machine and forwards its output to the screen,
// the speaker and the result sink
type Scene struct {
	machine *machine.Machine
	pointer *input.Pointer
	ring    *render.Ring
	tones   audio.Tones
	sink    result.Sink

	screenW int
	screenH int

	// Input recording
	recorder       *replay.Recorder
	recordFilename string

	// Replay input, replaces the pointer when set
	replayer *replay.Replayer

	last machine.Frame
}

// Option configures a Scene
type Option func(*Scene)

// WithRecorder records every frame and saves it to filename
// (a generated name when empty)
func WithRecorder(rec *replay.Recorder, filename string) Option {
	return func(s *Scene) {
		s.recorder = rec
		s.recordFilename = filename
	}
}

// WithReplayer drives the machine from a recording instead of the pointer
func WithReplayer(r *replay.Replayer) Option {
	return func(s *Scene) {
		s.replayer = r
	}
}

// WithTones sets the tone player
func WithTones(t audio.Tones) Option {
	return func(s *Scene) {
		if t != nil {
			s.tones = t
		}
	}
}

// New creates the session scene for m. Records go to sink.
func New(m *machine.Machine, sink result.Sink, opts ...Option) *Scene {
	if sink == nil {
		sink = result.LogSink{}
	}
	s := &Scene{
		machine: m,
		pointer: input.NewPointer(),
		ring:    render.NewRing(render.PainterFor(m.Skin())),
		tones:   audio.Silent{},
		sink:    sink,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.recorder != nil {
		log.Printf("Recording enabled: %s (seed: %d)", s.recordFilename, s.recorder.Data().Seed)
	}
	return s
}

// Machine returns the hosted machine
func (s *Scene) Machine() *machine.Machine {
	return s.machine
}

// Ring returns the ring renderer
func (s *Scene) Ring() *render.Ring {
	return s.ring
}

// Last returns the output of the last tick
func (s *Scene) Last() machine.Frame {
	return s.last
}

func (s *Scene) OnEnter() {}

// OnExit silences the tones and saves a pending recording
func (s *Scene) OnExit() {
	s.tones.Stop()
	if c, ok := s.tones.(interface{ Close() }); ok {
		c.Close()
	}
	if s.recorder != nil && s.recorder.IsRecording() {
		s.saveRecording()
		s.recorder.Stop()
	}
}

// Resize reports the new display size to the machine
func (s *Scene) Resize(w, h int) {
	s.screenW, s.screenH = w, h
	s.machine.SetViewport(w, h)
}

// Update samples one frame of input and ticks the machine.
// A finished replay ends the game.
func (s *Scene) Update() (scene.Scene, error) {
	var in machine.Input
	if s.replayer != nil {
		b, ok := s.replayer.Next()
		if !ok {
			log.Printf("Replay finished (%d frames)", s.replayer.TotalFrames())
			return nil, ebiten.Termination
		}
		in = machine.Press(b)
	} else {
		in = s.readInput()
	}

	s.Step(in)
	return nil, nil
}

func (s *Scene) readInput() machine.Input {
	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && s.recorder != nil {
		s.saveRecording()
	}

	ev := input.Resolve(s.pointer.Read(), s.screenW, s.screenH)
	if ev.ToggleFullscreen {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if ev.Pointer {
		s.ring.Touch(ev.X, ev.Y)
	}
	return machine.Press(ev.Button)
}

// Step records in, ticks the machine and forwards the frame output
func (s *Scene) Step(in machine.Input) machine.Frame {
	if s.recorder != nil {
		s.recorder.RecordFrame(in.Button)
	}

	f := s.machine.Tick(in)
	if f.Ring != nil {
		s.ring.Set(f.Ring.Colors, f.Ring.Buttons)
	}
	if f.Tone != nil {
		if f.Tone.Stop {
			s.tones.Stop()
		} else {
			s.tones.Start(f.Tone.Quadrant)
		}
	}
	if f.Result != nil {
		s.sink.Submit(*f.Result)
	}
	s.last = f
	return f
}

// Draw renders the last ring; a suspended machine leaves the screen as is
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.last.Suspended {
		return
	}
	s.ring.Draw(screen, render.HUD{
		TestID: s.machine.Session().TestID,
		Level:  s.machine.Level(),
		Frame:  s.machine.FrameCount(),
	})
}

// saveRecording saves the current recording to file
func (s *Scene) saveRecording() {
	filename := s.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := s.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, s.recorder.FrameCount())
	}
}
