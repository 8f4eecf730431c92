// Package machine implements the frame-clocked test state machine.
//
// The machine is driven by calling Tick once per frame with that frame's
// input edge. It never blocks, starts no goroutines and keeps no wall-clock
// time: every wait is a comparison of elapsed frames against a skin duration.
// Rendering, sound and result delivery are returned to the caller in the
// Frame value.
package machine

import (
	"github.com/younwookim/stm/internal/application/result"
	"github.com/younwookim/stm/internal/application/state"
	"github.com/younwookim/stm/internal/domain/sequence"
	"github.com/younwookim/stm/internal/domain/skin"
)

const (
	// EngageLevel is the level a test starts at after leaving idle
	EngageLevel = 2

	// blankFrames is the tail of each sequence step during which the ring is blanked
	blankFrames = 10
)

// SequenceSource produces the sequence of a new round
type SequenceSource interface {
	Generate(length int) sequence.Sequence
}

// Session identifies the participant and display for result records
type Session struct {
	TestID   string
	Viewport result.Viewport
	Answers  []string
}

// Option configures a Machine
type Option func(*Machine)

// WithHooks replaces the hooks derived from the skin
func WithHooks(h Hooks) Option {
	return func(m *Machine) {
		if h != nil {
			m.hooks = h
		}
	}
}

// WithSession sets the session used in result records
func WithSession(s Session) Option {
	return func(m *Machine) {
		m.SetSession(s)
	}
}

// Machine is the test state machine. It is not safe for concurrent use;
// it belongs to the frame loop that ticks it.
type Machine struct {
	skin    *skin.Skin
	hooks   Hooks
	source  SequenceSource
	session Session

	activity     state.Activity
	testLevel    int
	currentLevel int
	lastLevel    int
	round        int
	game         sequence.Sequence
	reply        []int

	frame      int
	startFrame int
	lastButton int

	// Rotation offset of each phase table, kept across rounds
	offsets [skin.PhaseCount]int

	out Frame
}

// New creates a machine in the idle state
func New(sk *skin.Skin, source SequenceSource, opts ...Option) *Machine {
	m := &Machine{
		skin:         sk,
		hooks:        HooksFor(sk),
		source:       source,
		activity:     state.Idle,
		currentLevel: -1,
		lastLevel:    -1,
		game:         sequence.Sequence{},
		lastButton:   NoButton,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.setup()
	return m
}

// Tick advances the frame clock by one and runs the current state.
// in carries at most one button edge; it is consumed or dropped within
// this tick.
func (m *Machine) Tick(in Input) Frame {
	m.frame++
	m.out = Frame{Tick: m.frame}

	m.lastButton = NoButton
	if in.Button >= 0 && in.Button < sequence.Quadrants {
		m.lastButton = in.Button
	}

	m.apply(m.hooks.OnPreDraw(m.View()))
	if m.activity.Valid() {
		m.handle()
	}
	m.apply(m.hooks.OnPostDraw(m.View()))

	m.lastButton = NoButton

	m.out.State = m.activity
	m.out.Level = m.testLevel
	m.out.Suspended = !m.activity.Valid()
	return m.out
}

func (m *Machine) apply(next state.Activity) {
	if next != m.activity {
		m.changeState(next)
	}
}

func (m *Machine) handle() {
	switch m.activity {
	case state.Idle:
		m.handleIdle()
	case state.Prepare:
		m.handlePrepare()
	case state.ShowSequence:
		m.handleShowSequence()
	case state.Decay:
		m.handleDecay()
	case state.AwaitResponse:
		m.handleAwaitResponse()
	case state.Timeout:
		m.handleTimeout()
	case state.Success:
		m.handleSuccess()
	case state.Failure:
		m.handleFailure()
	}
}

// changeState performs the bookkeeping shared by every transition
func (m *Machine) changeState(next state.Activity) {
	m.startFrame = m.frame
	m.lastLevel = m.currentLevel
	m.currentLevel = m.testLevel
	m.lastButton = NoButton
	m.activity = next

	if next == state.Decay && m.skin.Sound.Mode == skin.SoundOscillator {
		m.out.Tone = &ToneCue{Stop: true}
	}
}

func (m *Machine) elapsed() int {
	return m.frame - m.startFrame
}

func (m *Machine) handleIdle() {
	m.showPhase(skin.PhaseIdle, true)
	if m.lastButton != NoButton {
		m.testLevel = EngageLevel
		m.changeState(state.Prepare)
	}
}

func (m *Machine) handlePrepare() {
	m.showPhase(skin.PhasePrepare, true)
	if m.elapsed() < m.skin.Duration(skin.PhasePrepare) {
		return
	}
	m.game = m.source.Generate(m.testLevel)
	m.reply = make([]int, 0, m.testLevel)
	m.round++
	m.changeState(state.ShowSequence)
	if m.testLevel == 0 {
		// Nothing to present
		m.currentLevel = -1
	}
}

func (m *Machine) handleShowSequence() {
	if m.currentLevel == -1 {
		m.changeState(state.Decay)
		return
	}
	step := m.skin.Duration(skin.PhaseShowTest)
	pos := m.frame % step
	switch {
	case pos == 0:
		// A hook may enter with a level longer than the sequence
		if idx := m.testLevel - m.currentLevel; m.currentLevel > 0 && idx >= 0 && idx < m.game.Len() {
			m.showStep(m.game.At(idx))
		}
		m.currentLevel--
	case pos > step-blankFrames:
		m.blank()
	}
}

func (m *Machine) handleDecay() {
	m.showPhase(skin.PhaseDecay, false)
	if m.elapsed() >= m.skin.Duration(skin.PhaseDecay) {
		m.changeState(state.AwaitResponse)
	}
}

// handleAwaitResponse checks the timeout before the input of the same
// frame, so a press on the timeout frame does not count.
func (m *Machine) handleAwaitResponse() {
	elapsed := m.elapsed()
	if elapsed >= m.skin.Duration(skin.PhaseCountdown) {
		m.report(result.OutcomeTimeout, elapsed)
		m.changeState(state.Timeout)
		return
	}
	m.showPhase(skin.PhaseCountdown, true)
	if m.lastButton == NoButton {
		return
	}

	expected, ok := m.expected()
	if ok {
		m.reply = append(m.reply, m.lastButton)
	}
	if !ok || m.lastButton != expected {
		m.report(result.OutcomeWrong, elapsed)
		m.changeState(state.Failure)
		return
	}
	m.currentLevel--
	if m.currentLevel == 0 {
		m.report(result.OutcomeCorrect, elapsed)
		m.changeState(state.Success)
	}
}

// expected returns the quadrant the next press must match
func (m *Machine) expected() (int, bool) {
	idx := m.testLevel - m.currentLevel
	if m.currentLevel <= 0 || idx < 0 || idx >= m.game.Len() {
		return 0, false
	}
	return m.game.At(idx), true
}

func (m *Machine) handleTimeout() {
	m.showPhase(skin.PhaseTimeout, true)
	if m.elapsed() < m.skin.Duration(skin.PhaseTimeout) {
		return
	}
	level, next := m.hooks.OnTimeout(m.testLevel)
	m.testLevel = max(level, 0)
	m.changeState(next)
}

func (m *Machine) handleSuccess() {
	m.showPhase(skin.PhaseCorrect, true)
	if m.elapsed() >= m.skin.Duration(skin.PhaseCorrect) {
		m.testLevel++
		m.changeState(state.Prepare)
	}
}

func (m *Machine) handleFailure() {
	m.showPhase(skin.PhaseIncorrect, true)
	if m.elapsed() < m.skin.Duration(skin.PhaseIncorrect) {
		return
	}
	m.testLevel = max(m.testLevel-1, 0)
	if m.testLevel == 0 {
		m.changeState(state.Idle)
	} else {
		m.changeState(state.Prepare)
	}
}

// showPhase renders the phase table once per twelfth of the phase (once
// per step for idle) and rotates it for the next render.
func (m *Machine) showPhase(p skin.Phase, buttons bool) {
	interval := m.skin.Duration(p)
	if p != skin.PhaseIdle {
		interval /= skin.RingSize
	}
	if interval < 1 {
		interval = 1
	}
	if m.frame%interval != 0 {
		return
	}

	palette := m.skin.Palette(p)
	m.out.Ring = &Ring{Colors: palette.Window(m.offsets[p]), Buttons: buttons}
	if n := len(palette); n > 0 {
		m.offsets[p] = ((m.offsets[p]+m.skin.Rotation[p])%n + n) % n
	}
}

// showStep lights the three segments of quadrant q
func (m *Machine) showStep(q int) {
	m.out.Ring = &Ring{
		Colors:  m.skin.Palette(skin.PhaseShowTest).Window(3 * q),
		Buttons: true,
	}
	if m.skin.Sound.Enabled() {
		m.out.Tone = &ToneCue{Quadrant: q}
	}
}

func (m *Machine) blank() {
	r := &Ring{}
	for i := range r.Colors {
		r.Colors[i] = m.skin.Blank
	}
	m.out.Ring = r
}

func (m *Machine) report(outcome result.Outcome, elapsed int) {
	d := m.skin.Durations
	rec := result.Record{
		TestID: m.session.TestID,
		Round:  m.round,
		SkinID: m.skin.ID,
		Durations: result.Durations{
			Idle:      d[skin.PhaseIdle],
			Warn:      d[skin.PhasePrepare],
			ShowTest:  d[skin.PhaseShowTest],
			Decay:     d[skin.PhaseDecay],
			Countdown: d[skin.PhaseCountdown],
		},
		Sequence: m.game.String(),
		Reply:    sequence.Join(m.reply),
		Outcome:  outcome,
		Elapsed:  elapsed,
		Level:    m.currentLevel,
		Viewport: m.session.Viewport,
		Answers:  append([]string(nil), m.session.Answers...),
	}
	m.out.Result = &rec
}

// SetSession replaces the session used in result records
func (m *Machine) SetSession(s Session) {
	s.Answers = append([]string(nil), s.Answers...)
	m.session = s
}

// SetViewport updates the display size reported in result records
func (m *Machine) SetViewport(w, h int) {
	m.session.Viewport = result.Viewport{Width: w, Height: h}
	m.setup()
}

// setup hands a known viewport to SetupHooks
func (m *Machine) setup() {
	v := m.session.Viewport
	if sh, ok := m.hooks.(SetupHooks); ok && v != (result.Viewport{}) {
		sh.OnSetup(v.Width, v.Height)
	}
}

// View returns a snapshot of the machine
func (m *Machine) View() View {
	return View{
		State:        m.activity,
		Level:        m.testLevel,
		CurrentLevel: m.currentLevel,
		Round:        m.round,
		Frame:        m.frame,
		Elapsed:      m.elapsed(),
	}
}

// State returns the current state
func (m *Machine) State() state.Activity { return m.activity }

// Level returns the current difficulty level
func (m *Machine) Level() int { return m.testLevel }

// CurrentLevel returns the round counter
func (m *Machine) CurrentLevel() int { return m.currentLevel }

// LastLevel returns the round counter before the last transition
func (m *Machine) LastLevel() int { return m.lastLevel }

// Round returns the number of rounds started
func (m *Machine) Round() int { return m.round }

// Sequence returns the sequence of the current round
func (m *Machine) Sequence() sequence.Sequence { return m.game }

// Reply returns a copy of the presses recorded this round
func (m *Machine) Reply() []int { return append([]int(nil), m.reply...) }

// Elapsed returns the frames spent in the current state
func (m *Machine) Elapsed() int { return m.elapsed() }

// FrameCount returns the frame clock
func (m *Machine) FrameCount() int { return m.frame }

// Skin returns the skin the machine runs with
func (m *Machine) Skin() *skin.Skin { return m.skin }

// Session returns the session used in result records
func (m *Machine) Session() Session { return m.session }
