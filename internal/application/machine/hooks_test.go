package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/stm/internal/application/result"
	"github.com/younwookim/stm/internal/application/state"
	"github.com/younwookim/stm/internal/domain/sequence"
	"github.com/younwookim/stm/internal/domain/skin"
)

// overrideHooks leaves the canonical states on timeout and comes back to
// idle after a number of suspended frames
type overrideHooks struct {
	DefaultHooks
	timeoutNext state.Activity
	resumeAfter int
	suspended   int
	preCalls    int
}

func (h *overrideHooks) OnTimeout(level int) (int, state.Activity) {
	return level, h.timeoutNext
}

func (h *overrideHooks) OnPreDraw(v View) state.Activity {
	h.preCalls++
	return v.State
}

func (h *overrideHooks) OnPostDraw(v View) state.Activity {
	if !v.State.Valid() {
		h.suspended++
		if h.suspended >= h.resumeAfter {
			return state.Idle
		}
	}
	return v.State
}

func TestDefaultHooks(t *testing.T) {
	h := DefaultHooks{}

	level, next := h.OnTimeout(6)
	assert.Equal(t, 0, level)
	assert.Equal(t, state.Idle, next)

	v := View{State: state.Decay}
	assert.Equal(t, state.Decay, h.OnPreDraw(v))
	assert.Equal(t, state.Decay, h.OnPostDraw(v))
}

func TestStepDownHooks(t *testing.T) {
	h := StepDownHooks{Step: 2, Next: state.Prepare}

	tests := []struct {
		level    int
		expected int
	}{
		{5, 3},
		{2, 0},
		{1, 0},
		{0, 0},
	}

	for _, tt := range tests {
		level, next := h.OnTimeout(tt.level)
		assert.Equal(t, tt.expected, level)
		assert.Equal(t, state.Prepare, next)
	}
}

func TestHooksFor(t *testing.T) {
	sk := skin.Default()
	assert.Equal(t, DefaultHooks{}, HooksFor(sk))

	sk.Timeout = skin.TimeoutPolicy{Kind: skin.TimeoutStepDown, Step: 2, Next: 1}
	assert.Equal(t, StepDownHooks{Step: 2, Next: state.Prepare}, HooksFor(sk))
}

func TestMachine_StepDownTimeoutPolicy(t *testing.T) {
	sk := skin.Default()
	sk.Timeout = skin.TimeoutPolicy{Kind: skin.TimeoutStepDown, Step: 2, Next: int(state.Prepare)}
	m := New(sk, newFixedSource())
	enter(m, state.Timeout, 5, sequence.Sequence{0, 0, 0, 0, 0})

	tickN(m, 120)

	assert.Equal(t, state.Prepare, m.State())
	assert.Equal(t, 3, m.Level())
}

func TestMachine_StepDownToZeroPresentsNothing(t *testing.T) {
	sk := skin.Default()
	sk.Timeout = skin.TimeoutPolicy{Kind: skin.TimeoutStepDown, Step: 2, Next: int(state.Prepare)}
	m := New(sk, newFixedSource())
	enter(m, state.Timeout, 1, sequence.Sequence{0})

	tickN(m, 120)
	require.Equal(t, state.Prepare, m.State())
	require.Equal(t, 0, m.Level())

	tickN(m, 120)
	assert.Equal(t, state.ShowSequence, m.State())
	assert.Equal(t, -1, m.CurrentLevel())

	m.Tick(NoInput)
	assert.Equal(t, state.Decay, m.State())
}

func TestMachine_OverrideSuspendsHandling(t *testing.T) {
	hooks := &overrideHooks{timeoutNext: state.Activity(42), resumeAfter: 4}
	m := New(skin.Default(), newFixedSource(), WithHooks(hooks))
	enter(m, state.Timeout, 3, sequence.Sequence{1, 1, 1})

	tickN(m, 119)
	f := m.Tick(NoInput)

	assert.Equal(t, state.Activity(42), f.State)
	assert.True(t, f.Suspended)
	assert.Equal(t, 3, m.Level(), "override hook keeps the level")

	// Input does not reach any handler while suspended
	for i := 0; i < 2; i++ {
		f = m.Tick(Press(0))
		assert.True(t, f.Suspended)
		assert.Nil(t, f.Ring)
		assert.Nil(t, f.Result)
	}

	f = m.Tick(NoInput)
	assert.False(t, f.Suspended)
	assert.Equal(t, state.Idle, f.State)
	assert.Equal(t, 0, m.Elapsed())
	assert.Equal(t, m.FrameCount(), hooks.preCalls)
}

func TestMachine_PreDrawTransitionUsesBookkeeping(t *testing.T) {
	hooks := &jumpHooks{at: 5, to: state.Decay}
	m := New(skin.Default(), newFixedSource(), WithHooks(hooks))
	m.testLevel = 3

	tickN(m, 5)

	assert.Equal(t, state.Decay, m.State())
	assert.Equal(t, 3, m.CurrentLevel())
	assert.Equal(t, 5, m.startFrame)
}

// jumpHooks moves the machine to a fixed state on a given frame
type jumpHooks struct {
	DefaultHooks
	at int
	to state.Activity
}

func (h jumpHooks) OnPreDraw(v View) state.Activity {
	if v.Frame == h.at {
		return h.to
	}
	return v.State
}

func TestWithHooks_NilKeepsDefault(t *testing.T) {
	m := New(skin.Default(), newFixedSource(), WithHooks(nil))
	assert.Equal(t, DefaultHooks{}, m.hooks)
}

// raiseHooks continues a timeout in ShowSequence one level higher
type raiseHooks struct {
	DefaultHooks
}

func (raiseHooks) OnTimeout(level int) (int, state.Activity) {
	return level + 1, state.ShowSequence
}

func TestMachine_HookLevelBeyondSequence(t *testing.T) {
	m := New(skin.Default(), newFixedSource(), WithHooks(raiseHooks{}))
	enter(m, state.Timeout, 2, sequence.Sequence{1, 2})
	palette := m.Skin().Palette(skin.PhaseShowTest)

	var frames []Frame
	require.NotPanics(t, func() {
		for i := 0; i < 2000 && m.State() != state.AwaitResponse; i++ {
			frames = append(frames, m.Tick(NoInput))
		}
	})
	require.Equal(t, state.AwaitResponse, m.State())
	assert.Equal(t, 3, m.Level())

	var steps []int
	for _, f := range frames {
		if f.State != state.ShowSequence || f.Ring == nil {
			continue
		}
		for _, q := range []int{1, 2} {
			if f.Ring.Colors == palette.Window(3*q) {
				steps = append(steps, q)
			}
		}
	}
	assert.Equal(t, []int{1, 2}, steps, "only the steps the sequence has are shown")

	// The missing third step is answered as wrong, not read out of range
	require.NotPanics(t, func() {
		m.Tick(Press(1))
		m.Tick(Press(2))
		m.Tick(Press(0))
	})
	assert.Equal(t, state.Failure, m.State())
}

func TestMachine_PreDrawJumpIntoShowSequence(t *testing.T) {
	hooks := jumpHooks{at: 5, to: state.ShowSequence}
	m := New(skin.Default(), newFixedSource(), WithHooks(hooks))
	m.testLevel = 3

	var frames []Frame
	require.NotPanics(t, func() {
		frames = tickN(m, 400)
	})

	assert.NotEqual(t, state.ShowSequence, m.State())
	assert.Equal(t, state.AwaitResponse, m.State())
	for _, f := range frames {
		if f.State == state.ShowSequence && f.Ring != nil {
			assert.False(t, f.Ring.Buttons, "frame %d shows a step of an empty sequence", f.Tick)
		}
	}
}

// sizeHooks records the display sizes it is given
type sizeHooks struct {
	DefaultHooks
	sizes [][2]int
}

func (s *sizeHooks) OnSetup(w, h int) {
	s.sizes = append(s.sizes, [2]int{w, h})
}

func TestMachine_SetupHooks(t *testing.T) {
	hooks := &sizeHooks{}
	m := New(skin.Default(), newFixedSource(),
		WithSession(Session{TestID: "T-0101", Viewport: result.Viewport{Width: 800, Height: 600}}),
		WithHooks(hooks))

	assert.Equal(t, [][2]int{{800, 600}}, hooks.sizes, "known viewport is handed over at creation")

	m.SetViewport(1024, 768)
	assert.Equal(t, [][2]int{{800, 600}, {1024, 768}}, hooks.sizes)
}

func TestMachine_SetupHooksWaitForViewport(t *testing.T) {
	hooks := &sizeHooks{}
	m := New(skin.Default(), newFixedSource(), WithHooks(hooks))
	assert.Empty(t, hooks.sizes)

	m.SetViewport(320, 240)
	assert.Equal(t, [][2]int{{320, 240}}, hooks.sizes)
}
