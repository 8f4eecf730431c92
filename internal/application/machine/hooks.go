package machine

import (
	"github.com/younwookim/stm/internal/application/state"
	"github.com/younwookim/stm/internal/domain/skin"
)

// View is a read-only snapshot handed to hooks
type View struct {
	State        state.Activity
	Level        int
	CurrentLevel int
	Round        int
	Frame        int
	Elapsed      int
}

// Hooks lets a host customize the machine without touching its states.
//
// OnTimeout decides the level and state that follow the timeout phase.
// OnPreDraw and OnPostDraw run before and after the state handler of every
// frame and return the state to continue in. Returning a value outside the
// canonical states suspends normal handling until a later hook returns a
// canonical state again.
type Hooks interface {
	OnTimeout(level int) (newLevel int, next state.Activity)
	OnPreDraw(v View) state.Activity
	OnPostDraw(v View) state.Activity
}

// SetupHooks is implemented by hooks that need the display size. OnSetup
// runs every time the viewport is set.
type SetupHooks interface {
	OnSetup(width, height int)
}

// DefaultHooks is the "no customization" variant
type DefaultHooks struct{}

// OnTimeout restarts from idle at level 0
func (DefaultHooks) OnTimeout(int) (int, state.Activity) {
	return 0, state.Idle
}

// OnPreDraw keeps the current state
func (DefaultHooks) OnPreDraw(v View) state.Activity {
	return v.State
}

// OnPostDraw keeps the current state
func (DefaultHooks) OnPostDraw(v View) state.Activity {
	return v.State
}

// StepDownHooks lowers the level by Step after a timeout and continues in
// Next instead of restarting from idle.
type StepDownHooks struct {
	DefaultHooks
	Step int
	Next state.Activity
}

// OnTimeout returns max(level-Step, 0) and Next
func (h StepDownHooks) OnTimeout(level int) (int, state.Activity) {
	return max(level-h.Step, 0), h.Next
}

// HooksFor builds the hooks described by a skin's timeout policy
func HooksFor(sk *skin.Skin) Hooks {
	if sk.Timeout.Kind == skin.TimeoutStepDown {
		return StepDownHooks{Step: sk.Timeout.Step, Next: state.Activity(sk.Timeout.Next)}
	}
	return DefaultHooks{}
}
