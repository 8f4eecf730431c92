package state

// Activity is the state of the test state machine.
// Values 0-7 are the canonical states; any other value is a host override
// that suspends normal handling.
type Activity int

const (
	Idle Activity = iota
	Prepare
	ShowSequence
	Decay
	AwaitResponse
	Timeout
	Success
	Failure
)

// Count is the number of canonical states
const Count = 8

// Valid reports whether a is one of the canonical states
func (a Activity) Valid() bool {
	return a >= Idle && a <= Failure
}

// String returns the string representation of the activity state
func (a Activity) String() string {
	switch a {
	case Idle:
		return "Idle"
	case Prepare:
		return "Prepare"
	case ShowSequence:
		return "ShowSequence"
	case Decay:
		return "Decay"
	case AwaitResponse:
		return "AwaitResponse"
	case Timeout:
		return "Timeout"
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return "Override"
	}
}
