package main

import (
	"github.com/younwookim/stm/internal/application/machine"
	"github.com/younwookim/stm/internal/application/replay"
	"github.com/younwookim/stm/internal/application/result"
)

// runHeadless replays every recorded frame into m without a window and
// returns the number of frames played
func runHeadless(m *machine.Machine, r *replay.Replayer, sink result.Sink) int {
	for {
		b, ok := r.Next()
		if !ok {
			return r.CurrentFrame()
		}
		f := m.Tick(machine.Press(b))
		if f.Result != nil {
			sink.Submit(*f.Result)
		}
	}
}
