// Package result defines the outcome record of a test round and the sinks
// that receive it.
package result

import (
	"fmt"
	"strconv"
	"strings"
)

// Outcome is the terminal result of a round
type Outcome string

const (
	OutcomeTimeout Outcome = "timeout"
	OutcomeWrong   Outcome = "wrong"
	OutcomeCorrect Outcome = "correct"
)

// Durations are the phase timings reported with every record, in frames
type Durations struct {
	Idle      int
	Warn      int
	ShowTest  int
	Decay     int
	Countdown int
}

// Viewport is the display size the round was played on
type Viewport struct {
	Width  int
	Height int
}

// String returns "WxH"
func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// Record is the structured outcome of one round
type Record struct {
	TestID    string
	Round     int
	SkinID    string
	Durations Durations
	Sequence  string // comma-joined expected quadrants
	Reply     string // comma-joined entered quadrants
	Outcome   Outcome
	Elapsed   int // frames spent in the response phase
	Level     int // steps still outstanding at adjudication
	Viewport  Viewport
	Answers   []string
}

// Fields returns the record fields in transmission order
func (r Record) Fields() []string {
	fields := []string{
		r.TestID,
		strconv.Itoa(r.Round),
		r.SkinID,
		strconv.Itoa(r.Durations.Idle),
		strconv.Itoa(r.Durations.Warn),
		strconv.Itoa(r.Durations.ShowTest),
		strconv.Itoa(r.Durations.Decay),
		strconv.Itoa(r.Durations.Countdown),
		r.Sequence,
		r.Reply,
		string(r.Outcome),
		strconv.Itoa(r.Elapsed),
		strconv.Itoa(r.Level),
		r.Viewport.String(),
	}
	return append(fields, r.Answers...)
}

// fieldSanitizer keeps separators out of encoded fields
var fieldSanitizer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// Encode returns the tab-delimited line sent to the collector.
// Tabs and newlines inside answers are replaced by spaces so the field
// count stays fixed.
func (r Record) Encode() string {
	fields := r.Fields()
	for i, f := range fields {
		fields[i] = fieldSanitizer.Replace(f)
	}
	return strings.Join(fields, "\t")
}
