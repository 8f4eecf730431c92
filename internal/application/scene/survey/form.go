// Package survey implements the questionnaire shown before the test.
package survey

import (
	"strings"
	"unicode"

	"github.com/younwookim/stm/internal/infrastructure/config"
)

// Question types
const (
	TypeNumber = "number"
	TypeChoice = "choice"
)

const defaultMaxLength = 3

// Field is the state of one question
type Field struct {
	Question config.Question
	Text     string // typed value of number questions
	Choice   int    // option index of choice questions
}

// Value returns the answer of the field
func (f Field) Value() string {
	if f.Question.Type == TypeChoice {
		if len(f.Question.Options) == 0 {
			return ""
		}
		return f.Question.Options[f.Choice]
	}
	return f.Text
}

// Form is the editable questionnaire
type Form struct {
	fields []Field
	cursor int
	done   bool
}

// NewForm creates a form with the default answers filled in
func NewForm(questions []config.Question) *Form {
	f := &Form{fields: make([]Field, len(questions))}
	for i, q := range questions {
		field := Field{Question: q}
		if q.Type == TypeChoice {
			for j, o := range q.Options {
				if o == q.Default {
					field.Choice = j
				}
			}
		} else {
			field.Text = q.Default
		}
		f.fields[i] = field
	}
	f.done = len(questions) == 0
	return f
}

// Fields returns a copy of the fields
func (f *Form) Fields() []Field {
	return append([]Field(nil), f.fields...)
}

// Cursor returns the index of the focused field; len(Fields()) is the
// start button
func (f *Form) Cursor() int {
	return f.cursor
}

// Done reports whether the form was submitted
func (f *Form) Done() bool {
	return f.done
}

func (f *Form) current() *Field {
	if f.cursor >= len(f.fields) {
		return nil
	}
	return &f.fields[f.cursor]
}

// Type appends characters to the focused number field. Non-digits are
// dropped and the field length is capped.
func (f *Form) Type(s string) {
	field := f.current()
	if field == nil || field.Question.Type == TypeChoice {
		return
	}
	limit := field.Question.MaxLength
	if limit <= 0 {
		limit = defaultMaxLength
	}
	for _, r := range s {
		if unicode.IsDigit(r) && len(field.Text) < limit {
			field.Text += string(r)
		}
	}
}

// Backspace deletes the last character of the focused number field
func (f *Form) Backspace() {
	field := f.current()
	if field == nil || field.Text == "" {
		return
	}
	field.Text = field.Text[:len(field.Text)-1]
}

// Choose cycles the option of the focused choice field
func (f *Form) Choose(delta int) {
	field := f.current()
	if field == nil || field.Question.Type != TypeChoice {
		return
	}
	n := len(field.Question.Options)
	if n == 0 {
		return
	}
	field.Choice = ((field.Choice+delta)%n + n) % n
}

// Focus moves the cursor to field i, or to the start button
func (f *Form) Focus(i int) {
	if i >= 0 && i <= len(f.fields) {
		f.cursor = i
	}
}

// Next moves to the next field; on the start button it submits the form
func (f *Form) Next() {
	if f.cursor >= len(f.fields) {
		f.done = true
		return
	}
	f.cursor++
}

// Prev moves to the previous field
func (f *Form) Prev() {
	if f.cursor > 0 {
		f.cursor--
	}
}

// Submit completes the form
func (f *Form) Submit() {
	f.done = true
}

// Answers returns the answers in question order
func (f *Form) Answers() []string {
	out := make([]string, len(f.fields))
	for i, field := range f.fields {
		out[i] = strings.TrimSpace(field.Value())
	}
	return out
}
