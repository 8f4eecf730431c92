package survey

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/stm/internal/application/scene"
	"github.com/younwookim/stm/internal/infrastructure/config"
	"github.com/younwookim/stm/internal/infrastructure/input"
)

// Layout of the form, in pixels
const (
	marginX    = 10
	firstRowY  = 30
	rowHeight  = 50
	boxOffsetY = 5
	boxWidth   = 200
	boxHeight  = 22
)

var (
	colorBackground = color.NRGBA{10, 10, 10, 255}
	colorBox        = color.NRGBA{127, 127, 127, 255}
	colorFocus      = color.NRGBA{10, 255, 0, 255}
)

// StartFunc builds the scene shown after the form, given the answers
type StartFunc func(answers []string) (scene.Scene, error)

// Scene shows the questionnaire
type Scene struct {
	form    *Form
	start   StartFunc
	pointer *input.Pointer
	chars   []rune
}

// New creates the questionnaire scene
func New(questions []config.Question, start StartFunc) *Scene {
	return &Scene{
		form:    NewForm(questions),
		start:   start,
		pointer: input.NewPointer(),
	}
}

// Form returns the form model
func (s *Scene) Form() *Form {
	return s.form
}

func (s *Scene) OnEnter() {}

func (s *Scene) OnExit() {}

// Update maps keyboard and pointer input onto the form
func (s *Scene) Update() (scene.Scene, error) {
	if !s.form.Done() {
		s.handleKeys()
		s.handlePointer()
	}
	if s.form.Done() {
		return s.start(s.form.Answers())
	}
	return nil, nil
}

func (s *Scene) handleKeys() {
	s.chars = ebiten.AppendInputChars(s.chars[:0])
	s.form.Type(string(s.chars))

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		s.form.Backspace()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		s.form.Choose(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.form.Choose(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		s.form.Prev()
	case inpututil.IsKeyJustPressed(ebiten.KeyDown),
		inpututil.IsKeyJustPressed(ebiten.KeyTab),
		inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		s.form.Next()
	}
}

func (s *Scene) handlePointer() {
	st := s.pointer.Read()
	if !st.Released {
		return
	}
	row, ok := RowAt(st.X, st.Y, len(s.form.Fields()))
	if !ok {
		return
	}
	if row == len(s.form.Fields()) {
		s.form.Submit()
		return
	}
	if s.form.Cursor() == row {
		s.form.Choose(1)
	}
	s.form.Focus(row)
}

// RowAt returns the row whose box contains (x, y); row n is the start
// button of an n-question form
func RowAt(x, y, n int) (int, bool) {
	if x < marginX || x > marginX+boxWidth {
		return 0, false
	}
	for row := 0; row <= n; row++ {
		top := firstRowY + row*rowHeight + boxOffsetY
		if y >= top && y <= top+boxHeight {
			return row, true
		}
	}
	return 0, false
}

// Draw renders the questions and the start button
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	fields := s.form.Fields()
	for i, f := range fields {
		y := firstRowY + i*rowHeight
		ebitenutil.DebugPrintAt(screen, f.Question.Label, marginX, y-16)
		value := f.Value()
		if f.Question.Type == TypeChoice {
			value = "< " + value + " >"
		}
		s.box(screen, y, value, i == s.form.Cursor())
	}
	s.box(screen, firstRowY+len(fields)*rowHeight, "Starten", s.form.Cursor() == len(fields))
}

func (s *Scene) box(screen *ebiten.Image, y int, text string, focused bool) {
	c := colorBox
	if focused {
		c = colorFocus
	}
	top := float32(y + boxOffsetY)
	vector.StrokeRect(screen, marginX, top, boxWidth, boxHeight, 1, c, false)
	ebitenutil.DebugPrintAt(screen, text, marginX+4, y+boxOffsetY+3)
}
