package skin

import "image/color"

// Reference colors of the default skin
var (
	black  = color.NRGBA{0, 0, 0, 255}
	white  = color.NRGBA{255, 255, 255, 255}
	red    = color.NRGBA{255, 0, 0, 255}
	green  = color.NRGBA{0, 128, 0, 255}
	blue   = color.NRGBA{0, 0, 255, 255}
	grey   = color.NRGBA{128, 128, 128, 255}
	pink   = color.NRGBA{255, 192, 203, 255}
	teal   = color.NRGBA{0, 128, 128, 255}
	orange = color.NRGBA{255, 165, 0, 255}
	yellow = color.NRGBA{255, 255, 0, 255}
)

// Default returns the reference skin
func Default() *Skin {
	return &Skin{
		ID:        "YOUR_GROUP",
		Durations: DefaultDurations(),
		Palettes: [PhaseCount]Palette{
			PhaseIdle: {
				{180, 180, 180, 255},
				white,
				{255, 170, 238, 255},
				{34, 34, 34, 255},
				{10, 255, 0, 255},
				{0, 255, 0, 64},
				{255, 0, 26, 255},
				{255, 0, 255, 51},
				grey, blue, pink, green, teal,
			},
			PhasePrepare:   fill(pink, 1, black),
			PhaseShowTest:  fill(red, 3, black),
			PhaseDecay:     fill(blue, 6, black),
			PhaseCountdown: fill(teal, 1, black),
			PhaseTimeout:   alternate(orange, yellow),
			PhaseCorrect:   fill(green, RingSize, black),
			PhaseIncorrect: fill(red, RingSize, black),
		},
		Rotation: DefaultRotation(),
		Blank:    black,
		Sound:    Sound{Mode: SoundNone},
		Buttons:  ButtonsPlain,
		Timeout:  TimeoutPolicy{Kind: TimeoutReset},
	}
}

// fill returns a ring table with n leading lit entries and the rest off
func fill(lit color.NRGBA, n int, off color.NRGBA) Palette {
	p := make(Palette, RingSize)
	for i := range p {
		if i < n {
			p[i] = lit
		} else {
			p[i] = off
		}
	}
	return p
}

func alternate(a, b color.NRGBA) Palette {
	p := make(Palette, RingSize)
	for i := range p {
		if i%2 == 0 {
			p[i] = a
		} else {
			p[i] = b
		}
	}
	return p
}
